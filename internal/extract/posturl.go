package extract

import "strings"

// recognizedMarkers are host+path fragments that identify a post URL.
// Matching is case-insensitive and does not require a scheme.
var recognizedMarkers = []string{
	"instagram.com/p/",
	"instagram.com/reel/",
	"instagram.com/tv/",
	"instagr.am/p/",
}

// identifierMarkers are tried in order; the first one present wins.
var identifierMarkers = []string{"/p/", "/reel/", "/tv/"}

// IsRecognizedPostURL reports whether text looks like a link to a single post.
// Profile URLs and other pages on the same host are not recognized.
func IsRecognizedPostURL(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	for _, marker := range recognizedMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// ExtractPostIdentifier returns the path segment following the first post
// marker in text, up to the next "/" or the end of the string.
//
// Query strings are not stripped: ".../p/ABC/?utm_source=x" yields "ABC"
// because the slash ends the scan, but ".../p/ABC?utm_source=x" yields
// "ABC?utm_source=x". Callers depend on this.
func ExtractPostIdentifier(text string) (string, bool) {
	for _, marker := range identifierMarkers {
		idx := indexFoldASCII(text, marker)
		if idx < 0 {
			continue
		}
		rest := text[idx+len(marker):]
		if end := strings.IndexByte(rest, '/'); end >= 0 {
			rest = rest[:end]
		}
		if rest == "" {
			return "", false
		}
		return rest, true
	}
	return "", false
}

// indexFoldASCII is strings.Index with ASCII case folding. The returned
// offset is a byte offset into s, so slicing s with it stays on rune
// boundaries as long as substr is ASCII.
func indexFoldASCII(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		match := true
		for j := 0; j < n; j++ {
			if lowerASCII(s[i+j]) != lowerASCII(substr[j]) {
				match = false
				break
			}
		}
		if match {
			return i
		}
	}
	return -1
}

func lowerASCII(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
