package extract

import (
	"strings"
	"unicode/utf8"
)

// Caption thresholds, in characters.
const (
	minTruncatedCaptionChars  = 5
	minPunctuatedCaptionChars = 10
	minFallbackCaptionChars   = 15
)

// truncationSuffixes are stripped from the end of a caption line. Longer
// forms come first so "... more" is not left as "... ".
var truncationSuffixes = []string{
	"... more",
	"… more",
	"...more",
	"…more",
	"...",
	"…",
}

// captionStrategy returns a caption candidate, or "" when it finds none.
type captionStrategy func(lines []string) string

// captionStrategies run in order of decreasing confidence; the first
// non-empty result wins.
var captionStrategies = []captionStrategy{
	truncatedCaption,
	punctuatedCaption,
	longestLineCaption,
}

// ExtractCaption picks the line of recognized text most likely to be the
// post's caption. It returns "" when no line qualifies.
func ExtractCaption(rawText string) string {
	lines := strings.Split(rawText, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}

	for _, strategy := range captionStrategies {
		if caption := strategy(lines); caption != "" {
			return caption
		}
	}
	return ""
}

// truncatedCaption finds the first line the platform cut short with a
// "...more" marker.
func truncatedCaption(lines []string) string {
	for _, line := range lines {
		lower := strings.ToLower(line)
		if !strings.HasSuffix(lower, "more") && !strings.HasSuffix(lower, "...") && !strings.HasSuffix(lower, "…") {
			continue
		}
		cleaned := StripTruncation(line)
		if utf8.RuneCountInString(cleaned) > minTruncatedCaptionChars && !IsChromeLine(cleaned) {
			return cleaned
		}
	}
	return ""
}

// punctuatedCaption finds the first reasonably long line with a colon or
// separator, which usually means "username: caption" or structured text.
func punctuatedCaption(lines []string) string {
	for _, line := range lines {
		if utf8.RuneCountInString(line) < minPunctuatedCaptionChars || IsChromeLine(line) {
			continue
		}
		if !strings.Contains(line, ":") && !strings.Contains(line, bullet) && !strings.Contains(line, middleDot) {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "follow") || strings.Contains(lower, "sign up") {
			continue
		}
		if cleaned := StripTruncation(line); cleaned != "" {
			return cleaned
		}
	}
	return ""
}

// longestLineCaption keeps the longest non-chrome line; ties go to the
// first one seen.
func longestLineCaption(lines []string) string {
	best := ""
	bestChars := minFallbackCaptionChars
	for _, line := range lines {
		n := utf8.RuneCountInString(line)
		if n <= bestChars || IsChromeLine(line) {
			continue
		}
		best = line
		bestChars = n
	}
	return StripTruncation(best)
}

// StripTruncation removes one trailing "...more" style marker (or a bare
// ellipsis) from line and trims the result. The suffix comparison is case
// insensitive and cuts whole characters.
func StripTruncation(line string) string {
	line = strings.TrimSpace(line)
	for _, suffix := range truncationSuffixes {
		if len(line) < len(suffix) {
			continue
		}
		tail := line[len(line)-len(suffix):]
		if strings.EqualFold(tail, suffix) {
			return strings.TrimSpace(line[:len(line)-len(suffix)])
		}
	}
	return line
}
