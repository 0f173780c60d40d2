package extract

import (
	"strings"
	"unicode/utf8"
)

// Separator glyphs used by platforms between a username and its actions.
const (
	bullet    = "•"
	middleDot = "·"
)

// shortHeaderMaxChars bounds a bare "username •" header line.
const shortHeaderMaxChars = 20

// Vocabulary is a set of lowercase chrome phrases. A line equal to a phrase,
// or starting with a phrase followed by a space, is platform chrome.
type Vocabulary []string

// OCRVocabulary is tuned for text recognized from a screenshot, which skews
// toward button and prompt labels.
var OCRVocabulary = Vocabulary{
	"log in",
	"login",
	"sign up",
	"signup",
	"create new account",
	"forgot password?",
	"follow",
	"following",
	"followers",
	"open app",
	"open instagram",
	"get the app",
	"use the app",
	"not now",
	"continue on web",
	"continue in browser",
	"see more from",
	"more posts from",
	"see more",
	"show more",
	"view more",
	"load more",
	"discover more",
	"suggested for you",
	"see all",
	"privacy",
	"privacy policy",
	"terms of use",
	"cookie policy",
	"view all comments",
	"view all",
	"add a comment",
	"add a comment...",
	"liked by",
	"be the first to like this",
	"no comments yet",
	"original audio",
	"see translation",
}

// PageVocabulary is tuned for rendered page text, which skews toward
// metadata headers, footer links and login walls.
var PageVocabulary = Vocabulary{
	"log in",
	"login",
	"sign up",
	"signup",
	"log in to like or comment.",
	"follow",
	"following",
	"open app",
	"continue on web",
	"see more from",
	"more posts from",
	"more posts",
	"see translation",
	"view all comments",
	"add a comment",
	"add a comment...",
	"liked by",
	"original audio",
	"verified",
	"privacy",
	"privacy policy",
	"terms of use",
	"cookie policy",
	"top locations",
	"meta verified",
	"contact uploading & non-users",
}

// IsChromeLine reports whether line is platform chrome under the OCR
// vocabulary.
func IsChromeLine(line string) bool {
	return OCRVocabulary.IsChrome(line)
}

// IsChrome reports whether line is platform chrome: a vocabulary phrase
// (alone, as a prefix, or followed by a separator), a "• Follow" header, or
// a short line that ends in a separator.
func (v Vocabulary) IsChrome(line string) bool {
	return v.classify(line, true)
}

// IsExactChrome is IsChrome without the phrase-prefix rule, so lines such as
// "Follow these steps" stay content.
func (v Vocabulary) IsExactChrome(line string) bool {
	return v.classify(line, false)
}

func (v Vocabulary) classify(line string, prefixes bool) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)

	for _, phrase := range v {
		if lower == phrase || (prefixes && strings.HasPrefix(lower, phrase+" ")) {
			return true
		}
		for _, sep := range []string{bullet, middleDot} {
			if lower == phrase+sep || lower == phrase+" "+sep {
				return true
			}
		}
	}

	for _, sep := range []string{bullet, middleDot} {
		// "• Follow" left on its own line when OCR splits a header.
		if rest, ok := strings.CutPrefix(lower, sep); ok && v.has(strings.TrimSpace(rest)) {
			return true
		}
		if hasFollowAfter(lower, sep) {
			return true
		}
		if strings.HasSuffix(lower, sep) && utf8.RuneCountInString(trimmed) < shortHeaderMaxChars {
			return true
		}
	}

	return false
}

// has reports whether lower is exactly one of the phrases.
func (v Vocabulary) has(lower string) bool {
	for _, phrase := range v {
		if lower == phrase {
			return true
		}
	}
	return false
}

// hasFollowAfter reports whether "follow" directly follows sep somewhere
// after the start of the line. A leading bullet starts a list item such as
// "• Follow the dough steps"; classify handles the bare "• Follow" case.
func hasFollowAfter(lower, sep string) bool {
	for _, pattern := range []string{sep + " follow", sep + "follow"} {
		if strings.LastIndex(lower, pattern) > 0 {
			return true
		}
	}
	return false
}

// StripChrome removes chrome lines (under v) from text, keeping blank lines
// and line order intact.
func (v Vocabulary) StripChrome(text string) string {
	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if v.IsChrome(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}
