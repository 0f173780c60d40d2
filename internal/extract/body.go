package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// shortLikesMaxChars bounds the standalone "6,012 likes" rule so ordinary
// sentences that mention likes survive.
const shortLikesMaxChars = 20

// monthDayRegex matches an English month name as a whole word followed by a
// day number, as in "March 3". A bare "may" in prose does not match.
var monthDayRegex = regexp.MustCompile(`\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d`)

// pagePrefixes are chrome lead-ins that are never the start of recipe text.
var pagePrefixes = []string{
	"see more from ",
	"more posts from ",
	"liked by ",
	"log in to like",
}

// CleanBodyText drops engagement counters, dated attribution headers and
// page chrome from rendered page text. Blank lines are kept for paragraph
// spacing; the result is trimmed. Cleaning is idempotent.
func CleanBodyText(rawText string) string {
	lines := strings.Split(rawText, "\n")
	kept := make([]string, 0, len(lines))
	for _, line := range lines {
		if isNoiseLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return strings.TrimSpace(strings.Join(kept, "\n"))
}

// isNoiseLine classifies on the trimmed line so that the final trim of the
// joined text can never change a later verdict.
func isNoiseLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return false
	}
	lower := strings.ToLower(trimmed)
	return isEngagementLine(lower) || isDatedAttribution(lower) || isPageChrome(trimmed, lower)
}

// isPageChrome matches page chrome by whole phrase only, plus a few lead-ins
// that cannot open a recipe line.
func isPageChrome(trimmed, lower string) bool {
	if PageVocabulary.IsExactChrome(trimmed) {
		return true
	}
	for _, prefix := range pagePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}
	return false
}

// isEngagementLine matches "1,234 likes, 56 comments" and bare "6,012 likes".
func isEngagementLine(lower string) bool {
	if (strings.Contains(lower, "likes") || strings.Contains(lower, "like,")) && strings.Contains(lower, "comment") {
		return true
	}
	return utf8.RuneCountInString(lower) < shortLikesMaxChars && strings.HasSuffix(lower, " likes")
}

// isDatedAttribution matches "chef_mike on March 3, 2024:" headers.
func isDatedAttribution(lower string) bool {
	return strings.Contains(lower, " on ") && monthDayRegex.MatchString(lower)
}
