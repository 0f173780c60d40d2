package recipe

import (
	"strings"
	"unicode/utf8"
)

// CountChars returns the character count as runes (not bytes).
// This correctly handles multi-byte UTF-8 characters.
func CountChars(text string) int {
	return utf8.RuneCountInString(text)
}

// AppendBody appends addition to existing as a new paragraph. Existing
// content is never dropped; an empty addition leaves it unchanged.
func AppendBody(existing, addition string) string {
	existing = strings.TrimRight(existing, " \t\r\n")
	addition = strings.TrimSpace(addition)
	switch {
	case addition == "":
		return existing
	case existing == "":
		return addition
	default:
		return existing + "\n\n" + addition
	}
}
