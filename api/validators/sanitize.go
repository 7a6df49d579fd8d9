package validators

// TruncateRunes caps input at maxLen runes without splitting a character.
// Surrounding whitespace is left alone.
func TruncateRunes(input string, maxLen int) string {
	if maxLen <= 0 {
		return input
	}
	runes := []rune(input)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return input
}
