package services

const excerptLength = 200

// DeriveExcerpt returns the first 200 characters of content, followed by
// "..." when content was longer.
func DeriveExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLength {
		return content
	}
	return string(runes[:excerptLength]) + "..."
}
