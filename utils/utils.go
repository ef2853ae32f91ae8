package utils

// Stringp returns a pointer to s, for the discordgo webhook edit API.
func Stringp(s string) *string {
	return &s
}
