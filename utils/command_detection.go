package utils

import (
	"regexp"
	"strings"
)

// StripMentions removes a leading bot mention from a Webex message.
// In group spaces the message text starts with the bot's display name
// (or its first word when the client shortens the mention).
func StripMentions(text string, botName string) string {
	text = strings.TrimSpace(text)
	botName = strings.TrimSpace(botName)
	if botName == "" {
		return text
	}

	candidates := []string{botName}
	if first, _, found := strings.Cut(botName, " "); found {
		candidates = append(candidates, first)
	}

	for _, candidate := range candidates {
		mentionRegex := regexp.MustCompile(`(?i)^@?` + regexp.QuoteMeta(candidate) + `\b`)
		if loc := mentionRegex.FindStringIndex(text); loc != nil {
			return strings.TrimSpace(text[loc[1]:])
		}
	}

	return text
}
