package commands

import (
	"regexp"
	"strings"

	"dnabot/models"
)

// modifierKeywords separate a command key from its modifier. Whole words only, so
// "platforms" or "information" never split.
var modifierKeywords = regexp.MustCompile(`\b(?:for|on|at|from|mac|ip|address)\b`)

// intents maps normalized command keys to the operation they request
var intents = map[string]models.Intent{
	"show network health":             models.IntentNetworkHealth,
	"get inventory":                   models.IntentInventory,
	"show software platforms":         models.IntentSoftwarePlatforms,
	"show software platform":          models.IntentSoftwarePlatforms,
	"show software recommended image": models.IntentSoftwareRecommendedImages,
	"show software cco image":         models.IntentSoftwareRecommendedImages,
	"show software image":             models.IntentSoftwareImages,
	"show software images":            models.IntentSoftwareImages,
}

// Parse lower-cases text and splits it at the first modifier keyword.
// Later keywords stay inside the modifier untouched.
func Parse(text string) models.ParsedCommand {
	lowered := strings.ToLower(text)

	loc := modifierKeywords.FindStringIndex(lowered)
	if loc == nil {
		return models.ParsedCommand{Command: strings.TrimSpace(lowered)}
	}

	return models.ParsedCommand{
		Command:  strings.TrimSpace(lowered[:loc[0]]),
		Modifier: strings.TrimSpace(lowered[loc[1]:]),
	}
}

// ResolveIntent maps a parsed command to its intent. Unknown commands resolve to help.
func ResolveIntent(cmd models.ParsedCommand) models.Intent {
	intent, ok := intents[cmd.Command]
	if !ok {
		return models.IntentHelp
	}
	if intent == models.IntentNetworkHealth && cmd.HasModifier() {
		return models.IntentNetworkHealthAt
	}
	return intent
}
