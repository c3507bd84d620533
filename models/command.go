package models

// Intent identifies the operation a parsed command maps to
type Intent string

const (
	IntentNetworkHealth             Intent = "network_health"
	IntentNetworkHealthAt           Intent = "network_health_at"
	IntentInventory                 Intent = "inventory"
	IntentSoftwarePlatforms         Intent = "software_platforms"
	IntentSoftwareImages            Intent = "software_images"
	IntentSoftwareRecommendedImages Intent = "software_recommended_images"
	IntentHelp                      Intent = "help"
)

// ParsedCommand is the result of splitting free text at the first keyword boundary
type ParsedCommand struct {
	Command  string `json:"command"`  // Normalized command key, e.g. "show network health"
	Modifier string `json:"modifier"` // Free text after the keyword, empty if none
}

// HasModifier reports whether the raw text carried a modifier
func (c ParsedCommand) HasModifier() bool {
	return c.Modifier != ""
}

// CommandRequest represents a command submitted through the direct command API
type CommandRequest struct {
	Text string `json:"text"`
}
