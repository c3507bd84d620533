package models

// SoftwareImage is an image imported into the controller's image repository
type SoftwareImage struct {
	Name        string `json:"name"`
	Family      string `json:"family"`
	CreatedTime string `json:"createdTime"`
	Version     string `json:"version,omitempty"`
}
