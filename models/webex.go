package models

// WebhookEvent is the envelope Webex posts to a registered webhook.
// It carries identifiers only; the message text must be fetched separately.
type WebhookEvent struct {
	ID       string           `json:"id"`
	Name     string           `json:"name"`
	Resource string           `json:"resource"`
	Event    string           `json:"event"`
	OrgID    string           `json:"orgId"`
	Data     WebhookEventData `json:"data"`
}

type WebhookEventData struct {
	ID          string `json:"id"`
	RoomID      string `json:"roomId"`
	RoomType    string `json:"roomType"`
	PersonID    string `json:"personId"`
	PersonEmail string `json:"personEmail"`
}

// WebexMessage is a message as returned by GET /v1/messages/{id}
type WebexMessage struct {
	ID          string `json:"id"`
	RoomID      string `json:"roomId"`
	RoomType    string `json:"roomType"`
	Text        string `json:"text"`
	Markdown    string `json:"markdown,omitempty"`
	PersonID    string `json:"personId"`
	PersonEmail string `json:"personEmail"`
}

// WebexPerson is a person as returned by GET /v1/people/{id}
type WebexPerson struct {
	ID          string   `json:"id"`
	Emails      []string `json:"emails"`
	DisplayName string   `json:"displayName"`
	OrgID       string   `json:"orgId"`
}

// BotIdentity is the read-only identity and trust configuration of the bot
type BotIdentity struct {
	BearerToken       string
	BotEmail          string
	BotName           string
	OrgID             string
	Secret            string
	AuthorizedSenders []string
}

// IsAuthorizedSender reports whether email is in the explicit allow-list
func (b BotIdentity) IsAuthorizedSender(email string) bool {
	for _, sender := range b.AuthorizedSenders {
		if sender == email {
			return true
		}
	}
	return false
}
