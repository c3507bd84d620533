package services

import (
	"context"
	"net/http"

	"dnabot/models"
)

// CommandHandler runs a bot command and returns exactly one response
type CommandHandler interface {
	HandleCommand(ctx context.Context, text string) *models.ResponseEnvelope
}

// WebhookValidator gates inbound webhooks on signature and sender trust
type WebhookValidator interface {
	Validate(ctx context.Context, rawBody []byte, headers http.Header) bool
	Check(ctx context.Context, rawBody []byte, headers http.Header) (*models.WebhookEvent, error)
}

// MessageProcessor turns a validated webhook event into a delivered reply
type MessageProcessor interface {
	ProcessEvent(ctx context.Context, event *models.WebhookEvent) error
	Deliver(ctx context.Context, roomID string, response *models.ResponseEnvelope) error
}
