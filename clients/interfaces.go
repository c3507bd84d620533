package clients

import (
	"context"
	"encoding/json"

	"dnabot/models"
)

// DNACenterClient defines the controller operations used by the intent handlers
type DNACenterClient interface {
	// GetNetworkHealth returns the raw network-health payload for a point in time (epoch ms).
	// The payload shape varies across controller versions and is interpreted by the caller.
	GetNetworkHealth(ctx context.Context, timestampMillis int64) (json.RawMessage, error)

	// GetNetworkDevices returns one page of devices, start is 1-based
	GetNetworkDevices(ctx context.Context, start, count int) ([]models.InventoryRecord, error)

	// GetSoftwareImages lists imported images, optionally filtered by family and CCO recommendation
	GetSoftwareImages(ctx context.Context, family string, ccoOnly bool) ([]models.SoftwareImage, error)
}

// WebexClient defines the messaging platform operations used by the bot
type WebexClient interface {
	SendMessage(ctx context.Context, roomID, text, markdown string) (*models.WebexMessage, error)
	AttachFile(ctx context.Context, roomID, filePath, caption string) (*models.WebexMessage, error)
	GetMessage(ctx context.Context, messageID string) (*models.WebexMessage, error)
	GetPerson(ctx context.Context, personID string) (*models.WebexPerson, error)
}
