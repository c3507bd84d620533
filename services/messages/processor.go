package messages

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/patrickmn/go-cache"

	"dnabot/appctx"
	"dnabot/clients"
	"dnabot/core/log"
	"dnabot/metrics"
	"dnabot/models"
	"dnabot/services"
	"dnabot/utils"
)

const (
	// DefaultDedupTTL is how long a processed message id is remembered
	DefaultDedupTTL = 30 * time.Minute
	cleanupInterval = 5 * time.Minute
)

// MessageProcessor fetches webhook messages, runs them as commands and replies in the same room
type MessageProcessor struct {
	webex     clients.WebexClient
	commands  services.CommandHandler
	botName   string
	processed *cache.Cache
}

var _ services.MessageProcessor = (*MessageProcessor)(nil)

func NewMessageProcessor(
	webex clients.WebexClient,
	commands services.CommandHandler,
	botName string,
	dedupTTL time.Duration,
) *MessageProcessor {
	return &MessageProcessor{
		webex:     webex,
		commands:  commands,
		botName:   botName,
		processed: cache.New(dedupTTL, cleanupInterval),
	}
}

// ProcessEvent handles one validated webhook. A message id already seen within the dedup
// TTL is skipped.
func (p *MessageProcessor) ProcessEvent(ctx context.Context, event *models.WebhookEvent) error {
	messageID := event.Data.ID
	logger := contextLogger(ctx, event.Data.RoomID).With("message_id", messageID)
	logger.Info("📋 Starting to process Webex message")

	if err := p.processed.Add(messageID, time.Now(), cache.DefaultExpiration); err != nil {
		metrics.WebhooksTotal.WithLabelValues(metrics.WebhookDuplicate).Inc()
		logger.Info("🔄 Message already processed, skipping")
		return nil
	}

	message, err := p.webex.GetMessage(ctx, messageID)
	if err != nil {
		p.processed.Delete(messageID)
		logger.Error("❌ Failed to fetch Webex message", "error", err)
		return fmt.Errorf("failed to fetch message %s: %w", messageID, err)
	}

	text := utils.StripMentions(message.Text, p.botName)
	response := p.commands.HandleCommand(ctx, text)

	if err := p.Deliver(ctx, event.Data.RoomID, response); err != nil {
		return err
	}

	logger.Info("📋 Completed successfully - processed Webex message", "kind", response.Kind)
	return nil
}

// Deliver posts a response to a room: files as attachments captioned with the message,
// everything else as text with its markdown rendition.
func (p *MessageProcessor) Deliver(ctx context.Context, roomID string, response *models.ResponseEnvelope) error {
	kind := string(response.Kind)

	var err error
	if path, ok := response.FilePath.Get(); ok {
		_, err = p.webex.AttachFile(ctx, roomID, path, response.Message)
	} else {
		_, err = p.webex.SendMessage(ctx, roomID, response.Message, response.RichMessage)
	}

	if err != nil {
		metrics.DeliveriesTotal.WithLabelValues(kind, "failed").Inc()
		contextLogger(ctx, roomID).Error("❌ Failed to deliver response", "kind", kind, "error", err)
		return fmt.Errorf("failed to deliver %s response to room %s: %w", kind, roomID, err)
	}

	metrics.DeliveriesTotal.WithLabelValues(kind, "delivered").Inc()
	return nil
}

// contextLogger tags log lines with the request id and room id carried on ctx.
// fallbackRoomID is used when ctx carries no room.
func contextLogger(ctx context.Context, fallbackRoomID string) *slog.Logger {
	roomID, ok := appctx.GetRoomID(ctx)
	if !ok || roomID == "" {
		roomID = fallbackRoomID
	}
	args := []any{"room_id", roomID}
	if requestID, ok := appctx.GetRequestID(ctx); ok {
		args = append(args, "request_id", requestID)
	}
	return log.With(args...)
}
