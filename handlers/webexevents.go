package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"dnabot/appctx"
	"dnabot/core"
	"dnabot/core/log"
	"dnabot/services"
)

// maxWebhookBodyBytes bounds the body read before signature verification
const maxWebhookBodyBytes = 1 << 20

// JobQueue runs submitted jobs in the background
type JobQueue interface {
	Submit(task func())
}

// TaskWrapper decorates a background task with panic recovery and alerting
type TaskWrapper func(taskName string, task func() error) func() error

type WebexEventsHandler struct {
	validator services.WebhookValidator
	processor services.MessageProcessor
	queue     JobQueue
	wrap      TaskWrapper
}

func NewWebexEventsHandler(
	validator services.WebhookValidator,
	processor services.MessageProcessor,
	queue JobQueue,
	wrap TaskWrapper,
) *WebexEventsHandler {
	return &WebexEventsHandler{
		validator: validator,
		processor: processor,
		queue:     queue,
		wrap:      wrap,
	}
}

// HandleWebexEvent acknowledges every webhook with 200. Untrusted webhooks are dropped
// silently; trusted message events are queued for processing.
func (h *WebexEventsHandler) HandleWebexEvent(w http.ResponseWriter, r *http.Request) {
	requestID, _ := appctx.GetRequestID(r.Context())
	log.Info("📨 Webex event received", "remote_addr", r.RemoteAddr, "request_id", requestID)

	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		log.Error("❌ Failed to read request body", "error", err)
		http.Error(w, "failed to read body", http.StatusBadRequest)
		return
	}

	event, err := h.validator.Check(r.Context(), body, r.Header)
	if err != nil {
		w.WriteHeader(http.StatusOK)
		return
	}

	if event.Resource != "messages" || event.Event != "created" {
		log.Info("⏭️ Ignoring Webex event", "resource", event.Resource, "event", event.Event)
		w.WriteHeader(http.StatusOK)
		return
	}

	if requestID == "" {
		requestID = core.NewID("req")
	}
	task := func() error {
		ctx := appctx.SetRoomID(appctx.SetRequestID(context.Background(), requestID), event.Data.RoomID)
		return h.processor.ProcessEvent(ctx, event)
	}
	if h.wrap != nil {
		task = h.wrap("process Webex message", task)
	}

	h.queue.Submit(func() {
		if err := task(); err != nil {
			log.Error("❌ Failed to process Webex message", "message_id", event.Data.ID, "request_id", requestID, "error", err)
		}
	})

	log.Info("✅ Webex message queued", "message_id", event.Data.ID, "request_id", requestID)
	w.WriteHeader(http.StatusOK)
}

func (h *WebexEventsHandler) SetupEndpoints(router *mux.Router) {
	log.Info("🚀 Registering Webex webhook endpoints")

	router.HandleFunc("/webex/events", h.HandleWebexEvent).Methods("POST")
	log.Info("✅ POST /webex/events endpoint registered")
}
