package testutils

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // matches the Webex webhook signature scheme
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"dnabot/appctx"
	"dnabot/core"
	"dnabot/models"
)

const (
	TestWebhookSecret = "test-webhook-secret"
	TestBotEmail      = "dnabot@webex.bot"
	TestBotName       = "DNA Bot"
	TestOrgID         = "org-test"
)

// TestBotIdentity returns a bot identity with the package's test constants
func TestBotIdentity() models.BotIdentity {
	return models.BotIdentity{
		BearerToken:       "test-bot-token",
		BotEmail:          TestBotEmail,
		BotName:           TestBotName,
		OrgID:             TestOrgID,
		Secret:            TestWebhookSecret,
		AuthorizedSenders: []string{"partner@external.example"},
	}
}

// NewWebhookBody builds a Webex "messages created" webhook payload
func NewWebhookBody(t *testing.T, messageID, personID, personEmail string) []byte {
	t.Helper()
	body, err := json.Marshal(models.WebhookEvent{
		ID:       "webhook-1",
		Name:     "dnabot messages",
		Resource: "messages",
		Event:    "created",
		OrgID:    TestOrgID,
		Data: models.WebhookEventData{
			ID:          messageID,
			RoomID:      "room-1",
			RoomType:    "direct",
			PersonID:    personID,
			PersonEmail: personEmail,
		},
	})
	require.NoError(t, err)
	return body
}

// SignPayload returns the hex HMAC-SHA1 Webex would send for body
func SignPayload(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

// SignedHeaders returns headers carrying a valid signature for body
func SignedHeaders(secret string, body []byte) http.Header {
	headers := http.Header{}
	headers.Set("Content-Type", "application/json")
	headers.Set("X-Spark-Signature", SignPayload(secret, body))
	return headers
}

// NewSignedWebhookRequest builds an inbound webhook request signed with secret
func NewSignedWebhookRequest(target, secret string, body []byte) *http.Request {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	req.Header = SignedHeaders(secret, body)
	return req
}

// CreateTestContext returns a context carrying a fresh request id
func CreateTestContext() context.Context {
	return appctx.SetRequestID(context.Background(), core.NewID("req"))
}
