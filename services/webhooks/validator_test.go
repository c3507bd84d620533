package webhooks

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"dnabot/clients/webex"
	"dnabot/core"
	"dnabot/metrics"
	"dnabot/models"
	"dnabot/testutils"
)

func newTestValidator(person *models.WebexPerson, lookupErr error) (*Validator, *webex.MockWebexClient) {
	client := webex.NewMockWebexClient()
	if lookupErr != nil {
		client.On("GetPerson", mock.Anything, mock.Anything).Return(nil, lookupErr)
	} else if person != nil {
		client.WithPerson(person)
	}
	return NewValidator(testutils.TestBotIdentity(), client), client
}

func rejectionReason(t *testing.T, err error) string {
	t.Helper()
	var rejection *RejectionError
	require.ErrorAs(t, err, &rejection)
	assert.ErrorIs(t, err, core.ErrUnauthorized)
	return rejection.Reason
}

func TestSign_KnownVector(t *testing.T) {
	// RFC 2202 test case 2
	assert.Equal(t, "effcdf6ae5eb2fa2d27416d5f184df9c259a7c79", Sign("Jefe", []byte("what do ya want for nothing?")))
}

func TestVerifySignature(t *testing.T) {
	body := []byte(`{"data":{}}`)
	signature := Sign("secret", body)

	assert.True(t, VerifySignature("secret", body, signature))
	assert.False(t, VerifySignature("other", body, signature))
	assert.False(t, VerifySignature("secret", []byte(`{"data":{ }}`), signature))
	assert.False(t, VerifySignature("secret", body, ""))
	// Hex comparison is case-sensitive
	assert.False(t, VerifySignature("Jefe", []byte("what do ya want for nothing?"),
		"EFFCDF6AE5EB2FA2D27416D5F184DF9C259A7C79"))
}

func TestValidator_AcceptsSameOrgSender(t *testing.T) {
	validator, client := newTestValidator(&models.WebexPerson{ID: "p-1", OrgID: testutils.TestOrgID}, nil)
	body := testutils.NewWebhookBody(t, "msg-1", "p-1", "alice@example.com")

	event, err := validator.Check(context.Background(), body, testutils.SignedHeaders(testutils.TestWebhookSecret, body))
	require.NoError(t, err)
	assert.Equal(t, "msg-1", event.Data.ID)
	assert.Equal(t, "room-1", event.Data.RoomID)
	client.AssertCalled(t, "GetPerson", mock.Anything, "p-1")

	assert.True(t, validator.Validate(context.Background(), body, testutils.SignedHeaders(testutils.TestWebhookSecret, body)))
}

func TestValidator_AcceptsAllowListedExternalSender(t *testing.T) {
	validator, _ := newTestValidator(&models.WebexPerson{ID: "p-2", OrgID: "other-org"}, nil)
	body := testutils.NewWebhookBody(t, "msg-2", "p-2", "partner@external.example")

	assert.True(t, validator.Validate(context.Background(), body, testutils.SignedHeaders(testutils.TestWebhookSecret, body)))
}

func TestValidator_RejectsTamperedBody(t *testing.T) {
	validator, client := newTestValidator(&models.WebexPerson{ID: "p-1", OrgID: testutils.TestOrgID}, nil)
	body := testutils.NewWebhookBody(t, "msg-1", "p-1", "alice@example.com")
	headers := testutils.SignedHeaders(testutils.TestWebhookSecret, body)

	tampered := testutils.NewWebhookBody(t, "msg-1", "p-1", "mallory@example.com")

	_, err := validator.Check(context.Background(), tampered, headers)
	assert.Equal(t, metrics.WebhookBadSignature, rejectionReason(t, err))
	assert.False(t, validator.Validate(context.Background(), tampered, headers))
	client.AssertNotCalled(t, "GetPerson", mock.Anything, mock.Anything)
}

func TestValidator_RejectsMissingOrWrongSecretSignature(t *testing.T) {
	validator, _ := newTestValidator(&models.WebexPerson{OrgID: testutils.TestOrgID}, nil)
	body := testutils.NewWebhookBody(t, "msg-1", "p-1", "alice@example.com")

	assert.False(t, validator.Validate(context.Background(), body, http.Header{}))
	assert.False(t, validator.Validate(context.Background(), body, testutils.SignedHeaders("wrong-secret", body)))
}

func TestValidator_RejectsBotSelfMessage(t *testing.T) {
	validator, client := newTestValidator(&models.WebexPerson{ID: "bot", OrgID: testutils.TestOrgID}, nil)
	body := testutils.NewWebhookBody(t, "msg-3", "bot", testutils.TestBotEmail)

	_, err := validator.Check(context.Background(), body, testutils.SignedHeaders(testutils.TestWebhookSecret, body))
	assert.Equal(t, metrics.WebhookSelf, rejectionReason(t, err))
	client.AssertNotCalled(t, "GetPerson", mock.Anything, mock.Anything)
}

func TestValidator_RejectsWhenLookupFails(t *testing.T) {
	validator, _ := newTestValidator(nil, &core.TransportError{Method: "GET", URL: "/v1/people/p-1", StatusCode: 404, Err: errors.New("not found")})
	body := testutils.NewWebhookBody(t, "msg-4", "p-1", "alice@example.com")

	_, err := validator.Check(context.Background(), body, testutils.SignedHeaders(testutils.TestWebhookSecret, body))
	assert.Equal(t, metrics.WebhookLookupFailed, rejectionReason(t, err))
	assert.True(t, core.IsTransportError(err))
}

func TestValidator_RejectsForeignOrgNotAllowListed(t *testing.T) {
	validator, _ := newTestValidator(&models.WebexPerson{ID: "p-5", OrgID: "other-org"}, nil)
	body := testutils.NewWebhookBody(t, "msg-5", "p-5", "stranger@elsewhere.example")

	_, err := validator.Check(context.Background(), body, testutils.SignedHeaders(testutils.TestWebhookSecret, body))
	assert.Equal(t, metrics.WebhookUnauthorized, rejectionReason(t, err))
}

func TestValidator_RejectsMalformedPayload(t *testing.T) {
	validator, client := newTestValidator(&models.WebexPerson{OrgID: testutils.TestOrgID}, nil)

	for _, body := range [][]byte{
		[]byte(`not json`),
		[]byte(`{"resource":"messages"}`),
		[]byte(`{"data":{"id":"m","roomId":"r","personId":"p"}}`),
		[]byte(`{"data":{"id":"","roomId":"r","personId":"p","personEmail":"a@example.com"}}`),
	} {
		_, err := validator.Check(context.Background(), body, testutils.SignedHeaders(testutils.TestWebhookSecret, body))
		assert.Equal(t, metrics.WebhookMalformed, rejectionReason(t, err), string(body))
	}
	client.AssertNotCalled(t, "GetPerson", mock.Anything, mock.Anything)
}
