package webhooks

import (
	"context"
	"crypto/hmac"
	"crypto/sha1" //nolint:gosec // Webex signs webhooks with HMAC-SHA1
	_ "embed"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"dnabot/clients"
	"dnabot/core"
	"dnabot/core/log"
	"dnabot/metrics"
	"dnabot/models"
)

// SignatureHeader carries the hex HMAC-SHA1 of the raw webhook body
const SignatureHeader = "X-Spark-Signature"

//go:embed webhook_schema.json
var webhookSchema []byte

var webhookSchemaLoader = gojsonschema.NewBytesLoader(webhookSchema)

// RejectionError explains why a webhook was not trusted. It wraps core.ErrUnauthorized.
type RejectionError struct {
	Reason string // One of the metrics.Webhook* results
	Err    error
}

func (e *RejectionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook rejected (%s): %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("webhook rejected (%s)", e.Reason)
}

func (e *RejectionError) Unwrap() []error {
	if e.Err != nil {
		return []error{core.ErrUnauthorized, e.Err}
	}
	return []error{core.ErrUnauthorized}
}

// Validator decides whether an inbound webhook is authentic and sent by a trusted person
type Validator struct {
	identity models.BotIdentity
	webex    clients.WebexClient
}

func NewValidator(identity models.BotIdentity, webex clients.WebexClient) *Validator {
	return &Validator{identity: identity, webex: webex}
}

// Validate reports whether the webhook passes every check. Only logging and metrics are
// produced on failure.
func (v *Validator) Validate(ctx context.Context, rawBody []byte, headers http.Header) bool {
	_, err := v.Check(ctx, rawBody, headers)
	return err == nil
}

// Check runs the signature, payload, self-message, lookup and trust checks in order and
// returns the decoded event when all pass.
func (v *Validator) Check(ctx context.Context, rawBody []byte, headers http.Header) (*models.WebhookEvent, error) {
	event, err := v.check(ctx, rawBody, headers)
	if err != nil {
		reason := metrics.WebhookUnauthorized
		var rejection *RejectionError
		if errors.As(err, &rejection) {
			reason = rejection.Reason
		}
		metrics.WebhooksTotal.WithLabelValues(reason).Inc()
		log.Warn("⚠️ Rejected webhook", "reason", reason, "error", err)
		return nil, err
	}

	metrics.WebhooksTotal.WithLabelValues(metrics.WebhookAccepted).Inc()
	return event, nil
}

func (v *Validator) check(ctx context.Context, rawBody []byte, headers http.Header) (*models.WebhookEvent, error) {
	if !VerifySignature(v.identity.Secret, rawBody, headers.Get(SignatureHeader)) {
		return nil, &RejectionError{Reason: metrics.WebhookBadSignature}
	}

	result, err := gojsonschema.Validate(webhookSchemaLoader, gojsonschema.NewBytesLoader(rawBody))
	if err != nil {
		return nil, &RejectionError{Reason: metrics.WebhookMalformed, Err: &core.InvalidInputError{Input: "webhook body", Err: err}}
	}
	if !result.Valid() {
		return nil, &RejectionError{Reason: metrics.WebhookMalformed, Err: schemaError(result)}
	}

	var event models.WebhookEvent
	if err := json.Unmarshal(rawBody, &event); err != nil {
		return nil, &RejectionError{Reason: metrics.WebhookMalformed, Err: err}
	}

	if strings.EqualFold(event.Data.PersonEmail, v.identity.BotEmail) {
		return nil, &RejectionError{Reason: metrics.WebhookSelf}
	}

	person, err := v.webex.GetPerson(ctx, event.Data.PersonID)
	if err != nil {
		return nil, &RejectionError{Reason: metrics.WebhookLookupFailed, Err: err}
	}

	if person.OrgID != v.identity.OrgID && !v.identity.IsAuthorizedSender(event.Data.PersonEmail) {
		return nil, &RejectionError{
			Reason: metrics.WebhookUnauthorized,
			Err:    fmt.Errorf("sender %s from org %s is not trusted", event.Data.PersonEmail, person.OrgID),
		}
	}

	return &event, nil
}

// VerifySignature compares the hex HMAC-SHA1 of body under secret with signature.
// The comparison is exact and case-sensitive.
func VerifySignature(secret string, body []byte, signature string) bool {
	if signature == "" {
		return false
	}
	return hmac.Equal([]byte(Sign(secret, body)), []byte(signature))
}

// Sign returns the lowercase hex HMAC-SHA1 of body under secret
func Sign(secret string, body []byte) string {
	mac := hmac.New(sha1.New, []byte(secret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func schemaError(result *gojsonschema.Result) error {
	if len(result.Errors()) == 0 {
		return &core.InvalidInputError{Input: "webhook body", Err: errors.New("schema validation failed")}
	}
	return &core.InvalidInputError{Input: "webhook body", Err: fmt.Errorf("schema validation failed: %s", result.Errors()[0].String())}
}
