package handlers

import (
	"context"
	"net/http"

	"github.com/stretchr/testify/mock"

	"dnabot/models"
)

// MockWebhookValidator is a mock implementation of services.WebhookValidator
type MockWebhookValidator struct {
	mock.Mock
}

func (m *MockWebhookValidator) Validate(ctx context.Context, rawBody []byte, headers http.Header) bool {
	args := m.Called(ctx, rawBody, headers)
	return args.Bool(0)
}

func (m *MockWebhookValidator) Check(
	ctx context.Context,
	rawBody []byte,
	headers http.Header,
) (*models.WebhookEvent, error) {
	args := m.Called(ctx, rawBody, headers)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WebhookEvent), args.Error(1)
}

// MockMessageProcessor is a mock implementation of services.MessageProcessor
type MockMessageProcessor struct {
	mock.Mock
}

func (m *MockMessageProcessor) ProcessEvent(ctx context.Context, event *models.WebhookEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *MockMessageProcessor) Deliver(ctx context.Context, roomID string, response *models.ResponseEnvelope) error {
	args := m.Called(ctx, roomID, response)
	return args.Error(0)
}
