package webex

import (
	"context"

	"github.com/stretchr/testify/mock"

	"dnabot/models"
)

// MockWebexClient is a mock implementation of clients.WebexClient
type MockWebexClient struct {
	mock.Mock
}

// NewMockWebexClient creates a new mock client for testing
func NewMockWebexClient() *MockWebexClient {
	return &MockWebexClient{}
}

func (m *MockWebexClient) SendMessage(ctx context.Context, roomID, text, markdown string) (*models.WebexMessage, error) {
	args := m.Called(ctx, roomID, text, markdown)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WebexMessage), args.Error(1)
}

func (m *MockWebexClient) AttachFile(ctx context.Context, roomID, filePath, caption string) (*models.WebexMessage, error) {
	args := m.Called(ctx, roomID, filePath, caption)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WebexMessage), args.Error(1)
}

func (m *MockWebexClient) GetMessage(ctx context.Context, messageID string) (*models.WebexMessage, error) {
	args := m.Called(ctx, messageID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WebexMessage), args.Error(1)
}

func (m *MockWebexClient) GetPerson(ctx context.Context, personID string) (*models.WebexPerson, error) {
	args := m.Called(ctx, personID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.WebexPerson), args.Error(1)
}

// WithPerson configures the mock to return person for any lookup
func (m *MockWebexClient) WithPerson(person *models.WebexPerson) *MockWebexClient {
	m.On("GetPerson", mock.Anything, mock.Anything).Return(person, nil)
	return m
}
