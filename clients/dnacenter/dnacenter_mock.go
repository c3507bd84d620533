package dnacenter

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"

	"dnabot/models"
)

// MockDNACenterClient is a mock implementation of clients.DNACenterClient
type MockDNACenterClient struct {
	mock.Mock
}

// NewMockDNACenterClient creates a new mock client for testing
func NewMockDNACenterClient() *MockDNACenterClient {
	return &MockDNACenterClient{}
}

func (m *MockDNACenterClient) GetNetworkHealth(ctx context.Context, timestampMillis int64) (json.RawMessage, error) {
	args := m.Called(ctx, timestampMillis)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func (m *MockDNACenterClient) GetNetworkDevices(
	ctx context.Context,
	start, count int,
) ([]models.InventoryRecord, error) {
	args := m.Called(ctx, start, count)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.InventoryRecord), args.Error(1)
}

func (m *MockDNACenterClient) GetSoftwareImages(
	ctx context.Context,
	family string,
	ccoOnly bool,
) ([]models.SoftwareImage, error) {
	args := m.Called(ctx, family, ccoOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SoftwareImage), args.Error(1)
}

// WithHealthResponse configures the mock to return payload for any health request
func (m *MockDNACenterClient) WithHealthResponse(payload string) *MockDNACenterClient {
	m.On("GetNetworkHealth", mock.Anything, mock.Anything).Return(json.RawMessage(payload), nil)
	return m
}
