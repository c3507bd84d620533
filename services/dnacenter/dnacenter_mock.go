package dnacenter

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"dnabot/models"
)

// MockCommandHandler is a mock implementation of services.CommandHandler
type MockCommandHandler struct {
	mock.Mock
}

func (m *MockCommandHandler) HandleCommand(ctx context.Context, text string) *models.ResponseEnvelope {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.ResponseEnvelope)
}

// MockChartRenderer is a mock implementation of ChartRenderer
type MockChartRenderer struct {
	mock.Mock
}

func (m *MockChartRenderer) RenderHealth(snapshot models.HealthSnapshot, at time.Time, path string) error {
	args := m.Called(snapshot, at, path)
	return args.Error(0)
}
