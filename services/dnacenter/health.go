package dnacenter

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dnabot/core"
	"dnabot/core/log"
	"dnabot/models"
)

// HealthDistributionKeys are the accepted names of the per-category health list, in order of
// preference. Some controller releases spell the field "healthDistirubution".
var HealthDistributionKeys = []string{"healthDistribution", "healthDistirubution"}

const (
	healthFetchFailedMsg = "An error was encountered when retrieving network health.  " +
		"Please contact your system administrator"
	healthUnsupportedMsg = "There was a problem getting the network health.  " +
		"This version of Cisco DNA Center may not support the called API. " +
		"If this request was for a date/time, please make sure that Cisco DNA Center was " +
		"running at the specified time (otherwise the health data would not be present)"
	healthHint     = "If you were attempting to obtain health for a specific time, make sure Cisco DNA Center was running on the specified date / time."
	healthChartMsg = "There was a problem generating the health chart.  Check the logs for details"
)

// ParseHealthResponse interprets a network-health payload.
// Checks run in order: deferred execution, remote error, then the health data itself.
func ParseHealthResponse(body json.RawMessage) (*models.HealthSnapshot, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil || fields == nil {
		return nil, &core.InvalidInputError{Input: "network health response", Err: fmt.Errorf("not a JSON object")}
	}

	if _, ok := fields["executionId"]; ok {
		return nil, core.ErrUnsupportedVersion
	}

	if raw, ok := fields["errorResponse"]; ok {
		var errResp models.HealthErrorResponse
		if err := json.Unmarshal(raw, &errResp); err != nil || len(errResp.ComponentErrorResponse) == 0 {
			return nil, &core.RemoteApplicationError{Code: "unknown", Message: string(raw)}
		}
		first := errResp.ComponentErrorResponse[0]
		return nil, &core.RemoteApplicationError{Code: first.CompErrorCode, Message: first.CompErrorMessage}
	}

	var overall []models.OverallHealth
	if err := json.Unmarshal(fields["response"], &overall); err != nil || len(overall) == 0 {
		return nil, &core.InvalidInputError{Input: "network health response", Err: fmt.Errorf("missing overall health score")}
	}

	var distribution []models.HealthDistributionEntry
	found := false
	for _, key := range HealthDistributionKeys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, &distribution); err != nil {
			return nil, &core.InvalidInputError{Input: key, Err: err}
		}
		found = true
		break
	}
	if !found {
		return nil, &core.InvalidInputError{Input: "network health response", Err: fmt.Errorf("missing health distribution")}
	}

	snapshot := &models.HealthSnapshot{
		OverallScore: overall[0].HealthScore,
		Categories:   make([]models.CategoryHealth, 0, len(distribution)),
	}
	for _, entry := range distribution {
		snapshot.Categories = append(snapshot.Categories, models.CategoryHealth{
			Name:    entry.Category,
			Total:   entry.TotalCount,
			Healthy: entry.GoodCount,
			Score:   entry.HealthScore,
		})
	}
	return snapshot, nil
}

func (s *DNACenterService) networkHealth(ctx context.Context, at time.Time) *models.ResponseEnvelope {
	timestamp := at.UnixMilli()
	log.Info("📋 Starting to get network health", "timestamp", timestamp)

	body, err := s.client.GetNetworkHealth(ctx, timestamp)
	if err != nil {
		log.Error("❌ Failed to get network health", "error", err)
		return models.NewErrorResponse(healthFetchFailedMsg, healthFetchFailedMsg)
	}

	snapshot, err := ParseHealthResponse(body)
	if err != nil {
		return healthErrorResponse(err)
	}

	filename := s.artifactPath("NetworkHealth", timestamp, "png")
	if err := s.renderer.RenderHealth(*snapshot, at, filename); err != nil {
		log.Error("❌ Failed to render network health chart", "error", err)
		return models.NewErrorResponse(healthChartMsg, healthChartMsg)
	}

	caption := fmt.Sprintf("NetworkHealth_%d", timestamp)
	log.Info("📋 Completed successfully - generated network health chart", "file", filename)
	return models.NewFileResponse(caption, caption, filename)
}

func healthErrorResponse(err error) *models.ResponseEnvelope {
	if errors.Is(err, core.ErrUnsupportedVersion) {
		log.Warn("⚠️ Controller deferred network health computation", "error", err)
		return models.NewErrorResponse(healthUnsupportedMsg, healthUnsupportedMsg)
	}

	var remoteErr *core.RemoteApplicationError
	if errors.As(err, &remoteErr) {
		log.Error("❌ Controller returned an error for network health", "code", remoteErr.Code, "message", remoteErr.Message)
		message := fmt.Sprintf("Error getting Cisco DNA network health... Error code %s (%s) Hint: %s",
			remoteErr.Code, remoteErr.Message, healthHint)
		rich := fmt.Sprintf("\n\nError getting Cisco DNA network health... Error code %s (%s)\n\n**Hint:** *%s*\n\n",
			remoteErr.Code, remoteErr.Message, healthHint)
		return models.NewErrorResponse(message, rich)
	}

	log.Error("❌ Failed to interpret network health response", "error", err)
	return models.NewErrorResponse(healthFetchFailedMsg, healthFetchFailedMsg)
}
