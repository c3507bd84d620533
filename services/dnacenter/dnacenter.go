package dnacenter

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"

	"dnabot/clients"
	"dnabot/core/log"
	"dnabot/metrics"
	"dnabot/models"
	"dnabot/services/commands"
)

const (
	invalidTimeMsg     = "Error getting network health: invalid time entered!"
	invalidTimeRichMsg = "Error getting network health: ***invalid time entered!***"
)

// ChartRenderer draws a health snapshot to an image file
type ChartRenderer interface {
	RenderHealth(snapshot models.HealthSnapshot, at time.Time, path string) error
}

// DNACenterService turns bot commands into controller queries and user-facing responses
type DNACenterService struct {
	client            clients.DNACenterClient
	renderer          ChartRenderer
	dates             DateParser
	tmpDir            string
	now               func() time.Time
	maxInventoryPages int
}

func NewDNACenterService(
	client clients.DNACenterClient,
	renderer ChartRenderer,
	dates DateParser,
	tmpDir string,
) *DNACenterService {
	return &DNACenterService{
		client:            client,
		renderer:          renderer,
		dates:             dates,
		tmpDir:            tmpDir,
		now:               time.Now,
		maxInventoryPages: MaxInventoryPages,
	}
}

// HandleCommand parses text, runs the matching handler and returns exactly one response.
// Failures are reported as error responses, never returned.
func (s *DNACenterService) HandleCommand(ctx context.Context, text string) *models.ResponseEnvelope {
	started := time.Now()
	cmd := commands.Parse(text)
	intent := commands.ResolveIntent(cmd)
	log.Info("📋 Starting to handle command", "intent", intent, "command", cmd.Command, "modifier", cmd.Modifier)

	var response *models.ResponseEnvelope
	switch intent {
	case models.IntentNetworkHealth:
		response = s.networkHealth(ctx, s.now())
	case models.IntentNetworkHealthAt:
		response = s.networkHealthAt(ctx, cmd.Modifier)
	case models.IntentInventory:
		response = s.networkInventory(ctx)
	case models.IntentSoftwarePlatforms:
		response = s.softwarePlatforms(ctx)
	case models.IntentSoftwareRecommendedImages:
		response = s.softwareImages(ctx, cmd.Modifier, true)
	case models.IntentSoftwareImages:
		response = s.softwareImages(ctx, cmd.Modifier, false)
	default:
		response = HelpResponse()
	}

	metrics.ObserveCommand(string(intent), string(response.Kind), started)
	log.Info("📋 Completed successfully - handled command", "intent", intent, "kind", response.Kind)
	return response
}

func (s *DNACenterService) networkHealthAt(ctx context.Context, modifier string) *models.ResponseEnvelope {
	at, err := s.dates.Parse(modifier, s.now())
	if err != nil {
		log.Error("❌ Failed to parse health time", "modifier", modifier, "error", err)
		return models.NewErrorResponse(invalidTimeMsg, invalidTimeRichMsg)
	}
	log.Debug("Parsed health time", "modifier", modifier, "time", at)
	return s.networkHealth(ctx, at)
}

// artifactPath returns <tmpDir>/<prefix>_<timestamp>_<ulid>.<ext>. The ulid keeps concurrent
// requests for the same timestamp from writing to the same file.
func (s *DNACenterService) artifactPath(prefix string, timestamp int64, ext string) string {
	return filepath.Join(s.tmpDir, fmt.Sprintf("%s_%d_%s.%s", prefix, timestamp, ulid.Make().String(), ext))
}
