package dnacenter

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"

	"dnabot/core"
	"dnabot/core/log"
	"dnabot/models"
)

const (
	// InventoryPageSize is the number of devices requested per page
	InventoryPageSize = 100
	// MaxInventoryPages bounds pagination; a controller that keeps returning full pages past
	// this point yields an error rather than a truncated export.
	MaxInventoryPages = 1000

	inventoryFailedMsg = "There was a problem retrieving the network inventory.  Please contact your system administrator"
)

// collectInventory fetches pages starting at index 1 until an empty or short page
func (s *DNACenterService) collectInventory(ctx context.Context) ([]models.InventoryRecord, error) {
	var devices []models.InventoryRecord
	start := 1

	for page := 0; ; page++ {
		if page >= s.maxInventoryPages {
			return nil, fmt.Errorf("%w: more than %d pages of %d devices", core.ErrInventoryUnbounded,
				s.maxInventoryPages, InventoryPageSize)
		}

		batch, err := s.client.GetNetworkDevices(ctx, start, InventoryPageSize)
		if err != nil {
			return nil, fmt.Errorf("failed to get devices starting at %d: %w", start, err)
		}
		devices = append(devices, batch...)

		if len(batch) < InventoryPageSize {
			return devices, nil
		}
		start += InventoryPageSize
	}
}

// writeInventoryCSV writes the header row and one row per device to path
func writeInventoryCSV(path string, devices []models.InventoryRecord) (err error) {
	file, err := os.Create(path)
	if err != nil {
		return &core.RenderError{Path: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &core.RenderError{Path: path, Err: closeErr}
		}
	}()

	writer := csv.NewWriter(file)
	if err := writer.Write(models.InventoryColumns); err != nil {
		return &core.RenderError{Path: path, Err: err}
	}
	for _, device := range devices {
		if err := writer.Write(device.Row()); err != nil {
			return &core.RenderError{Path: path, Err: err}
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return &core.RenderError{Path: path, Err: err}
	}
	return nil
}

func (s *DNACenterService) networkInventory(ctx context.Context) *models.ResponseEnvelope {
	now := s.now()
	log.Info("📋 Starting to export network inventory")

	devices, err := s.collectInventory(ctx)
	if err != nil {
		log.Error("❌ Failed to collect network inventory", "error", err)
		return models.NewErrorResponse(inventoryFailedMsg, inventoryFailedMsg)
	}

	filename := s.artifactPath("inventory", now.UnixMilli(), "csv")
	if err := writeInventoryCSV(filename, devices); err != nil {
		log.Error("❌ Failed to write inventory file", "error", err)
		return models.NewErrorResponse(inventoryFailedMsg, inventoryFailedMsg)
	}

	caption := "NetworkInventory_" + now.Local().Format("2006-01-02_15:04:05_MST")
	log.Info("📋 Completed successfully - exported network inventory", "devices", len(devices), "file", filename)
	return models.NewFileResponse(caption, caption, filename)
}
