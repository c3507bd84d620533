package dnacenter

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"dnabot/core/log"
	"dnabot/models"
)

const (
	noImagesMsg        = "No images are available which meet the specified criteria."
	softwareFailedMsg  = "There was a problem retrieving software images from Cisco DNA Center.  Please contact your system administrator"
	platformsHeaderMsg = "Software images are available for the following platforms:\n"
)

func (s *DNACenterService) softwarePlatforms(ctx context.Context) *models.ResponseEnvelope {
	images, err := s.client.GetSoftwareImages(ctx, "", false)
	if err != nil {
		log.Error("❌ Failed to get software images", "error", err)
		return models.NewErrorResponse(softwareFailedMsg, softwareFailedMsg)
	}

	var families []string
	for _, image := range images {
		families = append(families, image.Family)
	}
	slices.Sort(families)
	families = slices.Compact(families)

	var message, rich strings.Builder
	message.WriteString(platformsHeaderMsg)
	rich.WriteString(platformsHeaderMsg + "\n")
	for _, family := range families {
		fmt.Fprintf(&message, "%s\n", family)
		fmt.Fprintf(&rich, "**%s**\n\n", family)
	}
	return models.NewMessageResponse(message.String(), rich.String())
}

func (s *DNACenterService) softwareImages(ctx context.Context, family string, ccoOnly bool) *models.ResponseEnvelope {
	images, err := s.client.GetSoftwareImages(ctx, family, ccoOnly)
	if err != nil {
		log.Error("❌ Failed to get software images", "family", family, "cco_only", ccoOnly, "error", err)
		return models.NewErrorResponse(softwareFailedMsg, softwareFailedMsg)
	}
	if len(images) == 0 {
		return models.NewMessageResponse(noImagesMsg, noImagesMsg)
	}

	// Families keep the order in which the controller first lists them
	var order []string
	byFamily := make(map[string][]models.SoftwareImage)
	for _, image := range images {
		if _, seen := byFamily[image.Family]; !seen {
			order = append(order, image.Family)
		}
		byFamily[image.Family] = append(byFamily[image.Family], image)
	}

	var message, rich strings.Builder
	message.WriteString("The following images are available:\n\n")
	rich.WriteString("The following images are available:\n\n")
	for _, fam := range order {
		fmt.Fprintf(&message, "Platform: %s\n", fam)
		fmt.Fprintf(&rich, "**Platform: %s**\n\n", fam)
		for _, image := range byFamily[fam] {
			fmt.Fprintf(&message, "\t%s\n", image.Name)
			fmt.Fprintf(&rich, "- %s (created %s)\n", image.Name, image.CreatedTime)
		}
		message.WriteString("\n")
		rich.WriteString("\n")
	}

	log.Debug("📋 Completed successfully - listed software images", "images", len(images), "families", len(order))
	return models.NewMessageResponse(message.String(), rich.String())
}
