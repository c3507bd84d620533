package dnacenter

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/samber/mo"

	"dnabot/clients"
	"dnabot/clients/rest"
	"dnabot/core/log"
	"dnabot/models"
)

const (
	authTokenPath     = "/dna/system/api/v1/auth/token"
	networkDevicePath = "/dna/intent/api/v1/network-device/%d/%d"
	networkHealthPath = "/dna/intent/api/v1/network-health"
	imageImportPath   = "/dna/intent/api/v1/image/importation"

	// AuthTokenHeader carries the controller token on every authenticated call
	AuthTokenHeader = "X-Auth-Token"
	// RunSyncHeader forces the controller to compute results inline
	RunSyncHeader = "__runsync"
)

// DNACenterClient implements the clients.DNACenterClient interface
type DNACenterClient struct {
	rest *rest.Client
}

var _ clients.DNACenterClient = (*DNACenterClient)(nil)

type tokenResponse struct {
	Token string `json:"Token"`
}

type devicesResponse struct {
	Response []models.InventoryRecord `json:"response"`
}

type imagesResponse struct {
	Response []models.SoftwareImage `json:"response"`
}

// NewDNACenterClient creates an unauthenticated controller client
func NewDNACenterClient(baseURL string, sslVerify bool, timeout time.Duration) *DNACenterClient {
	return &DNACenterClient{
		rest: rest.NewClient(baseURL, map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		}, sslVerify, timeout),
	}
}

// Authenticate obtains a token with basic credentials and returns a client that sends it
// on every call. The receiver is left unchanged.
func (c *DNACenterClient) Authenticate(ctx context.Context, username, password string) (*DNACenterClient, error) {
	log.Info("📋 Starting to authenticate with DNA Center", "base_url", c.rest.BaseURL())

	credentials := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
	body, err := c.rest.Post(ctx, authTokenPath, nil, rest.HeaderOverrides{
		"Authorization": mo.Some("Basic " + credentials),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to request auth token: %w", err)
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return nil, fmt.Errorf("failed to decode auth token response: %w", err)
	}
	if token.Token == "" {
		return nil, fmt.Errorf("auth token response did not contain a token")
	}

	log.Info("📋 Completed successfully - authenticated with DNA Center")
	return &DNACenterClient{
		rest: c.rest.WithHeaders(map[string]string{AuthTokenHeader: token.Token}),
	}, nil
}

// GetNetworkHealth fetches the health snapshot at timestampMillis with synchronous execution forced
func (c *DNACenterClient) GetNetworkHealth(ctx context.Context, timestampMillis int64) (json.RawMessage, error) {
	query := url.Values{}
	query.Set("timestamp", fmt.Sprintf("%d", timestampMillis))

	body, err := c.rest.Get(ctx, networkHealthPath+"?"+query.Encode(), rest.HeaderOverrides{
		RunSyncHeader: mo.Some("true"),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get network health: %w", err)
	}
	return body, nil
}

// GetNetworkDevices fetches count devices beginning at the 1-based index start
func (c *DNACenterClient) GetNetworkDevices(ctx context.Context, start, count int) ([]models.InventoryRecord, error) {
	body, err := c.rest.Get(ctx, fmt.Sprintf(networkDevicePath, start, count), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get network devices: %w", err)
	}

	var devices devicesResponse
	if err := json.Unmarshal(body, &devices); err != nil {
		return nil, fmt.Errorf("failed to decode network devices: %w", err)
	}
	return devices.Response, nil
}

// GetSoftwareImages lists images from the image repository.
// An empty family lists every family; ccoOnly restricts to CCO-recommended images.
func (c *DNACenterClient) GetSoftwareImages(
	ctx context.Context,
	family string,
	ccoOnly bool,
) ([]models.SoftwareImage, error) {
	path := imageImportPath
	query := url.Values{}
	if family != "" {
		query.Set("family", family)
	}
	if ccoOnly {
		query.Set("isCCORecommended", "true")
	}
	if len(query) > 0 {
		path += "?" + query.Encode()
	}

	body, err := c.rest.Get(ctx, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get software images: %w", err)
	}

	var images imagesResponse
	if err := json.Unmarshal(body, &images); err != nil {
		return nil, fmt.Errorf("failed to decode software images: %w", err)
	}
	return images.Response, nil
}
