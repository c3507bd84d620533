package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"dnabot/core/log"
	"dnabot/models"
	"dnabot/utils"
)

type DNACenterConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	SSLVerify bool
}

// IsConfigured returns true if all required DNA Center configuration is present
func (c DNACenterConfig) IsConfigured() bool {
	return c.Host != "" &&
		c.Username != "" &&
		c.Password != ""
}

// BaseURL returns the controller's https base URL
func (c DNACenterConfig) BaseURL() string {
	return fmt.Sprintf("https://%s:%d", c.Host, c.Port)
}

type WebexConfig struct {
	APIHost           string
	APIPort           int
	SSLVerify         bool
	BotToken          string
	BotEmail          string
	BotName           string
	OrgID             string
	WebhookSecret     string
	AuthorizedSenders []string
	AlertRoomID       string // Optional, alerts are disabled when empty
}

// IsConfigured returns true if all required Webex configuration is present
func (c WebexConfig) IsConfigured() bool {
	return c.BotToken != "" &&
		c.BotEmail != "" &&
		c.OrgID != "" &&
		c.WebhookSecret != ""
	// Note: BotName, AuthorizedSenders and AlertRoomID are optional
}

// BaseURL returns the Webex API base URL
func (c WebexConfig) BaseURL() string {
	return fmt.Sprintf("https://%s:%d", c.APIHost, c.APIPort)
}

// Identity returns the read-only bot identity used by the webhook validator
func (c WebexConfig) Identity() models.BotIdentity {
	return models.BotIdentity{
		BearerToken:       c.BotToken,
		BotEmail:          c.BotEmail,
		BotName:           c.BotName,
		OrgID:             c.OrgID,
		Secret:            c.WebhookSecret,
		AuthorizedSenders: c.AuthorizedSenders,
	}
}

type AppConfig struct {
	Port                    string // Optional with default "8080"
	Environment             string
	LogLevel                string
	TmpDir                  string
	WorkerPoolSize          int
	HTTPTimeout             time.Duration
	ArtifactRetention       time.Duration
	ArtifactCleanupSchedule string
	CommandAPIKey           string // Optional, the direct command API is disabled when empty
	CORSAllowedOrigins      []string

	DNACenterConfig DNACenterConfig
	WebexConfig     WebexConfig
}

// LoadConfig reads configuration from the environment, optionally seeded from envFile
func LoadConfig(envFile string) (*AppConfig, error) {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Warn("⚠️ Could not load env file, continuing with system env vars", "file", envFile)
	}

	dnacPort, err := getEnvInt("DNAC_PORT", 443)
	if err != nil {
		return nil, err
	}
	webexPort, err := getEnvInt("WEBEX_API_PORT", 443)
	if err != nil {
		return nil, err
	}
	workerPoolSize, err := getEnvInt("WORKER_POOL_SIZE", 1)
	if err != nil {
		return nil, err
	}
	if workerPoolSize < 1 {
		return nil, fmt.Errorf("WORKER_POOL_SIZE must be at least 1, got %d", workerPoolSize)
	}
	httpTimeout, err := getEnvDuration("HTTP_TIMEOUT", 60*time.Second)
	if err != nil {
		return nil, err
	}
	retention, err := getEnvDuration("ARTIFACT_RETENTION", 24*time.Hour)
	if err != nil {
		return nil, err
	}

	tmpDir, err := filepath.Abs(getEnvWithDefault("TMP_DIR", "tmp"))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve TMP_DIR: %w", err)
	}

	config := &AppConfig{
		Port:                    getEnvWithDefault("PORT", "8080"),
		Environment:             getEnvWithDefault("ENVIRONMENT", "dev"),
		LogLevel:                getEnvWithDefault("LOG_LEVEL", "info"),
		TmpDir:                  tmpDir,
		WorkerPoolSize:          workerPoolSize,
		HTTPTimeout:             httpTimeout,
		ArtifactRetention:       retention,
		ArtifactCleanupSchedule: getEnvWithDefault("ARTIFACT_CLEANUP_SCHEDULE", "@every 1h"),
		CommandAPIKey:           os.Getenv("COMMAND_API_KEY"),
		CORSAllowedOrigins:      utils.SplitList(os.Getenv("CORS_ALLOWED_ORIGINS")),

		DNACenterConfig: DNACenterConfig{
			Host:      os.Getenv("DNAC_HOST"),
			Port:      dnacPort,
			Username:  os.Getenv("DNAC_USERNAME"),
			Password:  os.Getenv("DNAC_PASSWORD"),
			SSLVerify: getEnvWithDefault("DNAC_SSL_VERIFY", "true") == "true",
		},

		WebexConfig: WebexConfig{
			APIHost:           getEnvWithDefault("WEBEX_API_HOST", "webexapis.com"),
			APIPort:           webexPort,
			SSLVerify:         getEnvWithDefault("WEBEX_SSL_VERIFY", "true") == "true",
			BotToken:          os.Getenv("WEBEX_BOT_TOKEN"),
			BotEmail:          os.Getenv("WEBEX_BOT_EMAIL"),
			BotName:           os.Getenv("WEBEX_BOT_NAME"),
			OrgID:             os.Getenv("WEBEX_ORG_ID"),
			WebhookSecret:     os.Getenv("WEBEX_WEBHOOK_SECRET"),
			AuthorizedSenders: utils.SplitList(os.Getenv("WEBEX_AUTHORIZED_USERS")),
			AlertRoomID:       os.Getenv("WEBEX_ALERT_ROOM_ID"),
		},
	}

	if !config.DNACenterConfig.IsConfigured() {
		return nil, fmt.Errorf("DNA Center is not fully configured (DNAC_HOST, DNAC_USERNAME, DNAC_PASSWORD)")
	}
	log.Info("✅ DNA Center configured", "host", config.DNACenterConfig.Host, "ssl_verify", config.DNACenterConfig.SSLVerify)

	if !config.WebexConfig.IsConfigured() {
		return nil, fmt.Errorf(
			"webex bot is not fully configured (WEBEX_BOT_TOKEN, WEBEX_BOT_EMAIL, WEBEX_ORG_ID, WEBEX_WEBHOOK_SECRET)",
		)
	}
	log.Info("✅ Webex bot configured", "bot_email", config.WebexConfig.BotEmail)

	if config.CommandAPIKey == "" {
		log.Warn("⚠️ COMMAND_API_KEY not set - direct command API will be disabled")
	}

	return config, nil
}

func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer: %w", key, err)
	}
	return parsed, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be a duration: %w", key, err)
	}
	return parsed, nil
}
