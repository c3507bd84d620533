package middleware

import (
	"context"
	"crypto/md5"
	"fmt"
	"net/http"
	"sync"
	"time"

	"dnabot/clients"
	"dnabot/core/log"
)

type AlertConfig struct {
	RoomID      string // Webex room receiving alerts, alerts are disabled when empty
	Environment string
	AppName     string
}

type ErrorAlertMiddleware struct {
	config        AlertConfig
	webex         clients.WebexClient
	alertedErrors map[string]time.Time // hash -> last alert time
	mutex         sync.Mutex
	alertCooldown time.Duration // prevent spam
	pending       sync.WaitGroup
}

func NewErrorAlertMiddleware(config AlertConfig, webex clients.WebexClient) *ErrorAlertMiddleware {
	return &ErrorAlertMiddleware{
		config:        config,
		webex:         webex,
		alertedErrors: make(map[string]time.Time),
		alertCooldown: 10 * time.Minute, // Don't alert same error more than once per 10min
	}
}

// HTTP Middleware - wraps HTTP handlers
func (m *ErrorAlertMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				m.alertOnPanic(fmt.Sprintf("HTTP %s %s", r.Method, r.URL.Path), rec)
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// Background Task Wrapper
func (m *ErrorAlertMiddleware) WrapBackgroundTask(taskName string, task func() error) func() error {
	return func() (err error) {
		defer func() {
			if rec := recover(); rec != nil {
				m.alertOnPanic(fmt.Sprintf("Background task: %s", taskName), rec)
				err = fmt.Errorf("background task %s panicked: %v", taskName, rec)
			}
		}()

		if err := task(); err != nil {
			m.AlertOnError(err, fmt.Sprintf("Background task: %s", taskName))
			return err
		}
		return nil
	}
}

// AlertOnError posts err to the alert room unless the same error was alerted within the cooldown
func (m *ErrorAlertMiddleware) AlertOnError(err error, source string) {
	errorMsg := fmt.Sprintf("%s: %v", source, err)

	// Create hash of error for deduplication
	hash := fmt.Sprintf("%x", md5.Sum([]byte(errorMsg)))

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if lastAlert, exists := m.alertedErrors[hash]; exists {
		if time.Since(lastAlert) < m.alertCooldown {
			return // Skip alert - too recent
		}
	}

	m.sendAsync(errorMsg, source)
	m.alertedErrors[hash] = time.Now()
}

// Wait blocks until in-flight alerts have been sent
func (m *ErrorAlertMiddleware) Wait() {
	m.pending.Wait()
}

func (m *ErrorAlertMiddleware) alertOnPanic(source string, rec any) {
	errorMsg := fmt.Sprintf("%s: PANIC - %v", source, rec)
	log.Error("❌ Recovered from panic", "context", source, "panic", rec)
	m.sendAsync(errorMsg, source+" (PANIC)")
}

func (m *ErrorAlertMiddleware) sendAsync(errorMsg, source string) {
	if m.config.RoomID == "" || m.webex == nil {
		return // Alerts disabled
	}
	m.pending.Add(1)
	go func() {
		defer m.pending.Done()
		m.sendWebexAlert(errorMsg, source)
	}()
}

func (m *ErrorAlertMiddleware) sendWebexAlert(errorMsg, alertContext string) {
	prefix := ""
	if m.config.Environment == "dev" {
		prefix = "[dev] "
	}

	text := fmt.Sprintf("🚨 %s[%s] Error Alert\nService: %s\nEnvironment: %s\nContext: %s\nError: %s",
		prefix, m.config.AppName, m.config.AppName, m.config.Environment, alertContext, errorMsg)
	markdown := fmt.Sprintf("### 🚨 %s[%s] Error Alert\n**Service:** %s  \n**Environment:** %s  \n**Context:** %s\n\n```\n%s\n```",
		prefix, m.config.AppName, m.config.AppName, m.config.Environment, alertContext, errorMsg)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if _, err := m.webex.SendMessage(ctx, m.config.RoomID, text, markdown); err != nil {
		log.Error("❌ Failed to send Webex alert", "error", err)
	}
}
