package webex

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/gabriel-vasile/mimetype"

	"dnabot/clients"
	"dnabot/clients/rest"
	"dnabot/core"
	"dnabot/models"
)

const (
	messagesPath = "/v1/messages"
	peoplePath   = "/v1/people"
)

// WebexClient implements the clients.WebexClient interface
type WebexClient struct {
	rest *rest.Client
}

var _ clients.WebexClient = (*WebexClient)(nil)

type sendMessageRequest struct {
	RoomID   string `json:"roomId"`
	Text     string `json:"text"`
	Markdown string `json:"markdown,omitempty"`
}

// NewWebexClient creates a client authenticated with the bot's bearer token
func NewWebexClient(baseURL, botToken string, sslVerify bool, timeout time.Duration) *WebexClient {
	return &WebexClient{
		rest: rest.NewClient(baseURL, map[string]string{
			"Content-Type":  "application/json",
			"Accept":        "application/json",
			"Authorization": "Bearer " + botToken,
		}, sslVerify, timeout),
	}
}

// SendMessage posts a text message with an optional markdown rendition to a room
func (c *WebexClient) SendMessage(ctx context.Context, roomID, text, markdown string) (*models.WebexMessage, error) {
	payload, err := json.Marshal(sendMessageRequest{RoomID: roomID, Text: text, Markdown: markdown})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal message: %w", err)
	}

	body, err := c.rest.Post(ctx, messagesPath, bytes.NewReader(payload), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to send message to room %s: %w", roomID, err)
	}
	return decodeMessage(body)
}

// AttachFile uploads a local file to a room as a multipart message with caption as its text
func (c *WebexClient) AttachFile(ctx context.Context, roomID, filePath, caption string) (*models.WebexMessage, error) {
	mtype, err := mimetype.DetectFile(filePath)
	if err != nil {
		return nil, &core.InvalidInputError{Input: filePath, Err: err}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	if err := writer.WriteField("roomId", roomID); err != nil {
		return nil, fmt.Errorf("failed to write roomId field: %w", err)
	}
	if err := writer.WriteField("text", caption); err != nil {
		return nil, fmt.Errorf("failed to write text field: %w", err)
	}

	partHeader := make(textproto.MIMEHeader)
	partHeader.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="files"; filename="%s"`, filepath.Base(filePath)))
	partHeader.Set("Content-Type", mtype.String())
	part, err := writer.CreatePart(partHeader)
	if err != nil {
		return nil, fmt.Errorf("failed to create file part: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy attachment: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.rest.BaseURL()+messagesPath, &buf)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := c.rest.Do(req, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to attach file to room %s: %w", roomID, err)
	}
	return decodeMessage(body)
}

// GetMessage fetches a message by id. Webhooks only carry ids so the text is fetched here.
func (c *WebexClient) GetMessage(ctx context.Context, messageID string) (*models.WebexMessage, error) {
	body, err := c.rest.Get(ctx, messagesPath+"/"+url.PathEscape(messageID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get message %s: %w", messageID, err)
	}
	return decodeMessage(body)
}

// GetPerson fetches a person's profile by id
func (c *WebexClient) GetPerson(ctx context.Context, personID string) (*models.WebexPerson, error) {
	body, err := c.rest.Get(ctx, peoplePath+"/"+url.PathEscape(personID), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get person %s: %w", personID, err)
	}

	var person models.WebexPerson
	if err := json.Unmarshal(body, &person); err != nil {
		return nil, fmt.Errorf("failed to decode person: %w", err)
	}
	return &person, nil
}

func decodeMessage(body json.RawMessage) (*models.WebexMessage, error) {
	var message models.WebexMessage
	if err := json.Unmarshal(body, &message); err != nil {
		return nil, fmt.Errorf("failed to decode message: %w", err)
	}
	return &message, nil
}
