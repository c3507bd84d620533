package models

import (
	"encoding/json"

	"github.com/samber/mo"

	"dnabot/utils"
)

// ResponseKind is the outcome class of a handled command
type ResponseKind string

const (
	ResponseKindMessage ResponseKind = "message"
	ResponseKindError   ResponseKind = "error"
	ResponseKindFile    ResponseKind = "file"
)

// ResponseEnvelope is the single result shape every command handler returns.
// FilePath is present if and only if Kind is ResponseKindFile.
type ResponseEnvelope struct {
	Kind        ResponseKind
	Message     string
	RichMessage string
	FilePath    mo.Option[string]
}

func NewMessageResponse(message, richMessage string) *ResponseEnvelope {
	return &ResponseEnvelope{
		Kind:        ResponseKindMessage,
		Message:     message,
		RichMessage: richMessage,
		FilePath:    mo.None[string](),
	}
}

func NewErrorResponse(message, richMessage string) *ResponseEnvelope {
	return &ResponseEnvelope{
		Kind:        ResponseKindError,
		Message:     message,
		RichMessage: richMessage,
		FilePath:    mo.None[string](),
	}
}

func NewFileResponse(message, richMessage, filePath string) *ResponseEnvelope {
	utils.AssertInvariant(filePath != "", "file response requires a file path")
	return &ResponseEnvelope{
		Kind:        ResponseKindFile,
		Message:     message,
		RichMessage: richMessage,
		FilePath:    mo.Some(filePath),
	}
}

func (r *ResponseEnvelope) IsError() bool {
	return r.Kind == ResponseKindError
}

type responseEnvelopeJSON struct {
	ResponseType ResponseKind         `json:"responseType"`
	Data         responseEnvelopeData `json:"data"`
}

type responseEnvelopeData struct {
	Message     string `json:"message"`
	RichMessage string `json:"richmessage"`
	File        string `json:"file,omitempty"`
}

// MarshalJSON renders {"responseType": ..., "data": {"message", "richmessage", "file"}}
func (r *ResponseEnvelope) MarshalJSON() ([]byte, error) {
	return json.Marshal(responseEnvelopeJSON{
		ResponseType: r.Kind,
		Data: responseEnvelopeData{
			Message:     r.Message,
			RichMessage: r.RichMessage,
			File:        r.FilePath.OrEmpty(),
		},
	})
}
