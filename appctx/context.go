package appctx

import (
	"context"
)

type contextKey string

const (
	RequestIDContextKey contextKey = "request_id"
	RoomIDContextKey    contextKey = "room_id"
)

// SetRequestID tags the context with a correlation id for logs
func SetRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDContextKey, requestID)
}

// GetRequestID extracts the correlation id from the context
func GetRequestID(ctx context.Context) (string, bool) {
	requestID, ok := ctx.Value(RequestIDContextKey).(string)
	return requestID, ok
}

// SetRoomID records the Webex room a command came from
func SetRoomID(ctx context.Context, roomID string) context.Context {
	return context.WithValue(ctx, RoomIDContextKey, roomID)
}

// GetRoomID extracts the Webex room id from the context
func GetRoomID(ctx context.Context) (string, bool) {
	roomID, ok := ctx.Value(RoomIDContextKey).(string)
	return roomID, ok
}
