package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewFileResponse_HasPath(t *testing.T) {
	resp := NewFileResponse("NetworkHealth_1", "", "/tmp/NetworkHealth_1.png")

	assert.Equal(t, ResponseKindFile, resp.Kind)
	path, ok := resp.FilePath.Get()
	require.True(t, ok)
	assert.Equal(t, "/tmp/NetworkHealth_1.png", path)
}

func TestNewFileResponse_EmptyPathPanics(t *testing.T) {
	assert.Panics(t, func() { NewFileResponse("caption", "", "") })
}

func TestMessageAndErrorResponses_HaveNoPath(t *testing.T) {
	for _, resp := range []*ResponseEnvelope{
		NewMessageResponse("hello", "**hello**"),
		NewErrorResponse("boom", "***boom***"),
	} {
		assert.False(t, resp.FilePath.IsPresent())
	}
	assert.True(t, NewErrorResponse("boom", "").IsError())
	assert.False(t, NewMessageResponse("hello", "").IsError())
}

func TestResponseEnvelope_MarshalJSON(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		data, err := json.Marshal(NewMessageResponse("plain", "rich"))
		require.NoError(t, err)
		assert.JSONEq(t, `{"responseType":"message","data":{"message":"plain","richmessage":"rich"}}`, string(data))
	})

	t.Run("file", func(t *testing.T) {
		data, err := json.Marshal(NewFileResponse("NetworkInventory_x", "", "/tmp/inventory_1.csv"))
		require.NoError(t, err)
		assert.JSONEq(t,
			`{"responseType":"file","data":{"message":"NetworkInventory_x","richmessage":"","file":"/tmp/inventory_1.csv"}}`,
			string(data),
		)
	})
}
