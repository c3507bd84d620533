package dnacenter

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnabot/core"
)

func TestNaturalDateParser_Parse(t *testing.T) {
	loc := time.FixedZone("TEST", 2*60*60)
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, loc)
	parser := NewNaturalDateParser(loc)

	t.Run("clock time resolves to today", func(t *testing.T) {
		got, err := parser.Parse("06:21", now)
		require.NoError(t, err)
		assert.Equal(t, 6, got.Hour())
		assert.Equal(t, 21, got.Minute())
		assert.Equal(t, 15, got.Day())
	})

	t.Run("absolute date and time", func(t *testing.T) {
		got, err := parser.Parse("2024-01-01 18:00", now)
		require.NoError(t, err)
		want := time.Date(2024, 1, 1, 18, 0, 0, 0, loc)
		assert.True(t, want.Equal(got), "got %s", got)
	})

	t.Run("garbage is invalid time", func(t *testing.T) {
		_, err := parser.Parse("not a date at all", now)
		require.Error(t, err)
		assert.True(t, errors.Is(err, core.ErrInvalidTime))

		var inputErr *core.InvalidInputError
		require.ErrorAs(t, err, &inputErr)
		assert.Equal(t, "not a date at all", inputErr.Input)
	})
}

func TestNewNaturalDateParser_DefaultsToLocal(t *testing.T) {
	assert.Equal(t, time.Local, NewNaturalDateParser(nil).location)
}
