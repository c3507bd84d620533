package charts

import (
	"bytes"
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dnabot/core"
	"dnabot/models"
)

func TestAssignHealthColor(t *testing.T) {
	tests := []struct {
		score int
		want  HealthColor
	}{
		{100, HealthColorGreen},
		{61, HealthColorGreen},
		{60, HealthColorGoldenrod},
		{31, HealthColorGoldenrod},
		{30, HealthColorRed},
		{0, HealthColorRed},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, AssignHealthColor(tt.score), "score %d", tt.score)
	}
}

func TestHealthColor_Color(t *testing.T) {
	assert.Equal(t, color.RGBA{R: 0, G: 128, B: 0, A: 255}, HealthColorGreen.Color())
	assert.Equal(t, color.RGBA{R: 218, G: 165, B: 32, A: 255}, HealthColorGoldenrod.Color())
	assert.Equal(t, color.RGBA{R: 255, G: 0, B: 0, A: 255}, HealthColorRed.Color())
}

func TestBarLabel(t *testing.T) {
	label := BarLabel(models.CategoryHealth{Name: "Access", Total: 10, Healthy: 7, Score: 70})
	assert.Equal(t, "7/10 Healthy\n3 Poor/Fair/No Data", label)
}

func TestTitle(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.Local)
	title := Title(83, at)
	assert.Contains(t, title, "Network Device Health as of 2024-01-02 03:04:05")
	assert.Contains(t, title, "\n83% Healthy")
}

func TestRenderer_RenderHealth_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "NetworkHealth_1.png")
	snapshot := models.HealthSnapshot{
		OverallScore: 72,
		Categories: []models.CategoryHealth{
			{Name: "Access", Total: 10, Healthy: 9, Score: 90},
			{Name: "Distribution", Total: 4, Healthy: 2, Score: 50},
			{Name: "Core", Total: 2, Healthy: 0, Score: 0},
		},
	}

	err := NewRenderer().RenderHealth(snapshot, time.Now(), path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("\x89PNG\r\n\x1a\n")))
}

func TestRenderer_RenderHealth_UnwritablePath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "chart.png")
	snapshot := models.HealthSnapshot{
		OverallScore: 50,
		Categories:   []models.CategoryHealth{{Name: "Access", Total: 1, Healthy: 1, Score: 100}},
	}

	err := NewRenderer().RenderHealth(snapshot, time.Now(), path)
	require.Error(t, err)

	var renderErr *core.RenderError
	require.True(t, errors.As(err, &renderErr))
	assert.Equal(t, path, renderErr.Path)
}
