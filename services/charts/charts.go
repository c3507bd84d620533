package charts

import (
	"fmt"
	"image/color"
	"time"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"

	"dnabot/core"
	"dnabot/core/log"
	"dnabot/models"
)

// HealthColor is the bar colour for a category health score
type HealthColor string

const (
	HealthColorGreen     HealthColor = "green"
	HealthColorGoldenrod HealthColor = "goldenrod"
	HealthColorRed       HealthColor = "red"
)

// Color returns the colour's drawing value
func (c HealthColor) Color() color.RGBA {
	switch c {
	case HealthColorGreen:
		return color.RGBA{R: 0, G: 128, B: 0, A: 255}
	case HealthColorGoldenrod:
		return color.RGBA{R: 218, G: 165, B: 32, A: 255}
	default:
		return color.RGBA{R: 255, G: 0, B: 0, A: 255}
	}
}

// AssignHealthColor maps a 0-100 score to a colour. Thresholds are strict:
// above 60 is green, above 30 is goldenrod, anything else is red.
func AssignHealthColor(score int) HealthColor {
	switch {
	case score > 60:
		return HealthColorGreen
	case score > 30:
		return HealthColorGoldenrod
	default:
		return HealthColorRed
	}
}

const (
	barHeight = 100
	yAxisMax  = 200
)

// Renderer draws network health snapshots as bar charts
type Renderer struct {
	width    vg.Length
	height   vg.Length
	barWidth vg.Length
}

// NewRenderer creates a renderer producing 10x6 inch images
func NewRenderer() *Renderer {
	return &Renderer{
		width:    10 * vg.Inch,
		height:   6 * vg.Inch,
		barWidth: vg.Points(60),
	}
}

// RenderHealth draws one fixed-height bar per category, coloured by score and annotated
// with healthy and unhealthy counts, and saves it to path. The format follows the extension.
func (r *Renderer) RenderHealth(snapshot models.HealthSnapshot, at time.Time, path string) error {
	log.Debug("📋 Starting to render network health chart", "path", path, "categories", len(snapshot.Categories))

	p := plot.New()
	p.Title.Text = Title(snapshot.OverallScore, at)
	p.Y.Min = 0
	p.Y.Max = yAxisMax
	p.HideY()

	names := make([]string, 0, len(snapshot.Categories))
	positions := make(plotter.XYs, 0, len(snapshot.Categories))
	labels := make([]string, 0, len(snapshot.Categories))

	for i, category := range snapshot.Categories {
		bar, err := plotter.NewBarChart(plotter.Values{barHeight}, r.barWidth)
		if err != nil {
			return &core.RenderError{Path: path, Err: fmt.Errorf("failed to create bar for %s: %w", category.Name, err)}
		}
		bar.XMin = float64(i)
		bar.Color = AssignHealthColor(category.Score).Color()
		p.Add(bar)

		names = append(names, category.Name)
		positions = append(positions, plotter.XY{X: float64(i), Y: barHeight})
		labels = append(labels, BarLabel(category))
	}

	if len(snapshot.Categories) > 0 {
		annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: positions, Labels: labels})
		if err != nil {
			return &core.RenderError{Path: path, Err: fmt.Errorf("failed to create labels: %w", err)}
		}
		for i := range annotations.TextStyle {
			annotations.TextStyle[i].XAlign = text.XCenter
		}
		annotations.Offset = vg.Point{Y: vg.Points(4)}
		p.Add(annotations)
		p.NominalX(names...)
	}

	if err := p.Save(r.width, r.height, path); err != nil {
		return &core.RenderError{Path: path, Err: err}
	}

	log.Debug("📋 Completed successfully - rendered network health chart", "path", path)
	return nil
}

// Title is the chart heading: local timestamp and overall score
func Title(overallScore int, at time.Time) string {
	return fmt.Sprintf("Network Device Health as of %s\n%d%% Healthy",
		at.Local().Format("2006-01-02 15:04:05 MST"), overallScore)
}

// BarLabel is the annotation drawn above a category's bar
func BarLabel(category models.CategoryHealth) string {
	return fmt.Sprintf("%d/%d Healthy\n%d Poor/Fair/No Data",
		category.Healthy, category.Total, category.Unhealthy())
}
