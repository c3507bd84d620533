package dnacenter

import (
	"time"

	dps "github.com/markusmobius/go-dateparser"

	"dnabot/core"
)

// DateParser turns free-form date/time text into a point in time
type DateParser interface {
	Parse(text string, now time.Time) (time.Time, error)
}

// NaturalDateParser interprets English date expressions in process-local time
type NaturalDateParser struct {
	location *time.Location
}

// NewNaturalDateParser creates a parser resolving relative and zone-less input in loc.
// A nil loc means time.Local.
func NewNaturalDateParser(loc *time.Location) *NaturalDateParser {
	if loc == nil {
		loc = time.Local
	}
	return &NaturalDateParser{location: loc}
}

// Parse returns core.ErrInvalidTime wrapped in an InvalidInputError when text is not a date
func (p *NaturalDateParser) Parse(text string, now time.Time) (time.Time, error) {
	cfg := &dps.Configuration{
		DefaultLanguages: []string{"en"},
		CurrentTime:      now.In(p.location),
		DefaultTimezone:  p.location,
	}

	parsed, err := dps.Parse(cfg, text)
	if err != nil || parsed.Time.IsZero() {
		return time.Time{}, &core.InvalidInputError{Input: text, Err: core.ErrInvalidTime}
	}
	return parsed.Time, nil
}
