package engine_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-zodiac/internal/config"
	"github.com/tartampluch/go-zodiac/internal/engine"
)

// MockClock controls time for deterministic testing.
type MockClock struct {
	CurrentTime time.Time
}

func (m MockClock) Now() time.Time {
	return m.CurrentTime
}

func TestCalendar_Encode(t *testing.T) {
	items, err := engine.AnalyzeContacts(context.Background(), strings.NewReader(addressBook))
	require.NoError(t, err)

	c := &engine.Calendar{Clock: MockClock{CurrentTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}}
	data, err := c.Encode(items)
	require.NoError(t, err)

	ics := string(data)
	assert.Contains(t, ics, "BEGIN:VCALENDAR")
	assert.Contains(t, ics, "X-WR-CALNAME:"+config.ICalCalName)
	assert.Contains(t, ics, "SUMMARY:Ada Leap: Pisces / Monkey")
	assert.Contains(t, ics, "DTSTART;VALUE=DATE:20040229")
	assert.Contains(t, ics, "RRULE:FREQ=YEARLY")
	assert.Contains(t, ics, "DTSTAMP:20250601T120000Z")
	assert.Contains(t, ics, "@"+config.ICalDomain)
	assert.NotContains(t, ics, "Too Old", "invalid dates are not exported")

	// The output must round-trip through the decoder with one event per valid item.
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	assert.Len(t, cal.Events(), 2)
}

func TestCalendar_Encode_CustomSummary(t *testing.T) {
	items := []engine.ContactAnalysis{{UID: "abc", Name: "Eve", Result: engine.Analyze(23, 7, 2002)}}

	c := &engine.Calendar{
		Clock: MockClock{CurrentTime: time.Now()},
		FormatSummary: func(name string, r engine.AnalysisResult) string {
			return "Cumpleaños de " + name + " (" + r.WesternZodiac + ")"
		},
	}
	data, err := c.Encode(items)
	require.NoError(t, err)

	assert.Contains(t, string(data), "Cumpleaños de Eve (Leo)")
	assert.Contains(t, string(data), "UID:abc@"+config.ICalDomain)
}

func TestCalendar_Encode_NothingValid(t *testing.T) {
	items := []engine.ContactAnalysis{{Name: "Nope", Result: engine.Analyze(1, 1, 1999)}}

	c := &engine.Calendar{}
	data, err := c.Encode(items)
	require.NoError(t, err)
	assert.Equal(t, config.StubVCalendar, string(data))
}
