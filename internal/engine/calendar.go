package engine

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-zodiac/internal/config"
)

// Calendar exports analysed birthdays as yearly all-day iCalendar events.
type Calendar struct {
	Clock Clock

	// FormatSummary lets callers localise the event title.
	FormatSummary func(name string, r AnalysisResult) string
}

// Encode renders one event per valid item. Invalid items are left out;
// with nothing to export a minimal empty VCALENDAR is returned.
func (c *Calendar) Encode(items []ContactAnalysis) ([]byte, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	var clock Clock = RealClock{}
	if c.Clock != nil {
		clock = c.Clock
	}
	stamp := ical.NewProp(config.PropDTStamp)
	stamp.SetDateTime(clock.Now().UTC())

	for _, it := range items {
		if !it.Result.ValidDate {
			continue
		}
		event := c.newEvent(it)
		event.Props.Set(stamp)
		cal.Children = append(cal.Children, event.Component)
	}

	if len(cal.Children) == 0 {
		return []byte(config.StubVCalendar), nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	slog.Info(config.MsgCalendarBuilt,
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyEvents, len(cal.Children))
	return buf.Bytes(), nil
}

func (c *Calendar) newEvent(it ContactAnalysis) *ical.Event {
	r := it.Result
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, it.UID, config.ICalDomain))

	summary := fmt.Sprintf(config.FormatSummary, it.Name, r.WesternZodiac, r.ChineseZodiac)
	if c.FormatSummary != nil {
		summary = c.FormatSummary(it.Name, r)
	}
	event.Props.SetText(config.PropSummary, summary)
	event.Props.SetText(config.PropDescription, r.String())

	start := ical.NewProp(config.PropDTStart)
	start.SetDate(time.Date(r.Year, time.Month(r.Month), r.Day, 0, 0, 0, 0, time.UTC))
	event.Props.Set(start)

	// Set the value directly; SetText would escape the rule.
	rrule := ical.NewProp(config.PropRRule)
	rrule.Value = config.ICalYearlyRule
	event.Props.Set(rrule)

	return event
}
