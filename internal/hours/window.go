package hours

import (
	"fmt"
	"strings"

	"landscape/internal/model"
)

const (
	MinHour = 0
	MaxHour = 24
)

// Window is the user's time filter: a set of weekdays and an hour range.
type Window struct {
	Enabled bool
	Days    []model.DayOfWeek
	Start   int
	End     int
}

// FormatHour renders an hour slider value ("12am", "9am", "12pm", "6pm").
func FormatHour(h int) string {
	switch {
	case h == 0 || h == 24:
		return "12am"
	case h == 12:
		return "12pm"
	case h < 12:
		return fmt.Sprintf("%dam", h)
	default:
		return fmt.Sprintf("%dpm", h-12)
	}
}

// Badge summarizes the window, e.g. "Fri, Sun 2pm–6pm".
func (w Window) Badge() string {
	var labels []string
	for _, d := range model.Weekdays {
		if w.hasDay(d) {
			labels = append(labels, d.Label())
		}
	}
	if len(labels) == 0 {
		return "No days selected"
	}
	return fmt.Sprintf("%s %s–%s", strings.Join(labels, ", "), FormatHour(w.Start), FormatHour(w.End))
}

// SetStart moves the start slider, pushing End up when they would cross.
func (w *Window) SetStart(v int) {
	v = ClampHour(v)
	w.Start = v
	if v > w.End {
		w.End = v
	}
}

// SetEnd moves the end slider, pulling Start down when they would cross.
func (w *Window) SetEnd(v int) {
	v = ClampHour(v)
	w.End = v
	if v < w.Start {
		w.Start = v
	}
}

// Status evaluates the window against a schedule. A disabled window is
// always Unknown.
func (w Window) Status(h model.WeeklyHours) Status {
	if !w.Enabled {
		return Unknown
	}
	return IsOpenDuring(h, w.Days, w.Start, w.End)
}

func (w Window) hasDay(d model.DayOfWeek) bool {
	for _, x := range w.Days {
		if x == d {
			return true
		}
	}
	return false
}

// ClampHour limits v to MinHour..MaxHour.
func ClampHour(v int) int {
	if v < MinHour {
		return MinHour
	}
	if v > MaxHour {
		return MaxHour
	}
	return v
}
