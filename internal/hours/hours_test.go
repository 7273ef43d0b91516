package hours

import (
	"testing"

	"landscape/internal/model"
)

func TestIsOpenDuring(t *testing.T) {
	weekday := model.WeeklyHours{model.Monday: {"09:00", "17:00"}}
	lateNight := model.WeeklyHours{model.Friday: {"18:00", "02:00"}}
	saturday := model.WeeklyHours{model.Saturday: {"10:00", "22:00"}}
	earlyBird := model.WeeklyHours{model.Monday: {"00:00", "06:00"}}
	dawn := model.WeeklyHours{model.Monday: {"04:00", "08:00"}}

	tests := []struct {
		name       string
		hours      model.WeeklyHours
		days       []model.DayOfWeek
		start, end int
		want       Status
	}{
		{"nil hours", nil, []model.DayOfWeek{model.Monday}, 10, 14, Unknown},
		{"no days selected", weekday, nil, 10, 14, Unknown},
		{"overlap inside hours", weekday, []model.DayOfWeek{model.Monday}, 10, 14, Open},
		{"day without entry", weekday, []model.DayOfWeek{model.Tuesday}, 10, 14, Unknown},
		{"after closing", weekday, []model.DayOfWeek{model.Monday}, 18, 20, Closed},
		{"window ends at opening", weekday, []model.DayOfWeek{model.Monday}, 7, 9, Closed},
		{"window starts at closing", weekday, []model.DayOfWeek{model.Monday}, 17, 20, Closed},
		{"midnight crossover late", lateNight, []model.DayOfWeek{model.Friday}, 23, 1, Open},
		{"late window across midnight", lateNight, []model.DayOfWeek{model.Friday}, 22, 3, Open},
		{"late window ending at midnight", lateNight, []model.DayOfWeek{model.Friday}, 23, 0, Open},
		{"late window after daytime close", weekday, []model.DayOfWeek{model.Monday}, 23, 1, Closed},
		{"late window reaching early opening", earlyBird, []model.DayOfWeek{model.Monday}, 23, 1, Open},
		{"late window before dawn opening", dawn, []model.DayOfWeek{model.Monday}, 23, 4, Closed},
		{"midnight crossover daytime", lateNight, []model.DayOfWeek{model.Friday}, 10, 14, Closed},
		{"midnight crossover early morning", lateNight, []model.DayOfWeek{model.Friday}, 0, 1, Open},
		{"point inside", saturday, []model.DayOfWeek{model.Saturday}, 12, 12, Open},
		{"point after close", saturday, []model.DayOfWeek{model.Saturday}, 23, 23, Closed},
		{"point at close is closed", saturday, []model.DayOfWeek{model.Saturday}, 22, 22, Closed},
		{"point at open", saturday, []model.DayOfWeek{model.Saturday}, 10, 10, Open},
		{"point crossover after midnight", lateNight, []model.DayOfWeek{model.Friday}, 1, 1, Open},
		{"point crossover at close", lateNight, []model.DayOfWeek{model.Friday}, 2, 2, Closed},
		{"any selected day open", weekday, []model.DayOfWeek{model.Tuesday, model.Monday}, 10, 14, Open},
		{"known day closed, other unknown", weekday, []model.DayOfWeek{model.Sunday, model.Monday}, 20, 22, Closed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsOpenDuring(tt.hours, tt.days, tt.start, tt.end); got != tt.want {
				t.Errorf("IsOpenDuring() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsOpenDuringMalformedHours(t *testing.T) {
	h := model.WeeklyHours{
		model.Monday:  {"nine", "17:00"},
		model.Tuesday: {"09:00", "17:00"},
	}

	if got := IsOpenDuring(h, []model.DayOfWeek{model.Monday}, 10, 14); got != Unknown {
		t.Errorf("malformed day = %v, want unknown", got)
	}
	if got := IsOpenDuring(h, []model.DayOfWeek{model.Monday, model.Tuesday}, 18, 20); got != Closed {
		t.Errorf("malformed plus known day = %v, want closed", got)
	}
}

func TestParseHour(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"09:00", 9, true},
		{"17:59", 17, true},
		{"00:30", 0, true},
		{"24:00", 24, true},
		{"7", 7, true},
		{"", 0, false},
		{"ab:00", 0, false},
		{"25:00", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseHour(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseHour(%q) = %d, %v; want %d, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestStatusLabels(t *testing.T) {
	if Open.Label() != "OPEN" || Closed.Label() != "CLOSED" || Unknown.Label() != "" {
		t.Errorf("unexpected labels %q %q %q", Open.Label(), Closed.Label(), Unknown.Label())
	}
	if Unknown.Known() || !Closed.Known() {
		t.Error("Known() misreports")
	}
}
