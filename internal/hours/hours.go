package hours

import (
	"strconv"
	"strings"

	"landscape/internal/model"
)

// IsOpenDuring decides whether a weekly schedule is open on any of the given
// days during [start, end). When start == end the query is a single hour;
// when start > end the window runs past midnight, so 23 to 1 covers 23:00
// through 00:59 of the same schedule day.
//
// Days without an entry count as closed that day. If none of the selected
// days has an entry the result is Unknown, not Closed.
func IsOpenDuring(h model.WeeklyHours, days []model.DayOfWeek, start, end int) Status {
	if h == nil || len(days) == 0 {
		return Unknown
	}

	known := false
	for _, day := range days {
		entry, ok := h[day]
		if !ok {
			continue
		}
		opens, okOpen := ParseHour(entry[0])
		closes, okClose := ParseHour(entry[1])
		if !okOpen || !okClose {
			continue
		}
		known = true

		if openAt(opens, closes, start, end) {
			return Open
		}
	}

	if known {
		return Closed
	}
	return Unknown
}

func openAt(opens, closes, start, end int) bool {
	// A window whose end is before its start runs past midnight.
	if start > end {
		if end == 0 {
			return openAt(opens, closes, start, 24)
		}
		return openAt(opens, closes, start, 24) || openAt(opens, closes, 0, end)
	}

	crossesMidnight := closes <= opens

	if start == end {
		if crossesMidnight {
			return start >= opens || start < closes
		}
		return start >= opens && start < closes
	}

	if crossesMidnight {
		return opens < end || start < closes
	}
	return start < closes && opens < end
}

// ParseHour extracts the integer hour from an "HH:MM" string. Minutes are
// truncated.
func ParseHour(s string) (int, bool) {
	head, _, _ := strings.Cut(strings.TrimSpace(s), ":")
	h, err := strconv.Atoi(head)
	if err != nil || h < 0 || h > 24 {
		return 0, false
	}
	return h, true
}
