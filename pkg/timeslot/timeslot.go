package timeslot

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const minutesPerDay = 24 * 60

// Slot is a half-open [Start,End) interval inside one operating day.
// Times are "HH:MM" wall-clock strings.
type Slot struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

func (s Slot) String() string {
	return s.Start + "-" + s.End
}

// ParseClock converts "HH:MM" to minutes since midnight.
func ParseClock(value string) (int, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", value)
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in clock value %q", value)
	}

	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in clock value %q", value)
	}

	return hour*60 + minute, nil
}

// FormatClock converts minutes since midnight back to "HH:MM",
// wrapping values past midnight.
func FormatClock(minutes int) string {
	minutes = ((minutes % minutesPerDay) + minutesPerDay) % minutesPerDay
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// SplitIntoSlots breaks the [start,end) window into consecutive slots of
// slotMinutes each. A window whose end is not after its start is treated
// as crossing midnight. Slots that would not fit entirely in the window
// are dropped.
func SplitIntoSlots(start, end string, slotMinutes int) ([]Slot, error) {
	if slotMinutes <= 0 {
		return nil, fmt.Errorf("slot length must be positive, got %d", slotMinutes)
	}

	startMin, err := ParseClock(start)
	if err != nil {
		return nil, err
	}

	endMin, err := ParseClock(end)
	if err != nil {
		return nil, err
	}

	if endMin <= startMin {
		endMin += minutesPerDay
	}

	var slots []Slot
	for cur := startMin; cur+slotMinutes <= endMin; cur += slotMinutes {
		slots = append(slots, Slot{
			Start: FormatClock(cur),
			End:   FormatClock(cur + slotMinutes),
		})
	}

	return slots, nil
}

// Overlaps reports whether the half-open intervals [aStart,aEnd) and
// [bStart,bEnd) intersect. Intervals whose end is not after their start
// are treated as crossing midnight.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	as, err := ParseClock(aStart)
	if err != nil {
		return false
	}
	ae, err := ParseClock(aEnd)
	if err != nil {
		return false
	}
	bs, err := ParseClock(bStart)
	if err != nil {
		return false
	}
	be, err := ParseClock(bEnd)
	if err != nil {
		return false
	}

	if ae <= as {
		ae += minutesPerDay
	}
	if be <= bs {
		be += minutesPerDay
	}

	return as < be && bs < ae
}

// DayOf is the canonical day-boundary conversion: it truncates t to the
// start of its calendar day in the facility timezone. Every component
// that needs "the day of" a timestamp goes through here.
func DayOf(t time.Time, loc *time.Location) time.Time {
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
}

// Weekday returns the 0-6 weekday (0 = Sunday) of a calendar date.
func Weekday(date time.Time) int {
	return int(date.Weekday())
}
