package slot

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

var (
	ErrInvalidTimeRange  = errors.New("start must be before end")
	ErrZeroStart         = errors.New("start instant is required")
	ErrInvalidDuration   = errors.New("duration must be at least one minute")
	ErrInvalidCount      = errors.New("count must be at least one")
	ErrEmptyDaysOfWeek   = errors.New("at least one day of week is required")
	ErrInvalidDayOfWeek  = errors.New("day of week must be between 0 and 6")
	ErrInvalidTimeOfDay  = errors.New("time of day must be HH:MM")
	ErrInvalidInterval   = errors.New("interval must be at least one minute")
	ErrTemplateTimeOrder = errors.New("end time must be after start time")
)

const timeOfDayLayout = "15:04"

type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() {
		return TimeRange{}, ErrZeroStart
	}
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{start: start, end: end}, nil
}

func (r TimeRange) Start() time.Time        { return r.start }
func (r TimeRange) End() time.Time          { return r.end }
func (r TimeRange) Duration() time.Duration { return r.end.Sub(r.start) }

// Recurrence describes a weekly template: on each listed weekday, bookable
// windows of intervalMinutes are laid back-to-back from startTime to endTime.
type Recurrence struct {
	daysOfWeek      []time.Weekday
	startTime       string // "HH:MM"
	endTime         string // "HH:MM"
	intervalMinutes int
}

func NewRecurrence(daysOfWeek []int, startTime, endTime string, intervalMinutes int) (Recurrence, error) {
	if len(daysOfWeek) == 0 {
		return Recurrence{}, ErrEmptyDaysOfWeek
	}

	seen := map[time.Weekday]bool{}
	days := make([]time.Weekday, 0, len(daysOfWeek))
	for _, d := range daysOfWeek {
		if d < 0 || d > 6 {
			return Recurrence{}, ErrInvalidDayOfWeek
		}
		wd := time.Weekday(d)
		if !seen[wd] {
			seen[wd] = true
			days = append(days, wd)
		}
	}
	sort.Slice(days, func(i, j int) bool { return days[i] < days[j] })

	startMin, err := parseTimeOfDay(startTime)
	if err != nil {
		return Recurrence{}, err
	}
	endMin, err := parseTimeOfDay(endTime)
	if err != nil {
		return Recurrence{}, err
	}
	if endMin <= startMin {
		return Recurrence{}, ErrTemplateTimeOrder
	}
	if intervalMinutes < 1 {
		return Recurrence{}, ErrInvalidInterval
	}

	return Recurrence{
		daysOfWeek:      days,
		startTime:       startTime,
		endTime:         endTime,
		intervalMinutes: intervalMinutes,
	}, nil
}

func (r Recurrence) DaysOfWeek() []int {
	out := make([]int, len(r.daysOfWeek))
	for i, d := range r.daysOfWeek {
		out[i] = int(d)
	}
	return out
}

func (r Recurrence) StartTime() string    { return r.startTime }
func (r Recurrence) EndTime() string      { return r.endTime }
func (r Recurrence) IntervalMinutes() int { return r.intervalMinutes }

// OccurrencesBetween expands the template into concrete time ranges whose
// start falls in [from, to). Ranges never cross the template's end time: a
// trailing window shorter than the interval is dropped.
func (r Recurrence) OccurrencesBetween(from, to time.Time, loc *time.Location) []TimeRange {
	if loc == nil {
		loc = time.UTC
	}
	interval := time.Duration(r.intervalMinutes) * time.Minute
	startMin, _ := parseTimeOfDay(r.startTime)
	endMin, _ := parseTimeOfDay(r.endTime)

	var out []TimeRange
	for day := from.In(loc).Truncate(24 * time.Hour); !day.After(to); day = day.AddDate(0, 0, 1) {
		// Truncate is UTC-aligned; rebuild the civil date in loc.
		y, m, d := day.In(loc).Date()
		midnight := time.Date(y, m, d, 0, 0, 0, 0, loc)

		if !r.includesDay(midnight.Weekday()) {
			continue
		}

		dayEnd := midnight.Add(time.Duration(endMin) * time.Minute)
		for cur := midnight.Add(time.Duration(startMin) * time.Minute); !cur.Add(interval).After(dayEnd); cur = cur.Add(interval) {
			if cur.Before(from) || !cur.Before(to) {
				continue
			}
			out = append(out, TimeRange{start: cur, end: cur.Add(interval)})
		}
	}
	return out
}

func (r Recurrence) includesDay(d time.Weekday) bool {
	for _, wd := range r.daysOfWeek {
		if wd == d {
			return true
		}
	}
	return false
}

func parseTimeOfDay(s string) (int, error) {
	t, err := time.Parse(timeOfDayLayout, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeOfDay, s)
	}
	return t.Hour()*60 + t.Minute(), nil
}
