package availability

import (
	"fmt"
	"sort"
	"time"
)

// Reason explains why a slot is not bookable. Empty means the slot is open.
type Reason string

const (
	ReasonNone    Reason = ""
	ReasonWeekend Reason = "weekend"
	ReasonPast    Reason = "past"
	ReasonBusy    Reason = "busy"
)

// BusyInterval is one externally booked range, already merged across all
// source calendars. Intervals are half-open: [Start, End).
type BusyInterval struct {
	Start time.Time
	End   time.Time
}

// Slot is a single bookable unit expressed in the requester's timezone.
// HomeTime keeps the original wall-clock time in the home timezone so a
// booking can reconstruct the exact class instant later.
type Slot struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
	Reason    Reason `json:"reason,omitempty"`
	HomeTime  string `json:"homeTime"`
}

// Day groups the slots that fall on one requester-local calendar date.
type Day struct {
	Date  string `json:"date"`
	Slots []Slot `json:"slots"`
}

// Config describes the fixed teaching schedule.
type Config struct {
	// HomeTimezone is the IANA zone the schedule grid is defined in.
	HomeTimezone string
	// Schedule is the ordered list of "HH:MM" start times, home-local.
	Schedule []string
	// SlotDuration defaults to 30 minutes.
	SlotDuration time.Duration
	// WeekendByHomeDate keeps weekend slots bucketed under the home-zone
	// date without timezone conversion. A weekend slot that would cross
	// midnight for the requester is therefore never surfaced under the
	// adjacent requester date. This matches the behavior the booking UI
	// was built against; set false to convert weekend slots like any
	// other slot.
	WeekendByHomeDate bool
}

type scheduleTime struct {
	label  string
	hour   int
	minute int
}

// Engine turns the home-timezone slot grid into per-request availability.
// It holds no mutable state and is safe for concurrent use.
type Engine struct {
	home              *time.Location
	schedule          []scheduleTime
	slotDuration      time.Duration
	weekendByHomeDate bool
}

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

func NewEngine(cfg Config) (*Engine, error) {
	home, err := time.LoadLocation(cfg.HomeTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid home timezone %q: %w", cfg.HomeTimezone, err)
	}
	if len(cfg.Schedule) == 0 {
		return nil, fmt.Errorf("schedule cannot be empty")
	}
	schedule := make([]scheduleTime, 0, len(cfg.Schedule))
	for _, raw := range cfg.Schedule {
		t, err := time.Parse(timeLayout, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid schedule time %q: %w", raw, err)
		}
		schedule = append(schedule, scheduleTime{label: raw, hour: t.Hour(), minute: t.Minute()})
	}
	duration := cfg.SlotDuration
	if duration <= 0 {
		duration = 30 * time.Minute
	}
	return &Engine{
		home:              home,
		schedule:          schedule,
		slotDuration:      duration,
		weekendByHomeDate: cfg.WeekendByHomeDate,
	}, nil
}

// HomeTimezone returns the IANA name of the engine's home zone.
func (e *Engine) HomeTimezone() string {
	return e.home.String()
}

// Compute resolves the schedule grid for the next days home-zone dates
// against the requester's timezone. now is injected so past/future checks
// are deterministic. An unknown requester timezone fails the whole call.
func (e *Engine) Compute(days int, requesterTimezone string, busy []BusyInterval, now time.Time) (map[string]Day, error) {
	requester, err := time.LoadLocation(requesterTimezone)
	if err != nil {
		return nil, fmt.Errorf("invalid requester timezone %q: %w", requesterTimezone, err)
	}
	if days < 1 {
		return nil, fmt.Errorf("days must be positive, got %d", days)
	}

	out := make(map[string]Day)
	year, month, day := now.In(e.home).Date()

	for i := 0; i < days; i++ {
		homeDate := time.Date(year, month, day+i, 0, 0, 0, 0, e.home)
		weekday := homeDate.Weekday()
		isWeekend := weekday == time.Saturday || weekday == time.Sunday

		if isWeekend && e.weekendByHomeDate {
			key := homeDate.Format(dateLayout)
			for _, st := range e.schedule {
				appendSlot(out, key, Slot{
					Time:      st.label,
					Available: false,
					Reason:    ReasonWeekend,
					HomeTime:  st.label,
				})
			}
			continue
		}

		for _, st := range e.schedule {
			start := time.Date(year, month, day+i, st.hour, st.minute, 0, 0, e.home)
			end := start.Add(e.slotDuration)

			reason := ReasonNone
			switch {
			case isWeekend:
				reason = ReasonWeekend
			case start.Before(now):
				reason = ReasonPast
			case overlapsAny(start, end, busy):
				reason = ReasonBusy
			}

			local := start.In(requester)
			appendSlot(out, local.Format(dateLayout), Slot{
				Time:      local.Format(timeLayout),
				Available: reason == ReasonNone,
				Reason:    reason,
				HomeTime:  st.label,
			})
		}
	}

	// Zero-padded HH:MM sorts chronologically within a single date.
	for key, d := range out {
		sort.Slice(d.Slots, func(i, j int) bool { return d.Slots[i].Time < d.Slots[j].Time })
		out[key] = d
	}
	return out, nil
}

func appendSlot(out map[string]Day, date string, slot Slot) {
	d, ok := out[date]
	if !ok {
		d = Day{Date: date}
	}
	d.Slots = append(d.Slots, slot)
	out[date] = d
}

func overlapsAny(start, end time.Time, busy []BusyInterval) bool {
	for _, b := range busy {
		// Half-open overlap: touching endpoints do not conflict.
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
