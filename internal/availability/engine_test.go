package availability

import (
	"reflect"
	"testing"
	"time"
)

// 2026-01-05 is a Monday. Atlantic/Canary is UTC+0 in January, so the
// conversions below are deterministic.
var testHome = "Atlantic/Canary"

func newTestEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	if cfg.HomeTimezone == "" {
		cfg.HomeTimezone = testHome
	}
	if cfg.Schedule == nil {
		cfg.Schedule = []string{
			"14:00", "14:30", "15:00", "15:30",
			"16:00", "16:30", "17:00", "17:30", "18:00", "18:30",
			"19:00", "19:30", "20:00", "20:30", "21:00", "21:30", "22:00",
		}
	}
	cfg.WeekendByHomeDate = true
	e, err := NewEngine(cfg)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	return e
}

func canaryTime(t *testing.T, year int, month time.Month, day, hour, minute int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation(testHome)
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}
	return time.Date(year, month, day, hour, minute, 0, 0, loc)
}

func findSlot(d Day, homeTime string) (Slot, bool) {
	for _, s := range d.Slots {
		if s.HomeTime == homeTime {
			return s, true
		}
	}
	return Slot{}, false
}

func TestCompute_AllWeekdaySlotsAvailableWithoutConflicts(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)

	out, err := e.Compute(5, testHome, nil, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for date, day := range out {
		for _, s := range day.Slots {
			if !s.Available || s.Reason != ReasonNone {
				t.Errorf("%s %s: expected available, got reason %q", date, s.Time, s.Reason)
			}
		}
	}
}

func TestCompute_SlotCountInvariant(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)

	// 14 days starting on a Monday cover 10 weekdays and 4 weekend days.
	out, err := e.Compute(14, "Asia/Tokyo", nil, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	nonWeekend := 0
	weekend := 0
	for _, day := range out {
		for _, s := range day.Slots {
			if s.Reason == ReasonWeekend {
				weekend++
			} else {
				nonWeekend++
			}
		}
	}
	if want := 10 * 17; nonWeekend != want {
		t.Errorf("expected %d non-weekend slots, got %d", want, nonWeekend)
	}
	if want := 4 * 17; weekend != want {
		t.Errorf("expected %d weekend slots, got %d", want, weekend)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 14, 15)
	busy := []BusyInterval{
		{Start: canaryTime(t, 2026, time.January, 6, 16, 0), End: canaryTime(t, 2026, time.January, 6, 17, 0)},
	}

	first, err := e.Compute(7, "Asia/Tokyo", busy, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	second, err := e.Compute(7, "Asia/Tokyo", busy, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Error("identical inputs produced different outputs")
	}
}

func TestCompute_WeekendAlwaysUnavailable(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)
	// Busy intervals covering Saturday must not change the weekend reason.
	busy := []BusyInterval{
		{Start: canaryTime(t, 2026, time.January, 10, 0, 0), End: canaryTime(t, 2026, time.January, 11, 0, 0)},
	}

	out, err := e.Compute(7, "Asia/Tokyo", busy, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	for _, date := range []string{"2026-01-10", "2026-01-11"} {
		day, ok := out[date]
		if !ok {
			t.Fatalf("missing weekend date %s", date)
		}
		weekend := 0
		for _, s := range day.Slots {
			if s.Reason != ReasonWeekend {
				continue
			}
			weekend++
			if s.Available {
				t.Errorf("%s %s: weekend slot marked available", date, s.Time)
			}
			if s.Time != s.HomeTime {
				t.Errorf("%s: weekend slot converted (%s != %s)", date, s.Time, s.HomeTime)
			}
		}
		if weekend != 17 {
			t.Errorf("%s: expected 17 weekend slots, got %d", date, weekend)
		}
	}

	// Friday 15:00-22:00 Canary lands on requester Saturday in Tokyo. Those
	// weekday slots share the 2026-01-10 bucket with the home-dated weekend
	// slots and keep their own availability; nothing is dropped.
	spill := 0
	for _, s := range out["2026-01-10"].Slots {
		if s.Reason == ReasonWeekend {
			continue
		}
		spill++
		if !s.Available {
			t.Errorf("spilled weekday slot %s (home %s): expected available, got reason %q", s.Time, s.HomeTime, s.Reason)
		}
	}
	if spill != 15 {
		t.Errorf("expected 15 weekday slots alongside the weekend slots under 2026-01-10, got %d", spill)
	}
}

func TestCompute_BusyOverlapBoundaries(t *testing.T) {
	e := newTestEngine(t, Config{Schedule: []string{"13:30", "14:00", "14:30"}})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)
	// Exactly covers the 14:00 slot. Touching endpoints do not conflict.
	busy := []BusyInterval{
		{Start: canaryTime(t, 2026, time.January, 5, 14, 0), End: canaryTime(t, 2026, time.January, 5, 14, 30)},
	}

	out, err := e.Compute(1, testHome, busy, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	day := out["2026-01-05"]

	cases := []struct {
		homeTime string
		reason   Reason
	}{
		{"13:30", ReasonNone},
		{"14:00", ReasonBusy},
		{"14:30", ReasonNone},
	}
	for _, c := range cases {
		s, ok := findSlot(day, c.homeTime)
		if !ok {
			t.Fatalf("slot %s missing", c.homeTime)
		}
		if s.Reason != c.reason {
			t.Errorf("slot %s: expected reason %q, got %q", c.homeTime, c.reason, s.Reason)
		}
	}
}

func TestCompute_PartialOverlapIsBusy(t *testing.T) {
	e := newTestEngine(t, Config{Schedule: []string{"14:00"}})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)
	busy := []BusyInterval{
		{Start: canaryTime(t, 2026, time.January, 5, 14, 15), End: canaryTime(t, 2026, time.January, 5, 15, 0)},
	}

	out, err := e.Compute(1, testHome, busy, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	s, ok := findSlot(out["2026-01-05"], "14:00")
	if !ok {
		t.Fatal("slot 14:00 missing")
	}
	if s.Reason != ReasonBusy {
		t.Errorf("expected busy, got %q", s.Reason)
	}
}

func TestCompute_PastSlots(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 14, 15)

	out, err := e.Compute(1, testHome, nil, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	day := out["2026-01-05"]

	s, _ := findSlot(day, "14:00")
	if s.Reason != ReasonPast {
		t.Errorf("14:00: expected past, got %q", s.Reason)
	}
	s, _ = findSlot(day, "14:30")
	if s.Reason == ReasonPast {
		t.Error("14:30: should not be past at 14:15")
	}
}

func TestCompute_PastWinsOverBusy(t *testing.T) {
	e := newTestEngine(t, Config{Schedule: []string{"14:00"}})
	now := canaryTime(t, 2026, time.January, 5, 14, 15)
	busy := []BusyInterval{
		{Start: canaryTime(t, 2026, time.January, 5, 14, 0), End: canaryTime(t, 2026, time.January, 5, 14, 30)},
	}

	out, err := e.Compute(1, testHome, busy, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	s, _ := findSlot(out["2026-01-05"], "14:00")
	if s.Reason != ReasonPast {
		t.Errorf("expected past to take precedence over busy, got %q", s.Reason)
	}
}

func TestCompute_TokyoDateReassignment(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)

	// Canary is UTC+0 in January, Tokyo UTC+9: 14:00 stays on the same
	// requester date at 23:00, 15:00 and later roll into the next date.
	out, err := e.Compute(1, "Asia/Tokyo", nil, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	s, ok := findSlot(out["2026-01-05"], "14:00")
	if !ok {
		t.Fatal("14:00 slot missing under 2026-01-05")
	}
	if s.Time != "23:00" {
		t.Errorf("14:00 Canary should be 23:00 Tokyo, got %s", s.Time)
	}

	next, ok := out["2026-01-06"]
	if !ok {
		t.Fatal("expected spillover into 2026-01-06")
	}
	s, ok = findSlot(next, "15:00")
	if !ok {
		t.Fatal("15:00 slot missing under 2026-01-06")
	}
	if s.Time != "00:00" {
		t.Errorf("15:00 Canary should be 00:00 Tokyo next day, got %s", s.Time)
	}
	// One home date split across exactly two requester dates: 2 + 15 slots.
	if got := len(out["2026-01-05"].Slots) + len(next.Slots); got != 17 {
		t.Errorf("expected 17 slots total, got %d", got)
	}
}

func TestCompute_SpillIntoPreviousRequesterDate(t *testing.T) {
	e := newTestEngine(t, Config{Schedule: []string{"00:30"}})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)

	// New York is UTC-5 in January: 00:30 Canary on Jan 6 is 19:30 on Jan 5,
	// so every home date lands on the previous requester date.
	out, err := e.Compute(2, "America/New_York", nil, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for _, date := range []string{"2026-01-04", "2026-01-05"} {
		day, ok := out[date]
		if !ok {
			t.Fatalf("expected a slot under %s", date)
		}
		if len(day.Slots) != 1 || day.Slots[0].Time != "19:30" {
			t.Errorf("%s: expected single 19:30 slot, got %+v", date, day.Slots)
		}
	}
	if _, ok := out["2026-01-06"]; ok {
		t.Error("no slot should remain on the home date 2026-01-06")
	}
}

func TestCompute_SlotsSortedWithinDay(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)

	out, err := e.Compute(5, "Asia/Tokyo", nil, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	for date, day := range out {
		for i := 1; i < len(day.Slots); i++ {
			if day.Slots[i-1].Time > day.Slots[i].Time {
				t.Errorf("%s: slots out of order: %s before %s", date, day.Slots[i-1].Time, day.Slots[i].Time)
			}
		}
	}
}

func TestCompute_AvailableSlotsOutsideBusyAndFuture(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 16, 10)
	busy := []BusyInterval{
		{Start: canaryTime(t, 2026, time.January, 5, 18, 0), End: canaryTime(t, 2026, time.January, 5, 19, 30)},
		{Start: canaryTime(t, 2026, time.January, 6, 14, 0), End: canaryTime(t, 2026, time.January, 6, 15, 0)},
	}

	// Requester == home keeps dates aligned so the class instant can be
	// rebuilt from the day key plus the home time.
	out, err := e.Compute(3, testHome, busy, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	loc, _ := time.LoadLocation(testHome)
	for date, day := range out {
		for _, s := range day.Slots {
			if !s.Available {
				continue
			}
			start, err := time.ParseInLocation("2006-01-02 15:04", date+" "+s.HomeTime, loc)
			if err != nil {
				t.Fatalf("parse %s %s: %v", date, s.HomeTime, err)
			}
			if start.Before(now) {
				t.Errorf("%s %s: available slot in the past", date, s.HomeTime)
			}
			end := start.Add(30 * time.Minute)
			for _, b := range busy {
				if start.Before(b.End) && b.Start.Before(end) {
					t.Errorf("%s %s: available slot overlaps busy interval", date, s.HomeTime)
				}
			}
		}
	}
}

func TestCompute_WeekendConvertedWhenPolicyDisabled(t *testing.T) {
	e, err := NewEngine(Config{
		HomeTimezone:      testHome,
		Schedule:          []string{"15:00"},
		WeekendByHomeDate: false,
	})
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	// Saturday 2026-01-10. 15:00 Canary is 00:00 Sunday in Tokyo.
	now := canaryTime(t, 2026, time.January, 10, 0, 0)

	out, err := e.Compute(1, "Asia/Tokyo", nil, now)
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	day, ok := out["2026-01-11"]
	if !ok {
		t.Fatal("expected converted weekend slot under 2026-01-11")
	}
	if day.Slots[0].Reason != ReasonWeekend || day.Slots[0].Time != "00:00" {
		t.Errorf("unexpected slot %+v", day.Slots[0])
	}
}

func TestCompute_InvalidRequesterTimezone(t *testing.T) {
	e := newTestEngine(t, Config{})
	now := canaryTime(t, 2026, time.January, 5, 0, 0)

	if _, err := e.Compute(7, "Not/AZone", nil, now); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestNewEngine_Validation(t *testing.T) {
	if _, err := NewEngine(Config{HomeTimezone: "Nope/Nope", Schedule: []string{"14:00"}}); err == nil {
		t.Error("expected error for bad home timezone")
	}
	if _, err := NewEngine(Config{HomeTimezone: testHome}); err == nil {
		t.Error("expected error for empty schedule")
	}
	if _, err := NewEngine(Config{HomeTimezone: testHome, Schedule: []string{"25:99"}}); err == nil {
		t.Error("expected error for malformed schedule time")
	}
}
