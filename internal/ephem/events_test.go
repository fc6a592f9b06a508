package ephem

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
)

func TestFast_RiseSetAtGreenwich(t *testing.T) {
	fast, _, _ := testOracles(t)

	for _, body := range []BodyID{BodyMoon, BodyMars} {
		t.Run(body.String(), func(t *testing.T) {
			rise, err := fast.NextRise(body, testInstant, testGreenwich, astro.StandardHorizon)
			if err != nil {
				t.Fatalf("NextRise() error = %v", err)
			}
			set, err := fast.NextSet(body, testInstant, testGreenwich, astro.StandardHorizon)
			if err != nil {
				t.Fatalf("NextSet() error = %v", err)
			}

			for name, ev := range map[string]time.Time{"rise": rise, "set": set} {
				if !ev.After(testInstant) || ev.Sub(testInstant) > 26*time.Hour {
					t.Errorf("%s at %v, want within a day after %v", name, ev, testInstant)
				}
				s, err := fast.Lookup(body, ev, &testGreenwich)
				if err != nil {
					t.Fatal(err)
				}
				if math.Abs(s.Horizontal.AltDeg-astro.StandardHorizon) > 0.05 {
					t.Errorf("%s altitude = %.3f°, want %.3f°", name, s.Horizontal.AltDeg, astro.StandardHorizon)
				}
			}
		})
	}
}

func TestFast_Transit(t *testing.T) {
	fast, _, _ := testOracles(t)

	for _, body := range []BodyID{BodyMoon, BodyMars} {
		transit, err := fast.NextTransit(body, testInstant, testGreenwich)
		if err != nil {
			t.Fatalf("%v: NextTransit() error = %v", body, err)
		}
		at, _ := fast.Lookup(body, transit, &testGreenwich)
		before, _ := fast.Lookup(body, transit.Add(-20*time.Minute), &testGreenwich)
		after, _ := fast.Lookup(body, transit.Add(20*time.Minute), &testGreenwich)

		if at.Horizontal.AltDeg < before.Horizontal.AltDeg || at.Horizontal.AltDeg < after.Horizontal.AltDeg {
			t.Errorf("%v: transit altitude %.3f is not a maximum (%.3f, %.3f)", body,
				at.Horizontal.AltDeg, before.Horizontal.AltDeg, after.Horizontal.AltDeg)
		}
		// Upper culmination is due south from mid-northern latitudes.
		if math.Abs(at.Horizontal.AzDeg-180) > 0.5 {
			t.Errorf("%v: transit azimuth %.3f, want ~180", body, at.Horizontal.AzDeg)
		}
	}
}

// moonDeclinationWindow finds an instant from which the Moon's declination
// stays beyond limit (same sign) for the whole rise/set search window.
func moonDeclinationWindow(t *testing.T, fast *Fast, north bool) time.Time {
	t.Helper()
	for h := 0; h < 24*40; h += 6 {
		start := testInstant.Add(time.Duration(h) * time.Hour)
		ok := true
		for dh := 0; dh <= 40 && ok; dh += 4 {
			s, err := fast.Lookup(BodyMoon, start.Add(time.Duration(dh)*time.Hour), nil)
			if err != nil {
				t.Fatal(err)
			}
			if north {
				ok = s.DecDeg > 8
			} else {
				ok = s.DecDeg < -8
			}
		}
		if ok {
			return start
		}
	}
	t.Fatal("no suitable declination window found")
	return time.Time{}
}

func TestFast_CircumpolarNearPole(t *testing.T) {
	fast, _, _ := testOracles(t)
	pole := astro.Observer{LatDeg: 89.9, LonDeg: 0}

	t.Run("never sets", func(t *testing.T) {
		start := moonDeclinationWindow(t, fast, true)
		_, err := fast.NextSet(BodyMoon, start, pole, astro.StandardHorizon)
		if !errors.Is(err, ErrCircumpolar) {
			t.Errorf("NextSet() error = %v, want ErrCircumpolar", err)
		}
	})

	t.Run("never rises", func(t *testing.T) {
		start := moonDeclinationWindow(t, fast, false)
		_, err := fast.NextRise(BodyMoon, start, pole, astro.StandardHorizon)
		if !errors.Is(err, ErrCircumpolar) {
			t.Errorf("NextRise() error = %v, want ErrCircumpolar", err)
		}
	})
}

func TestFast_Phases(t *testing.T) {
	fast, _, _ := testOracles(t)
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		find  func(LunarPhase, time.Time) (time.Time, error)
		phase LunarPhase
		want  time.Time
	}{
		{"next new moon", fast.NextPhase, NewMoon, time.Date(2024, 1, 11, 11, 57, 0, 0, time.UTC)},
		{"next full moon", fast.NextPhase, FullMoon, time.Date(2024, 1, 25, 17, 54, 0, 0, time.UTC)},
		{"previous new moon", fast.PreviousPhase, NewMoon, time.Date(2023, 12, 12, 23, 32, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.find(tt.phase, from)
			if err != nil {
				t.Fatalf("error = %v", err)
			}
			if d := got.Sub(tt.want); d < -time.Hour || d > time.Hour {
				t.Errorf("got %v, want %v ±1h", got, tt.want)
			}
		})
	}
}

func TestFast_PhaseOrdering(t *testing.T) {
	fast, _, _ := testOracles(t)

	next, err := fast.NextPhase(NewMoon, testInstant)
	if err != nil {
		t.Fatal(err)
	}
	prev, err := fast.PreviousPhase(NewMoon, testInstant)
	if err != nil {
		t.Fatal(err)
	}
	if !next.After(testInstant) || prev.After(testInstant) {
		t.Errorf("prev %v / next %v not around %v", prev, next, testInstant)
	}
	if span := next.Sub(prev).Hours() / 24; span < 29.2 || span > 29.9 {
		t.Errorf("lunation length %.2f days", span)
	}

	// Searching from exactly a phase instant reports it as previous.
	again, err := fast.PreviousPhase(NewMoon, prev)
	if err != nil {
		t.Fatal(err)
	}
	if d := prev.Sub(again); d < 0 || d > 2*time.Second {
		t.Errorf("PreviousPhase(prev) = %v, want %v", again, prev)
	}
}
