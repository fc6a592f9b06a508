package ephem

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
)

// phaseSearch steps a day at a time; the Moon gains ~12° of elongation per
// day so a bracket never straddles the ±180° wrap.
var phaseSearch = astro.SearchConfig{
	Step:      24 * time.Hour,
	Window:    32 * 24 * time.Hour,
	Tolerance: time.Second,
	MaxJump:   180,
}

func (f *Fast) altitude(body BodyID, obs astro.Observer) astro.ScalarFunc {
	return func(t time.Time) (float64, error) {
		s, err := f.Lookup(body, t, &obs)
		if err != nil {
			return 0, err
		}
		return s.Horizontal.AltDeg, nil
	}
}

func (f *Fast) hourAngle(body BodyID, obs astro.Observer) astro.ScalarFunc {
	return func(t time.Time) (float64, error) {
		s, err := f.Lookup(body, t, &obs)
		if err != nil {
			return 0, err
		}
		return astro.HourAngle(meanSiderealTime(t, obs), s.Horizontal.TopoRAdeg), nil
	}
}

// NextRise implements EventFinder.
func (f *Fast) NextRise(body BodyID, t time.Time, obs astro.Observer, horizonDeg float64) (time.Time, error) {
	ev, err := astro.FindNextCrossing(f.altitude(body, obs), t, horizonDeg, astro.Ascending, astro.RiseSetSearch)
	if errors.Is(err, astro.ErrNoCrossing) {
		return time.Time{}, fmt.Errorf("%v never rises: %w", body, ErrCircumpolar)
	}
	return ev, err
}

// NextSet implements EventFinder.
func (f *Fast) NextSet(body BodyID, t time.Time, obs astro.Observer, horizonDeg float64) (time.Time, error) {
	ev, err := astro.FindNextCrossing(f.altitude(body, obs), t, horizonDeg, astro.Descending, astro.RiseSetSearch)
	if errors.Is(err, astro.ErrNoCrossing) {
		return time.Time{}, fmt.Errorf("%v never sets: %w", body, ErrCircumpolar)
	}
	return ev, err
}

// NextTransit implements EventFinder.
func (f *Fast) NextTransit(body BodyID, t time.Time, obs astro.Observer) (time.Time, error) {
	ev, err := astro.FindNextCrossing(f.hourAngle(body, obs), t, 0, astro.Ascending, astro.TransitSearch)
	if errors.Is(err, astro.ErrNoCrossing) {
		return time.Time{}, fmt.Errorf("%v: %w", body, ErrNoTransit)
	}
	return ev, err
}

func (f *Fast) elongation(phase LunarPhase) astro.ScalarFunc {
	target := phase.elongationDeg()
	return func(t time.Time) (float64, error) {
		s, err := f.Lookup(BodyMoon, t, nil)
		if err != nil {
			return 0, err
		}
		return astro.Wrap180(s.EclLonDeg - s.SunEclLonDeg - target), nil
	}
}

// NextPhase returns the first instant strictly after t at which the Moon
// reaches the phase.
func (f *Fast) NextPhase(phase LunarPhase, t time.Time) (time.Time, error) {
	return astro.FindNextCrossing(f.elongation(phase), t, 0, astro.Ascending, phaseSearch)
}

// PreviousPhase returns the latest instant at or before t at which the Moon
// reached the phase.
func (f *Fast) PreviousPhase(phase LunarPhase, t time.Time) (time.Time, error) {
	return astro.FindPreviousCrossing(f.elongation(phase), t, 0, astro.Ascending, phaseSearch)
}
