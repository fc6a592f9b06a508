package astro

import (
	"errors"
	"math"
	"time"
)

// ScalarFunc evaluates a time-dependent quantity such as altitude, hour
// angle or elongation.
type ScalarFunc func(t time.Time) (float64, error)

// SearchConfig controls the step-and-bisect event search.
type SearchConfig struct {
	Step      time.Duration // coarse sampling interval
	Window    time.Duration // how far to look before giving up
	Tolerance time.Duration // bisection stops below this bracket width
	// MaxJump rejects brackets whose samples differ by more than this many
	// units, which filters out wrap-around discontinuities of angles. Zero
	// disables the check.
	MaxJump float64
}

// RiseSetSearch is tuned for horizon crossings of the Moon and planets.
var RiseSetSearch = SearchConfig{
	Step:      10 * time.Minute,
	Window:    36 * time.Hour,
	Tolerance: time.Second,
}

// TransitSearch finds meridian passages via the wrapped hour angle.
var TransitSearch = SearchConfig{
	Step:      10 * time.Minute,
	Window:    36 * time.Hour,
	Tolerance: time.Second,
	MaxJump:   180,
}

// ErrNoCrossing is returned when the quantity never crosses the threshold
// within the search window.
var ErrNoCrossing = errors.New("no crossing found in search window")

// Direction selects which sign change a search looks for.
type Direction int

const (
	Ascending  Direction = iota // from below the threshold to at-or-above
	Descending                  // from at-or-above to below
)

func (d Direction) crosses(a, b, threshold float64, maxJump float64) bool {
	if maxJump > 0 && math.Abs(b-a) > maxJump {
		return false
	}
	if d == Ascending {
		return a < threshold && b >= threshold
	}
	return a >= threshold && b < threshold
}

// FindNextCrossing returns the first instant strictly after start at which f
// crosses threshold in the given direction.
func FindNextCrossing(f ScalarFunc, start time.Time, threshold float64, dir Direction, cfg SearchConfig) (time.Time, error) {
	a := start
	fa, err := f(a)
	if err != nil {
		return time.Time{}, err
	}

	end := start.Add(cfg.Window)
	for a.Before(end) {
		b := a.Add(cfg.Step)
		fb, err := f(b)
		if err != nil {
			return time.Time{}, err
		}
		if dir.crosses(fa, fb, threshold, cfg.MaxJump) {
			return bisect(f, a, b, fa, threshold, dir, cfg)
		}
		a, fa = b, fb
	}
	return time.Time{}, ErrNoCrossing
}

// FindPreviousCrossing returns the latest instant at or before end at which
// f crosses threshold in the given direction.
func FindPreviousCrossing(f ScalarFunc, end time.Time, threshold float64, dir Direction, cfg SearchConfig) (time.Time, error) {
	b := end
	fb, err := f(b)
	if err != nil {
		return time.Time{}, err
	}

	start := end.Add(-cfg.Window)
	for b.After(start) {
		a := b.Add(-cfg.Step)
		fa, err := f(a)
		if err != nil {
			return time.Time{}, err
		}
		if dir.crosses(fa, fb, threshold, cfg.MaxJump) {
			return bisect(f, a, b, fa, threshold, dir, cfg)
		}
		b, fb = a, fa
	}
	return time.Time{}, ErrNoCrossing
}

// bisect narrows a bracket [a, b] known to contain a crossing and returns
// the right edge, the first sampled instant on the far side.
func bisect(f ScalarFunc, a, b time.Time, fa, threshold float64, dir Direction, cfg SearchConfig) (time.Time, error) {
	for b.Sub(a) > cfg.Tolerance {
		mid := a.Add(b.Sub(a) / 2)
		fm, err := f(mid)
		if err != nil {
			return time.Time{}, err
		}
		if dir.crosses(fa, fm, threshold, cfg.MaxJump) {
			b = mid
		} else {
			a, fa = mid, fm
		}
	}
	return b, nil
}

// ElevationTier categorizes elevation for UI display.
type ElevationTier int

const (
	ElevationNone   ElevationTier = iota // Below horizon
	ElevationLow                         // 0-15 degrees
	ElevationMedium                      // 15-45 degrees
	ElevationHigh                        // 45+ degrees
)

// GetElevationTier returns the tier for a given elevation.
func GetElevationTier(elDeg float64) ElevationTier {
	switch {
	case elDeg <= 0:
		return ElevationNone
	case elDeg < 15:
		return ElevationLow
	case elDeg < 45:
		return ElevationMedium
	default:
		return ElevationHigh
	}
}
