// Package ephem provides ephemeris oracles for the Sun, Moon and Mars.
//
// Three oracles of increasing precision share one contract: given a body, a
// UTC instant and an optional observer they return a Sample. The fast oracle
// also answers event searches (rise, set, transit, lunar phases).
package ephem

import (
	"errors"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
)

var (
	// ErrCircumpolar means the body does not cross the horizon within the
	// search window for the requested event.
	ErrCircumpolar = errors.New("body is circumpolar")

	// ErrNoTransit means no meridian passage was found in the search window.
	ErrNoTransit = errors.New("no transit found")

	// ErrUnsupportedBody is returned for bodies an oracle cannot place.
	ErrUnsupportedBody = errors.New("unsupported body")

	// ErrDataUnavailable means the oracle's data file could not be loaded.
	ErrDataUnavailable = errors.New("ephemeris data unavailable")
)

// Horizontal is the position of a body in an observer's sky.
type Horizontal struct {
	AzDeg  float64
	AltDeg float64

	// Topocentric equatorial coordinates (parallax applied).
	TopoRAdeg  float64
	TopoDecDeg float64

	// RefractionDeg has already been added to AltDeg; zero when the oracle
	// reports geometric altitude.
	RefractionDeg float64
}

// Sample is one oracle evaluation.
type Sample struct {
	Body   BodyID
	Scales astro.TimeScales

	// Geocentric apparent place, equinox of date.
	RAdeg  float64
	DecDeg float64

	// Geocentric ecliptic coordinates of date and of J2000.
	EclLonDeg   float64
	EclLatDeg   float64
	J2000LonDeg float64
	J2000LatDeg float64

	// Constellation is the IAU constellation containing the body. Only
	// oracles holding a boundary table set it.
	Constellation string

	DistanceKm   float64
	LightTimeSec float64

	// Illumination geometry.
	SunEclLonDeg        float64
	ElongationDeg       float64
	PhaseAngleDeg       float64
	IlluminatedFraction float64
	Magnitude           float64
	HelioDistanceAU     float64 // zero for the Sun and Moon

	// Horizontal is nil when no observer was supplied.
	Horizontal *Horizontal
}

// DistanceAU returns the geocentric distance in astronomical units.
func (s Sample) DistanceAU() float64 {
	return astro.KmToAU(s.DistanceKm)
}

// Oracle places a body at an instant.
type Oracle interface {
	// Name returns the oracle name for logging and diagnostics.
	Name() string

	// Lookup computes the body's position at t. loc may be nil, in which
	// case the sample carries no horizontal coordinates.
	Lookup(body BodyID, t time.Time, loc *astro.Observer) (Sample, error)
}

// EventFinder searches for horizon and meridian events.
type EventFinder interface {
	// NextRise returns the first instant after t at which the body's
	// altitude climbs through horizonDeg, or ErrCircumpolar.
	NextRise(body BodyID, t time.Time, obs astro.Observer, horizonDeg float64) (time.Time, error)

	// NextSet returns the first instant after t at which the body's
	// altitude drops through horizonDeg, or ErrCircumpolar.
	NextSet(body BodyID, t time.Time, obs astro.Observer, horizonDeg float64) (time.Time, error)

	// NextTransit returns the next upper meridian passage after t.
	NextTransit(body BodyID, t time.Time, obs astro.Observer) (time.Time, error)
}

// PhaseFinder searches for new and full moons.
type PhaseFinder interface {
	NextPhase(phase LunarPhase, t time.Time) (time.Time, error)
	PreviousPhase(phase LunarPhase, t time.Time) (time.Time, error)
}

// LunarPhase is a syzygy of the Moon.
type LunarPhase int

const (
	NewMoon LunarPhase = iota
	FullMoon
)

// String returns the phase name.
func (p LunarPhase) String() string {
	switch p {
	case NewMoon:
		return "New Moon"
	case FullMoon:
		return "Full Moon"
	default:
		return "unknown"
	}
}

// elongationDeg is the Moon-Sun longitude difference at the phase.
func (p LunarPhase) elongationDeg() float64 {
	return float64(p) * 180
}
