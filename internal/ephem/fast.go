package ephem

import (
	"fmt"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
)

// Fast is the low-precision oracle: a truncated lunar series, mean Keplerian
// elements without light-time, no nutation or aberration. Positions are good
// to a few arcminutes, which is ample for rise/set and phase searches.
type Fast struct {
	series astro.LunarSeries
}

// NewFast builds the fast oracle from the leading terms of a full table.
func NewFast(full astro.LunarSeries) *Fast {
	return &Fast{series: full.Truncate(fastLonTerms, fastLatTerms)}
}

// Name returns "fast".
func (f *Fast) Name() string { return "fast" }

// Lookup implements Oracle.
func (f *Fast) Lookup(body BodyID, t time.Time, loc *astro.Observer) (Sample, error) {
	ts := astro.ConvertTimeScales(t)
	T := ts.CenturiesTT()
	sun := astro.SunEcliptic(ts.JDTT)
	eps := astro.MeanObliquity(T)

	s := Sample{Body: body, Scales: ts, SunEclLonDeg: sun.ApparentLonDeg}

	var g geocentric
	switch body {
	case BodyMoon:
		g = moonGeocentric(f.series, T)
		s.PhaseAngleDeg = astro.MoonPhaseAngle(T)
	case BodyMars:
		g = marsGeocentric(T, false)
		s.PhaseAngleDeg = astro.PlanetPhaseAngle(g.helioAU, astro.KmToAU(g.distKm), sun.DistanceAU)
	case BodySun:
		g = sunGeocentric(sun)
		g.lonDeg = sun.ApparentLonDeg
	default:
		return Sample{}, fmt.Errorf("%w: %v", ErrUnsupportedBody, body)
	}

	s.fill(g, g.lonDeg, g.latDeg, eps, T)
	s.ElongationDeg = astro.Elongation(s.EclLonDeg, s.EclLatDeg, sun.ApparentLonDeg, 0)

	if loc != nil {
		s.Horizontal = observe(s.RAdeg, s.DecDeg, s.DistanceKm, meanSiderealTime(t, *loc), *loc, false)
	}
	return s, nil
}
