package ephem

import (
	"fmt"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
)

// Analytic is the refined oracle. It evaluates the full lunar term table it
// was loaded with, iterates light-time for Mars, and applies annual
// aberration and nutation. Altitudes are geometric (no refraction).
type Analytic struct {
	series astro.LunarSeries
}

// NewAnalytic builds the refined oracle from a lunar term table.
func NewAnalytic(series astro.LunarSeries) *Analytic {
	return &Analytic{series: series}
}

// Name returns "analytic".
func (a *Analytic) Name() string { return "analytic" }

// Lookup implements Oracle.
func (a *Analytic) Lookup(body BodyID, t time.Time, loc *astro.Observer) (Sample, error) {
	return preciseLookup(a.series, body, t, loc, false)
}

// Transform is the coordinate-transform oracle. It shares the apparent-place
// chain with Analytic but always runs on the embedded term table and reports
// refracted altitudes in the observer frame. With a boundary table it also
// names the IAU constellation containing the body.
type Transform struct {
	series astro.LunarSeries
	bounds *astro.ConstellationTable
}

// NewTransform builds the transform oracle. bounds may be nil, in which case
// samples carry no constellation.
func NewTransform(series astro.LunarSeries, bounds *astro.ConstellationTable) *Transform {
	return &Transform{series: series, bounds: bounds}
}

// Name returns "transform".
func (x *Transform) Name() string { return "transform" }

// Lookup implements Oracle.
func (x *Transform) Lookup(body BodyID, t time.Time, loc *astro.Observer) (Sample, error) {
	s, err := preciseLookup(x.series, body, t, loc, true)
	if err != nil || x.bounds == nil {
		return s, err
	}
	ra, dec := astro.EclipticToEquatorialDeg(s.J2000LonDeg, s.J2000LatDeg, astro.ObliquityJ2000)
	s.Constellation = x.bounds.Lookup(ra, dec)
	return s, nil
}

func preciseLookup(series astro.LunarSeries, body BodyID, t time.Time, loc *astro.Observer, refract bool) (Sample, error) {
	if len(series.Longitude) == 0 {
		return Sample{}, fmt.Errorf("%w: empty lunar term table", ErrDataUnavailable)
	}

	ts := astro.ConvertTimeScales(t)
	T := ts.CenturiesTT()
	sun := astro.SunEcliptic(ts.JDTT)
	nut := astro.ComputeNutation(T)

	s := Sample{Body: body, Scales: ts, SunEclLonDeg: sun.ApparentLonDeg}

	var (
		g        geocentric
		lon, lat float64
	)
	switch body {
	case BodyMoon:
		g = moonGeocentric(series, T)
		lon, lat = g.lonDeg+nut.LongitudeDeg, g.latDeg
		s.ElongationDeg = astro.Elongation(lon, lat, sun.ApparentLonDeg, 0)
		s.PhaseAngleDeg = astro.PhaseAngleFromGeometry(s.ElongationDeg, astro.AUToKm(sun.DistanceAU), g.distKm)
	case BodyMars:
		g = marsGeocentric(T, true)
		dLon, dLat := astro.AnnualAberration(g.lonDeg, g.latDeg, sun.TrueLonDeg, T)
		lon, lat = g.lonDeg+dLon+nut.LongitudeDeg, g.latDeg+dLat
		s.ElongationDeg = astro.Elongation(lon, lat, sun.ApparentLonDeg, 0)
		s.PhaseAngleDeg = astro.PlanetPhaseAngle(g.helioAU, astro.KmToAU(g.distKm), sun.DistanceAU)
	case BodySun:
		g = sunGeocentric(sun)
		lon = sun.ApparentLonDeg
	default:
		return Sample{}, fmt.Errorf("%w: %v", ErrUnsupportedBody, body)
	}

	s.fill(g, lon, lat, nut.TrueObliquityDeg(), T)

	if loc != nil {
		lst := astro.ApparentSiderealTime(t, loc.LonDeg, nut)
		s.Horizontal = observe(s.RAdeg, s.DecDeg, s.DistanceKm, lst, *loc, refract)
	}
	return s, nil
}

// Unavailable returns an oracle whose every lookup fails with err. It stands
// in for an oracle whose data could not be loaded at startup.
func Unavailable(name string, err error) Oracle {
	return unavailable{name: name, err: err}
}

type unavailable struct {
	name string
	err  error
}

func (u unavailable) Name() string { return u.name }

func (u unavailable) Lookup(BodyID, time.Time, *astro.Observer) (Sample, error) {
	return Sample{}, fmt.Errorf("%s oracle: %w", u.name, u.err)
}

// IsAvailable reports whether o can serve lookups.
func IsAvailable(o Oracle) bool {
	_, down := o.(unavailable)
	return !down
}
