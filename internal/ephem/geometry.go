package ephem

import (
	"math"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
)

// geocentric is a body's geometric position seen from the Earth's centre,
// on the mean ecliptic and equinox of date.
type geocentric struct {
	lonDeg       float64
	latDeg       float64
	distKm       float64
	helioAU      float64
	lightTimeSec float64
}

func moonGeocentric(series astro.LunarSeries, T float64) geocentric {
	p := series.Position(T)
	return geocentric{
		lonDeg:       p.LonDeg,
		latDeg:       p.LatDeg,
		distKm:       p.DistanceKm,
		lightTimeSec: astro.LightTimeFromAU(astro.KmToAU(p.DistanceKm)),
	}
}

// marsGeocentric places Mars relative to the Earth-Moon barycentre. With
// precise set, the planet is taken where it was when the light left it and
// the J2000 direction is rigorously precessed; otherwise the longitude is
// shifted by general precession only.
func marsGeocentric(T float64, precise bool) geocentric {
	earth := astro.EarthMoonBarycenter.Heliocentric(T)
	mars := astro.MarsElements.Heliocentric(T)
	geo := mars.Sub(earth)

	if precise {
		for i := 0; i < 3; i++ {
			tauDays := astro.LightTimeFromAU(geo.Norm()) / 86400
			mars = astro.MarsElements.Heliocentric(T - tauDays/36525)
			geo = mars.Sub(earth)
		}
	}

	lonJ2000 := astro.EclipticLongitude(geo)
	latJ2000 := astro.EclipticLatitude(geo)

	var lon, lat float64
	if precise {
		lon, lat = eclipticFromJ2000(lonJ2000, latJ2000, T)
	} else {
		lon = astro.NormalizeAngle360(lonJ2000 + astro.GeneralPrecessionInLongitude(T))
		lat = latJ2000
	}

	dist := geo.Norm()
	return geocentric{
		lonDeg:       lon,
		latDeg:       lat,
		distKm:       astro.AUToKm(dist),
		helioAU:      mars.Norm(),
		lightTimeSec: astro.LightTimeFromAU(dist),
	}
}

func sunGeocentric(sun astro.SolarCoords) geocentric {
	return geocentric{
		lonDeg:       sun.TrueLonDeg,
		distKm:       astro.AUToKm(sun.DistanceAU),
		lightTimeSec: astro.LightTimeFromAU(sun.DistanceAU),
	}
}

// eclipticFromJ2000 precesses J2000 ecliptic coordinates to the mean
// ecliptic and equinox of T.
func eclipticFromJ2000(lonDeg, latDeg, T float64) (float64, float64) {
	ra, dec := astro.EclipticToEquatorialDeg(lonDeg, latDeg, astro.ObliquityJ2000)
	ra, dec = astro.PrecessFromJ2000(ra, dec, T)
	return astro.EquatorialToEclipticDeg(ra, dec, astro.MeanObliquity(T))
}

// eclipticToJ2000 is the inverse of eclipticFromJ2000.
func eclipticToJ2000(lonDeg, latDeg, T float64) (float64, float64) {
	ra, dec := astro.EclipticToEquatorialDeg(lonDeg, latDeg, astro.MeanObliquity(T))
	ra, dec = astro.PrecessToJ2000(ra, dec, T)
	return astro.EquatorialToEclipticDeg(ra, dec, astro.ObliquityJ2000)
}

// moonMagnitude is the Moon's visual magnitude for a phase angle in degrees.
func moonMagnitude(phaseAngleDeg float64) float64 {
	i := math.Abs(phaseAngleDeg)
	return -12.73 + 0.026*i + 4e-9*math.Pow(i, 4)
}

const sunMagnitude = -26.74

// fill completes a sample from a geocentric position whose apparent
// ecliptic coordinates are (lonDeg, latDeg). PhaseAngleDeg must be set.
func (s *Sample) fill(g geocentric, lonDeg, latDeg, epsDeg, T float64) {
	s.EclLonDeg = astro.NormalizeAngle360(lonDeg)
	s.EclLatDeg = latDeg
	s.RAdeg, s.DecDeg = astro.EclipticToEquatorialDeg(s.EclLonDeg, latDeg, epsDeg)
	s.J2000LonDeg, s.J2000LatDeg = eclipticToJ2000(g.lonDeg, g.latDeg, T)
	s.DistanceKm = g.distKm
	s.LightTimeSec = g.lightTimeSec
	s.HelioDistanceAU = g.helioAU
	s.IlluminatedFraction = astro.IlluminatedFraction(s.PhaseAngleDeg)

	switch s.Body {
	case BodyMoon:
		s.Magnitude = moonMagnitude(s.PhaseAngleDeg)
	case BodyMars:
		s.Magnitude = astro.MarsMagnitude(g.helioAU, astro.KmToAU(g.distKm), s.PhaseAngleDeg)
	case BodySun:
		s.Magnitude = sunMagnitude
	}
}

// observe converts a geocentric apparent place into the observer's sky.
func observe(ra, dec, distKm, lstDeg float64, obs astro.Observer, refract bool) *Horizontal {
	topoRA, topoDec := astro.TopocentricParallax(ra, dec, astro.KmToAU(distKm), obs.LatDeg, lstDeg)
	az, alt := astro.HourAngleToHorizontal(lstDeg-topoRA, topoDec, obs.LatDeg)

	h := &Horizontal{AzDeg: az, AltDeg: alt, TopoRAdeg: topoRA, TopoDecDeg: topoDec}
	if refract {
		h.RefractionDeg = astro.Refraction(alt)
		h.AltDeg += h.RefractionDeg
	}
	return h
}

func meanSiderealTime(t time.Time, obs astro.Observer) float64 {
	return astro.LocalSiderealTime(t, obs.LonDeg)
}
