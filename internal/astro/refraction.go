package astro

import (
	"math"
	"time"
)

// Refraction returns the atmospheric refraction in degrees for a body at the
// given true (airless) altitude, for standard pressure and temperature.
// Below one degree under the horizon the correction is taken as zero.
func Refraction(trueAltDeg float64) float64 {
	if trueAltDeg < -1 {
		return 0
	}
	// Sæmundsson, in arcminutes
	r := 1.02 / math.Tan(degToRad(trueAltDeg+10.3/(trueAltDeg+5.11)))
	if r < 0 {
		return 0
	}
	return r / 60
}

// MaxExtinction caps the airmass extinction coefficient near and below the horizon.
const MaxExtinction = 5.0

// ExtinctionAtAltitude returns the atmospheric extinction in magnitudes for
// a body at the given apparent altitude: 0.28 mag per airmass, with the
// plane-parallel airmass 1/sin(alt).
func ExtinctionAtAltitude(altDeg float64) float64 {
	if altDeg <= 0 {
		return MaxExtinction
	}
	ext := 0.28 / math.Sin(degToRad(altDeg))
	return math.Min(ext, MaxExtinction)
}

// TopocentricParallax shifts geocentric RA/Dec (degrees, equinox of date) to
// the topocentric frame of an observer at sea level. distAU is the body's
// geocentric distance and lstDeg the local sidereal time.
func TopocentricParallax(raDeg, decDeg, distAU, latDeg, lstDeg float64) (float64, float64) {
	const flattening = 0.99664719

	lat := degToRad(latDeg)
	u := math.Atan(flattening * math.Tan(lat))
	rhoSin := flattening * math.Sin(u)
	rhoCos := math.Cos(u)

	sinPi := math.Sin(degToRad(8.794/3600)) / distAU
	H := degToRad(lstDeg - raDeg)
	dec := degToRad(decDeg)

	den := math.Cos(dec) - rhoCos*sinPi*math.Cos(H)
	dRA := math.Atan2(-rhoCos*sinPi*math.Sin(H), den)
	topoDec := math.Atan2((math.Sin(dec)-rhoSin*sinPi)*math.Cos(dRA), den)

	return normalizeAngle360(raDeg + radToDeg(dRA)), radToDeg(topoDec)
}

// SunAltitude returns the Sun's geometric altitude in degrees for an observer.
func SunAltitude(t time.Time, obs Observer) float64 {
	ra, dec := SunPosition(t)
	return EquatorialToHorizontal(SkyCoord{RAdeg: ra, DecDeg: dec}, obs, t).ElDeg
}
