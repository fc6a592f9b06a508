package astro

import (
	"math"
	"time"
)

// SolarCoords holds the geocentric position of the Sun on the ecliptic.
type SolarCoords struct {
	TrueLonDeg     float64 // geometric longitude, mean equinox of date
	ApparentLonDeg float64 // corrected for nutation and aberration
	DistanceAU     float64
	MeanAnomalyDeg float64
}

// SunEcliptic computes the Sun's ecliptic position for a Julian Ephemeris Day.
// Low-precision solar theory from the Astronomical Almanac (~0.01°).
func SunEcliptic(jde float64) SolarCoords {
	T := JulianCenturies(jde)

	L0 := normalizeAngle360(280.46646 + 36000.76983*T + 0.0003032*T*T)
	M := normalizeAngle360(357.52911 + 35999.05029*T - 0.0001537*T*T)
	Mrad := degToRad(M)
	e := 0.016708634 - 0.000042037*T - 0.0000001267*T*T

	// Equation of center
	C := (1.914602 - 0.004817*T - 0.000014*T*T) * math.Sin(Mrad)
	C += (0.019993 - 0.000101*T) * math.Sin(2*Mrad)
	C += 0.000289 * math.Sin(3*Mrad)

	trueLon := L0 + C
	v := degToRad(M + C)
	R := 1.000001018 * (1 - e*e) / (1 + e*math.Cos(v))

	omega := 125.04 - 1934.136*T
	apparent := trueLon - 0.00569 - 0.00478*math.Sin(degToRad(omega))

	return SolarCoords{
		TrueLonDeg:     normalizeAngle360(trueLon),
		ApparentLonDeg: normalizeAngle360(apparent),
		DistanceAU:     R,
		MeanAnomalyDeg: M,
	}
}

// SunPosition calculates the apparent equatorial coordinates of the Sun.
func SunPosition(t time.Time) (raDeg, decDeg float64) {
	jd := julianDate(t)
	T := JulianCenturies(jd)
	sun := SunEcliptic(jd)

	omega := 125.04 - 1934.136*T
	eps := MeanObliquity(T) + 0.00256*math.Cos(degToRad(omega))

	return EclipticToEquatorialDeg(sun.ApparentLonDeg, 0, eps)
}

// SunSeparation calculates the angular separation between the Sun and a target.
// Returns the separation angle in degrees.
func SunSeparation(targetRA, targetDec float64, t time.Time) float64 {
	sunRA, sunDec := SunPosition(t)
	return AngularSeparation(sunRA, sunDec, targetRA, targetDec)
}

// AngularSeparation calculates the angular separation between two points on the celestial sphere.
// All coordinates in degrees. Returns separation in degrees.
func AngularSeparation(ra1, dec1, ra2, dec2 float64) float64 {
	ra1Rad := degToRad(ra1)
	dec1Rad := degToRad(dec1)
	ra2Rad := degToRad(ra2)
	dec2Rad := degToRad(dec2)

	// Haversine
	dRA := ra2Rad - ra1Rad
	dDec := dec2Rad - dec1Rad

	a := math.Sin(dDec/2)*math.Sin(dDec/2) +
		math.Cos(dec1Rad)*math.Cos(dec2Rad)*math.Sin(dRA/2)*math.Sin(dRA/2)
	if a > 1 {
		a = 1
	}

	return radToDeg(2 * math.Asin(math.Sqrt(a)))
}

// NormalizeAngle360 normalizes an angle to [0, 360).
func NormalizeAngle360(a float64) float64 {
	return normalizeAngle360(a)
}

// Wrap180 wraps an angle to (-180, 180].
func Wrap180(a float64) float64 {
	return wrap180(a)
}

func normalizeAngle360(a float64) float64 {
	a = math.Mod(a, 360)
	if a < 0 {
		a += 360
	}
	return a
}

func wrap180(a float64) float64 {
	a = normalizeAngle360(a)
	if a > 180 {
		a -= 360
	}
	return a
}
