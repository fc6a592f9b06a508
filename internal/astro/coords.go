// Package astro provides astronomical coordinate transformations and sky math.
package astro

import (
	"math"
	"time"
)

// StandardHorizon is the altitude of the upper limb at rise/set, -0°34',
// accounting for refraction at the horizon.
const StandardHorizon = -34.0 / 60.0

// SkyCoord represents celestial coordinates with both equatorial (RA/Dec)
// and horizontal (Az/El) components.
type SkyCoord struct {
	RAdeg  float64 // Right Ascension in degrees (0-360), equinox of date
	DecDeg float64 // Declination in degrees (-90 to +90)

	AzDeg float64 // Azimuth in degrees (0=N, 90=E, 180=S, 270=W)
	ElDeg float64 // Elevation/Altitude in degrees (0=horizon, 90=zenith)

	RangeKm float64
}

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// EquatorialToHorizontal converts equatorial coordinates (RA/Dec) to horizontal
// coordinates (Az/El) for a given observer and time, using mean sidereal time.
//
// The function preserves the input RA/Dec values and populates Az/El.
//   - Azimuth: 0° = North, 90° = East, 180° = South, 270° = West
//   - Elevation: 0° = horizon, 90° = zenith
func EquatorialToHorizontal(eq SkyCoord, obs Observer, t time.Time) SkyCoord {
	lst := localSiderealTime(t, obs.LonDeg)
	az, el := HourAngleToHorizontal(lst-eq.RAdeg, eq.DecDeg, obs.LatDeg)

	return SkyCoord{
		RAdeg:   eq.RAdeg,
		DecDeg:  eq.DecDeg,
		AzDeg:   az,
		ElDeg:   el,
		RangeKm: eq.RangeKm,
	}
}

// HourAngleToHorizontal converts a local hour angle and declination to
// azimuth (from north, eastward) and altitude, all in degrees.
func HourAngleToHorizontal(haDeg, decDeg, latDeg float64) (azDeg, altDeg float64) {
	lat := degToRad(latDeg)
	ha := degToRad(haDeg)
	dec := degToRad(decDeg)

	sinAlt := math.Sin(dec)*math.Sin(lat) + math.Cos(dec)*math.Cos(lat)*math.Cos(ha)
	sinAlt = clamp(sinAlt, -1, 1)
	alt := math.Asin(sinAlt)

	// atan2 form stays defined at the poles, where cos(lat) vanishes.
	y := -math.Cos(dec) * math.Sin(ha)
	x := math.Sin(dec)*math.Cos(lat) - math.Cos(dec)*math.Sin(lat)*math.Cos(ha)
	az := normalizeAngle360(radToDeg(math.Atan2(y, x)))
	if az >= 360 {
		az = 0
	}

	return az, radToDeg(alt)
}

// HourAngle returns the local hour angle of a right ascension, wrapped to
// (-180, 180]. Negative values are east of the meridian.
func HourAngle(lstDeg, raDeg float64) float64 {
	return wrap180(lstDeg - raDeg)
}

// LocalSiderealTime returns the local mean sidereal time in degrees.
func LocalSiderealTime(t time.Time, lonDeg float64) float64 {
	return localSiderealTime(t, lonDeg)
}

// localSiderealTime calculates the Local Sidereal Time in degrees
// for a given UTC time and observer longitude.
func localSiderealTime(t time.Time, lonDeg float64) float64 {
	return normalizeAngle360(greenwichMeanSiderealTime(t) + lonDeg)
}

// ApparentSiderealTime returns local apparent sidereal time in degrees:
// mean sidereal time corrected by the equation of the equinoxes.
func ApparentSiderealTime(t time.Time, lonDeg float64, nut Nutation) float64 {
	eqEq := nut.LongitudeDeg * math.Cos(degToRad(nut.TrueObliquityDeg()))
	return normalizeAngle360(localSiderealTime(t, lonDeg) + eqEq)
}

// greenwichMeanSiderealTime calculates GMST in degrees for a given UTC time.
// Uses the IAU 1982 formula based on Julian Date.
func greenwichMeanSiderealTime(t time.Time) float64 {
	jd := julianDate(t)
	T := (jd - J2000) / 36525.0

	gmst := 280.46061837 +
		360.98564736629*(jd-J2000) +
		0.000387933*T*T -
		T*T*T/38710000.0

	return normalizeAngle360(gmst)
}

// J2000 is the Julian Date of the J2000.0 epoch.
const J2000 = 2451545.0

// JulianDate returns the Julian Date of t on its own clock (no scale shift).
func JulianDate(t time.Time) float64 {
	return julianDate(t)
}

// JulianCenturies returns Julian centuries since J2000.0 for a Julian Date.
func JulianCenturies(jd float64) float64 {
	return (jd - J2000) / 36525.0
}

// julianDate calculates the Julian Date for a given time.
func julianDate(t time.Time) float64 {
	t = t.UTC()

	y := float64(t.Year())
	m := float64(t.Month())
	d := float64(t.Day())

	h := float64(t.Hour())
	min := float64(t.Minute())
	sec := float64(t.Second())
	ns := float64(t.Nanosecond())

	dayFrac := (h + min/60 + sec/3600 + ns/3600e9) / 24.0

	// January/February count as months 13/14 of the previous year
	if m <= 2 {
		y--
		m += 12
	}

	A := math.Floor(y / 100)
	B := 2 - A + math.Floor(A/4)

	return math.Floor(365.25*(y+4716)) +
		math.Floor(30.6001*(m+1)) +
		d + dayFrac + B - 1524.5
}

// DegToRad converts degrees to radians.
func DegToRad(deg float64) float64 { return degToRad(deg) }

// RadToDeg converts radians to degrees.
func RadToDeg(rad float64) float64 { return radToDeg(rad) }

func degToRad(deg float64) float64 {
	return deg * math.Pi / 180
}

func radToDeg(rad float64) float64 {
	return rad * 180 / math.Pi
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
