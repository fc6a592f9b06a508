package astro

import (
	"fmt"
	"math"
)

// AU is the Astronomical Unit in kilometers.
const AU = 149597870.7

// LightSecondsPerAU is the one-way light time across 1 AU.
const LightSecondsPerAU = 499.004784

// Vec3 represents a 3D vector in any reference frame.
type Vec3 struct {
	X, Y, Z float64
}

// Norm returns the magnitude of the vector.
func (v Vec3) Norm() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalized returns a unit vector in the same direction.
func (v Vec3) Normalized() Vec3 {
	n := v.Norm()
	if n == 0 {
		return Vec3{}
	}
	return Vec3{X: v.X / n, Y: v.Y / n, Z: v.Z / n}
}

// Scale returns the vector scaled by a factor.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{X: v.X * s, Y: v.Y * s, Z: v.Z * s}
}

// Add returns the sum of two vectors.
func (v Vec3) Add(u Vec3) Vec3 {
	return Vec3{X: v.X + u.X, Y: v.Y + u.Y, Z: v.Z + u.Z}
}

// Sub returns the difference of two vectors.
func (v Vec3) Sub(u Vec3) Vec3 {
	return Vec3{X: v.X - u.X, Y: v.Y - u.Y, Z: v.Z - u.Z}
}

// Dot returns the scalar product.
func (v Vec3) Dot(u Vec3) float64 {
	return v.X*u.X + v.Y*u.Y + v.Z*u.Z
}

// SphericalToVec3 builds a vector from longitude/latitude in degrees and a radius.
func SphericalToVec3(lonDeg, latDeg, r float64) Vec3 {
	lon, lat := degToRad(lonDeg), degToRad(latDeg)
	return Vec3{
		X: r * math.Cos(lat) * math.Cos(lon),
		Y: r * math.Cos(lat) * math.Sin(lon),
		Z: r * math.Sin(lat),
	}
}

// KmToAU converts kilometers to Astronomical Units.
func KmToAU(km float64) float64 {
	return km / AU
}

// AUToKm converts Astronomical Units to kilometers.
func AUToKm(au float64) float64 {
	return au * AU
}

// EclipticLatitude returns the ecliptic latitude in degrees for a vector.
func EclipticLatitude(v Vec3) float64 {
	r := v.Norm()
	if r == 0 {
		return 0
	}
	return radToDeg(math.Asin(v.Z / r))
}

// EclipticLongitude returns the ecliptic longitude in degrees for a vector.
func EclipticLongitude(v Vec3) float64 {
	lon := radToDeg(math.Atan2(v.Y, v.X))
	if lon < 0 {
		lon += 360
	}
	return lon
}

// ObliquityJ2000 is the mean obliquity of the ecliptic at J2000.0 in degrees.
const ObliquityJ2000 = 23.4392911

// MeanObliquity returns the mean obliquity of the ecliptic in degrees
// for T Julian centuries since J2000.0.
func MeanObliquity(T float64) float64 {
	return 23.439291 - 0.0130042*T - 0.00000016*T*T + 0.000000504*T*T*T
}

// EclipticToEquatorialDeg converts ecliptic longitude/latitude to RA/Dec for
// the given obliquity. All angles in degrees; RA is returned in [0, 360).
func EclipticToEquatorialDeg(lonDeg, latDeg, epsDeg float64) (raDeg, decDeg float64) {
	lon, lat, eps := degToRad(lonDeg), degToRad(latDeg), degToRad(epsDeg)

	ra := math.Atan2(math.Sin(lon)*math.Cos(eps)-math.Tan(lat)*math.Sin(eps), math.Cos(lon))
	sinDec := math.Sin(lat)*math.Cos(eps) + math.Cos(lat)*math.Sin(eps)*math.Sin(lon)

	return normalizeAngle360(radToDeg(ra)), radToDeg(math.Asin(clamp(sinDec, -1, 1)))
}

// EquatorialToEclipticDeg converts RA/Dec to ecliptic longitude/latitude for
// the given obliquity. All angles in degrees; longitude is in [0, 360).
func EquatorialToEclipticDeg(raDeg, decDeg, epsDeg float64) (lonDeg, latDeg float64) {
	ra, dec, eps := degToRad(raDeg), degToRad(decDeg), degToRad(epsDeg)

	lon := math.Atan2(math.Sin(ra)*math.Cos(eps)+math.Tan(dec)*math.Sin(eps), math.Cos(ra))
	sinLat := math.Sin(dec)*math.Cos(eps) - math.Cos(dec)*math.Sin(eps)*math.Sin(ra)

	return normalizeAngle360(radToDeg(lon)), radToDeg(math.Asin(clamp(sinLat, -1, 1)))
}

// LightTimeFromAU returns the one-way light time in seconds for a distance in AU.
func LightTimeFromAU(au float64) float64 {
	return au * LightSecondsPerAU
}

// FormatLightTime formats light time in seconds to a human-readable string.
func FormatLightTime(seconds float64) string {
	switch {
	case seconds < 60:
		return fmt.Sprintf("%.1fs", seconds)
	case seconds < 3600:
		return fmt.Sprintf("%dm%ds", int(seconds/60), int(seconds)%60)
	default:
		return fmt.Sprintf("%dh%dm", int(seconds/3600), (int(seconds)%3600)/60)
	}
}
