package astro

import "math"

// Nutation holds nutation in longitude and obliquity, in degrees, together
// with the mean obliquity it was computed against.
type Nutation struct {
	LongitudeDeg     float64 // Δψ
	ObliquityDeg     float64 // Δε
	MeanObliquityDeg float64 // ε0
}

// TrueObliquityDeg returns ε0 + Δε.
func (n Nutation) TrueObliquityDeg() float64 {
	return n.MeanObliquityDeg + n.ObliquityDeg
}

// ComputeNutation evaluates the four leading nutation terms (~0.5")
// for T Julian centuries of TT since J2000.0.
func ComputeNutation(T float64) Nutation {
	omega := degToRad(125.04452 - 1934.136261*T)
	L := degToRad(280.4665 + 36000.7698*T)
	Lp := degToRad(218.3165 + 481267.8813*T)

	dpsi := -17.20*math.Sin(omega) - 1.32*math.Sin(2*L) - 0.23*math.Sin(2*Lp) + 0.21*math.Sin(2*omega)
	deps := 9.20*math.Cos(omega) + 0.57*math.Cos(2*L) + 0.10*math.Cos(2*Lp) - 0.09*math.Cos(2*omega)

	eps0 := 23.0 + 26.0/60 + (21.448-46.8150*T-0.00059*T*T+0.001813*T*T*T)/3600

	return Nutation{
		LongitudeDeg:     dpsi / 3600,
		ObliquityDeg:     deps / 3600,
		MeanObliquityDeg: eps0,
	}
}

// precessionAngles returns ζ, z, θ in degrees for precession from J2000.0
// to T centuries later.
func precessionAngles(T float64) (zeta, z, theta float64) {
	zeta = (2306.2181*T + 0.30188*T*T + 0.017998*T*T*T) / 3600
	z = (2306.2181*T + 1.09468*T*T + 0.018203*T*T*T) / 3600
	theta = (2004.3109*T - 0.42665*T*T - 0.041833*T*T*T) / 3600
	return zeta, z, theta
}

func rotateEquatorial(raDeg, decDeg, zeta, z, theta float64) (float64, float64) {
	ra, dec := degToRad(raDeg), degToRad(decDeg)
	zr, zzr, th := degToRad(zeta), degToRad(z), degToRad(theta)

	A := math.Cos(dec) * math.Sin(ra+zr)
	B := math.Cos(th)*math.Cos(dec)*math.Cos(ra+zr) - math.Sin(th)*math.Sin(dec)
	C := math.Sin(th)*math.Cos(dec)*math.Cos(ra+zr) + math.Cos(th)*math.Sin(dec)

	outRA := normalizeAngle360(radToDeg(math.Atan2(A, B) + zzr))
	outDec := radToDeg(math.Asin(clamp(C, -1, 1)))
	return outRA, outDec
}

// PrecessFromJ2000 precesses mean J2000.0 RA/Dec to the mean equinox of T.
func PrecessFromJ2000(raDeg, decDeg, T float64) (float64, float64) {
	zeta, z, theta := precessionAngles(T)
	return rotateEquatorial(raDeg, decDeg, zeta, z, theta)
}

// PrecessToJ2000 precesses RA/Dec referred to the mean equinox of T back
// to J2000.0.
func PrecessToJ2000(raDeg, decDeg, T float64) (float64, float64) {
	zeta, z, theta := precessionAngles(T)
	return rotateEquatorial(raDeg, decDeg, -z, -zeta, -theta)
}

// AberrationConstant is κ in degrees.
const AberrationConstant = 20.49552 / 3600

// AnnualAberration returns the corrections (Δλ, Δβ) in degrees for a body at
// ecliptic (lon, lat) given the Sun's true longitude.
func AnnualAberration(lonDeg, latDeg, sunTrueLonDeg, T float64) (dLon, dLat float64) {
	e := 0.016708634 - 0.000042037*T
	pi := degToRad(102.93735 + 1.71946*T)
	lon, lat, sun := degToRad(lonDeg), degToRad(latDeg), degToRad(sunTrueLonDeg)

	dLon = (-AberrationConstant*math.Cos(sun-lon) + e*AberrationConstant*math.Cos(pi-lon)) / math.Cos(lat)
	dLat = -AberrationConstant * math.Sin(lat) * (math.Sin(sun-lon) - e*math.Sin(pi-lon))
	return dLon, dLat
}

// GeneralPrecessionInLongitude returns the accumulated precession of the
// equinox since J2000.0 in degrees.
func GeneralPrecessionInLongitude(T float64) float64 {
	return (5029.0966*T + 1.11113*T*T) / 3600
}
