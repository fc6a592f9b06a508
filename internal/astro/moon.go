package astro

import "math"

// LunarTerm is one periodic term of the lunar theory: integer multiples of
// the fundamental arguments D, M, M', F and two coefficients. For the
// longitude/distance table Sin is in 1e-6 degrees and Cos in 1e-3 km; for the
// latitude table only Sin is used.
type LunarTerm struct {
	D, M, Mp, F int
	Sin         float64
	Cos         float64
}

// LunarSeries is a truncated trigonometric theory of the Moon's geocentric
// position. Additive enables the Venus, Jupiter and flattening terms.
type LunarSeries struct {
	Longitude []LunarTerm
	Latitude  []LunarTerm
	Additive  bool
}

// Truncate returns a copy limited to the leading terms of each table,
// without the additive corrections.
func (s LunarSeries) Truncate(nLon, nLat int) LunarSeries {
	if nLon > len(s.Longitude) {
		nLon = len(s.Longitude)
	}
	if nLat > len(s.Latitude) {
		nLat = len(s.Latitude)
	}
	return LunarSeries{
		Longitude: append([]LunarTerm(nil), s.Longitude[:nLon]...),
		Latitude:  append([]LunarTerm(nil), s.Latitude[:nLat]...),
	}
}

// LunarArguments are the fundamental arguments in degrees.
type LunarArguments struct {
	Lp, D, M, Mp, F float64
	E               float64 // eccentricity factor of the Earth's orbit
}

// ComputeLunarArguments evaluates the fundamental arguments at T Julian
// centuries (TT) since J2000.0.
func ComputeLunarArguments(T float64) LunarArguments {
	T2, T3, T4 := T*T, T*T*T, T*T*T*T
	return LunarArguments{
		Lp: normalizeAngle360(218.3164477 + 481267.88123421*T - 0.0015786*T2 + T3/538841 - T4/65194000),
		D:  normalizeAngle360(297.8501921 + 445267.1114034*T - 0.0018819*T2 + T3/545868 - T4/113065000),
		M:  normalizeAngle360(357.5291092 + 35999.0502909*T - 0.0001536*T2 + T3/24490000),
		Mp: normalizeAngle360(134.9633964 + 477198.8675055*T + 0.0087414*T2 + T3/69699 - T4/14712000),
		F:  normalizeAngle360(93.2720950 + 483202.0175233*T - 0.0036539*T2 - T3/3526000 + T4/863310000),
		E:  1 - 0.002516*T - 0.0000074*T2,
	}
}

func (a LunarArguments) argument(t LunarTerm) float64 {
	return degToRad(float64(t.D)*a.D + float64(t.M)*a.M + float64(t.Mp)*a.Mp + float64(t.F)*a.F)
}

func (a LunarArguments) eccentricity(t LunarTerm) float64 {
	switch t.M {
	case 1, -1:
		return a.E
	case 2, -2:
		return a.E * a.E
	default:
		return 1
	}
}

// LunarPosition is the Moon's geometric geocentric position on the ecliptic
// of date (mean equinox, no nutation).
type LunarPosition struct {
	LonDeg     float64
	LatDeg     float64
	DistanceKm float64
}

// Position evaluates the series at T Julian centuries (TT) since J2000.0.
func (s LunarSeries) Position(T float64) LunarPosition {
	a := ComputeLunarArguments(T)

	var sumL, sumR, sumB float64
	for _, term := range s.Longitude {
		arg := a.argument(term)
		e := a.eccentricity(term)
		sumL += term.Sin * e * math.Sin(arg)
		sumR += term.Cos * e * math.Cos(arg)
	}
	for _, term := range s.Latitude {
		sumB += term.Sin * a.eccentricity(term) * math.Sin(a.argument(term))
	}

	if s.Additive {
		A1 := degToRad(119.75 + 131.849*T)
		A2 := degToRad(53.09 + 479264.290*T)
		A3 := degToRad(313.45 + 481266.484*T)
		Lp, Mp, F := degToRad(a.Lp), degToRad(a.Mp), degToRad(a.F)

		sumL += 3958*math.Sin(A1) + 1962*math.Sin(Lp-F) + 318*math.Sin(A2)
		sumB += -2235*math.Sin(Lp) + 382*math.Sin(A3) + 175*math.Sin(A1-F) +
			175*math.Sin(A1+F) + 127*math.Sin(Lp-Mp) - 115*math.Sin(Lp+Mp)
	}

	return LunarPosition{
		LonDeg:     normalizeAngle360(a.Lp + sumL/1e6),
		LatDeg:     sumB / 1e6,
		DistanceKm: 385000.56 + sumR/1000,
	}
}

// MoonPhaseAngle returns the Sun-Moon-Earth angle in degrees from the
// fundamental arguments alone (low precision, ~0.1°).
func MoonPhaseAngle(T float64) float64 {
	a := ComputeLunarArguments(T)
	D, M, Mp := degToRad(a.D), degToRad(a.M), degToRad(a.Mp)

	i := 180 - a.D -
		6.289*math.Sin(Mp) +
		2.100*math.Sin(M) -
		1.274*math.Sin(2*D-Mp) -
		0.658*math.Sin(2*D) -
		0.214*math.Sin(2*Mp) -
		0.110*math.Sin(D)
	return normalizeAngle360(i)
}

// PhaseAngleFromGeometry returns the Sun-Moon-Earth angle in degrees from the
// elongation and the two geocentric distances (same units).
func PhaseAngleFromGeometry(elongationDeg, sunDist, moonDist float64) float64 {
	psi := degToRad(elongationDeg)
	return radToDeg(math.Atan2(sunDist*math.Sin(psi), moonDist-sunDist*math.Cos(psi)))
}

// IlluminatedFraction returns the lit fraction of the disk for a phase angle.
func IlluminatedFraction(phaseAngleDeg float64) float64 {
	return (1 + math.Cos(degToRad(phaseAngleDeg))) / 2
}

// Elongation returns the angular distance in degrees between two ecliptic
// positions.
func Elongation(lon1, lat1, lon2, lat2 float64) float64 {
	l1, b1, l2, b2 := degToRad(lon1), degToRad(lat1), degToRad(lon2), degToRad(lat2)
	c := math.Sin(b1)*math.Sin(b2) + math.Cos(b1)*math.Cos(b2)*math.Cos(l1-l2)
	return radToDeg(math.Acos(clamp(c, -1, 1)))
}
