package astro

import "math"

// OrbitalElements are mean Keplerian elements referred to the J2000 ecliptic
// and equinox, each with a rate per Julian century.
type OrbitalElements struct {
	A, ADot       float64 // semi-major axis, AU
	E, EDot       float64 // eccentricity
	I, IDot       float64 // inclination, degrees
	L, LDot       float64 // mean longitude, degrees
	Peri, PeriDot float64 // longitude of perihelion, degrees
	Node, NodeDot float64 // longitude of ascending node, degrees
}

// Approximate elements valid 1800-2050 (Standish, JPL).
var (
	EarthMoonBarycenter = OrbitalElements{
		A: 1.00000261, ADot: 0.00000562,
		E: 0.01671123, EDot: -0.00004392,
		I: -0.00001531, IDot: -0.01294668,
		L: 100.46457166, LDot: 35999.37244981,
		Peri: 102.93768193, PeriDot: 0.32327364,
		Node: 0, NodeDot: 0,
	}

	MarsElements = OrbitalElements{
		A: 1.52371034, ADot: 0.00001847,
		E: 0.09339410, EDot: 0.00007882,
		I: 1.84969142, IDot: -0.00813131,
		L: -4.55343205, LDot: 19140.30268499,
		Peri: -23.94362959, PeriDot: 0.44441088,
		Node: 49.55953891, NodeDot: -0.29257343,
	}
)

// Heliocentric returns the heliocentric position in AU on the J2000 ecliptic
// at T Julian centuries (TDB) since J2000.0.
func (el OrbitalElements) Heliocentric(T float64) Vec3 {
	a := el.A + el.ADot*T
	e := el.E + el.EDot*T
	I := degToRad(el.I + el.IDot*T)
	L := el.L + el.LDot*T
	peri := el.Peri + el.PeriDot*T
	node := el.Node + el.NodeDot*T

	omega := degToRad(peri - node)
	M := degToRad(wrap180(L - peri))
	E := SolveKepler(M, e)

	xp := a * (math.Cos(E) - e)
	yp := a * math.Sqrt(1-e*e) * math.Sin(E)

	cw, sw := math.Cos(omega), math.Sin(omega)
	cn, sn := math.Cos(degToRad(node)), math.Sin(degToRad(node))
	ci, si := math.Cos(I), math.Sin(I)

	return Vec3{
		X: (cw*cn-sw*sn*ci)*xp + (-sw*cn-cw*sn*ci)*yp,
		Y: (cw*sn+sw*cn*ci)*xp + (-sw*sn+cw*cn*ci)*yp,
		Z: (sw*si)*xp + (cw*si)*yp,
	}
}

// SolveKepler solves M = E - e sin E for the eccentric anomaly (radians).
func SolveKepler(M, e float64) float64 {
	E := M + e*math.Sin(M)
	for i := 0; i < 30; i++ {
		dE := (E - e*math.Sin(E) - M) / (1 - e*math.Cos(E))
		E -= dE
		if math.Abs(dE) < 1e-12 {
			break
		}
	}
	return E
}

// MarsMagnitude returns the visual magnitude of Mars for heliocentric
// distance r, geocentric distance delta (AU) and phase angle i (degrees).
func MarsMagnitude(r, delta, phaseAngleDeg float64) float64 {
	return -1.52 + 5*math.Log10(r*delta) + 0.016*phaseAngleDeg
}

// PlanetPhaseAngle returns the Sun-planet-Earth angle in degrees from the
// three sides of the triangle (AU).
func PlanetPhaseAngle(r, delta, sunDist float64) float64 {
	c := (r*r + delta*delta - sunDist*sunDist) / (2 * r * delta)
	return radToDeg(math.Acos(clamp(c, -1, 1)))
}

// MarsDiameterAt1AU is the apparent equatorial diameter of Mars at 1 AU, arcseconds.
const MarsDiameterAt1AU = 9.36

// MarsAngularDiameter returns the apparent diameter in arcseconds.
func MarsAngularDiameter(deltaAU float64) float64 {
	return MarsDiameterAt1AU / deltaAU
}
