package astro

import (
	"math"
	"testing"
)

func TestSolveKepler(t *testing.T) {
	for _, e := range []float64{0, 0.0167, 0.0934, 0.5} {
		for M := -3.0; M <= 3; M += 0.5 {
			E := SolveKepler(M, e)
			if res := E - e*math.Sin(E) - M; math.Abs(res) > 1e-10 {
				t.Errorf("e=%v M=%v residual %v", e, M, res)
			}
		}
	}
}

func TestHeliocentric_MarsOrbit(t *testing.T) {
	for T := -0.2; T <= 0.5; T += 0.01 {
		v := MarsElements.Heliocentric(T)
		r := v.Norm()
		if r < 1.38 || r > 1.67 {
			t.Fatalf("Mars r = %v AU at T=%v", r, T)
		}
		if lat := EclipticLatitude(v); math.Abs(lat) > 1.9 {
			t.Fatalf("Mars ecliptic latitude = %v at T=%v", lat, T)
		}
	}
}

func TestHeliocentric_EarthOpposesSun(t *testing.T) {
	// The Sun seen from the Earth sits opposite the Earth seen from the Sun.
	const jd = 2448908.5
	earth := EarthMoonBarycenter.Heliocentric(JulianCenturies(jd))
	sun := SunEcliptic(jd)

	lon := normalizeAngle360(EclipticLongitude(earth) + 180)
	// J2000 frame vs equinox of date differ by ~0.1° in 1992
	if d := math.Abs(Wrap180(lon - sun.TrueLonDeg)); d > 0.2 {
		t.Errorf("Sun longitude from elements %v vs theory %v", lon, sun.TrueLonDeg)
	}
	if math.Abs(earth.Norm()-sun.DistanceAU) > 0.001 {
		t.Errorf("distance %v vs %v", earth.Norm(), sun.DistanceAU)
	}
}

func TestMarsMagnitude(t *testing.T) {
	got := MarsMagnitude(1.38, 0.38, 0)
	want := -1.52 + 5*math.Log10(1.38*0.38)
	if math.Abs(got-want) > 1e-12 {
		t.Errorf("MarsMagnitude = %v, want %v", got, want)
	}
	if got > -2 {
		t.Errorf("perihelic opposition should be brighter than -2, got %v", got)
	}
}

func TestPlanetPhaseAngle(t *testing.T) {
	// Opposition: Sun, Earth and Mars aligned
	if i := PlanetPhaseAngle(1.5, 0.5, 1.0); math.Abs(i) > 1e-6 {
		t.Errorf("phase angle at opposition = %v", i)
	}
	if i := PlanetPhaseAngle(1.5, 1.0, 1.0); i <= 0 || i > 48 {
		t.Errorf("phase angle = %v, want within Mars' maximum", i)
	}
}

func TestMarsAngularDiameter(t *testing.T) {
	if d := MarsAngularDiameter(1); d != MarsDiameterAt1AU {
		t.Errorf("diameter at 1 AU = %v", d)
	}
	if d := MarsAngularDiameter(0.5); math.Abs(d-18.72) > 1e-9 {
		t.Errorf("diameter at 0.5 AU = %v", d)
	}
}
