package astro

import (
	"math"
	"testing"
)

func TestComputeNutation_Meeus22a(t *testing.T) {
	// 1987 April 10, 0h TD
	n := ComputeNutation(-0.127296372348)

	if got := n.LongitudeDeg * 3600; math.Abs(got-(-3.788)) > 0.5 {
		t.Errorf("Δψ = %.3f\", want -3.788\"", got)
	}
	if got := n.ObliquityDeg * 3600; math.Abs(got-9.443) > 0.5 {
		t.Errorf("Δε = %.3f\", want 9.443\"", got)
	}
	if math.Abs(n.MeanObliquityDeg-23.4409464) > 1e-5 {
		t.Errorf("ε0 = %.7f, want 23.4409464", n.MeanObliquityDeg)
	}
	if math.Abs(n.TrueObliquityDeg()-(n.MeanObliquityDeg+n.ObliquityDeg)) > 1e-12 {
		t.Error("true obliquity is not ε0 + Δε")
	}
}

func TestPrecessFromJ2000_Meeus21b(t *testing.T) {
	// θ Persei to 2028 November 13.19 TD
	const T = 0.288670500
	ra, dec := PrecessFromJ2000(41.054063, 49.227750, T)

	if math.Abs(ra-41.547214) > 1e-4 {
		t.Errorf("RA = %.6f, want 41.547214", ra)
	}
	if math.Abs(dec-49.348483) > 1e-4 {
		t.Errorf("Dec = %.6f, want 49.348483", dec)
	}
}

func TestPrecession_RoundTrip(t *testing.T) {
	for _, c := range []struct{ ra, dec float64 }{
		{0, 0}, {123.4, -45.6}, {359.9, 80}, {200, -10},
	} {
		ra, dec := PrecessFromJ2000(c.ra, c.dec, 0.25)
		ra2, dec2 := PrecessToJ2000(ra, dec, 0.25)
		if math.Abs(Wrap180(ra2-c.ra)) > 1e-8 || math.Abs(dec2-c.dec) > 1e-8 {
			t.Errorf("round trip (%v, %v) -> (%v, %v)", c.ra, c.dec, ra2, dec2)
		}
	}
}

func TestAnnualAberration_Magnitude(t *testing.T) {
	for lon := 0.0; lon < 360; lon += 45 {
		dLon, dLat := AnnualAberration(lon, 1.5, 100, 0.25)
		if math.Abs(dLon) > 21.0/3600 || math.Abs(dLat) > 21.0/3600 {
			t.Errorf("aberration at lon %v too large: %v, %v", lon, dLon*3600, dLat*3600)
		}
	}
}

func TestEclipticEquatorialRoundTrip(t *testing.T) {
	ra, dec := EclipticToEquatorialDeg(120, 3, ObliquityJ2000)
	lon, lat := EquatorialToEclipticDeg(ra, dec, ObliquityJ2000)
	if math.Abs(lon-120) > 1e-9 || math.Abs(lat-3) > 1e-9 {
		t.Errorf("round trip = (%v, %v), want (120, 3)", lon, lat)
	}

	// The March equinox point lies on both equators
	ra, dec = EclipticToEquatorialDeg(0, 0, ObliquityJ2000)
	if math.Abs(ra) > 1e-9 || math.Abs(dec) > 1e-9 {
		t.Errorf("equinox = (%v, %v)", ra, dec)
	}
}
