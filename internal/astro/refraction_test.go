package astro

import (
	"math"
	"testing"
	"time"
)

func TestRefraction(t *testing.T) {
	tests := []struct {
		name     string
		alt      float64
		min, max float64
	}{
		{"horizon", 0, 0.45, 0.52},
		{"ten degrees", 10, 0.08, 0.1},
		{"forty-five degrees", 45, 0.01, 0.02},
		{"zenith", 90, 0, 0.0001},
		{"well below horizon", -2, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Refraction(tt.alt)
			if got < tt.min || got > tt.max {
				t.Errorf("Refraction(%v) = %v, want [%v, %v]", tt.alt, got, tt.min, tt.max)
			}
		})
	}
}

func TestExtinctionAtAltitude(t *testing.T) {
	tests := []struct {
		alt  float64
		want float64
	}{
		{90, 0.28},
		{30, 0.56},
		{1, MaxExtinction},
		{0, MaxExtinction},
		{-15, MaxExtinction},
	}

	for _, tt := range tests {
		if got := ExtinctionAtAltitude(tt.alt); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("ExtinctionAtAltitude(%v) = %v, want %v", tt.alt, got, tt.want)
		}
	}
}

func TestTopocentricParallax_Moon(t *testing.T) {
	// Moon on the meridian, observer at 45°N: parallax lowers it by ~0.7°
	const lst = 100.0
	ra, dec := TopocentricParallax(lst, 0, 384400/AU, 45, lst)

	if math.Abs(Wrap180(ra-lst)) > 1e-6 {
		t.Errorf("RA shifted on the meridian: %v", ra)
	}
	if shift := dec - 0; shift > -0.5 || shift < -0.8 {
		t.Errorf("declination shift = %v°, want ~-0.67", shift)
	}
}

func TestTopocentricParallax_DistantBody(t *testing.T) {
	ra, dec := TopocentricParallax(50, 20, 1.0, 45, 80)
	if math.Abs(ra-50) > 0.005 || math.Abs(dec-20) > 0.005 {
		t.Errorf("parallax at 1 AU too large: (%v, %v)", ra, dec)
	}
}

func TestSunAltitude_NoonAndMidnight(t *testing.T) {
	greenwich := Observer{LatDeg: 51.48, LonDeg: 0}

	noon := SunAltitude(time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC), greenwich)
	if noon < 60 || noon > 63 {
		t.Errorf("solstice noon altitude = %v, want ~62", noon)
	}
	midnight := SunAltitude(time.Date(2024, 12, 21, 0, 0, 0, 0, time.UTC), greenwich)
	if midnight > -50 {
		t.Errorf("winter midnight altitude = %v, want deep below horizon", midnight)
	}
}
