package astro

import (
	"math"
	"testing"
	"time"
)

func TestJulianDate(t *testing.T) {
	tests := []struct {
		name     string
		time     time.Time
		expected float64
	}{
		{"J2000 epoch", time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Unix epoch", time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC), 2440587.5},
		{"2024-01-01", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), 2460310.5},
		{"leap day noon", time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC), 2460370.0},
		{"non-UTC zone", time.Date(2000, 1, 1, 13, 0, 0, 0, time.FixedZone("CET", 3600)), 2451545.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDate(tt.time)
			if math.Abs(got-tt.expected) > 1e-4 {
				t.Errorf("JulianDate() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestGreenwichMeanSiderealTime(t *testing.T) {
	gmst := greenwichMeanSiderealTime(time.Date(2000, 1, 1, 12, 0, 0, 0, time.UTC))
	if math.Abs(gmst-280.46) > 0.1 {
		t.Errorf("GMST at J2000 = %v, want ~280.46", gmst)
	}

	// Meeus example 12.a: 1987 April 10, 0h UT
	gmst = greenwichMeanSiderealTime(time.Date(1987, 4, 10, 0, 0, 0, 0, time.UTC))
	if math.Abs(gmst-197.693195) > 0.001 {
		t.Errorf("GMST 1987-04-10 = %v, want 197.693195", gmst)
	}
}

func TestLocalSiderealTime_Range(t *testing.T) {
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	gmst := greenwichMeanSiderealTime(testTime)

	if lst := LocalSiderealTime(testTime, 0); math.Abs(lst-gmst) > 1e-9 {
		t.Errorf("LST at lon=0 = %v, want GMST %v", lst, gmst)
	}
	for lon := -180.0; lon <= 180; lon += 30 {
		lst := LocalSiderealTime(testTime, lon)
		if lst < 0 || lst >= 360 {
			t.Errorf("LST at lon=%v out of range: %v", lon, lst)
		}
	}
}

func TestHourAngleToHorizontal(t *testing.T) {
	tests := []struct {
		name            string
		ha, dec, lat    float64
		wantAz, wantAlt float64
	}{
		{"zenith on equator", 0, 0, 0, -1, 90},
		{"rising due east", -90, 0, 45, 90, 0},
		{"setting due west", 90, 0, 45, 270, 0},
		{"south on meridian", 0, 0, 45, 180, 45},
		{"north pole sees declination as altitude", 123, 40, 90, -1, 40},
		{"south pole", 10, -30, -90, -1, 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			az, alt := HourAngleToHorizontal(tt.ha, tt.dec, tt.lat)
			if math.IsNaN(az) || math.IsNaN(alt) {
				t.Fatalf("got NaN: az=%v alt=%v", az, alt)
			}
			if math.Abs(alt-tt.wantAlt) > 1e-6 {
				t.Errorf("alt = %v, want %v", alt, tt.wantAlt)
			}
			if tt.wantAz >= 0 && math.Abs(az-tt.wantAz) > 1e-6 {
				t.Errorf("az = %v, want %v", az, tt.wantAz)
			}
			if az < 0 || az >= 360 {
				t.Errorf("az out of range: %v", az)
			}
		})
	}
}

func TestEquatorialToHorizontal_Polaris(t *testing.T) {
	polaris := SkyCoord{RAdeg: 37.95, DecDeg: 89.26}
	observer := Observer{LatDeg: 35.0, LonDeg: -117.0}

	result := EquatorialToHorizontal(polaris, observer, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC))

	if math.Abs(result.ElDeg-observer.LatDeg) > 1 {
		t.Errorf("Polaris elevation = %v°, expected ~%v°", result.ElDeg, observer.LatDeg)
	}
	if result.AzDeg > 2 && result.AzDeg < 358 {
		t.Errorf("Polaris azimuth = %v°, expected near north", result.AzDeg)
	}
	if result.RAdeg != polaris.RAdeg || result.DecDeg != polaris.DecDeg {
		t.Error("RA/Dec should be preserved after transformation")
	}
}

func TestEquatorialToHorizontal_ZenithStar(t *testing.T) {
	observer := Observer{LatDeg: 35.0, LonDeg: -117.0}
	testTime := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	lst := localSiderealTime(testTime, observer.LonDeg)

	result := EquatorialToHorizontal(SkyCoord{RAdeg: lst, DecDeg: observer.LatDeg}, observer, testTime)

	if math.Abs(result.ElDeg-90) > 1e-6 {
		t.Errorf("Zenith star elevation = %v°, expected 90°", result.ElDeg)
	}
}

func TestHourAngle(t *testing.T) {
	if got := HourAngle(10, 350); math.Abs(got-20) > 1e-9 {
		t.Errorf("HourAngle(10, 350) = %v, want 20", got)
	}
	if got := HourAngle(350, 10); math.Abs(got+20) > 1e-9 {
		t.Errorf("HourAngle(350, 10) = %v, want -20", got)
	}
}

func TestDegRadRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 90, 180, 360, -90, 12.345} {
		if got := RadToDeg(DegToRad(deg)); math.Abs(got-deg) > 1e-10 {
			t.Errorf("round trip of %v = %v", deg, got)
		}
	}
	if math.Abs(DegToRad(180)-math.Pi) > 1e-12 {
		t.Errorf("DegToRad(180) = %v", DegToRad(180))
	}
}
