package astro

import (
	"math"
	"testing"
	"time"
)

func TestSunPosition(t *testing.T) {
	tests := []struct {
		name       string
		time       time.Time
		wantRAMin  float64
		wantRAMax  float64
		wantDecMin float64
		wantDecMax float64
	}{
		{
			name:       "March equinox 2024",
			time:       time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC),
			wantRAMin:  359, // wraps through 0h
			wantRAMax:  2,
			wantDecMin: -1,
			wantDecMax: 1,
		},
		{
			name:       "June solstice 2024",
			time:       time.Date(2024, 6, 21, 12, 0, 0, 0, time.UTC),
			wantRAMin:  88,
			wantRAMax:  92,
			wantDecMin: 23,
			wantDecMax: 24,
		},
		{
			name:       "December solstice 2024",
			time:       time.Date(2024, 12, 21, 12, 0, 0, 0, time.UTC),
			wantRAMin:  268,
			wantRAMax:  272,
			wantDecMin: -24,
			wantDecMax: -23,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotRA, gotDec := SunPosition(tt.time)

			var raOK bool
			if tt.wantRAMin > tt.wantRAMax {
				raOK = gotRA >= tt.wantRAMin || gotRA <= tt.wantRAMax
			} else {
				raOK = gotRA >= tt.wantRAMin && gotRA <= tt.wantRAMax
			}
			if !raOK {
				t.Errorf("SunPosition() RA = %.2f°, want between %.2f° and %.2f°",
					gotRA, tt.wantRAMin, tt.wantRAMax)
			}
			if gotDec < tt.wantDecMin || gotDec > tt.wantDecMax {
				t.Errorf("SunPosition() Dec = %.2f°, want between %.2f° and %.2f°",
					gotDec, tt.wantDecMin, tt.wantDecMax)
			}
		})
	}
}

func TestSunEcliptic_Meeus25a(t *testing.T) {
	// 1992 October 13.0 TD
	sun := SunEcliptic(2448908.5)

	if math.Abs(sun.TrueLonDeg-199.90988) > 0.001 {
		t.Errorf("true longitude = %.5f, want 199.90988", sun.TrueLonDeg)
	}
	if math.Abs(sun.ApparentLonDeg-199.90895) > 0.001 {
		t.Errorf("apparent longitude = %.5f, want 199.90895", sun.ApparentLonDeg)
	}
	if math.Abs(sun.DistanceAU-0.99766) > 0.0001 {
		t.Errorf("distance = %.5f AU, want 0.99766", sun.DistanceAU)
	}
}

func TestAngularSeparation(t *testing.T) {
	tests := []struct {
		name      string
		ra1, dec1 float64
		ra2, dec2 float64
		wantSep   float64
		tol       float64
	}{
		{"same point", 100, 30, 100, 30, 0, 0.001},
		{"quarter on equator", 0, 0, 90, 0, 90, 0.001},
		{"opposite on equator", 0, 0, 180, 0, 180, 0.001},
		{"pole to pole", 0, 90, 0, -90, 180, 0.001},
		{"one degree of RA at dec 30", 100, 30, 101, 30, 0.866, 0.01},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AngularSeparation(tt.ra1, tt.dec1, tt.ra2, tt.dec2)
			if math.Abs(got-tt.wantSep) > tt.tol {
				t.Errorf("AngularSeparation() = %.4f°, want %.4f° (±%.4f)",
					got, tt.wantSep, tt.tol)
			}
		})
	}
}

func TestWrap180(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{180, 180},
		{181, -179},
		{-181, 179},
		{540, 180},
		{-90, -90},
		{359.5, -0.5},
	}
	for _, tt := range tests {
		if got := Wrap180(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Wrap180(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
