package ephem

import (
	"testing"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
)

func TestDefaultConstellationTable(t *testing.T) {
	table, err := DefaultConstellationTable()
	if err != nil {
		t.Fatalf("DefaultConstellationTable() error = %v", err)
	}
	if table.Len() != 357 {
		t.Errorf("Len() = %d, want 357", table.Len())
	}
}

func TestConstellationTable_BrightStars(t *testing.T) {
	table, err := DefaultConstellationTable()
	if err != nil {
		t.Fatalf("DefaultConstellationTable() error = %v", err)
	}

	// Mean J2000 positions.
	tests := []struct {
		star    string
		raHours float64
		decDeg  float64
		want    string
	}{
		{"Betelgeuse", 5.9195, 7.407, "Orion"},
		{"Regulus", 10.1395, 11.967, "Leo"},
		{"Spica", 13.4199, -11.161, "Virgo"},
		{"Antares", 16.4901, -26.432, "Scorpius"},
		{"Aldebaran", 4.5987, 16.509, "Taurus"},
		{"Pollux", 7.7553, 28.026, "Gemini"},
		{"Hamal", 2.1196, 23.4624, "Aries"},
		{"Nunki", 18.9211, -26.2967, "Sagittarius"},
		{"Zubenelgenubi", 14.8480, -16.0418, "Libra"},
		{"Deneb Algedi", 21.784, -16.127, "Capricornus"},
		{"Rasalhague", 17.5822, 12.56, "Ophiuchus"},
		{"Alpheratz", 0.1398, 29.0904, "Andromeda"},
		{"Sirius", 6.7525, -16.716, "Canis Major"},
		{"Polaris", 2.5303, 89.264, "Ursa Minor"},
		{"Acrux", 12.4433, -63.099, "Crux"},
		// Off the ecliptic north of longitude 90°: the zodiac band says
		// Gemini, the boundaries say Orion.
		{"Orion club", 6.03, 19.9, "Orion"},
		{"Sextans on the ecliptic", 10.2, -2.0, "Sextans"},
	}

	for _, tt := range tests {
		t.Run(tt.star, func(t *testing.T) {
			got := table.Lookup(tt.raHours*15, tt.decDeg)
			if got != tt.want {
				t.Errorf("Lookup(%s) = %q, want %q", tt.star, got, tt.want)
			}
		})
	}
}

func TestConstellationTable_CoversSky(t *testing.T) {
	table, err := DefaultConstellationTable()
	if err != nil {
		t.Fatalf("DefaultConstellationTable() error = %v", err)
	}
	for ra := 0.0; ra < 360; ra += 7.5 {
		for dec := -89.0; dec <= 89; dec += 4.5 {
			if got := table.LookupAbbrev(ra, dec); got == "" {
				t.Errorf("no constellation at RA %v°, Dec %v°", ra, dec)
			}
		}
	}
}

func TestParseConstellationTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"not yaml", "bounds: [[["},
		{"empty", "bounds: []"},
		{"short row", "bounds:\n  - [0.0, 24.0, -90.0]"},
		{"non-numeric", "bounds:\n  - [zero, 24.0, -90.0, OCT]"},
		{"no abbreviation", "bounds:\n  - [0.0, 24.0, -90.0, 5]"},
		{"empty RA range", "bounds:\n  - [24.0, 0.0, -90.0, OCT]"},
		{"unknown abbreviation", "names:\n  OCT: Octans\nbounds:\n  - [0.0, 24.0, -90.0, XXX]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConstellationTable([]byte(tt.data)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestParseConstellationTable_DefaultsEpoch(t *testing.T) {
	table, err := ParseConstellationTable([]byte("names:\n  OCT: Octans\nbounds:\n  - [0, 24, -90, OCT]"))
	if err != nil {
		t.Fatalf("ParseConstellationTable() error = %v", err)
	}
	if got := table.Lookup(0, 0); got != "Octans" {
		t.Errorf("Lookup = %q, want Octans", got)
	}
}

func TestTransform_ConstellationUsesLatitude(t *testing.T) {
	_, _, transform := testOracles(t)
	table, err := DefaultConstellationTable()
	if err != nil {
		t.Fatalf("DefaultConstellationTable() error = %v", err)
	}

	for _, body := range []BodyID{BodyMoon, BodyMars} {
		for day := 0; day < 30; day++ {
			at := testInstant.Add(time.Duration(day) * 24 * time.Hour)
			s, err := transform.Lookup(body, at, nil)
			if err != nil {
				t.Fatalf("Lookup(%v, %v) error = %v", body, at, err)
			}
			ra, dec := astro.EclipticToEquatorialDeg(s.J2000LonDeg, s.J2000LatDeg, astro.ObliquityJ2000)
			if want := table.Lookup(ra, dec); s.Constellation != want || want == "" {
				t.Errorf("%v at %v: Constellation = %q, want %q", body, at, s.Constellation, want)
			}
		}
	}
}

func TestTransform_NoTableNoConstellation(t *testing.T) {
	series, err := DefaultLunarSeries()
	if err != nil {
		t.Fatalf("DefaultLunarSeries() error = %v", err)
	}
	s, err := NewTransform(series, nil).Lookup(BodyMoon, testInstant, nil)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if s.Constellation != "" {
		t.Errorf("Constellation = %q, want empty", s.Constellation)
	}
}
