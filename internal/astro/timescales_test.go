package astro

import (
	"math"
	"testing"
	"time"
)

func TestTAIMinusUTC(t *testing.T) {
	tests := []struct {
		name string
		time time.Time
		want float64
	}{
		{"before the table", time.Date(1965, 1, 1, 0, 0, 0, 0, time.UTC), 10},
		{"first entry", time.Date(1972, 3, 1, 0, 0, 0, 0, time.UTC), 10},
		{"mid 1972", time.Date(1972, 7, 1, 0, 0, 0, 0, time.UTC), 11},
		{"last second before 2017", time.Date(2016, 12, 31, 23, 59, 59, 0, time.UTC), 36},
		{"2017 onward", time.Date(2017, 1, 1, 0, 0, 0, 0, time.UTC), 37},
		{"present day", time.Date(2025, 3, 12, 0, 0, 0, 0, time.UTC), 37},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TAIMinusUTC(tt.time); got != tt.want {
				t.Errorf("TAIMinusUTC() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConvertTimeScales(t *testing.T) {
	utc := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	ts := ConvertTimeScales(utc)

	if got := ts.TT.Sub(ts.UTC).Seconds(); math.Abs(got-69.184) > 1e-6 {
		t.Errorf("TT-UTC = %v s, want 69.184", got)
	}
	if got := ts.TDB.Sub(ts.TT).Seconds(); math.Abs(got) > 0.002 {
		t.Errorf("|TDB-TT| = %v s, want < 2 ms", got)
	}
	if got := (ts.JDTT - ts.JDUTC) * 86400; math.Abs(got-69.184) > 1e-3 {
		t.Errorf("JD offset = %v s, want 69.184", got)
	}
	if math.Abs(ts.JDUTC-2460310.5) > 1e-9 {
		t.Errorf("JDUTC = %v, want 2460310.5", ts.JDUTC)
	}
}

func TestConvertTimeScales_NormalisesZone(t *testing.T) {
	local := time.Date(2024, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600))
	ts := ConvertTimeScales(local)
	if ts.UTC.Location() != time.UTC {
		t.Errorf("UTC location = %v", ts.UTC.Location())
	}
	if !ts.UTC.Equal(local) {
		t.Errorf("UTC instant changed: %v vs %v", ts.UTC, local)
	}
}

func TestTDBMinusTT_Bounded(t *testing.T) {
	for jd := J2000; jd < J2000+800; jd += 7 {
		if d := TDBMinusTT(jd); math.Abs(d) > 0.00168 {
			t.Fatalf("TDB-TT at %v = %v", jd, d)
		}
	}
}
