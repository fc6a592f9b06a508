package astro

import (
	"math"
	"time"
)

// TTMinusTAI is the fixed offset between Terrestrial Time and TAI, in seconds.
const TTMinusTAI = 32.184

type leapEntry struct {
	from        time.Time
	taiMinusUTC float64
}

func utcDate(y int, m time.Month) time.Time {
	return time.Date(y, m, 1, 0, 0, 0, 0, time.UTC)
}

// leapSeconds lists TAI-UTC from each effective date. Update when the IERS
// announces a new leap second.
var leapSeconds = []leapEntry{
	{utcDate(1972, time.January), 10},
	{utcDate(1972, time.July), 11},
	{utcDate(1973, time.January), 12},
	{utcDate(1974, time.January), 13},
	{utcDate(1975, time.January), 14},
	{utcDate(1976, time.January), 15},
	{utcDate(1977, time.January), 16},
	{utcDate(1978, time.January), 17},
	{utcDate(1979, time.January), 18},
	{utcDate(1980, time.January), 19},
	{utcDate(1981, time.July), 20},
	{utcDate(1982, time.July), 21},
	{utcDate(1983, time.July), 22},
	{utcDate(1985, time.July), 23},
	{utcDate(1988, time.January), 24},
	{utcDate(1990, time.January), 25},
	{utcDate(1991, time.January), 26},
	{utcDate(1992, time.July), 27},
	{utcDate(1993, time.July), 28},
	{utcDate(1994, time.July), 29},
	{utcDate(1996, time.January), 30},
	{utcDate(1997, time.July), 31},
	{utcDate(1999, time.January), 32},
	{utcDate(2006, time.January), 33},
	{utcDate(2009, time.January), 34},
	{utcDate(2012, time.July), 35},
	{utcDate(2015, time.July), 36},
	{utcDate(2017, time.January), 37},
}

// TAIMinusUTC returns the accumulated leap seconds at t. Instants before 1972
// are clamped to the first table entry.
func TAIMinusUTC(t time.Time) float64 {
	t = t.UTC()
	offset := leapSeconds[0].taiMinusUTC
	for _, e := range leapSeconds {
		if t.Before(e.from) {
			break
		}
		offset = e.taiMinusUTC
	}
	return offset
}

// TimeScales expresses a single instant on the UTC, TT and TDB scales.
// TT and TDB are carried as time.Time values whose wall clock reads the
// respective scale.
type TimeScales struct {
	UTC time.Time
	TT  time.Time
	TDB time.Time

	JDUTC float64
	JDTT  float64
	JDTDB float64
}

// ConvertTimeScales converts a UTC instant to TT and TDB.
func ConvertTimeScales(t time.Time) TimeScales {
	utc := t.UTC()
	ttOffset := TAIMinusUTC(utc) + TTMinusTAI
	tt := utc.Add(secondsToDuration(ttOffset))

	jdUTC := julianDate(utc)
	jdTT := jdUTC + ttOffset/86400

	tdbOffset := TDBMinusTT(jdTT)
	tdb := tt.Add(secondsToDuration(tdbOffset))

	return TimeScales{
		UTC:   utc,
		TT:    tt,
		TDB:   tdb,
		JDUTC: jdUTC,
		JDTT:  jdTT,
		JDTDB: jdTT + tdbOffset/86400,
	}
}

// TDBMinusTT returns TDB-TT in seconds for a TT Julian Date, using the two
// dominant periodic terms of the Earth's orbital eccentricity.
func TDBMinusTT(jdTT float64) float64 {
	g := degToRad(357.53 + 0.98560028*(jdTT-J2000))
	return 0.001657*math.Sin(g) + 0.000014*math.Sin(2*g)
}

// CenturiesTT returns Julian centuries of TT since J2000.0.
func (ts TimeScales) CenturiesTT() float64 {
	return JulianCenturies(ts.JDTT)
}

func secondsToDuration(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}
