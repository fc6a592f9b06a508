package astro

import "sort"

// zodiacBoundary marks where a constellation begins along the J2000 ecliptic.
type zodiacBoundary struct {
	startLonDeg float64
	name        string
}

// Ecliptic longitudes (J2000) at which the ecliptic crosses IAU constellation
// boundaries, in ascending order.
var zodiac = []zodiacBoundary{
	{28.69, "Aries"},
	{53.42, "Taurus"},
	{90.14, "Gemini"},
	{117.99, "Cancer"},
	{138.05, "Leo"},
	{173.85, "Virgo"},
	{217.81, "Libra"},
	{241.09, "Scorpius"},
	{247.73, "Ophiuchus"},
	{266.24, "Sagittarius"},
	{299.71, "Capricornus"},
	{327.92, "Aquarius"},
	{351.56, "Pisces"},
}

// ZodiacConstellation returns the constellation crossed by the ecliptic at
// the given J2000 ecliptic longitude. It ignores latitude, so a body well off
// the ecliptic may be reported in a neighbouring constellation; use
// ConstellationTable.Lookup when the exact boundary matters.
func ZodiacConstellation(lonDeg float64) string {
	lon := normalizeAngle360(lonDeg)
	name := "Pisces" // wraps through 0°
	for _, b := range zodiac {
		if lon < b.startLonDeg {
			break
		}
		name = b.name
	}
	return name
}

// JDB1875 is the Julian date of the B1875.0 equinox the IAU boundaries are
// drawn in.
const JDB1875 = 2405889.258550475

// ConstellationBound is one row of the IAU boundary table: the part of the
// sky from DecLowDeg northward to the next boundary, between two hour
// circles, in B1875.0 coordinates.
type ConstellationBound struct {
	RALowHours  float64
	RAHighHours float64
	DecLowDeg   float64
	Abbrev      string
}

// ConstellationTable answers which IAU constellation contains a position.
type ConstellationTable struct {
	bounds []ConstellationBound
	names  map[string]string
	epochT float64
}

// NewConstellationTable builds a table from boundary rows and a map of
// abbreviations to full names. epochJD is the equinox of the rows.
func NewConstellationTable(bounds []ConstellationBound, names map[string]string, epochJD float64) *ConstellationTable {
	rows := make([]ConstellationBound, len(bounds))
	copy(rows, bounds)
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].DecLowDeg > rows[j].DecLowDeg })

	return &ConstellationTable{
		bounds: rows,
		names:  names,
		epochT: (epochJD - J2000) / 36525,
	}
}

// Len returns the number of boundary rows.
func (c *ConstellationTable) Len() int {
	return len(c.bounds)
}

// Lookup returns the full name of the constellation containing the mean
// J2000 position (raDeg, decDeg), or "" when no row matches.
func (c *ConstellationTable) Lookup(raDeg, decDeg float64) string {
	abbrev := c.LookupAbbrev(raDeg, decDeg)
	if name, ok := c.names[abbrev]; ok {
		return name
	}
	return abbrev
}

// LookupAbbrev is Lookup returning the three-letter IAU abbreviation.
func (c *ConstellationTable) LookupAbbrev(raDeg, decDeg float64) string {
	ra, dec := PrecessFromJ2000(raDeg, decDeg, c.epochT)
	hours := normalizeAngle360(ra) / 15

	for _, b := range c.bounds {
		if dec >= b.DecLowDeg && hours >= b.RALowHours && hours < b.RAHighHours {
			return b.Abbrev
		}
	}
	return ""
}
