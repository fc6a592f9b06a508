package celestial

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"time"

	"github.com/nathan-osman/go-sunrise"

	"github.com/litescript/ls-celestial/internal/apperrors"
	"github.com/litescript/ls-celestial/internal/astro"
	"github.com/litescript/ls-celestial/internal/ephem"
)

// EventTimeLayout formats event and phase instants in records.
const EventTimeLayout = "2006-01-02 15:04:05 UTC"

// LunarCycleDays is the mean synodic month used for the Moon's age.
const LunarCycleDays = 29.53

const (
	nearOpposition  = "Near opposition (good for viewing)"
	nearConjunction = "Near conjunction (difficult to observe)"

	// Altitude of the Sun's upper limb at sunrise and sunset.
	sunriseAltitude = -0.833
)

// Mars calendar: Mars Year 1 began 1955-04-11, one Mars year is 687 days.
var marsYearEpoch = time.Date(1955, 4, 11, 0, 0, 0, 0, time.UTC)

const marsYearDays = 687.0

// Engine computes the three tiers of a record from an oracle set.
type Engine struct {
	oracles *ephem.Set
}

// NewEngine returns an engine reading from oracles.
func NewEngine(oracles *ephem.Set) *Engine {
	return &Engine{oracles: oracles}
}

// Oracles returns the engine's oracle set.
func (e *Engine) Oracles() *ephem.Set {
	return e.oracles
}

// fieldWriter applies writes to a record until the first failure.
type fieldWriter struct {
	rec *Record
	err error
}

func (w *fieldWriter) add(path string, v any) {
	if w.err == nil {
		w.err = w.rec.Add(path, v)
	}
}

func (w *fieldWriter) refine(path string, v float64) {
	if w.err == nil {
		w.err = w.rec.Refine(path, v)
	}
}

// BasicInfo builds the basic-tier record with the fast oracle. Without a
// location the horizontal fields are evaluated for the reference point at
// (0°, 0°).
func (e *Engine) BasicInfo(kind BodyKind, oc ObserverContext) (*Record, error) {
	if kind != Moon && kind != Mars {
		return nil, apperrors.Wrap(apperrors.CodeUnsupportedBody, "unsupported body: "+kind.String(), nil)
	}

	site := oc.siteOrReference()
	s, err := e.oracles.Fast.Lookup(kind.BodyID(), oc.Timestamp, &site)
	if err != nil {
		return nil, fmt.Errorf("%s position: %w", kind, err)
	}

	rec := NewRecord()
	w := &fieldWriter{rec: rec}
	w.add("name", kind.String())
	w.add("position.altitude.degrees", round(s.Horizontal.AltDeg, 2))
	w.add("position.altitude.radians", round(astro.DegToRad(s.Horizontal.AltDeg), 6))
	w.add("position.azimuth.degrees", round(s.Horizontal.AzDeg, 2))
	w.add("position.azimuth.radians", round(astro.DegToRad(s.Horizontal.AzDeg), 6))
	w.add("distance.km", int64(s.DistanceKm))
	w.add("constellation", astro.ZodiacConstellation(s.J2000LonDeg))

	switch kind {
	case Moon:
		e.moonBasic(w, s, oc.Timestamp)
	case Mars:
		marsBasic(w, s)
	}
	if w.err != nil {
		return nil, w.err
	}
	return rec, nil
}

func (e *Engine) moonBasic(w *fieldWriter, s ephem.Sample, t time.Time) {
	var phases ephem.PhaseFinder = e.oracles.Fast

	type found struct {
		phase ephem.LunarPhase
		at    time.Time
	}
	search := func(next bool) []found {
		var out []found
		for _, p := range []ephem.LunarPhase{ephem.NewMoon, ephem.FullMoon} {
			var (
				at  time.Time
				err error
			)
			if next {
				at, err = phases.NextPhase(p, t)
			} else {
				at, err = phases.PreviousPhase(p, t)
			}
			if err != nil {
				if w.err == nil {
					w.err = fmt.Errorf("%s search: %w", p, err)
				}
				return nil
			}
			out = append(out, found{p, at})
		}
		slices.SortFunc(out, func(a, b found) int { return a.at.Compare(b.at) })
		return out
	}
	entries := func(fs []found) []PhaseEntry {
		out := make([]PhaseEntry, 0, len(fs))
		for _, f := range fs {
			out = append(out, PhaseEntry{Phase: f.phase.String(), Date: f.at.UTC().Format(EventTimeLayout)})
		}
		return out
	}

	previous := search(false)
	next := search(true)
	if w.err != nil {
		return
	}

	var lastNew time.Time
	for _, f := range previous {
		if f.phase == ephem.NewMoon {
			lastNew = f.at
		}
	}
	ageDays := t.Sub(lastNew).Hours() / 24

	w.add("current_phase", round(s.IlluminatedFraction*100, 2))
	w.add("moon_age.days", round(ageDays, 2))
	w.add("moon_age.percentage_of_cycle", round(ageDays/LunarCycleDays*100, 2))
	w.add("previous_phases", entries(previous))
	w.add("next_phases", entries(next))
}

func marsBasic(w *fieldWriter, s ephem.Sample) {
	w.add("magnitude", round(s.Magnitude, 2))
	w.add("angular_diameter.arcseconds", round(astro.MarsAngularDiameter(s.DistanceAU()), 2))

	sep := SunSeparation(s.EclLonDeg, s.SunEclLonDeg)
	w.add("sun_separation.degrees", round(sep, 2))
	w.add("sun_separation.opposition_proximity", round(math.Abs(180-sep), 2))
	if pos := specialPosition(sep); pos != "" {
		w.add("special_position", pos)
	}
}

// SunSeparation is the body's geocentric ecliptic longitude minus the Sun's,
// in [0, 360).
func SunSeparation(bodyLonDeg, sunLonDeg float64) float64 {
	return astro.NormalizeAngle360(bodyLonDeg - sunLonDeg)
}

func specialPosition(sepDeg float64) string {
	switch {
	case math.Abs(sepDeg-180) < 15:
		return nearOpposition
	case sepDeg < 15 || sepDeg > 345:
		return nearConjunction
	}
	return ""
}

// RefineSecondary adds equatorial coordinates and distance details from the
// refined oracle, and precise horizontal coordinates when a location is
// known.
func (e *Engine) RefineSecondary(rec *Record, kind BodyKind, oc ObserverContext) error {
	s, err := e.oracles.Refined.Lookup(kind.BodyID(), oc.Timestamp, oc.observer())
	if err != nil {
		return err
	}

	w := &fieldWriter{rec: rec}
	w.add("celestial_coordinates.right_ascension.hours", round(s.RAdeg/15, 4))
	w.add("celestial_coordinates.right_ascension.degrees", round(s.RAdeg, 4))
	w.add("celestial_coordinates.right_ascension.hms", formatHMS(s.RAdeg/15))
	w.add("celestial_coordinates.declination.degrees", round(s.DecDeg, 4))
	w.add("celestial_coordinates.declination.dms", formatDMS(s.DecDeg))
	w.refine("distance.km", s.DistanceKm)
	w.add("distance.au", round(s.DistanceAU(), 6))
	w.add("distance.light_time_seconds", round(s.LightTimeSec, 3))

	if kind == Moon {
		phaseAngle := math.Abs(180 - s.ElongationDeg)
		w.add("phase_precise", round(100*(1-phaseAngle/180), 2))
	}

	if h := s.Horizontal; h != nil {
		w.add("position.precise_altitude", round(h.AltDeg, 4))
		w.add("position.precise_azimuth", round(h.AzDeg, 4))
		w.add("position.topocentric_offset_degrees",
			round(astro.AngularSeparation(s.RAdeg, s.DecDeg, h.TopoRAdeg, h.TopoDecDeg), 4))
	}
	return w.err
}

// RefineTertiary adds the IAU boundary constellation, body-specific physical
// details and, with a location, viewing conditions from the transform
// oracle.
func (e *Engine) RefineTertiary(rec *Record, kind BodyKind, oc ObserverContext) error {
	x, err := e.oracles.Transform.Lookup(kind.BodyID(), oc.Timestamp, oc.observer())
	if err != nil {
		return err
	}

	if x.Constellation == "" {
		return fmt.Errorf("%s: no constellation boundary matched", kind)
	}

	w := &fieldWriter{rec: rec}
	w.add("constellation_precise", x.Constellation)

	switch kind {
	case Moon:
		moonIllumination(w, x)
		moonLibration(w, x)
	case Mars:
		year, ls, season := MarsSeason(oc.Timestamp)
		w.add("mars_seasons.mars_year", int64(year))
		w.add("mars_seasons.solar_longitude_deg", round(ls, 2))
		w.add("mars_seasons.season", season)
	}

	if x.Horizontal != nil {
		viewingConditions(w, rec, kind, x, oc)
	}
	return w.err
}

func moonIllumination(w *fieldWriter, x ephem.Sample) {
	phaseAngle := math.Abs(180 - x.ElongationDeg)
	frac := (1 + math.Cos(astro.DegToRad(phaseAngle))) / 2

	w.add("illumination_details.elongation_degrees", round(x.ElongationDeg, 2))
	w.add("illumination_details.phase_angle_degrees", round(phaseAngle, 2))
	w.add("illumination_details.illuminated_fraction", round(frac, 4))
	w.add("illumination_details.illuminated_percentage", round(frac*100, 2))
}

// moonLibration is a first-order optical libration from the ecliptic
// position only.
func moonLibration(w *fieldWriter, x ephem.Sample) {
	lon := 6.29 * math.Sin(astro.DegToRad(x.EclLonDeg))
	lat := 5.13 * math.Sin(astro.DegToRad(x.EclLatDeg))

	w.add("libration.longitude_degrees", round(lon, 2))
	w.add("libration.latitude_degrees", round(lat, 2))
	w.add("libration.position_angle_degrees", round(astro.RadToDeg(math.Atan2(lat, lon)), 2))
	w.add("libration.note", "Simplified optical libration approximation")
}

// MarsSeason returns the Mars year number, an approximate areocentric solar
// longitude and the season name for the calendar date of t.
func MarsSeason(t time.Time) (year int, lsDeg float64, season string) {
	u := t.UTC()
	day := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	days := math.Round(day.Sub(marsYearEpoch).Hours() / 24)

	years := days / marsYearDays
	year = int(years) + 1
	lsDeg = math.Mod((years-math.Floor(years))*360, 360)

	switch {
	case lsDeg < 90:
		season = "Northern Spring / Southern Autumn"
	case lsDeg < 180:
		season = "Northern Summer / Southern Winter"
	case lsDeg < 270:
		season = "Northern Autumn / Southern Spring"
	default:
		season = "Northern Winter / Southern Summer"
	}
	return year, lsDeg, season
}

func viewingConditions(w *fieldWriter, rec *Record, kind BodyKind, x ephem.Sample, oc ObserverContext) {
	ext := astro.ExtinctionAtAltitude(x.Horizontal.AltDeg)
	w.add("viewing_conditions.atmospheric_extinction", round(ext, 2))
	w.add("viewing_conditions.extinction_effect", strconv.FormatFloat(round(ext*100, 1), 'f', 1, 64)+"% dimming")

	switch kind {
	case Moon:
		w.add("viewing_conditions.best_viewing_time", "Around transit (highest altitude)")
	case Mars:
		best := "During astronomical night when at highest altitude"
		if pos, _ := rec.String("special_position"); pos == nearOpposition {
			best += " (currently near opposition, excellent viewing)"
		}
		w.add("viewing_conditions.best_viewing_time", best)

		mag, ok := rec.Float("magnitude")
		if !ok {
			mag = x.Magnitude
		}
		w.add("viewing_conditions.apparent_magnitude_with_extinction", round(mag+ext, 2))
	}

	obs := oc.siteOrReference()
	t := oc.Timestamp
	rise, set := sunrise.SunriseSunset(obs.LatDeg, obs.LonDeg, t.Year(), t.Month(), t.Day())
	w.add("viewing_conditions.observer_sun.sunrise", formatOptionalTime(rise))
	w.add("viewing_conditions.observer_sun.sunset", formatOptionalTime(set))
	w.add("viewing_conditions.observer_sun.is_daylight", astro.SunAltitude(t, obs) > sunriseAltitude)
}

func formatOptionalTime(t time.Time) string {
	if t.IsZero() {
		return "none"
	}
	return t.UTC().Format(EventTimeLayout)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// formatHMS renders decimal hours as "05h 34m 31.94s".
func formatHMS(hours float64) string {
	totalCenti := math.Round(hours * 3600 * 100)
	h := int(totalCenti / 360000)
	rem := totalCenti - float64(h)*360000
	m := int(rem / 6000)
	sec := (rem - float64(m)*6000) / 100
	return fmt.Sprintf("%02dh %02dm %05.2fs", h%24, m, sec)
}

// formatDMS renders decimal degrees as "+22deg 00' 52.1\"".
func formatDMS(deg float64) string {
	sign := "+"
	if deg < 0 {
		sign = "-"
	}
	totalDeci := math.Round(math.Abs(deg) * 3600 * 10)
	d := int(totalDeci / 36000)
	rem := totalDeci - float64(d)*36000
	m := int(rem / 600)
	sec := (rem - float64(m)*600) / 10
	return fmt.Sprintf("%s%02ddeg %02d' %04.1f\"", sign, d, m, sec)
}
