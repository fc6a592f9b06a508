package celestial

import (
	"errors"
	"fmt"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
	"github.com/litescript/ls-celestial/internal/ephem"
)

// EventKind identifies a horizon or meridian event.
type EventKind int

const (
	EventRise EventKind = iota
	EventSet
	EventTransit
)

func (k EventKind) String() string {
	switch k {
	case EventRise:
		return "rise"
	case EventSet:
		return "set"
	case EventTransit:
		return "transit"
	default:
		return "unknown"
	}
}

// TransitErrorText replaces a transit that could not be computed.
const TransitErrorText = "Error calculating transit time"

// RiseSetEvent is one computed event. Time is nil when the event does not
// happen (circumpolar body) or could not be computed; Err says which.
type RiseSetEvent struct {
	Kind        EventKind
	Time        *time.Time
	AzimuthDeg  *float64
	AltitudeDeg *float64 // transit only
	Attribute   *float64 // Moon illumination percent or Mars magnitude
	Err         error
}

// Circumpolar reports whether the event is missing because the body stays
// on one side of the horizon.
func (ev RiseSetEvent) Circumpolar() bool {
	return ev.Time == nil && errors.Is(ev.Err, ephem.ErrCircumpolar)
}

// RiseSet holds the next rise, set and transit of a body.
type RiseSet struct {
	Body    BodyKind
	Rise    RiseSetEvent
	Set     RiseSetEvent
	Transit RiseSetEvent
}

// RiseSetCalculator finds horizon and meridian events with the fast oracle.
type RiseSetCalculator struct {
	finder  ephem.EventFinder
	oracle  ephem.Oracle
	horizon float64
}

// NewRiseSetCalculator uses the standard -0°34' horizon.
func NewRiseSetCalculator(finder ephem.EventFinder, oracle ephem.Oracle) *RiseSetCalculator {
	return &RiseSetCalculator{finder: finder, oracle: oracle, horizon: astro.StandardHorizon}
}

// Compute finds the next rise, set and transit after the context instant.
// A circumpolar body yields events with a nil Time rather than an error; any
// other rise or set failure fails the whole computation. A failed transit
// is reported on the event only.
func (c *RiseSetCalculator) Compute(kind BodyKind, oc ObserverContext) (RiseSet, error) {
	obs := oc.observer()
	if obs == nil {
		return RiseSet{}, errors.New("rise and set need an observer location")
	}
	id := kind.BodyID()
	rs := RiseSet{Body: kind}

	var err error
	rs.Rise, err = c.horizonEvent(EventRise, kind, oc.Timestamp, *obs, c.finder.NextRise)
	if err != nil {
		return RiseSet{}, err
	}
	rs.Set, err = c.horizonEvent(EventSet, kind, oc.Timestamp, *obs, c.finder.NextSet)
	if err != nil {
		return RiseSet{}, err
	}

	rs.Transit = RiseSetEvent{Kind: EventTransit}
	at, err := c.finder.NextTransit(id, oc.Timestamp, *obs)
	if err == nil {
		err = c.describe(&rs.Transit, kind, at, *obs)
	}
	if err != nil {
		rs.Transit = RiseSetEvent{Kind: EventTransit, Err: err}
	}
	return rs, nil
}

type searchFunc func(ephem.BodyID, time.Time, astro.Observer, float64) (time.Time, error)

func (c *RiseSetCalculator) horizonEvent(ek EventKind, kind BodyKind, t time.Time, obs astro.Observer, search searchFunc) (RiseSetEvent, error) {
	ev := RiseSetEvent{Kind: ek}
	at, err := search(kind.BodyID(), t, obs, c.horizon)
	if errors.Is(err, ephem.ErrCircumpolar) {
		ev.Err = err
		return ev, nil
	}
	if err != nil {
		return ev, fmt.Errorf("next %s: %w", ek, err)
	}
	if err := c.describe(&ev, kind, at, obs); err != nil {
		return ev, fmt.Errorf("next %s: %w", ek, err)
	}
	return ev, nil
}

// describe fills an event from a second lookup at the event instant.
func (c *RiseSetCalculator) describe(ev *RiseSetEvent, kind BodyKind, at time.Time, obs astro.Observer) error {
	s, err := c.oracle.Lookup(kind.BodyID(), at, &obs)
	if err != nil {
		return err
	}
	at = at.UTC()
	az := round(s.Horizontal.AzDeg, 2)
	attr := eventAttribute(kind, s)

	ev.Time = &at
	ev.AzimuthDeg = &az
	ev.Attribute = &attr
	if ev.Kind == EventTransit {
		alt := round(s.Horizontal.AltDeg, 2)
		ev.AltitudeDeg = &alt
	}
	return nil
}

func eventAttribute(kind BodyKind, s ephem.Sample) float64 {
	if kind == Moon {
		return round(s.IlluminatedFraction*100, 2)
	}
	return round(s.Magnitude, 2)
}

func attributeField(kind BodyKind) string {
	if kind == Moon {
		return "illumination_percent"
	}
	return "magnitude"
}

// circumpolarText is the sentinel written in place of a missing event.
func circumpolarText(kind BodyKind, ek EventKind) string {
	return fmt.Sprintf("%s is circumpolar - never %ss", kind.DisplayName(), ek)
}

// write stores the events under the body's rise/set key.
func (rs RiseSet) write(rec *Record) error {
	w := &fieldWriter{rec: rec}
	base := rs.Body.RiseSetKey() + "."

	for _, item := range []struct {
		field string
		ev    RiseSetEvent
	}{
		{rs.Body.riseField(), rs.Rise},
		{rs.Body.setField(), rs.Set},
		{"next_transit", rs.Transit},
	} {
		path := base + item.field
		switch {
		case item.ev.Time != nil:
			w.add(path+".time", item.ev.Time.Format(EventTimeLayout))
			w.add(path+".azimuth_degrees", *item.ev.AzimuthDeg)
			if item.ev.AltitudeDeg != nil {
				w.add(path+".altitude_degrees", *item.ev.AltitudeDeg)
			}
			w.add(path+"."+attributeField(rs.Body), *item.ev.Attribute)
		case item.ev.Kind == EventTransit:
			w.add(path, TransitErrorText)
		default:
			w.add(path, circumpolarText(rs.Body, item.ev.Kind))
		}
	}
	return w.err
}
