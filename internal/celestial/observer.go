package celestial

import (
	"math"
	"time"

	"github.com/litescript/ls-celestial/internal/apperrors"
	"github.com/litescript/ls-celestial/internal/astro"
)

// Location is a geodetic position in degrees, east and north positive.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// ObserverContext is the immutable input of one computation: an instant and
// an optional location.
type ObserverContext struct {
	Timestamp time.Time
	Location  *Location
}

// referencePoint stands in for a missing location so that horizontal
// fields remain structurally valid.
var referencePoint = astro.Observer{LatDeg: 0, LonDeg: 0, Name: "reference"}

// NewObserverContext validates loc and normalises t to UTC. A nil loc is
// valid and means "no observer".
func NewObserverContext(t time.Time, loc *Location) (ObserverContext, error) {
	oc := ObserverContext{Timestamp: t.UTC()}
	if loc == nil {
		return oc, nil
	}
	if err := ValidateLocation(loc.Latitude, loc.Longitude); err != nil {
		return ObserverContext{}, err
	}
	l := *loc
	oc.Location = &l
	return oc, nil
}

// ValidateLocation checks coordinate ranges; both bounds are inclusive.
func ValidateLocation(lat, lon float64) error {
	if math.IsNaN(lat) || lat < -90 || lat > 90 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "latitude must be between -90 and 90 degrees", nil)
	}
	if math.IsNaN(lon) || lon < -180 || lon > 180 {
		return apperrors.Wrap(apperrors.CodeInvalidInput, "longitude must be between -180 and 180 degrees", nil)
	}
	return nil
}

// HasLocation reports whether an observer location was supplied.
func (oc ObserverContext) HasLocation() bool {
	return oc.Location != nil
}

// observer returns the astro observer, or nil without a location.
func (oc ObserverContext) observer() *astro.Observer {
	if oc.Location == nil {
		return nil
	}
	return &astro.Observer{LatDeg: oc.Location.Latitude, LonDeg: oc.Location.Longitude}
}

// siteOrReference returns the observer, falling back to the reference point.
func (oc ObserverContext) siteOrReference() astro.Observer {
	if obs := oc.observer(); obs != nil {
		return *obs
	}
	return referencePoint
}
