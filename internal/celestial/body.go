package celestial

import (
	"github.com/litescript/ls-celestial/internal/apperrors"
	"github.com/litescript/ls-celestial/internal/ephem"
)

// BodyKind is the closed set of bodies the service reports on.
type BodyKind int

const (
	Moon BodyKind = iota + 1
	Mars
)

// Kinds lists every supported body in display order.
var Kinds = []BodyKind{Moon, Mars}

// ParseBodyKind maps a URL segment such as "moon" to a BodyKind. Bodies the
// oracles know but the service does not report on, such as the Sun, are
// unsupported.
func ParseBodyKind(s string) (BodyKind, error) {
	if info, ok := ephem.LookupBody(s); ok {
		for _, k := range Kinds {
			if k.BodyID() == info.ID {
				return k, nil
			}
		}
	}
	return 0, apperrors.Wrap(apperrors.CodeUnsupportedBody, "unsupported body: "+s, nil)
}

// String returns the lowercase slug used in URLs and records.
func (k BodyKind) String() string {
	switch k {
	case Moon:
		return "moon"
	case Mars:
		return "mars"
	default:
		return "unknown"
	}
}

// DisplayName returns the capitalised name, e.g. "Moon".
func (k BodyKind) DisplayName() string {
	switch k {
	case Moon:
		return "Moon"
	case Mars:
		return "Mars"
	default:
		return "Unknown"
	}
}

// BodyID returns the ephemeris identifier.
func (k BodyKind) BodyID() ephem.BodyID {
	switch k {
	case Moon:
		return ephem.BodyMoon
	case Mars:
		return ephem.BodyMars
	default:
		return 0
	}
}

// RiseSetKey is the record key holding rise, set and transit,
// e.g. "moonrise_and_set".
func (k BodyKind) RiseSetKey() string {
	return k.String() + "rise_and_set"
}

func (k BodyKind) riseField() string { return "next_" + k.String() + "rise" }
func (k BodyKind) setField() string  { return "next_" + k.String() + "set" }
