package ephem

import (
	"strconv"
	"strings"
)

// BodyID is a NAIF SPICE ID for a solar-system body.
// Sourced from https://naif.jpl.nasa.gov/pub/naif/toolkit_docs/C/req/naif_ids.html
type BodyID int

const (
	BodySun  BodyID = 10
	BodyMoon BodyID = 301
	BodyMars BodyID = 499
)

// BodyInfo describes a body the oracles know how to place.
type BodyInfo struct {
	ID      BodyID
	Name    string   // display name, e.g. "Moon"
	Slug string // lowercase key used in URLs and records
}

// Bodies is the canonical list of supported bodies.
var Bodies = []BodyInfo{
	{ID: BodySun, Name: "Sun", Slug: "sun"},
	{ID: BodyMoon, Name: "Moon", Slug: "moon"},
	{ID: BodyMars, Name: "Mars", Slug: "mars"},
}

var bodiesByID = func() map[BodyID]BodyInfo {
	m := make(map[BodyID]BodyInfo, len(Bodies))
	for _, b := range Bodies {
		m[b.ID] = b
	}
	return m
}()

var bodiesByName = func() map[string]BodyInfo {
	m := make(map[string]BodyInfo, len(Bodies))
	for _, b := range Bodies {
		m[b.Slug] = b
	}
	return m
}()

// LookupBody finds a body by slug, case-insensitively.
func LookupBody(name string) (BodyInfo, bool) {
	b, ok := bodiesByName[strings.ToLower(strings.TrimSpace(name))]
	return b, ok
}

// String returns the display name, or "body(<id>)" when unknown.
func (id BodyID) String() string {
	if b, ok := bodiesByID[id]; ok {
		return b.Name
	}
	return "body(" + strconv.Itoa(int(id)) + ")"
}
