// Package state provides thread-safe state management for the terminal client.
package state

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/litescript/ls-celestial/internal/astro"
	"github.com/litescript/ls-celestial/internal/client"
)

// EventType represents the type of state change event.
type EventType string

const (
	EventMoonrise EventType = "MOONRISE"
	EventMoonset  EventType = "MOONSET"
	EventMarsrise EventType = "MARSRISE"
	EventMarsset  EventType = "MARSSET"
	EventDegraded EventType = "DEGRADED"
)

// horizonEvent names the crossing for a body, e.g. MOONRISE.
func horizonEvent(body string, rising bool) EventType {
	suffix := "SET"
	if rising {
		suffix = "RISE"
	}
	return EventType(strings.ToUpper(body) + suffix)
}

// Event is a change noticed between two observations of a body.
type Event struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	Body        string    `json:"body"`
	AltitudeDeg float64   `json:"altitude_deg"`
	Detail      string    `json:"detail,omitempty"`
}

// TimeSeries is a single data point with timestamp.
type TimeSeries struct {
	Timestamp time.Time
	Value     float64
}

// Manager handles all shared application state with thread-safe access.
type Manager struct {
	mu sync.RWMutex

	current       map[string]*client.Observation
	lastFetch     time.Time
	lastError     error
	fetchDuration time.Duration

	// Altitude history per body
	altitudes     map[string][]TimeSeries
	maxHistoryLen int

	// Event log (ring buffer)
	events       []Event
	maxEvents    int
	eventWriteAt int

	refreshInterval time.Duration
	now             func() time.Time
}

// Config holds configuration for the state manager.
type Config struct {
	MaxHistoryLen   int
	MaxEvents       int
	RefreshInterval time.Duration
}

// DefaultConfig returns sensible default configuration.
func DefaultConfig() Config {
	return Config{
		MaxHistoryLen:   240, // 4 hours at 1 sample/min
		MaxEvents:       50,
		RefreshInterval: time.Minute,
	}
}

// NewManager creates a new state manager.
func NewManager(cfg Config) *Manager {
	maxEvents := cfg.MaxEvents
	if maxEvents <= 0 {
		maxEvents = 50
	}
	maxHistory := cfg.MaxHistoryLen
	if maxHistory <= 0 {
		maxHistory = 240
	}
	return &Manager{
		current:         make(map[string]*client.Observation),
		altitudes:       make(map[string][]TimeSeries),
		maxHistoryLen:   maxHistory,
		maxEvents:       maxEvents,
		events:          make([]Event, 0, maxEvents),
		refreshInterval: cfg.RefreshInterval,
		now:             time.Now,
	}
}

// Update records the outcome of one fetch.
func (m *Manager) Update(res client.FetchResult) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastFetch = m.now()
	m.lastError = res.Error
	m.fetchDuration = res.Duration

	obs := res.Observation
	if res.Error != nil || obs == nil {
		return
	}

	m.detectEvents(obs)
	m.current[obs.Body] = obs

	ts := obs.Timestamp
	if ts.IsZero() {
		ts = res.FetchedAt
	}
	hist := append(m.altitudes[obs.Body], TimeSeries{Timestamp: ts, Value: obs.AltitudeDeg})
	if len(hist) > m.maxHistoryLen {
		hist = hist[len(hist)-m.maxHistoryLen:]
	}
	m.altitudes[obs.Body] = hist
}

// detectEvents compares a new observation with the previous one for the
// same body.
func (m *Manager) detectEvents(obs *client.Observation) {
	at := obs.Timestamp
	if at.IsZero() {
		at = m.now()
	}

	prev, ok := m.current[obs.Body]
	if ok {
		wasUp := prev.AltitudeDeg >= astro.StandardHorizon
		isUp := obs.AltitudeDeg >= astro.StandardHorizon
		if wasUp != isUp {
			m.addEvent(Event{
				Type:        horizonEvent(obs.Body, isUp),
				Timestamp:   at,
				Body:        obs.Body,
				AltitudeDeg: obs.AltitudeDeg,
			})
		}
	}

	for _, tier := range obs.FailedTiers() {
		if ok {
			if _, already := prev.TierErrors[tier]; already {
				continue
			}
		}
		m.addEvent(Event{
			Type:        EventDegraded,
			Timestamp:   at,
			Body:        obs.Body,
			AltitudeDeg: obs.AltitudeDeg,
			Detail:      tier + ": " + obs.TierErrors[tier],
		})
	}
}

// addEvent adds an event to the ring buffer.
func (m *Manager) addEvent(e Event) {
	if len(m.events) < m.maxEvents {
		m.events = append(m.events, e)
	} else {
		m.events[m.eventWriteAt] = e
		m.eventWriteAt = (m.eventWriteAt + 1) % m.maxEvents
	}
}

// Snapshot represents an immutable snapshot of current state.
type Snapshot struct {
	Bodies        map[string]*client.Observation
	Altitudes     map[string][]TimeSeries
	LastFetch     time.Time
	LastError     error
	FetchDuration time.Duration
	NextRefresh   time.Time
	Events        []Event
}

// Body returns the latest observation of a body, or nil.
func (s Snapshot) Body(name string) *client.Observation {
	return s.Bodies[name]
}

// Names lists the observed bodies, sorted.
func (s Snapshot) Names() []string {
	names := make([]string, 0, len(s.Bodies))
	for name := range s.Bodies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns a consistent snapshot of current state.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	bodies := make(map[string]*client.Observation, len(m.current))
	for k, v := range m.current {
		bodies[k] = v
	}

	alts := make(map[string][]TimeSeries, len(m.altitudes))
	for k, v := range m.altitudes {
		alts[k] = append([]TimeSeries(nil), v...)
	}

	var next time.Time
	if !m.lastFetch.IsZero() {
		next = m.lastFetch.Add(m.refreshInterval)
	}

	return Snapshot{
		Bodies:        bodies,
		Altitudes:     alts,
		LastFetch:     m.lastFetch,
		LastError:     m.lastError,
		FetchDuration: m.fetchDuration,
		NextRefresh:   next,
		Events:        m.getEventsOrdered(),
	}
}

// getEventsOrdered returns events in chronological order.
func (m *Manager) getEventsOrdered() []Event {
	if len(m.events) == 0 {
		return nil
	}

	if len(m.events) < m.maxEvents {
		result := make([]Event, len(m.events))
		copy(result, m.events)
		return result
	}

	// Ring buffer is full, reorder from oldest to newest
	result := make([]Event, m.maxEvents)
	for i := 0; i < m.maxEvents; i++ {
		idx := (m.eventWriteAt + i) % m.maxEvents
		result[i] = m.events[idx]
	}
	return result
}

// RecentEvents returns the last n events.
func (m *Manager) RecentEvents(n int) []Event {
	m.mu.RLock()
	defer m.mu.RUnlock()

	all := m.getEventsOrdered()
	if len(all) <= n {
		return all
	}
	return all[len(all)-n:]
}

// AltitudeHistory returns a copy of a body's altitude samples.
func (m *Manager) AltitudeHistory(body string) []TimeSeries {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]TimeSeries(nil), m.altitudes[body]...)
}

// CurrentTier classifies a body's latest altitude.
func (m *Manager) CurrentTier(body string) (astro.ElevationTier, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obs, ok := m.current[body]
	if !ok {
		return astro.ElevationNone, false
	}
	return astro.GetElevationTier(obs.AltitudeDeg), true
}

// RefreshInterval returns the configured refresh interval.
func (m *Manager) RefreshInterval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.refreshInterval
}

// SetRefreshInterval updates the refresh interval.
func (m *Manager) SetRefreshInterval(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshInterval = d
}

// HasData returns true if we have received at least one successful fetch.
func (m *Manager) HasData() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.current) > 0
}
