package celestial

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/litescript/ls-celestial/internal/apperrors"
)

func TestNewObserverContext_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		loc     *Location
		wantErr bool
	}{
		{"no location", nil, false},
		{"north pole", &Location{Latitude: 90, Longitude: 0}, false},
		{"south pole", &Location{Latitude: -90, Longitude: 180}, false},
		{"antimeridian west", &Location{Latitude: 0, Longitude: -180}, false},
		{"latitude just above", &Location{Latitude: 90.0001, Longitude: 0}, true},
		{"latitude just below", &Location{Latitude: -90.0001, Longitude: 0}, true},
		{"longitude out of range", &Location{Latitude: 10, Longitude: 180.5}, true},
		{"latitude NaN", &Location{Latitude: math.NaN(), Longitude: 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oc, err := NewObserverContext(frozenInstant, tt.loc)
			if tt.wantErr {
				require.Error(t, err)
				require.True(t, apperrors.IsCode(err, apperrors.CodeInvalidInput))
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.loc != nil, oc.HasLocation())
		})
	}
}

func TestNewObserverContext_CopiesAndNormalises(t *testing.T) {
	loc := &Location{Latitude: 10, Longitude: 20}
	local := time.Date(2025, 3, 12, 2, 0, 0, 0, time.FixedZone("EET", 2*3600))

	oc, err := NewObserverContext(local, loc)
	require.NoError(t, err)
	loc.Latitude = 50

	require.Equal(t, 10.0, oc.Location.Latitude)
	require.Equal(t, time.UTC, oc.Timestamp.Location())
	require.True(t, oc.Timestamp.Equal(local))
}

func TestParseBodyKind(t *testing.T) {
	k, err := ParseBodyKind("Moon")
	require.NoError(t, err)
	require.Equal(t, Moon, k)

	k, err = ParseBodyKind("mars")
	require.NoError(t, err)
	require.Equal(t, Mars, k)
	require.Equal(t, "marsrise_and_set", k.RiseSetKey())

	for _, name := range []string{"venus", "sun", ""} {
		_, err = ParseBodyKind(name)
		require.True(t, apperrors.IsCode(err, apperrors.CodeUnsupportedBody), name)
	}
}

func TestBasicInfo_ReferencePointWithoutLocation(t *testing.T) {
	engine := newTestEngine(t)

	without, err := engine.BasicInfo(Mars, mustContext(t, frozenInstant, nil))
	require.NoError(t, err)
	atOrigin, err := engine.BasicInfo(Mars, mustContext(t, frozenInstant, &Location{}))
	require.NoError(t, err)

	require.Equal(t, atOrigin.Map(), without.Map())
}

func TestBasicInfo_UnsupportedKind(t *testing.T) {
	_, err := newTestEngine(t).BasicInfo(BodyKind(9), mustContext(t, frozenInstant, nil))
	require.True(t, apperrors.IsCode(err, apperrors.CodeUnsupportedBody))
}

func TestMarsSeason(t *testing.T) {
	tests := []struct {
		at     time.Time
		year   int
		ls     float64
		season string
	}{
		{time.Date(1955, 4, 11, 12, 0, 0, 0, time.UTC), 1, 0, "Northern Spring / Southern Autumn"},
		{time.Date(1955, 4, 11, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 687), 2, 0, "Northern Spring / Southern Autumn"},
		{time.Date(1955, 4, 11, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 344), 1, 180.262, "Northern Autumn / Southern Spring"},
		{time.Date(1955, 4, 11, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 200), 1, 104.803, "Northern Summer / Southern Winter"},
		{time.Date(1955, 4, 11, 0, 0, 0, 0, time.UTC).AddDate(0, 0, 600), 1, 314.410, "Northern Winter / Southern Summer"},
	}

	for _, tt := range tests {
		year, ls, season := MarsSeason(tt.at)
		require.Equal(t, tt.year, year, tt.at)
		require.InDelta(t, tt.ls, ls, 0.01, tt.at)
		require.Equal(t, tt.season, season, tt.at)
	}
}

func TestSpecialPosition(t *testing.T) {
	tests := []struct {
		sep  float64
		want string
	}{
		{180, nearOpposition},
		{166, nearOpposition},
		{195.5, ""},
		{5, nearConjunction},
		{350, nearConjunction},
		{90, ""},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, specialPosition(tt.sep), "sep %v", tt.sep)
	}
	require.InDelta(t, 350, SunSeparation(10, 20), 1e-9)
}

func TestSunSeparation_GeocentricElongation(t *testing.T) {
	require.InDelta(t, 180, SunSeparation(270, 90), 1e-9)
	require.InDelta(t, 10, SunSeparation(5, 355), 1e-9)
	require.InDelta(t, 355, SunSeparation(355, 0), 1e-9)
	// Both sides of the Sun count as a conjunction.
	require.Equal(t, nearConjunction, specialPosition(SunSeparation(5, 355)))
	require.Equal(t, nearConjunction, specialPosition(SunSeparation(355, 5)))
}

func TestFormatSexagesimal(t *testing.T) {
	require.Equal(t, "05h 30m 00.00s", formatHMS(5.5))
	require.Equal(t, "23h 59m 59.99s", formatHMS(23.999997))
	require.Equal(t, "-22deg 30' 00.0\"", formatDMS(-22.5))
	require.Equal(t, "+00deg 00' 36.0\"", formatDMS(0.01))
}

func TestRound(t *testing.T) {
	require.Equal(t, 1.23, round(1.2345, 2))
	require.Equal(t, -0.5, round(-0.4999, 2))
	require.Equal(t, 384400.0, round(384400.4, 0))
}
