package celestial

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRecord_AddAndGet(t *testing.T) {
	rec := NewRecord()
	require.NoError(t, rec.Add("name", "moon"))
	require.NoError(t, rec.Add("position.altitude.degrees", 12.5))
	require.NoError(t, rec.Add("position.azimuth.degrees", 200.0))

	v, ok := rec.Float("position.altitude.degrees")
	require.True(t, ok)
	require.Equal(t, 12.5, v)

	name, ok := rec.String("name")
	require.True(t, ok)
	require.Equal(t, "moon", name)

	require.False(t, rec.Has("position.altitude.radians"))
	require.True(t, rec.Has("position.azimuth"))
}

func TestRecord_AddRejectsOverwrite(t *testing.T) {
	rec := NewRecord()
	require.NoError(t, rec.Add("distance.km", int64(384400)))

	require.ErrorIs(t, rec.Add("distance.km", int64(1)), ErrFieldExists)
	require.ErrorIs(t, rec.Add("distance.km.exact", 1.0), ErrPathConflict)
	require.ErrorIs(t, rec.Add("distance", "far"), ErrPathConflict)
	require.Error(t, rec.Add("bad..path", 1.0))
	require.Error(t, rec.Add("nested", map[string]any{"a": 1}))

	km, _ := rec.Float("distance.km")
	require.Equal(t, 384400.0, km)
}

func TestRecord_Refine(t *testing.T) {
	rec := NewRecord()
	require.NoError(t, rec.Add("distance.km", int64(384400)))
	require.NoError(t, rec.Add("distance.au", 0.00257))
	require.NoError(t, rec.Add("celestial_coordinates.declination.degrees", 10.0))
	require.NoError(t, rec.Add("celestial_coordinates.declination.dms", "+10deg"))
	require.NoError(t, rec.Add("magnitude", -1.2))

	require.NoError(t, rec.Refine("distance.km", 384123.9))
	v, _ := rec.Get("distance.km")
	require.Equal(t, int64(384123), v)

	require.NoError(t, rec.Refine("celestial_coordinates.declination.degrees", 10.5))
	require.ErrorIs(t, rec.Refine("celestial_coordinates.declination.dms", 1), ErrNotRefinable)
	require.ErrorIs(t, rec.Refine("magnitude", -1.5), ErrNotRefinable)
	require.ErrorIs(t, rec.Refine("distance.light_time_seconds", 1.28), ErrFieldMissing)
}

func TestRecord_CloneIsDeep(t *testing.T) {
	rec := NewRecord()
	require.NoError(t, rec.Add("distance.km", int64(1000)))
	require.NoError(t, rec.Add("next_phases", []PhaseEntry{{Phase: "New Moon", Date: "x"}}))

	clone := rec.Clone()
	require.NoError(t, clone.Add("distance.au", 1.0))
	require.NoError(t, clone.Refine("distance.km", 2000))

	require.False(t, rec.Has("distance.au"))
	km, _ := rec.Float("distance.km")
	require.Equal(t, 1000.0, km)

	phases, _ := clone.Get("next_phases")
	phases.([]PhaseEntry)[0].Phase = "changed"
	orig, _ := rec.Get("next_phases")
	require.Equal(t, "New Moon", orig.([]PhaseEntry)[0].Phase)
}

func TestRecord_MarshalJSONKeepsText(t *testing.T) {
	rec := NewRecord()
	require.NoError(t, rec.Add("note", "alt < 5° & falling"))

	b, err := rec.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `{"note":"alt < 5° & falling"}`, string(b))
}

func TestRecord_MarshalJSONIsDeterministic(t *testing.T) {
	build := func(order []string) *Record {
		rec := NewRecord()
		for _, k := range order {
			require.NoError(t, rec.Add(k, 1.0))
		}
		return rec
	}
	a, err := json.Marshal(build([]string{"z.b", "a", "z.a", "m"}))
	require.NoError(t, err)
	b, err := json.Marshal(build([]string{"m", "z.a", "a", "z.b"}))
	require.NoError(t, err)

	require.Equal(t, string(a), string(b))
	require.Equal(t, `{"a":1,"m":1,"z":{"a":1,"b":1}}`, string(a))
}
