package ephem

import (
	_ "embed"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-celestial/internal/astro"
)

//go:embed data/constellation_bounds.yaml
var embeddedConstellationBounds []byte

type constellationFile struct {
	EpochJD float64           `yaml:"epoch_jd"`
	Names   map[string]string `yaml:"names"`
	Bounds  [][]any           `yaml:"bounds"`
}

// ParseConstellationTable decodes an IAU boundary table in YAML form.
func ParseConstellationTable(data []byte) (*astro.ConstellationTable, error) {
	var f constellationFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode constellation bounds: %w", err)
	}
	if len(f.Bounds) == 0 {
		return nil, fmt.Errorf("constellation bounds: empty table")
	}
	if f.EpochJD == 0 {
		f.EpochJD = astro.JDB1875
	}

	bounds := make([]astro.ConstellationBound, 0, len(f.Bounds))
	for i, row := range f.Bounds {
		if len(row) != 4 {
			return nil, fmt.Errorf("constellation bounds: row %d has %d columns, want 4", i, len(row))
		}
		var nums [3]float64
		for j := range nums {
			v, ok := toFloat(row[j])
			if !ok {
				return nil, fmt.Errorf("constellation bounds: row %d column %d is not a number", i, j)
			}
			nums[j] = v
		}
		abbrev, ok := row[3].(string)
		if !ok || abbrev == "" {
			return nil, fmt.Errorf("constellation bounds: row %d has no abbreviation", i)
		}
		if _, named := f.Names[abbrev]; len(f.Names) > 0 && !named {
			return nil, fmt.Errorf("constellation bounds: row %d: unknown abbreviation %q", i, abbrev)
		}
		if nums[0] >= nums[1] {
			return nil, fmt.Errorf("constellation bounds: row %d: empty RA range", i)
		}
		bounds = append(bounds, astro.ConstellationBound{
			RALowHours:  nums[0],
			RAHighHours: nums[1],
			DecLowDeg:   nums[2],
			Abbrev:      abbrev,
		})
	}
	return astro.NewConstellationTable(bounds, f.Names, f.EpochJD), nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	}
	return 0, false
}

var (
	defaultBoundsOnce sync.Once
	defaultBounds     *astro.ConstellationTable
	defaultBoundsErr  error
)

// DefaultConstellationTable returns the boundary table compiled into the
// binary.
func DefaultConstellationTable() (*astro.ConstellationTable, error) {
	defaultBoundsOnce.Do(func() {
		defaultBounds, defaultBoundsErr = ParseConstellationTable(embeddedConstellationBounds)
	})
	return defaultBounds, defaultBoundsErr
}
