package ephem

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/litescript/ls-celestial/internal/astro"
)

//go:embed data/lunar_terms.yaml
var embeddedLunarTerms []byte

// Number of leading terms the fast oracle evaluates.
const (
	fastLonTerms = 6
	fastLatTerms = 4
)

type lunarTermFile struct {
	Additive          bool        `yaml:"additive"`
	LongitudeDistance [][]float64 `yaml:"longitude_distance"`
	Latitude          [][]float64 `yaml:"latitude"`
}

// ParseLunarSeries decodes a lunar term table in YAML form.
func ParseLunarSeries(data []byte) (astro.LunarSeries, error) {
	var f lunarTermFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return astro.LunarSeries{}, fmt.Errorf("decode lunar terms: %w", err)
	}
	if len(f.LongitudeDistance) == 0 || len(f.Latitude) == 0 {
		return astro.LunarSeries{}, fmt.Errorf("lunar terms: empty table")
	}

	series := astro.LunarSeries{
		Longitude: make([]astro.LunarTerm, 0, len(f.LongitudeDistance)),
		Latitude:  make([]astro.LunarTerm, 0, len(f.Latitude)),
		Additive:  f.Additive,
	}
	for i, row := range f.LongitudeDistance {
		if len(row) != 6 {
			return astro.LunarSeries{}, fmt.Errorf("lunar terms: longitude row %d has %d columns, want 6", i, len(row))
		}
		series.Longitude = append(series.Longitude, astro.LunarTerm{
			D: int(row[0]), M: int(row[1]), Mp: int(row[2]), F: int(row[3]),
			Sin: row[4], Cos: row[5],
		})
	}
	for i, row := range f.Latitude {
		if len(row) != 5 {
			return astro.LunarSeries{}, fmt.Errorf("lunar terms: latitude row %d has %d columns, want 5", i, len(row))
		}
		series.Latitude = append(series.Latitude, astro.LunarTerm{
			D: int(row[0]), M: int(row[1]), Mp: int(row[2]), F: int(row[3]),
			Sin: row[4],
		})
	}
	return series, nil
}

var (
	defaultSeriesOnce sync.Once
	defaultSeries     astro.LunarSeries
	defaultSeriesErr  error
)

// DefaultLunarSeries returns the term table compiled into the binary.
func DefaultLunarSeries() (astro.LunarSeries, error) {
	defaultSeriesOnce.Do(func() {
		defaultSeries, defaultSeriesErr = ParseLunarSeries(embeddedLunarTerms)
	})
	return defaultSeries, defaultSeriesErr
}

// LoadLunarSeries reads a term table from path. An empty path selects the
// embedded table.
func LoadLunarSeries(path string) (astro.LunarSeries, error) {
	if path == "" {
		return DefaultLunarSeries()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return astro.LunarSeries{}, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	return ParseLunarSeries(data)
}
