package ephem

import (
	"fmt"
	"log/slog"
)

// Options configures oracle loading.
type Options struct {
	// LunarTermsPath overrides the term table used by the refined oracle.
	// Empty selects the embedded table.
	LunarTermsPath string
}

// Set is the process-wide handle on the three oracles. It is built once at
// startup and is safe for concurrent use.
type Set struct {
	Fast      *Fast
	Refined   Oracle
	Transform Oracle
}

// LoadSet parses the term and boundary tables and builds the oracles. Only a
// broken embedded table is fatal; a refined table that cannot be loaded leaves the
// refined oracle unavailable and is logged.
func LoadSet(opts Options, logger *slog.Logger) (*Set, error) {
	if logger == nil {
		logger = slog.Default()
	}

	builtin, err := DefaultLunarSeries()
	if err != nil {
		return nil, fmt.Errorf("embedded lunar terms: %w", err)
	}

	bounds, err := DefaultConstellationTable()
	if err != nil {
		return nil, fmt.Errorf("embedded constellation bounds: %w", err)
	}

	set := &Set{
		Fast:      NewFast(builtin),
		Transform: NewTransform(builtin, bounds),
	}

	refined, err := LoadLunarSeries(opts.LunarTermsPath)
	if err != nil {
		logger.Warn("refined oracle unavailable",
			"path", opts.LunarTermsPath,
			"error", err)
		set.Refined = Unavailable("analytic", err)
	} else {
		set.Refined = NewAnalytic(refined)
	}

	logger.Info("ephemeris oracles loaded",
		"fast_terms", len(builtin.Truncate(fastLonTerms, fastLatTerms).Longitude),
		"constellation_bounds", bounds.Len(),
		"refined", set.Refined.Name(),
		"transform", set.Transform.Name())
	return set, nil
}

// Names lists the oracle names in tier order.
func (s *Set) Names() []string {
	return []string{s.Fast.Name(), s.Refined.Name(), s.Transform.Name()}
}
