package ephem

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/litescript/ls-celestial/internal/logging"
)

func TestLoadSet(t *testing.T) {
	t.Run("embedded tables", func(t *testing.T) {
		set, err := LoadSet(Options{}, logging.Discard())
		if err != nil {
			t.Fatalf("LoadSet() error = %v", err)
		}
		if !IsAvailable(set.Refined) || !IsAvailable(set.Transform) {
			t.Error("all oracles should be available")
		}
		names := set.Names()
		want := []string{"fast", "analytic", "transform"}
		for i := range want {
			if names[i] != want[i] {
				t.Errorf("Names() = %v, want %v", names, want)
				break
			}
		}
	})

	t.Run("missing refined table", func(t *testing.T) {
		set, err := LoadSet(Options{LunarTermsPath: filepath.Join(t.TempDir(), "missing.yaml")}, logging.Discard())
		if err != nil {
			t.Fatalf("LoadSet() error = %v", err)
		}
		if IsAvailable(set.Refined) {
			t.Error("refined oracle should be unavailable")
		}
		if _, err := set.Refined.Lookup(BodyMoon, testInstant, nil); !errors.Is(err, ErrDataUnavailable) {
			t.Errorf("refined lookup error = %v", err)
		}
		if _, err := set.Transform.Lookup(BodyMoon, testInstant, nil); err != nil {
			t.Errorf("transform should not depend on the refined table: %v", err)
		}
	})
}
