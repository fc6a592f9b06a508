package celestial

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrFieldExists is returned by Add when the path already holds a value.
	ErrFieldExists = errors.New("field already set")

	// ErrFieldMissing is returned by Refine when the path holds no value.
	ErrFieldMissing = errors.New("field not set")

	// ErrNotRefinable is returned by Refine for paths outside the refinable
	// set or for non-numeric values.
	ErrNotRefinable = errors.New("field is not refinable")

	// ErrPathConflict means a path runs through a leaf value.
	ErrPathConflict = errors.New("path conflicts with existing field")
)

// refinable lists the fields a later tier may overwrite. Entries ending in
// "." match every path below them.
var refinable = []string{
	"distance.km",
	"distance.au",
	"distance.light_time_seconds",
	"celestial_coordinates.",
}

func isRefinable(path string) bool {
	for _, p := range refinable {
		if path == p || (strings.HasSuffix(p, ".") && strings.HasPrefix(path, p)) {
			return true
		}
	}
	return false
}

// PhaseEntry is one principal lunar phase in a record.
type PhaseEntry struct {
	Phase string `json:"phase"`
	Date  string `json:"date"`
}

// Record is the nested, JSON-serialisable result for one body. Fields are
// addressed by dotted paths ("position.altitude.degrees"). Values can be
// added or, for a small set of numeric fields, refined; nothing is ever
// removed.
type Record struct {
	fields map[string]any
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: make(map[string]any)}
}

// Add sets a field that does not exist yet, creating intermediate objects.
func (r *Record) Add(path string, value any) error {
	if _, ok := value.(map[string]any); ok {
		return fmt.Errorf("%s: nested objects must be added field by field", path)
	}
	parent, key, err := r.walk(path, true)
	if err != nil {
		return err
	}
	if _, exists := parent[key]; exists {
		return fmt.Errorf("%s: %w", path, ErrFieldExists)
	}
	parent[key] = value
	return nil
}

// Refine overwrites an existing numeric field in the refinable set.
// Integer fields stay integers.
func (r *Record) Refine(path string, value float64) error {
	if !isRefinable(path) {
		return fmt.Errorf("%s: %w", path, ErrNotRefinable)
	}
	parent, key, err := r.walk(path, false)
	if err != nil {
		return err
	}
	cur, exists := parent[key]
	if !exists {
		return fmt.Errorf("%s: %w", path, ErrFieldMissing)
	}
	switch cur.(type) {
	case int64:
		parent[key] = int64(value)
	case float64:
		parent[key] = value
	default:
		return fmt.Errorf("%s holds %T: %w", path, cur, ErrNotRefinable)
	}
	return nil
}

// Get returns the value at path.
func (r *Record) Get(path string) (any, bool) {
	node := r.fields
	parts := strings.Split(path, ".")
	for i, p := range parts {
		v, ok := node[p]
		if !ok {
			return nil, false
		}
		if i == len(parts)-1 {
			return v, true
		}
		if node, ok = v.(map[string]any); !ok {
			return nil, false
		}
	}
	return nil, false
}

// Has reports whether path holds a value.
func (r *Record) Has(path string) bool {
	_, ok := r.Get(path)
	return ok
}

// Float returns the numeric value at path.
func (r *Record) Float(path string) (float64, bool) {
	v, ok := r.Get(path)
	if !ok {
		return 0, false
	}
	switch n := v.(type) {
	case float64:
		return n, true
	case int64:
		return float64(n), true
	case int:
		return float64(n), true
	}
	return 0, false
}

// String returns the string value at path.
func (r *Record) String(path string) (string, bool) {
	v, ok := r.Get(path)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// Clone returns a deep copy.
func (r *Record) Clone() *Record {
	return &Record{fields: cloneMap(r.fields)}
}

// Map returns a deep copy of the record as plain maps.
func (r *Record) Map() map[string]any {
	return cloneMap(r.fields)
}

// MarshalJSON emits the record with keys sorted at every level, so equal
// records always serialise to identical bytes. Text such as "<" and "&" is
// written as is.
func (r *Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r.fields); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func (r *Record) walk(path string, create bool) (map[string]any, string, error) {
	if path == "" {
		return nil, "", errors.New("empty field path")
	}
	parts := strings.Split(path, ".")
	node := r.fields
	for _, p := range parts[:len(parts)-1] {
		if p == "" {
			return nil, "", fmt.Errorf("malformed field path %q", path)
		}
		next, ok := node[p]
		if !ok {
			if !create {
				return nil, "", fmt.Errorf("%s: %w", path, ErrFieldMissing)
			}
			child := make(map[string]any)
			node[p] = child
			node = child
			continue
		}
		child, ok := next.(map[string]any)
		if !ok {
			return nil, "", fmt.Errorf("%s: %w", path, ErrPathConflict)
		}
		node = child
	}
	key := parts[len(parts)-1]
	if key == "" {
		return nil, "", fmt.Errorf("malformed field path %q", path)
	}
	if child, ok := node[key].(map[string]any); ok && child != nil {
		return nil, "", fmt.Errorf("%s: %w", path, ErrPathConflict)
	}
	return node, key, nil
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		switch val := v.(type) {
		case map[string]any:
			out[k] = cloneMap(val)
		case []PhaseEntry:
			out[k] = append([]PhaseEntry(nil), val...)
		default:
			out[k] = val
		}
	}
	return out
}
