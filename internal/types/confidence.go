package types

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Confidence is a coarse reliability tag attached to an extracted field
type Confidence int

const (
	// ConfidenceLow marks a fallback or default value, or a field that could not be located
	ConfidenceLow Confidence = iota
	// ConfidenceMedium marks a value produced by a relaxed heuristic
	ConfidenceMedium
	// ConfidenceHigh marks a value that matched a strict pattern
	ConfidenceHigh
)

// String returns the lowercase name used in JSON
func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	default:
		return "low"
	}
}

// ParseConfidence parses "high", "medium" or "low"
func ParseConfidence(s string) (Confidence, error) {
	switch s {
	case "high":
		return ConfidenceHigh, nil
	case "medium":
		return ConfidenceMedium, nil
	case "low":
		return ConfidenceLow, nil
	}
	return ConfidenceLow, fmt.Errorf("invalid confidence %q", s)
}

// MarshalJSON encodes the confidence as its lowercase name
func (c Confidence) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

// UnmarshalJSON decodes a lowercase confidence name
func (c *Confidence) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseConfidence(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Min returns the lower of two confidence levels
func (c Confidence) Min(other Confidence) Confidence {
	if other < c {
		return other
	}
	return c
}

// ConfidenceMap maps canonical field path strings to confidence levels
type ConfidenceMap map[string]Confidence

// Set records the confidence for a field path
func (m ConfidenceMap) Set(path FieldPath, c Confidence) {
	m[path.String()] = c
}

// Get returns the confidence for a field path; unknown paths are LOW
func (m ConfidenceMap) Get(path FieldPath) Confidence {
	return m[path.String()]
}

// Downgrade lowers the confidence for a path to at most c. It never raises it.
func (m ConfidenceMap) Downgrade(path FieldPath, c Confidence) {
	key := path.String()
	if current, ok := m[key]; ok {
		m[key] = current.Min(c)
		return
	}
	m[key] = c
}

// Cap lowers every entry to at most c
func (m ConfidenceMap) Cap(c Confidence) {
	for k, v := range m {
		m[k] = v.Min(c)
	}
}

// Clone returns a copy of the map
func (m ConfidenceMap) Clone() ConfidenceMap {
	out := make(ConfidenceMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Keys returns the field paths in sorted order
func (m ConfidenceMap) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
