// Package memory resolves the heterogeneous company-memory payloads returned
// by the memory API into one canonical shape that the extraction layer can
// rely on. The same logical memory arrives in several envelope shapes; all of
// them reduce to Memory before anything downstream looks at a single field.
package memory

import (
	"strconv"
	"strings"
	"time"
)

// Memory is the canonical shape. All four fields are always non-nil after
// Normalize, possibly empty.
type Memory struct {
	Company     Company
	Contacts    []Contact
	Facts       []Fact
	PhoneEvents []PhoneEvent
}

// Company is the loosely-typed company attribute record. Values arrive as
// strings or numbers depending on the source, so fields are read through the
// typed accessors below rather than direct map access.
type Company map[string]any

// Contact is a single contact record. Only the first contact in source order
// is used by the mappers; ordering is preserved from the payload.
type Contact struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
}

// Fact is an atomic assertion about a company with a validity window.
type Fact struct {
	Name           string
	Text           string // the "fact" or "content" field, whichever is present
	TargetNodeName string
	ValidAt        string
	InvalidAt      string
	ExpiredAt      string
}

// PhoneEvent is a call or contact event, optionally carrying a transcript.
type PhoneEvent struct {
	Event      string
	Direction  string
	Content    string
	Transcript string
	Summary    string
	CreatedAt  string
}

// Active reports whether the fact is currently valid: no invalid_at, or an
// invalid_at in the future relative to now. Unparseable timestamps are treated
// as absent rather than invalidating the fact.
func (f Fact) Active(now time.Time) bool {
	if f.InvalidAt == "" {
		return true
	}
	t, err := parseTimestamp(f.InvalidAt)
	if err != nil {
		return true
	}
	return t.After(now)
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &time.ParseError{Layout: time.RFC3339, Value: s}
}

// Str returns the named company attribute as a string, or "" when absent or
// not string-shaped. Numbers are rendered without a decimal point when whole.
func (c Company) Str(key string) string {
	v, ok := c[key]
	if !ok || v == nil {
		return ""
	}
	switch s := v.(type) {
	case string:
		return s
	case float64:
		if s == float64(int64(s)) {
			return strconv.FormatInt(int64(s), 10)
		}
		return strconv.FormatFloat(s, 'f', -1, 64)
	case int:
		return strconv.Itoa(s)
	case bool:
		return strconv.FormatBool(s)
	}
	return ""
}

// Int returns the named attribute as an int, tolerating float64 (JSON
// numbers) and numeric strings. Absent or unparseable values yield 0.
func (c Company) Int(key string) int {
	v, ok := c[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case string:
		if i, err := strconv.Atoi(strings.TrimSpace(n)); err == nil {
			return i
		}
	}
	return 0
}

// Money returns the named attribute as a float64, stripping thousands
// separators from string values. Parse failure yields 0, never NaN.
func (c Company) Money(key string) float64 {
	v, ok := c[key]
	if !ok || v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case string:
		return ParseMoney(n)
	}
	return 0
}

// ParseMoney parses a free-form money string like "1,250,000" or "$45,000.50"
// into a float64. Anything unparseable is 0.
func ParseMoney(s string) float64 {
	s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
