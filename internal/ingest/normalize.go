package ingest

import (
	"fmt"
	"strings"
	"time"

	"github.com/logcentral/logcentral/internal/model"
)

var knownSeverities = map[string]bool{
	model.SeverityDebug:    true,
	model.SeverityInfo:     true,
	model.SeverityWarn:     true,
	model.SeverityError:    true,
	model.SeverityCritical: true,
}

// NormalizeSeverity maps any input to the closed severity set. Absent or
// unrecognized values become INFO; "WARNING" in any casing becomes WARN.
// Total function, idempotent on already-normalized input.
func NormalizeSeverity(s string) string {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return model.SeverityInfo
	}
	if s == "WARNING" {
		return model.SeverityWarn
	}
	if !knownSeverities[s] {
		return model.SeverityInfo
	}
	return s
}

// timestampLayouts is the accepted ISO-8601 family, tried in order.
// Layouts without an offset are parsed as UTC wall-clock time.
var timestampLayouts = []struct {
	layout    string
	hasOffset bool
}{
	{time.RFC3339Nano, true},
	{time.RFC3339, true},
	{"2006-01-02 15:04:05.999999999Z07:00", true},
	{"2006-01-02 15:04:05Z07:00", true},
	{"2006-01-02T15:04:05.999999999", false},
	{"2006-01-02T15:04:05", false},
	{"2006-01-02 15:04:05.999999999", false},
	{"2006-01-02 15:04:05", false},
	{"2006-01-02", false},
}

// ParseTimestamp parses an ISO-8601-family string into an instant. Strings
// carrying an explicit offset keep it; strings without one are interpreted
// as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, l := range timestampLayouts {
		if l.hasOffset {
			if t, err := time.Parse(l.layout, s); err == nil {
				return t, nil
			}
			continue
		}
		if t, err := time.ParseInLocation(l.layout, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
