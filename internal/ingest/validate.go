package ingest

import (
	"errors"
	"strings"
)

// requiredFields are checked in this order so rejection reasons are stable.
var requiredFields = []string{"timestamp", "service", "message"}

// validateItem runs the structural checks on one raw batch item. Severity
// is not required here; it is defaulted during normalization. Timestamp
// parseability is also deferred; this only checks it is a non-empty string.
func validateItem(raw map[string]any) error {
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return errors.New("missing field: " + field)
		}
	}
	ts, ok := raw["timestamp"].(string)
	if !ok || strings.TrimSpace(ts) == "" {
		return errors.New("invalid timestamp (expected ISO8601 string)")
	}
	svc, ok := raw["service"].(string)
	if !ok || strings.TrimSpace(svc) == "" {
		return errors.New("invalid service")
	}
	msg, ok := raw["message"].(string)
	if !ok || strings.TrimSpace(msg) == "" {
		return errors.New("invalid message")
	}
	return nil
}

// stringField returns raw[key] if present and a string, else "".
func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}
