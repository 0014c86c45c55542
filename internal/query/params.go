package query

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/logcentral/logcentral/internal/ingest"
	"github.com/logcentral/logcentral/internal/store"
)

const (
	defaultLimit = 100
	maxLimit     = 1000
)

// ErrBadPagination means limit or offset was present but not an integer.
// Mapped to a 400 before the store is touched. The message matches the
// API's public error string.
var ErrBadPagination = errors.New("limit/offset inválidos")

// ParseListParams turns GET /logs query parameters into store filters.
//
// Policy per filter: unparseable timestamp bounds are treated as absent
// rather than erroring; severity is normalized before comparison so input
// casing does not matter; limit is clamped to [1, 1000] and offset to >= 0,
// but a non-numeric limit or offset is a client error.
func ParseListParams(values url.Values) (store.Filters, error) {
	f := store.Filters{
		Service: values.Get("service"),
		Limit:   defaultLimit,
	}
	if sev := values.Get("severity"); sev != "" {
		f.Severity = severityFilter(sev)
	}

	f.TimestampFrom = timeBound(values.Get("timestamp_start"))
	f.TimestampTo = timeBound(values.Get("timestamp_end"))
	f.ReceivedFrom = timeBound(values.Get("received_at_start"))
	f.ReceivedTo = timeBound(values.Get("received_at_end"))

	if raw := values.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Filters{}, ErrBadPagination
		}
		f.Limit = clamp(n, 1, maxLimit)
	}
	if raw := values.Get("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return store.Filters{}, ErrBadPagination
		}
		if n < 0 {
			n = 0
		}
		f.Offset = n
	}
	return f, nil
}

// severityFilter canonicalizes the caller's severity for comparison against
// the stored form: case-insensitive, WARNING accepted as an alias for WARN.
// Values outside the closed set pass through unchanged so they match no
// rows, unlike ingestion where unknown severities collapse to INFO.
func severityFilter(sev string) string {
	sev = strings.ToUpper(strings.TrimSpace(sev))
	if sev == "WARNING" {
		return "WARN"
	}
	return sev
}

// timeBound parses an optional timestamp bound; unparseable input counts
// as absent.
func timeBound(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	t, err := ingest.ParseTimestamp(raw)
	if err != nil {
		return nil
	}
	return &t
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
