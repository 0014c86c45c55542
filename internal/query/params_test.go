package query

import (
	"errors"
	"net/url"
	"testing"
	"time"
)

func TestParseListParamsDefaults(t *testing.T) {
	f, err := ParseListParams(url.Values{})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.Limit != 100 || f.Offset != 0 {
		t.Fatalf("defaults: limit=%d offset=%d, want 100/0", f.Limit, f.Offset)
	}
	if f.Service != "" || f.Severity != "" {
		t.Fatalf("unexpected filters: %+v", f)
	}
	if f.TimestampFrom != nil || f.TimestampTo != nil || f.ReceivedFrom != nil || f.ReceivedTo != nil {
		t.Fatalf("unexpected time bounds: %+v", f)
	}
}

func TestParseListParamsClamping(t *testing.T) {
	cases := []struct {
		limit, offset string
		wantLimit     int
		wantOffset    int
	}{
		{"5000", "0", 1000, 0},
		{"0", "0", 1, 0},
		{"-3", "0", 1, 0},
		{"50", "-5", 50, 0},
		{"1000", "250", 1000, 250},
	}
	for _, tc := range cases {
		v := url.Values{}
		v.Set("limit", tc.limit)
		v.Set("offset", tc.offset)
		f, err := ParseListParams(v)
		if err != nil {
			t.Fatalf("limit=%s offset=%s: %v", tc.limit, tc.offset, err)
		}
		if f.Limit != tc.wantLimit || f.Offset != tc.wantOffset {
			t.Errorf("limit=%s offset=%s: got %d/%d, want %d/%d",
				tc.limit, tc.offset, f.Limit, f.Offset, tc.wantLimit, tc.wantOffset)
		}
	}
}

func TestParseListParamsRejectsNonNumericPagination(t *testing.T) {
	for _, v := range []url.Values{
		{"limit": {"abc"}},
		{"offset": {"abc"}},
		{"limit": {"1.5"}},
	} {
		if _, err := ParseListParams(v); !errors.Is(err, ErrBadPagination) {
			t.Errorf("%v: expected ErrBadPagination, got %v", v, err)
		}
	}
}

func TestParseListParamsSeverityCaseInsensitive(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"error", "ERROR"},
		{"Error", "ERROR"},
		{"warning", "WARN"},
		{"WARNING", "WARN"},
		{"debug", "DEBUG"},
	}
	for _, tc := range cases {
		f, err := ParseListParams(url.Values{"severity": {tc.in}})
		if err != nil {
			t.Fatalf("severity=%s: %v", tc.in, err)
		}
		if f.Severity != tc.want {
			t.Errorf("severity=%s: got %q, want %q", tc.in, f.Severity, tc.want)
		}
	}
}

func TestParseListParamsUnknownSeverityNotCollapsed(t *testing.T) {
	// An unknown severity must stay as-is so it matches zero rows; only
	// ingestion collapses unknown values to INFO.
	for _, in := range []string{"FATAL", "fatal", "notice"} {
		f, err := ParseListParams(url.Values{"severity": {in}})
		if err != nil {
			t.Fatalf("severity=%s: %v", in, err)
		}
		if f.Severity == "INFO" {
			t.Errorf("severity=%s collapsed to INFO", in)
		}
	}
}

func TestParseListParamsTimeBounds(t *testing.T) {
	v := url.Values{
		"timestamp_start":   {"2024-01-01T00:00:00"},
		"timestamp_end":     {"garbage"},
		"received_at_start": {"2024-02-01T00:00:00Z"},
	}
	f, err := ParseListParams(v)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if f.TimestampFrom == nil {
		t.Fatal("timestamp_start dropped")
	}
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !f.TimestampFrom.Equal(want) {
		t.Fatalf("timestamp_start = %v, want %v", f.TimestampFrom, want)
	}
	// Unparseable bound counts as absent, never as an error.
	if f.TimestampTo != nil {
		t.Fatalf("garbage bound should be absent, got %v", f.TimestampTo)
	}
	if f.ReceivedFrom == nil {
		t.Fatal("received_at_start dropped")
	}
}
