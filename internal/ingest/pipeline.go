package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/logcentral/logcentral/internal/auth"
	"github.com/logcentral/logcentral/internal/model"
	"github.com/logcentral/logcentral/internal/store"
)

// ErrBadPayload means the request body was not a JSON object or array of
// objects. The whole request is rejected before any item is processed.
var ErrBadPayload = errors.New("body must be a JSON object or array of objects")

// ItemError reports why one batch item was rejected, keyed by its
// zero-based position in the submitted batch.
type ItemError struct {
	Index int    `json:"index"`
	Error string `json:"error"`
}

// Report is the outcome of one ingestion request. It marshals directly to
// the POST /logs response body.
type Report struct {
	Accepted int         `json:"total_logs"`
	Errors   []ItemError `json:"errors"`
}

// Pipeline runs the ingestion sequence: authenticate the batch, classify
// each item, and commit the accepted subset as one atomic write.
type Pipeline struct {
	registry *auth.Registry
	store    store.Store
	now      func() time.Time
	log      zerolog.Logger
}

// NewPipeline wires a Pipeline against the given registry and store.
func NewPipeline(registry *auth.Registry, st store.Store, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		registry: registry,
		store:    st,
		now:      time.Now,
		log:      logger,
	}
}

// Ingest processes one batch. Request-level failures (auth, payload, store)
// return an error and no Report; item-level failures are collected in the
// Report and never abort their siblings. A store failure after staging
// means nothing from the batch is durable.
func (p *Pipeline) Ingest(ctx context.Context, authHeader string, body []byte) (*Report, error) {
	token, err := p.registry.Authenticate(authHeader)
	if err != nil {
		return nil, err
	}

	items, err := decodeItems(body)
	if err != nil {
		return nil, ErrBadPayload
	}

	staged, itemErrs := p.classify(token, items)

	if len(staged) > 0 {
		if err := p.store.InsertBatch(ctx, staged); err != nil {
			p.log.Error().Err(err).Int("staged", len(staged)).Msg("batch insert failed")
			return nil, fmt.Errorf("insert batch: %w", err)
		}
	}

	p.log.Debug().
		Int("accepted", len(staged)).
		Int("rejected", len(itemErrs)).
		Str("service", p.registry.ServiceFor(token)).
		Msg("batch ingested")

	return &Report{Accepted: len(staged), Errors: itemErrs}, nil
}

// classify runs the per-item checks in submission order and builds the
// records to persist. It has no side effects; persistence happens after.
//
// The bound-service check compares the trimmed submitted service so the
// acceptance predicate matches the value that gets stored.
func (p *Pipeline) classify(token string, items []map[string]any) ([]model.LogRecord, []ItemError) {
	bound := p.registry.ServiceFor(token)
	staged := make([]model.LogRecord, 0, len(items))
	itemErrs := make([]ItemError, 0)

	for i, raw := range items {
		if err := validateItem(raw); err != nil {
			itemErrs = append(itemErrs, ItemError{Index: i, Error: err.Error()})
			continue
		}
		service := strings.TrimSpace(stringField(raw, "service"))
		if bound != "" && service != bound {
			itemErrs = append(itemErrs, ItemError{
				Index: i,
				Error: fmt.Sprintf("service mismatch for token (expected '%s')", bound),
			})
			continue
		}
		ts, err := ParseTimestamp(stringField(raw, "timestamp"))
		if err != nil {
			itemErrs = append(itemErrs, ItemError{Index: i, Error: "invalid timestamp (cannot parse ISO8601)"})
			continue
		}
		staged = append(staged, model.LogRecord{
			Timestamp:  ts,
			ReceivedAt: p.now().UTC(),
			Service:    service,
			Severity:   NormalizeSeverity(stringField(raw, "severity")),
			Message:    strings.TrimSpace(stringField(raw, "message")),
			TokenUsed:  token,
		})
	}
	return staged, itemErrs
}

// decodeItems accepts a single JSON object or an array of objects; a single
// object is a batch of one. JSON null, whether as the body or as an array
// element, is not an object and fails the decode.
func decodeItems(body []byte) ([]map[string]any, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []map[string]any
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		for _, item := range items {
			if item == nil {
				return nil, errors.New("null batch item")
			}
		}
		return items, nil
	}
	var item map[string]any
	if err := json.Unmarshal(body, &item); err != nil {
		return nil, err
	}
	if item == nil {
		return nil, errors.New("null body")
	}
	return []map[string]any{item}, nil
}
