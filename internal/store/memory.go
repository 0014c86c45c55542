package store

import (
	"context"
	"sort"
	"sync"

	"github.com/logcentral/logcentral/internal/model"
)

// MemoryStore keeps records in process memory. It serves as the fallback
// backend when no database is configured and backs the tests. Semantics
// match PostgresStore: atomic batches, received_at/id descending order.
type MemoryStore struct {
	mu      sync.Mutex
	records []model.LogRecord
	nextID  int64
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// InsertBatch assigns ids and appends all records under one lock, so a
// batch is never partially visible.
func (s *MemoryStore) InsertBatch(ctx context.Context, records []model.LogRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range records {
		records[i].ID = s.nextID
		s.nextID++
		s.records = append(s.records, records[i])
	}
	return nil
}

// Query filters, orders and paginates the in-memory records.
func (s *MemoryStore) Query(ctx context.Context, f Filters) ([]model.LogRecord, error) {
	s.mu.Lock()
	matched := make([]model.LogRecord, 0)
	for _, r := range s.records {
		if matches(r, f) {
			matched = append(matched, r)
		}
	}
	s.mu.Unlock()

	sort.Slice(matched, func(i, j int) bool {
		if !matched[i].ReceivedAt.Equal(matched[j].ReceivedAt) {
			return matched[i].ReceivedAt.After(matched[j].ReceivedAt)
		}
		return matched[i].ID > matched[j].ID
	})

	if f.Offset >= len(matched) {
		return []model.LogRecord{}, nil
	}
	matched = matched[f.Offset:]
	if f.Limit > 0 && f.Limit < len(matched) {
		matched = matched[:f.Limit]
	}
	return matched, nil
}

func matches(r model.LogRecord, f Filters) bool {
	if f.TimestampFrom != nil && r.Timestamp.Before(*f.TimestampFrom) {
		return false
	}
	if f.TimestampTo != nil && r.Timestamp.After(*f.TimestampTo) {
		return false
	}
	if f.ReceivedFrom != nil && r.ReceivedAt.Before(*f.ReceivedFrom) {
		return false
	}
	if f.ReceivedTo != nil && r.ReceivedAt.After(*f.ReceivedTo) {
		return false
	}
	if f.Service != "" && r.Service != f.Service {
		return false
	}
	if f.Severity != "" && r.Severity != f.Severity {
		return false
	}
	return true
}
