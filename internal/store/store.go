package store

import (
	"context"
	"time"

	"github.com/logcentral/logcentral/internal/model"
)

// Filters narrows a log query. Nil/zero fields are not applied; all set
// fields combine with AND. Range bounds are inclusive.
type Filters struct {
	TimestampFrom *time.Time
	TimestampTo   *time.Time
	ReceivedFrom  *time.Time
	ReceivedTo    *time.Time
	Service       string // exact match
	Severity      string // exact match against the normalized stored form
	Limit         int
	Offset        int
}

// Store is the persistence collaborator for the ingestion pipeline and the
// query engine. InsertBatch is atomic: either every record in the batch
// becomes durable or none does. Query returns records ordered by
// received_at descending, ties broken by id descending.
type Store interface {
	InsertBatch(ctx context.Context, records []model.LogRecord) error
	Query(ctx context.Context, f Filters) ([]model.LogRecord, error)
}
