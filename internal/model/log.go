package model

import "time"

// Severity levels a record can carry after normalization.
const (
	SeverityDebug    = "DEBUG"
	SeverityInfo     = "INFO"
	SeverityWarn     = "WARN"
	SeverityError    = "ERROR"
	SeverityCritical = "CRITICAL"
)

// LogRecord is the persisted log entity. Records are immutable once
// written; id is assigned by the store. Timestamp is the client-supplied
// event time, ReceivedAt the server-stamped acceptance time, and TokenUsed
// the token that authenticated the batch (kept for traceability, not tied
// to the registry's lifecycle).
type LogRecord struct {
	ID         int64     `json:"id" db:"id"`
	Timestamp  time.Time `json:"timestamp" db:"timestamp"`
	ReceivedAt time.Time `json:"received_at" db:"received_at"`
	Service    string    `json:"service" db:"service"`
	Severity   string    `json:"severity" db:"severity"`
	Message    string    `json:"message" db:"message"`
	TokenUsed  string    `json:"token_used" db:"token_used"`
}
