package commands

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Collaborators consumed by the write side. Implementations live in infra.

// AuditEntry is one row of the audit trail.
type AuditEntry struct {
	UserID    *uuid.UUID
	Action    string
	Details   map[string]any
	IPAddress *string
	At        time.Time
}

type AuditSink interface {
	Append(ctx context.Context, entry AuditEntry) error
}

// CompletionNotice tells a client that every sample of a request is done.
type CompletionNotice struct {
	Email           string
	Name            string
	ReferenceNumber string
	CompletedAt     time.Time
	Details         map[string]any
}

type Notifier interface {
	Enabled() bool
	SendCompletion(ctx context.Context, notice CompletionNotice) error
}

// Dispatcher runs side effects after the primary write has committed. Submit
// never blocks the caller on the task itself; failures are only logged.
type Dispatcher interface {
	Submit(name string, task func(ctx context.Context) error) bool
}

// IdempotencyStore remembers payment results per client-supplied key.
type IdempotencyStore interface {
	// Begin claims key for requestHash. A non-nil record means the key was
	// already used; its Status tells whether the result can be replayed.
	Begin(ctx context.Context, key, requestHash string) (*IdempotencyRecord, error)
	Complete(ctx context.Context, key string, record IdempotencyRecord) error
	Release(ctx context.Context, key string) error
}

const (
	IdempotencyProcessing = "processing"
	IdempotencyCompleted  = "completed"
)

type IdempotencyRecord struct {
	Status      string         `json:"status"`
	RequestHash string         `json:"request_hash"`
	Result      *PaymentResult `json:"result,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
}
