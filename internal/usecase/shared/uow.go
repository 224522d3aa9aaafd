package shared

import (
	"context"
	"time"

	"icms/internal/domain/ledger"
	"icms/internal/domain/sample"
	sqlc "icms/internal/infra/sqlc/generated"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

type Tx interface {
	Transactions() TransactionRepository
	Samples() SampleRepository
	Requests() RequestRepository
	DB() sqlc.DBTX
}

type TransactionRepository interface {
	// GetForUpdate loads the ledger and holds its row lock until the transaction ends.
	GetForUpdate(ctx context.Context, tx sqlc.DBTX, referenceNo string) (*ledger.Transaction, error)
	SaveLedger(ctx context.Context, tx sqlc.DBTX, t *ledger.Transaction, now time.Time) error
}

type SampleRepository interface {
	UpdateStatus(ctx context.Context, tx sqlc.DBTX, id int64, status sample.Status) (*sample.Sample, error)
	CountIncomplete(ctx context.Context, tx sqlc.DBTX, referenceNo string) (int64, error)
}

type RequestRepository interface {
	LockByReference(ctx context.Context, tx sqlc.DBTX, referenceNo string) (*RequestSnapshot, error)
	// Complete reports whether this call moved the request to completed.
	Complete(ctx context.Context, tx sqlc.DBTX, referenceNo string, at time.Time) (bool, error)
}
