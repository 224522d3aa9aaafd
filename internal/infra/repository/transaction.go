package repository

import (
	"context"
	"time"

	"icms/internal/domain/ledger"
	"icms/internal/infra"
	"icms/internal/infra/repository/converter"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/pgconv"

	"github.com/google/uuid"
)

type TransactionWriteQueries interface {
	CreateTransaction(ctx context.Context, db sqlc.DBTX, arg sqlc.CreateTransactionParams) (uuid.UUID, error)
	GetTransactionForUpdate(ctx context.Context, db sqlc.DBTX, reservationRefNo string) (sqlc.GetTransactionForUpdateRow, error)
	UpdateTransactionLedger(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateTransactionLedgerParams) (int64, error)
}

type TransactionRepository struct {
	queries TransactionWriteQueries
}

func NewTransactionRepository(queries TransactionWriteQueries) *TransactionRepository {
	return &TransactionRepository{queries: queries}
}

func (r *TransactionRepository) Create(ctx context.Context, tx sqlc.DBTX, t *ledger.Transaction) (uuid.UUID, error) {
	id, err := r.queries.CreateTransaction(ctx, tx, converter.TransactionToCreateParams(t))
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to create transaction", err)
	}
	return id, nil
}

func (r *TransactionRepository) GetForUpdate(ctx context.Context, tx sqlc.DBTX, referenceNo string) (*ledger.Transaction, error) {
	row, err := r.queries.GetTransactionForUpdate(ctx, tx, referenceNo)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock transaction", err)
	}

	t, err := converter.TransactionFromLockedRow(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load transaction", err)
	}
	return t, nil
}

func (r *TransactionRepository) SaveLedger(ctx context.Context, tx sqlc.DBTX, t *ledger.Transaction, now time.Time) error {
	params, err := converter.TransactionToLedgerParams(t, now)
	if err != nil {
		return infra.WrapRepoErr("failed to encode payment history", err)
	}

	affected, err := r.queries.UpdateTransactionLedger(ctx, tx, params)
	if err != nil {
		return infra.WrapRepoErr("failed to update transaction", err)
	}
	if affected == 0 {
		return infra.WrapRepoErr("transaction not found", nil, infra.KindNotFound)
	}
	return nil
}
