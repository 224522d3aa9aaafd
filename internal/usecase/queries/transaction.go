package queries

import (
	"context"

	"icms/internal/infra"
	"icms/internal/pkg/errs"
)

var ErrTransactionNotFound = errs.New("transaction not found")

type TransactionReadStore interface {
	FindByReference(ctx context.Context, referenceNo string) (*TransactionView, error)
}

type TransactionQueries interface {
	GetByReference(ctx context.Context, referenceNo string) (*TransactionView, error)
}

type transactionQueriesImpl struct {
	store TransactionReadStore
}

func NewTransactionQueries(store TransactionReadStore) TransactionQueries {
	return &transactionQueriesImpl{store: store}
}

func (q *transactionQueriesImpl) GetByReference(ctx context.Context, referenceNo string) (*TransactionView, error) {
	view, err := q.store.FindByReference(ctx, referenceNo)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrTransactionNotFound)
		}
		return nil, err
	}
	return view, nil
}
