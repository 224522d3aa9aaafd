package readstore

import (
	"context"

	"icms/internal/infra"
	"icms/internal/infra/repository/converter"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/pgconv"
	"icms/internal/usecase/queries"
)

type TransactionViewQueries interface {
	GetTransactionByReference(ctx context.Context, db sqlc.DBTX, reservationRefNo string) (sqlc.Transactions, error)
}

type TransactionReadStore struct {
	queries TransactionViewQueries
	db      sqlc.DBTX
}

func NewTransactionReadStore(queries TransactionViewQueries, db sqlc.DBTX) *TransactionReadStore {
	return &TransactionReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *TransactionReadStore) FindByReference(ctx context.Context, referenceNo string) (*queries.TransactionView, error) {
	row, err := r.queries.GetTransactionByReference(ctx, r.db, referenceNo)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("transaction not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find transaction by reference", err)
	}

	view, err := rowToTransactionView(row)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to read transaction", err)
	}
	return view, nil
}

func rowToTransactionView(row sqlc.Transactions) (*queries.TransactionView, error) {
	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, err
	}
	balance, err := pgconv.DecimalFromNumeric(row.Balance)
	if err != nil {
		return nil, err
	}
	records, err := converter.DecodePayments(row.Payments)
	if err != nil {
		return nil, err
	}

	payments := make([]queries.PaymentView, 0, len(records))
	for _, rec := range records {
		pv := queries.PaymentView{
			Amount: rec.Amount,
			Method: rec.Method,
			PaidAt: rec.PaidAt,
		}
		if !rec.Discount.IsEmpty() {
			kind := string(rec.Discount.Type())
			value := rec.Discount.Value()
			pv.DiscountType = &kind
			pv.DiscountValue = &value
		}
		payments = append(payments, pv)
	}

	return &queries.TransactionView{
		ID:               row.ID,
		ReservationRefNo: row.ReservationRefNo,
		Amount:           amount,
		Balance:          balance,
		Status:           row.Status,
		Payments:         payments,
		CreatedAt:        pgconv.TimeFromPgtype(row.CreatedAt),
		UpdatedAt:        pgconv.TimeFromPgtype(row.UpdatedAt),
	}, nil
}
