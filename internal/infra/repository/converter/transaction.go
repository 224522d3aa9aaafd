package converter

import (
	"time"

	"icms/internal/domain/ledger"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/errs"
	"icms/internal/pkg/pgconv"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Stored shape of one element of transactions.payments.
type paymentDoc struct {
	Amount   decimal.Decimal `json:"amount"`
	Method   string          `json:"method"`
	PaidAt   time.Time       `json:"paid_at"`
	Discount *discountDoc    `json:"discount,omitempty"`
}

type discountDoc struct {
	Type  string          `json:"type"`
	Value decimal.Decimal `json:"value"`
}

func EncodePayments(records []ledger.PaymentRecord) ([]byte, error) {
	docs := make([]paymentDoc, 0, len(records))
	for _, r := range records {
		doc := paymentDoc{
			Amount: r.Amount,
			Method: r.Method,
			PaidAt: r.PaidAt.UTC(),
		}
		if !r.Discount.IsEmpty() {
			doc.Discount = &discountDoc{Type: string(r.Discount.Type()), Value: r.Discount.Value()}
		}
		docs = append(docs, doc)
	}
	return json.Marshal(docs)
}

func DecodePayments(raw []byte) ([]ledger.PaymentRecord, error) {
	if len(raw) == 0 {
		return nil, nil
	}

	var docs []paymentDoc
	if err := json.Unmarshal(raw, &docs); err != nil {
		return nil, errs.Wrap(err, "decode payment history")
	}

	records := make([]ledger.PaymentRecord, 0, len(docs))
	for _, d := range docs {
		rec := ledger.PaymentRecord{
			Amount: d.Amount,
			Method: d.Method,
			PaidAt: d.PaidAt,
		}
		if d.Discount != nil {
			discount, err := ledger.NewDiscount(d.Discount.Type, d.Discount.Value)
			if err != nil {
				return nil, errs.Wrap(err, "decode payment discount")
			}
			rec.Discount = discount
		}
		records = append(records, rec)
	}
	return records, nil
}

func TransactionFromLockedRow(row sqlc.GetTransactionForUpdateRow) (*ledger.Transaction, error) {
	amount, err := pgconv.DecimalFromNumeric(row.Amount)
	if err != nil {
		return nil, err
	}
	balance, err := pgconv.DecimalFromNumeric(row.Balance)
	if err != nil {
		return nil, err
	}
	payments, err := DecodePayments(row.Payments)
	if err != nil {
		return nil, err
	}
	return ledger.ReconstructTransaction(row.ReservationRefNo, amount, balance, ledger.Status(row.Status), payments)
}

func TransactionToLedgerParams(t *ledger.Transaction, now time.Time) (sqlc.UpdateTransactionLedgerParams, error) {
	payments, err := EncodePayments(t.Payments())
	if err != nil {
		return sqlc.UpdateTransactionLedgerParams{}, err
	}
	return sqlc.UpdateTransactionLedgerParams{
		ReservationRefNo: t.ReferenceNo(),
		Balance:          pgconv.DecimalToNumeric(t.Balance()),
		Status:           t.Status().String(),
		Payments:         payments,
		UpdatedAt:        pgconv.TimeToPgtype(now),
	}, nil
}

func TransactionToCreateParams(t *ledger.Transaction) sqlc.CreateTransactionParams {
	return sqlc.CreateTransactionParams{
		ReservationRefNo: t.ReferenceNo(),
		Amount:           pgconv.DecimalToNumeric(t.Amount()),
		Status:           t.Status().String(),
	}
}
