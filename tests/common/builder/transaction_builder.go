//go:build unit || e2e

package builder

import (
	"time"

	"icms/internal/domain/ledger"
	reqdto "icms/internal/handler/dto/request"
	"icms/internal/usecase/commands"
	"icms/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionBuilder struct {
	ID               uuid.UUID
	ReservationRefNo string
	Amount           decimal.Decimal
	Balance          *decimal.Decimal
	Payments         []ledger.PaymentRecord
	PaymentAmount    decimal.Decimal
	PaymentMethod    string
	DiscountType     string
	DiscountValue    *decimal.Decimal
	CreatedAt        time.Time
}

func NewTransactionBuilder() *TransactionBuilder {
	return &TransactionBuilder{
		ID:               uuid.New(),
		ReservationRefNo: "REF-001",
		Amount:           decimal.RequireFromString("1000"),
		PaymentAmount:    decimal.RequireFromString("400"),
		PaymentMethod:    ledger.DefaultPaymentMethod,
		CreatedAt:        time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (b *TransactionBuilder) With(mutate func(*TransactionBuilder)) *TransactionBuilder {
	mutate(b)
	return b
}

func (b *TransactionBuilder) WithReference(ref string) *TransactionBuilder {
	b.ReservationRefNo = ref
	return b
}

func (b *TransactionBuilder) WithAmount(amount string) *TransactionBuilder {
	b.Amount = decimal.RequireFromString(amount)
	return b
}

func (b *TransactionBuilder) WithBalance(balance string) *TransactionBuilder {
	d := decimal.RequireFromString(balance)
	b.Balance = &d
	return b
}

func (b *TransactionBuilder) WithPayment(amount string) *TransactionBuilder {
	b.PaymentAmount = decimal.RequireFromString(amount)
	return b
}

func (b *TransactionBuilder) WithDiscount(kind, value string) *TransactionBuilder {
	d := decimal.RequireFromString(value)
	b.DiscountType = kind
	b.DiscountValue = &d
	return b
}

// Build methods
func (b *TransactionBuilder) BuildDomain() (*ledger.Transaction, error) {
	if b.Balance == nil && len(b.Payments) == 0 {
		return ledger.NewTransaction(b.ReservationRefNo, b.Amount)
	}
	balance := b.Amount
	if b.Balance != nil {
		balance = *b.Balance
	}
	return ledger.ReconstructTransaction(b.ReservationRefNo, b.Amount, balance, ledger.DeriveStatus(balance, b.Amount), b.Payments)
}

func (b *TransactionBuilder) BuildView() *queries.TransactionView {
	balance := b.Amount
	if b.Balance != nil {
		balance = *b.Balance
	}
	payments := make([]queries.PaymentView, 0, len(b.Payments))
	for _, p := range b.Payments {
		view := queries.PaymentView{Amount: p.Amount, Method: p.Method, PaidAt: p.PaidAt}
		if p.Discount != nil {
			kind := string(p.Discount.Type())
			value := p.Discount.Value()
			view.DiscountType = &kind
			view.DiscountValue = &value
		}
		payments = append(payments, view)
	}
	return &queries.TransactionView{
		ID:               b.ID,
		ReservationRefNo: b.ReservationRefNo,
		Amount:           b.Amount,
		Balance:          balance,
		Status:           ledger.DeriveStatus(balance, b.Amount).String(),
		Payments:         payments,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.CreatedAt,
	}
}

func (b *TransactionBuilder) BuildPaymentRequestDTO() reqdto.ProcessPaymentRequest {
	amount := b.PaymentAmount
	req := reqdto.ProcessPaymentRequest{
		ReservationRefNo: b.ReservationRefNo,
		PaymentAmount:    &amount,
		PaymentMethod:    b.PaymentMethod,
	}
	if b.DiscountValue != nil {
		value := *b.DiscountValue
		req.Discount = &reqdto.DiscountRequest{Type: b.DiscountType, Value: &value}
	}
	return req
}

func (b *TransactionBuilder) BuildPaymentCommand() commands.ProcessPaymentCommand {
	cmd := commands.ProcessPaymentCommand{
		ReservationRefNo: b.ReservationRefNo,
		PaymentAmount:    b.PaymentAmount,
		PaymentMethod:    b.PaymentMethod,
	}
	if b.DiscountValue != nil {
		cmd.Discount = &commands.DiscountInput{Type: b.DiscountType, Value: *b.DiscountValue}
	}
	return cmd
}

// BuildPaymentResult is the result of applying the builder's payment to a
// ledger at full balance.
func (b *TransactionBuilder) BuildPaymentResult() *commands.PaymentResult {
	balance := b.Amount
	if b.Balance != nil {
		balance = *b.Balance
	}
	newBalance := balance.Sub(b.PaymentAmount)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	return &commands.PaymentResult{
		ReservationRefNo: b.ReservationRefNo,
		PaymentAmount:    b.PaymentAmount,
		NewBalance:       newBalance,
		NewStatus:        ledger.DeriveStatus(newBalance, b.Amount).String(),
	}
}
