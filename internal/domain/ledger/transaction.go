package ledger

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type PaymentRecord struct {
	Amount   decimal.Decimal
	Method   string
	PaidAt   time.Time
	Discount *Discount
}

// IsDiscountOnly reports whether the record carries a discount but no money.
func (p PaymentRecord) IsDiscountOnly() bool {
	return p.Amount.IsZero() && !p.Discount.IsEmpty()
}

type PaymentInput struct {
	amount   decimal.Decimal
	method   string
	discount *Discount
}

func NewPaymentInput(amount decimal.Decimal, method string, discount *Discount) (PaymentInput, error) {
	if amount.IsNegative() {
		return PaymentInput{}, ErrNegativePayment
	}
	method = strings.TrimSpace(method)
	if method == "" {
		method = DefaultPaymentMethod
	}
	return PaymentInput{amount: amount, method: method, discount: discount}, nil
}

func (p PaymentInput) Amount() decimal.Decimal { return p.amount }
func (p PaymentInput) Method() string          { return p.method }
func (p PaymentInput) Discount() *Discount     { return p.discount }

type PaymentOutcome struct {
	PaymentAmount    decimal.Decimal
	DiscountAmount   decimal.Decimal
	EffectivePayment decimal.Decimal
	PreviousBalance  decimal.Decimal
	NewBalance       decimal.Decimal
	NewStatus        Status
	Recorded         bool
}

type Transaction struct {
	referenceNo string
	amount      decimal.Decimal
	balance     decimal.Decimal
	status      Status
	payments    []PaymentRecord
}

// NewTransaction opens a ledger with the full amount outstanding.
func NewTransaction(referenceNo string, amount decimal.Decimal) (*Transaction, error) {
	referenceNo = strings.TrimSpace(referenceNo)
	if referenceNo == "" {
		return nil, ErrReferenceRequired
	}
	if amount.IsNegative() {
		return nil, ErrInvalidAmount
	}
	amount = amount.Round(2)
	return &Transaction{
		referenceNo: referenceNo,
		amount:      amount,
		balance:     amount,
		status:      DeriveStatus(amount, amount),
	}, nil
}

// ReconstructTransaction rebuilds a ledger from persisted state.
func ReconstructTransaction(referenceNo string, amount, balance decimal.Decimal, status Status, payments []PaymentRecord) (*Transaction, error) {
	if !status.IsValid() {
		return nil, ErrInvalidStatus
	}
	return &Transaction{
		referenceNo: referenceNo,
		amount:      amount,
		balance:     balance,
		status:      status,
		payments:    payments,
	}, nil
}

func (t *Transaction) ReferenceNo() string      { return t.referenceNo }
func (t *Transaction) Amount() decimal.Decimal  { return t.amount }
func (t *Transaction) Balance() decimal.Decimal { return t.balance }
func (t *Transaction) Status() Status           { return t.status }

func (t *Transaction) Payments() []PaymentRecord {
	out := make([]PaymentRecord, len(t.payments))
	copy(out, t.payments)
	return out
}

// ApplyPayment reduces the balance by the payment plus the discount granted on
// the full amount. The balance never goes below zero and never increases.
func (t *Transaction) ApplyPayment(in PaymentInput, now time.Time) PaymentOutcome {
	discountAmount := in.discount.AmountOn(t.amount)
	effective := in.amount.Add(discountAmount)

	newBalance := t.balance.Sub(effective)
	if newBalance.IsNegative() {
		newBalance = decimal.Zero
	}
	newBalance = newBalance.Round(2)

	outcome := PaymentOutcome{
		PaymentAmount:    in.amount,
		DiscountAmount:   discountAmount,
		EffectivePayment: effective,
		PreviousBalance:  t.balance,
		NewBalance:       newBalance,
		NewStatus:        DeriveStatus(newBalance, t.amount),
	}

	if in.amount.IsPositive() || !in.discount.IsEmpty() {
		kept := t.payments[:0:0]
		for _, p := range t.payments {
			if p.IsDiscountOnly() {
				continue
			}
			kept = append(kept, p)
		}
		t.payments = append(kept, PaymentRecord{
			Amount:   in.amount,
			Method:   in.method,
			PaidAt:   now,
			Discount: in.discount,
		})
		outcome.Recorded = true
	}

	t.balance = outcome.NewBalance
	t.status = outcome.NewStatus
	return outcome
}

// DeriveStatus maps a balance against the total due onto a ledger status.
func DeriveStatus(balance, amount decimal.Decimal) Status {
	switch {
	case balance.IsZero():
		return StatusPaid
	case balance.IsPositive() && balance.LessThan(amount):
		return StatusPartiallyPaid
	default:
		return StatusUnpaid
	}
}
