package ledger

import "errors"

type Status string

const (
	StatusUnpaid        Status = "unpaid"
	StatusPartiallyPaid Status = "partially_paid"
	StatusPaid          Status = "paid"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusUnpaid, StatusPartiallyPaid, StatusPaid:
		return true
	default:
		return false
	}
}

const DefaultPaymentMethod = "cash"

var (
	ErrNegativePayment      = errors.New("payment amount must not be negative")
	ErrInvalidDiscountType  = errors.New("discount type must be percentage or custom")
	ErrInvalidDiscountValue = errors.New("discount value must be between 0 and 100")
	ErrInvalidAmount        = errors.New("transaction amount must not be negative")
	ErrInvalidStatus        = errors.New("invalid transaction status")
	ErrReferenceRequired    = errors.New("reservation reference number is required")
)
