package queries

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionView is the read model of one ledger.
type TransactionView struct {
	ID               uuid.UUID       `json:"id"`
	ReservationRefNo string          `json:"reservation_ref_no"`
	Amount           decimal.Decimal `json:"amount"`
	Balance          decimal.Decimal `json:"balance"`
	Status           string          `json:"status"`
	Payments         []PaymentView   `json:"payments"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

type PaymentView struct {
	Amount        decimal.Decimal  `json:"amount"`
	Method        string           `json:"method"`
	PaidAt        time.Time        `json:"paid_at"`
	DiscountType  *string          `json:"discount_type,omitempty"`
	DiscountValue *decimal.Decimal `json:"discount_value,omitempty"`
}

// ClientContact is who to notify about a request.
type ClientContact struct {
	ReferenceNumber string
	ClientName      string
	ClientEmail     *string
}
