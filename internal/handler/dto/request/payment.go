package request

import (
	"icms/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type DiscountRequest struct {
	Type  string           `json:"type" binding:"required,oneof=percentage custom"`
	Value *decimal.Decimal `json:"value" binding:"required"`
}

type ProcessPaymentRequest struct {
	ReservationRefNo string           `json:"reservation_ref_no" binding:"required,max=64"`
	PaymentAmount    *decimal.Decimal `json:"payment_amount" binding:"required"`
	PaymentMethod    string           `json:"payment_method" binding:"omitempty,max=32"`
	Discount         *DiscountRequest `json:"discount"`
}

func (r *ProcessPaymentRequest) ToCommand(actorID *uuid.UUID, clientIP, idempotencyKey string) commands.ProcessPaymentCommand {
	cmd := commands.ProcessPaymentCommand{
		ReservationRefNo: r.ReservationRefNo,
		PaymentAmount:    *r.PaymentAmount,
		PaymentMethod:    r.PaymentMethod,
		ActorID:          actorID,
		ClientIP:         clientIP,
		IdempotencyKey:   idempotencyKey,
	}
	if r.Discount != nil {
		cmd.Discount = &commands.DiscountInput{
			Type:  r.Discount.Type,
			Value: *r.Discount.Value,
		}
	}
	return cmd
}
