package response

import (
	"icms/internal/usecase/queries"
)

type PaymentRecordResponse struct {
	Amount        float64  `json:"amount"`
	Method        string   `json:"method"`
	PaidAt        int64    `json:"paid_at"`
	DiscountType  *string  `json:"discount_type,omitempty"`
	DiscountValue *float64 `json:"discount_value,omitempty"`
}

type TransactionResponse struct {
	ID               string                   `json:"id"`
	ReservationRefNo string                   `json:"reservation_ref_no"`
	Amount           float64                  `json:"amount"`
	Balance          float64                  `json:"balance"`
	Status           string                   `json:"status"`
	Payments         []*PaymentRecordResponse `json:"payments"`
	CreatedAt        int64                    `json:"created_at"`
	UpdatedAt        int64                    `json:"updated_at"`
}

func FromTransactionView(v *queries.TransactionView) *TransactionResponse {
	payments := make([]*PaymentRecordResponse, len(v.Payments))
	for i, p := range v.Payments {
		item := &PaymentRecordResponse{
			Amount:       p.Amount.InexactFloat64(),
			Method:       p.Method,
			PaidAt:       p.PaidAt.Unix(),
			DiscountType: p.DiscountType,
		}
		if p.DiscountValue != nil {
			value := p.DiscountValue.InexactFloat64()
			item.DiscountValue = &value
		}
		payments[i] = item
	}

	return &TransactionResponse{
		ID:               v.ID.String(),
		ReservationRefNo: v.ReservationRefNo,
		Amount:           v.Amount.InexactFloat64(),
		Balance:          v.Balance.InexactFloat64(),
		Status:           v.Status,
		Payments:         payments,
		CreatedAt:        v.CreatedAt.Unix(),
		UpdatedAt:        v.UpdatedAt.Unix(),
	}
}
