package response

import (
	"icms/internal/usecase/commands"
)

const PaymentProcessedMessage = "Payment processed successfully"

type PaymentResponse struct {
	Message          string  `json:"message"`
	ReservationRefNo string  `json:"reservation_ref_no"`
	PaymentAmount    float64 `json:"payment_amount"`
	NewBalance       float64 `json:"new_balance"`
	NewStatus        string  `json:"new_status"`
}

func FromPaymentResult(r *commands.PaymentResult) *PaymentResponse {
	return &PaymentResponse{
		Message:          PaymentProcessedMessage,
		ReservationRefNo: r.ReservationRefNo,
		PaymentAmount:    r.PaymentAmount.InexactFloat64(),
		NewBalance:       r.NewBalance.InexactFloat64(),
		NewStatus:        r.NewStatus,
	}
}
