package response

import "icms/internal/usecase/commands"

type SampleStatusResponse struct {
	Message          string `json:"message"`
	RequestCompleted bool   `json:"request_completed"`
}

func FromSampleStatusResult(r *commands.UpdateSampleStatusResult) *SampleStatusResponse {
	return &SampleStatusResponse{
		Message:          r.Message,
		RequestCompleted: r.RequestCompleted,
	}
}
