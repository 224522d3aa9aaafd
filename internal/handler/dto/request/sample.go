package request

type UpdateSampleStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateSampleStatusByIDRequest is the body of the legacy PUT route that
// carries the sample id in the payload.
type UpdateSampleStatusByIDRequest struct {
	ID     int64  `json:"id" binding:"required,gt=0"`
	Status string `json:"status" binding:"required"`
}
