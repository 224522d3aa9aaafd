package sample

import "strings"

type Sample struct {
	id               int64
	serialNumber     string
	reservationRefNo *string
	status           Status
}

func Reconstruct(id int64, serialNumber string, reservationRefNo *string, status Status) *Sample {
	if reservationRefNo != nil && strings.TrimSpace(*reservationRefNo) == "" {
		reservationRefNo = nil
	}
	return &Sample{
		id:               id,
		serialNumber:     serialNumber,
		reservationRefNo: reservationRefNo,
		status:           status,
	}
}

func (s *Sample) ID() int64                 { return s.id }
func (s *Sample) SerialNumber() string      { return s.serialNumber }
func (s *Sample) ReservationRefNo() *string { return s.reservationRefNo }
func (s *Sample) Status() Status            { return s.status }

// CanCascade reports whether completing this sample may complete its request.
// Samples without a reservation reference never cascade.
func (s *Sample) CanCascade() bool {
	return s.status.IsCompleted() && s.reservationRefNo != nil
}

// ShouldCompleteRequest reports whether a request with the given number of
// non-completed samples is ready to be completed.
func ShouldCompleteRequest(incompleteSiblings int64) bool {
	return incompleteSiblings == 0
}
