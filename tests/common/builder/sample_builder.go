//go:build unit || e2e

package builder

import (
	"icms/internal/domain/sample"
	reqdto "icms/internal/handler/dto/request"
	"icms/internal/pkg/ptr"
	"icms/internal/usecase/queries"
)

type SampleBuilder struct {
	ID               int64
	SerialNumber     string
	ReservationRefNo *string
	Status           sample.Status
	ClientName       string
	ClientEmail      *string
}

func NewSampleBuilder() *SampleBuilder {
	return &SampleBuilder{
		ID:               1,
		SerialNumber:     "SN-0001",
		ReservationRefNo: ptr.Of("REF-001"),
		Status:           sample.StatusCompleted,
		ClientName:       "Acme Metrology",
		ClientEmail:      ptr.Of("lab-client@example.com"),
	}
}

func (b *SampleBuilder) With(mutate func(*SampleBuilder)) *SampleBuilder {
	mutate(b)
	return b
}

func (b *SampleBuilder) WithID(id int64) *SampleBuilder {
	b.ID = id
	return b
}

func (b *SampleBuilder) WithStatus(status sample.Status) *SampleBuilder {
	b.Status = status
	return b
}

func (b *SampleBuilder) WithoutReference() *SampleBuilder {
	b.ReservationRefNo = nil
	return b
}

func (b *SampleBuilder) WithClientEmail(email *string) *SampleBuilder {
	b.ClientEmail = email
	return b
}

// Build methods
func (b *SampleBuilder) BuildDomain() *sample.Sample {
	return sample.Reconstruct(b.ID, b.SerialNumber, b.ReservationRefNo, b.Status)
}

func (b *SampleBuilder) BuildClientContact() *queries.ClientContact {
	return &queries.ClientContact{
		ReferenceNumber: ptr.Deref(b.ReservationRefNo, ""),
		ClientName:      b.ClientName,
		ClientEmail:     b.ClientEmail,
	}
}

func (b *SampleBuilder) BuildUpdateStatusRequestDTO() reqdto.UpdateSampleStatusRequest {
	return reqdto.UpdateSampleStatusRequest{Status: b.Status.String()}
}

func (b *SampleBuilder) BuildUpdateStatusByIDRequestDTO() reqdto.UpdateSampleStatusByIDRequest {
	return reqdto.UpdateSampleStatusByIDRequest{ID: b.ID, Status: b.Status.String()}
}
