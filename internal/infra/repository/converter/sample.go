package converter

import (
	"icms/internal/domain/sample"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/pgconv"
)

func SampleFromUpdatedRow(row sqlc.UpdateSampleStatusRow) *sample.Sample {
	return sample.Reconstruct(
		row.ID,
		row.SerialNumber,
		pgconv.StringPtrFromPgtype(row.ReservationRefNo),
		sample.Status(row.Status),
	)
}
