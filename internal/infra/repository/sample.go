package repository

import (
	"context"

	"icms/internal/domain/sample"
	"icms/internal/infra"
	"icms/internal/infra/repository/converter"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5/pgtype"
)

type SampleWriteQueries interface {
	UpdateSampleStatus(ctx context.Context, db sqlc.DBTX, arg sqlc.UpdateSampleStatusParams) (sqlc.UpdateSampleStatusRow, error)
	CountIncompleteSamplesByReference(ctx context.Context, db sqlc.DBTX, reservationRefNo pgtype.Text) (int64, error)
}

type SampleRepository struct {
	queries SampleWriteQueries
}

func NewSampleRepository(queries SampleWriteQueries) *SampleRepository {
	return &SampleRepository{queries: queries}
}

func (r *SampleRepository) UpdateStatus(ctx context.Context, tx sqlc.DBTX, id int64, status sample.Status) (*sample.Sample, error) {
	row, err := r.queries.UpdateSampleStatus(ctx, tx, sqlc.UpdateSampleStatusParams{
		ID:     id,
		Status: status.String(),
	})
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("sample not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to update sample status", err)
	}
	return converter.SampleFromUpdatedRow(row), nil
}

func (r *SampleRepository) CountIncomplete(ctx context.Context, tx sqlc.DBTX, referenceNo string) (int64, error) {
	n, err := r.queries.CountIncompleteSamplesByReference(ctx, tx, pgconv.StringToPgtype(referenceNo))
	if err != nil {
		return 0, infra.WrapRepoErr("failed to count incomplete samples", err)
	}
	return n, nil
}
