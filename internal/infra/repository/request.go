package repository

import (
	"context"
	"time"

	"icms/internal/infra"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/pgconv"
	"icms/internal/usecase/shared"
)

type RequestWriteQueries interface {
	LockRequestByReference(ctx context.Context, db sqlc.DBTX, referenceNumber string) (sqlc.LockRequestByReferenceRow, error)
	CompleteRequest(ctx context.Context, db sqlc.DBTX, arg sqlc.CompleteRequestParams) (int64, error)
}

type RequestRepository struct {
	queries RequestWriteQueries
}

func NewRequestRepository(queries RequestWriteQueries) *RequestRepository {
	return &RequestRepository{queries: queries}
}

func (r *RequestRepository) LockByReference(ctx context.Context, tx sqlc.DBTX, referenceNo string) (*shared.RequestSnapshot, error) {
	row, err := r.queries.LockRequestByReference(ctx, tx, referenceNo)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock request", err)
	}
	return &shared.RequestSnapshot{
		ID:              row.ID,
		ReferenceNumber: referenceNo,
		Status:          row.Status,
	}, nil
}

func (r *RequestRepository) Complete(ctx context.Context, tx sqlc.DBTX, referenceNo string, at time.Time) (bool, error) {
	affected, err := r.queries.CompleteRequest(ctx, tx, sqlc.CompleteRequestParams{
		ReferenceNumber: referenceNo,
		DateCompleted:   pgconv.TimeToPgtype(at),
	})
	if err != nil {
		return false, infra.WrapRepoErr("failed to complete request", err)
	}
	return affected > 0, nil
}
