package readstore

import (
	"context"

	"icms/internal/infra"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/pgconv"
	"icms/internal/usecase/queries"
)

type RequestContactQueries interface {
	GetClientContactByReference(ctx context.Context, db sqlc.DBTX, referenceNumber string) (sqlc.GetClientContactByReferenceRow, error)
}

type RequestReadStore struct {
	queries RequestContactQueries
	db      sqlc.DBTX
}

func NewRequestReadStore(queries RequestContactQueries, db sqlc.DBTX) *RequestReadStore {
	return &RequestReadStore{
		queries: queries,
		db:      db,
	}
}

func (r *RequestReadStore) FindClientContact(ctx context.Context, referenceNo string) (*queries.ClientContact, error) {
	row, err := r.queries.GetClientContactByReference(ctx, r.db, referenceNo)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find client contact", err)
	}

	return &queries.ClientContact{
		ReferenceNumber: row.ReferenceNumber,
		ClientName:      row.ClientName,
		ClientEmail:     pgconv.StringPtrFromPgtype(row.ClientEmail),
	}, nil
}
