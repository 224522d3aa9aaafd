package queries

import (
	"context"

	"icms/internal/infra"
	"icms/internal/pkg/errs"
)

var ErrRequestNotFound = errs.New("request not found")

type RequestReadStore interface {
	FindClientContact(ctx context.Context, referenceNo string) (*ClientContact, error)
}

type RequestQueries interface {
	GetClientContact(ctx context.Context, referenceNo string) (*ClientContact, error)
}

type requestQueriesImpl struct {
	store RequestReadStore
}

func NewRequestQueries(store RequestReadStore) RequestQueries {
	return &requestQueriesImpl{store: store}
}

func (q *requestQueriesImpl) GetClientContact(ctx context.Context, referenceNo string) (*ClientContact, error) {
	contact, err := q.store.FindClientContact(ctx, referenceNo)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.Mark(err, ErrRequestNotFound)
		}
		return nil, err
	}
	return contact, nil
}
