//go:build unit

package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// nopDBTX satisfies sqlc.DBTX for repositories whose queries are mocked.
type nopDBTX struct{}

func (nopDBTX) Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (nopDBTX) Query(context.Context, string, ...interface{}) (pgx.Rows, error) {
	return nil, nil
}

func (nopDBTX) QueryRow(context.Context, string, ...interface{}) pgx.Row {
	return nil
}
