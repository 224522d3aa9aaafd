//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"icms/internal/domain/ledger"
	"icms/internal/infra/repository"
	sqlc "icms/internal/infra/sqlc/generated"
	"icms/internal/pkg/ptr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// DBLike is satisfied by a pool, a connection or an open transaction.
type DBLike = sqlc.DBTX

func CreateClient(t *testing.T, db DBLike, name string, email *string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO clients (name, email) VALUES ($1, $2) RETURNING id", name, email).Scan(&id)
	require.NoError(t, err)
	return id
}

func CreateRequest(t *testing.T, db DBLike, clientID uuid.UUID, ref, status string) uuid.UUID {
	t.Helper()

	var id uuid.UUID
	err := db.QueryRow(context.Background(),
		"INSERT INTO requests (reference_number, client_id, status) VALUES ($1, $2, $3) RETURNING id",
		ref, clientID, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateSample inserts a sample; a nil ref leaves it detached from any request.
func CreateSample(t *testing.T, db DBLike, serial string, ref *string, status string) int64 {
	t.Helper()

	var id int64
	err := db.QueryRow(context.Background(),
		"INSERT INTO samples (serial_number, reservation_ref_no, status) VALUES ($1, $2, $3) RETURNING id",
		serial, ref, status).Scan(&id)
	require.NoError(t, err)
	return id
}

// CreateTransaction opens a ledger through the repository, so it starts the
// way production ledgers do: balance equal to amount and status unpaid.
func CreateTransaction(t *testing.T, db DBLike, ref string, amount decimal.Decimal) uuid.UUID {
	t.Helper()

	tx, err := ledger.NewTransaction(ref, amount)
	require.NoError(t, err)
	id, err := repository.NewTransactionRepository(sqlc.New()).Create(context.Background(), db, tx)
	require.NoError(t, err)
	return id
}

// SeedRequest creates a client, a request and its transaction in one call.
func SeedRequest(t *testing.T, db DBLike, ref string, amount decimal.Decimal) uuid.UUID {
	t.Helper()

	clientID := CreateClient(t, db, "Acme Metrology", ptr.Of("lab-client@example.com"))
	CreateRequest(t, db, clientID, ref, "in_progress")
	return CreateTransaction(t, db, ref, amount)
}

type TransactionState struct {
	Balance  decimal.Decimal
	Status   string
	Payments int
}

func GetTransactionState(t *testing.T, db DBLike, ref string) TransactionState {
	t.Helper()

	var (
		state   TransactionState
		balance string
	)
	err := db.QueryRow(context.Background(),
		"SELECT balance::text, status, jsonb_array_length(payments) FROM transactions WHERE reservation_ref_no = $1",
		ref).Scan(&balance, &state.Status, &state.Payments)
	require.NoError(t, err)
	state.Balance, err = decimal.NewFromString(balance)
	require.NoError(t, err)
	return state
}

func GetRequestStatus(t *testing.T, db DBLike, ref string) (string, *time.Time) {
	t.Helper()

	var (
		status    string
		completed *time.Time
	)
	err := db.QueryRow(context.Background(),
		"SELECT status, date_completed FROM requests WHERE reference_number = $1", ref).Scan(&status, &completed)
	require.NoError(t, err)
	return status, completed
}

func CountAuditLogs(t *testing.T, db DBLike, action string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM audit_logs WHERE action = $1", action).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables except the migration bookkeeping
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
