//go:build unit

package audit_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"icms/internal/infra/audit"
	"icms/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingExecutor struct {
	statements []string
	failOn     int
}

func (r *recordingExecutor) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	r.statements = append(r.statements, sql)
	if r.failOn > 0 && len(r.statements) == r.failOn {
		return pgconn.CommandTag{}, errors.New("connection reset")
	}
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

func TestNewSink(t *testing.T) {
	t.Run("nil executor", func(t *testing.T) {
		_, err := audit.NewSink(nil)
		assert.ErrorIs(t, err, audit.ErrNilExecutor)
	})

	t.Run("empty table name", func(t *testing.T) {
		_, err := audit.NewSink(&recordingExecutor{}, audit.WithTable(""))
		assert.ErrorIs(t, err, audit.ErrEmptyTableName)
	})
}

func TestSink_Append(t *testing.T) {
	userID := uuid.MustParse("5b0c7f3e-3f0a-4f0e-9d0a-3a0f6c1a2b3c")
	ip := "10.0.0.7"
	entry := commands.AuditEntry{
		UserID: &userID,
		Action: commands.ActionProcessPayment,
		Details: map[string]any{
			"reservation_ref_no": "REF-001",
			"new_status":         "partially_paid",
		},
		IPAddress: &ip,
		At:        time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC),
	}

	t.Run("creates the table once and inserts each entry", func(t *testing.T) {
		exec := &recordingExecutor{}
		sink, err := audit.NewSink(exec, audit.WithTable("audit_logs"))
		require.NoError(t, err)

		require.NoError(t, sink.Append(context.Background(), entry))
		require.NoError(t, sink.Append(context.Background(), entry))

		require.Len(t, exec.statements, 3)
		assert.Contains(t, exec.statements[0], `CREATE TABLE IF NOT EXISTS "audit_logs"`)

		insert := exec.statements[1]
		assert.Contains(t, insert, `INSERT INTO "audit_logs"`)
		assert.Contains(t, insert, "'process_payment'")
		assert.Contains(t, insert, "'"+userID.String()+"'")
		assert.Contains(t, insert, "'10.0.0.7'")
		assert.Contains(t, insert, `"reservation_ref_no":"REF-001"`)
		assert.Contains(t, insert, "::jsonb")
	})

	t.Run("anonymous entry stores nulls", func(t *testing.T) {
		exec := &recordingExecutor{}
		sink, err := audit.NewSink(exec)
		require.NoError(t, err)

		require.NoError(t, sink.Append(context.Background(), commands.AuditEntry{Action: "process_payment"}))

		require.Len(t, exec.statements, 2)
		assert.Contains(t, exec.statements[1], "NULL")
		assert.Contains(t, exec.statements[1], "'{}'::jsonb")
	})

	t.Run("table creation failure is retried on the next append", func(t *testing.T) {
		exec := &recordingExecutor{failOn: 1}
		sink, err := audit.NewSink(exec)
		require.NoError(t, err)

		assert.Error(t, sink.Append(context.Background(), entry))
		require.NoError(t, sink.Append(context.Background(), entry))
		assert.Len(t, exec.statements, 3)
	})

	t.Run("insert failure is returned", func(t *testing.T) {
		exec := &recordingExecutor{failOn: 2}
		sink, err := audit.NewSink(exec)
		require.NoError(t, err)

		assert.Error(t, sink.Append(context.Background(), entry))
	})
}
