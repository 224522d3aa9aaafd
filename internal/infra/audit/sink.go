package audit

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"icms/internal/pkg/errs"
	"icms/internal/usecase/commands"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	jsoniter "github.com/json-iterator/go"
)

const (
	defaultTableName = "audit_logs"
	dialectPostgres  = "postgres"
	castJsonb        = "?::jsonb"
	castTimestamp    = "?::timestamptz"
	colUserID        = "user_id"
	colAction        = "action"
	colDetails       = "details"
	colIPAddress     = "ip_address"
	colCreatedAt     = "created_at"
)

var (
	ErrEmptyTableName = errs.New("audit table name must not be empty")
	ErrNilExecutor    = errs.New("audit sink requires a database executor")

	json = jsoniter.ConfigCompatibleWithStandardLibrary
)

// Executor is satisfied by *pgxpool.Pool and pgx.Tx.
type Executor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Option func(*Sink) error

func WithTable(table string) Option {
	return func(s *Sink) error {
		if table == "" {
			return ErrEmptyTableName
		}
		s.table = table
		return nil
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Sink) error {
		s.logger = logger
		return nil
	}
}

// Sink appends audit entries to PostgreSQL. The table is created on first use
// when it does not exist yet.
type Sink struct {
	db     Executor
	table  string
	logger *slog.Logger

	mu    sync.Mutex
	ready bool
}

var _ commands.AuditSink = (*Sink)(nil)

func NewSink(db Executor, options ...Option) (*Sink, error) {
	if db == nil {
		return nil, ErrNilExecutor
	}

	s := &Sink{
		db:     db,
		table:  defaultTableName,
		logger: slog.Default(),
	}
	for _, opt := range options {
		if err := opt(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (s *Sink) Append(ctx context.Context, entry commands.AuditEntry) error {
	if err := s.ensureTable(ctx); err != nil {
		return err
	}

	query, err := s.buildInsert(entry)
	if err != nil {
		return err
	}

	start := time.Now()
	if _, err := s.db.Exec(ctx, query); err != nil {
		s.logger.Error("audit insert failed", "action", entry.Action, "error", err.Error())
		return errs.Wrap(err, "insert audit entry")
	}
	s.logger.Debug("audit entry appended",
		"action", entry.Action,
		"duration_ms", time.Since(start).Milliseconds())

	return nil
}

func (s *Sink) buildInsert(entry commands.AuditEntry) (string, error) {
	details := entry.Details
	if details == nil {
		details = map[string]any{}
	}
	payload, err := json.Marshal(details)
	if err != nil {
		return "", errs.Wrap(err, "encode audit details")
	}

	at := entry.At
	if at.IsZero() {
		at = time.Now()
	}

	record := goqu.Record{
		colUserID:    nil,
		colAction:    entry.Action,
		colDetails:   goqu.L(castJsonb, string(payload)),
		colIPAddress: nil,
		colCreatedAt: goqu.L(castTimestamp, at.UTC().Format(time.RFC3339Nano)),
	}
	if entry.UserID != nil {
		record[colUserID] = entry.UserID.String()
	}
	if entry.IPAddress != nil {
		record[colIPAddress] = *entry.IPAddress
	}

	query, _, err := goqu.Dialect(dialectPostgres).
		Insert(s.table).
		Rows(record).
		ToSQL()
	if err != nil {
		return "", errs.Wrap(err, "build audit insert")
	}
	return query, nil
}

func (s *Sink) ensureTable(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ready {
		return nil
	}

	ddl := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
    id         BIGSERIAL PRIMARY KEY,
    user_id    UUID NULL,
    action     TEXT NOT NULL,
    details    JSONB NOT NULL DEFAULT '{}'::jsonb,
    ip_address TEXT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`, pgx.Identifier{s.table}.Sanitize())

	if _, err := s.db.Exec(ctx, ddl); err != nil {
		return errs.Wrap(err, "create audit table")
	}
	s.ready = true
	return nil
}
