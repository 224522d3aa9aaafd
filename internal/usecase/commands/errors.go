package commands

import "icms/internal/pkg/errs"

var (
	ErrValidation              = errs.New("validation failed")
	ErrSampleNotFound          = errs.New("sample not found")
	ErrTransactionNotFound     = errs.New("transaction not found")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyKeyReused    = errs.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
