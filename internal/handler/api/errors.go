package api

import (
	"net/http"

	"icms/internal/handler/httperr"
	"icms/internal/pkg/errs"
	"icms/internal/usecase/commands"
	"icms/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

var useCaseErrors = []errorMapping{
	{target: commands.ErrValidation, status: http.StatusBadRequest},
	{target: commands.ErrSampleNotFound, status: http.StatusNotFound, message: "Sample not found"},
	{target: commands.ErrTransactionNotFound, status: http.StatusNotFound, message: "Transaction not found"},
	{target: queries.ErrTransactionNotFound, status: http.StatusNotFound, message: "Transaction not found"},
	{target: commands.ErrIdempotencyKeyReused, status: http.StatusConflict, message: "Idempotency-Key was already used with a different request"},
	{target: commands.ErrIdempotencyInProgress, status: http.StatusConflict, message: "A request with this Idempotency-Key is still being processed"},
}

// abortWithUseCaseError maps use case errors onto HTTP responses. Validation
// errors expose their own message. Anything unmapped is a 500 with fallback
// as the public message.
func abortWithUseCaseError(c *gin.Context, err error, fallback string) {
	for _, m := range useCaseErrors {
		if !errs.Is(err, m.target) {
			continue
		}
		msg := m.message
		if msg == "" {
			msg = err.Error()
		}
		httperr.AbortWithError(c, m.status, err, msg, nil)
		return
	}
	httperr.AbortWithError(c, http.StatusInternalServerError, err, fallback, nil)
}

var (
	errIdempotencyKeyTooLong = errs.New("idempotency key too long")
	errMissingReference      = errs.New("missing reservation reference")
	errInvalidSampleID       = errs.New("sample id must be positive")
)
