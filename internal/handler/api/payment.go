package api

import (
	"net/http"
	"strings"

	reqdto "icms/internal/handler/dto/request"
	resdto "icms/internal/handler/dto/response"
	"icms/internal/handler/httperr"
	"icms/internal/handler/middleware"
	"icms/internal/usecase/commands"
	"icms/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	headerIdempotencyKey   = "Idempotency-Key"
	headerIdempotentReplay = "Idempotent-Replayed"
	maxIdempotencyKeyLen   = 128
)

type TransactionHandler struct {
	cmds commands.PaymentCommands
	q    queries.TransactionQueries
}

func NewTransactionHandler(cmds commands.PaymentCommands, q queries.TransactionQueries) *TransactionHandler {
	return &TransactionHandler{cmds: cmds, q: q}
}

// @Summary Process payment
// @Description Apply a payment and optional discount to a reservation ledger
// @Tags transactions
// @Accept json
// @Produce json
// @Param Idempotency-Key header string false "Client generated key that makes retries safe"
// @Param request body reqdto.ProcessPaymentRequest true "Payment request"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/transactions/payments [post]
func (h *TransactionHandler) ProcessPayment(c *gin.Context) {
	var req reqdto.ProcessPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	key := strings.TrimSpace(c.GetHeader(headerIdempotencyKey))
	if len(key) > maxIdempotencyKeyLen {
		httperr.AbortWithError(c, http.StatusBadRequest, errIdempotencyKeyTooLong, "Idempotency-Key is too long", nil)
		return
	}

	var actorID *uuid.UUID
	if id, ok := middleware.GetUserID(c); ok {
		actorID = &id
	}

	result, err := h.cmds.ProcessPayment(c.Request.Context(), req.ToCommand(actorID, c.ClientIP(), key))
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to process payment")
		return
	}

	if result.Replayed {
		c.Header(headerIdempotentReplay, "true")
	}
	c.JSON(http.StatusOK, resdto.FromPaymentResult(result))
}

// @Summary Get transaction
// @Description Get the ledger of a reservation with its payment history
// @Tags transactions
// @Produce json
// @Security BearerAuth
// @Param ref path string true "Reservation reference number"
// @Success 200 {object} resdto.TransactionResponse
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/transactions/{ref} [get]
func (h *TransactionHandler) Get(c *gin.Context) {
	ref := strings.TrimSpace(c.Param("ref"))
	if ref == "" {
		httperr.AbortWithError(c, http.StatusBadRequest, errMissingReference, "Invalid reference", nil)
		return
	}

	view, err := h.q.GetByReference(c.Request.Context(), ref)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to load transaction")
		return
	}
	c.JSON(http.StatusOK, resdto.FromTransactionView(view))
}
