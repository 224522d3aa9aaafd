//go:build e2e

package payment_test

import (
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"

	"icms/internal/domain/user"
	"icms/internal/handler/dto/response"
	"icms/internal/usecase/commands"
	"icms/tests/common/authtest"
	"icms/tests/common/builder"
	"icms/tests/common/dbtest"
	"icms/tests/common/httptest"
	"icms/tests/common/testutil"
	"icms/tests/e2e"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	paymentsURL    = "/api/transactions/payments"
	transactionURL = "/api/transactions/"
)

type PaymentSuite struct {
	e2e.SharedSuite
}

func TestPaymentSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(PaymentSuite))
}

func (s *PaymentSuite) pay(body any, headers map[string]string) *response.PaymentResponse {
	rec := httptest.PerformRequestWithHeaders(s.T(), s.Router, http.MethodPost, paymentsURL, body, headers)
	var resp response.PaymentResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &resp)
	return &resp
}

// =============================================================================
// TestProcessPayment
// =============================================================================

func (s *PaymentSuite) TestProcessPayment() {
	s.Run("Normal case: payments walk the ledger down to paid", func() {
		t := s.T()
		dbtest.SeedRequest(t, s.DB, "REF-001", decimal.RequireFromString("1000"))

		first := s.pay(builder.NewTransactionBuilder().WithPayment("400").BuildPaymentRequestDTO(), nil)
		s.Equal(response.PaymentProcessedMessage, first.Message)
		s.InDelta(600.0, first.NewBalance, 0.001)
		s.Equal("partially_paid", first.NewStatus)

		second := s.pay(builder.NewTransactionBuilder().WithPayment("600").BuildPaymentRequestDTO(), nil)
		s.InDelta(0.0, second.NewBalance, 0.001)
		s.Equal("paid", second.NewStatus)

		state := dbtest.GetTransactionState(t, s.DB, "REF-001")
		s.True(state.Balance.IsZero())
		s.Equal("paid", state.Status)
		s.Equal(2, state.Payments)
	})

	s.Run("Normal case: overpayment clamps the balance at zero", func() {
		t := s.T()
		dbtest.SeedRequest(t, s.DB, "REF-001", decimal.RequireFromString("1000"))

		resp := s.pay(builder.NewTransactionBuilder().WithPayment("1500").BuildPaymentRequestDTO(), nil)
		s.InDelta(0.0, resp.NewBalance, 0.001)
		s.Equal("paid", resp.NewStatus)
	})

	s.Run("Normal case: discount reduces the balance before the payment", func() {
		t := s.T()
		dbtest.SeedRequest(t, s.DB, "REF-001", decimal.RequireFromString("1000"))

		body := builder.NewTransactionBuilder().WithPayment("0").WithDiscount("percentage", "10").BuildPaymentRequestDTO()
		resp := s.pay(body, nil)
		s.InDelta(900.0, resp.NewBalance, 0.001)
		s.Equal("partially_paid", resp.NewStatus)
	})

	s.Run("Normal case: audit row is written with the caller", func() {
		t := s.T()
		dbtest.SeedRequest(t, s.DB, "REF-001", decimal.RequireFromString("1000"))
		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, uuid.New(), user.RoleAccountant)

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL,
			builder.NewTransactionBuilder().BuildPaymentRequestDTO(), token)
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, nil)

		require.Eventually(t, func() bool {
			return dbtest.CountAuditLogs(t, s.DB, commands.ActionProcessPayment) == 1
		}, e2e.EventuallyTimeout, e2e.EventuallyTick)
	})

	s.Run("Abnormal case: unknown reference returns 404", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, paymentsURL,
			builder.NewTransactionBuilder().WithReference("REF-404").BuildPaymentRequestDTO(), "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Transaction not found")
	})

	s.Run("Abnormal case: negative amount is rejected and nothing changes", func() {
		t := s.T()
		dbtest.SeedRequest(t, s.DB, "REF-001", decimal.RequireFromString("1000"))

		body := testutil.DtoMap(t, builder.NewTransactionBuilder().BuildPaymentRequestDTO(),
			testutil.Field("payment_amount", -5))
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, paymentsURL, body, "")
		httptest.AssertErrorResponse(t, rec, http.StatusBadRequest, "")

		state := dbtest.GetTransactionState(t, s.DB, "REF-001")
		s.True(state.Balance.Equal(decimal.RequireFromString("1000")))
		s.Equal(0, state.Payments)
	})
}

// =============================================================================
// TestConcurrentPayments
// =============================================================================

func (s *PaymentSuite) TestConcurrentPayments() {
	s.Run("Normal case: parallel payments are all recorded", func() {
		t := s.T()
		dbtest.SeedRequest(t, s.DB, "REF-001", decimal.RequireFromString("1000"))

		const workers = 10
		body := builder.NewTransactionBuilder().WithPayment("100").BuildPaymentRequestDTO()

		reqs := make([]*http.Request, workers)
		for i := range workers {
			reqs[i] = httptest.NewRequest(t, http.MethodPost, paymentsURL, body)
		}

		var wg sync.WaitGroup
		codes := make([]int, workers)
		for i := range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				rec := nethttptest.NewRecorder()
				s.Router.ServeHTTP(rec, reqs[i])
				codes[i] = rec.Code
			}()
		}
		wg.Wait()

		for _, code := range codes {
			s.Equal(http.StatusOK, code)
		}
		state := dbtest.GetTransactionState(t, s.DB, "REF-001")
		s.True(state.Balance.IsZero(), "balance = %s", state.Balance)
		s.Equal("paid", state.Status)
		s.Equal(workers, state.Payments)
	})
}

// =============================================================================
// TestGetTransaction
// =============================================================================

func (s *PaymentSuite) TestGetTransaction() {
	s.Run("Normal case: ledger lists the recorded payments", func() {
		t := s.T()
		dbtest.SeedRequest(t, s.DB, "REF-001", decimal.RequireFromString("1000"))
		s.pay(builder.NewTransactionBuilder().WithDiscount("custom", "50").BuildPaymentRequestDTO(), nil)

		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, uuid.New(), user.RoleAccountant)
		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, transactionURL+"REF-001", nil, token)

		var body response.TransactionResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		s.Equal("REF-001", body.ReservationRefNo)
		s.InDelta(100.0, body.Balance, 0.001)
		s.Require().Len(body.Payments, 1)
		s.Require().NotNil(body.Payments[0].DiscountType)
		s.Equal("custom", *body.Payments[0].DiscountType)
	})

	s.Run("Abnormal case: anonymous read is rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, transactionURL+"REF-001", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
