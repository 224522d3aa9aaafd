//go:build e2e

package sample_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"icms/internal/domain/user"
	"icms/internal/handler/dto/response"
	"icms/tests/common/authtest"
	"icms/tests/common/dbtest"
	"icms/tests/common/httptest"
	"icms/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const sampleStatusURL = "/api/samples/%d/status"

type SampleSuite struct {
	e2e.SharedSuite
}

func TestSampleSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SampleSuite))
}

func (s *SampleSuite) technicianToken() string {
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), uuid.New(), user.RoleTechnician)
}

func (s *SampleSuite) seedRequest(ref string, email *string, statuses ...string) []int64 {
	t := s.T()
	clientID := dbtest.CreateClient(t, s.DB, "Acme Metrology", email)
	dbtest.CreateRequest(t, s.DB, clientID, ref, "in_progress")

	ids := make([]int64, len(statuses))
	for i, status := range statuses {
		ids[i] = dbtest.CreateSample(t, s.DB, fmt.Sprintf("SN-%04d", i+1), &ref, status)
	}
	return ids
}

func (s *SampleSuite) complete(id int64, token string) *response.SampleStatusResponse {
	rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(sampleStatusURL, id),
		map[string]string{"status": "completed"}, token)
	var body response.SampleStatusResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	return &body
}

// =============================================================================
// TestCompletionCascade
// =============================================================================

func (s *SampleSuite) TestCompletionCascade() {
	s.Run("Normal case: last sample completes the request and notifies the client", func() {
		t := s.T()
		email := "lab-client@example.com"
		ids := s.seedRequest("REF-001", &email, "in_progress", "in_progress")
		token := s.technicianToken()

		first := s.complete(ids[0], token)
		s.False(first.RequestCompleted)
		status, completedAt := dbtest.GetRequestStatus(t, s.DB, "REF-001")
		s.Equal("in_progress", status)
		s.Nil(completedAt)

		second := s.complete(ids[1], token)
		s.True(second.RequestCompleted)
		status, completedAt = dbtest.GetRequestStatus(t, s.DB, "REF-001")
		s.Equal("completed", status)
		s.NotNil(completedAt)

		require.Eventually(t, func() bool { return len(s.Notifier.Notices()) == 1 },
			e2e.EventuallyTimeout, e2e.EventuallyTick)
		notice := s.Notifier.Notices()[0]
		s.Equal(email, notice.Email)
		s.Equal("REF-001", notice.ReferenceNumber)
		s.Equal("Acme Metrology", notice.Name)
	})

	s.Run("Normal case: a cancelled sibling keeps the request open", func() {
		email := "lab-client@example.com"
		ids := s.seedRequest("REF-001", &email, "in_progress", "cancelled")

		body := s.complete(ids[0], s.technicianToken())
		s.False(body.RequestCompleted)
	})

	s.Run("Normal case: repeating the last completion does not notify twice", func() {
		t := s.T()
		email := "lab-client@example.com"
		ids := s.seedRequest("REF-001", &email, "in_progress")
		token := s.technicianToken()

		s.True(s.complete(ids[0], token).RequestCompleted)
		s.False(s.complete(ids[0], token).RequestCompleted)

		require.Eventually(t, func() bool { return len(s.Notifier.Notices()) == 1 },
			e2e.EventuallyTimeout, e2e.EventuallyTick)
		require.Never(t, func() bool { return len(s.Notifier.Notices()) > 1 },
			time.Second, e2e.EventuallyTick)
	})

	s.Run("Normal case: client without email gets no notice", func() {
		ids := s.seedRequest("REF-001", nil, "in_progress")

		s.True(s.complete(ids[0], s.technicianToken()).RequestCompleted)
		require.Never(s.T(), func() bool { return len(s.Notifier.Notices()) > 0 },
			time.Second, e2e.EventuallyTick)
	})

	s.Run("Normal case: detached sample only changes itself", func() {
		t := s.T()
		id := dbtest.CreateSample(t, s.DB, "SN-9999", nil, "in_progress")

		s.False(s.complete(id, s.technicianToken()).RequestCompleted)
	})

	s.Run("Normal case: legacy PUT route cascades the same way", func() {
		t := s.T()
		email := "lab-client@example.com"
		ids := s.seedRequest("REF-002", &email, "pending")

		rec := httptest.PerformRequest(t, s.Router, http.MethodPut, "/api/samples/status",
			map[string]any{"id": ids[0], "status": "completed"}, s.technicianToken())
		var body response.SampleStatusResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &body)
		s.True(body.RequestCompleted)
	})
}

// =============================================================================
// TestUpdateStatusErrors
// =============================================================================

func (s *SampleSuite) TestUpdateStatusErrors() {
	s.Run("Abnormal case: unknown sample returns 404", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(sampleStatusURL, 424242),
			map[string]string{"status": "completed"}, s.technicianToken())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Sample not found")
	})

	s.Run("Abnormal case: unknown status returns 400", func() {
		ids := s.seedRequest("REF-001", nil, "pending")
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(sampleStatusURL, ids[0]),
			map[string]string{"status": "shipped"}, s.technicianToken())
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("Abnormal case: client role is forbidden", func() {
		token := authtest.NewJWTHelper(s.Config.JWT).GenerateToken(s.T(), uuid.New(), user.RoleClient)
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(sampleStatusURL, 1),
			map[string]string{"status": "completed"}, token)
		httptest.AssertErrorResponse(s.T(), rec, http.StatusForbidden, "Insufficient permissions")
	})

	s.Run("Abnormal case: anonymous caller is rejected", func() {
		rec := httptest.PerformRequest(s.T(), s.Router, http.MethodPatch, fmt.Sprintf(sampleStatusURL, 1),
			map[string]string{"status": "completed"}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
