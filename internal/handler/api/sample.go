package api

import (
	"net/http"
	"strconv"

	reqdto "icms/internal/handler/dto/request"
	resdto "icms/internal/handler/dto/response"
	"icms/internal/handler/httperr"
	"icms/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type SampleHandler struct {
	cmds commands.SampleCommands
}

func NewSampleHandler(cmds commands.SampleCommands) *SampleHandler {
	return &SampleHandler{cmds: cmds}
}

// @Summary Update sample status
// @Description Update a sample's status. Completing the last sample of a request completes the request.
// @Tags samples
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Sample ID"
// @Param request body reqdto.UpdateSampleStatusRequest true "New status"
// @Success 200 {object} resdto.SampleStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/samples/{id}/status [patch]
func (h *SampleHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		if err == nil {
			err = errInvalidSampleID
		}
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	var req reqdto.UpdateSampleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	h.updateStatus(c, id, req.Status)
}

// @Summary Update sample status (id in body)
// @Tags samples
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.UpdateSampleStatusByIDRequest true "Sample id and new status"
// @Success 200 {object} resdto.SampleStatusResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/samples/status [put]
func (h *SampleHandler) UpdateStatusByBody(c *gin.Context) {
	var req reqdto.UpdateSampleStatusByIDRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	h.updateStatus(c, req.ID, req.Status)
}

func (h *SampleHandler) updateStatus(c *gin.Context, id int64, status string) {
	result, err := h.cmds.UpdateStatus(c.Request.Context(), id, status)
	if err != nil {
		abortWithUseCaseError(c, err, "Failed to update sample status")
		return
	}
	c.JSON(http.StatusOK, resdto.FromSampleStatusResult(result))
}
