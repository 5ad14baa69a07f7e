package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/dto"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/response"
)

type admissionService interface {
	Decide(ctx context.Context, req dto.DecisionRequest) (*dto.DecisionResult, error)
}

// AdmissionHandler exposes the admission decision endpoint.
type AdmissionHandler struct {
	service admissionService
}

// NewAdmissionHandler constructs the handler.
func NewAdmissionHandler(service admissionService) *AdmissionHandler {
	return &AdmissionHandler{service: service}
}

// Decide godoc
// @Summary Run the admission decision for a school and track period
// @Tags Announcement
// @Accept json
// @Produce json
// @Param request body dto.DecisionRequest true "Decision request"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/set-kelulusan [post]
func (h *AdmissionHandler) Decide(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.DecisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid request body"))
		return
	}
	result, err := h.service.Decide(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
