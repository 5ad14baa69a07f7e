package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/dto"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/response"
)

type announcementService interface {
	Outcomes(ctx context.Context, filter models.OutcomeFilter) ([]models.OutcomeRow, *models.Pagination, error)
	ZoningRegistrations(ctx context.Context, periodID int64, filter models.ZoningFilter) ([]models.ZoningRow, *models.Pagination, error)
}

// AnnouncementHandler exposes the outcome and zoning listing endpoints.
type AnnouncementHandler struct {
	service announcementService
}

// NewAnnouncementHandler constructs the handler.
func NewAnnouncementHandler(service announcementService) *AnnouncementHandler {
	return &AnnouncementHandler{service: service}
}

// Outcomes godoc
// @Summary Per-school announcement list in ranking order
// @Tags Announcement
// @Produce json
// @Param id path int true "Track period ID"
// @Param sekolah_id query int false "School ID (required for department admins)"
// @Param status query string false "Outcome filter (PENDAFTARAN, LULUS, TIDAK_LULUS)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/kelulusan/{id} [get]
func (h *AnnouncementHandler) Outcomes(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	trackPeriodID, ok := parseInt64Param(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid track period id"))
		return
	}

	// School admins are scoped to their own school; department admins pick
	// one via query.
	var schoolID int64
	claims := claimsFromContext(c)
	if claims != nil && claims.Role == models.RoleJuniorAdmin && claims.SchoolID != nil {
		schoolID = *claims.SchoolID
	} else if value, ok := parseInt64Query(c, "sekolah_id"); ok {
		schoolID = value
	} else {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "sekolah_id is required"))
		return
	}

	filter := models.OutcomeFilter{SchoolID: schoolID, TrackPeriodID: trackPeriodID}
	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		if !models.ValidOutcomeStatus(raw) {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown status value"))
			return
		}
		status := models.OutcomeStatus(raw)
		filter.Outcome = &status
	}
	filter.Page, filter.PageSize = parsePagination(c)

	rows, pagination, err := h.service.Outcomes(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}

// Zoning godoc
// @Summary District-wide zoning registration list
// @Tags Announcement
// @Produce json
// @Param id path int true "Period ID"
// @Param filters query string false "JSON filters (sekolah_id, nisn)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/zonasi/{id} [get]
func (h *AnnouncementHandler) Zoning(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	periodID, ok := parseInt64Param(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid period id"))
		return
	}

	filters, err := dto.ParseFilters(c.Query("filters"), "sekolah_id", "nisn")
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := models.ZoningFilter{
		SchoolID: filters.Int64("sekolah_id"),
		NISN:     filters.String("nisn"),
	}
	filter.Page, filter.PageSize = parsePagination(c)

	rows, pagination, err := h.service.ZoningRegistrations(c.Request.Context(), periodID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, rows, pagination)
}
