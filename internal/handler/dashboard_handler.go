package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/dto"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/response"
)

type dashboardService interface {
	Elementary(ctx context.Context, schoolID, trackPeriodID int64) (*dto.ElementaryDashboardResponse, error)
	Junior(ctx context.Context, schoolID, trackPeriodID int64) (*dto.JuniorDashboardResponse, error)
	District(ctx context.Context, trackPeriodID int64) (*dto.DistrictDashboardResponse, error)
	TopSchools(ctx context.Context, trackPeriodID int64) ([]dto.TopSchoolEntry, error)
	SchoolApplicants(ctx context.Context, trackPeriodID int64, filter models.SchoolFilter) ([]dto.SchoolApplicantsEntry, *models.Pagination, error)
}

// DashboardHandler wires the dashboard service to HTTP endpoints.
type DashboardHandler struct {
	service dashboardService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(service dashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

// Elementary godoc
// @Summary Origin school dashboard counters
// @Tags Dashboard
// @Produce json
// @Param id path int true "School ID"
// @Param periode_jalur_id query int true "Track period ID"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/dashboard-sd/{id} [get]
func (h *DashboardHandler) Elementary(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	schoolID, ok := parseInt64Param(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid school id"))
		return
	}
	trackPeriodID, ok := parseInt64Query(c, "periode_jalur_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "periode_jalur_id is required"))
		return
	}
	summary, err := h.service.Elementary(c.Request.Context(), schoolID, trackPeriodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// Junior godoc
// @Summary Destination school dashboard counters
// @Tags Dashboard
// @Produce json
// @Param id path int true "School ID"
// @Param periode_jalur_id query int true "Track period ID"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/dashboard-smp/{id} [get]
func (h *DashboardHandler) Junior(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	schoolID, ok := parseInt64Param(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid school id"))
		return
	}
	trackPeriodID, ok := parseInt64Query(c, "periode_jalur_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "periode_jalur_id is required"))
		return
	}
	summary, err := h.service.Junior(c.Request.Context(), schoolID, trackPeriodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// District godoc
// @Summary District-wide dashboard counters
// @Tags Dashboard
// @Produce json
// @Param id path int true "Track period ID"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/dashboard-dinas/{id} [get]
func (h *DashboardHandler) District(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	trackPeriodID, ok := parseInt64Param(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid track period id"))
		return
	}
	summary, err := h.service.District(c.Request.Context(), trackPeriodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// TopSchools godoc
// @Summary Ten most-applied-to schools for a track period
// @Tags Dashboard
// @Produce json
// @Param id path int true "Track period ID"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/pendaftar-per-sekolah/{id} [get]
func (h *DashboardHandler) TopSchools(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	trackPeriodID, ok := parseInt64Param(c, "id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid track period id"))
		return
	}
	entries, err := h.service.TopSchools(c.Request.Context(), trackPeriodID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, nil)
}

// SchoolApplicants godoc
// @Summary Applicant volume against zoning quota per junior school
// @Tags Dashboard
// @Produce json
// @Param periode_jalur_id query int true "Track period ID"
// @Param filters query string false "JSON filters (sekolah_id, npsn)"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /pengumuman/kuota-pendaftar [get]
func (h *DashboardHandler) SchoolApplicants(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	trackPeriodID, ok := parseInt64Query(c, "periode_jalur_id")
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "periode_jalur_id is required"))
		return
	}

	filters, err := dto.ParseFilters(c.Query("filters"), "sekolah_id", "npsn")
	if err != nil {
		response.Error(c, err)
		return
	}

	filter := models.SchoolFilter{
		SchoolID: filters.Int64("sekolah_id"),
		NPSN:     filters.String("npsn"),
	}
	filter.Page, filter.PageSize = parsePagination(c)

	entries, pagination, err := h.service.SchoolApplicants(c.Request.Context(), trackPeriodID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, entries, pagination)
}
