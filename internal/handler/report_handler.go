package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/response"
)

type reportService interface {
	StreamXLSX(ctx context.Context, filter models.ReportFilter, out io.Writer) error
	RenderCSV(ctx context.Context, filter models.ReportFilter) ([]byte, error)
	RenderPDF(ctx context.Context, filter models.ReportFilter) ([]byte, error)
}

type zoningTrackResolver interface {
	ZoningTrackPeriod(ctx context.Context, periodID int64) (*models.TrackPeriod, error)
}

// ReportHandler exposes the registration report download endpoint.
type ReportHandler struct {
	service  reportService
	periods  zoningTrackResolver
	filename string
}

// NewReportHandler constructs the handler.
func NewReportHandler(service reportService, periods zoningTrackResolver, filename string) *ReportHandler {
	if filename == "" {
		filename = "laporan-pendaftaran"
	}
	return &ReportHandler{service: service, periods: periods, filename: filename}
}

// Download godoc
// @Summary Download the flat registration report
// @Tags Report
// @Produce application/octet-stream
// @Param periode_jalur_id query int false "Track period ID"
// @Param periode_id query int false "Period ID, resolved to its zoning track when periode_jalur_id is absent"
// @Param sekolah_id query int false "School ID (ignored for school admins)"
// @Param status query string false "Outcome filter (PENDAFTARAN, LULUS, TIDAK_LULUS)"
// @Param format query string false "Export format: xlsx (default), csv, pdf"
// @Success 200 {file} binary
// @Router /pengumuman/laporan-pendaftaran [get]
func (h *ReportHandler) Download(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}

	var filter models.ReportFilter
	if value, ok := parseInt64Query(c, "periode_jalur_id"); ok {
		filter.TrackPeriodID = &value
	} else if periodID, ok := parseInt64Query(c, "periode_id"); ok && h.periods != nil {
		zoning, err := h.periods.ZoningTrackPeriod(c.Request.Context(), periodID)
		if err != nil {
			response.Error(c, err)
			return
		}
		filter.TrackPeriodID = &zoning.ID
	}

	// School admins always export their own school.
	claims := claimsFromContext(c)
	if claims != nil && claims.Role == models.RoleJuniorAdmin && claims.SchoolID != nil {
		filter.SchoolID = claims.SchoolID
	} else if value, ok := parseInt64Query(c, "sekolah_id"); ok {
		filter.SchoolID = &value
	}

	if raw := strings.TrimSpace(c.Query("status")); raw != "" {
		if !models.ValidOutcomeStatus(raw) {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unknown status value"))
			return
		}
		status := models.OutcomeStatus(raw)
		filter.Outcome = &status
	}

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "xlsx")))
	switch format {
	case "xlsx":
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", h.filename))
		if err := h.service.StreamXLSX(c.Request.Context(), filter, c.Writer); err != nil {
			// Headers may already be on the wire; abort rather than
			// emit a JSON body mid-stream.
			_ = c.Error(err)
			c.Abort()
			return
		}
	case "csv":
		payload, err := h.service.RenderCSV(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", h.filename))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.service.RenderPDF(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", h.filename))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported format, expected xlsx, csv, or pdf"))
	}
}
