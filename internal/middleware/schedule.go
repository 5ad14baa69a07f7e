package middleware

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/service"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/response"
)

// AnnouncementWindow blocks decision requests while the announcement stage is
// closed. The track period ID is peeked from the JSON body, which is restored
// for the handler.
func AnnouncementWindow(schedules *service.ScheduleService) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unreadable request body"))
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		var peek struct {
			TrackPeriodID int64 `json:"periode_jalur_id"`
		}
		if err := json.Unmarshal(body, &peek); err != nil || peek.TrackPeriodID <= 0 {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "periode_jalur_id is required"))
			c.Abort()
			return
		}

		open, err := schedules.AnnouncementOpen(c.Request.Context(), peek.TrackPeriodID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if !open {
			response.Error(c, appErrors.Clone(appErrors.ErrForbidden, "announcement stage is closed"))
			c.Abort()
			return
		}

		c.Next()
	}
}
