package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/service"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/config"
)

func newWindowRouter(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	server := httptest.NewServer(upstream)
	t.Cleanup(server.Close)

	schedules := service.NewScheduleService(config.ScheduleConfig{
		BaseURL:   server.URL,
		Timeout:   2 * time.Second,
		StageName: "pengumuman",
	}, service.NewAuthService("test_secret", time.Minute), nil)

	r := gin.New()
	r.POST("/set-kelulusan", AnnouncementWindow(schedules), func(c *gin.Context) {
		// The guard must hand the handler an intact body.
		var req struct {
			TrackPeriodID int64 `json:"periode_jalur_id"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"periode_jalur_id": req.TrackPeriodID})
	})
	return r
}

func TestAnnouncementWindowAllowsOpenStage(t *testing.T) {
	r := newWindowRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"tahapan_nama":"pengumuman","is_closed":0,"waktu_mulai":"2020-01-01T00:00:00Z","waktu_selesai":"2099-12-31T23:59:59Z"}]}`))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/set-kelulusan", bytes.NewBufferString(`{"sekolah_id":10,"periode_jalur_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"periode_jalur_id":7`)
}

func TestAnnouncementWindowBlocksClosedStage(t *testing.T) {
	r := newWindowRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"tahapan_nama":"pengumuman","is_closed":1,"waktu_mulai":"2020-01-01T00:00:00Z","waktu_selesai":"2099-12-31T23:59:59Z"}]}`))
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/set-kelulusan", bytes.NewBufferString(`{"sekolah_id":10,"periode_jalur_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAnnouncementWindowRequiresTrackPeriod(t *testing.T) {
	r := newWindowRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		t.Error("upstream must not be called for invalid bodies")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/set-kelulusan", bytes.NewBufferString(`{"sekolah_id":10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAnnouncementWindowUpstreamFailure(t *testing.T) {
	r := newWindowRouter(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/set-kelulusan", bytes.NewBufferString(`{"sekolah_id":10,"periode_jalur_id":7}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}
