package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/dto"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
)

type fakeAdmissionSrv struct {
	result  *dto.DecisionResult
	err     error
	lastReq dto.DecisionRequest
}

func (f *fakeAdmissionSrv) Decide(_ context.Context, req dto.DecisionRequest) (*dto.DecisionResult, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

func TestAdmissionHandlerDecideSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeAdmissionSrv{result: &dto.DecisionResult{SchoolID: 10, TrackPeriodID: 7, Admitted: 3, Rejected: 9}}
	handler := NewAdmissionHandler(srv)

	body := bytes.NewBufferString(`{"sekolah_id":10,"periode_jalur_id":7}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/pengumuman/set-kelulusan", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Decide(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(10), srv.lastReq.SchoolID)
	assert.Equal(t, int64(7), srv.lastReq.TrackPeriodID)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, float64(3), envelope.Data["admitted"])
	assert.Equal(t, float64(9), envelope.Data["rejected"])
}

func TestAdmissionHandlerDecideMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdmissionHandler(&fakeAdmissionSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/pengumuman/set-kelulusan", bytes.NewBufferString("{not json"))
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Decide(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAdmissionHandlerDecidePropagatesServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewAdmissionHandler(&fakeAdmissionSrv{err: appErrors.Clone(appErrors.ErrInvalidConfig, "zoning track has no ranking method")})

	body := bytes.NewBufferString(`{"sekolah_id":10,"periode_jalur_id":7}`)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/pengumuman/set-kelulusan", body)
	c.Request.Header.Set("Content-Type", "application/json")

	handler.Decide(c)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "INVALID_CONFIGURATION", envelope.Error["code"])
}
