package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/config"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
)

// TokenIssuer mints service tokens for upstream calls.
type TokenIssuer interface {
	IssueServiceToken() (string, error)
}

// ScheduleService fetches stage windows from the upstream period service and
// decides whether the announcement stage is open.
type ScheduleService struct {
	baseURL   string
	stageName string
	client    *http.Client
	issuer    TokenIssuer
	logger    *zap.Logger
	now       func() time.Time
}

// NewScheduleService constructs the service.
func NewScheduleService(cfg config.ScheduleConfig, issuer TokenIssuer, logger *zap.Logger) *ScheduleService {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	stage := cfg.StageName
	if stage == "" {
		stage = "pengumuman"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{
		baseURL:   strings.TrimRight(cfg.BaseURL, "/"),
		stageName: stage,
		client:    &http.Client{Timeout: timeout},
		issuer:    issuer,
		logger:    logger,
		now:       time.Now,
	}
}

type scheduleEnvelope struct {
	Data []models.ScheduleStage `json:"data"`
}

// Stages fetches all stage windows for a track period.
func (s *ScheduleService) Stages(ctx context.Context, trackPeriodID int64) ([]models.ScheduleStage, error) {
	url := fmt.Sprintf("%s/jadwal/%d", s.baseURL, trackPeriodID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "build schedule request")
	}

	token, err := s.issuer.IssueServiceToken()
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "issue service token")
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "schedule service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "schedule not found for track period")
	}
	if resp.StatusCode != http.StatusOK {
		s.logger.Warn("schedule service returned unexpected status",
			zap.Int("status", resp.StatusCode),
			zap.Int64("track_period_id", trackPeriodID))
		return nil, appErrors.Clone(appErrors.ErrUpstream, fmt.Sprintf("schedule service returned %d", resp.StatusCode))
	}

	var envelope scheduleEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUpstream.Code, appErrors.ErrUpstream.Status, "decode schedule response")
	}
	return envelope.Data, nil
}

// AnnouncementOpen reports whether the announcement stage window is open for
// the track period right now.
func (s *ScheduleService) AnnouncementOpen(ctx context.Context, trackPeriodID int64) (bool, error) {
	stages, err := s.Stages(ctx, trackPeriodID)
	if err != nil {
		return false, err
	}
	now := s.now()
	for _, stage := range stages {
		if strings.EqualFold(stage.StageName, s.stageName) {
			return stage.Open(now), nil
		}
	}
	return false, nil
}
