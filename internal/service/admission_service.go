package service

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/dto"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/repository"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
)

// AdmissionRegistrationRepository covers the registration operations the
// decision engine needs.
type AdmissionRegistrationRepository interface {
	AdmissionCandidateIDs(ctx context.Context, schoolID, trackPeriodID int64, method models.RankingMethod, limit int) ([]int64, error)
	ApplyDecision(ctx context.Context, schoolID, trackPeriodID int64, admittedIDs []int64) (rejected, admitted int64, err error)
}

// AdmissionPeriodRepository resolves track periods.
type AdmissionPeriodRepository interface {
	FindByID(ctx context.Context, id int64) (*models.TrackPeriod, error)
}

// AdmissionQuotaRepository resolves configured zoning quotas.
type AdmissionQuotaRepository interface {
	FindZoningQuota(ctx context.Context, schoolID, periodID int64) (*models.SchoolQuota, error)
}

// AdmissionService runs the admission decision for one school and track
// period.
type AdmissionService struct {
	registrations AdmissionRegistrationRepository
	periods       AdmissionPeriodRepository
	quotas        AdmissionQuotaRepository
	cache         *CacheService
	metrics       *MetricsService
	validator     *validator.Validate
	logger        *zap.Logger
}

// NewAdmissionService constructs the service.
func NewAdmissionService(registrations AdmissionRegistrationRepository, periods AdmissionPeriodRepository, quotas AdmissionQuotaRepository, cache *CacheService, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *AdmissionService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdmissionService{
		registrations: registrations,
		periods:       periods,
		quotas:        quotas,
		cache:         cache,
		metrics:       metrics,
		validator:     validate,
		logger:        logger,
	}
}

// Decide partitions a school's registrations for one track period into
// admitted and rejected sets. For zoning tracks the quota-sized top of the
// proximity ranking is admitted; every other registration for the pair is
// rejected. Non-zoning tracks admit nobody here, so the sweep rejects all of
// them. Re-running the decision produces the same partition.
func (s *AdmissionService) Decide(ctx context.Context, req dto.DecisionRequest) (*dto.DecisionResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid decision request")
	}

	period, err := s.periods.FindByID(ctx, req.TrackPeriodID)
	if err != nil {
		if errors.Is(err, repository.ErrTrackPeriodNotFound) {
			s.metrics.RecordDecisionRun("not_found")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "track period not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve track period")
	}

	quota, err := s.quotas.FindZoningQuota(ctx, req.SchoolID, period.PeriodID)
	if err != nil {
		if errors.Is(err, repository.ErrQuotaNotFound) {
			s.metrics.RecordDecisionRun("not_found")
			return nil, appErrors.Clone(appErrors.ErrNotFound, "zoning quota not configured for school")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve zoning quota")
	}
	if quota.Seats <= 0 {
		s.metrics.RecordDecisionRun("invalid_configuration")
		return nil, appErrors.Clone(appErrors.ErrInvalidConfig, "zoning quota has no seats")
	}

	var admittedIDs []int64
	if period.IsZoning() {
		if period.RankingMethod == nil {
			s.metrics.RecordDecisionRun("invalid_configuration")
			return nil, appErrors.Clone(appErrors.ErrInvalidConfig, "zoning track has no ranking method")
		}
		method, err := models.ParseRankingMethod(*period.RankingMethod)
		if err != nil {
			s.metrics.RecordDecisionRun("invalid_configuration")
			return nil, appErrors.Wrap(err, appErrors.ErrInvalidConfig.Code, appErrors.ErrInvalidConfig.Status, "unknown ranking method")
		}
		admittedIDs, err = s.registrations.AdmissionCandidateIDs(ctx, req.SchoolID, req.TrackPeriodID, method, quota.Seats)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "rank admission candidates")
		}
	}

	rejected, admitted, err := s.registrations.ApplyDecision(ctx, req.SchoolID, req.TrackPeriodID, admittedIDs)
	if err != nil {
		s.metrics.RecordDecisionRun("error")
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "apply admission decision")
	}

	if s.cache.Enabled() {
		_ = s.cache.Invalidate(ctx, "dashboard:*")
	}
	s.metrics.RecordDecisionRun("ok")

	s.logger.Info("admission decision applied",
		zap.Int64("school_id", req.SchoolID),
		zap.Int64("track_period_id", req.TrackPeriodID),
		zap.String("track", period.TrackName),
		zap.Int("quota_seats", quota.Seats),
		zap.Int64("admitted", admitted),
		zap.Int64("rejected", rejected))

	return &dto.DecisionResult{
		SchoolID:      req.SchoolID,
		TrackPeriodID: req.TrackPeriodID,
		Admitted:      admitted,
		Rejected:      rejected,
	}, nil
}
