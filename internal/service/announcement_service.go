package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/repository"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
)

// AnnouncementRegistrationRepository covers the read paths behind the
// announcement lists.
type AnnouncementRegistrationRepository interface {
	ListOutcomes(ctx context.Context, filter models.OutcomeFilter) ([]models.OutcomeRow, int, error)
	ListZoning(ctx context.Context, filter models.ZoningFilter) ([]models.ZoningRow, int, error)
}

// AnnouncementPeriodRepository resolves track periods for the lists.
type AnnouncementPeriodRepository interface {
	FindByID(ctx context.Context, id int64) (*models.TrackPeriod, error)
	ListByPeriod(ctx context.Context, periodID int64) ([]models.TrackPeriod, error)
}

// AnnouncementService serves the per-school outcome list and the
// district-wide zoning registration list.
type AnnouncementService struct {
	registrations AnnouncementRegistrationRepository
	periods       AnnouncementPeriodRepository
	logger        *zap.Logger
}

// NewAnnouncementService constructs the service.
func NewAnnouncementService(registrations AnnouncementRegistrationRepository, periods AnnouncementPeriodRepository, logger *zap.Logger) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{registrations: registrations, periods: periods, logger: logger}
}

// Outcomes returns the paginated per-school announcement list ordered by the
// track's configured ranking method.
func (s *AnnouncementService) Outcomes(ctx context.Context, filter models.OutcomeFilter) ([]models.OutcomeRow, *models.Pagination, error) {
	period, err := s.periods.FindByID(ctx, filter.TrackPeriodID)
	if err != nil {
		if errors.Is(err, repository.ErrTrackPeriodNotFound) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "track period not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve track period")
	}

	// Only zoning tracks publish a ranked announcement list.
	if !period.IsZoning() {
		return []models.OutcomeRow{}, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize}, nil
	}

	if period.RankingMethod == nil {
		return nil, nil, appErrors.Clone(appErrors.ErrInvalidConfig, "zoning track has no ranking method")
	}
	method, err := models.ParseRankingMethod(*period.RankingMethod)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInvalidConfig.Code, appErrors.ErrInvalidConfig.Status, "unknown ranking method")
	}
	filter.Method = method

	rows, total, err := s.registrations.ListOutcomes(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list outcomes")
	}
	if rows == nil {
		rows = []models.OutcomeRow{}
	}
	return rows, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}

// ZoningTrackPeriod resolves the zoning track instance of a period.
func (s *AnnouncementService) ZoningTrackPeriod(ctx context.Context, periodID int64) (*models.TrackPeriod, error) {
	tracks, err := s.periods.ListByPeriod(ctx, periodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list track periods")
	}
	for i := range tracks {
		if tracks[i].IsZoning() {
			return &tracks[i], nil
		}
	}
	return nil, appErrors.Clone(appErrors.ErrNotFound, "period has no zoning track")
}

// ZoningRegistrations returns the district-wide zoning registration list for
// a period. The zoning track instance is resolved from the period's tracks.
func (s *AnnouncementService) ZoningRegistrations(ctx context.Context, periodID int64, filter models.ZoningFilter) ([]models.ZoningRow, *models.Pagination, error) {
	zoning, err := s.ZoningTrackPeriod(ctx, periodID)
	if err != nil {
		return nil, nil, err
	}

	filter.TrackPeriodID = zoning.ID
	rows, total, err := s.registrations.ListZoning(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list zoning registrations")
	}
	if rows == nil {
		rows = []models.ZoningRow{}
	}
	return rows, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}
