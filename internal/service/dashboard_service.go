package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/dto"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/repository"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
)

// DashboardRegistrationRepository covers the aggregate registration reads.
type DashboardRegistrationRepository interface {
	Count(ctx context.Context, q repository.RegistrationCountQuery) (int, error)
	CountBySchool(ctx context.Context, trackPeriodID int64, schoolIDs []int64) ([]models.SchoolRegistrationCount, error)
	TopSchools(ctx context.Context, trackPeriodID int64, limit int) ([]models.SchoolApplicantVolume, error)
}

// DashboardStudentRepository covers student master-data tallies.
type DashboardStudentRepository interface {
	CountByOriginSchool(ctx context.Context, originSchoolID int64) (int, error)
	CountLinkedAccounts(ctx context.Context, originSchoolID int64) (int, error)
	CountAll(ctx context.Context) (int, error)
	CountIncompleteBiodata(ctx context.Context, originSchoolID int64) (int, error)
	CountIncompleteDocuments(ctx context.Context, originSchoolID int64) (int, error)
}

// DashboardSchoolRepository covers school reference reads.
type DashboardSchoolRepository interface {
	ListJunior(ctx context.Context, filter models.SchoolFilter) ([]models.School, int, error)
	CountByLevel(ctx context.Context, levelID int) (int, error)
}

// DashboardQuotaRepository resolves zoning quotas in bulk.
type DashboardQuotaRepository interface {
	ListZoningQuotas(ctx context.Context, periodID int64, schoolIDs []int64) (map[int64]int, error)
}

// DashboardPeriodRepository resolves track periods.
type DashboardPeriodRepository interface {
	FindByID(ctx context.Context, id int64) (*models.TrackPeriod, error)
}

// DashboardService aggregates admission progress counters for the school and
// district dashboards. Counters are recomputed per request; Redis only sits
// in front when the cache flag is on.
type DashboardService struct {
	registrations DashboardRegistrationRepository
	students      DashboardStudentRepository
	schools       DashboardSchoolRepository
	quotas        DashboardQuotaRepository
	periods       DashboardPeriodRepository
	cache         *CacheService
	logger        *zap.Logger
}

// NewDashboardService constructs the service.
func NewDashboardService(registrations DashboardRegistrationRepository, students DashboardStudentRepository, schools DashboardSchoolRepository, quotas DashboardQuotaRepository, periods DashboardPeriodRepository, cache *CacheService, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{
		registrations: registrations,
		students:      students,
		schools:       schools,
		quotas:        quotas,
		periods:       periods,
		cache:         cache,
		logger:        logger,
	}
}

func outcomePtr(v models.OutcomeStatus) *models.OutcomeStatus {
	return &v
}

func verificationPtr(v models.VerificationStatus) *models.VerificationStatus {
	return &v
}

// Elementary summarises one origin school's applicants. Schools with no
// activity report zeroes.
func (s *DashboardService) Elementary(ctx context.Context, schoolID, trackPeriodID int64) (*dto.ElementaryDashboardResponse, error) {
	key := fmt.Sprintf("dashboard:sd:%d:%d", schoolID, trackPeriodID)
	var cached dto.ElementaryDashboardResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	out := &dto.ElementaryDashboardResponse{}
	var err error

	if out.TotalStudents, err = s.students.CountByOriginSchool(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count students")
	}
	if out.TotalLinkedAccounts, err = s.students.CountLinkedAccounts(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count linked accounts")
	}
	if out.TotalIncompleteBiodata, err = s.students.CountIncompleteBiodata(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count incomplete biodata")
	}
	if out.TotalIncompleteDocuments, err = s.students.CountIncompleteDocuments(ctx, schoolID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count incomplete documents")
	}

	base := repository.RegistrationCountQuery{OriginSchoolID: &schoolID, TrackPeriodID: &trackPeriodID}
	if out.TotalApplied, err = s.registrations.Count(ctx, base); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count applied")
	}

	admitted := base
	admitted.Outcome = outcomePtr(models.OutcomeAdmitted)
	if out.TotalAdmitted, err = s.registrations.Count(ctx, admitted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count admitted")
	}

	verified := base
	verified.Verification = verificationPtr(models.VerifiedByDestination)
	if out.TotalVerified, err = s.registrations.Count(ctx, verified); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count verified")
	}

	awaiting := base
	awaiting.Verification = verificationPtr(models.VerifiedByOrigin)
	if out.TotalAwaitingVerification, err = s.registrations.Count(ctx, awaiting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count awaiting verification")
	}

	_ = s.cache.Set(ctx, key, out, 0)
	return out, nil
}

// Junior summarises one destination school's applicant queue.
func (s *DashboardService) Junior(ctx context.Context, schoolID, trackPeriodID int64) (*dto.JuniorDashboardResponse, error) {
	key := fmt.Sprintf("dashboard:smp:%d:%d", schoolID, trackPeriodID)
	var cached dto.JuniorDashboardResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	out := &dto.JuniorDashboardResponse{}
	var err error

	base := repository.RegistrationCountQuery{SchoolID: &schoolID, TrackPeriodID: &trackPeriodID}
	if out.TotalApplied, err = s.registrations.Count(ctx, base); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count applied")
	}

	verified := base
	verified.Verification = verificationPtr(models.VerifiedByDestination)
	if out.TotalVerified, err = s.registrations.Count(ctx, verified); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count verified")
	}

	// Applicants the origin school has signed off, waiting on this school.
	awaiting := base
	awaiting.Verification = verificationPtr(models.VerifiedByOrigin)
	if out.TotalAwaitingVerification, err = s.registrations.Count(ctx, awaiting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count awaiting verification")
	}

	admitted := base
	admitted.Outcome = outcomePtr(models.OutcomeAdmitted)
	if out.TotalAdmitted, err = s.registrations.Count(ctx, admitted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count admitted")
	}

	_ = s.cache.Set(ctx, key, out, 0)
	return out, nil
}

// District aggregates admission status across every school for one track
// period.
func (s *DashboardService) District(ctx context.Context, trackPeriodID int64) (*dto.DistrictDashboardResponse, error) {
	key := fmt.Sprintf("dashboard:dinas:%d", trackPeriodID)
	var cached dto.DistrictDashboardResponse
	if hit, _ := s.cache.Get(ctx, key, &cached); hit {
		return &cached, nil
	}

	out := &dto.DistrictDashboardResponse{}
	var err error

	if out.TotalStudents, err = s.students.CountAll(ctx); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count students")
	}
	if out.TotalElementarySchools, err = s.schools.CountByLevel(ctx, models.SchoolLevelElementary); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count elementary schools")
	}
	if out.TotalJuniorSchools, err = s.schools.CountByLevel(ctx, models.SchoolLevelJunior); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count junior schools")
	}

	base := repository.RegistrationCountQuery{TrackPeriodID: &trackPeriodID}
	if out.TotalApplied, err = s.registrations.Count(ctx, base); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count applied")
	}

	verified := base
	verified.Verification = verificationPtr(models.VerifiedByDestination)
	if out.TotalVerified, err = s.registrations.Count(ctx, verified); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count verified")
	}

	awaiting := base
	awaiting.Verification = verificationPtr(models.VerifiedByOrigin)
	if out.TotalAwaitingVerification, err = s.registrations.Count(ctx, awaiting); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count awaiting verification")
	}

	admitted := base
	admitted.Outcome = outcomePtr(models.OutcomeAdmitted)
	if out.TotalAdmitted, err = s.registrations.Count(ctx, admitted); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count admitted")
	}

	rejected := base
	rejected.Outcome = outcomePtr(models.OutcomeRejected)
	if out.TotalRejected, err = s.registrations.Count(ctx, rejected); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count rejected")
	}

	_ = s.cache.Set(ctx, key, out, 0)
	return out, nil
}

// TopSchools returns the ten most-applied-to schools for one track period.
func (s *DashboardService) TopSchools(ctx context.Context, trackPeriodID int64) ([]dto.TopSchoolEntry, error) {
	volumes, err := s.registrations.TopSchools(ctx, trackPeriodID, 10)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "top schools")
	}
	entries := make([]dto.TopSchoolEntry, 0, len(volumes))
	for _, v := range volumes {
		entries = append(entries, dto.TopSchoolEntry{
			SchoolID:        v.SchoolID,
			SchoolName:      v.SchoolName,
			TotalApplicants: v.Total,
		})
	}
	return entries, nil
}

// SchoolApplicants pairs each junior school's applicant volume with its
// configured zoning quota. Schools without a quota row report zero seats.
func (s *DashboardService) SchoolApplicants(ctx context.Context, trackPeriodID int64, filter models.SchoolFilter) ([]dto.SchoolApplicantsEntry, *models.Pagination, error) {
	period, err := s.periods.FindByID(ctx, trackPeriodID)
	if err != nil {
		if errors.Is(err, repository.ErrTrackPeriodNotFound) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "track period not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "resolve track period")
	}

	schools, total, err := s.schools.ListJunior(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list junior schools")
	}

	ids := make([]int64, 0, len(schools))
	for _, sc := range schools {
		ids = append(ids, sc.ID)
	}

	counts, err := s.registrations.CountBySchool(ctx, trackPeriodID, ids)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "count applicants per school")
	}
	countBySchool := make(map[int64]int, len(counts))
	for _, c := range counts {
		countBySchool[c.SchoolID] = c.Total
	}

	seats, err := s.quotas.ListZoningQuotas(ctx, period.PeriodID, ids)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "list zoning quotas")
	}

	entries := make([]dto.SchoolApplicantsEntry, 0, len(schools))
	for _, sc := range schools {
		npsn := ""
		if sc.NPSN != nil {
			npsn = *sc.NPSN
		}
		entries = append(entries, dto.SchoolApplicantsEntry{
			SchoolID:        sc.ID,
			SchoolName:      sc.Name,
			NPSN:            npsn,
			TotalApplicants: countBySchool[sc.ID],
			Quota:           seats[sc.ID],
		})
	}

	return entries, &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}, nil
}
