package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/repository"
)

type fakeDashboardRegistrations struct {
	counts        map[string]int
	bySchool      []models.SchoolRegistrationCount
	topSchools    []models.SchoolApplicantVolume
	verifications []models.VerificationStatus
}

func countKey(q repository.RegistrationCountQuery) string {
	key := "base"
	if q.Verification != nil {
		key = "verif:" + string(*q.Verification)
	}
	if q.Outcome != nil {
		key = "outcome:" + string(*q.Outcome)
	}
	return key
}

func (f *fakeDashboardRegistrations) Count(_ context.Context, q repository.RegistrationCountQuery) (int, error) {
	if q.Verification != nil {
		f.verifications = append(f.verifications, *q.Verification)
	}
	return f.counts[countKey(q)], nil
}

func (f *fakeDashboardRegistrations) CountBySchool(context.Context, int64, []int64) ([]models.SchoolRegistrationCount, error) {
	return f.bySchool, nil
}

func (f *fakeDashboardRegistrations) TopSchools(context.Context, int64, int) ([]models.SchoolApplicantVolume, error) {
	return f.topSchools, nil
}

type fakeDashboardStudents struct {
	total      int
	linked     int
	incomplete int
	documents  int
}

func (f *fakeDashboardStudents) CountByOriginSchool(context.Context, int64) (int, error) {
	return f.total, nil
}
func (f *fakeDashboardStudents) CountLinkedAccounts(context.Context, int64) (int, error) {
	return f.linked, nil
}
func (f *fakeDashboardStudents) CountAll(context.Context) (int, error) { return f.total, nil }
func (f *fakeDashboardStudents) CountIncompleteBiodata(context.Context, int64) (int, error) {
	return f.incomplete, nil
}
func (f *fakeDashboardStudents) CountIncompleteDocuments(context.Context, int64) (int, error) {
	return f.documents, nil
}

type fakeDashboardSchools struct {
	schools  []models.School
	total    int
	byLevel  map[int]int
	lastPage int
}

func (f *fakeDashboardSchools) ListJunior(_ context.Context, filter models.SchoolFilter) ([]models.School, int, error) {
	f.lastPage = filter.Page
	return f.schools, f.total, nil
}

func (f *fakeDashboardSchools) CountByLevel(_ context.Context, levelID int) (int, error) {
	return f.byLevel[levelID], nil
}

type fakeDashboardQuotas struct {
	seats map[int64]int
}

func (f *fakeDashboardQuotas) ListZoningQuotas(context.Context, int64, []int64) (map[int64]int, error) {
	return f.seats, nil
}

type fakeDashboardPeriods struct {
	period *models.TrackPeriod
	err    error
}

func (f *fakeDashboardPeriods) FindByID(context.Context, int64) (*models.TrackPeriod, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.period, nil
}

func TestDashboardElementaryZeroActivity(t *testing.T) {
	svc := NewDashboardService(
		&fakeDashboardRegistrations{counts: map[string]int{}},
		&fakeDashboardStudents{},
		&fakeDashboardSchools{},
		&fakeDashboardQuotas{},
		&fakeDashboardPeriods{},
		nil, nil)

	summary, err := svc.Elementary(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.TotalStudents)
	assert.Equal(t, 0, summary.TotalApplied)
	assert.Equal(t, 0, summary.TotalAdmitted)
}

func TestDashboardElementaryCounters(t *testing.T) {
	regs := &fakeDashboardRegistrations{counts: map[string]int{
		"base":            8,
		"outcome:LULUS":   3,
		"verif:VERIF_SMP": 5,
		"verif:VERIF_SD":  2,
	}}
	svc := NewDashboardService(regs,
		&fakeDashboardStudents{total: 40, linked: 35, incomplete: 4, documents: 6},
		&fakeDashboardSchools{},
		&fakeDashboardQuotas{},
		&fakeDashboardPeriods{},
		nil, nil)

	summary, err := svc.Elementary(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.Equal(t, 40, summary.TotalStudents)
	assert.Equal(t, 35, summary.TotalLinkedAccounts)
	assert.Equal(t, 8, summary.TotalApplied)
	assert.Equal(t, 3, summary.TotalAdmitted)
	assert.Equal(t, 5, summary.TotalVerified)
	assert.Equal(t, 2, summary.TotalAwaitingVerification)
	assert.Equal(t, 4, summary.TotalIncompleteBiodata)
	assert.Equal(t, 6, summary.TotalIncompleteDocuments)
}

func TestDashboardAwaitingStageIsOriginVerified(t *testing.T) {
	regs := &fakeDashboardRegistrations{counts: map[string]int{}}
	svc := NewDashboardService(regs,
		&fakeDashboardStudents{},
		&fakeDashboardSchools{},
		&fakeDashboardQuotas{},
		&fakeDashboardPeriods{},
		nil, nil)

	// Every dashboard reports the same stage pair: fully verified plus
	// origin-verified awaiting destination sign-off.
	_, err := svc.Elementary(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.Equal(t, []models.VerificationStatus{models.VerifiedByDestination, models.VerifiedByOrigin}, regs.verifications)

	regs.verifications = nil
	_, err = svc.Junior(context.Background(), 4, 7)
	require.NoError(t, err)
	assert.Equal(t, []models.VerificationStatus{models.VerifiedByDestination, models.VerifiedByOrigin}, regs.verifications)

	regs.verifications = nil
	_, err = svc.District(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, []models.VerificationStatus{models.VerifiedByDestination, models.VerifiedByOrigin}, regs.verifications)
}

func TestDashboardDistrictCounters(t *testing.T) {
	regs := &fakeDashboardRegistrations{counts: map[string]int{
		"base":               100,
		"outcome:LULUS":       60,
		"outcome:TIDAK_LULUS": 40,
		"verif:VERIF_SMP":     90,
		"verif:VERIF_SD":      5,
	}}
	svc := NewDashboardService(regs,
		&fakeDashboardStudents{total: 500},
		&fakeDashboardSchools{byLevel: map[int]int{models.SchoolLevelElementary: 20, models.SchoolLevelJunior: 8}},
		&fakeDashboardQuotas{},
		&fakeDashboardPeriods{},
		nil, nil)

	summary, err := svc.District(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, 500, summary.TotalStudents)
	assert.Equal(t, 20, summary.TotalElementarySchools)
	assert.Equal(t, 8, summary.TotalJuniorSchools)
	assert.Equal(t, 100, summary.TotalApplied)
	assert.Equal(t, 60, summary.TotalAdmitted)
	assert.Equal(t, 40, summary.TotalRejected)
}

func TestDashboardTopSchools(t *testing.T) {
	svc := NewDashboardService(
		&fakeDashboardRegistrations{topSchools: []models.SchoolApplicantVolume{
			{SchoolID: 1, SchoolName: "SMP Negeri 1", Total: 120},
			{SchoolID: 2, SchoolName: "SMP Negeri 2", Total: 90},
		}},
		&fakeDashboardStudents{},
		&fakeDashboardSchools{},
		&fakeDashboardQuotas{},
		&fakeDashboardPeriods{},
		nil, nil)

	entries, err := svc.TopSchools(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "SMP Negeri 1", entries[0].SchoolName)
	assert.Equal(t, 120, entries[0].TotalApplicants)
}

func TestDashboardSchoolApplicantsMergesQuota(t *testing.T) {
	npsn := "10101010"
	schools := &fakeDashboardSchools{
		schools: []models.School{
			{ID: 1, Name: "SMP Negeri 1", NPSN: &npsn, LevelID: models.SchoolLevelJunior},
			{ID: 2, Name: "SMP Negeri 2", LevelID: models.SchoolLevelJunior},
		},
		total: 2,
	}
	svc := NewDashboardService(
		&fakeDashboardRegistrations{bySchool: []models.SchoolRegistrationCount{{SchoolID: 1, Total: 75}}},
		&fakeDashboardStudents{},
		schools,
		&fakeDashboardQuotas{seats: map[int64]int{1: 64}},
		&fakeDashboardPeriods{period: &models.TrackPeriod{ID: 7, PeriodID: 3, TrackName: "zonasi"}},
		nil, nil)

	entries, pagination, err := svc.SchoolApplicants(context.Background(), 7, models.SchoolFilter{Page: 1, PageSize: 10})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, 75, entries[0].TotalApplicants)
	assert.Equal(t, 64, entries[0].Quota)
	assert.Equal(t, "10101010", entries[0].NPSN)

	// School without a quota row or applicants reports zeroes.
	assert.Equal(t, 0, entries[1].TotalApplicants)
	assert.Equal(t, 0, entries[1].Quota)
	assert.Equal(t, 2, pagination.TotalCount)
}
