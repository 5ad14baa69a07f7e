package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestRegistrationRepositoryAdmissionCandidateIDs(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	query := `SELECT id FROM registrations
WHERE school_id = $1 AND track_period_id = $2 AND verification_status = $3
ORDER BY straight_distance_m ASC, student_age DESC, id ASC
LIMIT $4`
	rows := sqlmock.NewRows([]string{"id"}).AddRow(int64(3)).AddRow(int64(1)).AddRow(int64(8))
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(int64(10), int64(7), models.VerifiedByDestination, 3).
		WillReturnRows(rows)

	ids, err := repo.AdmissionCandidateIDs(context.Background(), 10, 7, models.RankStraightLine, 3)
	require.NoError(t, err)
	assert.Equal(t, []int64{3, 1, 8}, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryAdmissionCandidateIDsRouteMethod(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	query := `SELECT id FROM registrations
WHERE school_id = $1 AND track_period_id = $2 AND verification_status = $3
ORDER BY route_distance_m ASC, student_age DESC, id ASC
LIMIT $4`
	mock.ExpectQuery(regexp.QuoteMeta(query)).
		WithArgs(int64(10), int64(7), models.VerifiedByDestination, 5).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ids, err := repo.AdmissionCandidateIDs(context.Background(), 10, 7, models.RankRouteDistance, 5)
	require.NoError(t, err)
	assert.Empty(t, ids)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryApplyDecision(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	admitted := []int64{3, 1}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE registrations SET outcome_status = $1
WHERE school_id = $2 AND track_period_id = $3 AND id <> ALL($4)`)).
		WithArgs(models.OutcomeRejected, int64(10), int64(7), pq.Array(admitted)).
		WillReturnResult(sqlmock.NewResult(0, 6))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE registrations SET outcome_status = $1 WHERE id = ANY($2)`)).
		WithArgs(models.OutcomeAdmitted, pq.Array(admitted)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	rejected, admittedCount, err := repo.ApplyDecision(context.Background(), 10, 7, admitted)
	require.NoError(t, err)
	assert.Equal(t, int64(6), rejected)
	assert.Equal(t, int64(2), admittedCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryApplyDecisionEmptyAdmittedSet(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE registrations SET outcome_status = $1
WHERE school_id = $2 AND track_period_id = $3 AND id <> ALL($4)`)).
		WithArgs(models.OutcomeRejected, int64(10), int64(7), pq.Array([]int64{})).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectCommit()

	rejected, admittedCount, err := repo.ApplyDecision(context.Background(), 10, 7, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(4), rejected)
	assert.Equal(t, int64(0), admittedCount)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryApplyDecisionRollbackOnError(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE registrations SET outcome_status = $1`)).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, _, err := repo.ApplyDecision(context.Background(), 10, 7, []int64{1})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryCountComposesPredicates(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	schoolID := int64(10)
	trackPeriodID := int64(7)
	outcome := models.OutcomeAdmitted

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations r WHERE r.school_id = $1 AND r.track_period_id = $2 AND r.outcome_status = $3`)).
		WithArgs(schoolID, trackPeriodID, outcome).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	total, err := repo.Count(context.Background(), RegistrationCountQuery{
		SchoolID:      &schoolID,
		TrackPeriodID: &trackPeriodID,
		Outcome:       &outcome,
	})
	require.NoError(t, err)
	assert.Equal(t, 12, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryCountByOriginSchoolJoinsStudents(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	originID := int64(4)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM registrations r JOIN students s ON s.id = r.student_id WHERE s.origin_school_id = $1`)).
		WithArgs(originID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(5))

	total, err := repo.Count(context.Background(), RegistrationCountQuery{OriginSchoolID: &originID})
	require.NoError(t, err)
	assert.Equal(t, 5, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryTopSchools(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	rows := sqlmock.NewRows([]string{"school_id", "school_name", "total"}).
		AddRow(int64(1), "SMP Negeri 1", 120).
		AddRow(int64(2), "SMP Negeri 2", 90)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT r.school_id, sc.name AS school_name, COUNT(*) AS total`)).
		WithArgs(int64(7), 10).
		WillReturnRows(rows)

	volumes, err := repo.TopSchools(context.Background(), 7, 10)
	require.NoError(t, err)
	require.Len(t, volumes, 2)
	assert.Equal(t, "SMP Negeri 1", volumes[0].SchoolName)
	assert.Equal(t, 120, volumes[0].Total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryCountBySchoolEmptyInput(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	counts, err := repo.CountBySchool(context.Background(), 7, nil)
	require.NoError(t, err)
	assert.Nil(t, counts)
}
