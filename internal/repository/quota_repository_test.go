package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
)

func TestQuotaRepositoryFindZoningQuota(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuotaRepository(db)

	rows := sqlmock.NewRows([]string{"school_id", "period_id", "quota_type", "seats"}).
		AddRow(int64(10), int64(3), models.QuotaTypeZoning, 64)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT school_id, period_id, quota_type, seats FROM school_quotas
WHERE school_id = $1 AND period_id = $2 AND quota_type = $3`)).
		WithArgs(int64(10), int64(3), models.QuotaTypeZoning).
		WillReturnRows(rows)

	quota, err := repo.FindZoningQuota(context.Background(), 10, 3)
	require.NoError(t, err)
	assert.Equal(t, 64, quota.Seats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaRepositoryFindZoningQuotaNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuotaRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT school_id, period_id, quota_type, seats FROM school_quotas`)).
		WithArgs(int64(10), int64(3), models.QuotaTypeZoning).
		WillReturnRows(sqlmock.NewRows([]string{"school_id", "period_id", "quota_type", "seats"}))

	_, err := repo.FindZoningQuota(context.Background(), 10, 3)
	assert.ErrorIs(t, err, ErrQuotaNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaRepositoryListZoningQuotas(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuotaRepository(db)

	rows := sqlmock.NewRows([]string{"school_id", "period_id", "quota_type", "seats"}).
		AddRow(int64(1), int64(3), models.QuotaTypeZoning, 64).
		AddRow(int64(2), int64(3), models.QuotaTypeZoning, 32)
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT school_id, period_id, quota_type, seats FROM school_quotas
WHERE period_id = $1 AND quota_type = $2 AND school_id = ANY($3)`)).
		WithArgs(int64(3), models.QuotaTypeZoning, pq.Array([]int64{1, 2})).
		WillReturnRows(rows)

	seats, err := repo.ListZoningQuotas(context.Background(), 3, []int64{1, 2})
	require.NoError(t, err)
	assert.Equal(t, map[int64]int{1: 64, 2: 32}, seats)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestQuotaRepositoryListZoningQuotasEmptyInput(t *testing.T) {
	db, _, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewQuotaRepository(db)

	seats, err := repo.ListZoningQuotas(context.Background(), 3, nil)
	require.NoError(t, err)
	assert.Empty(t, seats)
}
