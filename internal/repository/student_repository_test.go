package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStudentRepositoryCountLinkedAccounts(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM students WHERE origin_school_id = $1 AND user_id IS NOT NULL`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(17))

	total, err := repo.CountLinkedAccounts(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 17, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCountIncompleteDocuments(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`COALESCE(d.doc_count, 0) < 4`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	total, err := repo.CountIncompleteDocuments(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCountIncompleteBiodata(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewStudentRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta(`s.nik IS NULL`)).
		WithArgs(int64(4)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	total, err := repo.CountIncompleteBiodata(context.Background(), 4)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.NoError(t, mock.ExpectationsWereMet())
}
