package service

import (
	"bytes"
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	"github.com/noah-isme/ppdb-pengumuman-api/internal/repository"
)

var reportColumns = []string{
	"student_name", "nik", "nisn", "residential_address", "family_card_address",
	"birth_date", "phone", "gender", "religion", "origin_school_name",
	"school_name", "village", "hamlet", "student_age", "straight_distance_m",
	"route_distance_m", "outcome_status",
}

func newReportService(t *testing.T) (*ReportService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := repository.NewRegistrationRepository(sqlx.NewDb(db, "sqlmock"))
	return NewReportService(repo, nil, "Hasil Kelulusan Siswa", nil), mock
}

func expectReportQuery(mock sqlmock.Sqlmock) *sqlmock.ExpectedQuery {
	return mock.ExpectQuery(regexp.QuoteMeta(`SELECT s.full_name AS student_name, s.nik, s.nisn, s.residential_address`))
}

func sampleReportRows() *sqlmock.Rows {
	birth := time.Date(2013, 4, 12, 0, 0, 0, 0, time.UTC)
	return sqlmock.NewRows(reportColumns).
		AddRow("Putu Ayu", "5171000000000001", "0061234567", "Jl. Kenanga 5", "Jl. Kenanga 5",
			birth, "081234567890", "P", "Hindu", "SD Negeri 2",
			"SMP Negeri 1", "Dauh Puri", "Banjar Tengah", 12, 850.0,
			1200.0, models.OutcomeAdmitted).
		AddRow("Kadek Adi", nil, "0069876543", "Jl. Melati 9", nil,
			birth, nil, "L", nil, nil,
			"SMP Negeri 1", nil, nil, 13, 430.0,
			610.0, models.OutcomeRejected)
}

func TestReportServiceStreamXLSX(t *testing.T) {
	svc, mock := newReportService(t)
	expectReportQuery(mock).WillReturnRows(sampleReportRows())

	var out bytes.Buffer
	err := svc.StreamXLSX(context.Background(), models.ReportFilter{}, &out)
	require.NoError(t, err)
	// XLSX workbooks are zip archives.
	assert.Equal(t, []byte("PK"), out.Bytes()[:2])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportServiceRenderCSV(t *testing.T) {
	svc, mock := newReportService(t)
	expectReportQuery(mock).WillReturnRows(sampleReportRows())

	payload, err := svc.RenderCSV(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	content := string(payload)
	assert.Contains(t, content, "Jarak Lurus (m)")
	assert.Contains(t, content, "Putu Ayu")
	assert.Contains(t, content, "TIDAK_LULUS")
	// Missing demographics render as empty cells, not literal nulls.
	assert.NotContains(t, content, "<nil>")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestReportServiceRenderPDF(t *testing.T) {
	svc, mock := newReportService(t)
	expectReportQuery(mock).WillReturnRows(sampleReportRows())

	payload, err := svc.RenderPDF(context.Background(), models.ReportFilter{})
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(payload[:4]))
	require.NoError(t, mock.ExpectationsWereMet())
}
