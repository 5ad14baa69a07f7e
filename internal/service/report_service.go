package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
	appErrors "github.com/noah-isme/ppdb-pengumuman-api/pkg/errors"
	"github.com/noah-isme/ppdb-pengumuman-api/pkg/export"
)

// ReportRegistrationRepository opens the report cursor.
type ReportRegistrationRepository interface {
	ReportRows(ctx context.Context, filter models.ReportFilter) (*sqlx.Rows, error)
}

// reportHeaders is the fixed spreadsheet column order.
var reportHeaders = []string{
	"No",
	"Nama",
	"NIK",
	"NISN",
	"Alamat Tinggal",
	"Alamat KK",
	"Tanggal Lahir",
	"Nomor Telepon",
	"Jenis Kelamin",
	"Agama",
	"Sekolah Asal",
	"Sekolah Tujuan",
	"Desa",
	"Banjar",
	"Umur Siswa",
	"Jarak Lurus (m)",
	"Jarak Rute (m)",
	"Status Kelulusan",
}

// ReportService streams the flat registration report in spreadsheet, CSV, or
// PDF form.
type ReportService struct {
	registrations ReportRegistrationRepository
	csv           *export.CSVExporter
	pdf           *export.PDFExporter
	metrics       *MetricsService
	sheetName     string
	logger        *zap.Logger
}

// NewReportService constructs the service.
func NewReportService(registrations ReportRegistrationRepository, metrics *MetricsService, sheetName string, logger *zap.Logger) *ReportService {
	if sheetName == "" {
		sheetName = "Hasil Kelulusan Siswa"
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ReportService{
		registrations: registrations,
		csv:           export.NewCSVExporter(),
		pdf:           export.NewPDFExporter(),
		metrics:       metrics,
		sheetName:     sheetName,
		logger:        logger,
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func reportCells(index int, row models.ReportRow) []string {
	return []string{
		fmt.Sprintf("%d", index),
		row.StudentName,
		deref(row.NIK),
		row.NISN,
		row.ResidentialAddr,
		deref(row.FamilyCardAddr),
		row.BirthDate.Format("2006-01-02"),
		deref(row.Phone),
		row.Gender,
		deref(row.Religion),
		deref(row.OriginSchoolName),
		row.SchoolName,
		deref(row.Village),
		deref(row.Hamlet),
		fmt.Sprintf("%d", row.StudentAge),
		fmt.Sprintf("%.0f", row.StraightDistance),
		fmt.Sprintf("%.0f", row.RouteDistance),
		string(row.OutcomeStatus),
	}
}

// StreamXLSX writes the report as a spreadsheet directly to out, row by row,
// without holding the full result set in memory.
func (s *ReportService) StreamXLSX(ctx context.Context, filter models.ReportFilter, out io.Writer) error {
	start := time.Now()

	rows, err := s.registrations.ReportRows(ctx, filter)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open report cursor")
	}
	defer rows.Close()

	stream, err := export.NewXLSXStream(s.sheetName)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open spreadsheet stream")
	}

	headerCells := make([]interface{}, len(reportHeaders))
	for i, h := range reportHeaders {
		headerCells[i] = h
	}
	if err := stream.WriteRow(headerCells); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write report header")
	}

	index := 0
	for rows.Next() {
		var row models.ReportRow
		if err := rows.StructScan(&row); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "scan report row")
		}
		index++
		cells := reportCells(index, row)
		values := make([]interface{}, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		if err := stream.WriteRow(values); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "write report row")
		}
	}
	if err := rows.Err(); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "iterate report rows")
	}

	if err := stream.Finalize(out); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "finalize spreadsheet")
	}

	s.metrics.ObserveExport("xlsx", time.Since(start))
	s.logger.Info("registration report streamed", zap.Int("rows", index))
	return nil
}

func (s *ReportService) dataset(ctx context.Context, filter models.ReportFilter) (export.Dataset, error) {
	rows, err := s.registrations.ReportRows(ctx, filter)
	if err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "open report cursor")
	}
	defer rows.Close()

	data := export.Dataset{Headers: reportHeaders}
	index := 0
	for rows.Next() {
		var row models.ReportRow
		if err := rows.StructScan(&row); err != nil {
			return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "scan report row")
		}
		index++
		cells := reportCells(index, row)
		record := make(map[string]string, len(reportHeaders))
		for i, h := range reportHeaders {
			record[h] = cells[i]
		}
		data.Rows = append(data.Rows, record)
	}
	if err := rows.Err(); err != nil {
		return export.Dataset{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "iterate report rows")
	}
	return data, nil
}

// RenderCSV returns the report encoded as CSV.
func (s *ReportService) RenderCSV(ctx context.Context, filter models.ReportFilter) ([]byte, error) {
	start := time.Now()
	data, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(data)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render csv report")
	}
	s.metrics.ObserveExport("csv", time.Since(start))
	return payload, nil
}

// RenderPDF returns the report as a tabular PDF.
func (s *ReportService) RenderPDF(ctx context.Context, filter models.ReportFilter) ([]byte, error) {
	start := time.Now()
	data, err := s.dataset(ctx, filter)
	if err != nil {
		return nil, err
	}
	payload, err := s.pdf.Render(data, s.sheetName)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "render pdf report")
	}
	s.metrics.ObserveExport("pdf", time.Since(start))
	return payload, nil
}
