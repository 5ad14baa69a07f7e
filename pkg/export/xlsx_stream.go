package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// XLSXStream writes spreadsheet rows incrementally so large exports never
// materialise as a full in-memory row set.
type XLSXStream struct {
	file   *excelize.File
	writer *excelize.StreamWriter
	row    int
}

// NewXLSXStream opens a single-sheet workbook ready for row writes.
func NewXLSXStream(sheet string) (*XLSXStream, error) {
	f := excelize.NewFile()
	if sheet != "" && sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			_ = f.Close()
			return nil, fmt.Errorf("rename sheet: %w", err)
		}
	} else {
		sheet = "Sheet1"
	}
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("open stream writer: %w", err)
	}
	return &XLSXStream{file: f, writer: sw, row: 1}, nil
}

// WriteRow appends one row of cell values.
func (s *XLSXStream) WriteRow(values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, s.row)
	if err != nil {
		return fmt.Errorf("row coordinate: %w", err)
	}
	if err := s.writer.SetRow(cell, values); err != nil {
		return fmt.Errorf("write row %d: %w", s.row, err)
	}
	s.row++
	return nil
}

// Finalize flushes pending rows and writes the workbook to out.
func (s *XLSXStream) Finalize(out io.Writer) error {
	if err := s.writer.Flush(); err != nil {
		return fmt.Errorf("flush stream writer: %w", err)
	}
	if err := s.file.Write(out); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return s.file.Close()
}
