package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// StudentRepository reads student master data for the dashboards.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs the repository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// CountByOriginSchool tallies students enrolled at one origin school.
func (r *StudentRepository) CountByOriginSchool(ctx context.Context, originSchoolID int64) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students WHERE origin_school_id = $1", originSchoolID); err != nil {
		return 0, fmt.Errorf("count students by origin school: %w", err)
	}
	return total, nil
}

// CountLinkedAccounts tallies students at one origin school whose record is
// linked to a login account.
func (r *StudentRepository) CountLinkedAccounts(ctx context.Context, originSchoolID int64) (int, error) {
	var total int
	const query = `SELECT COUNT(*) FROM students WHERE origin_school_id = $1 AND user_id IS NOT NULL`
	if err := r.db.GetContext(ctx, &total, query, originSchoolID); err != nil {
		return 0, fmt.Errorf("count linked accounts: %w", err)
	}
	return total, nil
}

// CountAll tallies all student records.
func (r *StudentRepository) CountAll(ctx context.Context) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM students"); err != nil {
		return 0, fmt.Errorf("count students: %w", err)
	}
	return total, nil
}

// Biodata is incomplete when any of these demographic or address columns is
// still NULL.
var incompleteBiodataPredicate = `(s.nik IS NULL OR s.birth_date IS NULL OR s.gender IS NULL
	OR s.religion_id IS NULL OR s.phone IS NULL OR s.residential_address IS NULL
	OR s.family_card_address IS NULL OR s.village_id IS NULL OR s.hamlet_id IS NULL)`

// CountIncompleteBiodata tallies students at one origin school with missing
// demographic or address fields.
func (r *StudentRepository) CountIncompleteBiodata(ctx context.Context, originSchoolID int64) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM students s
WHERE s.origin_school_id = $1 AND %s`, incompleteBiodataPredicate)
	var total int
	if err := r.db.GetContext(ctx, &total, query, originSchoolID); err != nil {
		return 0, fmt.Errorf("count incomplete biodata: %w", err)
	}
	return total, nil
}

// CountIncompleteDocuments tallies students at one origin school with fewer
// than the required four attached documents.
func (r *StudentRepository) CountIncompleteDocuments(ctx context.Context, originSchoolID int64) (int, error) {
	const query = `SELECT COUNT(*) FROM students s
LEFT JOIN (SELECT student_id, COUNT(*) AS doc_count FROM student_documents GROUP BY student_id) d
	ON d.student_id = s.id
WHERE s.origin_school_id = $1 AND COALESCE(d.doc_count, 0) < 4`
	var total int
	if err := r.db.GetContext(ctx, &total, query, originSchoolID); err != nil {
		return 0, fmt.Errorf("count incomplete documents: %w", err)
	}
	return total, nil
}
