package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
)

// SchoolRepository reads school reference data.
type SchoolRepository struct {
	db *sqlx.DB
}

// NewSchoolRepository constructs the repository.
func NewSchoolRepository(db *sqlx.DB) *SchoolRepository {
	return &SchoolRepository{db: db}
}

// ListJunior returns the paginated junior-school listing behind the
// applicants-vs-quota view.
func (r *SchoolRepository) ListJunior(ctx context.Context, filter models.SchoolFilter) ([]models.School, int, error) {
	conditions := []string{"level_id = $1"}
	args := []interface{}{models.SchoolLevelJunior}

	if filter.SchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("id = $%d", len(args)+1))
		args = append(args, *filter.SchoolID)
	}
	if filter.NPSN != "" {
		conditions = append(conditions, fmt.Sprintf("npsn LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.NPSN+"%")
	}

	clause := " WHERE " + strings.Join(conditions, " AND ")

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 10
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, name, npsn, level_id FROM schools%s
ORDER BY name ASC LIMIT %d OFFSET %d`, clause, size, offset)

	var schools []models.School
	if err := r.db.SelectContext(ctx, &schools, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list junior schools: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM schools"+clause, args...); err != nil {
		return nil, 0, fmt.Errorf("count junior schools: %w", err)
	}
	return schools, total, nil
}

// CountByLevel tallies schools at one level.
func (r *SchoolRepository) CountByLevel(ctx context.Context, levelID int) (int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM schools WHERE level_id = $1", levelID); err != nil {
		return 0, fmt.Errorf("count schools by level: %w", err)
	}
	return total, nil
}
