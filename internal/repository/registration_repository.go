package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
)

// RegistrationRepository owns reads and bulk mutations over applicant
// registrations.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs the repository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

var rankingColumns = map[models.RankingMethod]string{
	models.RankStraightLine:  "straight_distance_m",
	models.RankRouteDistance: "route_distance_m",
}

func rankingOrder(method models.RankingMethod, prefix string) string {
	column := rankingColumns[method]
	if column == "" {
		column = "straight_distance_m"
	}
	return fmt.Sprintf("%s%s ASC, %sstudent_age DESC, %sid ASC", prefix, column, prefix, prefix)
}

// AdmissionCandidateIDs returns the top-ranked eligible registration IDs for
// a school and track period, capped at limit.
func (r *RegistrationRepository) AdmissionCandidateIDs(ctx context.Context, schoolID, trackPeriodID int64, method models.RankingMethod, limit int) ([]int64, error) {
	query := fmt.Sprintf(`SELECT id FROM registrations
WHERE school_id = $1 AND track_period_id = $2 AND verification_status = $3
ORDER BY %s
LIMIT $4`, rankingOrder(method, ""))

	var ids []int64
	if err := r.db.SelectContext(ctx, &ids, query, schoolID, trackPeriodID, models.VerifiedByDestination, limit); err != nil {
		return nil, fmt.Errorf("select admission candidates: %w", err)
	}
	return ids, nil
}

// ApplyDecision rejects every registration for (school, track period) outside
// the admitted set, then marks the admitted set LULUS. Both updates run in a
// single transaction so readers never observe a half-applied partition.
func (r *RegistrationRepository) ApplyDecision(ctx context.Context, schoolID, trackPeriodID int64, admittedIDs []int64) (rejected, admitted int64, err error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, 0, fmt.Errorf("begin decision tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if admittedIDs == nil {
		admittedIDs = []int64{}
	}

	const rejectQuery = `UPDATE registrations SET outcome_status = $1
WHERE school_id = $2 AND track_period_id = $3 AND id <> ALL($4)`
	res, err := tx.ExecContext(ctx, rejectQuery, models.OutcomeRejected, schoolID, trackPeriodID, pq.Array(admittedIDs))
	if err != nil {
		return 0, 0, fmt.Errorf("reject registrations: %w", err)
	}
	rejected, _ = res.RowsAffected()

	if len(admittedIDs) > 0 {
		const admitQuery = `UPDATE registrations SET outcome_status = $1 WHERE id = ANY($2)`
		res, err = tx.ExecContext(ctx, admitQuery, models.OutcomeAdmitted, pq.Array(admittedIDs))
		if err != nil {
			return 0, 0, fmt.Errorf("admit registrations: %w", err)
		}
		admitted, _ = res.RowsAffected()
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("commit decision tx: %w", err)
	}
	return rejected, admitted, nil
}

// ListOutcomes returns the paginated per-school announcement list in the
// configured ranking order.
func (r *RegistrationRepository) ListOutcomes(ctx context.Context, filter models.OutcomeFilter) ([]models.OutcomeRow, int, error) {
	base := `FROM registrations r
JOIN students s ON s.id = r.student_id
LEFT JOIN schools os ON os.id = s.origin_school_id`

	conditions := []string{"r.school_id = $1", "r.track_period_id = $2", "r.verification_status = $3"}
	args := []interface{}{filter.SchoolID, filter.TrackPeriodID, models.VerifiedByDestination}

	if filter.Outcome != nil {
		conditions = append(conditions, fmt.Sprintf("r.outcome_status = $%d", len(args)+1))
		args = append(args, *filter.Outcome)
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

	query := fmt.Sprintf(`SELECT r.id AS registration_id, r.student_id, s.full_name AS student_name, s.nisn,
        s.origin_school_id, os.name AS origin_school_name, r.outcome_status
        %s ORDER BY %s LIMIT %d OFFSET %d`, base+clause, rankingOrder(filter.Method, "r."), size, offset)

	var rows []models.OutcomeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list outcomes: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count outcomes: %w", err)
	}
	return rows, total, nil
}

// ListZoning returns the paginated district-wide zoning registration list.
func (r *RegistrationRepository) ListZoning(ctx context.Context, filter models.ZoningFilter) ([]models.ZoningRow, int, error) {
	base := `FROM registrations r
JOIN students s ON s.id = r.student_id
JOIN schools dest ON dest.id = r.school_id
LEFT JOIN schools os ON os.id = s.origin_school_id`

	conditions := []string{"r.track_period_id = $1"}
	args := []interface{}{filter.TrackPeriodID}

	if filter.SchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("r.school_id = $%d", len(args)+1))
		args = append(args, *filter.SchoolID)
	}
	if filter.NISN != "" {
		conditions = append(conditions, fmt.Sprintf("s.nisn LIKE $%d", len(args)+1))
		args = append(args, "%"+filter.NISN+"%")
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

	query := fmt.Sprintf(`SELECT r.id AS registration_id, r.school_id, dest.name AS school_name,
        r.student_id, s.full_name AS student_name, s.nisn, os.name AS origin_school_name,
        r.straight_distance_m, r.route_distance_m, r.verification_status, r.outcome_status
        %s ORDER BY r.outcome_status ASC, r.id ASC LIMIT %d OFFSET %d`, base+clause, size, offset)

	var rows []models.ZoningRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list zoning registrations: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base+clause)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count zoning registrations: %w", err)
	}
	return rows, total, nil
}

// ReportRows opens a cursor over the flat registration report in the fixed
// display order (age desc, straight-line asc, route asc). Callers own the
// returned rows and must Close them.
func (r *RegistrationRepository) ReportRows(ctx context.Context, filter models.ReportFilter) (*sqlx.Rows, error) {
	base := `SELECT s.full_name AS student_name, s.nik, s.nisn, s.residential_address,
        s.family_card_address, s.birth_date, s.phone, s.gender, rel.name AS religion,
        os.name AS origin_school_name, dest.name AS school_name, v.name AS village, h.name AS hamlet,
        r.student_age, r.straight_distance_m, r.route_distance_m, r.outcome_status
FROM registrations r
JOIN students s ON s.id = r.student_id
JOIN schools dest ON dest.id = r.school_id
LEFT JOIN schools os ON os.id = s.origin_school_id
LEFT JOIN religions rel ON rel.id = s.religion_id
LEFT JOIN villages v ON v.id = s.village_id
LEFT JOIN hamlets h ON h.id = s.hamlet_id`

	var conditions []string
	var args []interface{}

	if filter.TrackPeriodID != nil {
		conditions = append(conditions, fmt.Sprintf("r.track_period_id = $%d", len(args)+1))
		args = append(args, *filter.TrackPeriodID)
	}
	if filter.SchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("r.school_id = $%d", len(args)+1))
		args = append(args, *filter.SchoolID)
	}
	if filter.Outcome != nil {
		conditions = append(conditions, fmt.Sprintf("r.outcome_status = $%d", len(args)+1))
		args = append(args, *filter.Outcome)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	query := base + clause + " ORDER BY r.student_age DESC, r.straight_distance_m ASC, r.route_distance_m ASC"
	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("open report cursor: %w", err)
	}
	return rows, nil
}

// CountBySchool tallies registrations per school for a track period,
// restricted to the given school IDs.
func (r *RegistrationRepository) CountBySchool(ctx context.Context, trackPeriodID int64, schoolIDs []int64) ([]models.SchoolRegistrationCount, error) {
	if len(schoolIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT school_id, COUNT(*) AS total FROM registrations
WHERE track_period_id = $1 AND school_id = ANY($2)
GROUP BY school_id ORDER BY school_id ASC`
	var counts []models.SchoolRegistrationCount
	if err := r.db.SelectContext(ctx, &counts, query, trackPeriodID, pq.Array(schoolIDs)); err != nil {
		return nil, fmt.Errorf("count registrations per school: %w", err)
	}
	return counts, nil
}

// TopSchools returns the schools with the highest applicant volume for a
// track period.
func (r *RegistrationRepository) TopSchools(ctx context.Context, trackPeriodID int64, limit int) ([]models.SchoolApplicantVolume, error) {
	if limit <= 0 {
		limit = 10
	}
	const query = `SELECT r.school_id, sc.name AS school_name, COUNT(*) AS total
FROM registrations r
JOIN schools sc ON sc.id = r.school_id
WHERE r.track_period_id = $1
GROUP BY r.school_id, sc.name
ORDER BY total DESC, r.school_id ASC
LIMIT $2`
	var volumes []models.SchoolApplicantVolume
	if err := r.db.SelectContext(ctx, &volumes, query, trackPeriodID, limit); err != nil {
		return nil, fmt.Errorf("top schools by volume: %w", err)
	}
	return volumes, nil
}

// RegistrationCountQuery composes the dashboard count predicates. Zero-value
// fields are omitted from the WHERE clause.
type RegistrationCountQuery struct {
	SchoolID       *int64
	OriginSchoolID *int64
	TrackPeriodID  *int64
	Verification   *models.VerificationStatus
	Outcome        *models.OutcomeStatus
}

// Count tallies registrations matching the composed predicates. Queries by
// origin school join through students.
func (r *RegistrationRepository) Count(ctx context.Context, q RegistrationCountQuery) (int, error) {
	base := "FROM registrations r"
	if q.OriginSchoolID != nil {
		base += " JOIN students s ON s.id = r.student_id"
	}

	var conditions []string
	var args []interface{}

	if q.SchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("r.school_id = $%d", len(args)+1))
		args = append(args, *q.SchoolID)
	}
	if q.OriginSchoolID != nil {
		conditions = append(conditions, fmt.Sprintf("s.origin_school_id = $%d", len(args)+1))
		args = append(args, *q.OriginSchoolID)
	}
	if q.TrackPeriodID != nil {
		conditions = append(conditions, fmt.Sprintf("r.track_period_id = $%d", len(args)+1))
		args = append(args, *q.TrackPeriodID)
	}
	if q.Verification != nil {
		conditions = append(conditions, fmt.Sprintf("r.verification_status = $%d", len(args)+1))
		args = append(args, *q.Verification)
	}
	if q.Outcome != nil {
		conditions = append(conditions, fmt.Sprintf("r.outcome_status = $%d", len(args)+1))
		args = append(args, *q.Outcome)
	}

	clause := ""
	if len(conditions) > 0 {
		clause = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base+clause, args...); err != nil {
		return 0, fmt.Errorf("count registrations: %w", err)
	}
	return total, nil
}
