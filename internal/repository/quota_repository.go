package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
)

// QuotaRepository reads configured seat counts per school and period.
type QuotaRepository struct {
	db *sqlx.DB
}

// NewQuotaRepository constructs the repository.
func NewQuotaRepository(db *sqlx.DB) *QuotaRepository {
	return &QuotaRepository{db: db}
}

// ErrQuotaNotFound signals a missing zoning quota row.
var ErrQuotaNotFound = errors.New("zoning quota not configured")

// FindZoningQuota returns the zoning quota for (school, period), or
// ErrQuotaNotFound when no row is configured.
func (r *QuotaRepository) FindZoningQuota(ctx context.Context, schoolID, periodID int64) (*models.SchoolQuota, error) {
	const query = `SELECT school_id, period_id, quota_type, seats FROM school_quotas
WHERE school_id = $1 AND period_id = $2 AND quota_type = $3`
	var quota models.SchoolQuota
	err := r.db.GetContext(ctx, &quota, query, schoolID, periodID, models.QuotaTypeZoning)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrQuotaNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find zoning quota: %w", err)
	}
	return &quota, nil
}

// ListZoningQuotas returns zoning quotas for the given schools in one period,
// keyed by school ID. Schools without a configured quota are absent from the
// map.
func (r *QuotaRepository) ListZoningQuotas(ctx context.Context, periodID int64, schoolIDs []int64) (map[int64]int, error) {
	if len(schoolIDs) == 0 {
		return map[int64]int{}, nil
	}
	const query = `SELECT school_id, period_id, quota_type, seats FROM school_quotas
WHERE period_id = $1 AND quota_type = $2 AND school_id = ANY($3)`
	var quotas []models.SchoolQuota
	if err := r.db.SelectContext(ctx, &quotas, query, periodID, models.QuotaTypeZoning, pq.Array(schoolIDs)); err != nil {
		return nil, fmt.Errorf("list zoning quotas: %w", err)
	}
	seats := make(map[int64]int, len(quotas))
	for _, q := range quotas {
		seats[q.SchoolID] = q.Seats
	}
	return seats, nil
}
