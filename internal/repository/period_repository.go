package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/ppdb-pengumuman-api/internal/models"
)

// PeriodRepository reads admission-track instances.
type PeriodRepository struct {
	db *sqlx.DB
}

// NewPeriodRepository constructs the repository.
func NewPeriodRepository(db *sqlx.DB) *PeriodRepository {
	return &PeriodRepository{db: db}
}

// ErrTrackPeriodNotFound signals a missing track period row.
var ErrTrackPeriodNotFound = errors.New("track period not found")

// FindByID returns one track period, or ErrTrackPeriodNotFound.
func (r *PeriodRepository) FindByID(ctx context.Context, id int64) (*models.TrackPeriod, error) {
	const query = `SELECT id, period_id, track_name, ranking_method FROM track_periods WHERE id = $1`
	var period models.TrackPeriod
	err := r.db.GetContext(ctx, &period, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrackPeriodNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find track period: %w", err)
	}
	return &period, nil
}

// ListByPeriod returns all track instances belonging to a period.
func (r *PeriodRepository) ListByPeriod(ctx context.Context, periodID int64) ([]models.TrackPeriod, error) {
	const query = `SELECT id, period_id, track_name, ranking_method FROM track_periods
WHERE period_id = $1 ORDER BY id ASC`
	var periods []models.TrackPeriod
	if err := r.db.SelectContext(ctx, &periods, query, periodID); err != nil {
		return nil, fmt.Errorf("list track periods: %w", err)
	}
	return periods, nil
}
