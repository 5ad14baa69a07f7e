package models

import (
	"fmt"
	"strings"
)

// TrackZoning is the admission track whose seats are allocated by
// geographic proximity ranking.
const TrackZoning = "zonasi"

// RankingMethod selects the primary sort key for zoning admission.
type RankingMethod string

const (
	RankStraightLine  RankingMethod = "jarak_lurus"
	RankRouteDistance RankingMethod = "jarak_rute"
)

// ParseRankingMethod normalises a stored ranking method value.
func ParseRankingMethod(raw string) (RankingMethod, error) {
	switch RankingMethod(strings.ToLower(strings.TrimSpace(raw))) {
	case RankStraightLine:
		return RankStraightLine, nil
	case RankRouteDistance:
		return RankRouteDistance, nil
	default:
		return "", fmt.Errorf("unknown ranking method %q", raw)
	}
}

// TrackPeriod identifies an admission-track instance within a period.
// RankingMethod is only set for zoning tracks.
type TrackPeriod struct {
	ID            int64   `db:"id" json:"id"`
	PeriodID      int64   `db:"period_id" json:"period_id"`
	TrackName     string  `db:"track_name" json:"track_name"`
	RankingMethod *string `db:"ranking_method" json:"ranking_method,omitempty"`
}

// IsZoning reports whether the track allocates seats by proximity ranking.
func (p TrackPeriod) IsZoning() bool {
	return strings.EqualFold(strings.TrimSpace(p.TrackName), TrackZoning)
}
