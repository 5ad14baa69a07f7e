package dto

// DecisionRequest triggers an admission decision run for one school and
// track period. Field names follow the public PPDB API contract.
type DecisionRequest struct {
	SchoolID      int64 `json:"sekolah_id" validate:"required,gt=0"`
	TrackPeriodID int64 `json:"periode_jalur_id" validate:"required,gt=0"`
}

// DecisionResult summarises an admission decision run.
type DecisionResult struct {
	SchoolID      int64 `json:"school_id"`
	TrackPeriodID int64 `json:"track_period_id"`
	Admitted      int64 `json:"admitted"`
	Rejected      int64 `json:"rejected"`
}
