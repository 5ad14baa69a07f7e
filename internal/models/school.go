package models

// School levels as stored in the schools table.
const (
	SchoolLevelJunior     = 1 // SMP, destination schools
	SchoolLevelElementary = 2 // SD, origin schools
)

// QuotaTypeZoning is the quota type consumed by the decision engine.
const QuotaTypeZoning = "kuota_zonasi"

// School is a reference entity supplying display names and level linkage.
type School struct {
	ID      int64   `db:"id" json:"id"`
	Name    string  `db:"name" json:"name"`
	NPSN    *string `db:"npsn" json:"npsn,omitempty"`
	LevelID int     `db:"level_id" json:"level_id"`
}

// SchoolQuota is the configured seat count for (school, quota type, period).
type SchoolQuota struct {
	SchoolID  int64  `db:"school_id" json:"school_id"`
	PeriodID  int64  `db:"period_id" json:"period_id"`
	QuotaType string `db:"quota_type" json:"quota_type"`
	Seats     int    `db:"seats" json:"seats"`
}

// SchoolRegistrationCount is a per-school applicant tally.
type SchoolRegistrationCount struct {
	SchoolID int64 `db:"school_id" json:"school_id"`
	Total    int   `db:"total" json:"total"`
}

// SchoolApplicantVolume is a per-school applicant tally with display name,
// used by the top-schools leaderboard.
type SchoolApplicantVolume struct {
	SchoolID   int64  `db:"school_id" json:"school_id"`
	SchoolName string `db:"school_name" json:"school_name"`
	Total      int    `db:"total" json:"total"`
}

// SchoolFilter scopes the junior-school listing behind the
// applicants-vs-quota view.
type SchoolFilter struct {
	SchoolID *int64
	NPSN     string
	Page     int
	PageSize int
}
