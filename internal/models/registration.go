package models

import "time"

// VerificationStatus tracks which party has confirmed an applicant's data.
type VerificationStatus string

const (
	VerificationNone      VerificationStatus = "PENDAFTARAN"
	VerifiedByOrigin      VerificationStatus = "VERIF_SD"
	VerifiedByDestination VerificationStatus = "VERIF_SMP"
)

// OutcomeStatus is the applicant's admission result for a track period.
type OutcomeStatus string

const (
	OutcomePending  OutcomeStatus = "PENDAFTARAN"
	OutcomeAdmitted OutcomeStatus = "LULUS"
	OutcomeRejected OutcomeStatus = "TIDAK_LULUS"
)

// ValidOutcomeStatus reports whether raw names a known outcome value.
func ValidOutcomeStatus(raw string) bool {
	switch OutcomeStatus(raw) {
	case OutcomePending, OutcomeAdmitted, OutcomeRejected:
		return true
	}
	return false
}

// Registration is one applicant record per (student, school, track period).
// Distances are metres, precomputed at application time.
type Registration struct {
	ID                 int64              `db:"id" json:"id"`
	StudentID          int64              `db:"student_id" json:"student_id"`
	SchoolID           int64              `db:"school_id" json:"school_id"`
	TrackPeriodID      int64              `db:"track_period_id" json:"track_period_id"`
	StraightDistance   float64            `db:"straight_distance_m" json:"straight_distance_m"`
	RouteDistance      float64            `db:"route_distance_m" json:"route_distance_m"`
	StudentAge         int                `db:"student_age" json:"student_age"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	OutcomeStatus      OutcomeStatus      `db:"outcome_status" json:"outcome_status"`
	CreatedAt          time.Time          `db:"created_at" json:"created_at"`
}

// OutcomeRow is a per-school announcement list entry.
type OutcomeRow struct {
	RegistrationID   int64         `db:"registration_id" json:"registration_id"`
	StudentID        int64         `db:"student_id" json:"student_id"`
	StudentName      string        `db:"student_name" json:"student_name"`
	NISN             string        `db:"nisn" json:"nisn"`
	OriginSchoolID   *int64        `db:"origin_school_id" json:"origin_school_id,omitempty"`
	OriginSchoolName *string       `db:"origin_school_name" json:"origin_school_name,omitempty"`
	OutcomeStatus    OutcomeStatus `db:"outcome_status" json:"outcome_status"`
}

// ZoningRow is a district-wide zoning registration list entry.
type ZoningRow struct {
	RegistrationID     int64              `db:"registration_id" json:"registration_id"`
	SchoolID           int64              `db:"school_id" json:"school_id"`
	SchoolName         string             `db:"school_name" json:"school_name"`
	StudentID          int64              `db:"student_id" json:"student_id"`
	StudentName        string             `db:"student_name" json:"student_name"`
	NISN               string             `db:"nisn" json:"nisn"`
	OriginSchoolName   *string            `db:"origin_school_name" json:"origin_school_name,omitempty"`
	StraightDistance   float64            `db:"straight_distance_m" json:"straight_distance_m"`
	RouteDistance      float64            `db:"route_distance_m" json:"route_distance_m"`
	VerificationStatus VerificationStatus `db:"verification_status" json:"verification_status"`
	OutcomeStatus      OutcomeStatus      `db:"outcome_status" json:"outcome_status"`
}

// ReportRow is a flat registration-report line joined with student
// demographics, in the fixed export display order.
type ReportRow struct {
	StudentName      string        `db:"student_name"`
	NIK              *string       `db:"nik"`
	NISN             string        `db:"nisn"`
	ResidentialAddr  string        `db:"residential_address"`
	FamilyCardAddr   *string       `db:"family_card_address"`
	BirthDate        time.Time     `db:"birth_date"`
	Phone            *string       `db:"phone"`
	Gender           string        `db:"gender"`
	Religion         *string       `db:"religion"`
	OriginSchoolName *string       `db:"origin_school_name"`
	SchoolName       string        `db:"school_name"`
	Village          *string       `db:"village"`
	Hamlet           *string       `db:"hamlet"`
	StudentAge       int           `db:"student_age"`
	StraightDistance float64       `db:"straight_distance_m"`
	RouteDistance    float64       `db:"route_distance_m"`
	OutcomeStatus    OutcomeStatus `db:"outcome_status"`
}

// OutcomeFilter scopes the per-school announcement list.
type OutcomeFilter struct {
	SchoolID      int64
	TrackPeriodID int64
	Method        RankingMethod
	Outcome       *OutcomeStatus
	Page          int
	PageSize      int
}

// ZoningFilter scopes the district-wide zoning registration list.
type ZoningFilter struct {
	TrackPeriodID int64
	SchoolID      *int64
	NISN          string
	Page          int
	PageSize      int
}

// ReportFilter scopes the flat registration report.
type ReportFilter struct {
	TrackPeriodID *int64
	SchoolID      *int64
	Outcome       *OutcomeStatus
}
