package dto

// ElementaryDashboardResponse summarises an origin (SD) school's applicants.
type ElementaryDashboardResponse struct {
	TotalStudents             int `json:"total_students"`
	TotalLinkedAccounts       int `json:"total_linked_accounts"`
	TotalApplied              int `json:"total_applied"`
	TotalAdmitted             int `json:"total_admitted"`
	TotalVerified             int `json:"total_verified"`
	TotalAwaitingVerification int `json:"total_awaiting_verification"`
	TotalIncompleteBiodata    int `json:"total_incomplete_biodata"`
	TotalIncompleteDocuments  int `json:"total_incomplete_documents"`
}

// JuniorDashboardResponse summarises a destination (SMP) school's applicants.
type JuniorDashboardResponse struct {
	TotalApplied              int `json:"total_applied"`
	TotalVerified             int `json:"total_verified"`
	TotalAwaitingVerification int `json:"total_awaiting_verification"`
	TotalAdmitted             int `json:"total_admitted"`
}

// DistrictDashboardResponse aggregates admission status across the district.
type DistrictDashboardResponse struct {
	TotalStudents             int `json:"total_students"`
	TotalElementarySchools    int `json:"total_elementary_schools"`
	TotalJuniorSchools        int `json:"total_junior_schools"`
	TotalApplied              int `json:"total_applied"`
	TotalVerified             int `json:"total_verified"`
	TotalAwaitingVerification int `json:"total_awaiting_verification"`
	TotalAdmitted             int `json:"total_admitted"`
	TotalRejected             int `json:"total_rejected"`
}

// TopSchoolEntry is one row of the top-schools-by-volume leaderboard.
type TopSchoolEntry struct {
	SchoolID        int64  `json:"school_id"`
	SchoolName      string `json:"school_name"`
	TotalApplicants int    `json:"total_applicants"`
}

// SchoolApplicantsEntry reports applicant volume against the zoning quota
// for one junior school.
type SchoolApplicantsEntry struct {
	SchoolID        int64  `json:"school_id"`
	SchoolName      string `json:"school_name"`
	NPSN            string `json:"npsn"`
	TotalApplicants int    `json:"total_applicants"`
	Quota           int    `json:"quota"`
}
