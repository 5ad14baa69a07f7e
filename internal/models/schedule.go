package models

import "time"

// ScheduleStage is one stage window as served by the upstream period
// service. Field names follow its wire contract.
type ScheduleStage struct {
	StageName string    `json:"tahapan_nama"`
	IsClosed  int       `json:"is_closed"`
	StartsAt  time.Time `json:"waktu_mulai"`
	EndsAt    time.Time `json:"waktu_selesai"`
}

// Open reports whether the stage admits requests at the given instant.
func (s ScheduleStage) Open(now time.Time) bool {
	return s.IsClosed != 1 && !now.Before(s.StartsAt) && !now.After(s.EndsAt)
}
