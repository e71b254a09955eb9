package models

import "github.com/Dosada05/finalist-scheduler/timeslot"

// DefaultSlotDurationMinutes is used when a division has no explicit
// slot duration configured.
const DefaultSlotDurationMinutes = 20

// ScheduleParameters holds the per-division knobs of the finalist
// schedule: when the first slot starts and how long each slot lasts.
type ScheduleParameters struct {
	StartTime       timeslot.LocalTime `json:"startTime"`
	IntervalMinutes int                `json:"intervalMinutes"`
}

func NewScheduleParameters(start timeslot.LocalTime) *ScheduleParameters {
	return &ScheduleParameters{
		StartTime:       start,
		IntervalMinutes: DefaultSlotDurationMinutes,
	}
}
