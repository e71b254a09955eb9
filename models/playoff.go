package models

import "github.com/Dosada05/finalist-scheduler/timeslot"

// PlayoffSchedule is the blackout window of one head to head bracket.
// Finalist judging must not place a team competing in the bracket into
// a slot overlapping this window. Either time may be unset; a window
// with a missing endpoint never conflicts.
type PlayoffSchedule struct {
	StartTime *timeslot.LocalTime `json:"startTime,omitempty"`
	EndTime   *timeslot.LocalTime `json:"endTime,omitempty"`
}

// Window returns the blackout interval. ok is false unless both
// endpoints are set.
func (p *PlayoffSchedule) Window() (start, end timeslot.LocalTime, ok bool) {
	if p == nil || p.StartTime == nil || p.EndTime == nil {
		return timeslot.LocalTime{}, timeslot.LocalTime{}, false
	}
	return *p.StartTime, *p.EndTime, true
}
