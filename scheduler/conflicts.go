package scheduler

import (
	"github.com/Dosada05/finalist-scheduler/models"
	"github.com/Dosada05/finalist-scheduler/timeslot"
)

// SlotHasPlayoffConflict reports whether the slot overlaps the
// bracket's blackout window. Windows with a missing endpoint never
// conflict.
func SlotHasPlayoffConflict(playoff *models.PlayoffSchedule, slot *timeslot.Timeslot) bool {
	start, end, ok := playoff.Window()
	if !ok {
		return false
	}
	return slot.Overlaps(start, end)
}

// HasPlayoffConflict reports whether any of the team's playoff
// brackets has a blackout window overlapping the slot.
func HasPlayoffConflict(team *models.Team, slot *timeslot.Timeslot, playoffs map[string]*models.PlayoffSchedule) bool {
	if team == nil {
		return false
	}
	for _, bracketName := range team.PlayoffDivisions {
		if SlotHasPlayoffConflict(playoffs[bracketName], slot) {
			return true
		}
	}
	return false
}
