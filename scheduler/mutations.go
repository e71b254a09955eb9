package scheduler

import (
	"errors"

	"github.com/Dosada05/finalist-scheduler/models"
	"github.com/Dosada05/finalist-scheduler/timeslot"
)

var (
	ErrSlotNotInSchedule = errors.New("destination slot is not part of the schedule")
	ErrTeamNotInSchedule = errors.New("team has no slot for the category in the schedule")
)

// WarningKind classifies a schedule warning raised by a manual move.
type WarningKind string

const (
	// WarningDoubleBooked means a team occupies more than one
	// category within the same slot.
	WarningDoubleBooked WarningKind = "double_booked"

	// WarningPlayoffOverlap means a team was placed into a slot
	// overlapping one of its playoff blackout windows.
	WarningPlayoffOverlap WarningKind = "playoff_overlap"
)

// MoveWarning flags a conflict introduced by a manual slot edit.
// Manual moves are allowed to create conflicts; callers surface these
// instead of rejecting the edit.
type MoveWarning struct {
	Kind       WarningKind
	TeamNumber int
	SlotTime   timeslot.LocalTime
}

// TeamLookup resolves a team number to a team.
type TeamLookup func(teamNumber int) (*models.Team, bool)

// MoveTeam moves a team's placement for a category into the slot of
// the schedule starting at dest.Time. If that slot already holds a
// team for the category, the occupants swap slots. Both touched slots
// are re-validated and any conflicts are returned as warnings. The
// schedule's set of slots never changes.
func MoveTeam(schedule timeslot.Schedule, team *models.Team, category *models.Category, dest *timeslot.Timeslot, lookup TeamLookup, playoffs map[string]*models.PlayoffSchedule) ([]MoveWarning, error) {
	destSlot, ok := schedule.SlotAt(dest.Time)
	if !ok {
		return nil, ErrSlotNotInSchedule
	}

	var srcSlot *timeslot.Timeslot
	for _, slot := range schedule {
		if occupant, busy := slot.TeamFor(category.ID); busy && occupant == team.Number {
			srcSlot = slot
			break
		}
	}
	if srcSlot == nil {
		return nil, ErrTeamNotInSchedule
	}

	if srcSlot.Time.Equal(destSlot.Time) {
		// Dropped on the slot the team is already in.
		return nil, nil
	}

	if occupant, busy := destSlot.TeamFor(category.ID); busy {
		// Swap: the displaced team takes the vacated source slot.
		srcSlot.Assign(category.ID, occupant)
	} else {
		srcSlot.Unassign(category.ID)
	}
	destSlot.Assign(category.ID, team.Number)

	warnings := slotWarnings(destSlot, lookup, playoffs)
	warnings = append(warnings, slotWarnings(srcSlot, lookup, playoffs)...)
	return warnings, nil
}

// slotWarnings re-validates one slot, reporting each occupant that is
// double booked or sits inside one of its playoff windows.
func slotWarnings(slot *timeslot.Timeslot, lookup TeamLookup, playoffs map[string]*models.PlayoffSchedule) []MoveWarning {
	var warnings []MoveWarning
	seen := make(map[int]bool)
	for _, teamNumber := range slot.Categories {
		if seen[teamNumber] {
			continue
		}
		seen[teamNumber] = true

		if slot.CategoryCountFor(teamNumber) > 1 {
			warnings = append(warnings, MoveWarning{
				Kind:       WarningDoubleBooked,
				TeamNumber: teamNumber,
				SlotTime:   slot.Time,
			})
		}

		if lookup != nil {
			if team, ok := lookup(teamNumber); ok && HasPlayoffConflict(team, slot, playoffs) {
				warnings = append(warnings, MoveWarning{
					Kind:       WarningPlayoffOverlap,
					TeamNumber: teamNumber,
					SlotTime:   slot.Time,
				})
			}
		}
	}
	return warnings
}
