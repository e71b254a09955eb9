package scheduler

import (
	"context"

	"github.com/Dosada05/finalist-scheduler/models"
	"github.com/Dosada05/finalist-scheduler/timeslot"
)

// GenerateScheduleParams carries everything the generator needs to
// build the finalist schedule for one award division.
type GenerateScheduleParams struct {
	Division string

	// Categories are the scheduled categories, in the order their
	// nominations should be placed (the callers pass them sorted by
	// name).
	Categories []*models.Category

	// Teams is the team table, keyed by team number.
	Teams map[int]*models.Team

	// StartTime and SlotMinutes are the division's configured first
	// slot start and slot duration.
	StartTime   timeslot.LocalTime
	SlotMinutes int

	// PlayoffSchedules maps a playoff bracket name to its blackout
	// window.
	PlayoffSchedules map[string]*models.PlayoffSchedule
}

type ScheduleGenerator interface {
	GenerateSchedule(ctx context.Context, params GenerateScheduleParams) (timeslot.Schedule, error)

	GetName() string
}

// TeamCategoryMap maps each team number to the scheduled categories it
// is nominated into for the division. Overall categories count for
// every division; other categories only count when the team belongs to
// the division. Unknown team numbers are skipped.
func TeamCategoryMap(division string, categories []*models.Category, teams map[int]*models.Team) map[int][]*models.Category {
	result := make(map[int][]*models.Category)
	for _, category := range categories {
		for _, teamNumber := range category.Teams {
			team, ok := teams[teamNumber]
			if !ok {
				continue
			}
			if category.Overall || team.InDivision(division) {
				result[teamNumber] = append(result[teamNumber], category)
			}
		}
	}
	return result
}
