package scheduler

import (
	"context"
	"errors"
	"sort"

	"github.com/Dosada05/finalist-scheduler/logging"
	"github.com/Dosada05/finalist-scheduler/timeslot"
)

// GreedyGenerator packs finalist judging into timeslots with a greedy
// first-fit scan. Teams nominated into the most categories are placed
// first, which keeps the total number of slots low. A team is never
// placed twice in one slot, a category holds one team per slot, and
// slots overlapping a team's playoff windows are skipped for that
// team.
type GreedyGenerator struct {
}

func NewGreedyGenerator() ScheduleGenerator {
	return &GreedyGenerator{}
}

func (g *GreedyGenerator) GetName() string {
	return "Greedy"
}

func (g *GreedyGenerator) GenerateSchedule(ctx context.Context, params GenerateScheduleParams) (timeslot.Schedule, error) {
	if params.SlotMinutes <= 0 {
		return nil, errors.New("slot duration must be positive")
	}

	logging.Log.Infof("creating schedule for division %q", params.Division)

	teamCategories := TeamCategoryMap(params.Division, params.Categories, params.Teams)

	// Teams needing the most slots go first. Ties are broken by team
	// number so the result does not depend on map iteration order.
	sortedTeams := make([]int, 0, len(teamCategories))
	for teamNumber := range teamCategories {
		sortedTeams = append(sortedTeams, teamNumber)
	}
	sort.Slice(sortedTeams, func(i, j int) bool {
		a, b := sortedTeams[i], sortedTeams[j]
		if len(teamCategories[a]) != len(teamCategories[b]) {
			return len(teamCategories[a]) > len(teamCategories[b])
		}
		return a < b
	})

	schedule := timeslot.Schedule{}
	nextTime := params.StartTime
	logging.Log.Debugf("next timeslot starts at %s, duration is %d minutes", nextTime, params.SlotMinutes)

	for _, teamNumber := range sortedTeams {
		team := params.Teams[teamNumber]

		for _, category := range teamCategories[teamNumber] {
			if !category.Scheduled {
				continue
			}

			scheduled := false
			for _, slot := range schedule {
				if !slot.BusyFor(category.ID) &&
					!slot.ContainsTeam(teamNumber) &&
					!HasPlayoffConflict(team, slot, params.PlayoffSchedules) {
					slot.Assign(category.ID, teamNumber)
					scheduled = true
					break
				}
			}

			// No existing slot fits: synthesize slots at the tail
			// until one clears the team's playoff windows. Slots that
			// conflict stay in the schedule unoccupied, so time only
			// ever advances.
			for !scheduled {
				slot := timeslot.NewTimeslot(nextTime, params.SlotMinutes)
				schedule = append(schedule, slot)
				nextTime = nextTime.AddMinutes(params.SlotMinutes)

				if !HasPlayoffConflict(team, slot, params.PlayoffSchedules) {
					slot.Assign(category.ID, teamNumber)
					scheduled = true
				}
			}
		}
	}

	return schedule, nil
}
