package services

import (
	"github.com/Dosada05/finalist-scheduler/models"
)

// ExportSchedule flattens the division's cached schedule into the
// shape the server consumes: one row per occupied (category, team)
// cell tagged with the slot's hour and minute, plus the scheduled
// categories with their rooms for the division.
func (s *FinalistService) ExportSchedule(division string) (*models.ScheduleExport, error) {
	schedule, ok := s.CachedSchedule(division)
	if !ok {
		return nil, ErrNoSchedule
	}

	categories := s.ScheduledCategories()

	export := &models.ScheduleExport{
		Division:   division,
		Categories: make([]models.FinalistCategory, 0, len(categories)),
		Schedule:   []models.ScheduleRow{},
	}
	for _, category := range categories {
		export.Categories = append(export.Categories, models.FinalistCategory{
			CategoryName: category.Name,
			Room:         s.Room(category, division),
		})
	}

	for _, slot := range schedule {
		for _, category := range categories {
			teamNumber, occupied := slot.TeamFor(category.ID)
			if !occupied {
				continue
			}
			export.Schedule = append(export.Schedule, models.ScheduleRow{
				CategoryName: category.Name,
				Hour:         slot.Time.Hour,
				Minute:       slot.Time.Minute,
				TeamNumber:   teamNumber,
			})
		}
	}

	return export, nil
}

// NonNumericNomineesExport collects the nominees of every non-numeric
// category, with their nominating judges, for upload.
func (s *FinalistService) NonNumericNomineesExport() []models.NonNumericNominees {
	var all []models.NonNumericNominees
	for _, category := range s.NonNumericCategories() {
		nominees := make([]models.Nominee, 0, len(category.Teams))
		for _, teamNumber := range category.Teams {
			nominees = append(nominees, models.Nominee{
				TeamNumber: teamNumber,
				Judges:     s.NominatingJudges(category, teamNumber),
			})
		}
		all = append(all, models.NonNumericNominees{
			CategoryName: category.Name,
			Nominees:     nominees,
		})
	}
	return all
}
