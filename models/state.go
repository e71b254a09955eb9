package models

import "github.com/Dosada05/finalist-scheduler/timeslot"

// FinalistState is the complete persistable state of a finalist
// scheduling session. It is what the persistence layer saves and
// restores across page loads.
type FinalistState struct {
	Teams          map[int]*Team     `json:"teams"`
	Categories     map[int]*Category `json:"categories"`
	NextCategoryID int               `json:"nextCategoryId"`

	Tournament      string   `json:"tournament"`
	Divisions       []string `json:"divisions"`
	CurrentDivision string   `json:"currentDivision"`

	NumTeamsAutoSelected int `json:"numTeamsAutoSelected"`

	// ScheduleParameters and PlayoffSchedules are keyed by award
	// division and playoff bracket name respectively.
	ScheduleParameters map[string]*ScheduleParameters `json:"scheduleParameters"`
	PlayoffSchedules   map[string]*PlayoffSchedule    `json:"playoffSchedules"`

	// CategoriesVisited maps a division to the category ids whose
	// numeric auto-selection already ran for that division.
	CategoriesVisited map[string][]int `json:"categoriesVisited"`

	// Schedules caches the computed schedule per division until
	// membership edits invalidate it.
	Schedules map[string]timeslot.Schedule `json:"schedules"`
}

// NewFinalistState returns an empty state with all tables initialized.
func NewFinalistState() *FinalistState {
	return &FinalistState{
		Teams:                make(map[int]*Team),
		Categories:           make(map[int]*Category),
		Divisions:            []string{},
		NumTeamsAutoSelected: 1,
		ScheduleParameters:   make(map[string]*ScheduleParameters),
		PlayoffSchedules:     make(map[string]*PlayoffSchedule),
		CategoriesVisited:    make(map[string][]int),
		Schedules:            make(map[string]timeslot.Schedule),
	}
}
