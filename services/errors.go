package services

import "errors"

// Errors shared across the finalist service. Identity collisions fail
// fast; lookup misses return absent results instead of errors.
var (
	ErrTeamNumberConflict   = errors.New("team already exists with this number")
	ErrCategoryNameConflict = errors.New("category already exists with this name")

	ErrNoSchedule    = errors.New("no schedule cached for the division")
	ErrEmptySchedule = errors.New("schedule has no slots to append after")
)
