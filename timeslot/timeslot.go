package timeslot

// Timeslot is a single judging slot. Categories maps a category id to
// the team number occupying that category during the slot; each
// category holds at most one team.
type Timeslot struct {
	Time       LocalTime   `json:"time"`
	EndTime    LocalTime   `json:"endTime"`
	Categories map[int]int `json:"categories"`
}

// NewTimeslot creates a slot starting at the given time with the given
// duration in minutes.
func NewTimeslot(start LocalTime, durationMinutes int) *Timeslot {
	return &Timeslot{
		Time:       start,
		EndTime:    start.AddMinutes(durationMinutes),
		Categories: make(map[int]int),
	}
}

// Assign places a team into the slot for a category, replacing any
// previous occupant of that category.
func (s *Timeslot) Assign(categoryID, teamNumber int) {
	if s.Categories == nil {
		s.Categories = make(map[int]int)
	}
	s.Categories[categoryID] = teamNumber
}

func (s *Timeslot) Unassign(categoryID int) {
	delete(s.Categories, categoryID)
}

func (s *Timeslot) Clear() {
	s.Categories = make(map[int]int)
}

// BusyFor reports whether the slot already has an occupant for the
// category.
func (s *Timeslot) BusyFor(categoryID int) bool {
	_, ok := s.Categories[categoryID]
	return ok
}

// TeamFor returns the team occupying the category in this slot.
func (s *Timeslot) TeamFor(categoryID int) (int, bool) {
	teamNumber, ok := s.Categories[categoryID]
	return teamNumber, ok
}

// ContainsTeam reports whether the team occupies any category in this
// slot.
func (s *Timeslot) ContainsTeam(teamNumber int) bool {
	for _, occupant := range s.Categories {
		if occupant == teamNumber {
			return true
		}
	}
	return false
}

// CategoryCountFor returns the number of categories the team occupies
// within this slot. More than one means the team is double booked.
func (s *Timeslot) CategoryCountFor(teamNumber int) int {
	count := 0
	for _, occupant := range s.Categories {
		if occupant == teamNumber {
			count++
		}
	}
	return count
}

// Overlaps reports whether the half-open interval [start, end) of
// another window intersects this slot's [Time, EndTime).
func (s *Timeslot) Overlaps(start, end LocalTime) bool {
	return start.Before(s.EndTime) && s.Time.Before(end)
}
