package models

// ChampionshipName is the reserved name of the championship category.
// It sorts by score only during auto-selection, ignoring judging
// groups.
const ChampionshipName = "Championship"

// Category is an award category teams are nominated into.
type Category struct {
	ID   int    `json:"catId"`
	Name string `json:"name"`

	// Numeric marks categories ranked by score; non-numeric
	// categories are judge nominated.
	Numeric bool `json:"numeric"`

	// Overall marks categories awarded once for the whole tournament
	// rather than once per award division.
	Overall bool `json:"overall"`

	// Scheduled marks categories that participate in the finalist
	// timeslot schedule.
	Scheduled bool `json:"scheduled"`

	// Teams is the ordered list of nominated team numbers, across all
	// divisions.
	Teams []int `json:"teams"`

	// Rooms maps an award division to the judging room used for this
	// category in that division.
	Rooms map[string]string `json:"rooms"`

	// Judges maps a team number to the judges that nominated it. Only
	// used for non-numeric categories.
	Judges map[int][]string `json:"judges"`
}

func NewCategory(id int, name string, numeric, overall bool) *Category {
	return &Category{
		ID:      id,
		Name:    name,
		Numeric: numeric,
		Overall: overall,
		Teams:   []int{},
		Rooms:   make(map[string]string),
		Judges:  make(map[int][]string),
	}
}

// HasTeam reports whether the team is nominated into the category.
func (c *Category) HasTeam(teamNumber int) bool {
	return c.teamIndex(teamNumber) >= 0
}

func (c *Category) teamIndex(teamNumber int) int {
	for i, n := range c.Teams {
		if n == teamNumber {
			return i
		}
	}
	return -1
}
