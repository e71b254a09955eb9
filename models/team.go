package models

// Team represents a competing team known to the finalist scheduler.
// The team number is the primary key and unique across the whole team
// table.
type Team struct {
	Number       int    `json:"num"`
	Name         string `json:"name"`
	Organization string `json:"org"`

	// JudgingGroup is the grouping used to compare numeric scores
	// during auto-selection.
	JudgingGroup string `json:"judgingGroup"`

	// Divisions is the set of award divisions the team belongs to.
	Divisions []string `json:"divisions"`

	// PlayoffDivisions names the head to head brackets the team is
	// competing in.
	PlayoffDivisions []string `json:"playoffDivisions"`

	// CategoryScores maps a category id to the team's score in that
	// category.
	CategoryScores map[int]float64 `json:"categoryScores"`
}

func NewTeam(number int, name, organization, judgingGroup string) *Team {
	return &Team{
		Number:           number,
		Name:             name,
		Organization:     organization,
		JudgingGroup:     judgingGroup,
		Divisions:        []string{},
		PlayoffDivisions: []string{},
		CategoryScores:   make(map[int]float64),
	}
}

// AddDivision adds the team to an award division. Adding a division
// the team is already in has no effect.
func (t *Team) AddDivision(division string) {
	if !t.InDivision(division) {
		t.Divisions = append(t.Divisions, division)
	}
}

func (t *Team) InDivision(division string) bool {
	if t == nil {
		return false
	}
	for _, d := range t.Divisions {
		if d == division {
			return true
		}
	}
	return false
}

// AddPlayoffDivision adds the team to a playoff bracket. A team may be
// in multiple brackets.
func (t *Team) AddPlayoffDivision(division string) {
	for _, d := range t.PlayoffDivisions {
		if d == division {
			return
		}
	}
	t.PlayoffDivisions = append(t.PlayoffDivisions, division)
}

// Score returns the team's score for the category, if one has been
// recorded.
func (t *Team) Score(categoryID int) (float64, bool) {
	score, ok := t.CategoryScores[categoryID]
	return score, ok
}

func (t *Team) SetScore(categoryID int, score float64) {
	if t.CategoryScores == nil {
		t.CategoryScores = make(map[int]float64)
	}
	t.CategoryScores[categoryID] = score
}
