package services

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/Dosada05/finalist-scheduler/logging"
	"github.com/Dosada05/finalist-scheduler/models"
	"github.com/Dosada05/finalist-scheduler/scheduler"
	"github.com/Dosada05/finalist-scheduler/timeslot"
)

// FinalistService is the state context for one finalist scheduling
// session: the team and category tables, playoff windows, per-division
// schedule parameters and the schedule cache. Every operation works on
// this explicit context; persistence happens only through State and
// Restore.
type FinalistService struct {
	state     *models.FinalistState
	generator scheduler.ScheduleGenerator

	defaultStartTime timeslot.LocalTime
	defaultMinutes   int
}

type FinalistServiceOptions struct {
	// Generator defaults to the greedy generator.
	Generator scheduler.ScheduleGenerator

	// DefaultStartTime is used for divisions without configured
	// parameters. The zero value means 14:00.
	DefaultStartTime timeslot.LocalTime

	// DefaultSlotMinutes defaults to models.DefaultSlotDurationMinutes.
	DefaultSlotMinutes int

	// NumTeamsAutoSelected defaults to 1.
	NumTeamsAutoSelected int
}

func NewFinalistService(opts FinalistServiceOptions) *FinalistService {
	generator := opts.Generator
	if generator == nil {
		generator = scheduler.NewGreedyGenerator()
	}
	start := opts.DefaultStartTime
	if (start == timeslot.LocalTime{}) {
		start = timeslot.NewLocalTime(14, 0)
	}
	minutes := opts.DefaultSlotMinutes
	if minutes <= 0 {
		minutes = models.DefaultSlotDurationMinutes
	}

	state := models.NewFinalistState()
	if opts.NumTeamsAutoSelected > 0 {
		state.NumTeamsAutoSelected = opts.NumTeamsAutoSelected
	}

	return &FinalistService{
		state:            state,
		generator:        generator,
		defaultStartTime: start,
		defaultMinutes:   minutes,
	}
}

// State exposes the persistable session state.
func (s *FinalistService) State() *models.FinalistState {
	return s.state
}

// Restore replaces the session state, for example with one loaded from
// the persistence layer.
func (s *FinalistService) Restore(state *models.FinalistState) {
	if state == nil {
		state = models.NewFinalistState()
	}
	s.state = state
}

// ClearAllData resets the session to an empty state.
func (s *FinalistService) ClearAllData() {
	numAutoSelected := s.state.NumTeamsAutoSelected
	s.state = models.NewFinalistState()
	s.state.NumTeamsAutoSelected = numAutoSelected
}

func (s *FinalistService) Tournament() string {
	return s.state.Tournament
}

func (s *FinalistService) SetTournament(tournament string) {
	s.state.Tournament = tournament
}

func (s *FinalistService) NumTeamsAutoSelected() int {
	return s.state.NumTeamsAutoSelected
}

func (s *FinalistService) SetNumTeamsAutoSelected(n int) {
	if n >= 1 {
		s.state.NumTeamsAutoSelected = n
	}
}

// ---------------------------------------------------------------------
// Divisions

// AddDivision adds an award division. Known divisions are not added
// twice.
func (s *FinalistService) AddDivision(division string) {
	for _, d := range s.state.Divisions {
		if d == division {
			return
		}
	}
	s.state.Divisions = append(s.state.Divisions, division)
}

func (s *FinalistService) Divisions() []string {
	return s.state.Divisions
}

func (s *FinalistService) DivisionByIndex(index int) (string, bool) {
	if index < 0 || index >= len(s.state.Divisions) {
		return "", false
	}
	return s.state.Divisions[index], true
}

func (s *FinalistService) SetCurrentDivision(division string) {
	s.state.CurrentDivision = division
}

func (s *FinalistService) CurrentDivision() string {
	return s.state.CurrentDivision
}

// ---------------------------------------------------------------------
// Playoff brackets

// AddPlayoffDivision registers a playoff bracket with an unset
// blackout window. Known brackets are not touched.
func (s *FinalistService) AddPlayoffDivision(division string) {
	if _, ok := s.state.PlayoffSchedules[division]; !ok {
		s.state.PlayoffSchedules[division] = &models.PlayoffSchedule{}
	}
}

// PlayoffSchedules returns the blackout windows keyed by bracket name.
// Windows may have unset times.
func (s *FinalistService) PlayoffSchedules() map[string]*models.PlayoffSchedule {
	return s.state.PlayoffSchedules
}

func (s *FinalistService) PlayoffStartTime(division string) (timeslot.LocalTime, bool) {
	existing, ok := s.state.PlayoffSchedules[division]
	if !ok || existing.StartTime == nil {
		return timeslot.LocalTime{}, false
	}
	return *existing.StartTime, true
}

func (s *FinalistService) SetPlayoffStartTime(division string, start timeslot.LocalTime) {
	existing, ok := s.state.PlayoffSchedules[division]
	if !ok {
		existing = &models.PlayoffSchedule{}
		s.state.PlayoffSchedules[division] = existing
	}
	existing.StartTime = &start
}

func (s *FinalistService) PlayoffEndTime(division string) (timeslot.LocalTime, bool) {
	existing, ok := s.state.PlayoffSchedules[division]
	if !ok || existing.EndTime == nil {
		return timeslot.LocalTime{}, false
	}
	return *existing.EndTime, true
}

func (s *FinalistService) SetPlayoffEndTime(division string, end timeslot.LocalTime) {
	existing, ok := s.state.PlayoffSchedules[division]
	if !ok {
		existing = &models.PlayoffSchedule{}
		s.state.PlayoffSchedules[division] = existing
	}
	existing.EndTime = &end
}

// ---------------------------------------------------------------------
// Teams

// AddTeam creates a team. Creating a team with an already used number
// fails with ErrTeamNumberConflict.
func (s *FinalistService) AddTeam(number int, name, organization, judgingGroup string) (*models.Team, error) {
	if _, exists := s.state.Teams[number]; exists {
		return nil, fmt.Errorf("team %d: %w", number, ErrTeamNumberConflict)
	}
	team := models.NewTeam(number, name, organization, judgingGroup)
	s.state.Teams[number] = team
	return team, nil
}

// LookupTeam finds a team by number.
func (s *FinalistService) LookupTeam(number int) (*models.Team, bool) {
	team, ok := s.state.Teams[number]
	return team, ok
}

// AllTeams returns every team, ordered by team number.
func (s *FinalistService) AllTeams() []*models.Team {
	teams := make([]*models.Team, 0, len(s.state.Teams))
	for _, team := range s.state.Teams {
		teams = append(teams, team)
	}
	sort.Slice(teams, func(i, j int) bool {
		return teams[i].Number < teams[j].Number
	})
	return teams
}

func (s *FinalistService) CategoryScore(team *models.Team, category *models.Category) (float64, bool) {
	return team.Score(category.ID)
}

func (s *FinalistService) SetCategoryScore(team *models.Team, category *models.Category, score float64) {
	team.SetScore(category.ID, score)
}

// ---------------------------------------------------------------------
// Categories

// AddCategory creates a category. Names are unique with a
// case-sensitive exact match; duplicates fail with
// ErrCategoryNameConflict. Ids come from a monotonically increasing
// counter, so ids of removed categories are never reused.
func (s *FinalistService) AddCategory(name string, numeric, overall bool) (*models.Category, error) {
	for _, existing := range s.state.Categories {
		if existing.Name == name {
			return nil, fmt.Errorf("category %q: %w", name, ErrCategoryNameConflict)
		}
	}

	category := models.NewCategory(s.state.NextCategoryID, name, numeric, overall)
	s.state.NextCategoryID++
	s.state.Categories[category.ID] = category
	return category, nil
}

func (s *FinalistService) RemoveCategory(category *models.Category) {
	delete(s.state.Categories, category.ID)
}

func (s *FinalistService) CategoryByID(id int) (*models.Category, bool) {
	category, ok := s.state.Categories[id]
	return category, ok
}

func (s *FinalistService) CategoryByName(name string) (*models.Category, bool) {
	for _, category := range s.state.Categories {
		if category.Name == name {
			return category, true
		}
	}
	return nil, false
}

func (s *FinalistService) NumericCategories() []*models.Category {
	return s.categoriesWhere(func(c *models.Category) bool { return c.Numeric })
}

func (s *FinalistService) NonNumericCategories() []*models.Category {
	return s.categoriesWhere(func(c *models.Category) bool { return !c.Numeric })
}

func (s *FinalistService) AllCategories() []*models.Category {
	return s.categoriesWhere(func(*models.Category) bool { return true })
}

// ScheduledCategories returns the categories participating in the
// finalist schedule, sorted by name.
func (s *FinalistService) ScheduledCategories() []*models.Category {
	return s.categoriesWhere(func(c *models.Category) bool { return c.Scheduled })
}

func (s *FinalistService) categoriesWhere(keep func(*models.Category) bool) []*models.Category {
	var categories []*models.Category
	for _, category := range s.state.Categories {
		if keep(category) {
			categories = append(categories, category)
		}
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].Name < categories[j].Name
	})
	return categories
}

func (s *FinalistService) SetCategoryScheduled(category *models.Category, scheduled bool) {
	category.Scheduled = scheduled
}

func (s *FinalistService) IsCategoryScheduled(category *models.Category) bool {
	return category.Scheduled
}

// Room returns the judging room for the category in the division.
func (s *FinalistService) Room(category *models.Category, division string) string {
	return category.Rooms[division]
}

func (s *FinalistService) SetRoom(category *models.Category, division, room string) {
	if category.Rooms == nil {
		category.Rooms = make(map[string]string)
	}
	category.Rooms[division] = room
}

// NominatingJudges returns the judges that nominated the team in the
// category.
func (s *FinalistService) NominatingJudges(category *models.Category, teamNumber int) []string {
	return category.Judges[teamNumber]
}

func (s *FinalistService) SetNominatingJudges(category *models.Category, teamNumber int, judges []string) {
	if category.Judges == nil {
		category.Judges = make(map[int][]string)
	}
	category.Judges[teamNumber] = judges
}

func (s *FinalistService) ClearCategoryNominatingJudges(category *models.Category) {
	category.Judges = make(map[int][]string)
}

// ---------------------------------------------------------------------
// Category membership

// AddTeamToCategory nominates a team into a category. Adding a team
// already in the category has no effect. Any cached schedule for the
// affected divisions is invalidated: every division for an overall
// category, otherwise the current division.
func (s *FinalistService) AddTeamToCategory(category *models.Category, teamNumber int) {
	if category.HasTeam(teamNumber) {
		return
	}
	s.invalidateForCategory(category)
	category.Teams = append(category.Teams, teamNumber)
}

// RemoveTeamFromCategory removes a nomination, along with any recorded
// nominating judges for the team. Cache invalidation follows the same
// rule as AddTeamToCategory.
func (s *FinalistService) RemoveTeamFromCategory(category *models.Category, teamNumber int) {
	for i, n := range category.Teams {
		if n == teamNumber {
			s.invalidateForCategory(category)
			category.Teams = append(category.Teams[:i], category.Teams[i+1:]...)
			delete(category.Judges, teamNumber)
			return
		}
	}
}

func (s *FinalistService) IsTeamInCategory(category *models.Category, teamNumber int) bool {
	return category.HasTeam(teamNumber)
}

// ClearTeamsInCategory removes the nominations of every team that is
// in the division (every team for an overall category).
func (s *FinalistService) ClearTeamsInCategory(category *models.Category, division string) {
	var toRemove []int
	for _, teamNumber := range category.Teams {
		team, _ := s.LookupTeam(teamNumber)
		if category.Overall || team.InDivision(division) {
			toRemove = append(toRemove, teamNumber)
		}
	}
	for _, teamNumber := range toRemove {
		s.RemoveTeamFromCategory(category, teamNumber)
	}
}

func (s *FinalistService) invalidateForCategory(category *models.Category) {
	if category.Overall {
		for _, division := range s.state.Divisions {
			s.InvalidateSchedule(division)
		}
	} else {
		s.InvalidateSchedule(s.state.CurrentDivision)
	}
}

// ---------------------------------------------------------------------
// Numeric auto-selection

// ScoreGroups computes the judging groups present in the division,
// each mapped to the configured number of teams to auto select.
func (s *FinalistService) ScoreGroups(teams []*models.Team, division string) map[string]int {
	groups := make(map[string]int)
	for _, team := range teams {
		if team.InDivision(division) {
			groups[team.JudgingGroup] = s.state.NumTeamsAutoSelected
		}
	}
	return groups
}

// SortTeamsByCategory sorts teams in place for auto-selection: by
// judging group, then by category score descending. The championship
// category ignores judging groups and sorts by score only.
func (s *FinalistService) SortTeamsByCategory(teams []*models.Team, category *models.Category) {
	sort.SliceStable(teams, func(i, j int) bool {
		a, b := teams[i], teams[j]
		if category.Name != models.ChampionshipName {
			if a.JudgingGroup != b.JudgingGroup {
				return a.JudgingGroup < b.JudgingGroup
			}
		}
		return scoreOrZero(a, category) > scoreOrZero(b, category)
	})
}

func scoreOrZero(team *models.Team, category *models.Category) float64 {
	score, ok := team.Score(category.ID)
	if !ok {
		return 0
	}
	return score
}

// InitializeTeamsInNumericCategory seeds the category's membership for
// the division from scores: the top teams of each judging group up to
// the group's quota, pulling in scores that tie (within 1.0) the
// previous score in the group instead of cutting them off. Teams with
// no score or a zero score are never auto selected. The pass runs only
// once per (category, division); once marked visited it leaves manual
// edits alone.
func (s *FinalistService) InitializeTeamsInNumericCategory(division string, category *models.Category, teams []*models.Team, scoreGroupQuotas map[string]int) {
	if s.IsCategoryVisited(category, division) {
		// don't mess with existing values
		return
	}

	logging.Log.Debugf("auto-selecting teams for category %q in division %q", category.Name, division)

	s.ClearTeamsInCategory(category, division)
	s.SortTeamsByCategory(teams, category)

	checkedEnoughTeams := false
	prevScores := make(map[string]float64)
	for _, team := range teams {
		if checkedEnoughTeams {
			break
		}
		if !category.Overall && !team.InDivision(division) {
			continue
		}
		score, ok := team.Score(category.ID)
		if !ok || score <= 0 {
			// not yet judged
			continue
		}

		group := team.JudgingGroup
		prev, seen := prevScores[group]
		if !seen {
			s.AddTeamToCategory(category, team.Number)
		} else if scoreGroupQuotas[group] > 0 {
			if math.Abs(prev-score) < 1 {
				s.AddTeamToCategory(category, team.Number)
			} else {
				scoreGroupQuotas[group]--

				checkedEnoughTeams = true
				for _, quota := range scoreGroupQuotas {
					if quota > 0 {
						checkedEnoughTeams = false
					}
				}
			}
		}
		prevScores[group] = score
	}
}

// ---------------------------------------------------------------------
// Visited tracking

// SetCategoryVisited records that the category's auto-selection ran
// for the division, so it is not recomputed over manual edits.
func (s *FinalistService) SetCategoryVisited(category *models.Category, division string) {
	visited := s.state.CategoriesVisited[division]
	for _, id := range visited {
		if id == category.ID {
			return
		}
	}
	s.state.CategoriesVisited[division] = append(visited, category.ID)
}

// UnsetCategoryVisited marks the category as not visited so the
// selected teams can be recomputed.
func (s *FinalistService) UnsetCategoryVisited(category *models.Category, division string) {
	visited := s.state.CategoriesVisited[division]
	for i, id := range visited {
		if id == category.ID {
			s.state.CategoriesVisited[division] = append(visited[:i], visited[i+1:]...)
			return
		}
	}
}

func (s *FinalistService) IsCategoryVisited(category *models.Category, division string) bool {
	for _, id := range s.state.CategoriesVisited[division] {
		if id == category.ID {
			return true
		}
	}
	return false
}

// ---------------------------------------------------------------------
// Schedule parameters

// ScheduleParameters returns the division's parameters, creating them
// with the defaults on first use.
func (s *FinalistService) ScheduleParameters(division string) *models.ScheduleParameters {
	params, ok := s.state.ScheduleParameters[division]
	if !ok {
		params = models.NewScheduleParameters(s.defaultStartTime)
		params.IntervalMinutes = s.defaultMinutes
		s.state.ScheduleParameters[division] = params
	}
	return params
}

func (s *FinalistService) StartTime(division string) timeslot.LocalTime {
	return s.ScheduleParameters(division).StartTime
}

// SetStartTime changes the division's configured start time and
// shifts any cached schedule by the difference between the old and new
// times.
func (s *FinalistService) SetStartTime(division string, start timeslot.LocalTime) {
	params := s.ScheduleParameters(division)
	diff := params.StartTime.MinutesUntil(start)
	if schedule, ok := s.CachedSchedule(division); ok {
		schedule.Shift(diff)
	}
	params.StartTime = start
}

func (s *FinalistService) Duration(division string) int {
	return s.ScheduleParameters(division).IntervalMinutes
}

// SetDuration changes the division's slot duration and grows or
// shrinks any cached schedule's slots by the difference, sliding later
// slots so they stay back to back.
func (s *FinalistService) SetDuration(division string, minutes int) {
	params := s.ScheduleParameters(division)
	diff := minutes - params.IntervalMinutes
	if schedule, ok := s.CachedSchedule(division); ok {
		schedule.GrowSlots(diff)
	}
	params.IntervalMinutes = minutes
}

// ---------------------------------------------------------------------
// Schedules

// CachedSchedule returns the cached schedule for the division, if one
// exists. It never computes anything.
func (s *FinalistService) CachedSchedule(division string) (timeslot.Schedule, bool) {
	schedule, ok := s.state.Schedules[division]
	return schedule, ok && schedule != nil
}

// EnsureSchedule returns the cached schedule for the division,
// generating and caching one when absent.
func (s *FinalistService) EnsureSchedule(ctx context.Context, division string) (timeslot.Schedule, error) {
	if schedule, ok := s.CachedSchedule(division); ok {
		return schedule, nil
	}

	params := s.ScheduleParameters(division)
	schedule, err := s.generator.GenerateSchedule(ctx, scheduler.GenerateScheduleParams{
		Division:         division,
		Categories:       s.ScheduledCategories(),
		Teams:            s.state.Teams,
		StartTime:        params.StartTime,
		SlotMinutes:      params.IntervalMinutes,
		PlayoffSchedules: s.state.PlayoffSchedules,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate schedule for division %q: %w", division, err)
	}

	s.state.Schedules[division] = schedule
	return schedule, nil
}

// InvalidateSchedule discards the cached schedule for the division so
// the next EnsureSchedule regenerates it.
func (s *FinalistService) InvalidateSchedule(division string) {
	delete(s.state.Schedules, division)
}

func (s *FinalistService) SetSchedule(division string, schedule timeslot.Schedule) {
	s.state.Schedules[division] = schedule
}

// TeamToCategoryMap maps each team number to the scheduled categories
// it is judged in for the division.
func (s *FinalistService) TeamToCategoryMap(division string) map[int][]*models.Category {
	return scheduler.TeamCategoryMap(division, s.ScheduledCategories(), s.state.Teams)
}

// MoveTeam moves a team's placement for a category into the given slot
// of the division's cached schedule, swapping occupants when the slot
// is taken. Conflicts introduced by the move come back as warnings,
// not errors.
func (s *FinalistService) MoveTeam(division string, team *models.Team, category *models.Category, dest *timeslot.Timeslot) ([]scheduler.MoveWarning, error) {
	schedule, ok := s.CachedSchedule(division)
	if !ok {
		return nil, ErrNoSchedule
	}
	return scheduler.MoveTeam(schedule, team, category, dest, s.LookupTeam, s.state.PlayoffSchedules)
}

// AddSlotToSchedule appends one empty slot after the last slot of the
// division's cached schedule, using the division's slot duration.
func (s *FinalistService) AddSlotToSchedule(division string) (*timeslot.Timeslot, error) {
	schedule, ok := s.CachedSchedule(division)
	if !ok {
		return nil, ErrNoSchedule
	}
	slot := schedule.AddSlot(s.Duration(division))
	if slot == nil {
		return nil, ErrEmptySchedule
	}
	s.state.Schedules[division] = schedule
	return slot, nil
}

// SortSchedule re-sorts the division's cached schedule
// chronologically. Needed after added slots or manual edits that break
// the order.
func (s *FinalistService) SortSchedule(division string) error {
	schedule, ok := s.CachedSchedule(division)
	if !ok {
		return ErrNoSchedule
	}
	schedule.Sort()
	return nil
}
