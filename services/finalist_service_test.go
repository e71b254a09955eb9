package services

import (
	"context"
	"testing"

	"github.com/Dosada05/finalist-scheduler/models"
	"github.com/Dosada05/finalist-scheduler/timeslot"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(t *testing.T) *FinalistService {
	t.Helper()
	return NewFinalistService(FinalistServiceOptions{})
}

func addTeam(t *testing.T, service *FinalistService, number int, judgingGroup string, divisions ...string) *models.Team {
	t.Helper()
	team, err := service.AddTeam(number, "", "", judgingGroup)
	require.NoError(t, err)
	for _, division := range divisions {
		team.AddDivision(division)
	}
	return team
}

func addCategory(t *testing.T, service *FinalistService, name string, numeric, overall bool) *models.Category {
	t.Helper()
	category, err := service.AddCategory(name, numeric, overall)
	require.NoError(t, err)
	return category
}

func TestAddTeamNumberConflict(t *testing.T) {
	service := newService(t)
	addTeam(t, service, 42, "A", "Blue")

	_, err := service.AddTeam(42, "Other", "", "B")
	assert.ErrorIs(t, err, ErrTeamNumberConflict)

	team, ok := service.LookupTeam(42)
	require.True(t, ok)
	assert.Equal(t, "A", team.JudgingGroup)
}

func TestAllTeamsSortedByNumber(t *testing.T) {
	service := newService(t)
	addTeam(t, service, 7, "A")
	addTeam(t, service, 2, "A")
	addTeam(t, service, 5, "B")

	teams := service.AllTeams()
	require.Len(t, teams, 3)
	assert.Equal(t, 2, teams[0].Number)
	assert.Equal(t, 5, teams[1].Number)
	assert.Equal(t, 7, teams[2].Number)
}

func TestAddCategoryNameConflict(t *testing.T) {
	service := newService(t)
	addCategory(t, service, "Research", false, false)

	_, err := service.AddCategory("Research", true, false)
	assert.ErrorIs(t, err, ErrCategoryNameConflict)
}

func TestCategoryIDsNeverReused(t *testing.T) {
	service := newService(t)
	first := addCategory(t, service, "Research", false, false)
	second := addCategory(t, service, "Teamwork", false, false)
	require.Equal(t, first.ID+1, second.ID)

	service.RemoveCategory(second)
	third := addCategory(t, service, "Robot Design", false, false)

	assert.Equal(t, second.ID+1, third.ID)
	_, ok := service.CategoryByID(second.ID)
	assert.False(t, ok)
}

func TestCategoriesSortedByName(t *testing.T) {
	service := newService(t)
	addCategory(t, service, "Teamwork", false, false)
	addCategory(t, service, "Research", true, false)
	champ := addCategory(t, service, models.ChampionshipName, true, true)
	service.SetCategoryScheduled(champ, true)

	all := service.AllCategories()
	require.Len(t, all, 3)
	assert.Equal(t, models.ChampionshipName, all[0].Name)
	assert.Equal(t, "Research", all[1].Name)
	assert.Equal(t, "Teamwork", all[2].Name)

	numeric := service.NumericCategories()
	require.Len(t, numeric, 2)
	nonNumeric := service.NonNumericCategories()
	require.Len(t, nonNumeric, 1)
	assert.Equal(t, "Teamwork", nonNumeric[0].Name)

	scheduled := service.ScheduledCategories()
	require.Len(t, scheduled, 1)
	assert.Equal(t, models.ChampionshipName, scheduled[0].Name)
}

func TestCategoryMembershipIsIdempotent(t *testing.T) {
	service := newService(t)
	category := addCategory(t, service, "Research", false, false)

	service.AddTeamToCategory(category, 1)
	service.AddTeamToCategory(category, 1)
	assert.Equal(t, []int{1}, category.Teams)
	assert.True(t, service.IsTeamInCategory(category, 1))

	service.RemoveTeamFromCategory(category, 1)
	service.RemoveTeamFromCategory(category, 1)
	assert.Empty(t, category.Teams)
	assert.False(t, service.IsTeamInCategory(category, 1))
}

func TestRemoveTeamFromCategoryDropsJudges(t *testing.T) {
	service := newService(t)
	category := addCategory(t, service, "Research", false, false)
	service.AddTeamToCategory(category, 1)
	service.SetNominatingJudges(category, 1, []string{"JJ"})

	service.RemoveTeamFromCategory(category, 1)
	assert.Empty(t, service.NominatingJudges(category, 1))
}

func emptySchedule(startHour int) timeslot.Schedule {
	return timeslot.Schedule{
		timeslot.NewTimeslot(timeslot.NewLocalTime(startHour, 0), 20),
	}
}

func TestMembershipEditInvalidatesCurrentDivision(t *testing.T) {
	service := newService(t)
	service.AddDivision("Blue")
	service.AddDivision("Red")
	service.SetCurrentDivision("Blue")
	service.SetSchedule("Blue", emptySchedule(14))
	service.SetSchedule("Red", emptySchedule(14))

	category := addCategory(t, service, "Research", false, false)
	service.AddTeamToCategory(category, 1)

	_, ok := service.CachedSchedule("Blue")
	assert.False(t, ok, "current division's schedule should be invalidated")
	_, ok = service.CachedSchedule("Red")
	assert.True(t, ok, "other division's schedule should survive")
}

func TestOverallMembershipEditInvalidatesAllDivisions(t *testing.T) {
	service := newService(t)
	service.AddDivision("Blue")
	service.AddDivision("Red")
	service.SetCurrentDivision("Blue")
	service.SetSchedule("Blue", emptySchedule(14))
	service.SetSchedule("Red", emptySchedule(14))

	champ := addCategory(t, service, models.ChampionshipName, true, true)
	service.AddTeamToCategory(champ, 1)

	_, ok := service.CachedSchedule("Blue")
	assert.False(t, ok)
	_, ok = service.CachedSchedule("Red")
	assert.False(t, ok)
}

func TestClearTeamsInCategoryScopedToDivision(t *testing.T) {
	service := newService(t)
	addTeam(t, service, 1, "A", "Blue")
	addTeam(t, service, 2, "A", "Red")
	category := addCategory(t, service, "Research", false, false)
	service.AddTeamToCategory(category, 1)
	service.AddTeamToCategory(category, 2)

	service.ClearTeamsInCategory(category, "Blue")

	assert.False(t, service.IsTeamInCategory(category, 1))
	assert.True(t, service.IsTeamInCategory(category, 2))
}

func TestScoreGroups(t *testing.T) {
	service := newService(t)
	service.SetNumTeamsAutoSelected(2)
	addTeam(t, service, 1, "A", "Blue")
	addTeam(t, service, 2, "B", "Blue")
	addTeam(t, service, 3, "C", "Red")

	groups := service.ScoreGroups(service.AllTeams(), "Blue")
	assert.Equal(t, map[string]int{"A": 2, "B": 2}, groups)
}

func TestSortTeamsByCategory(t *testing.T) {
	service := newService(t)
	category := addCategory(t, service, "Robot Performance", true, false)

	a := addTeam(t, service, 1, "B", "Blue")
	b := addTeam(t, service, 2, "A", "Blue")
	c := addTeam(t, service, 3, "A", "Blue")
	a.SetScore(category.ID, 99)
	b.SetScore(category.ID, 80)
	c.SetScore(category.ID, 95)

	teams := []*models.Team{a, b, c}
	service.SortTeamsByCategory(teams, category)

	// Judging group first, then score descending.
	assert.Equal(t, []int{3, 2, 1}, []int{teams[0].Number, teams[1].Number, teams[2].Number})
}

func TestSortTeamsByChampionshipIgnoresGroups(t *testing.T) {
	service := newService(t)
	champ := addCategory(t, service, models.ChampionshipName, true, true)

	a := addTeam(t, service, 1, "B", "Blue")
	b := addTeam(t, service, 2, "A", "Blue")
	a.SetScore(champ.ID, 99)
	b.SetScore(champ.ID, 80)

	// Team 1 is in a later judging group but has the higher score.
	teams := []*models.Team{b, a}
	service.SortTeamsByCategory(teams, champ)

	assert.Equal(t, 1, teams[0].Number)
	assert.Equal(t, 2, teams[1].Number)
}

func TestInitializeTeamsInNumericCategory(t *testing.T) {
	service := newService(t)
	category := addCategory(t, service, "Robot Performance", true, false)

	top := addTeam(t, service, 1, "A", "Blue")
	tied := addTeam(t, service, 2, "A", "Blue")
	far := addTeam(t, service, 3, "A", "Blue")
	bTop := addTeam(t, service, 4, "B", "Blue")
	bLow := addTeam(t, service, 5, "B", "Blue")
	addTeam(t, service, 6, "A", "Blue") // never judged

	top.SetScore(category.ID, 95)
	tied.SetScore(category.ID, 94.5)
	far.SetScore(category.ID, 80)
	bTop.SetScore(category.ID, 90)
	bLow.SetScore(category.ID, 70)

	teams := service.AllTeams()
	service.InitializeTeamsInNumericCategory("Blue", category, teams, service.ScoreGroups(teams, "Blue"))

	assert.True(t, service.IsTeamInCategory(category, 1))
	assert.True(t, service.IsTeamInCategory(category, 2), "scores within 1.0 tie with the group leader")
	assert.False(t, service.IsTeamInCategory(category, 3))
	assert.True(t, service.IsTeamInCategory(category, 4))
	assert.False(t, service.IsTeamInCategory(category, 5))
	assert.False(t, service.IsTeamInCategory(category, 6), "unjudged teams are never auto selected")
}

func TestInitializeSkipsZeroScores(t *testing.T) {
	service := newService(t)
	category := addCategory(t, service, "Robot Performance", true, false)
	team := addTeam(t, service, 1, "A", "Blue")
	team.SetScore(category.ID, 0)

	teams := service.AllTeams()
	service.InitializeTeamsInNumericCategory("Blue", category, teams, service.ScoreGroups(teams, "Blue"))

	assert.Empty(t, category.Teams)
}

func TestInitializeSkipsVisitedCategory(t *testing.T) {
	service := newService(t)
	category := addCategory(t, service, "Robot Performance", true, false)
	team := addTeam(t, service, 1, "A", "Blue")
	team.SetScore(category.ID, 95)

	service.SetCategoryVisited(category, "Blue")
	teams := service.AllTeams()
	service.InitializeTeamsInNumericCategory("Blue", category, teams, service.ScoreGroups(teams, "Blue"))

	assert.Empty(t, category.Teams, "visited categories keep their manual state")

	service.UnsetCategoryVisited(category, "Blue")
	service.InitializeTeamsInNumericCategory("Blue", category, teams, service.ScoreGroups(teams, "Blue"))
	assert.True(t, service.IsTeamInCategory(category, 1))
}

func TestVisitedTrackingPerDivision(t *testing.T) {
	service := newService(t)
	category := addCategory(t, service, "Robot Performance", true, false)

	service.SetCategoryVisited(category, "Blue")
	service.SetCategoryVisited(category, "Blue")

	assert.True(t, service.IsCategoryVisited(category, "Blue"))
	assert.False(t, service.IsCategoryVisited(category, "Red"))

	service.UnsetCategoryVisited(category, "Blue")
	assert.False(t, service.IsCategoryVisited(category, "Blue"))
}

func TestScheduleParametersDefaults(t *testing.T) {
	service := newService(t)

	assert.Equal(t, timeslot.NewLocalTime(14, 0), service.StartTime("Blue"))
	assert.Equal(t, models.DefaultSlotDurationMinutes, service.Duration("Blue"))
}

func TestSetStartTimeShiftsCachedSchedule(t *testing.T) {
	service := newService(t)
	schedule := timeslot.Schedule{
		timeslot.NewTimeslot(timeslot.NewLocalTime(14, 0), 20),
		timeslot.NewTimeslot(timeslot.NewLocalTime(14, 20), 20),
	}
	service.SetSchedule("Blue", schedule)

	service.SetStartTime("Blue", timeslot.NewLocalTime(14, 10))

	assert.Equal(t, timeslot.NewLocalTime(14, 10), service.StartTime("Blue"))
	assert.Equal(t, timeslot.NewLocalTime(14, 10), schedule[0].Time)
	assert.Equal(t, timeslot.NewLocalTime(14, 30), schedule[1].Time)
	assert.Equal(t, timeslot.NewLocalTime(14, 50), schedule[1].EndTime)
}

func TestSetDurationGrowsCachedSchedule(t *testing.T) {
	service := newService(t)
	schedule := timeslot.Schedule{
		timeslot.NewTimeslot(timeslot.NewLocalTime(14, 0), 20),
		timeslot.NewTimeslot(timeslot.NewLocalTime(14, 20), 20),
	}
	service.SetSchedule("Blue", schedule)

	service.SetDuration("Blue", 25)

	assert.Equal(t, 25, service.Duration("Blue"))
	assert.Equal(t, timeslot.NewLocalTime(14, 0), schedule[0].Time)
	assert.Equal(t, timeslot.NewLocalTime(14, 25), schedule[0].EndTime)
	assert.Equal(t, timeslot.NewLocalTime(14, 25), schedule[1].Time)
	assert.Equal(t, timeslot.NewLocalTime(14, 50), schedule[1].EndTime)
}

func TestEnsureScheduleCachesResult(t *testing.T) {
	service := newService(t)
	service.AddDivision("Blue")
	service.SetCurrentDivision("Blue")
	addTeam(t, service, 1, "A", "Blue")
	category := addCategory(t, service, "Research", false, false)
	service.SetCategoryScheduled(category, true)
	service.AddTeamToCategory(category, 1)

	_, ok := service.CachedSchedule("Blue")
	require.False(t, ok, "CachedSchedule never computes")

	ctx := context.Background()
	first, err := service.EnsureSchedule(ctx, "Blue")
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := service.EnsureSchedule(ctx, "Blue")
	require.NoError(t, err)
	assert.Same(t, first[0], second[0], "second call should hit the cache")

	service.AddTeamToCategory(category, 2)
	_, ok = service.CachedSchedule("Blue")
	assert.False(t, ok, "membership edits invalidate the cache")
}

func TestScheduleEditsRequireCachedSchedule(t *testing.T) {
	service := newService(t)
	team := addTeam(t, service, 1, "A", "Blue")
	category := addCategory(t, service, "Research", false, false)
	slot := timeslot.NewTimeslot(timeslot.NewLocalTime(14, 0), 20)

	_, err := service.MoveTeam("Blue", team, category, slot)
	assert.ErrorIs(t, err, ErrNoSchedule)

	_, err = service.AddSlotToSchedule("Blue")
	assert.ErrorIs(t, err, ErrNoSchedule)

	assert.ErrorIs(t, service.SortSchedule("Blue"), ErrNoSchedule)
}

func TestAddSlotToSchedule(t *testing.T) {
	service := newService(t)
	service.SetSchedule("Blue", timeslot.Schedule{})
	_, err := service.AddSlotToSchedule("Blue")
	assert.ErrorIs(t, err, ErrEmptySchedule)

	service.SetSchedule("Blue", emptySchedule(14))
	slot, err := service.AddSlotToSchedule("Blue")
	require.NoError(t, err)
	assert.Equal(t, timeslot.NewLocalTime(14, 20), slot.Time)
	assert.Equal(t, timeslot.NewLocalTime(14, 40), slot.EndTime)
}

func TestPlayoffWindowAccessors(t *testing.T) {
	service := newService(t)
	service.AddPlayoffDivision("P")

	_, ok := service.PlayoffStartTime("P")
	assert.False(t, ok)

	service.SetPlayoffStartTime("P", timeslot.NewLocalTime(14, 20))
	service.SetPlayoffEndTime("P", timeslot.NewLocalTime(14, 40))

	start, ok := service.PlayoffStartTime("P")
	require.True(t, ok)
	assert.Equal(t, timeslot.NewLocalTime(14, 20), start)
	end, ok := service.PlayoffEndTime("P")
	require.True(t, ok)
	assert.Equal(t, timeslot.NewLocalTime(14, 40), end)
}

func TestClearAllDataKeepsAutoSelectSetting(t *testing.T) {
	service := newService(t)
	service.SetNumTeamsAutoSelected(3)
	addTeam(t, service, 1, "A", "Blue")
	addCategory(t, service, "Research", false, false)

	service.ClearAllData()

	assert.Empty(t, service.AllTeams())
	assert.Empty(t, service.AllCategories())
	assert.Equal(t, 3, service.NumTeamsAutoSelected())
}
