package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/Dosada05/finalist-scheduler/models"
)

// DefaultNamespace is the storage prefix the finalist state is kept
// under when none is configured.
const DefaultNamespace = "fll.finalists"

// Keys within the namespace, one per state field.
const (
	keyTeams                = "teams"
	keyCategories           = "categories"
	keyNextCategoryID       = "next_category_id"
	keyTournament           = "tournament"
	keyDivisions            = "divisions"
	keyCurrentDivision      = "current_division"
	keyNumTeamsAutoSelected = "num_teams_auto_selected"
	keyScheduleParameters   = "schedule_parameters"
	keyPlayoffSchedules     = "playoff_schedules"
	keyCategoriesVisited    = "categories_visited"
	keySchedules            = "schedules"
)

// StateRepository saves and restores a complete finalist session state
// through a KVStore, one key per state field.
type StateRepository struct {
	store     KVStore
	namespace string
}

func NewStateRepository(store KVStore, namespace string) *StateRepository {
	if namespace == "" {
		namespace = DefaultNamespace
	}
	return &StateRepository{store: store, namespace: namespace}
}

func (r *StateRepository) Save(ctx context.Context, state *models.FinalistState) error {
	fields := []struct {
		key   string
		value any
	}{
		{keyTeams, state.Teams},
		{keyCategories, state.Categories},
		{keyNextCategoryID, state.NextCategoryID},
		{keyTournament, state.Tournament},
		{keyDivisions, state.Divisions},
		{keyCurrentDivision, state.CurrentDivision},
		{keyNumTeamsAutoSelected, state.NumTeamsAutoSelected},
		{keyScheduleParameters, state.ScheduleParameters},
		{keyPlayoffSchedules, state.PlayoffSchedules},
		{keyCategoriesVisited, state.CategoriesVisited},
		{keySchedules, state.Schedules},
	}

	for _, field := range fields {
		encoded, err := json.Marshal(field.value)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", field.key, err)
		}
		if err := r.store.Set(ctx, r.namespace, field.key, encoded); err != nil {
			return fmt.Errorf("failed to save %s: %w", field.key, err)
		}
	}
	return nil
}

// Load restores the state from the store. Missing keys keep their
// defaults, so loading from an empty store yields an empty session.
func (r *StateRepository) Load(ctx context.Context) (*models.FinalistState, error) {
	state := models.NewFinalistState()

	fields := []struct {
		key   string
		value any
	}{
		{keyTeams, &state.Teams},
		{keyCategories, &state.Categories},
		{keyNextCategoryID, &state.NextCategoryID},
		{keyTournament, &state.Tournament},
		{keyDivisions, &state.Divisions},
		{keyCurrentDivision, &state.CurrentDivision},
		{keyNumTeamsAutoSelected, &state.NumTeamsAutoSelected},
		{keyScheduleParameters, &state.ScheduleParameters},
		{keyPlayoffSchedules, &state.PlayoffSchedules},
		{keyCategoriesVisited, &state.CategoriesVisited},
		{keySchedules, &state.Schedules},
	}

	for _, field := range fields {
		encoded, err := r.store.Get(ctx, r.namespace, field.key)
		if errors.Is(err, ErrKeyNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", field.key, err)
		}
		if err := json.Unmarshal(encoded, field.value); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", field.key, err)
		}
	}
	return state, nil
}

// Clear removes everything stored under the repository's namespace.
func (r *StateRepository) Clear(ctx context.Context) error {
	if err := r.store.ClearNamespace(ctx, r.namespace); err != nil {
		return fmt.Errorf("failed to clear namespace %s: %w", r.namespace, err)
	}
	return nil
}
