package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/Dosada05/finalist-scheduler/timeslot"
	"github.com/joho/godotenv"
)

// defaultStorageNamespace matches repositories.DefaultNamespace; config
// stays a leaf package and must not import the storage layer.
const defaultStorageNamespace = "fll.finalists"

// Config holds the application configuration.
type Config struct {
	DatabaseURL      string
	StorageNamespace string

	SlotDurationMinutes  int
	NumTeamsAutoSelected int
	DefaultStartTime     timeslot.LocalTime
}

// Load reads the configuration from environment variables, optionally
// seeded from a .env file.
func Load() (*Config, error) {
	// A missing .env file is not an error.
	_ = godotenv.Load()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	namespace := os.Getenv("STORAGE_NAMESPACE")
	if namespace == "" {
		namespace = defaultStorageNamespace
	}

	duration, err := intEnv("SLOT_DURATION_MINUTES", 20)
	if err != nil {
		return nil, err
	}
	if duration < 1 {
		return nil, fmt.Errorf("SLOT_DURATION_MINUTES must be at least 1, got %d", duration)
	}

	autoSelected, err := intEnv("NUM_TEAMS_AUTO_SELECTED", 1)
	if err != nil {
		return nil, err
	}
	if autoSelected < 1 {
		return nil, fmt.Errorf("NUM_TEAMS_AUTO_SELECTED must be at least 1, got %d", autoSelected)
	}

	startStr := os.Getenv("SCHEDULE_START_TIME")
	if startStr == "" {
		startStr = "14:00"
	}
	start, err := timeslot.ParseLocalTime(startStr)
	if err != nil {
		return nil, fmt.Errorf("invalid SCHEDULE_START_TIME: %w", err)
	}

	return &Config{
		DatabaseURL:          dbURL,
		StorageNamespace:     namespace,
		SlotDurationMinutes:  duration,
		NumTeamsAutoSelected: autoSelected,
		DefaultStartTime:     start,
	}, nil
}

func intEnv(name string, fallback int) (int, error) {
	value := os.Getenv(name)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s environment variable: %w", name, err)
	}
	return parsed, nil
}
