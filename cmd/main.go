package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Dosada05/finalist-scheduler/config"
	"github.com/Dosada05/finalist-scheduler/db"
	"github.com/Dosada05/finalist-scheduler/logging"
	"github.com/Dosada05/finalist-scheduler/models"
	"github.com/Dosada05/finalist-scheduler/repositories"
	"github.com/Dosada05/finalist-scheduler/services"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"
)

const (
	divisionFlag = "division"
	outputFlag   = "output"
	formatFlag   = "format"
	verboseFlag  = "verbose"

	formatJSON = "json"
	formatYAML = "yaml"
	formatCSV  = "csv"
)

func main() {
	app := &cli.App{
		Name:  "finalist-scheduler",
		Usage: "generate and export finalist judging schedules",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    verboseFlag,
				Aliases: []string{"v"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			level := logrus.InfoLevel
			if c.Bool(verboseFlag) {
				level = logrus.DebugLevel
			}
			logging.BootstrapLogger(level)
			return nil
		},
		Commands: []*cli.Command{
			scheduleCommand(),
			exportCommand(),
			importCommand(),
			clearCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openSession wires config, database, state repository and the
// finalist service, restoring any previously saved session.
func openSession(ctx context.Context) (*services.FinalistService, *repositories.StateRepository, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	closeDB := func() {
		if err := dbConn.Close(); err != nil {
			logging.Log.Errorf("failed to close database connection: %v", err)
		}
	}

	store := repositories.NewPostgresKVStore(dbConn)
	if err := store.EnsureSchema(ctx); err != nil {
		closeDB()
		return nil, nil, nil, err
	}
	stateRepo := repositories.NewStateRepository(store, cfg.StorageNamespace)

	state, err := stateRepo.Load(ctx)
	if err != nil {
		closeDB()
		return nil, nil, nil, fmt.Errorf("failed to load finalist state: %w", err)
	}

	service := services.NewFinalistService(services.FinalistServiceOptions{
		DefaultStartTime:     cfg.DefaultStartTime,
		DefaultSlotMinutes:   cfg.SlotDurationMinutes,
		NumTeamsAutoSelected: cfg.NumTeamsAutoSelected,
	})
	service.Restore(state)

	return service, stateRepo, closeDB, nil
}

func targetDivisions(c *cli.Context, service *services.FinalistService) ([]string, error) {
	if division := c.String(divisionFlag); division != "" {
		return []string{division}, nil
	}
	divisions := service.Divisions()
	if len(divisions) == 0 {
		return nil, fmt.Errorf("no divisions known; import data first")
	}
	return divisions, nil
}

func scheduleCommand() *cli.Command {
	return &cli.Command{
		Name:  "schedule",
		Usage: "regenerate the finalist schedule for one or all divisions",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: divisionFlag, Aliases: []string{"d"}},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			service, stateRepo, closeDB, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			divisions, err := targetDivisions(c, service)
			if err != nil {
				return err
			}

			for _, division := range divisions {
				service.InvalidateSchedule(division)
				schedule, err := service.EnsureSchedule(ctx, division)
				if err != nil {
					return err
				}
				logging.Log.Infof("division %q: %d slots", division, len(schedule))
			}

			return stateRepo.Save(ctx, service.State())
		},
	}
}

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "write flattened schedule rows for upload",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: divisionFlag, Aliases: []string{"d"}},
			&cli.StringFlag{
				Name:    outputFlag,
				Aliases: []string{"o"},
				Usage:   "output directory",
				Value:   ".",
			},
			&cli.StringFlag{
				Name:    formatFlag,
				Aliases: []string{"f"},
				Usage:   "json, yaml or csv",
				Value:   formatJSON,
			},
		},
		Action: func(c *cli.Context) error {
			ctx := c.Context
			format := c.String(formatFlag)
			switch format {
			case formatJSON, formatYAML, formatCSV:
			default:
				return fmt.Errorf("unknown format %q", format)
			}

			service, _, closeDB, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			divisions, err := targetDivisions(c, service)
			if err != nil {
				return err
			}

			exports := make([]*models.ScheduleExport, 0, len(divisions))
			for _, division := range divisions {
				export, err := service.ExportSchedule(division)
				if err != nil {
					return fmt.Errorf("division %q: %w", division, err)
				}
				exports = append(exports, export)
			}

			group, _ := errgroup.WithContext(ctx)
			for _, export := range exports {
				export := export
				group.Go(func() error {
					path := filepath.Join(c.String(outputFlag),
						fmt.Sprintf("schedule-%s.%s", export.Division, format))
					if err := writeExport(path, format, export); err != nil {
						return err
					}
					logging.Log.Infof("wrote %s (%d rows)", path, len(export.Schedule))
					return nil
				})
			}
			return group.Wait()
		},
	}
}

func writeExport(path, format string, export *models.ScheduleExport) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	switch format {
	case formatJSON:
		encoder := json.NewEncoder(file)
		encoder.SetIndent("", "  ")
		return encoder.Encode(export)
	case formatYAML:
		encoder := yaml.NewEncoder(file)
		defer encoder.Close()
		return encoder.Encode(export)
	case formatCSV:
		writer := csv.NewWriter(file)
		defer writer.Flush()
		if err := writer.Write([]string{"categoryName", "hour", "minute", "teamNumber"}); err != nil {
			return err
		}
		for _, row := range export.Schedule {
			record := []string{
				row.CategoryName,
				strconv.Itoa(row.Hour),
				strconv.Itoa(row.Minute),
				strconv.Itoa(row.TeamNumber),
			}
			if err := writer.Write(record); err != nil {
				return err
			}
		}
		return nil
	}
	return nil
}

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "load a finalist state JSON file and persist it",
		ArgsUsage: "<state.json>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one state file argument")
			}

			data, err := os.ReadFile(c.Args().First())
			if err != nil {
				return fmt.Errorf("failed to read state file: %w", err)
			}
			state := models.NewFinalistState()
			if err := json.Unmarshal(data, state); err != nil {
				return fmt.Errorf("failed to decode state file: %w", err)
			}

			ctx := c.Context
			service, stateRepo, closeDB, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			service.Restore(state)
			if err := stateRepo.Save(ctx, service.State()); err != nil {
				return err
			}
			logging.Log.Infof("imported %d teams, %d categories",
				len(state.Teams), len(state.Categories))
			return nil
		},
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "remove all saved finalist data",
		Action: func(c *cli.Context) error {
			ctx := c.Context
			_, stateRepo, closeDB, err := openSession(ctx)
			if err != nil {
				return err
			}
			defer closeDB()

			return stateRepo.Clear(ctx)
		},
	}
}
