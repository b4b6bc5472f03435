package cmd

import (
	"errors"
	"fmt"

	"github.com/dreamtask/dreamtask/internal/app"
	"github.com/dreamtask/dreamtask/internal/config"
	"github.com/dreamtask/dreamtask/internal/db"
	"github.com/dreamtask/dreamtask/internal/logger"
	"github.com/dreamtask/dreamtask/internal/service"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

const (
	demoEmail    = "demo@example.com"
	demoName     = "Demo User"
	demoPassword = "sunrise-harbor-42"
)

func loadConfig() *config.Config {
	cfg := config.Load()
	logger.Init(cfg.IsDevelopment(), "")
	return cfg
}

func openDB(cfg *config.Config) (*sqlx.DB, error) {
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	return database, nil
}

func MigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(database)

			if err := db.RunMigrations(database.DB, cfg.DBDriver); err != nil {
				return err
			}
			return printVersion(cmd, database, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(database)

			if err := db.MigrateDown(database.DB, cfg.DBDriver); err != nil {
				return err
			}
			return printVersion(cmd, database, cfg.DBDriver)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the current schema version",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			database, err := openDB(cfg)
			if err != nil {
				return err
			}
			defer db.Close(database)

			return printVersion(cmd, database, cfg.DBDriver)
		},
	})

	return cmd
}

func printVersion(cmd *cobra.Command, database *sqlx.DB, driver string) error {
	version, err := db.Version(database.DB, driver)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version: %d\n", version)
	return nil
}

func SeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create a demo account with a goal and two tasks",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			return seed(cmd, a)
		},
	}
}

// seed is a no-op when the demo account already exists.
func seed(cmd *cobra.Command, a *app.App) error {
	user, _, err := a.AuthService.Register(demoEmail, demoName, demoPassword)
	if errors.Is(err, service.ErrEmailAlreadyExists) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s already exists, nothing to seed\n", demoEmail)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to create demo user: %w", err)
	}

	goal, err := a.GoalService.Create(user.ID, service.GoalInput{
		Title:       "Run a half marathon",
		Description: "Finish a 21km race in under two hours",
		Category:    "health",
		Priority:    "high",
		Timeframe:   "3-months",
	})
	if err != nil {
		return fmt.Errorf("failed to create demo goal: %w", err)
	}

	tasks := []service.TaskInput{
		{
			GoalID:         goal.ID,
			Title:          "Build a base of 20km per week",
			Description:    "Three easy runs per week for the first month",
			Category:       "training",
			Priority:       "high",
			EstimatedHours: 12,
		},
		{
			GoalID:         goal.ID,
			Title:          "Register for a race",
			Description:    "Pick a race about twelve weeks out",
			Category:       "planning",
			EstimatedHours: 1,
		},
	}
	for _, in := range tasks {
		if _, err := a.TaskService.Create(user.ID, in); err != nil {
			return fmt.Errorf("failed to create demo task: %w", err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "seeded %s (password %q) with 1 goal and %d tasks\n", demoEmail, demoPassword, len(tasks))
	return nil
}

func SessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "Session maintenance",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "purge",
		Short: "Delete expired sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := loadConfig()
			a, err := app.New(cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			n, err := a.AuthService.PurgeExpiredSessions()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "purged %d expired sessions\n", n)
			return nil
		},
	})

	return cmd
}
