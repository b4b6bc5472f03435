package app

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dreamtask/dreamtask/internal/agent"
	"github.com/dreamtask/dreamtask/internal/config"
	"github.com/dreamtask/dreamtask/internal/db"
	"github.com/dreamtask/dreamtask/internal/markdown"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/dreamtask/dreamtask/internal/service"
	"github.com/dreamtask/dreamtask/internal/storage"
	"github.com/jmoiron/sqlx"
)

type App struct {
	Cfg                  *config.Config
	DB                   *sqlx.DB
	AuthService          *service.AuthService
	UserService          *service.UserService
	EmailService         *service.EmailService
	GoalService          *service.GoalService
	TaskService          *service.TaskService
	IntegrationService   *service.IntegrationService
	SettingsService      *service.SettingsService
	ContentService       *service.ContentService
	WorkflowService      *service.WorkflowService
	DecompositionService *service.DecompositionService
	PlanService          *service.PlanService
	ScheduleService      *service.ScheduleService
	StatsService         *service.StatsService
	ExportService        *service.ExportService
}

func New(cfg *config.Config) (*App, error) {
	// Initialize database
	database, err := db.Init(cfg.DBDriver, cfg.DBConnection)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Run database migrations
	err = db.RunMigrations(database.DB, cfg.DBDriver)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	// Storage is optional; exports are returned inline without it
	var exportStorage storage.Storage
	if cfg.StorageEnabled() {
		exportStorage, err = storage.New(cfg)
		if err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
	}

	a := Build(cfg, database, exportStorage, NewRunner(cfg))

	// Seed content templates shipped with the app
	templatesDir := filepath.Join(cfg.ContentPath, "templates")
	seeded, err := a.ContentService.SeedTemplates(templatesDir)
	if err != nil {
		slog.Error("failed to seed content templates", "error", err, "dir", templatesDir)
	} else if seeded > 0 {
		slog.Info("content templates seeded", "count", seeded)
	}

	return a, nil
}

// NewRunner picks the decomposition runner for AGENT_MODE.
func NewRunner(cfg *config.Config) agent.Runner {
	if cfg.AgentMode == config.AgentModeHTTP {
		slog.Info("decomposition runner", "mode", cfg.AgentMode, "url", cfg.AgentURL)
		return agent.NewHTTPRunner(cfg.AgentURL, cfg.AgentSigningKey, &http.Client{})
	}

	script := cfg.AgentScriptPath
	if _, err := os.Stat(script); errors.Is(err, os.ErrNotExist) {
		slog.Warn("decomposer script not found, requests will use the fallback plan", "script", script)
	}
	slog.Info("decomposition runner", "mode", config.AgentModeScript, "script", script, "interpreters", cfg.AgentInterpreters)
	return agent.NewScriptRunner(script, cfg.AgentInterpreters)
}

// Build wires repositories and services over an open, migrated database.
// exportStorage may be nil.
func Build(cfg *config.Config, database *sqlx.DB, exportStorage storage.Storage, runner agent.Runner) *App {
	// Repositories
	userRepository := repository.NewUserRepository(database)
	sessionRepository := repository.NewSessionRepository(database)
	goalRepository := repository.NewGoalRepository(database)
	taskRepository := repository.NewTaskRepository(database)
	integrationRepository := repository.NewIntegrationRepository(database)
	workflowRepository := repository.NewWorkflowRepository(database)
	preferencesRepository := repository.NewPreferencesRepository(database)
	statsRepository := repository.NewStatsRepository(database)
	contentRepository := repository.NewContentRepository(database)
	templateRepository := repository.NewTemplateRepository(database)
	exportRepository := repository.NewExportRepository(database)

	// Services
	emailService := service.NewEmailService(
		cfg.ResendAPIKey,
		cfg.EmailFrom,
		cfg.AppURL,
		cfg.AppName,
		cfg.IsDevelopment(),
	)
	authService := service.NewAuthService(
		userRepository,
		sessionRepository,
		emailService,
		cfg.SessionExpiry,
		cfg.BcryptCost,
		cfg.CookieSecure,
	)
	userService := service.NewUserService(userRepository, sessionRepository, emailService)
	goalService := service.NewGoalService(goalRepository)
	taskService := service.NewTaskService(taskRepository, goalService)
	workflowService := service.NewWorkflowService(workflowRepository)
	integrationService := service.NewIntegrationService(integrationRepository, workflowService)
	settingsService := service.NewSettingsService(preferencesRepository)
	contentService := service.NewContentService(contentRepository, templateRepository, markdown.NewParser(), cfg.AppName)

	orchestrator := agent.NewOrchestrator(runner, agent.Options{
		Timeout:       cfg.AgentTimeout,
		MaxConcurrent: cfg.AgentMaxConcurrent,
	})
	decompositionService := service.NewDecompositionService(orchestrator, workflowService, cfg.CloudLoggingEnabled())
	planService := service.NewPlanService(goalRepository, taskRepository, workflowService)
	scheduleService := service.NewScheduleService(workflowService)
	statsService := service.NewStatsService(statsRepository, goalRepository, taskRepository)
	exportService := service.NewExportService(
		exportRepository,
		userRepository,
		goalRepository,
		taskRepository,
		integrationRepository,
		exportStorage,
	)

	return &App{
		Cfg:                  cfg,
		DB:                   database,
		AuthService:          authService,
		UserService:          userService,
		EmailService:         emailService,
		GoalService:          goalService,
		TaskService:          taskService,
		IntegrationService:   integrationService,
		SettingsService:      settingsService,
		ContentService:       contentService,
		WorkflowService:      workflowService,
		DecompositionService: decompositionService,
		PlanService:          planService,
		ScheduleService:      scheduleService,
		StatsService:         statsService,
		ExportService:        exportService,
	}
}

func (a *App) Close() error {
	return db.Close(a.DB)
}
