package routes

import (
	"net/http"

	"github.com/dreamtask/dreamtask/internal/app"
	"github.com/dreamtask/dreamtask/internal/handler"
	"github.com/dreamtask/dreamtask/internal/middleware"
)

func SetupRoutes(app *app.App) http.Handler {
	// Handlers
	health := handler.NewHealthHandler(app.DB)
	auth := handler.NewAuthHandler(app.AuthService, app.UserService)
	goal := handler.NewGoalHandler(app.GoalService)
	task := handler.NewTaskHandler(app.TaskService)
	integration := handler.NewIntegrationHandler(app.IntegrationService)
	settings := handler.NewSettingsHandler(app.SettingsService)
	content := handler.NewContentHandler(app.ContentService)
	agent := handler.NewAgentHandler(app.DecompositionService, app.PlanService, app.WorkflowService)
	schedule := handler.NewScheduleHandler(app.ScheduleService)
	stats := handler.NewStatsHandler(app.StatsService)
	export := handler.NewExportHandler(app.ExportService)

	requireSession := middleware.RequireSession(app.AuthService)
	authLimiter := middleware.RateLimitAuth()
	decomposeLimiter := middleware.RateLimitDecompose()

	mux := http.NewServeMux()

	// ============================================================================
	// PUBLIC ROUTES
	// ============================================================================

	mux.HandleFunc("GET /health", health.Health)

	// Auth (rate limited)
	mux.HandleFunc("POST /api/auth/register", authLimiter(auth.Register))
	mux.HandleFunc("POST /api/auth/login", authLimiter(auth.Login))
	mux.HandleFunc("POST /api/auth/logout", auth.Logout)

	// Content
	mux.HandleFunc("GET /api/content", content.Get)
	mux.HandleFunc("GET /api/content/templates", content.Templates)

	// Decomposition for anonymous callers
	mux.HandleFunc("POST /api/portia/process-goal", decomposeLimiter(agent.ProcessGoalPublic))

	// ============================================================================
	// PROTECTED ROUTES (session cookie)
	// ============================================================================

	// Account
	mux.HandleFunc("GET /api/auth/me", requireSession(auth.Me))
	mux.HandleFunc("PUT /api/auth/profile", requireSession(auth.UpdateProfile))

	// Goals
	mux.HandleFunc("GET /api/goals", requireSession(goal.List))
	mux.HandleFunc("POST /api/goals", requireSession(goal.Create))
	mux.HandleFunc("GET /api/goals/{id}", requireSession(goal.Get))
	mux.HandleFunc("PUT /api/goals/{id}", requireSession(goal.Update))
	mux.HandleFunc("DELETE /api/goals/{id}", requireSession(goal.Delete))

	// Tasks
	mux.HandleFunc("GET /api/tasks", requireSession(task.List))
	mux.HandleFunc("POST /api/tasks", requireSession(task.Create))
	mux.HandleFunc("PATCH /api/tasks", requireSession(task.UpdateProgress))
	mux.HandleFunc("GET /api/tasks/{id}", requireSession(task.Get))
	mux.HandleFunc("PUT /api/tasks/{id}", requireSession(task.Update))
	mux.HandleFunc("DELETE /api/tasks/{id}", requireSession(task.Delete))

	// Integrations
	mux.HandleFunc("GET /api/integrations", requireSession(integration.List))
	mux.HandleFunc("POST /api/integrations", requireSession(integration.Create))
	mux.HandleFunc("POST /api/integrations/connect", requireSession(integration.Connect))
	mux.HandleFunc("POST /api/integrations/sync", requireSession(integration.Sync))
	mux.HandleFunc("DELETE /api/integrations/{id}", requireSession(integration.Disconnect))
	mux.HandleFunc("PUT /api/integrations/{id}/settings", requireSession(integration.UpdateSettings))

	// Preferences
	mux.HandleFunc("GET /api/settings", requireSession(settings.Get))
	mux.HandleFunc("POST /api/settings", requireSession(settings.Update))

	// Content management
	mux.HandleFunc("POST /api/content", requireSession(content.Update))
	mux.HandleFunc("POST /api/content/templates/{id}/render", requireSession(content.Render))

	// Decomposition and plans
	mux.HandleFunc("POST /api/process-goal", decomposeLimiter(requireSession(agent.ProcessGoal)))
	mux.HandleFunc("POST /api/plans", requireSession(agent.ApplyPlan))
	mux.HandleFunc("GET /api/workflows", requireSession(agent.Workflows))

	// Planning tools
	mux.HandleFunc("POST /api/generate-schedule", requireSession(schedule.Generate))
	mux.HandleFunc("GET /api/stats", requireSession(stats.Get))
	mux.HandleFunc("POST /api/export", requireSession(export.Export))
	mux.HandleFunc("GET /api/exports", requireSession(export.List))

	// ============================================================================
	// FALLBACK
	// ============================================================================

	mux.HandleFunc("/{path...}", handler.NotFound)

	// Global middleware - executed in order (top to bottom)
	handler := middleware.Chain(
		mux,
		middleware.RequestID,       // Tag the request before anything logs
		middleware.RequestLogging,
		middleware.SecurityHeaders, // Security headers for all responses
		middleware.RequireJSON,     // State-changing API calls must send JSON
	)

	return handler
}
