package service

import (
	"context"
	"testing"
	"time"

	"github.com/dreamtask/dreamtask/internal/agent"
	"github.com/dreamtask/dreamtask/internal/db/dbtest"
	"github.com/dreamtask/dreamtask/internal/markdown"
	"github.com/dreamtask/dreamtask/internal/model"
	"github.com/dreamtask/dreamtask/internal/repository"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	db           *sqlx.DB
	users        repository.UserRepository
	sessions     repository.SessionRepository
	goalRepo     repository.GoalRepository
	taskRepo     repository.TaskRepository
	workflowRepo repository.WorkflowRepository
	auth         *AuthService
	user         *UserService
	goals        *GoalService
	tasks        *TaskService
	workflows    *WorkflowService
	integrations *IntegrationService
	settings     *SettingsService
	content      *ContentService
	plans        *PlanService
	stats        *StatsService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := dbtest.Open(t)

	email := NewEmailService("", "noreply@example.com", "http://localhost:8090", "Dream-to-Task Agent", true)

	env := &testEnv{
		db:           db,
		users:        repository.NewUserRepository(db),
		sessions:     repository.NewSessionRepository(db),
		goalRepo:     repository.NewGoalRepository(db),
		taskRepo:     repository.NewTaskRepository(db),
		workflowRepo: repository.NewWorkflowRepository(db),
	}
	env.auth = NewAuthService(env.users, env.sessions, email, 168*time.Hour, bcrypt.MinCost, false)
	env.user = NewUserService(env.users, env.sessions, email)
	env.goals = NewGoalService(env.goalRepo)
	env.tasks = NewTaskService(env.taskRepo, env.goals)
	env.workflows = NewWorkflowService(env.workflowRepo)
	env.integrations = NewIntegrationService(repository.NewIntegrationRepository(db), env.workflows)
	env.settings = NewSettingsService(repository.NewPreferencesRepository(db))
	env.content = NewContentService(repository.NewContentRepository(db), repository.NewTemplateRepository(db), markdown.NewParser(), "Dream-to-Task Agent")
	env.plans = NewPlanService(env.goalRepo, env.taskRepo, env.workflows)
	env.stats = NewStatsService(repository.NewStatsRepository(db), env.goalRepo, env.taskRepo)
	return env
}

func (e *testEnv) register(t *testing.T, email string) *model.User {
	t.Helper()
	user, _, err := e.auth.Register(email, "Test User", "correct horse battery")
	require.NoError(t, err)
	return user
}

type runnerFunc func(ctx context.Context, req agent.Request) (*agent.Plan, error)

func (f runnerFunc) Decompose(ctx context.Context, req agent.Request) (*agent.Plan, error) {
	return f(ctx, req)
}
