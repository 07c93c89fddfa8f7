package cmd

import (
	"time"

	"github.com/renato0307/gancho/internal/adapters/storage"
	"github.com/renato0307/gancho/internal/api"
	"github.com/renato0307/gancho/internal/config"
	"github.com/renato0307/gancho/internal/safeexec"
	"github.com/renato0307/gancho/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Services
	BudgetService   *services.BudgetService
	EventLogService *services.EventLogService
	HookService     *services.HookService
	PolicyService   *services.PolicyService
	TestRunner      *services.TestRunner

	// Request boundary over the services
	Handler *api.Handler

	// Internal - for cleanup only
	db *storage.DB
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Settings) (*Container, error) {
	db, err := storage.Open(config.GetDBPath())
	if err != nil {
		return nil, err
	}

	shell := safeexec.NewShell()

	hookService := services.NewHookService(db.Hooks())
	budgetService := services.NewBudgetService(db.Budgets())
	policyService := services.NewPolicyService(db.Policies())
	eventLogService := services.NewEventLogService(db.Events())

	testRunner := services.NewTestRunner(shell, db.Events())
	if settings != nil && settings.TestTimeoutSeconds != nil && *settings.TestTimeoutSeconds > 0 {
		testRunner = testRunner.WithTimeout(time.Duration(*settings.TestTimeoutSeconds) * time.Second)
	}

	handler := api.NewHandler(hookService, budgetService, policyService, eventLogService, testRunner)

	return &Container{
		BudgetService:   budgetService,
		EventLogService: eventLogService,
		HookService:     hookService,
		PolicyService:   policyService,
		TestRunner:      testRunner,
		Handler:         handler,
		db:              db,
	}, nil
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}
