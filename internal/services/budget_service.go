package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/renato0307/gancho/internal/domain"
	"github.com/renato0307/gancho/internal/logging"
	"github.com/renato0307/gancho/internal/ports"
)

// BudgetService is the spend ledger: one budget record per
// (projectPath, sessionID) scope key.
type BudgetService struct {
	budgets ports.BudgetRepository
}

// NewBudgetService creates a new BudgetService
func NewBudgetService(budgets ports.BudgetRepository) *BudgetService {
	return &BudgetService{budgets: budgets}
}

// Upsert creates the budget for the record's scope key, or overwrites the
// existing one. On overwrite the limits, threshold, hard-stop flag and
// reset period are replaced while accumulated spend and last reset are
// preserved.
func (s *BudgetService) Upsert(ctx context.Context, record domain.BudgetRecord) (*domain.BudgetRecord, error) {
	if record.WarningThreshold == 0 {
		record.WarningThreshold = 0.8
	}
	if record.ResetPeriod == "" {
		record.ResetPeriod = domain.ResetPerSession
	}

	if err := record.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.budgets.GetByScope(ctx, record.ProjectPath, record.SessionID)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if existing == nil {
		record.ID = uuid.New().String()
		record.SpentUSD = 0
		record.LastReset = now
		if err := s.budgets.Create(ctx, record); err != nil {
			return nil, err
		}
		logging.Logger.Info("Budget created",
			"id", record.ID,
			"limit_usd", record.LimitUSD,
			"reset_period", record.ResetPeriod)
		return s.budgets.GetByID(ctx, record.ID)
	}

	existing.LimitUSD = record.LimitUSD
	existing.WarningThreshold = record.WarningThreshold
	existing.HardStopEnabled = record.HardStopEnabled
	existing.ResetPeriod = record.ResetPeriod
	if err := s.budgets.Update(ctx, *existing); err != nil {
		return nil, err
	}

	logging.Logger.Info("Budget updated",
		"id", existing.ID,
		"limit_usd", existing.LimitUSD,
		"reset_period", existing.ResetPeriod)
	return s.budgets.GetByID(ctx, existing.ID)
}

// GetForScope returns the budget for the exact scope key, or nil when none
// exists. No project-to-global fallback is performed.
func (s *BudgetService) GetForScope(ctx context.Context, projectPath, sessionID *string) (*domain.BudgetRecord, error) {
	return s.budgets.GetByScope(ctx, projectPath, sessionID)
}

// GetByID returns a budget by id
func (s *BudgetService) GetByID(ctx context.Context, id string) (*domain.BudgetRecord, error) {
	return s.budgets.GetByID(ctx, id)
}

// List returns all budget records
func (s *BudgetService) List(ctx context.Context) ([]domain.BudgetRecord, error) {
	return s.budgets.List(ctx)
}

// AddSpent increments a budget's spend by a non-negative amount and
// returns the updated record. Spend only decreases through Reset.
func (s *BudgetService) AddSpent(ctx context.Context, id string, additionalCost float64) (*domain.BudgetRecord, error) {
	if additionalCost < 0 {
		verr := &domain.ValidationError{}
		return nil, verr.Add("additionalCost", "additional cost cannot be negative")
	}

	if err := s.budgets.AddSpent(ctx, id, additionalCost); err != nil {
		return nil, err
	}

	record, err := s.budgets.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if record.ShouldHardStop() {
		logging.Logger.Warn("Budget hard stop reached",
			"id", record.ID,
			"spent_usd", record.SpentUSD,
			"limit_usd", record.LimitUSD)
	} else if record.OverWarning() {
		logging.Logger.Warn("Budget warning threshold crossed",
			"id", record.ID,
			"spent_usd", record.SpentUSD,
			"limit_usd", record.LimitUSD)
	}

	return record, nil
}

// Reset zeroes the spend and stamps a new reset time. The ledger never
// resets automatically; invoking this when LastReset predates the current
// window is the dispatcher's call.
func (s *BudgetService) Reset(ctx context.Context, id string) (*domain.BudgetRecord, error) {
	if err := s.budgets.Reset(ctx, id, time.Now().UTC()); err != nil {
		return nil, err
	}
	logging.Logger.Info("Budget reset", "id", id)
	return s.budgets.GetByID(ctx, id)
}
