package storage

import "time"

// HookModel is the GORM model for the hooks table
type HookModel struct {
	Command        string `gorm:"not null;default:''"`
	CreatedAt      time.Time
	Enabled        bool   `gorm:"not null"`
	EventType      string `gorm:"not null;index:idx_hooks_event_type"`
	ExecutionCount int    `gorm:"not null;default:0"`
	HookType       string `gorm:"not null;check:hook_type IN ('command','prompt')"`
	ID             string `gorm:"primaryKey"`
	LastExecuted   *time.Time
	LastResult     *string `gorm:"check:last_result IN ('success','failure','timeout')"`
	Matcher        *string
	Name           string  `gorm:"not null"`
	Prompt         string  `gorm:"not null;default:''"`
	ProjectPath    *string `gorm:"index:idx_hooks_project"`
	Scope          string  `gorm:"not null;check:scope IN ('user','project')"`
	TimeoutMs      int     `gorm:"not null"`
	UpdatedAt      time.Time
}

// TableName specifies the table name for GORM
func (HookModel) TableName() string { return "hooks" }

// BudgetModel is the GORM model for the budgets table. The unique index
// over (project_path, session_id) enforces one record per scope key when
// both parts are set; SQLite treats NULLs as distinct in unique indexes,
// so keys with NULL parts rely on the upsert flow.
type BudgetModel struct {
	CreatedAt        time.Time
	HardStopEnabled  bool   `gorm:"not null;default:false"`
	ID               string `gorm:"primaryKey"`
	LastReset        time.Time
	LimitUSD         float64 `gorm:"column:limit_usd;not null"`
	ProjectPath      *string `gorm:"uniqueIndex:idx_budgets_scope"`
	ResetPeriod      string  `gorm:"not null;check:reset_period IN ('session','day','week','month')"`
	SessionID        *string `gorm:"uniqueIndex:idx_budgets_scope"`
	SpentUSD         float64 `gorm:"column:spent_usd;not null;default:0"`
	UpdatedAt        time.Time
	WarningThreshold float64 `gorm:"not null"`
}

// TableName specifies the table name for GORM
func (BudgetModel) TableName() string { return "budgets" }

// PolicyModel is the GORM model for the approval_policies table
type PolicyModel struct {
	Action     string `gorm:"not null;check:action IN ('allow','deny','ask')"`
	Conditions *string
	CreatedAt  time.Time
	Enabled    bool   `gorm:"not null;index:idx_policies_enabled"`
	ID         string `gorm:"primaryKey"`
	Matcher    string `gorm:"not null"`
	Name       string `gorm:"not null"`
	Priority   int    `gorm:"not null;index:idx_policies_priority"`
	UpdatedAt  time.Time
}

// TableName specifies the table name for GORM
func (PolicyModel) TableName() string { return "approval_policies" }

// HookEventModel is the GORM model for the hook_events table (append-only)
type HookEventModel struct {
	CreatedAt  time.Time
	DurationMs int64     `gorm:"not null;default:0"`
	EventType  string    `gorm:"not null;index:idx_events_type"`
	ID         string    `gorm:"primaryKey"`
	Metadata   string    `gorm:"not null;default:''"`
	Outcome    string    `gorm:"not null;default:''"`
	SessionID  string    `gorm:"not null;default:'';index:idx_events_session"`
	Timestamp  time.Time `gorm:"not null;index:idx_events_timestamp"`
}

// TableName specifies the table name for GORM
func (HookEventModel) TableName() string { return "hook_events" }
