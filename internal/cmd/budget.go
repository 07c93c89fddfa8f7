package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/renato0307/gancho/internal/api"
)

// BudgetCmd groups the spend ledger subcommands
type BudgetCmd struct {
	Show  BudgetShowCmd  `cmd:"" help:"Show budgets" default:"1"`
	Set   BudgetSetCmd   `cmd:"" help:"Create or overwrite a budget for a scope"`
	Spend BudgetSpendCmd `cmd:"" help:"Add spend to a budget"`
	Reset BudgetResetCmd `cmd:"" help:"Zero a budget's accumulated spend"`
}

// scopeFlags selects one budget scope key. A global budget has neither
// project nor session set.
type scopeFlags struct {
	Project string `help:"Project path of the scope" type:"path"`
	Session string `help:"Session id of the scope"`
}

func (s scopeFlags) key() (projectPath, sessionID *string) {
	if s.Project != "" {
		projectPath = &s.Project
	}
	if s.Session != "" {
		sessionID = &s.Session
	}
	return projectPath, sessionID
}

// BudgetShowCmd shows budgets
type BudgetShowCmd struct {
	scopeFlags
	All    bool   `help:"Show every budget record" short:"a"`
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the budget show command
func (c *BudgetShowCmd) Run(cli *CLI) error {
	if c.All {
		data, err := unwrap(cli.Container.Handler.ListBudgets(context.Background()))
		if err != nil {
			return err
		}
		if c.Format == "json" {
			return renderJSON(data)
		}
		budgets := data.([]api.Budget)
		if len(budgets) == 0 {
			fmt.Println("No budgets configured.")
			return nil
		}
		fmt.Println("ID                                    Scope                      Spent / Limit       Period   Hard stop")
		fmt.Println(strings.Repeat("─", 100))
		for _, b := range budgets {
			fmt.Printf("%-37s %-26s $%.2f / $%.2f   %-8s %t\n",
				b.ID,
				truncateCol(scopeLabel(b), 26),
				b.SpentUSD,
				b.LimitUSD,
				b.ResetPeriod,
				b.HardStopEnabled)
		}
		return nil
	}

	projectPath, sessionID := c.key()
	data, err := unwrap(cli.Container.Handler.GetBudget(context.Background(), projectPath, sessionID))
	if err != nil {
		return err
	}
	if data == nil {
		fmt.Println("No budget configured for this scope.")
		return nil
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	printBudget(data.(api.Budget))
	return nil
}

func scopeLabel(b api.Budget) string {
	switch {
	case b.ProjectPath != nil && b.SessionID != nil:
		return *b.ProjectPath + " / " + *b.SessionID
	case b.ProjectPath != nil:
		return *b.ProjectPath
	case b.SessionID != nil:
		return "session " + *b.SessionID
	default:
		return "global"
	}
}

func printBudget(b api.Budget) {
	fmt.Printf("ID:          %s\n", b.ID)
	fmt.Printf("Scope:       %s\n", scopeLabel(b))
	fmt.Printf("Spent:       $%.2f of $%.2f\n", b.SpentUSD, b.LimitUSD)
	fmt.Printf("Warning at:  %.0f%%\n", b.WarningThreshold*100)
	fmt.Printf("Hard stop:   %t\n", b.HardStopEnabled)
	fmt.Printf("Period:      %s\n", b.ResetPeriod)
	fmt.Printf("Last reset:  %s\n", b.LastReset)
	if b.OverLimit {
		fmt.Println("Status:      OVER LIMIT")
	} else if b.OverWarning {
		fmt.Println("Status:      over warning threshold")
	}
}

// BudgetSetCmd creates or overwrites a budget for a scope
type BudgetSetCmd struct {
	scopeFlags
	Limit    float64 `arg:"" help:"Spend limit in USD"`
	Warning  float64 `help:"Warning threshold as a fraction of the limit (default 0.8)"`
	HardStop bool    `help:"Refuse further automated actions once the limit is reached"`
	Period   string  `help:"Reset period (session, day, week, month)" default:"session" enum:"session,day,week,month"`
	Format   string  `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the budget set command
func (c *BudgetSetCmd) Run(cli *CLI) error {
	projectPath, sessionID := c.key()
	req := api.SetBudgetRequest{
		ProjectPath:      projectPath,
		SessionID:        sessionID,
		LimitUSD:         c.Limit,
		WarningThreshold: c.Warning,
		HardStopEnabled:  c.HardStop,
		ResetPeriod:      c.Period,
	}

	data, err := unwrap(cli.Container.Handler.SetBudget(context.Background(), req))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	printBudget(data.(api.Budget))
	return nil
}

// BudgetSpendCmd adds spend to a budget
type BudgetSpendCmd struct {
	ID     string  `arg:"" help:"Budget id"`
	Amount float64 `arg:"" help:"Amount to add in USD"`
	Format string  `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the budget spend command
func (c *BudgetSpendCmd) Run(cli *CLI) error {
	data, err := unwrap(cli.Container.Handler.AddSpent(context.Background(), c.ID, c.Amount))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	printBudget(data.(api.Budget))
	return nil
}

// BudgetResetCmd zeroes a budget's accumulated spend
type BudgetResetCmd struct {
	ID     string `arg:"" help:"Budget id"`
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the budget reset command
func (c *BudgetResetCmd) Run(cli *CLI) error {
	data, err := unwrap(cli.Container.Handler.ResetBudget(context.Background(), c.ID))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	printBudget(data.(api.Budget))
	return nil
}
