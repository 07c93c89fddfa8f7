package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/renato0307/gancho/internal/api"
	"github.com/renato0307/gancho/internal/domain"
)

// EventsCmd groups the hook event log subcommands
type EventsCmd struct {
	List    EventsListCmd    `cmd:"" help:"List recent hook events" default:"1"`
	Stats   EventsStatsCmd   `cmd:"" help:"Show aggregate event counts"`
	Cleanup EventsCleanupCmd `cmd:"" help:"Delete events older than a retention window"`
}

// EventsListCmd lists recent hook events
type EventsListCmd struct {
	Session string `help:"Only events of this session" short:"s"`
	Type    string `help:"Only events of this type (lifecycle or synthetic, e.g. hook-test)" short:"t"`
	Limit   int    `help:"Maximum number of results" default:"50" short:"l"`
	Format  string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the events list command
func (c *EventsListCmd) Run(cli *CLI) error {
	var resp api.Response
	switch {
	case c.Session != "":
		resp = cli.Container.Handler.EventsBySession(context.Background(), c.Session, c.Limit)
	case c.Type != "":
		resp = cli.Container.Handler.EventsByType(context.Background(), c.Type, c.Limit)
	default:
		resp = cli.Container.Handler.RecentEvents(context.Background(), c.Limit)
	}

	data, err := unwrap(resp)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	events := data.([]api.Event)
	if len(events) == 0 {
		fmt.Println("No events recorded.")
		return nil
	}

	fmt.Println("Timestamp             Event             Outcome   Duration  Session")
	fmt.Println(strings.Repeat("─", 80))
	for _, e := range events {
		fmt.Printf("%-21s %-17s %-9s %6dms  %s\n",
			e.Timestamp,
			truncateCol(e.EventType, 17),
			e.Outcome,
			e.DurationMs,
			truncateCol(e.SessionID, 16))
	}
	return nil
}

// EventsStatsCmd shows aggregate event counts
type EventsStatsCmd struct {
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the events stats command
func (c *EventsStatsCmd) Run(cli *CLI) error {
	data, err := unwrap(cli.Container.Handler.EventStats(context.Background()))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	stats := data.(*domain.EventStats)
	fmt.Printf("Total events: %d\n\n", stats.Total)

	fmt.Println("By type:")
	for eventType, count := range stats.ByType {
		fmt.Printf("  %-20s %d\n", eventType, count)
	}

	fmt.Println("\nBy outcome:")
	for outcome, count := range stats.ByOutcome {
		fmt.Printf("  %-20s %d\n", outcome, count)
	}
	return nil
}

// EventsCleanupCmd deletes events older than a retention window
type EventsCleanupCmd struct {
	MaxAgeHours int `help:"Delete events older than this many hours" default:"720"`
}

// Run executes the events cleanup command
func (c *EventsCleanupCmd) Run(cli *CLI) error {
	data, err := unwrap(cli.Container.Handler.CleanupEvents(context.Background(), c.MaxAgeHours))
	if err != nil {
		return err
	}
	removed := data.(map[string]int64)["removed"]
	fmt.Printf("Removed %d events\n", removed)
	return nil
}
