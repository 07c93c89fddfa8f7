package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/renato0307/gancho/internal/api"
	"github.com/renato0307/gancho/internal/services"
)

// HooksCmd groups the hook registry subcommands
type HooksCmd struct {
	List   HooksListCmd   `cmd:"" help:"List registered hooks" default:"1"`
	Add    HooksAddCmd    `cmd:"" help:"Register a new hook"`
	Get    HooksGetCmd    `cmd:"" help:"Show one hook"`
	Update HooksUpdateCmd `cmd:"" help:"Update fields of a hook"`
	Rm     HooksRmCmd     `cmd:"" help:"Remove a hook"`
	Test   HooksTestCmd   `cmd:"" help:"Run a hook command with a sample payload"`
}

// HooksListCmd lists registered hooks
type HooksListCmd struct {
	Event  string `help:"Only hooks applying to this event type (with --project-path filtering)" short:"e"`
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`

	ProjectPath string `help:"Project path used when filtering by event" type:"path"`
}

// Run executes the hooks list command
func (c *HooksListCmd) Run(cli *CLI) error {
	var resp api.Response
	if c.Event != "" {
		resp = cli.Container.Handler.HooksForEvent(context.Background(), c.Event, c.ProjectPath)
	} else {
		resp = cli.Container.Handler.ListHooks(context.Background())
	}

	data, err := unwrap(resp)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	hooks := data.([]api.Hook)
	if len(hooks) == 0 {
		fmt.Println("No hooks registered.")
		return nil
	}

	fmt.Println("ID                                    Name                  Event          Type     Scope    Enabled")
	fmt.Println(strings.Repeat("─", 100))
	for _, h := range hooks {
		fmt.Printf("%-37s %-21s %-14s %-8s %-8s %t\n",
			h.ID,
			truncateCol(h.Name, 21),
			truncateCol(h.EventType, 14),
			h.HookType,
			h.Scope,
			h.Enabled)
	}
	return nil
}

// HooksAddCmd registers a new hook
type HooksAddCmd struct {
	Name     string `arg:"" help:"Hook name"`
	Event    string `help:"Lifecycle event type (PreToolUse, PostToolUse, SessionStart, SessionEnd, Notification, Stop)" required:"" short:"e"`
	Command  string `help:"Shell command to run (command hooks)" short:"c"`
	Prompt   string `help:"Prompt text (prompt hooks)" short:"p"`
	Matcher  string `help:"Tool name pattern the hook applies to"`
	Timeout  int    `help:"Timeout in milliseconds (default 60000)"`
	Disabled bool   `help:"Register the hook disabled"`
	Project  string `help:"Project path (makes the hook project-scoped)" type:"path"`
	Format   string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the hooks add command
func (c *HooksAddCmd) Run(cli *CLI) error {
	hookType := "command"
	if c.Prompt != "" && c.Command == "" {
		hookType = "prompt"
	}

	req := api.CreateHookRequest{
		Name:      c.Name,
		EventType: c.Event,
		HookType:  hookType,
		Command:   c.Command,
		Prompt:    c.Prompt,
		TimeoutMs: c.Timeout,
	}
	if c.Matcher != "" {
		req.Matcher = &c.Matcher
	}
	if c.Project != "" {
		req.ProjectPath = &c.Project
	}
	if c.Disabled {
		enabled := false
		req.Enabled = &enabled
	}

	data, err := unwrap(cli.Container.Handler.CreateHook(context.Background(), req))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	hook := data.(api.Hook)
	fmt.Printf("Hook %q created (%s)\n", hook.Name, hook.ID)
	return nil
}

// HooksGetCmd shows one hook
type HooksGetCmd struct {
	ID     string `arg:"" help:"Hook id"`
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the hooks get command
func (c *HooksGetCmd) Run(cli *CLI) error {
	data, err := unwrap(cli.Container.Handler.GetHook(context.Background(), c.ID))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	hook := data.(api.Hook)
	fmt.Printf("ID:          %s\n", hook.ID)
	fmt.Printf("Name:        %s\n", hook.Name)
	fmt.Printf("Event:       %s\n", hook.EventType)
	fmt.Printf("Type:        %s\n", hook.HookType)
	if hook.Command != "" {
		fmt.Printf("Command:     %s\n", hook.Command)
	}
	if hook.Prompt != "" {
		fmt.Printf("Prompt:      %s\n", hook.Prompt)
	}
	if hook.Matcher != nil {
		fmt.Printf("Matcher:     %s\n", *hook.Matcher)
	}
	fmt.Printf("Timeout:     %dms\n", hook.TimeoutMs)
	fmt.Printf("Enabled:     %t\n", hook.Enabled)
	fmt.Printf("Scope:       %s\n", hook.Scope)
	if hook.ProjectPath != nil {
		fmt.Printf("Project:     %s\n", *hook.ProjectPath)
	}
	fmt.Printf("Executions:  %d\n", hook.ExecutionCount)
	if hook.LastExecuted != nil {
		fmt.Printf("Last run:    %s", *hook.LastExecuted)
		if hook.LastResult != nil {
			fmt.Printf(" (%s)", *hook.LastResult)
		}
		fmt.Println()
	}
	return nil
}

// HooksUpdateCmd updates fields of a hook. Only flags the caller passes
// are changed; --clear-matcher and --clear-project reset optional fields.
type HooksUpdateCmd struct {
	ID           string  `arg:"" help:"Hook id"`
	Name         *string `help:"New name"`
	Event        *string `help:"New lifecycle event type" short:"e"`
	Command      *string `help:"New shell command" short:"c"`
	Prompt       *string `help:"New prompt text" short:"p"`
	Matcher      *string `help:"New tool name pattern"`
	ClearMatcher bool    `help:"Remove the matcher"`
	Timeout      *int    `help:"New timeout in milliseconds"`
	Enable       bool    `help:"Enable the hook" xor:"toggle"`
	Disable      bool    `help:"Disable the hook" xor:"toggle"`
	Project      *string `help:"New project path (re-derives scope)" type:"path"`
	ClearProject bool    `help:"Remove the project path (hook becomes user-scoped)"`
	Format       string  `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the hooks update command
func (c *HooksUpdateCmd) Run(cli *CLI) error {
	req := api.UpdateHookRequest{
		Name:      c.Name,
		EventType: c.Event,
		Command:   c.Command,
		Prompt:    c.Prompt,
		TimeoutMs: c.Timeout,
	}
	if c.Matcher != nil || c.ClearMatcher {
		req.SetMatcher = true
		if !c.ClearMatcher {
			req.Matcher = c.Matcher
		}
	}
	if c.Project != nil || c.ClearProject {
		req.SetProjectPath = true
		if !c.ClearProject {
			req.ProjectPath = c.Project
		}
	}
	if c.Enable {
		enabled := true
		req.Enabled = &enabled
	}
	if c.Disable {
		enabled := false
		req.Enabled = &enabled
	}

	data, err := unwrap(cli.Container.Handler.UpdateHook(context.Background(), c.ID, req))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	hook := data.(api.Hook)
	fmt.Printf("Hook %q updated\n", hook.Name)
	return nil
}

// HooksRmCmd removes a hook
type HooksRmCmd struct {
	ID string `arg:"" help:"Hook id"`
}

// Run executes the hooks rm command
func (c *HooksRmCmd) Run(cli *CLI) error {
	if _, err := unwrap(cli.Container.Handler.DeleteHook(context.Background(), c.ID)); err != nil {
		return err
	}
	fmt.Printf("Hook %s removed\n", c.ID)
	return nil
}

// HooksTestCmd runs a hook command with a sample payload on stdin
type HooksTestCmd struct {
	Command string `arg:"" optional:"" help:"Shell command to test (defaults to the command of --id)"`
	ID      string `help:"Test the command of a registered hook"`
	Input   string `help:"JSON payload piped to the command's stdin" default:"{}"`
	Format  string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the hooks test command
func (c *HooksTestCmd) Run(cli *CLI) error {
	command := c.Command
	if command == "" && c.ID != "" {
		data, err := unwrap(cli.Container.Handler.GetHook(context.Background(), c.ID))
		if err != nil {
			return err
		}
		command = data.(api.Hook).Command
	}

	var input any
	if err := json.Unmarshal([]byte(c.Input), &input); err != nil {
		return fmt.Errorf("invalid --input JSON: %w", err)
	}

	data, err := unwrap(cli.Container.Handler.TestHook(context.Background(), command, input))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	result := data.(services.TestHookResult)
	fmt.Printf("Exit code: %d\n", result.ExitCode)
	if result.Stdout != "" {
		fmt.Printf("Stdout:\n%s\n", result.Stdout)
	}
	if result.Stderr != "" {
		fmt.Printf("Stderr:\n%s\n", result.Stderr)
	}
	return nil
}
