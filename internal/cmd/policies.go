package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/renato0307/gancho/internal/api"
)

// PoliciesCmd groups the approval policy subcommands
type PoliciesCmd struct {
	List    PoliciesListCmd    `cmd:"" help:"List approval policies in evaluation order" default:"1"`
	Add     PoliciesAddCmd     `cmd:"" help:"Add an approval policy"`
	Rm      PoliciesRmCmd      `cmd:"" help:"Remove an approval policy"`
	Enable  PoliciesEnableCmd  `cmd:"" help:"Enable an approval policy"`
	Disable PoliciesDisableCmd `cmd:"" help:"Disable an approval policy"`
	Decide  PoliciesDecideCmd  `cmd:"" help:"Evaluate policies against a tool or command identifier"`
}

// PoliciesListCmd lists approval policies
type PoliciesListCmd struct {
	Format string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the policies list command
func (c *PoliciesListCmd) Run(cli *CLI) error {
	data, err := unwrap(cli.Container.Handler.ListPolicies(context.Background()))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	policies := data.([]api.Policy)
	if len(policies) == 0 {
		fmt.Println("No approval policies configured.")
		return nil
	}

	fmt.Println("Priority  ID                                    Name                  Matcher               Action  Enabled")
	fmt.Println(strings.Repeat("─", 105))
	for _, p := range policies {
		fmt.Printf("%8d  %-37s %-21s %-21s %-7s %t\n",
			p.Priority,
			p.ID,
			truncateCol(p.Name, 21),
			truncateCol(p.Matcher, 21),
			p.Action,
			p.Enabled)
	}
	return nil
}

// PoliciesAddCmd adds an approval policy
type PoliciesAddCmd struct {
	Name       string `arg:"" help:"Policy name"`
	Matcher    string `help:"Tool or command identifier pattern (glob)" required:"" short:"m"`
	Action     string `help:"Decision when the policy matches" required:"" enum:"allow,deny,ask" short:"a"`
	Priority   int    `help:"Evaluation priority (lower evaluates first)"`
	Conditions string `help:"JSON array of {field,op,value} clauses that must all hold"`
	Disabled   bool   `help:"Add the policy disabled"`
	Format     string `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the policies add command
func (c *PoliciesAddCmd) Run(cli *CLI) error {
	req := api.CreatePolicyRequest{
		Name:     c.Name,
		Matcher:  c.Matcher,
		Action:   c.Action,
		Priority: c.Priority,
	}
	if c.Conditions != "" {
		req.Conditions = &c.Conditions
	}
	if c.Disabled {
		enabled := false
		req.Enabled = &enabled
	}

	data, err := unwrap(cli.Container.Handler.CreatePolicy(context.Background(), req))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	policy := data.(api.Policy)
	fmt.Printf("Policy %q created (%s)\n", policy.Name, policy.ID)
	return nil
}

// PoliciesRmCmd removes an approval policy
type PoliciesRmCmd struct {
	ID string `arg:"" help:"Policy id"`
}

// Run executes the policies rm command
func (c *PoliciesRmCmd) Run(cli *CLI) error {
	if _, err := unwrap(cli.Container.Handler.DeletePolicy(context.Background(), c.ID)); err != nil {
		return err
	}
	fmt.Printf("Policy %s removed\n", c.ID)
	return nil
}

func togglePolicy(cli *CLI, id string, enabled bool) error {
	req := api.UpdatePolicyRequest{Enabled: &enabled}
	data, err := unwrap(cli.Container.Handler.UpdatePolicy(context.Background(), id, req))
	if err != nil {
		return err
	}
	policy := data.(api.Policy)
	state := "disabled"
	if policy.Enabled {
		state = "enabled"
	}
	fmt.Printf("Policy %q %s\n", policy.Name, state)
	return nil
}

// PoliciesEnableCmd enables an approval policy
type PoliciesEnableCmd struct {
	ID string `arg:"" help:"Policy id"`
}

// Run executes the policies enable command
func (c *PoliciesEnableCmd) Run(cli *CLI) error {
	return togglePolicy(cli, c.ID, true)
}

// PoliciesDisableCmd disables an approval policy
type PoliciesDisableCmd struct {
	ID string `arg:"" help:"Policy id"`
}

// Run executes the policies disable command
func (c *PoliciesDisableCmd) Run(cli *CLI) error {
	return togglePolicy(cli, c.ID, false)
}

// PoliciesDecideCmd evaluates the enabled policies against an identifier
type PoliciesDecideCmd struct {
	Identifier string            `arg:"" help:"Tool or command identifier (e.g. 'Bash(git push)')"`
	Attr       map[string]string `help:"Invocation attributes for condition clauses (key=value)"`
	Format     string            `help:"Output format (table or json)" default:"table" enum:"table,json" short:"f"`
}

// Run executes the policies decide command
func (c *PoliciesDecideCmd) Run(cli *CLI) error {
	data, err := unwrap(cli.Container.Handler.Decide(context.Background(), c.Identifier, c.Attr))
	if err != nil {
		return err
	}

	if c.Format == "json" {
		return renderJSON(data)
	}

	decision := data.(api.PolicyDecision)
	fmt.Printf("Action: %s\n", decision.Action)
	if decision.Policy != nil {
		fmt.Printf("Policy: %s (%s)\n", decision.Policy.Name, decision.Policy.ID)
	} else {
		fmt.Println("Policy: none matched (default)")
	}
	return nil
}
