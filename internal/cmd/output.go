package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/renato0307/gancho/internal/api"
)

// renderJSON prints any value as indented JSON
func renderJSON(v any) error {
	output, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(output))
	return nil
}

// unwrap converts a failure envelope into a CLI error, otherwise returns
// the payload
func unwrap(resp api.Response) (any, error) {
	if !resp.Success {
		return nil, fmt.Errorf("%s", resp.Error)
	}
	return resp.Data, nil
}

// truncateCol shortens a table cell to max runes with an ellipsis
func truncateCol(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
