package safeexec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_AcceptsSafeNames(t *testing.T) {
	tests := []string{
		"git",
		"go1.22",
		"/usr/local/bin/golangci-lint",
		"./scripts/check.sh",
		"node_modules/.bin/eslint",
		`C:\Program Files\tool.exe`,
	}

	for _, command := range tests {
		t.Run(command, func(t *testing.T) {
			assert.NoError(t, ValidateCommand(command))
		})
	}
}

func TestValidateCommand_RejectsUnsafeNames(t *testing.T) {
	tests := []struct {
		name    string
		command string
	}{
		{"empty", ""},
		{"parent traversal", "../../bin/sh"},
		{"embedded traversal", "tools/../../etc/passwd"},
		{"semicolon", "git;rm"},
		{"pipe", "cat|sh"},
		{"substitution", "$(whoami)"},
		{"newline", "git\nrm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, ValidateCommand(tt.command))
		})
	}
}

func TestValidateArgs_AcceptsBenignArgs(t *testing.T) {
	args := []string{
		"--format=json",
		"-la",
		"some file.txt",
		"src/**/*.go",
		"message with (parens) and {braces}",
		"quoted 'stuff' stays",
	}
	assert.NoError(t, ValidateArgs(args))
}

func TestValidateArgs_RejectsDangerousArgs(t *testing.T) {
	tests := []struct {
		name string
		arg  string
	}{
		{"command substitution", "$(rm -rf /)"},
		{"backtick", "`id`"},
		{"variable expansion", "${HOME}"},
		{"pipe", "a|b"},
		{"semicolon", "a;b"},
		{"ampersand", "a&b"},
		{"newline", "a\nb"},
		{"carriage return", "a\rb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateArgs([]string{"safe", tt.arg})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "argument 1")
		})
	}
}

func TestSanitizeArg(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"clean arg untouched", "hello world", "hello world"},
		{"strips substitution", "$(rm -rf /)", "(rm -rf /)"},
		{"strips backticks", "`id`", "id"},
		{"strips control chars", "a|b;c&d", "abcd"},
		{"newlines become spaces", "line1\nline2", "line1 line2"},
		{"crlf becomes one space", "line1\r\nline2", "line1 line2"},
		{"collapses space runs", "a  \t  b", "a b"},
		{"trims edges", "  padded  ", "padded"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := SanitizeArg(tt.input)
			assert.Equal(t, tt.expected, result)

			// Sanitizing an already-sanitized arg changes nothing
			assert.Equal(t, result, SanitizeArg(result))
		})
	}
}

func TestCommandExists(t *testing.T) {
	assert.True(t, CommandExists("go"))
	assert.False(t, CommandExists("definitely-not-a-real-binary-xyz"))

	// Invalid names are false without touching PATH
	assert.False(t, CommandExists("git;rm"))
	assert.False(t, CommandExists(""))
}
