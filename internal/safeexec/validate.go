// Package safeexec validates and runs external commands without ever letting
// untrusted input reach a shell. Commands are spawned in argv form; the one
// deliberate exception is the Shell type, which is a separately named escape
// hatch so call sites stand out in review.
package safeexec

import (
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// validCommandChars matches the permissive safe charset for executable
// names and paths. Alphanumerics, '-', '_', '.', '/', '\', ':' and space
// (to allow Windows paths like "C:\Program Files\tool.exe").
var validCommandChars = regexp.MustCompile(`^[a-zA-Z0-9_\-./\\: ]+$`)

// dangerousArgPatterns are checked against every argument. Execution is
// always argv-form, so none of these can actually be shell-interpreted;
// the check gives callers an explicit early rejection instead of a
// downstream surprise.
var dangerousArgPatterns = []struct {
	pattern     *regexp.Regexp
	description string
}{
	{regexp.MustCompile(`\$\(`), "command substitution '$('"},
	{regexp.MustCompile("`"), "backtick command substitution"},
	{regexp.MustCompile(`\$\{`), "variable expansion '${'"},
	{regexp.MustCompile(`[|;&]`), "shell control character"},
	{regexp.MustCompile(`[\r\n]`), "newline or carriage return"},
}

// strippedArgChars are removed by SanitizeArg. Dropping '$' covers both
// '$(' and '${' without touching harmless parentheses or braces.
var strippedArgChars = regexp.MustCompile("[|;&`$]")

// spaceRuns collapses whitespace runs left behind by sanitization
var spaceRuns = regexp.MustCompile(`[ \t]{2,}`)

// ValidateCommand checks that a command name or path is syntactically safe
// to spawn. It has no side effects and never touches the filesystem.
func ValidateCommand(command string) error {
	if command == "" {
		return fmt.Errorf("command cannot be empty")
	}
	if strings.Contains(command, "..") {
		return fmt.Errorf("command cannot contain '..'")
	}
	if !validCommandChars.MatchString(command) {
		return fmt.Errorf("command contains invalid characters (only alphanumeric, '-', '_', '.', '/', '\\', ':' and space allowed)")
	}
	return nil
}

// ValidateArgs checks every argument against the dangerous pattern table.
// The first match short-circuits with an error naming the offending index.
func ValidateArgs(args []string) error {
	for i, arg := range args {
		for _, p := range dangerousArgPatterns {
			if p.pattern.MatchString(arg) {
				return fmt.Errorf("argument %d contains %s", i, p.description)
			}
		}
	}
	return nil
}

// SanitizeArg is the lossy, non-failing alternative to ValidateArgs:
// dangerous characters are stripped, newlines collapse to spaces, and the
// result is trimmed. Idempotent.
func SanitizeArg(arg string) string {
	result := strings.ReplaceAll(arg, "\r\n", " ")
	result = strings.ReplaceAll(result, "\n", " ")
	result = strings.ReplaceAll(result, "\r", " ")
	result = strippedArgChars.ReplaceAllString(result, "")
	result = spaceRuns.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// CommandExists reports whether a command resolves on PATH. Anything
// failing ValidateCommand is false without spawning or resolving anything.
func CommandExists(command string) bool {
	if err := ValidateCommand(command); err != nil {
		return false
	}
	_, err := exec.LookPath(command)
	return err == nil
}
