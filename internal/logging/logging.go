package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// Environment variables a gancho process exports so spawned hook commands
// append to the same debug log instead of opening their own.
const (
	EnvDebug       = "GANCHO_DEBUG"
	EnvDebugFile   = "GANCHO_DEBUG_FILE"
	EnvMaxLogFiles = "GANCHO_MAX_LOG_FILES"
)

// DefaultMaxLogFiles is how many rotated debug logs are kept around
const DefaultMaxLogFiles = 1000

// Logger is the public logger instance accessible from all packages
var Logger *slog.Logger

func init() {
	Logger = discardLogger()
}

// discardLogger swallows everything. Used before Initialize runs and
// whenever debug logging is off, so callers never nil-check Logger.
func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

// Initialize configures the package logger. With debug off and no custom
// file, logs are discarded. Otherwise a JSON debug-level logger writes to
// either debugFile (no rotation) or a fresh uuid-named file in the
// per-OS log directory, pruning old files down to maxLogFiles first.
// Settings inherited from the environment fill in unset parameters.
// Returns the log file path when file logging is active.
func Initialize(debug bool, debugFile string, maxLogFiles int) (string, error) {
	inherited := os.Getenv(EnvDebug) == "1"
	if inherited {
		debug = true
	}
	if debugFile == "" {
		debugFile = os.Getenv(EnvDebugFile)
	}
	if maxLogFiles == DefaultMaxLogFiles {
		if parsed, err := strconv.Atoi(os.Getenv(EnvMaxLogFiles)); err == nil {
			maxLogFiles = parsed
		}
	}

	if !debug && debugFile == "" {
		Logger = discardLogger()
		return "", nil
	}

	logFilePath := debugFile
	if logFilePath == "" {
		var err error
		logFilePath, err = newRotatedLogPath(maxLogFiles)
		if err != nil {
			return "", err
		}
	} else if err := os.MkdirAll(filepath.Dir(logFilePath), 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	logFile, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create log file: %w", err)
	}

	Logger = slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))

	// Announce the log file only when debug was requested directly, not
	// inherited from a parent gancho. Prevents spam from hook subprocesses.
	if !inherited {
		Logger.Info("Debug logging initialized", "log_file", logFilePath)
		fmt.Printf("Debug mode enabled. Logs: %s\n", logFilePath)
	}

	return logFilePath, nil
}

// newRotatedLogPath prepares the per-OS log directory, prunes old log
// files to leave room under maxLogFiles, and returns a fresh uuid-named
// log file path inside it.
func newRotatedLogPath(maxLogFiles int) (string, error) {
	dir, err := logDir()
	if err != nil {
		return "", fmt.Errorf("failed to get log directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create log directory: %w", err)
	}

	if maxLogFiles > 0 {
		// A failed prune never blocks logging
		if err := pruneOldLogs(dir, maxLogFiles-1); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: log rotation failed: %v\n", err)
		}
	}

	return filepath.Join(dir, uuid.New().String()+".log"), nil
}

// pruneOldLogs deletes the oldest .log files in dir until at most keep
// remain, ordered by modification time.
func pruneOldLogs(dir string, keep int) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read log directory: %w", err)
	}

	type logFile struct {
		path    string
		modTime time.Time
	}
	var found []logFile
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".log" {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		found = append(found, logFile{
			path:    filepath.Join(dir, entry.Name()),
			modTime: info.ModTime(),
		})
	}

	if len(found) <= keep {
		return nil
	}

	sort.Slice(found, func(i, j int) bool {
		return found[i].modTime.Before(found[j].modTime)
	})

	for _, stale := range found[:len(found)-keep] {
		if err := os.Remove(stale.path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to delete old log file %s: %v\n", stale.path, err)
		}
	}
	return nil
}

// logDir returns the per-OS directory for rotated gancho debug logs
func logDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Logs", "gancho"), nil
	case "linux":
		stateHome := os.Getenv("XDG_STATE_HOME")
		if stateHome == "" {
			stateHome = filepath.Join(homeDir, ".local", "state")
		}
		return filepath.Join(stateHome, "gancho"), nil
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(localAppData, "gancho", "logs"), nil
	default:
		return filepath.Join(homeDir, ".gancho", "logs"), nil
	}
}
