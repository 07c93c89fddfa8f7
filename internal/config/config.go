package config

import (
	"os"
	"path/filepath"
)

// GetGanchoHome returns GANCHO_HOME or ~/.gancho default
func GetGanchoHome() string {
	ganchoHome := os.Getenv("GANCHO_HOME")
	if ganchoHome == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return ".gancho"
		}
		return filepath.Join(homeDir, ".gancho")
	}
	return ExpandPath(ganchoHome)
}

// GetDBPath returns $GANCHO_HOME/gancho.db
func GetDBPath() string {
	return filepath.Join(GetGanchoHome(), "gancho.db")
}

// GetSettingsPath returns $GANCHO_HOME/settings.json
func GetSettingsPath() string {
	return filepath.Join(GetGanchoHome(), "settings.json")
}

// ExpandPath expands ~ to the home directory in paths
func ExpandPath(path string) string {
	if len(path) > 0 && path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		if len(path) == 1 {
			return homeDir
		}
		return filepath.Join(homeDir, path[1:])
	}
	return path
}
