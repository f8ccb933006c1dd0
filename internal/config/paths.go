package config

import (
	"os"
	"path/filepath"
	"runtime"
)

// Paths holds the filesystem locations snapview uses.
type Paths struct {
	// ConfigDir is the directory for configuration files (~/.config/snapview)
	ConfigDir string

	// DataDir is the directory for data files such as the default
	// operation log (~/.local/share/snapview)
	DataDir string
}

// DefaultPaths returns the default paths based on the XDG Base Directory
// spec. On Windows, %APPDATA% and %LOCALAPPDATA% are used instead.
func DefaultPaths() *Paths {
	home := homeDir()

	if runtime.GOOS == "windows" {
		appData := os.Getenv("APPDATA")
		if appData == "" {
			appData = filepath.Join(home, "AppData", "Roaming")
		}
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		return &Paths{
			ConfigDir: filepath.Join(appData, "snapview"),
			DataDir:   filepath.Join(localAppData, "snapview"),
		}
	}

	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		configHome = filepath.Join(home, ".config")
	}
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		dataHome = filepath.Join(home, ".local", "share")
	}

	return &Paths{
		ConfigDir: filepath.Join(configHome, "snapview"),
		DataDir:   filepath.Join(dataHome, "snapview"),
	}
}

// ConfigFile returns the path of the YAML config file.
func (p *Paths) ConfigFile() string {
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// DefaultLogFile returns where the operation log goes when log.file is not
// set but logging is requested.
func (p *Paths) DefaultLogFile() string {
	return filepath.Join(p.DataDir, "snapview.log")
}

func homeDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return home
	}
	if runtime.GOOS == "windows" {
		return os.Getenv("USERPROFILE")
	}
	return os.Getenv("HOME")
}
