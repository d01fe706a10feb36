// Package paths resolves the canvas configuration and data directories.
//
// A catalogue is either project-local (.canvas and .canvas-db under the
// working directory) or per-user (the platform directories). Explicit
// flags and environment variables override both.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

// AppName names the per-user directories.
const AppName = "canvas"

// Project-local directory names, relative to the working directory.
const (
	LocalConfigDirName = ".canvas"
	LocalDataDirName   = ".canvas-db"
)

// Environment variables that override directory resolution.
const (
	EnvConfigDir = "CANVAS_CONFIG_DIR"
	EnvDataDir   = "CANVAS_DATA_DIR"
)

// platformDir holds platform-detection functions that can be overridden in tests.
var platformDir = struct {
	homeDir       func() (string, error)
	userConfigDir func() (string, error)
	getwd         func() (string, error)
}{
	homeDir:       os.UserHomeDir,
	userConfigDir: os.UserConfigDir,
	getwd:         os.Getwd,
}

// PlatformConfigDir returns the per-user configuration directory.
//
// Linux:   $XDG_CONFIG_HOME/canvas (fallback ~/.config/canvas)
// macOS:   ~/Library/Application Support/canvas
// Windows: %APPDATA%/canvas
func PlatformConfigDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_CONFIG_HOME", ".config")
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, AppName), nil
}

// PlatformDataDir returns the per-user data directory.
//
// Linux:   $XDG_DATA_HOME/canvas (fallback ~/.local/share/canvas)
// macOS:   ~/Library/Application Support/canvas/data
// Windows: %APPDATA%/canvas/data
func PlatformDataDir() (string, error) {
	if runtime.GOOS == "linux" {
		return xdgDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
	}
	dir, err := platformDir.userConfigDir()
	if err != nil {
		return "", err
	}
	// Config and data share a parent off Linux; keep them apart.
	return filepath.Join(dir, AppName, "data"), nil
}

func xdgDir(env, homeRel string) (string, error) {
	if xdg := os.Getenv(env); xdg != "" {
		return filepath.Join(xdg, AppName), nil
	}
	home, err := platformDir.homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, homeRel, AppName), nil
}

// LocalConfigDir returns $(CWD)/.canvas.
func LocalConfigDir() (string, error) {
	return local(LocalConfigDirName)
}

// LocalDataDir returns $(CWD)/.canvas-db.
func LocalDataDir() (string, error) {
	return local(LocalDataDirName)
}

func local(name string) (string, error) {
	cwd, err := platformDir.getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(cwd, name), nil
}

// ResolveConfigDir returns the configuration directory following the
// precedence chain: flag > CANVAS_CONFIG_DIR > existing $(CWD)/.canvas >
// PlatformConfigDir().
func ResolveConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := os.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return localOr(LocalConfigDirName, PlatformConfigDir)
}

// ResolveDataDir returns the data directory following the precedence
// chain: flag > data_dir from config.yaml > CANVAS_DATA_DIR > existing
// $(CWD)/.canvas-db > PlatformDataDir().
func ResolveDataDir(flag, configValue string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if configValue != "" {
		return filepath.Abs(configValue)
	}
	if env := os.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	return localOr(LocalDataDirName, PlatformDataDir)
}

// localOr returns $(CWD)/name when it is an existing directory, otherwise
// the result of fallback.
func localOr(name string, fallback func() (string, error)) (string, error) {
	dir, err := local(name)
	if err != nil {
		return "", err
	}
	if info, err := os.Stat(dir); err == nil && info.IsDir() {
		return dir, nil
	}
	return fallback()
}
