package paths

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlatform points home, user config and working directories at
// temp dirs for the duration of a test.
func fakePlatform(t *testing.T) (home, cwd string) {
	t.Helper()
	home, cwd = t.TempDir(), t.TempDir()
	saved := platformDir
	platformDir.homeDir = func() (string, error) { return home, nil }
	platformDir.userConfigDir = func() (string, error) { return filepath.Join(home, "AppData"), nil }
	platformDir.getwd = func() (string, error) { return cwd, nil }
	t.Cleanup(func() { platformDir = saved })
	return home, cwd
}

func TestPlatformDirs_Linux(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("linux-only test")
	}
	home, _ := fakePlatform(t)

	t.Run("XDG variables win", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
		t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")

		got, err := PlatformConfigDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-config/canvas", got)

		got, err = PlatformDataDir()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg-data/canvas", got)
	})

	t.Run("home fallbacks when XDG unset", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("XDG_DATA_HOME", "")

		got, err := PlatformConfigDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".config", "canvas"), got)

		got, err = PlatformDataDir()
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(home, ".local", "share", "canvas"), got)
	})
}

func TestPlatformDirs_NonLinux(t *testing.T) {
	if runtime.GOOS == "linux" {
		t.Skip("non-linux test")
	}
	home, _ := fakePlatform(t)

	got, err := PlatformConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "AppData", "canvas"), got)

	got, err = PlatformDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "AppData", "canvas", "data"), got)
}

func TestLocalDirs(t *testing.T) {
	_, cwd := fakePlatform(t)

	got, err := LocalConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".canvas"), got)

	got, err = LocalDataDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, ".canvas-db"), got)
}

func TestResolveConfigDir(t *testing.T) {
	_, cwd := fakePlatform(t)
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-config")
	platform, err := PlatformConfigDir()
	require.NoError(t, err)

	tests := []struct {
		name   string
		flag   string
		envVal string
		local  bool
		want   string
	}{
		{"flag wins over env", "/explicit/config", "/env/config", true, "/explicit/config"},
		{"env wins when flag empty", "", "/env/config", true, "/env/config"},
		{"existing local dir", "", "", true, filepath.Join(cwd, LocalConfigDirName)},
		{"platform default", "", "", false, platform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localDir := filepath.Join(cwd, LocalConfigDirName)
			require.NoError(t, os.RemoveAll(localDir))
			if tt.local {
				require.NoError(t, os.Mkdir(localDir, 0o755))
			}
			t.Setenv(EnvConfigDir, tt.envVal)

			got, err := ResolveConfigDir(tt.flag)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveDataDir(t *testing.T) {
	_, cwd := fakePlatform(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	platform, err := PlatformDataDir()
	require.NoError(t, err)

	tests := []struct {
		name          string
		flag          string
		configYAMLVal string
		envVal        string
		local         bool
		want          string
	}{
		{"flag wins over all", "/flag/data", "/config/data", "/env/data", true, "/flag/data"},
		{"config.yaml wins over env", "", "/config/data", "/env/data", true, "/config/data"},
		{"env wins when flag and config empty", "", "", "/env/data", true, "/env/data"},
		{"existing local dir", "", "", "", true, filepath.Join(cwd, LocalDataDirName)},
		{"platform default", "", "", "", false, platform},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			localDir := filepath.Join(cwd, LocalDataDirName)
			require.NoError(t, os.RemoveAll(localDir))
			if tt.local {
				require.NoError(t, os.Mkdir(localDir, 0o755))
			}
			t.Setenv(EnvDataDir, tt.envVal)

			got, err := ResolveDataDir(tt.flag, tt.configYAMLVal)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_RelativeBecomesAbsolute(t *testing.T) {
	t.Setenv(EnvConfigDir, "relative/env")
	got, err := ResolveConfigDir("")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)

	t.Setenv(EnvDataDir, "")
	got, err = ResolveDataDir("", "relative/config")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got), "expected absolute path, got %s", got)
}
