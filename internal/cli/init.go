// Init command for the canvas CLI.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/canvas/internal/paths"
)

func newInitCmd(a *app) *cobra.Command {
	var local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize canvas storage",
		Long: "Create the configuration and data directories, write a default config.yaml,\n" +
			"then open the storage backend once. With --local the catalogue lives in\n" +
			".canvas and .canvas-db under the working directory.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if local {
				if err := useLocalDirs(&a.flags); err != nil {
					return sysError(err)
				}
			}

			configDir, err := paths.ResolveConfigDir(a.flags.configDir)
			if err != nil {
				return sysError(fmt.Errorf("resolve config dir: %w", err))
			}
			if err := os.MkdirAll(configDir, 0o755); err != nil {
				return sysError(fmt.Errorf("create config directory: %w", err))
			}

			// Pin an explicit data directory in the new config file.
			dataDir := ""
			if a.flags.dataDir != "" {
				if dataDir, err = filepath.Abs(a.flags.dataDir); err != nil {
					return sysError(err)
				}
			}
			cfg := defaultFileConfig(dataDir)
			if a.flags.backend != "" {
				cfg.Backend = a.flags.backend
			}
			if err := writeConfigIfMissing(filepath.Join(configDir, configFileExt), cfg); err != nil {
				return sysError(fmt.Errorf("write config: %w", err))
			}

			a.flags.configDir = configDir
			if err := a.load(); err != nil {
				return err
			}
			s, err := a.openSession()
			if err != nil {
				return err
			}
			if err := s.Close(); err != nil {
				return sysError(fmt.Errorf("finalize storage: %w", err))
			}

			out := cmd.OutOrStdout()
			okColor.Fprintln(out, "Canvas initialized successfully")
			label(out, "config", configDir)
			label(out, "data", a.settings.Store.DataDir)
			label(out, "backend", a.settings.Store.Backend)
			return nil
		},
	}
	cmd.Flags().BoolVar(&local, "local", false, "keep the catalogue under the working directory")
	return cmd
}

// useLocalDirs fills unset directory flags with the project-local paths.
func useLocalDirs(f *rootFlags) error {
	if f.configDir == "" {
		dir, err := paths.LocalConfigDir()
		if err != nil {
			return err
		}
		f.configDir = dir
	}
	if f.dataDir == "" {
		dir, err := paths.LocalDataDir()
		if err != nil {
			return err
		}
		f.dataDir = dir
	}
	return nil
}
