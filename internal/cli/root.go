// Package cli implements the canvas command-line interface.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/canvas/internal/capture"
	"github.com/mesh-intelligence/canvas/internal/forms"
	"github.com/mesh-intelligence/canvas/pkg/canvas"
	"github.com/mesh-intelligence/canvas/pkg/types"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

// rootFlags holds global flag values accessible to all subcommands.
type rootFlags struct {
	configDir string
	dataDir   string
	backend   string
	jsonMode  bool
}

// app carries per-invocation state shared by subcommands.
type app struct {
	flags     rootFlags
	configDir string
	settings  settings
	log       *logrus.Logger
	logCloser io.Closer
}

// closeLog releases the log file opened by load, if any.
func (a *app) closeLog() {
	if a.logCloser == nil {
		return
	}
	if err := a.logCloser.Close(); err != nil {
		fmt.Fprintln(os.Stderr, "close log:", err)
	}
	a.logCloser = nil
}

// closeLogAfterRun wraps the RunE of cmd and its descendants so the log
// file is closed once the command returns, whether or not it failed.
func (a *app) closeLogAfterRun(cmd *cobra.Command) {
	for _, c := range cmd.Commands() {
		a.closeLogAfterRun(c)
	}
	run := cmd.RunE
	if run == nil {
		return
	}
	cmd.RunE = func(c *cobra.Command, args []string) error {
		defer a.closeLog()
		return run(c, args)
	}
}

// NewRootCmd creates the top-level "canvas" command with global flags
// and all subcommands registered.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:     "canvas",
		Short:   "A local catalogue for artwork",
		Long:    "Canvas catalogues art pieces and groups them into galleries.\nEverything is stored locally in the data directory.",
		Version: canvas.Version,
		// Errors are printed once by Execute.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// init resolves its own directories before loading.
			if cmd.Name() == "version" || cmd.Name() == "init" {
				return nil
			}
			return a.load()
		},
	}

	root.PersistentFlags().StringVar(&a.flags.configDir, "config-dir", "", "configuration directory (default: $(CWD)/.canvas if present, else per-user)")
	root.PersistentFlags().StringVar(&a.flags.dataDir, "data-dir", "", "data directory (default: $(CWD)/.canvas-db if present, else per-user)")
	root.PersistentFlags().StringVar(&a.flags.backend, "backend", "", "storage backend: sqlite, file or memory (default from config)")
	root.PersistentFlags().BoolVar(&a.flags.jsonMode, "json", false, "output in JSON format")

	root.AddCommand(newVersionCmd())
	root.AddCommand(newInitCmd(a))
	root.AddCommand(newPieceCmd(a))
	root.AddCommand(newGalleryCmd(a))
	root.AddCommand(newStatusCmd(a))
	root.AddCommand(newResetCmd(a))
	root.AddCommand(newWatchCmd(a))
	a.closeLogAfterRun(root)

	return root
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	err := NewRootCmd().Execute()
	if err == nil {
		return exitSuccess
	}
	color.New(color.FgRed).Fprintln(os.Stderr, "Error:", err)
	return exitCode(err)
}

// exitError tags an error with the exit code it should produce.
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

// userError marks err as caused by the invocation (exit 1).
func userError(err error) error {
	return &exitError{code: exitUserError, err: err}
}

// sysError marks err as an environment or storage failure (exit 2).
func sysError(err error) error {
	return &exitError{code: exitSysError, err: err}
}

// userErrors are sentinels that point at bad input rather than a broken
// environment.
var userErrors = []error{
	types.ErrNotFound,
	types.ErrInvalidID,
	types.ErrInvalidIndex,
	types.ErrInvalidDate,
	types.ErrBackendEmpty,
	types.ErrBackendUnknown,
	forms.ErrInvalidForm,
	capture.ErrUnsupported,
	capture.ErrEmptyImage,
	os.ErrNotExist,
}

// classify tags err as a user or system error by its sentinel.
func classify(err error) error {
	if err == nil {
		return nil
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return err
	}
	for _, target := range userErrors {
		if errors.Is(err, target) {
			return userError(err)
		}
	}
	return sysError(err)
}

// exitCode maps an error returned by a command to a process exit code.
// Untagged errors come from cobra's argument and flag parsing.
func exitCode(err error) int {
	if err == nil {
		return exitSuccess
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	return exitUserError
}

// Output helpers.
var (
	labelColor = color.New(color.FgCyan)
	okColor    = color.New(color.FgGreen)
	warnColor  = color.New(color.FgYellow)
)

func label(w io.Writer, name string, value any) {
	labelColor.Fprintf(w, "%-14s", name+":")
	fmt.Fprintln(w, value)
}
