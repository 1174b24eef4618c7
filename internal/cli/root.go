package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/rshade/libris/internal/config"
	"github.com/rshade/libris/internal/logging"
	"github.com/rshade/libris/internal/tui"
)

// annotationInteractive marks commands that take over the terminal.
const annotationInteractive = "libris/interactive"

// dotEnvFile is loaded from the working directory and the config directory.
const dotEnvFile = ".env"

// logger is the package-level logger for CLI operations.
var logger zerolog.Logger //nolint:gochecknoglobals // Required for zerolog context integration

// NewRootCmd creates the root command for the libris CLI. Run without a
// subcommand on a terminal it starts the interactive browser.
func NewRootCmd(ver string) *cobra.Command {
	var logResult *logging.LogPathResult

	cmd := &cobra.Command{
		Use:     "libris",
		Short:   "Search the Open Library catalog from your terminal",
		Long:    "libris: browse and search the Open Library catalog interactively or from scripts",
		Version: ver,
		Example: rootCmdExample,
		Annotations: map[string]string{
			annotationInteractive: "true",
		},
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := loadConfig(cmd); err != nil {
				return err
			}
			result := setupLogging(cmd)
			logResult = &result
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return cleanupLogging(cmd, logResult)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !tui.IsTTY() {
				return cmd.Help()
			}
			return runBrowse(cmd, "", config.GetGlobalConfig().SortMode())
		},
	}

	cmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	cmd.PersistentFlags().String("config", "", "overlay configuration file (merged by top-level section)")
	cmd.AddCommand(NewBrowseCmd(), NewSearchCmd(), newConfigCmd())

	return cmd
}

const rootCmdExample = `  # Browse interactively
  libris

  # Start browsing with a query
  libris browse the left hand of darkness

  # Print the first two pages sorted by year
  libris search --pages 2 --sort newest "ursula le guin"

  # Search several queries at once as JSON
  libris search -o json dune foundation hyperion

  # Initialize configuration
  libris config init`

// newConfigCmd creates the config command group.
func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "config", Short: "Configuration management commands"}
	cmd.AddCommand(NewConfigInitCmd(), NewConfigListCmd())
	return cmd
}

// loadConfig builds the effective configuration: defaults, config file,
// --config overlay, then environment. Flags are applied by each command.
func loadConfig(cmd *cobra.Command) error {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		return err
	}
	if dir, err := config.GetConfigDir(); err == nil {
		if err = config.LoadDotEnv(filepath.Join(dir, dotEnvFile)); err != nil {
			return err
		}
	}

	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	if overlay, _ := cmd.Flags().GetString("config"); overlay != "" {
		if err = config.ShallowMergeYAML(cfg, overlay); err != nil {
			return fmt.Errorf("loading configuration overlay: %w", err)
		}
		cfg.ApplyEnv(os.LookupEnv)
	}

	if err = cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	config.SetGlobalConfig(cfg)
	return nil
}

// isInteractive reports whether cmd is about to take over the terminal.
func isInteractive(cmd *cobra.Command) bool {
	return cmd.Annotations[annotationInteractive] == "true" && tui.IsTTY()
}

// ExitError carries a process exit code out of a command.
type ExitError struct {
	Code int
	Err  error
}

// Exit codes.
const (
	ExitCodeError        = 1
	ExitCodeSearchFailed = 2
)

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode returns the exit code for err: 0 for nil, the carried code for
// an *ExitError, and ExitCodeError otherwise.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitCodeError
}
