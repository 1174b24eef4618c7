package cli

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/libris/internal/config"
	"github.com/rshade/libris/internal/openlibrary"
	"github.com/rshade/libris/internal/session"
	"github.com/rshade/libris/internal/tui"
	"github.com/rshade/libris/pkg/version"
)

// ErrNotInteractive is returned when browse is run without a terminal.
var ErrNotInteractive = errors.New("browse needs an interactive terminal; use 'libris search' in scripts")

// NewBrowseCmd creates the interactive browse command.
func NewBrowseCmd() *cobra.Command {
	var sortFlag string

	cmd := &cobra.Command{
		Use:   "browse [query]",
		Short: "Browse the catalog interactively",
		Long: `Opens the interactive search screen.

Keys: enter searches, tab switches between input and results, m loads more
results, s cycles the sort mode, enter on a result shows details, q quits.`,
		Example: `  # Open an empty search screen
  libris browse

  # Search immediately, newest first
  libris browse --sort newest earthsea`,
		Annotations: map[string]string{
			annotationInteractive: "true",
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if !tui.IsTTY() {
				return ErrNotInteractive
			}
			mode := config.GetGlobalConfig().SortMode()
			if sortFlag != "" {
				parsed, err := session.ParseSortMode(sortFlag)
				if err != nil {
					return err
				}
				mode = parsed
			}
			return runBrowse(cmd, strings.Join(args, " "), mode)
		},
	}

	cmd.Flags().StringVar(&sortFlag, "sort", "", "initial sort mode")
	return cmd
}

// runBrowse starts the Bubble Tea program.
func runBrowse(cmd *cobra.Command, initialQuery string, mode session.SortMode) error {
	ctx := cmd.Context()
	cfg := config.GetGlobalConfig()

	projector, err := session.NewProjectorForLanguage(cfg.Output.Language)
	if err != nil {
		return err
	}
	client := openlibrary.NewClient(cfg.ClientConfig(version.UserAgent()))

	model := tui.NewSearchModel(ctx, client, tui.SearchOptions{
		SortMode:     mode,
		Projector:    projector,
		CoversURL:    cfg.API.CoversURL,
		InitialQuery: initialQuery,
	})

	p := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	logger.Debug().Ctx(ctx).Str("initial_query", initialQuery).Msg("starting interactive browser")
	if _, err = p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
