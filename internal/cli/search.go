package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/rshade/libris/internal/catalog"
	"github.com/rshade/libris/internal/cli/pagination"
	"github.com/rshade/libris/internal/config"
	"github.com/rshade/libris/internal/logging"
	"github.com/rshade/libris/internal/openlibrary"
	"github.com/rshade/libris/internal/session"
	"github.com/rshade/libris/internal/tui"
	"github.com/rshade/libris/pkg/version"
)

// maxConcurrentQueries bounds how many queries are searched at once.
const maxConcurrentQueries = 4

// yamlIndent is the indent used for YAML output.
const yamlIndent = 2

// QueryResult is the outcome of one query's session.
type QueryResult struct {
	Query    string                    `json:"query"           yaml:"query"`
	SortMode session.SortMode          `json:"sort"            yaml:"sort"`
	Status   string                    `json:"status"          yaml:"status"`
	Meta     pagination.PaginationMeta `json:"meta"            yaml:"meta"`
	Records  []catalog.BookRecord      `json:"records"         yaml:"records"`
	Error    string                    `json:"error,omitempty" yaml:"error,omitempty"`

	err error
}

// searchOutput is the JSON/YAML document.
type searchOutput struct {
	Results []QueryResult `json:"results" yaml:"results"`
}

// searchOptions holds resolved search settings.
type searchOptions struct {
	Pages     int
	SortMode  session.SortMode
	Projector *session.Projector
}

// statusRecorder keeps the most recent status line of a session.
type statusRecorder struct {
	mu      sync.Mutex
	message string
}

func (r *statusRecorder) Status(message string, visible bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if visible {
		r.message = message
	} else {
		r.message = ""
	}
}

func (r *statusRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.message
}

// NewSearchCmd creates the non-interactive search command.
func NewSearchCmd() *cobra.Command {
	params := pagination.NewPaginationParams()
	var (
		output string
		plain  bool
	)

	cmd := &cobra.Command{
		Use:   "search <query>...",
		Short: "Search the catalog and print the results",
		Long: `Searches Open Library for each query and prints the results.

Each query runs in its own session. --pages controls how many pages of ten
results are fetched per query; --sort orders the accumulated results.`,
		Example: `  # First page of results as a table
  libris search dune

  # Three pages, alphabetical, as YAML
  libris search --pages 3 --sort a-z -o yaml "le guin"

  # Several queries at once
  libris search -o json dune foundation`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.GetGlobalConfig()

			if !cmd.Flags().Changed("pages") {
				params.Pages = cfg.Output.Pages
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.Output.DefaultFormat
			}
			if !config.IsValidFormat(output) {
				return fmt.Errorf("%w: %q", config.ErrInvalidFormat, output)
			}
			if err := params.Validate(); err != nil {
				return err
			}
			mode, err := params.SortMode(cfg.SortMode())
			if err != nil {
				return err
			}
			projector, err := session.NewProjectorForLanguage(cfg.Output.Language)
			if err != nil {
				return err
			}

			client := openlibrary.NewClient(cfg.ClientConfig(version.UserAgent()))
			results := runSearches(cmd.Context(), client, args, searchOptions{
				Pages:     params.Pages,
				SortMode:  mode,
				Projector: projector,
			})

			if err = writeResults(cmd.OutOrStdout(), output, plain, cfg.API.CoversURL, results); err != nil {
				return err
			}
			return searchExitError(results)
		},
	}

	cmd.Flags().IntVar(&params.Pages, "pages", pagination.DefaultPages,
		fmt.Sprintf("number of result pages to fetch per query (%d-%d)", pagination.MinPages, pagination.MaxPages))
	cmd.Flags().StringVar(&params.Sort, "sort", "",
		"sort mode: "+strings.Join(pagination.ValidSortNames(), ", "))
	cmd.Flags().StringVarP(&output, "output", "o", config.FormatTable, "output format: table, json, yaml")
	cmd.Flags().BoolVar(&plain, "plain", false, "disable colours in table output")

	return cmd
}

// runSearches runs one session per query concurrently. Results keep the
// order of queries; per-query failures are recorded, not returned.
func runSearches(ctx context.Context, fetcher session.Fetcher, queries []string, opts searchOptions) []QueryResult {
	results := make([]QueryResult, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentQueries)
	for i, q := range queries {
		g.Go(func() error {
			results[i] = runSearch(gctx, fetcher, q, opts)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// runSearch drives a session controller through the first page and as many
// further pages as requested.
func runSearch(ctx context.Context, fetcher session.Fetcher, query string, opts searchOptions) QueryResult {
	log := logging.FromContext(ctx)
	status := &statusRecorder{}
	controller := session.NewController(fetcher, session.Options{
		Status:    status,
		Projector: opts.Projector,
		SortMode:  opts.SortMode,
	})

	result := QueryResult{Query: strings.TrimSpace(query), SortMode: opts.SortMode}

	err := controller.SubmitQuery(ctx, query)
	for err == nil && controller.Snapshot().CurrentPage < opts.Pages && controller.Snapshot().HasMore {
		err = controller.RequestMore(ctx)
	}
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("search failed")
		result.err = err
		result.Error = err.Error()
	}

	snap := controller.Snapshot()
	result.Status = status.last()
	result.Records = controller.Results()
	result.Meta = pagination.NewPaginationMeta(snap.CurrentPage, openlibrary.PageSize, snap.Total, snap.Count)
	return result
}

func writeResults(w io.Writer, format string, plain bool, coversURL string, results []QueryResult) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(searchOutput{Results: results})
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(yamlIndent)
		if err := enc.Encode(searchOutput{Results: results}); err != nil {
			return err
		}
		return enc.Close()
	default:
		if tui.DetectOutputMode(plain, false, true) == tui.OutputModeStyled {
			width := tui.TerminalWidth()
			for _, r := range results {
				fmt.Fprint(w, tui.RenderResultsStyled(r.Query, r.Status, r.Records, width))
			}
			return nil
		}
		return writeTable(w, results, coversURL)
	}
}

// writeTable renders results as tab-aligned plain text.
func writeTable(w io.Writer, results []QueryResult, coversURL string) error {
	for i, r := range results {
		if len(results) > 1 {
			if i > 0 {
				fmt.Fprintln(w)
			}
			fmt.Fprintf(w, "== %s ==\n", r.Query)
		}
		if len(r.Records) > 0 {
			tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "TITLE\tAUTHORS\tYEAR\tCOVER")
			for _, b := range r.Records {
				year := "-"
				if y, ok := b.Year(); ok {
					year = strconv.Itoa(y)
				}
				cover := b.CoverURLFrom(coversURL, catalog.CoverMedium)
				if cover == "" {
					cover = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.DisplayTitle(), b.DisplayAuthors(), year, cover)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
		}
		if r.Status != "" {
			fmt.Fprintln(w, r.Status)
		}
	}
	return nil
}

// searchExitError reports failed queries with ExitCodeSearchFailed.
func searchExitError(results []QueryResult) error {
	var errs []error
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Errorf("%q: %w", r.Query, r.err))
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return &ExitError{Code: ExitCodeSearchFailed, Err: errors.Join(errs...)}
}
