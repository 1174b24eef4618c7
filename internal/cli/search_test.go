package cli_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/rshade/libris/internal/cli"
	"github.com/rshade/libris/internal/cli/pagination"
)

type jsonOutput struct {
	Results []struct {
		Query   string                    `json:"query"`
		Sort    string                    `json:"sort"`
		Status  string                    `json:"status"`
		Error   string                    `json:"error"`
		Meta    pagination.PaginationMeta `json:"meta"`
		Records []struct {
			Key   string `json:"key"`
			Title string `json:"title"`
			Year  int    `json:"first_publish_year"`
		} `json:"records"`
	} `json:"results"`
}

func TestSearch_JSONMultiplePages(t *testing.T) {
	srv, hits := catalogServer(t, 25)
	setupCLITest(t, srv.URL)

	stdout, _, err := execute(t, "search", "--pages", "2", "--sort", "newest", "-o", "json", "dune")
	require.NoError(t, err)

	var out jsonOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Results, 1)

	r := out.Results[0]
	assert.Equal(t, "dune", r.Query)
	assert.Equal(t, "newest", r.Sort)
	assert.Equal(t, `Showing 20 of 25 results for "dune".`, r.Status)
	assert.Empty(t, r.Error)
	require.Len(t, r.Records, 20)
	assert.Equal(t, 1969, r.Records[0].Year, "newest first")
	assert.Equal(t, pagination.PaginationMeta{
		PagesLoaded: 2, PageSize: 10, TotalPages: 3, TotalItems: 25, LoadedItems: 20, HasNext: true,
	}, r.Meta)
	assert.Equal(t, int32(2), hits.Load())
}

func TestSearch_StopsWhenExhausted(t *testing.T) {
	srv, hits := catalogServer(t, 12)
	setupCLITest(t, srv.URL)

	stdout, _, err := execute(t, "search", "--pages", "5", "-o", "json", "emma")
	require.NoError(t, err)

	var out jsonOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	assert.Len(t, out.Results[0].Records, 12)
	assert.False(t, out.Results[0].Meta.HasNext)
	assert.Equal(t, int32(2), hits.Load(), "no request past the last page")
}

func TestSearch_MultipleQueriesKeepOrder(t *testing.T) {
	srv, _ := catalogServer(t, 3)
	setupCLITest(t, srv.URL)

	stdout, _, err := execute(t, "search", "-o", "yaml", "alpha", "beta", "gamma")
	require.NoError(t, err)

	var out struct {
		Results []struct {
			Query   string `yaml:"query"`
			Records []struct {
				Title string `yaml:"title"`
			} `yaml:"records"`
		} `yaml:"results"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Results, 3)
	for i, q := range []string{"alpha", "beta", "gamma"} {
		assert.Equal(t, q, out.Results[i].Query)
		require.Len(t, out.Results[i].Records, 3)
		assert.True(t, strings.HasPrefix(out.Results[i].Records[0].Title, q))
	}
}

func TestSearch_TablePlain(t *testing.T) {
	srv, _ := catalogServer(t, 1)
	setupCLITest(t, srv.URL)

	stdout, _, err := execute(t, "search", "--plain", "solaris")
	require.NoError(t, err)

	assert.Contains(t, stdout, "TITLE")
	assert.Contains(t, stdout, "solaris 00")
	assert.Contains(t, stdout, "1950")
	assert.Contains(t, stdout, "https://covers.openlibrary.org/b/id/100-M.jpg")
	assert.Contains(t, stdout, `Showing 1 of 1 result for "solaris".`)
}

func TestSearch_NoResults(t *testing.T) {
	srv, _ := catalogServer(t, 0)
	setupCLITest(t, srv.URL)

	stdout, _, err := execute(t, "search", "--plain", "zzzz")
	require.NoError(t, err)
	assert.Contains(t, stdout, "No results found. Try a different search term!")
	assert.NotContains(t, stdout, "TITLE")
}

func TestSearch_FailureSetsExitCode(t *testing.T) {
	srv, _ := catalogServer(t, 5)
	setupCLITest(t, srv.URL)

	stdout, _, err := execute(t, "search", "-o", "json", "ok", "broken")
	require.Error(t, err)
	assert.Equal(t, cli.ExitCodeSearchFailed, cli.ExitCode(err))

	var out jsonOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &out))
	require.Len(t, out.Results, 2)
	assert.Len(t, out.Results[0].Records, 5)
	assert.Empty(t, out.Results[0].Error)
	assert.Equal(t, "Oh no! Something went wrong! Please try again.", out.Results[1].Status)
	assert.NotEmpty(t, out.Results[1].Error)
	assert.Empty(t, out.Results[1].Records)
}

func TestSearch_InvalidFlags(t *testing.T) {
	setupCLITest(t, "")

	tests := []struct {
		name    string
		args    []string
		wantErr error
	}{
		{name: "pages too high", args: []string{"search", "--pages", "99", "x"}, wantErr: pagination.ErrInvalidPages},
		{name: "bad sort", args: []string{"search", "--sort", "random", "x"}, wantErr: pagination.ErrInvalidSort},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, _, err := execute(t, "search", "-o", "xml", "x")
	require.Error(t, err)

	_, _, err = execute(t, "search")
	require.Error(t, err, "at least one query is required")
}
