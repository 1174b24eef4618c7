package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/rshade/libris/internal/cli"
	"github.com/rshade/libris/internal/config"
)

// catalogServer serves total numbered books per query, ten per page. Queries
// equal to "broken" get a 500.
func catalogServer(t *testing.T, total int) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		q := r.URL.Query().Get("q")
		if q == "broken" {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		page, _ := strconv.Atoi(r.URL.Query().Get("page"))
		docs := []map[string]any{}
		for i := (page - 1) * 10; i < min(page*10, total); i++ {
			docs = append(docs, map[string]any{
				"key":                fmt.Sprintf("/works/OL%dW", i),
				"title":              fmt.Sprintf("%s %02d", q, i),
				"author_name":        []string{"Author " + strconv.Itoa(i%3)},
				"first_publish_year": 1950 + i,
				"cover_i":            100 + i,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"numFound": total, "docs": docs})
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// setupCLITest isolates config and logging for a command test.
func setupCLITest(t *testing.T, apiURL string) {
	t.Helper()
	t.Setenv(config.EnvHome, t.TempDir())
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvRate, "0")
	if apiURL != "" {
		t.Setenv(config.EnvAPIURL, apiURL)
	}
	t.Cleanup(config.ResetGlobalConfigForTest)
}

// execute runs the root command with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}
