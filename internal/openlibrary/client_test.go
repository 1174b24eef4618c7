package openlibrary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer serves body with status and counts requests.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		assert.Equal(t, searchPath, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestFetchPage_Success(t *testing.T) {
	body := `{"numFound": 25, "docs": [
		{"key": "/works/OL1W", "title": "The Hobbit", "author_name": ["J.R.R. Tolkien"], "first_publish_year": 1937, "cover_i": 12345},
		{"key": "/works/OL2W"}
	]}`
	srv, hits := newTestServer(t, http.StatusOK, body)
	client := NewClient(Config{BaseURL: srv.URL})

	page, err := client.FetchPage(context.Background(), "tolkien", 1)
	require.NoError(t, err)

	assert.Equal(t, int32(1), hits.Load())
	assert.Equal(t, 25, page.Total)
	require.Len(t, page.Records, 2)

	hobbit := page.Records[0]
	assert.Equal(t, "The Hobbit", hobbit.DisplayTitle())
	assert.Equal(t, []string{"J.R.R. Tolkien"}, hobbit.AuthorNames)
	year, ok := hobbit.Year()
	assert.True(t, ok)
	assert.Equal(t, 1937, year)
	assert.True(t, hobbit.HasCover())

	bare := page.Records[1]
	assert.Nil(t, bare.Title)
	assert.Nil(t, bare.FirstPublishYear)
	assert.Nil(t, bare.CoverID)
}

func TestFetchPage_RequestParameters(t *testing.T) {
	var gotQuery, gotLimit, gotPage, gotFields, gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		gotPage = r.URL.Query().Get("page")
		gotFields = r.URL.Query().Get("fields")
		gotUA = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(`{"numFound": 0, "docs": []}`))
	}))
	defer srv.Close()

	client := NewClient(Config{BaseURL: srv.URL + "/", UserAgent: "libris-test/1.0"})
	_, err := client.FetchPage(context.Background(), "lord of the rings", 3)
	require.NoError(t, err)

	assert.Equal(t, "lord of the rings", gotQuery)
	assert.Equal(t, "10", gotLimit)
	assert.Equal(t, "3", gotPage)
	assert.Equal(t, searchFields, gotFields)
	assert.Equal(t, "libris-test/1.0", gotUA)
}

func TestFetchPage_EmptyOrMissingDocs(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantTotal int
	}{
		{"empty docs", `{"numFound": 0, "docs": []}`, 0},
		{"missing docs", `{"numFound": 7}`, 7},
		{"missing everything", `{}`, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, http.StatusOK, tt.body)
			page, err := NewClient(Config{BaseURL: srv.URL}).FetchPage(context.Background(), "x", 1)
			require.NoError(t, err)
			assert.NotNil(t, page.Records)
			assert.Empty(t, page.Records)
			assert.Equal(t, tt.wantTotal, page.Total)
		})
	}
}

func TestFetchPage_Failures(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantCause  error
		wantStatus int
	}{
		{"server error", http.StatusInternalServerError, `oops`, ErrUnexpectedStatus, 500},
		{"not found", http.StatusNotFound, `{}`, ErrUnexpectedStatus, 404},
		{"malformed json", http.StatusOK, `{"numFound": `, ErrMalformedPayload, 200},
		{"wrong field type", http.StatusOK, `{"numFound": "many"}`, ErrMalformedPayload, 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, hits := newTestServer(t, tt.status, tt.body)
			page, err := NewClient(Config{BaseURL: srv.URL}).FetchPage(context.Background(), "dune", 2)

			require.Error(t, err)
			assert.Nil(t, page)
			assert.Equal(t, int32(1), hits.Load(), "no retries")
			assert.ErrorIs(t, err, ErrFetch)
			assert.ErrorIs(t, err, tt.wantCause)

			var fe *FetchError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, "dune", fe.Query)
			assert.Equal(t, 2, fe.Page)
			assert.Equal(t, tt.wantStatus, fe.StatusCode)
		})
	}
}

func TestFetchPage_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := NewClient(Config{BaseURL: url, Timeout: time.Second}).FetchPage(context.Background(), "dune", 1)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Zero(t, fe.StatusCode)
}

func TestFetchPage_InvalidArguments(t *testing.T) {
	srv, hits := newTestServer(t, http.StatusOK, `{}`)
	client := NewClient(Config{BaseURL: srv.URL})

	_, err := client.FetchPage(context.Background(), "", 1)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = client.FetchPage(context.Background(), "  dune ", 1)
	assert.ErrorIs(t, err, ErrInvalidQuery)

	_, err = client.FetchPage(context.Background(), "dune", 0)
	assert.ErrorIs(t, err, ErrInvalidPage)

	assert.Zero(t, hits.Load())
}

func TestFetchPage_LimiterHonoursCancellation(t *testing.T) {
	srv, hits := newTestServer(t, http.StatusOK, `{}`)
	client := NewClient(Config{BaseURL: srv.URL, RequestsPerSecond: 0.001})

	_, err := client.FetchPage(context.Background(), "dune", 1)
	require.NoError(t, err, "first request consumes the burst token")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.FetchPage(ctx, "dune", 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Equal(t, int32(1), hits.Load())
}

func TestNewClient_Defaults(t *testing.T) {
	c := NewClient(Config{})
	assert.Equal(t, DefaultBaseURL, c.baseURL)
	assert.Equal(t, DefaultUserAgent, c.userAgent)
	assert.Equal(t, DefaultTimeout, c.httpClient.Timeout)
	assert.Nil(t, c.limiter)
	assert.Equal(t,
		"https://openlibrary.org/search.json?fields=key%2Ctitle%2Cauthor_name%2Cfirst_publish_year%2Ccover_i&limit=10&page=1&q=dune",
		c.SearchURL("dune", 1))
}
