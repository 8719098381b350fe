package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/brogergvhs/biblioscrape/internal/catalog"
	"github.com/brogergvhs/biblioscrape/internal/pipeline"
	"github.com/brogergvhs/biblioscrape/internal/render"
	"github.com/brogergvhs/biblioscrape/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html><html><body>
<table id="autores">
<tr><th id="L">L</th></tr>
<tr><td><a href="lenin/index.htm">Lenin, Vladimir</a></td></tr>
<tr><td><a href="rosa/index.htm">Luxemburg, Rosa</a></td></tr>
<tr><th id="M">M</th></tr>
<tr><td><a href="marx/index.htm">Marx, Karl</a></td></tr>
</table></body></html>`

func newTestServer(t *testing.T, status int) (*Server, *session.Session) {
	t.Helper()

	proxy := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(proxy.Close)

	sess := session.New()
	board := NewStatusBoard()
	p := pipeline.New(proxy.Client(), sess, pipeline.Options{
		TargetURL: "https://example.test/biblioteca.htm",
		ProxyURL:  proxy.URL + "/raw?url={url}",
	}, render.Nop{}, board, nil)

	return New(Params{Runner: p, Session: sess, Status: board, Title: "Biblioteca"}), sess
}

func do(s *Server, method, target string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestScrapeThenFilter(t *testing.T) {
	s, sess := newTestServer(t, http.StatusOK)

	rec := do(s, http.MethodGet, "/")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), ">Load</button>")

	rec = do(s, http.MethodPost, "/scrape")
	require.Equal(t, http.StatusOK, rec.Code)

	var sr scrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sr))
	assert.Equal(t, "success", sr.State)
	assert.Equal(t, pipeline.LabelReload, sr.Trigger)
	assert.Equal(t, 3, sr.Authors)
	assert.Equal(t, 3, sr.Total)
	require.True(t, sess.Loaded())

	rec = do(s, http.MethodGet, "/api/authors?q=ROSA")
	var ad render.AuthorsDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ad))
	assert.Equal(t, []catalog.AuthorRecord{{ID: 2, Name: "Rosa Luxemburg"}}, ad.Authors)

	rec = do(s, http.MethodGet, "/api/authors")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ad))
	assert.Equal(t, 3, ad.Count)

	rec = do(s, http.MethodGet, "/api/stats")
	var sd render.StatsDocument
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sd))
	assert.Equal(t, []catalog.LetterStat{{Letter: "L", Count: 2}, {Letter: "M", Count: 1}}, sd.Stats)

	rec = do(s, http.MethodGet, "/")
	body := rec.Body.String()
	assert.Contains(t, body, "Vladimir Lenin")
	assert.Contains(t, body, ">Reload</button>")
	assert.Contains(t, body, pipeline.MsgLoaded)
}

func TestScrapeFailure(t *testing.T) {
	s, sess := newTestServer(t, http.StatusTooManyRequests)

	rec := do(s, http.MethodPost, "/scrape")
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var sr scrapeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sr))
	assert.Equal(t, "failed", sr.State)
	assert.Equal(t, "transport", sr.Kind)
	assert.Contains(t, sr.Message, "429")
	assert.Equal(t, pipeline.LabelRetry, sr.Trigger)
	assert.False(t, sess.Loaded())

	rec = do(s, http.MethodGet, "/api/status")
	var st statusResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &st))
	assert.Equal(t, "failed", st.State)
	assert.Equal(t, pipeline.LabelRetry, st.TriggerLabel)
	assert.True(t, st.TriggerEnabled)
	assert.Equal(t, "error", st.Level)
	assert.Equal(t, int64(1), st.Runs)
	assert.Equal(t, int64(1), st.Failures)

	rec = do(s, http.MethodGet, "/api/authors?q=x")
	assert.JSONEq(t, `{"authors":[],"count":0}`, rec.Body.String())
}

type blockingRunner struct {
	entered chan struct{}
	release chan struct{}
}

func (b *blockingRunner) Run(ctx context.Context) (*session.Snapshot, error) {
	close(b.entered)
	<-b.release
	return &session.Snapshot{}, nil
}

func (b *blockingRunner) State() pipeline.State { return pipeline.Downloading }
func (b *blockingRunner) LastError() error      { return nil }

func TestScrape_RejectsOverlappingRuns(t *testing.T) {
	br := &blockingRunner{entered: make(chan struct{}), release: make(chan struct{})}
	s := New(Params{Runner: br, Session: session.New()})

	var wg sync.WaitGroup
	wg.Add(1)
	var first *httptest.ResponseRecorder
	go func() {
		defer wg.Done()
		first = do(s, http.MethodPost, "/scrape")
	}()

	<-br.entered
	second := do(s, http.MethodPost, "/scrape")
	assert.Equal(t, http.StatusConflict, second.Code)
	assert.True(t, strings.Contains(second.Body.String(), "already running"))

	close(br.release)
	wg.Wait()
	assert.Equal(t, http.StatusOK, first.Code)
}
