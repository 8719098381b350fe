package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/brogergvhs/biblioscrape/internal/catalog"
	"github.com/brogergvhs/biblioscrape/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	authors = []catalog.AuthorRecord{
		{ID: 1, Name: "Karl Marx"},
		{ID: 2, Name: "Rosa Luxemburg"},
	}
	stats = []catalog.LetterStat{
		{Letter: "M", Count: 1},
		{Letter: "R", Count: 1},
	}
)

type captureRenderer struct {
	got []catalog.AuthorRecord
}

func (c *captureRenderer) RenderAuthors(a []catalog.AuthorRecord) error {
	c.got = a
	return nil
}

func TestFilter(t *testing.T) {
	sess := session.New()
	sess.Replace(&session.Snapshot{Authors: authors, Stats: stats})

	var c captureRenderer

	require.NoError(t, Filter(sess, &c, "rosa"))
	assert.Equal(t, []catalog.AuthorRecord{{ID: 2, Name: "Rosa Luxemburg"}}, c.got)

	require.NoError(t, Filter(sess, &c, ""))
	assert.Equal(t, authors, c.got)

	assert.Equal(t, authors, sess.Current().Authors)
}

func TestTableRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewTableRenderer(&buf)

	require.NoError(t, r.RenderStats(stats))
	out := buf.String()
	assert.Contains(t, out, "1 authors")
	assert.Contains(t, strings.ToUpper(out), "TOTAL")
	assert.Contains(t, out, "2")

	buf.Reset()
	require.NoError(t, r.RenderAuthors(authors))
	out = buf.String()
	assert.Contains(t, out, "Karl Marx")
	assert.Contains(t, out, "#2")
	assert.Less(t, strings.Index(out, "Karl Marx"), strings.Index(out, "Rosa Luxemburg"))
}

func TestJSONRenderer(t *testing.T) {
	var buf bytes.Buffer
	r := NewJSONRenderer(&buf)

	require.NoError(t, r.RenderStats(stats))
	require.NoError(t, r.RenderAuthors(nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)

	var sd StatsDocument
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &sd))
	assert.Equal(t, 2, sd.Total)
	assert.Equal(t, stats, sd.Stats)

	assert.JSONEq(t, `{"authors":[],"count":0}`, lines[1])
}

func TestHTMLRenderer_WritesPage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.html")
	r := NewHTMLRenderer(path, Page{Title: "Biblioteca", Source: "https://www.marxists.org/portugues/biblioteca.htm"})

	require.NoError(t, r.RenderStats(stats))
	require.NoError(t, r.RenderAuthors([]catalog.AuthorRecord{{ID: 1, Name: "Engels & <Marx>"}}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	html := string(b)

	assert.Contains(t, html, "<title>Biblioteca</title>")
	assert.Contains(t, html, `<span class="letter">M</span>`)
	assert.Contains(t, html, `<span id="total-count">2</span>`)
	assert.Contains(t, html, "Engels &amp; &lt;Marx&gt;")
	assert.Contains(t, html, "#1")
	assert.Contains(t, html, "search-input")
	assert.NotContains(t, html, "btn-load\"")
}

func TestHTMLRenderer_WritesOnlyCompletePages(t *testing.T) {
	path := filepath.Join(t.TempDir(), "authors.html")
	r := NewHTMLRenderer(path, Page{Title: "Biblioteca"})

	require.NoError(t, r.RenderStats(stats))
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "stats alone must not write the page")

	require.NoError(t, r.RenderAuthors(authors))

	require.NoError(t, r.RenderStats([]catalog.LetterStat{{Letter: "Z", Count: 7}}))
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(b), `<span class="letter">Z</span>`)
	assert.Contains(t, string(b), "Rosa Luxemburg")
}

func TestHTMLRenderer_FailedWriteKeepsPreviousPage(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	r := NewHTMLRenderer(filepath.Join(blocker, "authors.html"), Page{})
	require.NoError(t, r.RenderStats(stats))
	require.Error(t, r.RenderAuthors(authors))

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.False(t, r.page.Loaded)
	assert.Empty(t, r.page.Stats)
}

func TestWritePage_Interactive(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, Page{
		Interactive:    true,
		TriggerLabel:   "Try Again",
		TriggerEnabled: true,
		Status:         "Error: proxy returned error: 503 Service Unavailable",
		StatusLevel:    "error",
	}))

	html := buf.String()
	assert.Contains(t, html, `<button id="btn-load" >Try Again</button>`)
	assert.Contains(t, html, "503 Service Unavailable")
	assert.Contains(t, html, `<section id="stats-section" class="hidden">`)
	assert.Contains(t, html, "<title>Authors</title>")
}
