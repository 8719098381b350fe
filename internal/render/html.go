package render

import (
	"bytes"
	"embed"
	"html/template"
	"io"
	"sync"
	"time"

	"github.com/brogergvhs/biblioscrape/internal/catalog"
	"github.com/brogergvhs/biblioscrape/internal/util"
)

//go:embed templates/*.html.tmpl
var templateFS embed.FS

var pageTmpl = template.Must(template.New("page.html.tmpl").Funcs(template.FuncMap{
	"stamp": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("2006-01-02 15:04:05")
	},
}).ParseFS(templateFS, "templates/page.html.tmpl"))

// Page is everything the author page shows.
type Page struct {
	Title     string
	Source    string
	ScrapedAt time.Time

	Stats   []catalog.LetterStat
	Total   int
	Authors []catalog.AuthorRecord
	Loaded  bool

	// Interactive pages carry a trigger button that posts to /scrape.
	Interactive    bool
	TriggerLabel   string
	TriggerEnabled bool
	Status         string
	StatusLevel    string
}

func WritePage(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Authors"
	}
	return pageTmpl.Execute(w, p)
}

// HTMLRenderer keeps the page in memory and rewrites the file at path once
// per run. Stats are held until the author list arrives, so the file never
// mixes the stats of one run with the authors of another.
type HTMLRenderer struct {
	path string

	mu      sync.Mutex
	page    Page
	pending *pendingStats
}

type pendingStats struct {
	stats []catalog.LetterStat
	at    time.Time
}

func NewHTMLRenderer(path string, base Page) *HTMLRenderer {
	return &HTMLRenderer{path: path, page: base}
}

func (r *HTMLRenderer) Path() string {
	return r.path
}

func (r *HTMLRenderer) RenderStats(stats []catalog.LetterStat) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.pending = &pendingStats{stats: stats, at: time.Now()}
	return nil
}

// RenderAuthors writes the page. The in-memory page only advances when the
// file was written.
func (r *HTMLRenderer) RenderAuthors(authors []catalog.AuthorRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.page
	if r.pending != nil {
		next.Stats = r.pending.stats
		next.Total = catalog.Total(r.pending.stats)
		next.ScrapedAt = r.pending.at
	}
	next.Authors = authors
	next.Loaded = true

	var buf bytes.Buffer
	if err := WritePage(&buf, next); err != nil {
		return err
	}
	if err := util.WriteFileAtomic(r.path, buf.Bytes()); err != nil {
		return err
	}

	r.page = next
	r.pending = nil
	return nil
}
