package render

import (
	"encoding/json"
	"io"

	"github.com/brogergvhs/biblioscrape/internal/catalog"
)

// JSONRenderer writes one JSON document per call, newline separated.
type JSONRenderer struct {
	enc *json.Encoder
}

func NewJSONRenderer(out io.Writer) *JSONRenderer {
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	return &JSONRenderer{enc: enc}
}

type StatsDocument struct {
	Stats []catalog.LetterStat `json:"stats"`
	Total int                  `json:"total"`
}

type AuthorsDocument struct {
	Authors []catalog.AuthorRecord `json:"authors"`
	Count   int                    `json:"count"`
}

func (r *JSONRenderer) RenderStats(stats []catalog.LetterStat) error {
	return r.enc.Encode(NewStatsDocument(stats))
}

func (r *JSONRenderer) RenderAuthors(authors []catalog.AuthorRecord) error {
	return r.enc.Encode(NewAuthorsDocument(authors))
}

func NewStatsDocument(stats []catalog.LetterStat) StatsDocument {
	if stats == nil {
		stats = []catalog.LetterStat{}
	}
	return StatsDocument{Stats: stats, Total: catalog.Total(stats)}
}

func NewAuthorsDocument(authors []catalog.AuthorRecord) AuthorsDocument {
	if authors == nil {
		authors = []catalog.AuthorRecord{}
	}
	return AuthorsDocument{Authors: authors, Count: len(authors)}
}
