// Package render projects the extracted author index onto an output:
// terminal tables, a standalone HTML page or JSON lines.
package render

import (
	"github.com/brogergvhs/biblioscrape/internal/catalog"
	"github.com/brogergvhs/biblioscrape/internal/session"
)

type AuthorRenderer interface {
	RenderAuthors(authors []catalog.AuthorRecord) error
}

// Filter renders the authors of the current session whose name contains
// term, ignoring case. The session itself is left untouched.
func Filter(sess *session.Session, r AuthorRenderer, term string) error {
	return r.RenderAuthors(sess.Filter(term))
}

// Nop discards everything.
type Nop struct{}

func (Nop) RenderStats([]catalog.LetterStat) error     { return nil }
func (Nop) RenderAuthors([]catalog.AuthorRecord) error { return nil }
