// Package session holds the result of the last successful scrape for the
// lifetime of the process.
package session

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/biblioscrape/internal/catalog"
)

type Snapshot struct {
	Authors   []catalog.AuthorRecord
	Stats     []catalog.LetterStat
	Source    string
	ScrapedAt time.Time
}

func (s *Snapshot) Total() int {
	if s == nil {
		return 0
	}

	return catalog.Total(s.Stats)
}

// Session is replaced in full on every successful scrape and never mutated
// in place, so readers need no lock.
type Session struct {
	cur atomic.Pointer[Snapshot]
}

func New() *Session {
	return &Session{}
}

func (s *Session) Replace(snap *Snapshot) {
	s.cur.Store(snap)
}

// Current returns nil until the first successful scrape.
func (s *Session) Current() *Snapshot {
	return s.cur.Load()
}

func (s *Session) Loaded() bool {
	return s.cur.Load() != nil
}

// Filter matches term against the author names of the current snapshot.
func (s *Session) Filter(term string) []catalog.AuthorRecord {
	snap := s.Current()
	if snap == nil {
		return []catalog.AuthorRecord{}
	}

	return FilterAuthors(snap.Authors, term)
}

// FilterAuthors keeps the authors whose name contains term, ignoring case.
// An empty term keeps everything. The input slice is not modified.
func FilterAuthors(authors []catalog.AuthorRecord, term string) []catalog.AuthorRecord {
	needle := strings.ToLower(term)
	out := make([]catalog.AuthorRecord, 0, len(authors))

	for _, a := range authors {
		if strings.Contains(strings.ToLower(a.Name), needle) {
			out = append(out, a)
		}
	}

	return out
}
