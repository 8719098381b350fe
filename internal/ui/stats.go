package ui

import (
	"fmt"
	"io"
	"sync/atomic"
)

// RunStats counts pipeline runs over the life of the process.
type RunStats struct {
	Runs        atomic.Int64
	Failures    atomic.Int64
	LastAuthors atomic.Int64
}

func (s *RunStats) Record(authors int, err error) {
	s.Runs.Add(1)
	if err != nil {
		s.Failures.Add(1)
		return
	}
	s.LastAuthors.Store(int64(authors))
}

func (s *RunStats) Print(w io.Writer) {
	_, _ = fmt.Fprintln(w, "Session Summary:")
	_, _ = fmt.Fprintf(w, "Runs:     %d\n", s.Runs.Load())
	_, _ = fmt.Fprintf(w, "Failed:   %d\n", s.Failures.Load())
	_, _ = fmt.Fprintf(w, "Authors:  %d\n", s.LastAuthors.Load())
}
