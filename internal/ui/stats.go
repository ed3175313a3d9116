package ui

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"

	"github.com/brogergvhs/xkcdget/internal/comics"

	"github.com/dustin/go-humanize"
)

type Stats struct {
	Saved     atomic.Int64
	NotFound  atomic.Int64
	Failed    atomic.Int64
	TotalByte atomic.Int64
}

func (s *Stats) Record(o comics.Outcome) {
	switch o.Status {
	case comics.StatusSaved:
		s.Saved.Add(1)
		s.TotalByte.Add(o.Bytes)
	case comics.StatusNotFound:
		s.NotFound.Add(1)
	default:
		s.Failed.Add(1)
	}
}

func (s *Stats) Print(w io.Writer, elapsed time.Duration) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Download Summary:")
	fmt.Fprintf(w, "Saved:     %d\n", s.Saved.Load())
	fmt.Fprintf(w, "Not found: %d\n", s.NotFound.Load())
	fmt.Fprintf(w, "Failed:    %d\n", s.Failed.Load())
	fmt.Fprintf(w, "Data:      %s\n", humanize.Bytes(uint64(s.TotalByte.Load())))
	fmt.Fprintf(w, "Time:      %s\n", elapsed.Round(time.Second))
}
