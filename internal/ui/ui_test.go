package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/brogergvhs/xkcdget/internal/comics"
)

func TestLoggerDebugToggle(t *testing.T) {
	var buf bytes.Buffer

	quiet := NewLoggerWith(LogOptions{Out: &buf})
	quiet.Debugf("hidden %d\n", 1)
	if buf.Len() != 0 {
		t.Errorf("debug line written while debug is off: %q", buf.String())
	}

	loud := NewLoggerWith(LogOptions{Debug: true, Out: &buf})
	loud.Debugf("shown %d\n", 2)
	if !strings.Contains(buf.String(), "shown 2") {
		t.Errorf("expected debug line, got %q", buf.String())
	}
}

func TestLoggerOutcome(t *testing.T) {
	var buf bytes.Buffer
	l := NewLoggerWith(LogOptions{Out: &buf})

	l.Outcome(comics.Classify(404, comics.ErrURLNotFound))
	out := buf.String()
	if !strings.Contains(out, "404") || !strings.Contains(out, "not_found") {
		t.Errorf("missing fields in %q", out)
	}

	buf.Reset()
	l.Outcome(comics.Saved(1, "comics/1.png", 10))
	if !strings.Contains(buf.String(), "comics/1.png") {
		t.Errorf("missing path in %q", buf.String())
	}
}

func TestLoggerFile(t *testing.T) {
	path := t.TempDir() + "/xkcdget.log"
	l := NewLoggerWith(LogOptions{Out: &bytes.Buffer{}, Path: path, MaxSizeMB: 1})
	l.Infof("hello")
	if err := l.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestStats(t *testing.T) {
	var s Stats
	s.Record(comics.Saved(1, "a", 2048))
	s.Record(comics.Saved(2, "b", 2048))
	s.Record(comics.Classify(3, comics.ErrURLNotFound))
	s.Record(comics.Classify(4, errors.New("reset")))

	if s.Saved.Load() != 2 || s.NotFound.Load() != 1 || s.Failed.Load() != 1 {
		t.Fatalf("unexpected counters: %d %d %d", s.Saved.Load(), s.NotFound.Load(), s.Failed.Load())
	}

	var buf bytes.Buffer
	s.Print(&buf, 3*time.Second)
	if !strings.Contains(buf.String(), "4.1 kB") {
		t.Errorf("summary: %q", buf.String())
	}
}
