package util

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/brogergvhs/xkcdget/internal/comics"
)

type failingReader struct {
	sent bool
}

func (r *failingReader) Read(p []byte) (int, error) {
	if !r.sent {
		r.sent = true
		return copy(p, "partial"), nil
	}

	return 0, errors.New("connection reset")
}

func TestWriteFileAtomic(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "1.png")
	body := bytes.Repeat([]byte{0x89, 'P', 'N', 'G'}, 20000)

	var last int64
	n, err := WriteFileAtomic(path, bytes.NewReader(body), func(done int64) { last = done })
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != int64(len(body)) || last != n {
		t.Errorf("written %d, progress %d, want %d", n, last, len(body))
	}

	got, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, body) {
		t.Error("file content differs from source")
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("expected only the final file, got %d entries", len(entries))
	}
}

func TestWriteFileAtomicFailureLeavesNothing(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "2.png")

	_, err := WriteFileAtomic(path, &failingReader{}, nil)

	var ce *CopyError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want CopyError", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("expected empty dir, found %d entries", len(entries))
	}
}

func TestWriteFileAtomicMissingDir(t *testing.T) {
	_, err := WriteFileAtomic(filepath.Join(t.TempDir(), "nope", "3.png"), strings.NewReader("x"), nil)
	if err == nil {
		t.Fatal("expected error for missing directory")
	}

	var ce *CopyError
	if errors.As(err, &ce) {
		t.Error("missing directory is a write failure, not a read failure")
	}
}

func TestDirCacheConcurrent(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b")
	c := NewDirCache()

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- c.Ensure(dir)
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Ensure: %v", err)
		}
	}

	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Fatalf("directory not created: %v", err)
	}

	if err := os.Remove(dir); err != nil {
		t.Fatal(err)
	}
	if err := c.Ensure(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(dir); !os.IsNotExist(err) {
		t.Error("directory recreated; expected at most one creation per run")
	}
}

func TestCleanupPartialFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{".1.png.123.part", "2.png", ".hidden"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0644); err != nil {
			t.Fatal(err)
		}
	}

	if n := CleanupPartialFiles(dir); n != 1 {
		t.Errorf("removed %d files, want 1", n)
	}
	if _, err := os.Stat(filepath.Join(dir, "2.png")); err != nil {
		t.Error("finished file removed")
	}
}

func TestGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		_, _ = io.WriteString(w, r.Header.Get("User-Agent"))
	}))
	defer srv.Close()

	c := NewHTTPClient(HTTPClientOptions{Timeout: 5 * time.Second, UserAgent: "tester"})

	resp, err := Get(context.Background(), c, srv.URL+"/ok")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if string(b) != "tester" {
		t.Errorf("server saw user agent %q, want %q", b, "tester")
	}

	_, err = Get(context.Background(), c, srv.URL+"/missing")
	var te *comics.TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusNotFound {
		t.Fatalf("err = %v, want TransportError 404", err)
	}

	srv.Close()
	_, err = Get(context.Background(), c, srv.URL+"/ok")
	if !errors.As(err, &te) || te.StatusCode != 0 || te.Err == nil {
		t.Fatalf("err = %v, want network TransportError", err)
	}
}
