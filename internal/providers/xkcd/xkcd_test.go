package xkcd

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/brogergvhs/xkcdget/internal/comics"
	"github.com/brogergvhs/xkcdget/internal/extract"
)

func rss(base string, ids ...int) string {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="utf-8"?>
<rss version="2.0"><channel><title>xkcd.com</title><link>` + base + `/</link><description>xkcd.com: A webcomic</description>`)
	for _, id := range ids {
		desc := fmt.Sprintf(`<img src="%s/comics/comic_%d.png" title="alt" alt="Comic %d" />`, base, id, id)
		fmt.Fprintf(&b, `<item><title>Comic %d</title><link>%s/%d/</link><description>%s</description></item>`,
			id, base, id, html.EscapeString(desc))
	}
	b.WriteString(`</channel></rss>`)
	return b.String()
}

type upstream struct {
	*httptest.Server

	mu    sync.Mutex
	feed  string
	pages map[string]string
}

func (u *upstream) setFeed(feed string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.feed = feed
}

func (u *upstream) setPage(path, page string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.pages[path] = page
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	u := &upstream{pages: map[string]string{}}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		feed := u.feed
		page, ok := u.pages[r.URL.Path]
		u.mu.Unlock()

		if r.URL.Path == "/rss.xml" {
			if feed == "" {
				http.Error(w, "down", http.StatusInternalServerError)
				return
			}
			w.Header().Set("Content-Type", "text/xml; charset=utf-8")
			_, _ = w.Write([]byte(feed))
			return
		}

		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	t.Cleanup(u.Close)

	return u
}

func (u *upstream) scraper() *Scraper {
	return NewScraper(u.Client(), nil, Options{
		SiteURL:   u.URL,
		Extractor: extract.NewPatterns(u.URL, u.URL),
	})
}

func TestResolveImageURL(t *testing.T) {
	u := newUpstream(t)
	u.setPage("/1", `<div id="comic"><img src="x"></div>Image URL (for hotlinking/embedding): `+u.URL+`/comics/barrel_cropped_(1).jpg`)
	u.setPage("/404", `<html><body>Interactive comic, no image here</body></html>`)

	s := u.scraper()
	ctx := context.Background()

	got, err := s.ResolveImageURL(ctx, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := u.URL + "/comics/barrel_cropped_(1).jpg"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	_, err = s.ResolveImageURL(ctx, 404)
	if !errors.Is(err, comics.ErrURLNotFound) {
		t.Errorf("page without image: err = %v, want ErrURLNotFound", err)
	}

	_, err = s.ResolveImageURL(ctx, 7)
	var te *comics.TransportError
	if !errors.As(err, &te) || te.StatusCode != http.StatusNotFound {
		t.Errorf("missing page: err = %v, want TransportError 404", err)
	}
}

func TestFetchLatest(t *testing.T) {
	u := newUpstream(t)
	u.setFeed(rss(u.URL, 2950, 2949, 2948))

	refs, err := u.scraper().FetchLatest(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(refs) != 3 {
		t.Fatalf("got %d refs, want 3", len(refs))
	}
	for i, id := range []int{2950, 2949, 2948} {
		if refs[i].ID != id {
			t.Errorf("refs[%d].ID = %d, want %d", i, refs[i].ID, id)
		}
		if want := fmt.Sprintf("%s/comics/comic_%d.png", u.URL, id); refs[i].ImageURL != want {
			t.Errorf("refs[%d].ImageURL = %q, want %q", i, refs[i].ImageURL, want)
		}
	}
}

func TestLatestID(t *testing.T) {
	u := newUpstream(t)
	u.setFeed(rss(u.URL, 2949, 2950, 2948))

	id, err := u.scraper().LatestID(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 2950 {
		t.Errorf("LatestID() = %d, want 2950", id)
	}
}

func TestFeedFailures(t *testing.T) {
	u := newUpstream(t)
	s := u.scraper()
	ctx := context.Background()

	t.Run("http error", func(t *testing.T) {
		u.setFeed("")
		_, err := s.FetchLatest(ctx)
		var te *comics.TransportError
		if !errors.As(err, &te) || te.StatusCode != http.StatusInternalServerError {
			t.Errorf("err = %v, want TransportError 500", err)
		}
	})

	t.Run("not a feed", func(t *testing.T) {
		u.setFeed("this is definitely not xml")
		_, err := s.FetchLatest(ctx)
		var pe *comics.FeedParseError
		if !errors.As(err, &pe) {
			t.Errorf("err = %v, want FeedParseError", err)
		}
	})

	t.Run("empty feed", func(t *testing.T) {
		u.setFeed(rss(u.URL))
		_, err := s.LatestID(ctx)
		if !errors.Is(err, comics.ErrEmptyFeed) {
			t.Errorf("err = %v, want ErrEmptyFeed", err)
		}
	})

	t.Run("malformed link aborts", func(t *testing.T) {
		u.setFeed(strings.Replace(rss(u.URL, 3, 2), u.URL+"/2/", "https://elsewhere.example/about", 1))
		refs, err := s.FetchLatest(ctx)
		var mr *comics.MalformedReferenceError
		if !errors.As(err, &mr) || refs != nil {
			t.Errorf("refs = %v, err = %v; want MalformedReferenceError and no refs", refs, err)
		}
	})

	t.Run("item without image kept", func(t *testing.T) {
		u.setFeed(strings.Replace(rss(u.URL, 5), "comic_5.png", "comic_5.svg", 1))
		refs, err := s.FetchLatest(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(refs) != 1 || refs[0].ID != 5 || refs[0].ImageURL != "" {
			t.Errorf("got %+v", refs)
		}
	})
}

func TestDefaults(t *testing.T) {
	s := NewScraper(http.DefaultClient, nil, Options{})
	if s.ComicURL(42) != "https://xkcd.com/42" {
		t.Errorf("ComicURL = %q", s.ComicURL(42))
	}
	if s.feedURL != "https://xkcd.com/rss.xml" {
		t.Errorf("feedURL = %q", s.feedURL)
	}
}
