package xkcd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/brogergvhs/xkcdget/internal/comics"
	"github.com/brogergvhs/xkcdget/internal/extract"
	"github.com/brogergvhs/xkcdget/internal/ui"
	"github.com/brogergvhs/xkcdget/internal/util"

	"golang.org/x/net/html/charset"
)

type Options struct {
	SiteURL   string
	FeedURL   string
	Extractor extract.Extractor
}

type Scraper struct {
	client  *http.Client
	log     *ui.Logger
	ex      extract.Extractor
	siteURL string
	feedURL string
}

func NewScraper(c *http.Client, log *ui.Logger, opts Options) *Scraper {
	site := strings.TrimRight(opts.SiteURL, "/")
	if site == "" {
		site = extract.DefaultSiteURL
	}

	feed := opts.FeedURL
	if feed == "" {
		feed = site + "/rss.xml"
	}

	ex := opts.Extractor
	if ex == nil {
		ex = extract.NewPatterns(site, "")
	}

	if log == nil {
		log = ui.Nop()
	}

	return &Scraper{
		client:  c,
		log:     log,
		ex:      ex,
		siteURL: site,
		feedURL: feed,
	}
}

func (s *Scraper) ComicURL(id int) string {
	return s.siteURL + "/" + strconv.Itoa(id)
}

// ResolveImageURL fetches the comic page and extracts its image URL.
// A page that loads but shows no image yields comics.ErrURLNotFound.
func (s *Scraper) ResolveImageURL(ctx context.Context, id int) (string, error) {
	page := s.ComicURL(id)

	body, err := s.fetchBody(ctx, page)
	if err != nil {
		return "", err
	}

	u, ok := s.ex.ImageURL(body)
	if !ok {
		return "", fmt.Errorf("comic %d: %w", id, comics.ErrURLNotFound)
	}

	s.log.Debugf("comic %d resolved to %s", id, u)
	return u, nil
}

func (s *Scraper) fetchBody(ctx context.Context, target string) (string, error) {
	resp, err := util.Get(ctx, s.client, target)
	if err != nil {
		return "", err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	r, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		r = resp.Body
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", &comics.TransportError{URL: target, Err: err}
	}

	return string(data), nil
}
