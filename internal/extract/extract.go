// Package extract finds comic image URLs and comic identifiers in fetched
// documents. The patterns are a contract with the upstream site: image URLs
// look like https://imgs.xkcd.com/comics/<name>.(png|gif|jpg) and comic
// pages like https://xkcd.com/<id>.
package extract

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brogergvhs/xkcdget/internal/comics"
)

const (
	DefaultSiteURL  = "https://xkcd.com"
	DefaultImageURL = "https://imgs.xkcd.com"
)

type Extractor interface {
	// ImageURL returns the first comic image URL in doc.
	ImageURL(doc string) (string, bool)
	// ComicID returns the identifier from a comic page URL.
	ComicID(url string) (int, error)
}

// Patterns holds the compiled image and comic-page expressions for one
// site/image host pair.
type Patterns struct {
	image *regexp.Regexp
	comic *regexp.Regexp
}

func NewPatterns(siteURL, imageURL string) *Patterns {
	if siteURL == "" {
		siteURL = DefaultSiteURL
	}
	if imageURL == "" {
		imageURL = DefaultImageURL
	}

	site := regexp.QuoteMeta(strings.TrimRight(siteURL, "/"))
	img := regexp.QuoteMeta(strings.TrimRight(imageURL, "/"))

	return &Patterns{
		image: regexp.MustCompile(img + `/comics/[A-Za-z0-9_()]+\.(png|gif|jpg)`),
		comic: regexp.MustCompile(site + `/(\d+)`),
	}
}

func (p *Patterns) ImageURL(doc string) (string, bool) {
	m := p.image.FindString(doc)
	return m, m != ""
}

func (p *Patterns) ComicID(url string) (int, error) {
	m := p.comic.FindStringSubmatch(url)
	if m == nil {
		return 0, &comics.MalformedReferenceError{Ref: url}
	}

	id, err := strconv.Atoi(m[1])
	if err != nil || id < 1 || id > comics.MaxID {
		return 0, &comics.MalformedReferenceError{Ref: url}
	}

	return id, nil
}

// New picks a strategy by name: "regex" (default) or "dom".
func New(strategy, siteURL, imageURL string) (Extractor, error) {
	p := NewPatterns(siteURL, imageURL)

	switch strings.ToLower(strings.TrimSpace(strategy)) {
	case "", "regex":
		return p, nil
	case "dom":
		return NewDOM(p), nil
	default:
		return nil, fmt.Errorf("unknown extractor %q (want regex or dom)", strategy)
	}
}
