package extract

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DOM looks at image and link attributes first and only then scans the
// raw text, so a structural match wins over one that merely appears in a
// comment or a script.
type DOM struct {
	*Patterns
}

func NewDOM(p *Patterns) *DOM {
	return &DOM{Patterns: p}
}

func (d *DOM) ImageURL(doc string) (string, bool) {
	if u, ok := d.fromDOM(doc); ok {
		return u, true
	}

	return d.Patterns.ImageURL(doc)
}

func (d *DOM) fromDOM(doc string) (string, bool) {
	root, err := goquery.NewDocumentFromReader(strings.NewReader(doc))
	if err != nil {
		return "", false
	}

	var found string
	root.Find("img[src], a[href]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		for _, attr := range []string{"src", "href"} {
			v, ok := s.Attr(attr)
			if !ok {
				continue
			}

			if u, ok := d.Patterns.ImageURL(absolutize(strings.TrimSpace(v))); ok {
				found = u
				return false
			}
		}

		return true
	})

	return found, found != ""
}

// xkcd serves protocol-relative image sources.
func absolutize(v string) string {
	if strings.HasPrefix(v, "//") {
		return "https:" + v
	}

	return v
}
