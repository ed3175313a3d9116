package xkcd

import (
	"context"

	"github.com/brogergvhs/xkcdget/internal/comics"
	"github.com/brogergvhs/xkcdget/internal/util"

	"github.com/mmcdole/gofeed"
)

// FetchLatest lists the comics in the RSS feed, newest first. Any malformed
// item aborts the whole call; an item whose description carries no image
// is kept with an empty ImageURL.
func (s *Scraper) FetchLatest(ctx context.Context) ([]comics.Ref, error) {
	resp, err := util.Get(ctx, s.client, s.feedURL)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	feed, err := gofeed.NewParser().Parse(resp.Body)
	if err != nil {
		return nil, &comics.FeedParseError{URL: s.feedURL, Err: err}
	}

	refs := make([]comics.Ref, 0, len(feed.Items))
	for _, item := range feed.Items {
		id, err := s.ex.ComicID(item.Link)
		if err != nil {
			return nil, err
		}

		u, _ := s.ex.ImageURL(item.Description)
		refs = append(refs, comics.Ref{ID: id, ImageURL: u})
	}

	s.log.Debugf("feed %s listed %d comics", s.feedURL, len(refs))
	return refs, nil
}

// LatestID is the highest comic number in the feed. The feed only covers
// a recent window, so this can lag the site's real latest comic.
func (s *Scraper) LatestID(ctx context.Context) (int, error) {
	refs, err := s.FetchLatest(ctx)
	if err != nil {
		return 0, err
	}

	if len(refs) == 0 {
		return 0, &comics.FeedParseError{URL: s.feedURL, Err: comics.ErrEmptyFeed}
	}

	latest := refs[0].ID
	for _, r := range refs[1:] {
		latest = max(latest, r.ID)
	}

	return latest, nil
}
