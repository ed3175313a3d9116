package downloader

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/brogergvhs/xkcdget/internal/comics"
	"github.com/brogergvhs/xkcdget/internal/ui"
	"github.com/brogergvhs/xkcdget/internal/util"
)

type Downloader struct {
	client *http.Client
	log    *ui.Logger
	dirs   *util.DirCache
}

func New(c *http.Client, log *ui.Logger) *Downloader {
	if log == nil {
		log = ui.Nop()
	}

	return &Downloader{
		client: c,
		log:    log,
		dirs:   util.NewDirCache(),
	}
}

// DownloadToFile fetches imageURL and stores it as {dir}/{name}.{ext}, the
// extension taken from the URL. It never returns an error: every failure is
// folded into the outcome, and a failed write leaves no file behind.
func (d *Downloader) DownloadToFile(ctx context.Context, id int, imageURL string, t comics.Target, progress func(done int64)) comics.Outcome {
	if imageURL == "" {
		return comics.Classify(id, fmt.Errorf("comic %d: %w", id, comics.ErrURLNotFound))
	}

	d.log.Debugf("Fetching comic %d from: %s", id, imageURL)

	resp, err := util.Get(ctx, d.client, imageURL)
	if err != nil {
		return comics.Classify(id, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	ext := comics.Extension(imageURL)
	path := t.Path(ext)

	d.log.Debugf("Creating directory: %s", t.Dir)
	if err := d.dirs.Ensure(t.Dir); err != nil {
		return comics.Classify(id, &comics.WriteError{Path: t.Dir, Err: err})
	}

	d.log.Debugf("Saving comic %d to %s", id, path)
	n, err := util.WriteFileAtomic(path, resp.Body, progress)
	if err != nil {
		var ce *util.CopyError
		if errors.As(err, &ce) {
			return comics.Classify(id, &comics.TransportError{URL: imageURL, Err: ce.Err})
		}

		return comics.Classify(id, &comics.WriteError{Path: path, Err: err})
	}

	return comics.Saved(id, path, n)
}
