package downloader

import (
	"context"
	"sync"

	"github.com/brogergvhs/xkcdget/internal/comics"
	"github.com/brogergvhs/xkcdget/internal/providers"
	"github.com/brogergvhs/xkcdget/internal/ui"
)

// Tracker receives batch progress. *ui.ProgressHandle satisfies it.
type Tracker interface {
	SetTotal(total int)
	Done(bytes int64)
	MarkDone()
}

type BatchOptions struct {
	// Workers is clamped to 1..MaxWorkers; zero means MaxWorkers.
	Workers   int
	Tracker   Tracker
	OnOutcome func(comics.Outcome)
}

// Batch drives the download modes. Every mode reports one outcome per
// comic as it finishes and never stops early because of a failed comic.
type Batch struct {
	src providers.Source
	dl  *Downloader
	log *ui.Logger

	workers   int
	tracker   Tracker
	onOutcome func(comics.Outcome)

	mu sync.Mutex
}

func NewBatch(src providers.Source, dl *Downloader, log *ui.Logger, opts BatchOptions) *Batch {
	if log == nil {
		log = ui.Nop()
	}

	return &Batch{
		src:       src,
		dl:        dl,
		log:       log,
		workers:   clampWorkers(opts.Workers),
		tracker:   opts.Tracker,
		onOutcome: opts.OnOutcome,
	}
}

// Single resolves and downloads one comic. An empty name falls back to
// the comic id.
func (b *Batch) Single(ctx context.Context, id int, dir, name string) comics.Outcome {
	b.log.Infof("Downloading comic: %d", id)
	b.setTotal(1)
	defer b.markDone()

	o := b.process(ctx, id, comics.NewTarget(dir, id, name))
	b.report(o)
	return o
}

// Latest downloads every comic listed in the feed, one after another.
// The feed already carries image URLs, so no page is resolved.
func (b *Batch) Latest(ctx context.Context, dir, prefix string) ([]comics.Outcome, error) {
	refs, err := b.src.FetchLatest(ctx)
	if err != nil {
		return nil, err
	}

	b.log.Infof("Feed lists %d comics", len(refs))
	b.setTotal(len(refs))
	defer b.markDone()

	seen := make(map[int]struct{}, len(refs))
	out := make([]comics.Outcome, 0, len(refs))
	for _, ref := range refs {
		if _, dup := seen[ref.ID]; dup {
			continue
		}
		seen[ref.ID] = struct{}{}

		o := b.dl.DownloadToFile(ctx, ref.ID, ref.ImageURL, comics.PrefixedTarget(dir, prefix, ref.ID), nil)
		b.report(o)
		out = append(out, o)
	}

	return out, nil
}

// All downloads comics 1..N where N is the newest id found in the feed.
func (b *Batch) All(ctx context.Context, dir, prefix string) ([]comics.Outcome, error) {
	latest, err := b.src.LatestID(ctx)
	if err != nil {
		return nil, err
	}

	b.log.Infof("Downloading comics 1 through %d", latest)
	return b.Selection(ctx, comics.Sequence(latest), dir, prefix), nil
}

// Selection downloads the given ids through the worker pool. Duplicate
// and non-positive ids are dropped.
func (b *Batch) Selection(ctx context.Context, ids []int, dir, prefix string) []comics.Outcome {
	valid := make([]int, 0, len(ids))
	for _, id := range comics.Unique(ids) {
		if id >= 1 {
			valid = append(valid, id)
		}
	}

	b.setTotal(len(valid))
	defer b.markDone()

	return runPool(ctx, b.workers, valid, func(ctx context.Context, id int) comics.Outcome {
		o := b.process(ctx, id, comics.PrefixedTarget(dir, prefix, id))
		b.report(o)
		return o
	})
}

func (b *Batch) process(ctx context.Context, id int, t comics.Target) comics.Outcome {
	u, err := b.src.ResolveImageURL(ctx, id)
	if err != nil {
		return comics.Classify(id, err)
	}

	return b.dl.DownloadToFile(ctx, id, u, t, nil)
}

func (b *Batch) report(o comics.Outcome) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.log.Outcome(o)
	if b.tracker != nil {
		b.tracker.Done(o.Bytes)
	}
	if b.onOutcome != nil {
		b.onOutcome(o)
	}
}

func (b *Batch) setTotal(n int) {
	if b.tracker != nil {
		b.tracker.SetTotal(n)
	}
}

func (b *Batch) markDone() {
	if b.tracker != nil {
		b.tracker.MarkDone()
	}
}
