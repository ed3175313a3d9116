package providers

import (
	"context"

	"github.com/brogergvhs/xkcdget/internal/comics"
)

// Source resolves comic identifiers against an upstream comic site.
type Source interface {
	ResolveImageURL(ctx context.Context, id int) (string, error)
	FetchLatest(ctx context.Context) ([]comics.Ref, error)
	LatestID(ctx context.Context) (int, error)
}
