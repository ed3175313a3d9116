package comics

import (
	"errors"
	"fmt"
)

var (
	// ErrURLNotFound means the page loaded but carried no comic image,
	// e.g. an interactive comic.
	ErrURLNotFound = errors.New("image url not found")

	ErrEmptyFeed = errors.New("feed has no items")
)

// TransportError covers both network failures and non-2xx responses.
// StatusCode is zero for the former.
type TransportError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GET %s: HTTP %d", e.URL, e.StatusCode)
	}

	return fmt.Sprintf("GET %s: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

type FeedParseError struct {
	URL string
	Err error
}

func (e *FeedParseError) Error() string {
	return fmt.Sprintf("parse feed %s: %v", e.URL, e.Err)
}

func (e *FeedParseError) Unwrap() error { return e.Err }

type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// MalformedReferenceError is returned when a URL expected to name a comic
// does not contain an identifier.
type MalformedReferenceError struct {
	Ref string
}

func (e *MalformedReferenceError) Error() string {
	return fmt.Sprintf("no comic id in %q", e.Ref)
}
