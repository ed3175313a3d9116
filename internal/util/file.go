package util

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Partial downloads live next to their destination under this suffix
// until they are renamed into place.
const tempSuffix = ".part"

// DirCache creates each directory at most once per run. MkdirAll already
// treats an existing directory as success, so concurrent callers racing
// on the same path are fine.
type DirCache struct {
	mu   sync.Mutex
	made map[string]struct{}
}

func NewDirCache() *DirCache {
	return &DirCache{made: make(map[string]struct{})}
}

func (c *DirCache) Ensure(dir string) error {
	key := filepath.Clean(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.made[key]; ok {
		return nil
	}

	if err := os.MkdirAll(key, 0755); err != nil {
		return err
	}

	c.made[key] = struct{}{}
	return nil
}

// CopyError marks a failure on the reading side of WriteFileAtomic.
type CopyError struct {
	Err error
}

func (e *CopyError) Error() string { return "read source: " + e.Err.Error() }

func (e *CopyError) Unwrap() error { return e.Err }

// WriteFileAtomic streams src into a hidden temp file beside path and
// renames it over path once complete. On any failure the temp file is
// removed, so path either holds the full content or is left untouched.
func WriteFileAtomic(path string, src io.Reader, progress func(done int64)) (int64, error) {
	dir, base := filepath.Split(path)
	if dir == "" {
		dir = "."
	}

	f, err := os.CreateTemp(dir, "."+base+".*"+tempSuffix)
	if err != nil {
		return 0, err
	}
	tmp := f.Name()

	written, err := copyWithProgress(f, src, progress)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = cerr
	}

	if err == nil {
		err = os.Chmod(tmp, 0644)
	}
	if err == nil {
		err = os.Rename(tmp, path)
	}

	if err != nil {
		_ = os.Remove(tmp)
		return 0, err
	}

	return written, nil
}

func copyWithProgress(dst io.Writer, src io.Reader, progress func(done int64)) (int64, error) {
	buf := make([]byte, 32*1024)
	var total int64
	for {
		nr, er := src.Read(buf)

		if nr > 0 {
			nw, ew := dst.Write(buf[0:nr])

			if nw > 0 {
				total += int64(nw)
				if progress != nil {
					progress(total)
				}
			}

			if ew != nil {
				return total, ew
			}

			if nr != nw {
				return total, io.ErrShortWrite
			}
		}

		if er != nil {
			if er == io.EOF {
				break
			}
			return total, &CopyError{Err: er}
		}
	}

	return total, nil
}

func isTempFile(name string) bool {
	return strings.HasPrefix(name, ".") && strings.HasSuffix(name, tempSuffix)
}
