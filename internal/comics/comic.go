package comics

import (
	"path/filepath"
	"strconv"
	"strings"
)

// MaxID is the largest comic id accepted from flags, ranges or feed links.
const MaxID = 100_000

// Ref pairs a comic identifier with the image it points at.
// ImageURL is empty when the source had no recognizable image.
type Ref struct {
	ID       int
	ImageURL string
}

type Target struct {
	Dir  string
	Name string
}

// NewTarget names the file after the comic id unless name is set.
func NewTarget(dir string, id int, name string) Target {
	if name == "" {
		name = strconv.Itoa(id)
	}

	return Target{Dir: dir, Name: name}
}

// PrefixedTarget is used by batch modes: prefix and id are joined as
// strings, so prefix "x" and id 12 give "x12".
func PrefixedTarget(dir, prefix string, id int) Target {
	return Target{Dir: dir, Name: prefix + strconv.Itoa(id)}
}

func (t Target) Path(ext string) string {
	file := t.Name
	if ext != "" {
		file += "." + ext
	}

	return filepath.Join(t.Dir, file)
}

// Extension returns whatever follows the last '.' of the image URL.
// URLs whose last dot sits before a '/' have no extension.
func Extension(imageURL string) string {
	if i := strings.IndexAny(imageURL, "?#"); i >= 0 {
		imageURL = imageURL[:i]
	}

	i := strings.LastIndex(imageURL, ".")
	if i < 0 {
		return ""
	}

	ext := imageURL[i+1:]
	if strings.Contains(ext, "/") {
		return ""
	}

	return ext
}
