package texttest

import (
	"io"
	"io/fs"

	"github.com/pkg/errors"
)

// LoadResource returns the contents of the named file in fsys as a string.
// It works with embed.FS, os.DirFS and any other fs.FS. A missing file is
// reported as ErrResourceNotFound.
func LoadResource(fsys fs.FS, name string) (string, error) {
	if fsys == nil {
		return "", invalidArgument("fsys")
	}

	data, err := fs.ReadFile(fsys, name)
	if errors.Is(err, fs.ErrNotExist) {
		return "", errors.Wrapf(ErrResourceNotFound, "cannot find the resource %q", name)
	}
	if err != nil {
		return "", errors.Wrapf(err, "reading resource %q", name)
	}
	return string(data), nil
}

// readText reads all of r into a string.
func readText(r io.Reader) (string, error) {
	if r == nil {
		return "", invalidArgument("reader")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", errors.Wrap(err, "reading text")
	}
	return string(data), nil
}
