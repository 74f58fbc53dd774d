// Package snapshot reads serialized snapshot images from storage.
package snapshot

import (
	"io"
	"os"

	mverrors "github.com/davidchisnall/microvium/domain/errors"
	"github.com/davidchisnall/microvium/domain/ports"
)

// Loader implements ports.SnapshotLoader against the local filesystem.
type Loader struct{}

// NewLoader returns a filesystem-backed loader.
func NewLoader() ports.SnapshotLoader {
	return &Loader{}
}

// Load reads the whole file into one allocation sized to the file's
// length. A short read is a failure, never silently truncated data.
func (l *Loader) Load(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &mverrors.SnapshotError{Path: path, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, &mverrors.SnapshotError{Path: path, Err: err}
	}

	buf := make([]byte, info.Size())
	if _, err := io.ReadFull(f, buf); err != nil {
		return nil, &mverrors.SnapshotError{Path: path, Err: err}
	}
	return buf, nil
}
