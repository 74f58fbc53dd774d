package snapshot

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mverrors "github.com/davidchisnall/microvium/domain/errors"
)

func TestLoadReadsWholeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "2.post-gc.mvm-bc")
	image := []byte{0x0c, 0x00, 0x2a, 0x00, 0xff}
	require.NoError(t, os.WriteFile(path, image, 0o644))

	got, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Equal(t, image, got)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	got, err := NewLoader().Load(path)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestLoadMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "no-such-file")

	_, err := NewLoader().Load(path)
	require.Error(t, err)

	var snapErr *mverrors.SnapshotError
	require.ErrorAs(t, err, &snapErr)
	assert.Equal(t, path, snapErr.Path)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
