package os

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCreateFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a", "b", "out.bmp")

	f, err := CreateFile(path)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.NoError(t, EnsureDir(filepath.Join(dir, "a")))
	require.Error(t, EnsureDir(path))

	_, err = os.Stat(path)
	require.NoError(t, err)
}
