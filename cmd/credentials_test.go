package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadCredentialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portal-password")
	require.NoError(t, os.WriteFile(path, []byte("s3cret\n"), 0o600))

	v, err := readCredentialFile(path)
	require.NoError(t, err)
	require.Equal(t, "s3cret", v)
}

func TestReadCredentialFile_Missing(t *testing.T) {
	_, err := readCredentialFile(filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	require.True(t, os.IsNotExist(err))
}

func TestReadCredentialFile_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o600))

	_, err := readCredentialFile(path)
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty")
}
