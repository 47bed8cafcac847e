package storage

import (
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tvqhuy/Classboard/config"
)

func newStore(t *testing.T) *LocalStore {
	t.Helper()
	store, err := NewLocalStore(&config.Config{Upload: config.Upload{Dir: t.TempDir()}})
	require.NoError(t, err)
	return store
}

func TestValidateFilename(t *testing.T) {
	assert.NoError(t, ValidateFilename("report.txt"))
	assert.Error(t, ValidateFilename(""))
	assert.Error(t, ValidateFilename("   "))
	assert.Error(t, ValidateFilename("../escape.txt"))
	assert.Error(t, ValidateFilename("dir/report.txt"))
	assert.Error(t, ValidateFilename(`dir\report.txt`))
}

func TestLocalStoreSaveNamespacesBySubmission(t *testing.T) {
	store := newStore(t)
	subA := uuid.New()
	subB := uuid.New()

	pathA, sizeA, err := store.Save(subA, "f.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	assert.EqualValues(t, 5, sizeA)

	// same filename, different submission: distinct path
	pathB, _, err := store.Save(subB, "f.txt", strings.NewReader("other"))
	require.NoError(t, err)
	assert.NotEqual(t, pathA, pathB)

	got, err := store.ReadFile(pathA)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(got))

	require.NoError(t, store.Remove(pathA))
	_, err = store.ReadFile(pathA)
	assert.Error(t, err)
}

func TestTempDirLifecycle(t *testing.T) {
	tmp, err := NewTempDir()
	require.NoError(t, err)

	path, err := tmp.Save("buffered.txt", strings.NewReader("scratch"))
	require.NoError(t, err)

	f, err := tmp.Open(path)
	require.NoError(t, err)
	f.Close()

	require.NoError(t, tmp.Close())

	// everything under the scratch directory is gone
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
