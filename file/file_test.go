package file

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchDir(t *testing.T) {
	dir, err := ioutil.TempDir("", "cardtype-file")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "20190601"), 0755))
	for _, name := range []string{"a.bd", "b.txt", "20190601/c.bd2", "20190601/d.bd"} {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	found, err := SearchDir(dir, func(path string) bool {
		return strings.HasSuffix(path, ".bd")
	})
	require.NoError(t, err)
	sort.Strings(found)
	assert.Equal(t, []string{
		filepath.Join(dir, "20190601", "d.bd"),
		filepath.Join(dir, "a.bd"),
	}, found)
}

func TestSearchDirMissing(t *testing.T) {
	_, err := SearchDir(filepath.Join(os.TempDir(), "cardtype-does-not-exist"), func(string) bool { return true })
	assert.Error(t, err)
}
