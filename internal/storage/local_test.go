package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)
	return s
}

func TestSaveWritesFileAndReturnsPublicPath(t *testing.T) {
	s := newTestStore(t)

	p, err := s.Save(CategoryBefore, ".jpg", []byte("photo bytes"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(p, PublicPrefix+"/"+CategoryBefore+"/"))
	assert.True(t, strings.HasSuffix(p, ".jpg"))

	disk, err := s.DiskPath(p)
	require.NoError(t, err)
	data, err := os.ReadFile(disk)
	require.NoError(t, err)
	assert.Equal(t, []byte("photo bytes"), data)
}

func TestSaveGeneratesDistinctNames(t *testing.T) {
	s := newTestStore(t)

	a, err := s.Save(CategoryAfter, ".png", []byte("a"))
	require.NoError(t, err)
	b, err := s.Save(CategoryAfter, ".png", []byte("b"))
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestArtifactPath(t *testing.T) {
	s := newTestStore(t)

	p := s.ArtifactPath("DC-20260104-001")
	assert.Equal(t, filepath.Join(s.Root(), CategoryJobCards, "DC-20260104-001.pdf"), p)
}

func TestDiskPathRejectsTraversal(t *testing.T) {
	s := newTestStore(t)

	cases := []string{
		"/uploads/../etc/passwd",
		"/uploads/before/../../secret",
		"/etc/passwd",
		"before/x.jpg", // missing public prefix
	}
	for _, p := range cases {
		_, err := s.DiskPath(p)
		assert.Error(t, err, "path %s must be rejected", p)
	}
}
