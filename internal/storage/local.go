// Package storage owns the on-disk layout of uploaded media and rendered
// documents. Files live under category-named subdirectories of a single
// root and are exposed read-only under the fixed /uploads public prefix.
// Stored files get random opaque names; the job-card row references the
// public path but does not own the file's lifecycle.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// PublicPrefix is the URL prefix media is served from, independent of
// the storage root on disk.
const PublicPrefix = "/uploads"

// Storage categories, each mapping to one subdirectory.
const (
	CategoryBefore     = "before"
	CategoryAfter      = "after"
	CategoryMaterials  = "materials"
	CategorySignatures = "signatures"
	CategoryJobCards   = "jobcards"
	CategoryCompany    = "company"
)

// LocalStore writes media files below a fixed root directory.
type LocalStore struct {
	root string
}

// NewLocalStore creates the root directory if needed and returns a store.
func NewLocalStore(root string) (*LocalStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload root: %w", err)
	}
	return &LocalStore{root: root}, nil
}

// Root returns the directory the store writes under; the router mounts
// it at PublicPrefix.
func (s *LocalStore) Root() string { return s.root }

// Save writes data under the category's subdirectory with a freshly
// generated random opaque name and the given extension, returning the
// web-servable path. Collisions are not checked; the 128-bit random
// namespace makes them negligible.
func (s *LocalStore) Save(category, ext string, data []byte) (string, error) {
	dir := filepath.Join(s.root, category)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create category dir: %w", err)
	}
	u := uuid.New()
	name := fmt.Sprintf("%x%s", u[:], ext)
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write media file: %w", err)
	}
	return PublicPrefix + "/" + category + "/" + name, nil
}

// ArtifactPath returns the on-disk location of a job card's rendered
// document. The file may not exist yet; callers stat it themselves.
func (s *LocalStore) ArtifactPath(jobNumber string) string {
	return filepath.Join(s.root, CategoryJobCards, jobNumber+".pdf")
}

// DiskPath maps a public /uploads path back to its on-disk location,
// rejecting anything that escapes the storage root.
func (s *LocalStore) DiskPath(publicPath string) (string, error) {
	rel := strings.TrimPrefix(publicPath, PublicPrefix+"/")
	if rel == publicPath {
		return "", fmt.Errorf("not a stored media path: %s", publicPath)
	}
	absRoot, err := filepath.Abs(s.root)
	if err != nil {
		return "", fmt.Errorf("invalid storage root: %w", err)
	}
	abs, err := filepath.Abs(filepath.Join(s.root, rel))
	if err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	if !strings.HasPrefix(abs, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal attempt")
	}
	return abs, nil
}
