package report

import (
	"fmt"
	"os"
	"path/filepath"
)

// markdownDirName is the subdirectory holding one file per crawled page.
const markdownDirName = "markdown"

// IndexFileName is the name of the curated index artifact.
const IndexFileName = "llms.txt"

// FullFileName is the name of the full concatenation artifact.
const FullFileName = "llms-full.txt"

// Store manages the output directory of one run.
//
// Design decision: Failing to create the output directory is the only
// fatal error in the whole system, so Store creation is the place where
// a run is allowed to die. Everything after that degrades per page.
type Store struct {
	// root is the output directory holding llms.txt and llms-full.txt.
	root string

	// markdownDir is root/markdown, one file per page.
	markdownDir string
}

// NewStore creates the output directory tree and returns a Store for it.
func NewStore(outputDir string) (*Store, error) {
	markdownDir := filepath.Join(outputDir, markdownDirName)
	if err := os.MkdirAll(markdownDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	return &Store{
		root:        outputDir,
		markdownDir: markdownDir,
	}, nil
}

// Root returns the output directory path.
func (s *Store) Root() string {
	return s.root
}

// WritePage stores one page body under its storage key. A key collision
// overwrites the earlier page; this mirrors the key derivation's known
// limitation and is not treated as an error.
func (s *Store) WritePage(storageKey, body string) error {
	path := filepath.Join(s.markdownDir, storageKey)
	if err := os.WriteFile(path, []byte(body), 0600); err != nil {
		return fmt.Errorf("failed to write page %s: %w", storageKey, err)
	}
	return nil
}

// ReadPage reads a stored page body back. The boolean is false when the
// file cannot be located, which callers treat as a non-fatal gap.
func (s *Store) ReadPage(storageKey string) (string, bool) {
	body, err := os.ReadFile(filepath.Join(s.markdownDir, storageKey))
	if err != nil {
		return "", false
	}
	return string(body), true
}

// CreateArtifact creates (or truncates) a top-level artifact file such
// as llms.txt and returns it for writing.
func (s *Store) CreateArtifact(name string) (*os.File, error) {
	f, err := os.OpenFile(filepath.Join(s.root, name), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s: %w", name, err)
	}
	return f, nil
}
