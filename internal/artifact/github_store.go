package artifact

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"path"

	"github.com/dkoosis/waitfor/internal/github"
)

// GitHubAPI is the part of the GitHub client GitHubStore needs.
type GitHubAPI interface {
	ListArtifacts(ctx context.Context, name string) ([]github.Artifact, error)
	DownloadArtifact(ctx context.Context, id int64) ([]byte, error)
}

// GitHubStore reads files from the artifacts of the current run. Each file is
// expected to be uploaded as an artifact of the same name.
type GitHubStore struct {
	api GitHubAPI
	log Logger
}

// NewGitHubStore returns a store backed by api. log may be nil.
func NewGitHubStore(api GitHubAPI, log Logger) *GitHubStore {
	if log == nil {
		log = nopLogger{}
	}
	return &GitHubStore{api: api, log: log}
}

// Get downloads the newest unexpired artifact called name and returns the
// file of the same name inside it. An archive with a single entry returns
// that entry whatever its name.
func (s *GitHubStore) Get(ctx context.Context, name string) ([]byte, error) {
	artifacts, err := s.api.ListArtifacts(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("listing artifacts: %w", err)
	}
	latest, ok := newest(artifacts, name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	s.log.Debug(fmt.Sprintf("downloading artifact %s (id %d)", name, latest.ID))
	archive, err := s.api.DownloadArtifact(ctx, latest.ID)
	if err != nil {
		return nil, fmt.Errorf("downloading artifact %s: %w", name, err)
	}
	data, err := extract(archive, name)
	if err != nil {
		return nil, err
	}
	s.log.Debug(fmt.Sprintf("artifact %s was downloaded (%d bytes)", name, len(data)))
	return data, nil
}

// newest picks the most recently created unexpired artifact named name.
func newest(artifacts []github.Artifact, name string) (github.Artifact, bool) {
	var (
		best  github.Artifact
		found bool
	)
	for _, a := range artifacts {
		if a.Expired || a.Name != name {
			continue
		}
		if !found || later(a, best) {
			best, found = a, true
		}
	}
	return best, found
}

func later(a, b github.Artifact) bool {
	switch {
	case a.CreatedAt == nil && b.CreatedAt == nil:
		return a.ID > b.ID
	case a.CreatedAt == nil:
		return false
	case b.CreatedAt == nil:
		return true
	case a.CreatedAt.Equal(*b.CreatedAt):
		return a.ID > b.ID
	default:
		return a.CreatedAt.After(*b.CreatedAt)
	}
}

// extract returns the entry called name from a zip archive.
func extract(archive []byte, name string) ([]byte, error) {
	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("opening artifact %s: %w", name, err)
	}

	var files []*zip.File
	for _, f := range zr.File {
		if f.FileInfo().IsDir() {
			continue
		}
		files = append(files, f)
	}

	for _, f := range files {
		if f.Name == name || path.Base(f.Name) == path.Base(name) {
			return readEntry(f)
		}
	}
	if len(files) == 1 {
		return readEntry(files[0])
	}
	return nil, fmt.Errorf("%w: %s not in artifact archive", ErrNotFound, name)
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	return data, nil
}
