package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"
)

// Artifact is a run artifact as listed by the API.
type Artifact struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	SizeInBytes int64      `json:"size_in_bytes"`
	Expired     bool       `json:"expired"`
	CreatedAt   *time.Time `json:"created_at"`
}

type artifactList struct {
	TotalCount int        `json:"total_count"`
	Artifacts  []Artifact `json:"artifacts"`
}

// ListArtifacts returns the artifacts of the current run named name.
func (c *Client) ListArtifacts(ctx context.Context, name string) ([]Artifact, error) {
	path := fmt.Sprintf("%s/actions/runs/%d/artifacts", c.config.Context.RepoPath(), c.config.Context.RunID)
	query := url.Values{}
	query.Set("name", name)
	query.Set("per_page", "100")

	body, err := c.get(ctx, path, query)
	if err != nil {
		return nil, err
	}
	var list artifactList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("decoding artifacts: %w", err)
	}
	return list.Artifacts, nil
}

// DownloadArtifact returns the zip archive of an artifact.
func (c *Client) DownloadArtifact(ctx context.Context, id int64) ([]byte, error) {
	path := fmt.Sprintf("%s/actions/artifacts/%d/zip", c.config.Context.RepoPath(), id)
	c.debug(fmt.Sprintf("downloading artifact %d", id))
	return c.get(ctx, path, nil)
}
