package github

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"

	"github.com/dkoosis/waitfor/pkg/job"
)

const perPage = 100

// ListJobs returns every job of the current run attempt, following
// pagination until total_count jobs are collected or a page comes back
// empty.
func (c *Client) ListJobs(ctx context.Context) (*job.List, error) {
	path := c.config.Context.JobsPath()
	c.debug("fetching jobs for " + path)

	var all []job.Job
	for page := 1; ; page++ {
		query := url.Values{}
		query.Set("per_page", strconv.Itoa(perPage))
		query.Set("page", strconv.Itoa(page))

		body, err := c.get(ctx, path, query)
		if err != nil {
			return nil, err
		}
		var list job.List
		if err := json.Unmarshal(body, &list); err != nil {
			return nil, fmt.Errorf("decoding jobs page %d: %w", page, err)
		}
		all = append(all, list.Jobs...)
		if len(list.Jobs) == 0 || len(all) >= list.TotalCount {
			break
		}
	}
	return &job.List{TotalCount: len(all), Jobs: all}, nil
}
