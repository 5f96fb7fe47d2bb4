package github

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// DefaultAPIURL is used when GITHUB_API_URL is unset.
const DefaultAPIURL = "https://api.github.com"

// Context identifies the run waitfor is part of.
type Context struct {
	APIURL     string
	Owner      string
	Repo       string
	RunID      int64
	RunAttempt int
	TempDir    string
}

// ContextFromEnv reads the run context the Actions runner exports.
func ContextFromEnv() (Context, error) {
	return contextFrom(os.Getenv)
}

func contextFrom(getenv func(string) string) (Context, error) {
	ctx := Context{
		APIURL:     strings.TrimSuffix(getenv("GITHUB_API_URL"), "/"),
		RunAttempt: 1,
		TempDir:    getenv("RUNNER_TEMP"),
	}
	if ctx.APIURL == "" {
		ctx.APIURL = DefaultAPIURL
	}

	repository := getenv("GITHUB_REPOSITORY")
	owner, repo, ok := strings.Cut(repository, "/")
	if !ok || owner == "" || repo == "" {
		return Context{}, fmt.Errorf("GITHUB_REPOSITORY must be owner/repo, got %q", repository)
	}
	ctx.Owner, ctx.Repo = owner, repo

	runID := getenv("GITHUB_RUN_ID")
	if runID == "" {
		return Context{}, errors.New("GITHUB_RUN_ID is not set")
	}
	id, err := strconv.ParseInt(runID, 10, 64)
	if err != nil {
		return Context{}, fmt.Errorf("invalid GITHUB_RUN_ID %q: %w", runID, err)
	}
	ctx.RunID = id

	if attempt := getenv("GITHUB_RUN_ATTEMPT"); attempt != "" {
		n, err := strconv.Atoi(attempt)
		if err != nil || n < 1 {
			return Context{}, fmt.Errorf("invalid GITHUB_RUN_ATTEMPT %q", attempt)
		}
		ctx.RunAttempt = n
	}
	return ctx, nil
}

// RepoPath is the API path prefix of the repository.
func (c Context) RepoPath() string {
	return fmt.Sprintf("/repos/%s/%s", c.Owner, c.Repo)
}

// JobsPath is the API path listing the jobs of the current run attempt.
func (c Context) JobsPath() string {
	return fmt.Sprintf("%s/actions/runs/%d/attempts/%d/jobs", c.RepoPath(), c.RunID, c.RunAttempt)
}
