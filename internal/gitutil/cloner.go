// Package gitutil provides a client for fetching Git repositories to analyze.
package gitutil

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
)

// Cloner fetches remote repositories into temporary directories.
type Cloner struct {
	logger *slog.Logger
}

// NewCloner returns a new Cloner instance.
func NewCloner(logger *slog.Logger) *Cloner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cloner{logger: logger}
}

// CloneTemp clones a repository's default branch into a temporary directory
// and returns the path with a cleanup function. The clone is shallow: the
// analyzer only needs the current work tree, not history.
func (c *Cloner) CloneTemp(ctx context.Context, repoURL, token string) (string, func(), error) {
	authURL, err := AuthenticatedCloneURL(repoURL, token)
	if err != nil {
		return "", nil, err
	}

	repoPath, err := os.MkdirTemp("", "review-assistant-repo-*")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp directory: %w", err)
	}
	cleanup := func() {
		c.logger.Info("cleaning up temporary repository", "path", repoPath)
		if removeErr := os.RemoveAll(repoPath); removeErr != nil {
			c.logger.Error("failed to remove temp repo", "path", repoPath, "error", removeErr)
		}
	}

	c.logger.InfoContext(ctx, "cloning repository", "url", repoURL, "path", repoPath)
	_, err = git.PlainCloneContext(ctx, repoPath, false, &git.CloneOptions{
		URL:          authURL,
		Depth:        1,
		SingleBranch: true,
	})
	if err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to clone %s: %w", repoURL, err)
	}

	return repoPath, cleanup, nil
}

// AuthenticatedCloneURL injects token credentials into an HTTP(S) clone URL.
// file:// is intentionally unsupported.
func AuthenticatedCloneURL(repoURL, token string) (string, error) {
	if !strings.HasPrefix(repoURL, "https://") && !strings.HasPrefix(repoURL, "http://") {
		return "", fmt.Errorf("invalid repository URL: %s (only http(s) is supported)", repoURL)
	}

	if token == "" {
		return repoURL, nil
	}

	parsedURL, err := url.Parse(repoURL)
	if err != nil {
		return "", fmt.Errorf("failed to parse repository URL '%s': %w", repoURL, err)
	}
	parsedURL.User = url.UserPassword("x-access-token", token)
	return parsedURL.String(), nil
}
