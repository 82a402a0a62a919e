// Package update checks GitHub releases for a newer portctl version.
package update

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/go-github/v82/github"
)

const (
	repoOwner = "portctl"
	repoName  = "portctl"
)

// Result describes the outcome of an update check.
type Result struct {
	CurrentVersion  string
	LatestVersion   string
	UpdateAvailable bool
	ReleaseURL      string
}

// Checker looks up the latest published release.
type Checker struct {
	releases releaseLister
	owner    string
	repo     string
}

// releaseLister is the slice of the GitHub API the checker needs.
type releaseLister interface {
	GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error)
}

// NewChecker creates a checker against the public GitHub API.
func NewChecker() *Checker {
	return &Checker{
		releases: github.NewClient(nil).Repositories,
		owner:    repoOwner,
		repo:     repoName,
	}
}

// Check fetches the latest release and compares it to currentVersion.
func (c *Checker) Check(ctx context.Context, currentVersion string) (*Result, error) {
	release, _, err := c.releases.GetLatestRelease(ctx, c.owner, c.repo)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}

	latest := release.GetTagName()
	return &Result{
		CurrentVersion:  currentVersion,
		LatestVersion:   latest,
		UpdateAvailable: IsNewer(currentVersion, latest),
		ReleaseURL:      release.GetHTMLURL(),
	}, nil
}

// IsNewer reports whether latest is a strictly newer version than current.
// Versions are dotted numerics with an optional leading "v"; non-numeric
// segments compare as zero. Dev builds ("dev", empty) are never outdated.
func IsNewer(current, latest string) bool {
	current = strings.TrimPrefix(current, "v")
	latest = strings.TrimPrefix(latest, "v")
	if current == "" || current == "dev" || latest == "" {
		return false
	}

	cur := strings.Split(current, ".")
	lat := strings.Split(latest, ".")
	for i := 0; i < len(cur) || i < len(lat); i++ {
		c, l := segment(cur, i), segment(lat, i)
		if l != c {
			return l > c
		}
	}
	return false
}

func segment(parts []string, i int) int {
	if i >= len(parts) {
		return 0
	}
	n, _ := strconv.Atoi(strings.TrimSpace(parts[i]))
	return n
}
