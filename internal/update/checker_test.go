package update

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-github/v82/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReleases struct {
	release *github.RepositoryRelease
	err     error
}

func (s *stubReleases) GetLatestRelease(ctx context.Context, owner, repo string) (*github.RepositoryRelease, *github.Response, error) {
	return s.release, nil, s.err
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current string
		latest  string
		want    bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.0", "1.1.0", true},
		{"1.0.0", "2.0.0", true},
		{"1.0.0", "1.0.0", false},
		{"1.2.0", "1.1.9", false},
		{"v1.0.0", "v1.0.1", true},
		{"1.0", "1.0.1", true},
		{"1.0.1", "1.0", false},
		{"dev", "9.9.9", false},
		{"", "1.0.0", false},
		{"1.0.0", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.current+"_vs_"+tt.latest, func(t *testing.T) {
			assert.Equal(t, tt.want, IsNewer(tt.current, tt.latest))
		})
	}
}

func TestChecker_UpdateAvailable(t *testing.T) {
	checker := &Checker{
		releases: &stubReleases{release: &github.RepositoryRelease{
			TagName: github.Ptr("v1.2.0"),
			HTMLURL: github.Ptr("https://github.com/portctl/portctl/releases/tag/v1.2.0"),
		}},
		owner: "portctl",
		repo:  "portctl",
	}

	result, err := checker.Check(context.Background(), "v1.1.0")
	require.NoError(t, err)
	assert.True(t, result.UpdateAvailable)
	assert.Equal(t, "v1.2.0", result.LatestVersion)
	assert.Equal(t, "https://github.com/portctl/portctl/releases/tag/v1.2.0", result.ReleaseURL)
}

func TestChecker_UpToDate(t *testing.T) {
	checker := &Checker{
		releases: &stubReleases{release: &github.RepositoryRelease{TagName: github.Ptr("v1.2.0")}},
		owner:    "portctl",
		repo:     "portctl",
	}

	result, err := checker.Check(context.Background(), "v1.2.0")
	require.NoError(t, err)
	assert.False(t, result.UpdateAvailable)
}

func TestChecker_FetchError(t *testing.T) {
	checker := &Checker{
		releases: &stubReleases{err: errors.New("rate limited")},
		owner:    "portctl",
		repo:     "portctl",
	}

	_, err := checker.Check(context.Background(), "v1.0.0")
	assert.ErrorContains(t, err, "fetch latest release")
}
