package update

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"
)

// ReleasesURL is the GitHub endpoint for the latest capalinks release.
const ReleasesURL = "https://api.github.com/repos/matheuskafuri/capalinks/releases/latest"

// Result holds the outcome of a version check.
type Result struct {
	LatestVersion string
	URL           string
}

type ghRelease struct {
	TagName string `json:"tag_name"`
	HTMLURL string `json:"html_url"`
}

// Check asks releasesURL whether a version newer than currentVersion exists.
// Any failure yields nil; the check is informational only.
func Check(ctx context.Context, releasesURL, currentVersion string) *Result {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, releasesURL, nil)
	if err != nil {
		return nil
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var release ghRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	if latest == "" || latest == current || current == "dev" {
		return nil
	}

	return &Result{LatestVersion: latest, URL: release.HTMLURL}
}
