package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/codeGROOVE-dev/retry"
	"golang.org/x/time/rate"

	"github.com/dnishkina/trustscore/internal/analysis"
	apperrors "github.com/dnishkina/trustscore/internal/errors"
	"github.com/dnishkina/trustscore/internal/monitoring"
)

// ClientConfig holds the transport settings for the GitHub client.
type ClientConfig struct {
	BaseURL           string
	Token             string
	Timeout           time.Duration
	RequestsPerSecond float64
	RetryAttempts     uint
}

// GitHubClient fetches repository data from the GitHub REST API. All
// payloads are validated at this boundary; callers never see
// undefined-shaped values.
type GitHubClient struct {
	baseURL  string
	token    string
	attempts uint
	timeout  time.Duration
	http     *http.Client
	limiter  *rate.Limiter
	metrics  *monitoring.Metrics
	log      *monitoring.Logger
}

// NewGitHubClient creates a GitHub client with client-side rate limiting
// and bounded retry for transport errors.
func NewGitHubClient(cfg ClientConfig, metrics *monitoring.Metrics, logger *monitoring.Logger) *GitHubClient {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	attempts := cfg.RetryAttempts
	if attempts == 0 {
		attempts = 3
	}
	burst := int(rps * 2)
	if burst < 1 {
		burst = 1
	}

	return &GitHubClient{
		baseURL:  cfg.BaseURL,
		token:    cfg.Token,
		attempts: attempts,
		timeout:  timeout,
		http:     &http.Client{Timeout: timeout},
		limiter:  rate.NewLimiter(rate.Limit(rps), burst),
		metrics:  metrics,
		log:      logger,
	}
}

// contributorPayload is the raw wire shape of one contributor entry.
type contributorPayload struct {
	Login         string `json:"login"`
	Contributions int    `json:"contributions"`
}

type repoPayload struct {
	Description     string    `json:"description"`
	HasWiki         bool      `json:"has_wiki"`
	Topics          []string  `json:"topics"`
	StargazersCount int       `json:"stargazers_count"`
	ForksCount      int       `json:"forks_count"`
	OpenIssuesCount int       `json:"open_issues_count"`
	PushedAt        time.Time `json:"pushed_at"`
}

type readmePayload struct {
	Size int `json:"size"`
}

type searchPayload struct {
	TotalCount int `json:"total_count"`
}

type licensePayload struct {
	License *struct {
		SPDXID string `json:"spdx_id"`
		Name   string `json:"name"`
	} `json:"license"`
}

// FetchContributors fetches the contributor list for a repository.
func (c *GitHubClient) FetchContributors(ctx context.Context, owner, repo string) ([]analysis.Contributor, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/contributors?per_page=100", c.baseURL, owner, repo)

	var payload []contributorPayload
	status, err := c.getJSON(ctx, url, &payload)
	if err != nil {
		return nil, apperrors.WrapError(err, "failed to fetch contributors for %s/%s", owner, repo)
	}
	if status == http.StatusNoContent || status == http.StatusNotFound {
		// Empty repositories have no contributors.
		return []analysis.Contributor{}, nil
	}

	contributors := make([]analysis.Contributor, 0, len(payload))
	for _, p := range payload {
		if p.Login == "" {
			return nil, apperrors.NewMalformedResponseError("GitHub", "contributor entry missing login")
		}
		if p.Contributions < 0 {
			return nil, apperrors.NewMalformedResponseError("GitHub", fmt.Sprintf("negative contribution count for %s", p.Login))
		}
		contributors = append(contributors, analysis.Contributor{
			Login:         p.Login,
			Contributions: p.Contributions,
		})
	}

	return contributors, nil
}

// FetchRepoFacts assembles the metadata snapshot the ramp-up,
// correctness and responsiveness calculators score against. Missing
// optional resources (readme, issue search) degrade to zero values
// rather than failing the fetch.
func (c *GitHubClient) FetchRepoFacts(ctx context.Context, owner, repo string) (analysis.RepoFacts, error) {
	url := fmt.Sprintf("%s/repos/%s/%s", c.baseURL, owner, repo)

	var payload repoPayload
	status, err := c.getJSON(ctx, url, &payload)
	if err != nil {
		return analysis.RepoFacts{}, apperrors.WrapError(err, "failed to fetch repo metadata for %s/%s", owner, repo)
	}
	if status == http.StatusNotFound {
		return analysis.RepoFacts{}, apperrors.NewExternalAPIError("GitHub", fmt.Errorf("repository %s/%s not found", owner, repo))
	}
	if payload.StargazersCount < 0 || payload.ForksCount < 0 || payload.OpenIssuesCount < 0 {
		return analysis.RepoFacts{}, apperrors.NewMalformedResponseError("GitHub", "negative repository counters")
	}

	facts := analysis.RepoFacts{
		Description: payload.Description,
		HasWiki:     payload.HasWiki,
		Topics:      len(payload.Topics),
		Stars:       payload.StargazersCount,
		Forks:       payload.ForksCount,
		OpenIssues:  payload.OpenIssuesCount,
		PushedAt:    payload.PushedAt,
	}

	var readme readmePayload
	status, err = c.getJSON(ctx, fmt.Sprintf("%s/repos/%s/%s/readme", c.baseURL, owner, repo), &readme)
	if err != nil {
		return analysis.RepoFacts{}, apperrors.WrapError(err, "failed to fetch readme metadata for %s/%s", owner, repo)
	}
	if status == http.StatusOK {
		facts.ReadmeBytes = readme.Size
	}

	var search searchPayload
	searchURL := fmt.Sprintf("%s/search/issues?q=repo:%s/%s+type:issue+state:closed&per_page=1", c.baseURL, owner, repo)
	status, err = c.getJSON(ctx, searchURL, &search)
	if err != nil {
		return analysis.RepoFacts{}, apperrors.WrapError(err, "failed to count closed issues for %s/%s", owner, repo)
	}
	if status == http.StatusOK {
		if search.TotalCount < 0 {
			return analysis.RepoFacts{}, apperrors.NewMalformedResponseError("GitHub", "negative issue count")
		}
		facts.ClosedIssues = search.TotalCount
	}

	return facts, nil
}

// FetchLicense fetches the detected license for a repository. A 404
// means GitHub detected no license and yields an empty License, not an
// error.
func (c *GitHubClient) FetchLicense(ctx context.Context, owner, repo string) (analysis.License, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/license", c.baseURL, owner, repo)

	var payload licensePayload
	status, err := c.getJSON(ctx, url, &payload)
	if err != nil {
		return analysis.License{}, apperrors.WrapError(err, "failed to fetch license for %s/%s", owner, repo)
	}
	if status == http.StatusNotFound {
		return analysis.License{}, nil
	}
	if payload.License == nil {
		return analysis.License{}, apperrors.NewMalformedResponseError("GitHub", "license object missing from response")
	}

	return analysis.License{
		SPDXID: payload.License.SPDXID,
		Name:   payload.License.Name,
	}, nil
}

// getJSON performs a rate-limited GET with bounded retry and decodes the
// response into out. The returned status is the last HTTP status seen; a
// 404 is reported via the status, not as an error, so callers can treat
// missing resources as recoverable.
func (c *GitHubClient) getJSON(ctx context.Context, url string, out any) (int, error) {
	var status int

	err := retry.Do(
		func() error {
			if err := c.limiter.Wait(ctx); err != nil {
				return retry.Unrecoverable(err)
			}

			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return retry.Unrecoverable(apperrors.NewInternalError("failed to build request", err))
			}
			req.Header.Set("Accept", "application/vnd.github.v3+json")
			req.Header.Set("User-Agent", "trustscore/1.0")
			if c.token != "" {
				req.Header.Set("Authorization", "Bearer "+c.token)
			}

			start := time.Now()
			resp, err := c.http.Do(req)
			if c.metrics != nil {
				c.metrics.IncrementGitHubCalls()
			}
			if err != nil {
				if c.log != nil {
					c.log.ExternalAPILogger("GitHub", http.MethodGet, url, 0, time.Since(start), false)
				}
				return apperrors.NewNetworkError("github request failed", err)
			}
			defer resp.Body.Close()

			status = resp.StatusCode
			if c.log != nil {
				c.log.ExternalAPILogger("GitHub", http.MethodGet, url, resp.StatusCode, time.Since(start), resp.StatusCode < 400)
			}

			switch {
			case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusNoContent:
				_, _ = io.Copy(io.Discard, resp.Body)
				return nil
			case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode == http.StatusForbidden:
				return apperrors.NewRateLimitError(fmt.Sprintf("github rate limited: status %d", resp.StatusCode), nil)
			case resp.StatusCode >= 500:
				return apperrors.NewExternalAPIError("GitHub", fmt.Errorf("status %d", resp.StatusCode))
			case resp.StatusCode != http.StatusOK:
				body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
				return retry.Unrecoverable(apperrors.NewExternalAPIError("GitHub",
					fmt.Errorf("status %d, body: %s", resp.StatusCode, string(body))))
			}

			if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
				return retry.Unrecoverable(apperrors.NewMalformedResponseError("GitHub", err.Error()))
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.DelayType(retry.BackOffDelay),
		retry.Delay(200*time.Millisecond),
		retry.MaxDelay(5*time.Second),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			if c.log != nil {
				c.log.Warn("Retrying GitHub request", "url", url, "attempt", n+1, "error", err.Error())
			}
		}),
	)

	return status, err
}
