package adapters

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "github.com/dnishkina/trustscore/internal/errors"
	"github.com/dnishkina/trustscore/internal/monitoring"
)

// RegistryClient resolves npm package links to their canonical GitHub
// repository URL. Links that are not npm package pages pass through
// unchanged; the URL resolver downstream only ever parses normalized
// links.
type RegistryClient struct {
	baseURL string
	http    *http.Client
	metrics *monitoring.Metrics
}

// NewRegistryClient creates an npm registry client.
func NewRegistryClient(baseURL string, timeout time.Duration, metrics *monitoring.Metrics) *RegistryClient {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &RegistryClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		metrics: metrics,
	}
}

type packagePayload struct {
	Repository struct {
		URL string `json:"url"`
	} `json:"repository"`
}

// NormalizeLink maps an npmjs.com package page to the package's source
// repository URL. Any other link is returned as-is.
func (c *RegistryClient) NormalizeLink(ctx context.Context, raw string) (string, error) {
	pkg, ok := packageName(raw)
	if !ok {
		return raw, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet,
		fmt.Sprintf("%s/%s", c.baseURL, url.PathEscape(pkg)), nil)
	if err != nil {
		return "", apperrors.NewInternalError("failed to build registry request", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "trustscore/1.0")

	resp, err := c.http.Do(req)
	if c.metrics != nil {
		c.metrics.IncrementRegistryCalls()
	}
	if err != nil {
		return "", apperrors.NewNetworkError("npm registry request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewExternalAPIError("npm registry", fmt.Errorf("status %d for package %s", resp.StatusCode, pkg))
	}

	var payload packagePayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", apperrors.NewMalformedResponseError("npm registry", err.Error())
	}
	if payload.Repository.URL == "" {
		return "", apperrors.NewMalformedResponseError("npm registry", fmt.Sprintf("package %s has no repository URL", pkg))
	}

	return canonicalRepoURL(payload.Repository.URL), nil
}

// packageName extracts the package name from an npmjs.com package page
// link, including scoped packages.
func packageName(raw string) (string, bool) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	host := strings.TrimPrefix(u.Hostname(), "www.")
	if host != "npmjs.com" {
		return "", false
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) < 2 || parts[0] != "package" {
		return "", false
	}

	name := strings.Join(parts[1:], "/")
	if name == "" {
		return "", false
	}
	return name, true
}

// canonicalRepoURL converts registry repository URLs such as
// "git+https://github.com/owner/name.git" or "git://github.com/owner/name"
// into a plain https URL.
func canonicalRepoURL(repoURL string) string {
	s := strings.TrimPrefix(repoURL, "git+")
	s = strings.TrimSuffix(s, ".git")
	s = strings.TrimPrefix(s, "git://")
	s = strings.TrimPrefix(s, "ssh://git@")

	if !strings.HasPrefix(s, "http://") && !strings.HasPrefix(s, "https://") {
		s = "https://" + s
	}
	return strings.Replace(s, "http://", "https://", 1)
}
