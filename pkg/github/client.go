package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/jtran/techtree/pkg/cache"
	"github.com/jtran/techtree/pkg/errors"
	"github.com/jtran/techtree/pkg/observability"
)

const (
	apiBaseURL = "https://api.github.com"
	perPage    = 100

	// DefaultCacheTTL is how long issue listings stay fresh.
	DefaultCacheTTL = time.Hour
)

// Client fetches issues from the GitHub REST API, caching responses.
type Client struct {
	http     *http.Client
	token    string
	cache    cache.Cache
	cacheTTL time.Duration
	baseURL  string
}

// NewClient creates an API client. token may be empty for public
// repositories, subject to much lower rate limits.
func NewClient(token string, c cache.Cache, ttl time.Duration) *Client {
	if c == nil {
		c = cache.NewNullCache()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Client{
		http:     &http.Client{Timeout: 30 * time.Second},
		token:    token,
		cache:    c,
		cacheTTL: ttl,
		baseURL:  apiBaseURL,
	}
}

// apiIssue is the REST representation, which differs from the gh
// export format in field naming.
type apiIssue struct {
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	HTMLURL   string    `json:"html_url"`
	State     string    `json:"state"`
	Labels    []Label   `json:"labels"`
	UpdatedAt time.Time `json:"updated_at"`

	// Present only on pull requests returned by the issues endpoint.
	PullRequest *struct{} `json:"pull_request"`
}

func (a *apiIssue) toIssue() (Issue, error) {
	iss := Issue{
		Title:     a.Title,
		Body:      a.Body,
		URL:       a.HTMLURL,
		Labels:    a.Labels,
		UpdatedAt: a.UpdatedAt,
	}
	raw, _ := json.Marshal(a.State)
	if err := iss.State.UnmarshalJSON(raw); err != nil {
		return Issue{}, err
	}
	return iss, nil
}

// ListIssues fetches all issues for a repository, open and closed,
// following pagination. Results are cached; pass refresh to bypass
// the cache. Pull requests are included since they participate in
// dependency relations the same way issues do.
func (c *Client) ListIssues(ctx context.Context, owner, repo string, refresh bool) ([]Issue, error) {
	key := cache.Key("github:issues", c.baseURL, owner, repo)
	if !refresh {
		if data, ok, err := c.cache.Get(ctx, key); err == nil && ok {
			var issues []Issue
			if err := json.Unmarshal(data, &issues); err == nil {
				return issues, nil
			}
		}
	}

	var issues []Issue
	for page := 1; ; page++ {
		batch, err := c.listPage(ctx, owner, repo, page)
		if err != nil {
			return nil, err
		}
		for _, a := range batch {
			iss, err := a.toIssue()
			if err != nil {
				return nil, err
			}
			issues = append(issues, iss)
		}
		if len(batch) < perPage {
			break
		}
	}

	if data, err := json.Marshal(issues); err == nil {
		_ = c.cache.Set(ctx, key, data, c.cacheTTL)
	}
	return issues, nil
}

func (c *Client) listPage(ctx context.Context, owner, repo string, page int) ([]apiIssue, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/issues?state=all&per_page=%d&page=%d",
		c.baseURL, owner, repo, perPage, page)

	var batch []apiIssue
	err := cache.RetryWithBackoff(ctx, func() error {
		var err error
		batch, err = c.fetchPage(ctx, url)
		return err
	})
	return batch, err
}

func (c *Client) fetchPage(ctx context.Context, url string) ([]apiIssue, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "build request")
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	observability.HTTP().OnRequest(ctx, http.MethodGet, url)
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		observability.HTTP().OnError(ctx, http.MethodGet, url, err)
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, err, "request cancelled")
		}
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "request GitHub API"))
	}
	defer resp.Body.Close()
	observability.HTTP().OnResponse(ctx, http.MethodGet, url, resp.StatusCode, time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		// fall through to decode
	case resp.StatusCode == http.StatusNotFound:
		return nil, errors.New(errors.ErrCodeNotFound, "repository not found, check the owner/repo spelling")
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, errors.New(errors.ErrCodeUnauthorized, "authentication failed, check GITHUB_TOKEN")
	case resp.StatusCode == http.StatusForbidden || resp.StatusCode == http.StatusTooManyRequests:
		return nil, rateLimitError(resp)
	case resp.StatusCode >= 500:
		return nil, cache.Retryable(errors.New(errors.ErrCodeNetwork,
			"GitHub API returned %d", resp.StatusCode))
	default:
		return nil, errors.New(errors.ErrCodeNetwork,
			"GitHub API returned %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, cache.Retryable(errors.Wrap(errors.ErrCodeNetwork, err, "read response"))
	}
	var batch []apiIssue
	if err := json.Unmarshal(body, &batch); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "decode GitHub API response")
	}
	return batch, nil
}

func rateLimitError(resp *http.Response) error {
	retryAfter := 60
	if s := resp.Header.Get("Retry-After"); s != "" {
		if secs, err := strconv.Atoi(s); err == nil {
			retryAfter = secs
		}
	} else if s := resp.Header.Get("X-RateLimit-Reset"); s != "" {
		if unix, err := strconv.ParseInt(s, 10, 64); err == nil {
			if until := time.Until(time.Unix(unix, 0)); until > 0 {
				retryAfter = int(until / time.Second)
			}
		}
	}
	return &errors.RateLimitedError{
		RetryAfter: retryAfter,
		Message:    "GitHub API rate limit exceeded",
	}
}
