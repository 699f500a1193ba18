package stars

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/aicodingstack/stackctl/internals/httputil"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

var (
	// ErrNotFound gets returned when a repository does not exist (or
	// is private)
	ErrNotFound = errors.New("repository not found")
	// ErrRateLimited gets returned when GitHub rejects the request
	// because the rate limit is exhausted
	ErrRateLimited = errors.New("GitHub API rate limit exhausted")
	// DefaultURL is the GitHub REST API base
	DefaultURL = "https://api.github.com"
)

// Client talks to the GitHub REST API. Requests are throttled with a
// fixed rate, there is no retry or backoff.
type Client struct {
	// HTTP is the internal http client
	HTTP *http.Client
	// APIUrl is the API base used. defaults to `https://api.github.com`
	APIUrl string
}

// NewClient returns a client. With a token requests are authenticated
// (5000/h instead of 60/h) and throttled faster.
func NewClient(token string) *Client {
	// unauthenticated requests get a conservative rate
	limit := rate.Limit(0.5)
	if token != "" {
		limit = rate.Limit(2)
	}

	client := httputil.NewThrottled(rate.NewLimiter(limit, 1))
	if token != "" {
		source := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		client = &http.Client{
			Transport: &oauth2.Transport{Source: source, Base: client.Transport},
		}
	}

	return &Client{HTTP: client, APIUrl: DefaultURL}
}

type repoResponse struct {
	FullName        string `json:"full_name"`
	StargazersCount int    `json:"stargazers_count"`
}

// Stars fetches the star count of "owner/repo"
func (c *Client) Stars(ctx context.Context, repo string) (int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.APIUrl+"/repos/"+repo, nil)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	res, err := c.HTTP.Do(req)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	if err := checkResponse(res); err != nil {
		return 0, errors.Wrapf(err, "fetch %s", repo)
	}

	parsed := repoResponse{}
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, err
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, errors.Wrapf(err, "parse GitHub response for %s", repo)
	}

	return parsed.StargazersCount, nil
}

func checkResponse(res *http.Response) error {
	switch {
	case res.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case res.StatusCode == http.StatusForbidden && res.Header.Get("X-Ratelimit-Remaining") == "0":
		return ErrRateLimited
	case res.StatusCode >= 200 && res.StatusCode < 400:
		return nil
	default:
		return errors.Errorf("GitHub API responded with unexpected status %s", res.Status)
	}
}
