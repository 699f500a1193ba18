// Package httputil provides the http client plumbing shared by
// everything that talks to the network (currently only the GitHub
// stars fetcher).
package httputil

import (
	"net/http"

	"golang.org/x/time/rate"
)

// UserAgent identifies this tool against APIs
const UserAgent = "stackctl (https://github.com/aicodingstack/stackctl)"

// New returns an http.Client with the AddHeaderTransport (setting the
// User-Agent header)
func New() *http.Client {
	return &http.Client{Transport: NewAddHeaderTransport(nil)}
}

// NewThrottled returns an http.Client that sets the User-Agent header
// and waits on the given limiter before every request
func NewThrottled(limiter *rate.Limiter) *http.Client {
	return &http.Client{
		Transport: NewAddHeaderTransport(NewThrottleTransport(nil, limiter)),
	}
}

// AddHeaderTransport sets the User-Agent header on every request
type AddHeaderTransport struct {
	T http.RoundTripper
}

func (t *AddHeaderTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") == "" {
		req.Header.Set("User-Agent", UserAgent)
	}
	return t.T.RoundTrip(req)
}

func NewAddHeaderTransport(T http.RoundTripper) *AddHeaderTransport {
	if T == nil {
		T = http.DefaultTransport
	}
	return &AddHeaderTransport{T}
}
