// Package client is the viewer-side SDK for the media hosting API. It holds
// the upload, gallery, and per-card presentation state machines that a UI
// binds to.
package client

import (
	"fmt"
	"net/http"
	"strings"
	"time"
)

const defaultRequestTimeout = 2 * time.Minute

// Client carries the connection details shared by the SDK components.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// Options configure a Client.
type Options struct {
	// BaseURL is the API origin, e.g. "https://api.example.com".
	BaseURL string

	// Token is the bearer token attached to every request.
	Token string

	// HTTPClient overrides the default client. Uploads are long-lived, so
	// the default timeout is generous.
	HTTPClient *http.Client
}

// New builds a Client.
func New(opts Options) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("base url required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultRequestTimeout}
	}
	return &Client{
		baseURL:    baseURL,
		token:      opts.Token,
		httpClient: httpClient,
	}, nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL + path
}

func (c *Client) authorize(req *http.Request) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
}
