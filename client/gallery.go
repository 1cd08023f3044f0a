package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"

	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
)

// GalleryState is the loader's mutually exclusive UI state.
type GalleryState int

const (
	GalleryLoading GalleryState = iota
	GalleryError
	GalleryLoaded
)

func (s GalleryState) String() string {
	switch s {
	case GalleryLoading:
		return "loading"
	case GalleryError:
		return "error"
	case GalleryLoaded:
		return "loaded"
	}
	return "unknown"
}

// Gallery fetches the caller's uploaded videos. Every Load re-fetches; there
// is no caching between calls.
type Gallery struct {
	api *Client

	mu     sync.Mutex
	state  GalleryState
	errMsg string
	videos []Video
}

// NewGallery builds a Gallery bound to the API client.
func NewGallery(api *Client) (*Gallery, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Gallery{api: api, state: GalleryLoading}, nil
}

// State returns the current UI state.
func (g *Gallery) State() GalleryState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// ErrorMessage returns the failure description when State is GalleryError.
func (g *Gallery) ErrorMessage() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.errMsg
}

// Videos returns the loaded records. The slice is a copy.
func (g *Gallery) Videos() []Video {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]Video, len(g.videos))
	copy(out, g.videos)
	return out
}

// Load fetches the listing endpoint. A response that is not a JSON array is
// a format error, never an empty gallery.
func (g *Gallery) Load(ctx context.Context) error {
	g.setLoading()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.api.endpoint("/api/v1/videos"), nil)
	if err != nil {
		return g.fail(pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build listing request"))
	}
	g.api.authorize(req)

	resp, err := g.api.httpClient.Do(req)
	if err != nil {
		return g.fail(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch videos"))
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return g.fail(pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("listing rejected with status %d", resp.StatusCode)))
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return g.fail(pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read listing response"))
	}
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return g.fail(pkgerrors.New(pkgerrors.CodeFormat, "unexpected listing response format"))
	}

	var videos []Video
	if err := json.Unmarshal(trimmed, &videos); err != nil {
		return g.fail(pkgerrors.Wrap(pkgerrors.CodeFormat, err, "decode listing response"))
	}

	g.mu.Lock()
	g.state = GalleryLoaded
	g.errMsg = ""
	g.videos = videos
	g.mu.Unlock()
	return nil
}

func (g *Gallery) setLoading() {
	g.mu.Lock()
	g.state = GalleryLoading
	g.errMsg = ""
	g.videos = nil
	g.mu.Unlock()
}

func (g *Gallery) fail(err error) error {
	g.mu.Lock()
	g.state = GalleryError
	g.errMsg = "failed to load videos"
	g.mu.Unlock()
	return err
}
