package client

import (
	"fmt"
	"sync"

	"github.com/PriyanshuKSharma/media-storage-saas/internal/delivery"
)

// TransformSelector holds the chosen social output profile for one uploaded
// image and tracks whether the derived render has confirmed loading. Each
// profile change bumps a generation counter; only the completion signal for
// the latest generation clears the pending flag, so a stale render finishing
// late cannot unmask a newer one.
type TransformSelector struct {
	resolver *delivery.Resolver

	mu            sync.Mutex
	publicID      string
	profile       delivery.Profile
	renderPending bool
	generation    uint64
}

// NewTransformSelector builds a selector starting on the default profile.
func NewTransformSelector(resolver *delivery.Resolver) (*TransformSelector, error) {
	if resolver == nil {
		return nil, fmt.Errorf("delivery resolver required")
	}
	return &TransformSelector{
		resolver: resolver,
		profile:  delivery.DefaultProfile(),
	}, nil
}

// SetAsset points the selector at a freshly uploaded image and re-triggers
// the current profile's render.
func (t *TransformSelector) SetAsset(publicID string) (string, uint64) {
	t.mu.Lock()
	t.publicID = publicID
	profile := t.profile
	t.mu.Unlock()
	return t.Select(profile)
}

// Select chooses a profile and recomputes the delivery URL. Selecting the
// already-current profile is valid and re-triggers the render. The returned
// generation must accompany the matching RenderLoaded call.
func (t *TransformSelector) Select(profile delivery.Profile) (string, uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.profile = profile
	if t.publicID == "" {
		return "", t.generation
	}
	t.generation++
	t.renderPending = true
	return t.resolver.ProfileURL(t.publicID, profile), t.generation
}

// RenderLoaded reports that the render requested with the given generation
// finished loading. Signals for superseded generations are ignored.
func (t *TransformSelector) RenderLoaded(generation uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if generation == t.generation {
		t.renderPending = false
	}
}

// RenderPending reports whether the latest requested render is still loading.
func (t *TransformSelector) RenderPending() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.renderPending
}

// Profile returns the currently selected profile.
func (t *TransformSelector) Profile() delivery.Profile {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile
}

// CurrentURL recomputes the delivery URL for the current asset and profile
// without touching the pending state.
func (t *TransformSelector) CurrentURL() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.publicID == "" {
		return ""
	}
	return t.resolver.ProfileURL(t.publicID, t.profile)
}

// DownloadEnabled reports whether the rendered image may be saved: an asset
// is present and its latest render has finished loading.
func (t *TransformSelector) DownloadEnabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.publicID != "" && !t.renderPending
}

// DownloadFileName is the save name for the current profile.
func (t *TransformSelector) DownloadFileName() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.DownloadFileName()
}
