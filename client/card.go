package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/PriyanshuKSharma/media-storage-saas/internal/delivery"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
)

// ShareStatus is the share action's transient indicator.
type ShareStatus int

const (
	ShareIdle ShareStatus = iota
	ShareCopied
	ShareError
)

// DownloadStatus is the download action's transient indicator.
type DownloadStatus int

const (
	DownloadIdle DownloadStatus = iota
	Downloading
	DownloadError
)

// statusRevertDelay is how long a terminal indicator stays visible before
// the card returns to idle.
const statusRevertDelay = 2000 * time.Millisecond

// ErrActionBusy is returned when an action is invoked while its indicator is
// not idle.
var ErrActionBusy = fmt.Errorf("action unavailable while busy")

// CardController is the per-video view-state machine behind one gallery
// card. Its two async actions keep independent status fields, so invoking
// one never blocks or recolors the other.
type CardController struct {
	video     Video
	origin    string
	resolver  *delivery.Resolver
	clipboard Clipboard
	handler   DownloadStrategy
	fallback  DownloadStrategy
	scheduler Scheduler

	mu             sync.Mutex
	shareStatus    ShareStatus
	downloadStatus DownloadStatus
}

// CardControllerParams configure a CardController.
type CardControllerParams struct {
	Video    Video
	Origin   string
	Resolver *delivery.Resolver

	// Clipboard backs the share action. Required.
	Clipboard Clipboard

	// Handler is the externally provided save/open action tried first for
	// download and play. Optional.
	Handler DownloadStrategy

	// Fallback runs when Handler is absent or fails. Optional.
	Fallback DownloadStrategy

	Scheduler Scheduler
}

// NewCardController builds the state machine for one asset record.
func NewCardController(params CardControllerParams) (*CardController, error) {
	if params.Video.PublicID == "" {
		return nil, fmt.Errorf("video storage key required")
	}
	if params.Origin == "" {
		return nil, fmt.Errorf("origin required")
	}
	if params.Resolver == nil {
		return nil, fmt.Errorf("delivery resolver required")
	}
	if params.Clipboard == nil {
		return nil, fmt.Errorf("clipboard required")
	}
	scheduler := params.Scheduler
	if scheduler == nil {
		scheduler = realScheduler{}
	}
	return &CardController{
		video:     params.Video,
		origin:    strings.TrimRight(params.Origin, "/"),
		resolver:  params.Resolver,
		clipboard: params.Clipboard,
		handler:   params.Handler,
		fallback:  params.Fallback,
		scheduler: scheduler,
	}, nil
}

// Video returns the record this card renders.
func (c *CardController) Video() Video {
	return c.video
}

// ShareStatus returns the share indicator.
func (c *CardController) ShareStatus() ShareStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shareStatus
}

// DownloadStatus returns the download indicator.
func (c *CardController) DownloadStatus() DownloadStatus {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.downloadStatus
}

// ShareURL joins the viewer origin with the asset's canonical path.
func (c *CardController) ShareURL() string {
	return c.origin + "/video/" + c.video.ID
}

// ThumbnailURL is the card preview image, a still frame for videos.
func (c *CardController) ThumbnailURL() string {
	return c.resolver.ThumbnailURL(c.video.PublicID, enums.AssetKindVideo)
}

// FullURL is the full-resolution delivery URL used by download and play.
func (c *CardController) FullURL() string {
	return c.resolver.FullURL(c.video.PublicID, enums.AssetKindVideo)
}

// Share writes the share URL to the clipboard. The indicator shows copied or
// error, then reverts to idle after the fixed delay. While the indicator is
// not idle the action is disabled.
func (c *CardController) Share(ctx context.Context) error {
	c.mu.Lock()
	if c.shareStatus != ShareIdle {
		c.mu.Unlock()
		return ErrActionBusy
	}
	c.mu.Unlock()

	err := c.clipboard.WriteText(ctx, c.ShareURL())

	c.mu.Lock()
	if err != nil {
		c.shareStatus = ShareError
	} else {
		c.shareStatus = ShareCopied
	}
	c.mu.Unlock()

	c.scheduler.AfterFunc(statusRevertDelay, func() {
		c.mu.Lock()
		c.shareStatus = ShareIdle
		c.mu.Unlock()
	})
	return err
}

// Download saves the full-resolution asset. The provided handler is tried
// first, then the fallback; success returns the indicator straight to idle,
// failure of every strategy shows an error that reverts after the fixed
// delay.
func (c *CardController) Download(ctx context.Context) error {
	c.mu.Lock()
	if c.downloadStatus != DownloadIdle {
		c.mu.Unlock()
		return ErrActionBusy
	}
	c.downloadStatus = Downloading
	c.mu.Unlock()

	title := c.video.Title
	if title == "" {
		title = "video"
	}
	fileName := title + ".mp4"
	err := runStrategies(ctx, []DownloadStrategy{c.handler, c.fallback}, c.FullURL(), fileName)

	c.mu.Lock()
	if err != nil {
		c.downloadStatus = DownloadError
		c.mu.Unlock()
		c.scheduler.AfterFunc(statusRevertDelay, func() {
			c.mu.Lock()
			c.downloadStatus = DownloadIdle
			c.mu.Unlock()
		})
		return err
	}
	c.downloadStatus = DownloadIdle
	c.mu.Unlock()
	return nil
}

// Play hands the full-resolution URL to the provided handler. It is a
// deliberate reuse of the download pathway; no playback state is modeled
// and no indicator changes.
func (c *CardController) Play(ctx context.Context) error {
	if c.handler == nil {
		return fmt.Errorf("no playback handler provided")
	}
	return c.handler.Save(ctx, c.FullURL(), c.video.Title+".mp4")
}
