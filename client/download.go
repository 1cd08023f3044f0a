package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
)

// DownloadStrategy is one way to save a delivery URL locally. Strategies are
// attempted in order; the next runs only on explicit failure of the previous.
type DownloadStrategy interface {
	Save(ctx context.Context, url, fileName string) error
}

// DownloadFunc adapts a function to DownloadStrategy, used for the
// caller-provided handler that is tried first.
type DownloadFunc func(ctx context.Context, url, fileName string) error

func (f DownloadFunc) Save(ctx context.Context, url, fileName string) error {
	return f(ctx, url, fileName)
}

// runStrategies tries each strategy in order and returns nil on the first
// success. All failures are folded into the returned error.
func runStrategies(ctx context.Context, strategies []DownloadStrategy, url, fileName string) error {
	var lastErr error
	for _, strategy := range strategies {
		if strategy == nil {
			continue
		}
		if err := strategy.Save(ctx, url, fileName); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		return pkgerrors.New(pkgerrors.CodeInternal, "no download strategy available")
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, lastErr, "all download strategies failed")
}

const defaultCleanupDelay = 30 * time.Second

// FetchStrategy downloads the URL into a temp file, invokes a save action on
// it, and removes the temp file after a bounded delay. The delay is not tied
// to the save action's actual completion.
type FetchStrategy struct {
	httpClient   *http.Client
	dir          string
	save         func(path string) error
	scheduler    Scheduler
	cleanupDelay time.Duration
}

// FetchStrategyOptions configure a FetchStrategy.
type FetchStrategyOptions struct {
	HTTPClient *http.Client

	// Dir receives the temp files; defaults to the OS temp dir.
	Dir string

	// Save hands the fetched file to the surrounding platform (move into a
	// downloads folder, open a save dialog). Required.
	Save func(path string) error

	Scheduler    Scheduler
	CleanupDelay time.Duration
}

// NewFetchStrategy builds the fallback strategy used when the provided
// handler fails.
func NewFetchStrategy(opts FetchStrategyOptions) (*FetchStrategy, error) {
	if opts.Save == nil {
		return nil, fmt.Errorf("save action required")
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	dir := opts.Dir
	if dir == "" {
		dir = os.TempDir()
	}
	scheduler := opts.Scheduler
	if scheduler == nil {
		scheduler = realScheduler{}
	}
	cleanupDelay := opts.CleanupDelay
	if cleanupDelay <= 0 {
		cleanupDelay = defaultCleanupDelay
	}
	return &FetchStrategy{
		httpClient:   httpClient,
		dir:          dir,
		save:         opts.Save,
		scheduler:    scheduler,
		cleanupDelay: cleanupDelay,
	}, nil
}

func (s *FetchStrategy) Save(ctx context.Context, url, fileName string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build fetch request: %w", err)
	}
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetch media: %w", err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("fetch media: status %d", resp.StatusCode)
	}

	tmp, err := os.CreateTemp(s.dir, "download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("write media: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("close temp file: %w", err)
	}

	target := tmp.Name()
	if fileName != "" {
		renamed := filepath.Join(s.dir, fileName)
		if err := os.Rename(target, renamed); err == nil {
			target = renamed
		}
	}

	if err := s.save(target); err != nil {
		_ = os.Remove(target)
		return fmt.Errorf("save action: %w", err)
	}

	s.scheduler.AfterFunc(s.cleanupDelay, func() {
		_ = os.Remove(target)
	})
	return nil
}
