package client

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/PriyanshuKSharma/media-storage-saas/internal/delivery"
)

// fakeScheduler collects deferred callbacks so tests can fire reverts
// deterministically.
type fakeScheduler struct {
	mu        sync.Mutex
	callbacks []func()
	delays    []time.Duration
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.delays = append(s.delays, d)
	s.callbacks = append(s.callbacks, f)
}

func (s *fakeScheduler) fireAll() {
	s.mu.Lock()
	callbacks := s.callbacks
	s.callbacks = nil
	s.mu.Unlock()
	for _, f := range callbacks {
		f()
	}
}

type fakeClipboard struct {
	texts []string
	err   error
}

func (c *fakeClipboard) WriteText(_ context.Context, text string) error {
	if c.err != nil {
		return c.err
	}
	c.texts = append(c.texts, text)
	return nil
}

type recordingStrategy struct {
	calls []string
	err   error
}

func (s *recordingStrategy) Save(_ context.Context, url, fileName string) error {
	s.calls = append(s.calls, url+"|"+fileName)
	return s.err
}

func newTestCard(t *testing.T, params CardControllerParams) *CardController {
	t.Helper()
	if params.Video.ID == "" {
		params.Video = Video{ID: "abc123", Title: "My Movie", PublicID: "uploads/abc123"}
	}
	if params.Origin == "" {
		params.Origin = "https://site.example"
	}
	if params.Resolver == nil {
		resolver, err := delivery.NewResolver("demo")
		if err != nil {
			t.Fatalf("NewResolver: %v", err)
		}
		params.Resolver = resolver
	}
	if params.Clipboard == nil {
		params.Clipboard = &fakeClipboard{}
	}
	card, err := NewCardController(params)
	if err != nil {
		t.Fatalf("NewCardController: %v", err)
	}
	return card
}

func TestShareURLShape(t *testing.T) {
	t.Parallel()

	card := newTestCard(t, CardControllerParams{})
	if got := card.ShareURL(); got != "https://site.example/video/abc123" {
		t.Errorf("ShareURL = %q", got)
	}
}

func TestShareCopiesAndReverts(t *testing.T) {
	t.Parallel()

	scheduler := &fakeScheduler{}
	clipboard := &fakeClipboard{}
	card := newTestCard(t, CardControllerParams{Clipboard: clipboard, Scheduler: scheduler})

	if err := card.Share(context.Background()); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if card.ShareStatus() != ShareCopied {
		t.Fatalf("status = %d, want copied", card.ShareStatus())
	}
	if len(clipboard.texts) != 1 || clipboard.texts[0] != "https://site.example/video/abc123" {
		t.Errorf("clipboard = %v", clipboard.texts)
	}
	if len(scheduler.delays) != 1 || scheduler.delays[0] != 2000*time.Millisecond {
		t.Errorf("revert delay = %v, want 2000ms", scheduler.delays)
	}

	scheduler.fireAll()
	if card.ShareStatus() != ShareIdle {
		t.Error("status must revert to idle")
	}
}

func TestShareClipboardFailureShowsErrorThenReverts(t *testing.T) {
	t.Parallel()

	scheduler := &fakeScheduler{}
	card := newTestCard(t, CardControllerParams{
		Clipboard: &fakeClipboard{err: errors.New("denied")},
		Scheduler: scheduler,
	})

	if err := card.Share(context.Background()); err == nil {
		t.Fatal("expected clipboard error")
	}
	if card.ShareStatus() != ShareError {
		t.Fatalf("status = %d, want error", card.ShareStatus())
	}
	scheduler.fireAll()
	if card.ShareStatus() != ShareIdle {
		t.Error("status must revert to idle after an error")
	}
}

func TestShareGuardWhileBusy(t *testing.T) {
	t.Parallel()

	scheduler := &fakeScheduler{}
	clipboard := &fakeClipboard{}
	card := newTestCard(t, CardControllerParams{Clipboard: clipboard, Scheduler: scheduler})

	if err := card.Share(context.Background()); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if err := card.Share(context.Background()); !errors.Is(err, ErrActionBusy) {
		t.Fatalf("second share err = %v, want ErrActionBusy", err)
	}
	if len(clipboard.texts) != 1 {
		t.Error("guarded share must not write the clipboard again")
	}
}

func TestDownloadUsesHandlerFirst(t *testing.T) {
	t.Parallel()

	handler := &recordingStrategy{}
	fallback := &recordingStrategy{}
	card := newTestCard(t, CardControllerParams{Handler: handler, Fallback: fallback, Scheduler: &fakeScheduler{}})

	if err := card.Download(context.Background()); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(handler.calls) != 1 {
		t.Fatalf("handler calls = %d", len(handler.calls))
	}
	if len(fallback.calls) != 0 {
		t.Error("fallback must not run when the handler succeeds")
	}
	if card.DownloadStatus() != DownloadIdle {
		t.Error("download success must return straight to idle")
	}
	want := "https://res.cloudinary.com/demo/video/upload/w_1920,h_1080/uploads/abc123|My Movie.mp4"
	if handler.calls[0] != want {
		t.Errorf("handler call = %q, want %q", handler.calls[0], want)
	}
}

func TestDownloadFileNameFallsBackWhenTitleEmpty(t *testing.T) {
	t.Parallel()

	handler := &recordingStrategy{}
	card := newTestCard(t, CardControllerParams{
		Video:     Video{ID: "v1", PublicID: "uploads/v1"},
		Handler:   handler,
		Scheduler: &fakeScheduler{},
	})

	if err := card.Download(context.Background()); err != nil {
		t.Fatalf("Download: %v", err)
	}
	want := "https://res.cloudinary.com/demo/video/upload/w_1920,h_1080/uploads/v1|video.mp4"
	if len(handler.calls) != 1 || handler.calls[0] != want {
		t.Fatalf("handler calls = %v, want [%s]", handler.calls, want)
	}
}

func TestDownloadFallsBackWhenHandlerFails(t *testing.T) {
	t.Parallel()

	handler := &recordingStrategy{err: errors.New("handler broke")}
	fallback := &recordingStrategy{}
	card := newTestCard(t, CardControllerParams{Handler: handler, Fallback: fallback, Scheduler: &fakeScheduler{}})

	if err := card.Download(context.Background()); err != nil {
		t.Fatalf("Download: %v", err)
	}
	if len(handler.calls) != 1 || len(fallback.calls) != 1 {
		t.Fatalf("calls = %d/%d, want 1/1", len(handler.calls), len(fallback.calls))
	}
	if card.DownloadStatus() != DownloadIdle {
		t.Error("fallback success must return straight to idle")
	}
}

func TestDownloadAllStrategiesFail(t *testing.T) {
	t.Parallel()

	scheduler := &fakeScheduler{}
	handler := &recordingStrategy{err: errors.New("handler broke")}
	fallback := &recordingStrategy{err: errors.New("fetch broke")}
	card := newTestCard(t, CardControllerParams{Handler: handler, Fallback: fallback, Scheduler: scheduler})

	if err := card.Download(context.Background()); err == nil {
		t.Fatal("expected an error when every strategy fails")
	}
	if card.DownloadStatus() != DownloadError {
		t.Fatalf("status = %d, want error", card.DownloadStatus())
	}
	scheduler.fireAll()
	if card.DownloadStatus() != DownloadIdle {
		t.Error("status must revert to idle")
	}
}

func TestDownloadGuardWhileBusy(t *testing.T) {
	t.Parallel()

	scheduler := &fakeScheduler{}
	handler := &recordingStrategy{err: errors.New("broke")}
	card := newTestCard(t, CardControllerParams{Handler: handler, Scheduler: scheduler})

	_ = card.Download(context.Background())
	if card.DownloadStatus() != DownloadError {
		t.Fatal("expected error status")
	}
	if err := card.Download(context.Background()); !errors.Is(err, ErrActionBusy) {
		t.Fatalf("err = %v, want ErrActionBusy", err)
	}
}

func TestActionsKeepIndependentStatusFields(t *testing.T) {
	t.Parallel()

	scheduler := &fakeScheduler{}
	handler := &recordingStrategy{err: errors.New("broke")}
	card := newTestCard(t, CardControllerParams{Handler: handler, Scheduler: scheduler})

	_ = card.Download(context.Background())
	if card.DownloadStatus() != DownloadError {
		t.Fatal("expected download error")
	}
	if card.ShareStatus() != ShareIdle {
		t.Error("download failure must not touch the share status")
	}

	if err := card.Share(context.Background()); err != nil {
		t.Fatalf("Share: %v", err)
	}
	if card.ShareStatus() != ShareCopied {
		t.Error("share must work while download shows an error")
	}
}

func TestThumbnailURLIsVideoStill(t *testing.T) {
	t.Parallel()

	card := newTestCard(t, CardControllerParams{})
	want := "https://res.cloudinary.com/demo/video/upload/w_400,h_225,c_fill,g_auto,q_auto/uploads/abc123.jpg"
	if got := card.ThumbnailURL(); got != want {
		t.Errorf("ThumbnailURL = %q, want %q", got, want)
	}
}

func TestPlayReusesHandler(t *testing.T) {
	t.Parallel()

	handler := &recordingStrategy{}
	card := newTestCard(t, CardControllerParams{Handler: handler})

	if err := card.Play(context.Background()); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if len(handler.calls) != 1 {
		t.Fatalf("handler calls = %d", len(handler.calls))
	}
	if card.DownloadStatus() != DownloadIdle || card.ShareStatus() != ShareIdle {
		t.Error("play must not touch status indicators")
	}
}
