package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
)

func newTestSubmitter(t *testing.T, server *httptest.Server) *Submitter {
	t.Helper()
	api, err := New(Options{BaseURL: server.URL, Token: "token", HTTPClient: server.Client()})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	submitter, err := NewSubmitter(api)
	if err != nil {
		t.Fatalf("NewSubmitter: %v", err)
	}
	return submitter
}

func TestSubmitVideoSuccess(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/videos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer token" {
			t.Errorf("authorization = %q", got)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.FormValue("title") != "My Movie" {
			t.Errorf("title = %q", r.FormValue("title"))
		}
		if r.FormValue("originalSize") != "1000" {
			t.Errorf("originalSize = %q", r.FormValue("originalSize"))
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data": {"id": "v1", "publicId": "uploads/v1"}}`))
	}))
	defer server.Close()

	submitter := newTestSubmitter(t, server)
	key, err := submitter.SubmitVideo(context.Background(), VideoSubmission{
		File:        strings.NewReader("video-bytes"),
		FileName:    "movie.mp4",
		Title:       "My Movie",
		Description: "a clip",
		Size:        1000,
	})
	if err != nil {
		t.Fatalf("SubmitVideo: %v", err)
	}
	if key != "uploads/v1" {
		t.Errorf("storage key = %q", key)
	}
	if submitter.Uploading() {
		t.Error("uploading flag must reset after success")
	}
}

func TestSubmitVideoOversizedNeverSendsRequest(t *testing.T) {
	t.Parallel()

	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	submitter := newTestSubmitter(t, server)
	_, err := submitter.SubmitVideo(context.Background(), VideoSubmission{
		File:  strings.NewReader("x"),
		Title: "big",
		Size:  MaxUploadBytes + 1,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	if requests.Load() != 0 {
		t.Error("oversized file must be rejected before any network call")
	}
	if submitter.Uploading() {
		t.Error("uploading flag must stay false")
	}
}

func TestSubmitVideoExactlyAtCapIsSent(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"publicId": "uploads/v1"}}`))
	}))
	defer server.Close()

	submitter := newTestSubmitter(t, server)
	if _, err := submitter.SubmitVideo(context.Background(), VideoSubmission{
		File:  strings.NewReader("x"),
		Title: "edge",
		Size:  MaxUploadBytes,
	}); err != nil {
		t.Fatalf("a file exactly at the cap must upload: %v", err)
	}
}

func TestSubmitVideoServerErrorResetsUploading(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer server.Close()

	submitter := newTestSubmitter(t, server)
	_, err := submitter.SubmitVideo(context.Background(), VideoSubmission{
		File:  strings.NewReader("x"),
		Title: "doomed",
		Size:  10,
	})
	if err == nil {
		t.Fatal("expected an error")
	}
	if submitter.Uploading() {
		t.Error("uploading flag must reset on failure")
	}
}

func TestSubmitVideoMalformedResponse(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {}}`))
	}))
	defer server.Close()

	submitter := newTestSubmitter(t, server)
	_, err := submitter.SubmitVideo(context.Background(), VideoSubmission{
		File:  strings.NewReader("x"),
		Title: "x",
		Size:  10,
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeFormat {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestSubmitImageReturnsStorageKey(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/images" {
			t.Errorf("path = %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"data": {"publicId": "uploads/img1"}}`))
	}))
	defer server.Close()

	submitter := newTestSubmitter(t, server)
	key, err := submitter.SubmitImage(context.Background(), strings.NewReader("png"), "photo.png")
	if err != nil {
		t.Fatalf("SubmitImage: %v", err)
	}
	if key != "uploads/img1" {
		t.Errorf("storage key = %q", key)
	}
}

func TestSubmitVideoRequiresFile(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer server.Close()

	submitter := newTestSubmitter(t, server)
	if _, err := submitter.SubmitVideo(context.Background(), VideoSubmission{Title: "x", Size: 1}); err == nil {
		t.Fatal("expected error for missing file")
	}
}
