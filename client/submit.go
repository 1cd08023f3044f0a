package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"sync"

	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
)

// MaxUploadBytes is the hard pre-flight cap on video uploads. Files past it
// are rejected before any request is sent.
const MaxUploadBytes = 70 << 20

// Submitter packages a local file plus metadata into a multipart request
// against the ingestion endpoint.
type Submitter struct {
	api *Client

	mu        sync.Mutex
	uploading bool
}

// NewSubmitter builds a Submitter bound to the API client.
func NewSubmitter(api *Client) (*Submitter, error) {
	if api == nil {
		return nil, fmt.Errorf("api client required")
	}
	return &Submitter{api: api}, nil
}

// Uploading reports whether a submit is in flight.
func (s *Submitter) Uploading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.uploading
}

// VideoSubmission describes one video upload.
type VideoSubmission struct {
	File        io.Reader
	FileName    string
	Title       string
	Description string

	// Size is the local file's byte size, checked against MaxUploadBytes
	// and forwarded as the originalSize form field.
	Size int64
}

type videoUploadResult struct {
	Data struct {
		ID       string `json:"id"`
		PublicID string `json:"publicId"`
	} `json:"data"`
}

type imageUploadResult struct {
	Data struct {
		PublicID string `json:"publicId"`
		URL      string `json:"url"`
	} `json:"data"`
}

// SubmitVideo uploads one video and returns the new asset's storage key. The
// uploading flag reverts on every exit path.
func (s *Submitter) SubmitVideo(ctx context.Context, sub VideoSubmission) (string, error) {
	if sub.File == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "no file selected")
	}
	if sub.Size > MaxUploadBytes {
		return "", pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file is larger than the %d byte upload limit", int64(MaxUploadBytes)))
	}

	s.setUploading(true)
	defer s.setUploading(false)

	fields := map[string]string{
		"title":        sub.Title,
		"description":  sub.Description,
		"originalSize": strconv.FormatInt(sub.Size, 10),
	}
	body, contentType, err := encodeMultipart(fields, "file", sub.FileName, sub.File)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode upload form")
	}

	var result videoUploadResult
	if err := s.post(ctx, "/api/v1/videos", contentType, body, &result); err != nil {
		return "", err
	}
	if result.Data.PublicID == "" {
		return "", pkgerrors.New(pkgerrors.CodeFormat, "upload response missing storage key")
	}
	return result.Data.PublicID, nil
}

// SubmitImage uploads one image, returning its storage key for the transform
// preview flow.
func (s *Submitter) SubmitImage(ctx context.Context, file io.Reader, fileName string) (string, error) {
	if file == nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "no file selected")
	}

	s.setUploading(true)
	defer s.setUploading(false)

	body, contentType, err := encodeMultipart(nil, "file", fileName, file)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode upload form")
	}

	var result imageUploadResult
	if err := s.post(ctx, "/api/v1/images", contentType, body, &result); err != nil {
		return "", err
	}
	if result.Data.PublicID == "" {
		return "", pkgerrors.New(pkgerrors.CodeFormat, "upload response missing storage key")
	}
	return result.Data.PublicID, nil
}

func (s *Submitter) setUploading(v bool) {
	s.mu.Lock()
	s.uploading = v
	s.mu.Unlock()
}

func (s *Submitter) post(ctx context.Context, path, contentType string, body io.Reader, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.api.endpoint(path), body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upload request")
	}
	req.Header.Set("Content-Type", contentType)
	s.api.authorize(req)

	resp, err := s.api.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "upload request failed")
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return pkgerrors.New(pkgerrors.CodeDependency,
			fmt.Sprintf("upload rejected with status %d", resp.StatusCode))
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeFormat, err, "decode upload response")
	}
	return nil
}

func encodeMultipart(fields map[string]string, fileField, fileName string, file io.Reader) (io.Reader, string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := writer.WriteField(k, v); err != nil {
			return nil, "", err
		}
	}
	part, err := writer.CreateFormFile(fileField, fileName)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", err
	}
	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}
