package cloudinary

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PriyanshuKSharma/media-storage-saas/pkg/config"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/enums"
	pkgerrors "github.com/PriyanshuKSharma/media-storage-saas/pkg/errors"
	"github.com/PriyanshuKSharma/media-storage-saas/pkg/logger"
)

const defaultAPIBase = "https://api.cloudinary.com/v1_1"

// videoEager requests a compressed rendition alongside the original so the
// response carries the compressed byte count.
const videoEager = "q_auto"

var (
	errCloudNameRequired = errors.New("cloudinary cloud name is required")
	errCredsRequired     = errors.New("cloudinary api key and secret are required")
	errLoggerRequired    = errors.New("cloudinary logger is required")
)

// Client wraps the media-processing service's upload API with centralized
// signing, logging, and error mapping.
type Client struct {
	httpClient *http.Client
	apiBase    string
	cloudName  string
	apiKey     string
	apiSecret  string
	folder     string
	logger     *logger.Logger
	now        func() time.Time
}

// NewClient initializes the wrapper and validates the credentials.
func NewClient(ctx context.Context, cfg config.CloudinaryConfig, logg *logger.Logger) (*Client, error) {
	if logg == nil {
		return nil, errLoggerRequired
	}
	if strings.TrimSpace(cfg.CloudName) == "" {
		return nil, errCloudNameRequired
	}
	if strings.TrimSpace(cfg.APIKey) == "" || strings.TrimSpace(cfg.APISecret) == "" {
		return nil, errCredsRequired
	}

	timeout := cfg.UploadTimeout
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}

	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiBase:    defaultAPIBase,
		cloudName:  cfg.CloudName,
		apiKey:     cfg.APIKey,
		apiSecret:  cfg.APISecret,
		folder:     cfg.Folder,
		logger:     logg,
		now:        time.Now,
	}

	logg.Info(ctx, "cloudinary client initialized")
	return c, nil
}

// UploadParams carries the per-upload fields.
type UploadParams struct {
	Kind     enums.AssetKind
	FileName string
}

// UploadResult is the subset of the upload response this service consumes.
type UploadResult struct {
	PublicID        string
	SecureURL       string
	Bytes           int64
	CompressedBytes int64
	Duration        float64
	Width           int
	Height          int
	Format          string
}

type uploadResponse struct {
	PublicID  string  `json:"public_id"`
	SecureURL string  `json:"secure_url"`
	Bytes     int64   `json:"bytes"`
	Duration  float64 `json:"duration"`
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	Format    string  `json:"format"`
	Eager     []struct {
		Bytes int64 `json:"bytes"`
	} `json:"eager"`
}

// Upload streams the file to the ingestion API and returns the stored asset's
// identity and size accounting. The service derives the compressed size; this
// client only reports it.
func (c *Client) Upload(ctx context.Context, file io.Reader, params UploadParams) (*UploadResult, error) {
	if file == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file reader is required")
	}
	if !params.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid asset kind")
	}

	fields := map[string]string{
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
		"folder":    c.folder,
	}
	if params.Kind == enums.AssetKindVideo {
		fields["eager"] = videoEager
		fields["eager_async"] = "false"
	}
	fields["signature"] = signParams(fields, c.apiSecret)
	fields["api_key"] = c.apiKey

	body, contentType, err := buildMultipart(file, params.FileName, fields)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upload payload")
	}

	endpoint := fmt.Sprintf("%s/%s/%s/upload", c.apiBase, c.cloudName, resourceType(params.Kind))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build upload request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "media service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "media service upload failed").
			WithDetails(map[string]any{"status": resp.Status, "body": strings.TrimSpace(string(snippet))})
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeFormat, err, "decode upload response")
	}
	if decoded.PublicID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeFormat, "upload response missing public id")
	}

	result := &UploadResult{
		PublicID:        decoded.PublicID,
		SecureURL:       decoded.SecureURL,
		Bytes:           decoded.Bytes,
		CompressedBytes: decoded.Bytes,
		Duration:        decoded.Duration,
		Width:           decoded.Width,
		Height:          decoded.Height,
		Format:          decoded.Format,
	}
	if len(decoded.Eager) > 0 && decoded.Eager[0].Bytes > 0 {
		result.CompressedBytes = decoded.Eager[0].Bytes
	}
	return result, nil
}

// Destroy removes the remote bytes for an asset that should no longer exist.
func (c *Client) Destroy(ctx context.Context, publicID string, kind enums.AssetKind) error {
	if strings.TrimSpace(publicID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "public id is required")
	}

	fields := map[string]string{
		"public_id": publicID,
		"timestamp": strconv.FormatInt(c.now().Unix(), 10),
	}
	fields["signature"] = signParams(fields, c.apiSecret)
	fields["api_key"] = c.apiKey

	body, contentType, err := buildMultipart(nil, "", fields)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build destroy payload")
	}

	endpoint := fmt.Sprintf("%s/%s/%s/destroy", c.apiBase, c.cloudName, resourceType(kind))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build destroy request")
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "media service unreachable")
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return pkgerrors.New(pkgerrors.CodeDependency, "media service destroy failed").
			WithDetails(map[string]any{"status": resp.Status})
	}
	return nil
}

func resourceType(kind enums.AssetKind) string {
	if kind == enums.AssetKindVideo {
		return "video"
	}
	return "image"
}

func buildMultipart(file io.Reader, fileName string, fields map[string]string) (io.Reader, string, error) {
	var buf strings.Builder
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		if value == "" {
			continue
		}
		if err := writer.WriteField(key, value); err != nil {
			return nil, "", fmt.Errorf("write field %s: %w", key, err)
		}
	}

	if file != nil {
		if fileName == "" {
			fileName = "upload"
		}
		part, err := writer.CreateFormFile("file", fileName)
		if err != nil {
			return nil, "", fmt.Errorf("create file part: %w", err)
		}
		if _, err := io.Copy(part, file); err != nil {
			return nil, "", fmt.Errorf("copy file bytes: %w", err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", fmt.Errorf("finalize multipart body: %w", err)
	}
	return strings.NewReader(buf.String()), writer.FormDataContentType(), nil
}
