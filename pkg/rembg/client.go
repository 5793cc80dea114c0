package rembg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/url"
	"time"
)

const defaultTimeout = 120 * time.Second // model inference on CPU can be slow

// Client calls a rembg-compatible HTTP server: the image is uploaded as
// multipart form data and the response body is the cut-out PNG.
type Client struct {
	endpoint string
	httpc    *http.Client
}

// NewClient creates a client for the given server URL. The URL may be a
// bare host ("http://localhost:7000"); the API path is appended.
func NewClient(serverURL string) (*Client, error) {
	parsed, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL: %v", err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("unsupported URL scheme: %s (only http and https are supported)", parsed.Scheme)
	}

	base := &url.URL{Scheme: parsed.Scheme, Host: parsed.Host}
	endpoint := base.JoinPath("api", "remove").String()

	return &Client{
		endpoint: endpoint,
		httpc:    http.DefaultClient,
	}, nil
}

// Remove sends the image to the server and decodes the returned PNG.
func (c *Client) Remove(ctx context.Context, img image.Image) (image.Image, error) {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, defaultTimeout)
		defer cancel()
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", "input.png")
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if err := png.Encode(part, img); err != nil {
		return nil, fmt.Errorf("encode upload image: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("rembg request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("rembg server returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(msg))
	}

	out, _, err := image.Decode(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("decode rembg response: %w", err)
	}

	slog.Debug("background removed",
		"width", out.Bounds().Dx(), "height", out.Bounds().Dy())

	return out, nil
}
