// Package artwork resolves remote artwork URLs into file:// URLs that
// desktop shells can load: images are downloaded over HTTP, downscaled
// to a lock-screen-appropriate size and cached on disk.
package artwork

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"image"
	_ "image/gif" // GIF format support
	"image/jpeg"
	_ "image/png" // PNG format support
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/mister-ben/mediasessiond/internal/domain"
	"go.uber.org/zap"
)

const (
	_maxImageSize = 10 * 1024 * 1024 // 10 MB
	_maxEdge      = 512              // largest edge of the cached image
)

// Resolver implements domain.ArtResolver with an HTTP fetch, an
// imaging-based downscale and an on-disk cache keyed by URL hash.
type Resolver struct {
	logger   *zap.Logger
	client   *http.Client
	cacheDir string
}

var _ domain.ArtResolver = (*Resolver)(nil)

// NewResolver creates an artwork resolver caching under the configured
// directory
func NewResolver(logger *zap.Logger, cfg domain.Config) *Resolver {
	return &Resolver{
		logger:   logger,
		cacheDir: cfg.GetCacheDir(),
		client: &http.Client{
			Timeout: 10 * time.Second, // Essential to prevent blocking the daemon
		},
	}
}

// Resolve returns a locally-loadable URL for the given artwork URL.
// Non-HTTP URLs (file paths, file:// URLs) pass through untouched.
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (string, error) {
	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return rawURL, nil
	}

	cachePath := filepath.Join(r.cacheDir, fmt.Sprintf("%x.jpg", sha1.Sum([]byte(rawURL))))
	if _, err := os.Stat(cachePath); err == nil {
		r.logger.Debug("artwork cache hit", zap.String("url", rawURL))
		return "file://" + cachePath, nil
	}

	data, err := r.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}

	scaled, err := downscale(data)
	if err != nil {
		return "", fmt.Errorf("failed to decode artwork: %w", err)
	}

	if err := os.MkdirAll(r.cacheDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create cache dir: %w", err)
	}
	if err := os.WriteFile(cachePath, scaled, 0o644); err != nil {
		return "", fmt.Errorf("failed to write cache file: %w", err)
	}

	r.logger.Debug("artwork cached",
		zap.String("url", rawURL),
		zap.String("path", cachePath),
		zap.Int("bytes", len(scaled)))
	return "file://" + cachePath, nil
}

// fetch downloads the image data from the given URL
func (r *Resolver) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", "mediasessiond/1.0")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if !strings.HasPrefix(resp.Header.Get("Content-Type"), "image/") {
		return nil, fmt.Errorf("url is not an image: %s", resp.Header.Get("Content-Type"))
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, _maxImageSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return data, nil
}

// downscale fits the image within the maximum edge length and re-encodes
// it as JPEG. Images already small enough are only re-encoded.
func downscale(data []byte) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	if bounds.Dx() > _maxEdge || bounds.Dy() > _maxEdge {
		img = imaging.Fit(img, _maxEdge, _maxEdge, imaging.Lanczos)
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	return buf.Bytes(), nil
}
