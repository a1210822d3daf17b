package service

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"
)

const (
	// Quality settings
	qualityThumb  = 60
	qualityMedium = 75
	// Size settings (max dimension)
	maxSizeThumb  = 300
	maxSizeMedium = 800
)

var unsafeCacheChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// ThumbnailCache stores optimized JPEG renditions of design artwork on disk
type ThumbnailCache struct {
	dir string
}

// NewThumbnailCache creates a ThumbnailCache rooted at dir, creating it if needed
func NewThumbnailCache(dir string) (*ThumbnailCache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &ThumbnailCache{dir: dir}, nil
}

// Path returns the cache file path for a design view and size
func (c *ThumbnailCache) Path(designID, view, size string) string {
	filename := fmt.Sprintf("custom_design_%s_%s_%s.jpg",
		unsafeCacheChars.ReplaceAllString(designID, "_"),
		unsafeCacheChars.ReplaceAllString(view, "_"),
		unsafeCacheChars.ReplaceAllString(size, "_"))
	return filepath.Join(c.dir, filename)
}

// Read returns the cached image, or ok=false when it is not cached
func (c *ThumbnailCache) Read(cachePath string) (data []byte, ok bool) {
	data, err := os.ReadFile(cachePath)
	if err != nil {
		return nil, false
	}
	return data, true
}

// Save writes an image to the cache
func (c *ThumbnailCache) Save(cachePath string, imageData []byte) error {
	if err := os.MkdirAll(filepath.Dir(cachePath), 0755); err != nil {
		return fmt.Errorf("failed to create cache directory: %w", err)
	}
	if err := os.WriteFile(cachePath, imageData, 0644); err != nil {
		return fmt.Errorf("failed to write to cache: %w", err)
	}

	log.Debugf("✓ Image cached: %s", cachePath)
	return nil
}

// NormalizeSize maps a requested size onto a preset: empty means "thumb",
// anything unknown means "medium"
func NormalizeSize(size string) string {
	switch strings.ToLower(strings.TrimSpace(size)) {
	case "", "thumb":
		return "thumb"
	default:
		return "medium"
	}
}

// OptimizeImage converts an image to JPEG bounded by the size preset
// size: "thumb" or "medium"
// Transparent areas are flattened onto white.
func OptimizeImage(img image.Image, size string) ([]byte, error) {
	var maxDim, quality int
	switch size {
	case "thumb":
		maxDim = maxSizeThumb
		quality = qualityThumb
	case "medium":
		maxDim = maxSizeMedium
		quality = qualityMedium
	default:
		maxDim = maxSizeMedium
		quality = qualityMedium
		log.Warnf("⚠️  Unknown size '%s', defaulting to medium", size)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxDim || height > maxDim {
		log.Debugf("🔄 Resizing image: %dx%d -> fit %d", width, height, maxDim)
		img = imaging.Fit(img, maxDim, maxDim, imaging.Lanczos)
	}

	flat := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), image.White)
	flat = imaging.Overlay(flat, img, image.Pt(0, 0), 1.0)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, flat, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}

	log.Debugf("✓ Image optimized: size=%s, quality=%d, output_size=%d bytes", size, quality, buf.Len())
	return buf.Bytes(), nil
}
