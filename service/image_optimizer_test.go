package service

import (
	"bytes"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOptimizeImageResizesAndEncodesJPEG(t *testing.T) {
	src := imaging.New(1200, 600, color.NRGBA{R: 200, A: 255})

	data, err := OptimizeImage(src, "thumb")
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestOptimizeImageKeepsSmallImages(t *testing.T) {
	data, err := OptimizeImage(imaging.New(120, 90, color.NRGBA{}), "medium")
	require.NoError(t, err)

	img, _, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, 120, img.Bounds().Dx())

	// Transparent pixels are flattened onto white
	r, g, b, _ := img.At(60, 45).RGBA()
	assert.Greater(t, r>>8, uint32(240))
	assert.Greater(t, g>>8, uint32(240))
	assert.Greater(t, b>>8, uint32(240))
}

func TestThumbnailCacheRoundTrip(t *testing.T) {
	cache, err := NewThumbnailCache(filepath.Join(t.TempDir(), "cache"))
	require.NoError(t, err)

	path := cache.Path("cd/../1", "front", "thumb")
	assert.Equal(t, "custom_design_cd_1_front_thumb.jpg", filepath.Base(path))

	_, ok := cache.Read(path)
	assert.False(t, ok)

	require.NoError(t, cache.Save(path, []byte("jpeg")))
	data, ok := cache.Read(path)
	require.True(t, ok)
	assert.Equal(t, []byte("jpeg"), data)
}

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, "thumb", NormalizeSize(""))
	assert.Equal(t, "thumb", NormalizeSize(" Thumb "))
	assert.Equal(t, "medium", NormalizeSize("medium"))
	assert.Equal(t, "medium", NormalizeSize("../../etc"))
	assert.Equal(t, "medium", NormalizeSize("xxl"))
}
