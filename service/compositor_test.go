package service

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dropxcult-admin/preview"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
)

func basePlan() preview.RenderPlan {
	return preview.RenderPlan{
		View:      preview.ViewFront,
		Garment:   preview.GarmentTShirt,
		BaseImage: "/templates/tshirt-front.png",
		ColorMask: preview.ColorMask{Color: "#ff0000", MaskImage: "/templates/tshirt-front.png", Blend: preview.BlendMultiply},
	}
}

func TestComposeTintsTemplateAndKeepsAlpha(t *testing.T) {
	// Opaque upper half, transparent lower half
	tmpl := imaging.New(100, 100, color.NRGBA{})
	tmpl = imaging.Paste(tmpl, solid(100, 50, white), image.Pt(0, 0))

	c := NewCompositor(fakeAssets{"/templates/tshirt-front.png": tmpl})
	img, err := c.Compose(context.Background(), basePlan(), 200, 200)
	require.NoError(t, err)

	assert.Equal(t, color.NRGBA{R: 255, A: 255}, img.NRGBAAt(100, 20))
	assert.Equal(t, uint8(0), img.NRGBAAt(100, 180).A)
}

func TestComposePlacesArtworkAtScreenPoint(t *testing.T) {
	assets := fakeAssets{
		"/templates/tshirt-front.png": solid(100, 100, white),
		"art.png":                     solid(40, 40, blue),
	}
	plan := basePlan()
	plan.ColorMask.Color = "#ffffff"
	plan.ImageLayer = &preview.ImageLayer{Image: "art.png", ScreenX: 25, ScreenY: 75, Scale: 1, MaxExtent: preview.MaxImageExtent}

	img, err := NewCompositor(assets).Compose(context.Background(), plan, 200, 200)
	require.NoError(t, err)

	assert.Equal(t, blue, img.NRGBAAt(50, 150), "artwork centre")
	assert.Equal(t, white, img.NRGBAAt(100, 100), "outside artwork")
	assert.Equal(t, white, img.NRGBAAt(50, 100), "artwork is 40px tall")
}

func TestComposeClampsScaledArtwork(t *testing.T) {
	assets := fakeAssets{
		"/templates/tshirt-front.png": solid(100, 100, white),
		"art.png":                     solid(40, 40, blue),
	}
	plan := basePlan()
	plan.ColorMask.Color = "#ffffff"
	plan.ImageLayer = &preview.ImageLayer{Image: "art.png", ScreenX: 50, ScreenY: 50, Scale: 10, MaxExtent: preview.MaxImageExtent}

	img, err := NewCompositor(assets).Compose(context.Background(), plan, 200, 200)
	require.NoError(t, err)

	// 60% of 200 is 120: the art spans 40..160
	assert.Equal(t, blue, img.NRGBAAt(45, 100))
	assert.Equal(t, blue, img.NRGBAAt(155, 100))
	assert.Equal(t, white, img.NRGBAAt(35, 100))
	assert.Equal(t, white, img.NRGBAAt(165, 100))
}

func TestComposeDrawsText(t *testing.T) {
	assets := fakeAssets{"/templates/tshirt-front.png": solid(100, 100, white)}
	plan := basePlan()
	plan.ColorMask.Color = "#ffffff"

	c := NewCompositor(assets)
	without, err := c.Compose(context.Background(), plan, 300, 400)
	require.NoError(t, err)

	plan.TextLayer = &preview.TextLayer{Content: "CULT", ScreenX: 50, ScreenY: 50, FontSize: 2, RenderedSizeRem: 4, Color: "#000000", StrokeThickness: 2}
	with, err := c.Compose(context.Background(), plan, 300, 400)
	require.NoError(t, err)

	changed := 0
	for y := 150; y < 250; y++ {
		for x := 0; x < 300; x++ {
			if with.NRGBAAt(x, y) != without.NRGBAAt(x, y) {
				changed++
			}
		}
	}
	assert.Greater(t, changed, 100, "text should darken pixels around the centre")
	assert.Equal(t, without.NRGBAAt(5, 5), with.NRGBAAt(5, 5))
}

func TestComposeMissingArtworkIsError(t *testing.T) {
	plan := basePlan()
	plan.ImageLayer = &preview.ImageLayer{Image: "missing.png", ScreenX: 50, ScreenY: 50, Scale: 1, MaxExtent: 60}

	_, err := NewCompositor(fakeAssets{"/templates/tshirt-front.png": solid(10, 10, white)}).
		Compose(context.Background(), plan, 60, 80)
	assert.ErrorIs(t, err, ErrAssetNotFound)

	_, err = NewCompositor(fakeAssets{}).Compose(context.Background(), basePlan(), 60, 80)
	assert.ErrorIs(t, err, ErrAssetNotFound)
}

func TestRenderEncodesPNG(t *testing.T) {
	c := NewCompositor(fakeAssets{"/templates/tshirt-front.png": solid(30, 40, white)})
	data, err := c.Render(context.Background(), basePlan(), 60, 80)
	require.NoError(t, err)

	img, format, err := image.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, "png", format)
	assert.Equal(t, image.Rect(0, 0, 60, 80), img.Bounds())

	_, err = c.Render(context.Background(), basePlan(), 0, 80)
	assert.Error(t, err)
}

func TestContainSize(t *testing.T) {
	w, h := containSize(400, 200, 100, 100, false)
	assert.Equal(t, [2]int{100, 50}, [2]int{w, h})

	w, h = containSize(40, 20, 100, 100, false)
	assert.Equal(t, [2]int{40, 20}, [2]int{w, h})

	w, h = containSize(40, 20, 100, 100, true)
	assert.Equal(t, [2]int{100, 50}, [2]int{w, h})

	w, h = containSize(0, 20, 100, 100, true)
	assert.Zero(t, w+h)
}
