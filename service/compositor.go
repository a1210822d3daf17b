package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
	log "github.com/sirupsen/logrus"

	"dropxcult-admin/preview"
	"dropxcult-admin/utils"
)

// Compositor renders a RenderPlan to a PNG, reproducing the console's layered preview
type Compositor struct {
	assets AssetStore
}

// NewCompositor creates a Compositor that loads images through assets
func NewCompositor(assets AssetStore) *Compositor {
	return &Compositor{assets: assets}
}

// Render draws the plan on a transparent width×height canvas: base template, colour mask,
// artwork and text, bottom to top. A missing or undecodable image is an error.
func (c *Compositor) Render(ctx context.Context, plan preview.RenderPlan, width, height int) ([]byte, error) {
	img, err := c.Compose(ctx, plan, width, height)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}
	log.Debugf("🖼️  Rendered %s/%s preview: %d bytes", plan.Garment, plan.View, buf.Len())
	return buf.Bytes(), nil
}

// Compose is Render without the PNG encoding
func (c *Compositor) Compose(ctx context.Context, plan preview.RenderPlan, width, height int) (*image.NRGBA, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid preview size %dx%d", width, height)
	}
	dst := imaging.New(width, height, color.NRGBA{})

	// Base template, object-contain and centred
	base, err := c.assets.Open(ctx, plan.BaseImage)
	if err != nil {
		return nil, fmt.Errorf("base template %s: %w", plan.BaseImage, err)
	}
	bw, bh := containSize(base.Bounds().Dx(), base.Bounds().Dy(), width, height, true)
	base = imaging.Resize(base, bw, bh, imaging.Lanczos)
	basePos := image.Pt((width-bw)/2, (height-bh)/2)
	dst = imaging.Overlay(dst, base, basePos, 1.0)

	// Colour mask: the template tinted by multiply, clipped to its own alpha
	tint, err := utils.ParseHexColor(plan.ColorMask.Color)
	if err != nil {
		log.Warnf("⚠️  Compositor: %v, leaving the template untinted", err)
		tint = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	}
	dst = imaging.Overlay(dst, multiply(base, tint), basePos, 1.0)

	if layer := plan.ImageLayer; layer != nil {
		art, err := c.assets.Open(ctx, layer.Image)
		if err != nil {
			return nil, fmt.Errorf("%s artwork: %w", plan.View, err)
		}
		maxW := int(float64(width) * layer.MaxExtent / 100)
		maxH := int(float64(height) * layer.MaxExtent / 100)

		aw, ah := containSize(art.Bounds().Dx(), art.Bounds().Dy(), maxW, maxH, false)
		aw, ah = int(float64(aw)*layer.Scale), int(float64(ah)*layer.Scale)
		aw, ah = containSize(aw, ah, maxW, maxH, false)
		if aw > 0 && ah > 0 {
			art = imaging.Resize(art, aw, ah, imaging.Lanczos)
			center := screenPoint(layer.ScreenX, layer.ScreenY, width, height)
			dst = imaging.Overlay(dst, art, center.Sub(image.Pt(aw/2, ah/2)), 1.0)
		}
	}

	if layer := plan.TextLayer; layer != nil {
		fill, err := utils.ParseHexColor(layer.Color)
		if err != nil {
			log.Warnf("⚠️  Compositor: %v, using black text", err)
			fill = color.NRGBA{A: 255}
		}
		text, err := rasterizeText(layer, fill, width, height)
		if err != nil {
			return nil, err
		}
		dst = imaging.Overlay(dst, text, image.Pt(0, 0), 1.0)
	}

	return dst, nil
}

// containSize scales (w, h) to fit inside (maxW, maxH) keeping the aspect ratio.
// Without upscale, sizes already inside the box are returned unchanged.
func containSize(w, h, maxW, maxH int, upscale bool) (int, int) {
	if w <= 0 || h <= 0 {
		return 0, 0
	}
	ratio := min(float64(maxW)/float64(w), float64(maxH)/float64(h))
	if ratio >= 1 && !upscale {
		return w, h
	}
	nw, nh := int(float64(w)*ratio+0.5), int(float64(h)*ratio+0.5)
	return max(nw, 1), max(nh, 1)
}

func screenPoint(xPct, yPct float64, width, height int) image.Point {
	return image.Pt(int(xPct/100*float64(width)+0.5), int(yPct/100*float64(height)+0.5))
}

// multiply tints every pixel by c and keeps the source alpha
func multiply(img image.Image, c color.NRGBA) *image.NRGBA {
	return imaging.AdjustFunc(img, func(px color.NRGBA) color.NRGBA {
		return color.NRGBA{
			R: uint8(uint16(px.R) * uint16(c.R) / 255),
			G: uint8(uint16(px.G) * uint16(c.G) / 255),
			B: uint8(uint16(px.B) * uint16(c.B) / 255),
			A: px.A,
		}
	})
}
