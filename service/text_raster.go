package service

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"sync"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"golang.org/x/image/font/gofont/gobold"

	"dropxcult-admin/preview"
)

const (
	// remPx is the CSS root font size the console renders rem against
	remPx = 16.0
	// mmToPt converts canvas millimetres to font points; the raster is drawn at 1px per mm
	mmToPt = 72.0 / 25.4
	// outlineSteps is the number of offset copies used to fake a text stroke
	outlineSteps = 16
)

var (
	textFamilyOnce sync.Once
	textFamily     *canvas.FontFamily
	textFamilyErr  error
)

// loadTextFamily loads the bundled bold sans face once per process
func loadTextFamily() (*canvas.FontFamily, error) {
	textFamilyOnce.Do(func() {
		family := canvas.NewFontFamily("dropxcult-bold")
		if err := family.LoadFont(gobold.TTF, 0, canvas.FontRegular); err != nil {
			textFamilyErr = fmt.Errorf("failed to load text font: %w", err)
			return
		}
		textFamily = family
	})
	return textFamily, textFamilyErr
}

// rasterizeText draws the text layer on a transparent width×height image. The text is
// centred on its screen point and outlined in its own colour.
func rasterizeText(layer *preview.TextLayer, fill color.NRGBA, width, height int) (*image.RGBA, error) {
	family, err := loadTextFamily()
	if err != nil {
		return nil, err
	}

	sizePx := layer.RenderedSizeRem * remPx
	face := family.Face(sizePx*mmToPt, fill, canvas.FontRegular, canvas.FontNormal)

	c := canvas.New(float64(width), float64(height))
	ctx := canvas.NewContext(c)
	ctx.SetCoordSystem(canvas.CartesianIV)

	cx := layer.ScreenX / 100 * float64(width)
	cy := layer.ScreenY / 100 * float64(height)
	metrics := face.Metrics()
	baseline := cy + (metrics.Ascent-metrics.Descent)/2

	line := canvas.NewTextLine(face, layer.Content, canvas.Center)
	if r := layer.StrokeThickness; r > 0 {
		for i := 0; i < outlineSteps; i++ {
			angle := 2 * math.Pi * float64(i) / outlineSteps
			ctx.DrawText(cx+r*math.Cos(angle), baseline+r*math.Sin(angle), line)
		}
	}
	ctx.DrawText(cx, baseline, line)

	return rasterizer.Draw(c, canvas.DPMM(1.0), canvas.DefaultColorSpace), nil
}
