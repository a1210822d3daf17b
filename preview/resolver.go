// Package preview turns a custom design into a render plan shared by the 2D compositor,
// the HTML overlay and the 3D decal placer.
package preview

// BlendMode names how the colour mask is combined with the base template
type BlendMode string

const BlendMultiply BlendMode = "multiply"

// Layer identifies one entry of a render plan's fixed stacking order
type Layer string

const (
	LayerBase  Layer = "base"
	LayerMask  Layer = "colorMask"
	LayerImage Layer = "image"
	LayerText  Layer = "text"
)

const (
	// DefaultImageScale applies when a placement has no usable scale
	DefaultImageScale = 0.5
	// DefaultFontSize applies when a text config has no usable font size
	DefaultFontSize = 1.0
	// DefaultTextColor applies when a text config has no color
	DefaultTextColor = "#000000"
	// DefaultBaseColor leaves the template untouched under a multiply blend
	DefaultBaseColor = "#ffffff"
	// MaxImageExtent bounds the image layer, in percent of the container, at render time
	MaxImageExtent = 60.0
	// FontSizeUnit converts a text config font size into rendered rem
	FontSizeUnit = 2.0
)

// ColorMask tints the base silhouette. MaskImage is the base template itself:
// the fill only lands where the template is opaque.
type ColorMask struct {
	Color     string    `json:"color"`
	MaskImage string    `json:"maskImage"`
	Blend     BlendMode `json:"blend"`
}

// ImageLayer is the positioned user artwork. Screen coordinates are percentages of the
// container; the normalized coordinates are kept for renderers that project into 3D.
type ImageLayer struct {
	Image     string  `json:"image"`
	NormX     float64 `json:"normalizedX"`
	NormY     float64 `json:"normalizedY"`
	ScreenX   float64 `json:"screenX"`
	ScreenY   float64 `json:"screenY"`
	Scale     float64 `json:"scale"`
	MaxExtent float64 `json:"maxExtent"`
}

// TextLayer is the positioned user text, always drawn on top
type TextLayer struct {
	Content         string  `json:"content"`
	NormX           float64 `json:"normalizedX"`
	NormY           float64 `json:"normalizedY"`
	ScreenX         float64 `json:"screenX"`
	ScreenY         float64 `json:"screenY"`
	FontSize        float64 `json:"fontSize"`
	RenderedSizeRem float64 `json:"renderedSizeRem"`
	Color           string  `json:"color"`
	StrokeThickness float64 `json:"strokeThickness"`
	Curve           float64 `json:"curve,omitempty"`
}

// RenderPlan describes everything a renderer needs to draw one view of a design
type RenderPlan struct {
	View       View        `json:"view"`
	Garment    GarmentType `json:"garmentType"`
	BaseImage  string      `json:"baseImage"`
	ColorMask  ColorMask   `json:"colorMask"`
	ImageLayer *ImageLayer `json:"imageLayer,omitempty"`
	TextLayer  *TextLayer  `json:"textLayer,omitempty"`
}

// Layers returns the layers present in the plan, bottom to top
func (p RenderPlan) Layers() []Layer {
	layers := []Layer{LayerBase, LayerMask}
	if p.ImageLayer != nil {
		layers = append(layers, LayerImage)
	}
	if p.TextLayer != nil {
		layers = append(layers, LayerText)
	}
	return layers
}

// Resolver builds render plans against a template catalog. It holds no mutable state and
// is safe for concurrent use.
type Resolver struct {
	catalog Catalog
}

// NewResolver creates a Resolver; a nil catalog means DefaultCatalog
func NewResolver(catalog Catalog) *Resolver {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	return &Resolver{catalog: catalog}
}

// Resolve maps a design and a view to a render plan. Missing data never fails: it yields an
// absent layer, the fallback template or a default value. The design is not modified.
// Placement scale is passed through when positive; a missing, zero or negative scale
// becomes DefaultImageScale.
// Font size follows the same rule with DefaultFontSize.
func (r *Resolver) Resolve(design DesignRecord, view View) RenderPlan {
	base := r.catalog.Lookup(design.GarmentType, view)

	color := design.BaseColor
	if color == "" {
		color = DefaultBaseColor
	}

	plan := RenderPlan{
		View:      view,
		Garment:   design.GarmentType,
		BaseImage: base,
		ColorMask: ColorMask{
			Color:     color,
			MaskImage: base,
			Blend:     BlendMultiply,
		},
	}

	if img := design.Images[view]; img != "" {
		placement := design.Placements[view]
		x, y := valueOr(placement.X, 0), valueOr(placement.Y, 0)
		plan.ImageLayer = &ImageLayer{
			Image:     img,
			NormX:     x,
			NormY:     y,
			ScreenX:   toScreen(x),
			ScreenY:   toScreen(y),
			Scale:     positiveOr(placement.Scale, DefaultImageScale),
			MaxExtent: MaxImageExtent,
		}
	}

	if text, ok := design.Texts[view]; ok && text.Content != "" {
		x, y := valueOr(text.X, 0), valueOr(text.Y, 0)
		fontSize := positiveOr(text.FontSize, DefaultFontSize)
		textColor := text.Color
		if textColor == "" {
			textColor = DefaultTextColor
		}
		stroke := valueOr(text.Thickness, 0)
		if stroke < 0 {
			stroke = 0
		}
		plan.TextLayer = &TextLayer{
			Content:         text.Content,
			NormX:           x,
			NormY:           y,
			ScreenX:         toScreen(x),
			ScreenY:         toScreen(y),
			FontSize:        fontSize,
			RenderedSizeRem: fontSize * FontSizeUnit,
			Color:           textColor,
			StrokeThickness: stroke,
			Curve:           valueOr(text.Curve, 0),
		}
	}

	return plan
}

// ResolveAll resolves every view in console order
func (r *Resolver) ResolveAll(design DesignRecord) []RenderPlan {
	plans := make([]RenderPlan, 0, len(viewOrder))
	for _, v := range viewOrder {
		plans = append(plans, r.Resolve(design, v))
	}
	return plans
}

// toScreen maps a normalized coordinate in [-1, 1] to a container percentage
func toScreen(n float64) float64 {
	return 50 + n*50
}

func valueOr(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

// positiveOr treats zero and negative values like a missing field
func positiveOr(p *float64, def float64) float64 {
	if p == nil || *p <= 0 {
		return def
	}
	return *p
}
