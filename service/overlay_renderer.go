package service

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"strings"

	"dropxcult-admin/preview"
	"dropxcult-admin/utils"
)

//go:embed templates/*.html
var overlayTemplates embed.FS

// OverlayRenderer renders RenderPlans as absolutely positioned HTML layers, the same
// markup the console uses for its flat preview
type OverlayRenderer struct {
	tmpl *template.Template
}

// SheetData is the input of the four-view moderation sheet
type SheetData struct {
	DesignID  string
	Garment   string
	Color     string
	Size      string
	Status    string
	Submitter string
	Plans     []preview.RenderPlan
}

type overlayView struct {
	View      string
	BaseImage template.URL
	MaskStyle template.CSS
	Image     *overlayImage
	Text      *overlayText
}

type overlayImage struct {
	Src   template.URL
	Style template.CSS
}

type overlayText struct {
	Content string
	Style   template.CSS
}

// NewOverlayRenderer parses the embedded templates
func NewOverlayRenderer() (*OverlayRenderer, error) {
	tmpl, err := template.ParseFS(overlayTemplates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse overlay templates: %w", err)
	}
	return &OverlayRenderer{tmpl: tmpl}, nil
}

// RenderView writes a standalone HTML document showing one view
func (r *OverlayRenderer) RenderView(w io.Writer, plan preview.RenderPlan) error {
	data := struct {
		Title string
		View  overlayView
	}{
		Title: fmt.Sprintf("%s %s preview", plan.Garment, plan.View),
		View:  r.buildView(plan),
	}
	if err := r.tmpl.ExecuteTemplate(w, "preview", data); err != nil {
		return fmt.Errorf("failed to execute preview template: %w", err)
	}
	return nil
}

// RenderSheet writes the printable moderation sheet with every view of a design
func (r *OverlayRenderer) RenderSheet(w io.Writer, sheet SheetData) error {
	views := make([]overlayView, 0, len(sheet.Plans))
	for _, plan := range sheet.Plans {
		views = append(views, r.buildView(plan))
	}
	data := struct {
		SheetData
		Views []overlayView
	}{SheetData: sheet, Views: views}

	if err := r.tmpl.ExecuteTemplate(w, "sheet", data); err != nil {
		return fmt.Errorf("failed to execute sheet template: %w", err)
	}
	return nil
}

func (r *OverlayRenderer) buildView(plan preview.RenderPlan) overlayView {
	v := overlayView{
		View:      string(plan.View),
		BaseImage: safeImageURL(plan.BaseImage),
	}

	maskColor := cssColor(plan.ColorMask.Color, preview.DefaultBaseColor)
	mask := fmt.Sprintf("background-color:%s;mix-blend-mode:%s;", maskColor, plan.ColorMask.Blend)
	if u, ok := cssURL(plan.ColorMask.MaskImage); ok {
		mask += fmt.Sprintf("-webkit-mask-image:%[1]s;mask-image:%[1]s;", u) +
			"-webkit-mask-size:contain;mask-size:contain;" +
			"-webkit-mask-repeat:no-repeat;mask-repeat:no-repeat;" +
			"-webkit-mask-position:center;mask-position:center;"
	}
	v.MaskStyle = template.CSS(mask)

	if layer := plan.ImageLayer; layer != nil {
		v.Image = &overlayImage{
			Src: safeImageURL(layer.Image),
			Style: template.CSS(fmt.Sprintf(
				"top:%s%%;left:%s%%;transform:translate(-50%%,-50%%) scale(%s);max-width:%s%%;max-height:%s%%;",
				num(layer.ScreenY), num(layer.ScreenX), num(layer.Scale), num(layer.MaxExtent), num(layer.MaxExtent))),
		}
	}

	if layer := plan.TextLayer; layer != nil {
		color := cssColor(layer.Color, preview.DefaultTextColor)
		style := fmt.Sprintf("top:%s%%;left:%s%%;transform:translate(-50%%,-50%%);font-size:%srem;color:%s;z-index:20;",
			num(layer.ScreenY), num(layer.ScreenX), num(layer.RenderedSizeRem), color)
		if layer.StrokeThickness > 0 {
			style += fmt.Sprintf("-webkit-text-stroke:%spx %s;", num(layer.StrokeThickness), color)
		}
		v.Text = &overlayText{
			Content: layer.Content,
			Style:   template.CSS(style),
		}
	}
	return v
}

// num formats a CSS number without trailing zeros
func num(f float64) string {
	return strings.TrimSuffix(strings.TrimRight(fmt.Sprintf("%.4f", f), "0"), ".")
}

// cssColor normalizes a hex colour, falling back to def for anything else
func cssColor(s, def string) string {
	c, err := utils.ParseHexColor(s)
	if err != nil {
		c, _ = utils.ParseHexColor(def)
	}
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// cssURL quotes ref for use in url(); refs that could break out of the string are rejected
func cssURL(ref string) (string, bool) {
	if ref == "" || strings.ContainsAny(ref, "\"\\\n\r<>") {
		return "", false
	}
	return `url("` + ref + `")`, true
}

// safeImageURL allows site-relative paths, http(s) URLs and inline raster images
func safeImageURL(ref string) template.URL {
	lower := strings.ToLower(ref)
	switch {
	case strings.HasPrefix(lower, "data:image/png;base64,"),
		strings.HasPrefix(lower, "data:image/jpeg;base64,"),
		strings.HasPrefix(lower, "data:image/webp;base64,"),
		strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//"):
		if strings.ContainsAny(ref, "\"<>\n\r") {
			return ""
		}
		return template.URL(ref)
	default:
		return ""
	}
}

// OverlayRendererInterface defines the contract for HTML preview rendering
type OverlayRendererInterface interface {
	RenderView(w io.Writer, plan preview.RenderPlan) error
	RenderSheet(w io.Writer, sheet SheetData) error
}

// Ensure OverlayRenderer implements OverlayRendererInterface
var _ OverlayRendererInterface = (*OverlayRenderer)(nil)
