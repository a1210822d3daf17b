package controller

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"dropxcult-admin/app/middleware"
	"dropxcult-admin/models"
	"dropxcult-admin/preview"
	"dropxcult-admin/repository"
	"dropxcult-admin/service"
)

// CustomRequestDeps groups the collaborators of CustomRequestController
type CustomRequestDeps struct {
	Designs    repository.CustomDesignRepositoryInterface
	Moderation service.ModerationServiceInterface
	Resolver   *preview.Resolver
	Raster     service.PreviewRenderer
	Overlay    service.OverlayRendererInterface
	Sheets     service.SheetServiceInterface
	Assets     service.AssetStore
	Thumbnails *service.ThumbnailCache
	Width      int
	Height     int
}

// CustomRequestController handles HTTP requests for custom design requests and their previews
type CustomRequestController struct {
	CustomRequestDeps
}

// NewCustomRequestController creates a new CustomRequestController
func NewCustomRequestController(deps CustomRequestDeps) *CustomRequestController {
	if deps.Resolver == nil {
		deps.Resolver = preview.NewResolver(nil)
	}
	return &CustomRequestController{CustomRequestDeps: deps}
}

// List handles GET /api/customize
func (c *CustomRequestController) List(w http.ResponseWriter, r *http.Request) {
	designs, err := c.Designs.List(r.Context())
	if err != nil {
		log.Errorf("❌ ListCustomRequests: %v", err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to fetch custom requests")
		return
	}
	writeJSON(w, http.StatusOK, designs)
}

// Get handles GET /api/customize/{id}
func (c *CustomRequestController) Get(w http.ResponseWriter, r *http.Request) {
	design, ok := c.loadDesign(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, design)
}

// Action handles POST /api/customize/{id}/action
// Example request:
// POST /api/customize/6650f1/action
// {
//   "action": "offer_royalty",
//   "note": "Great print, we would like to sell it"
// }
func (c *CustomRequestController) Action(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	log.Infof("📥 CustomRequestAction: Received %s request for %s", r.Method, id)

	var req models.ModerationActionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Warnf("❌ CustomRequestAction: Failed to decode request body: %v", err)
		writeJSONError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	design, err := c.Moderation.Apply(r.Context(), id, req.Action, req.Note)
	if errors.Is(err, service.ErrUnknownAction) {
		writeJSONError(w, http.StatusBadRequest, "Invalid action")
		return
	}
	if err != nil {
		log.Errorf("❌ CustomRequestAction: id=%s: %v", id, err)
		writeRepositoryError(w, err, "Action failed")
		return
	}

	log.Infof("✅ CustomRequestAction: %s is now %s", id, design.Status)
	writeJSON(w, http.StatusOK, design)
}

// Plan handles GET /api/customize/{id}/plan?view=front and returns the RenderPlan as JSON
func (c *CustomRequestController) Plan(w http.ResponseWriter, r *http.Request) {
	plan, _, ok := c.resolveView(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

// PreviewPNG handles GET /api/customize/{id}/preview.png?view=front
func (c *CustomRequestController) PreviewPNG(w http.ResponseWriter, r *http.Request) {
	plan, design, ok := c.resolveView(w, r)
	if !ok {
		return
	}

	png, err := c.Raster.Render(r.Context(), plan, c.Width, c.Height)
	middleware.RecordPreviewRender("raster", string(plan.View), err == nil)
	if err != nil {
		log.Errorf("❌ PreviewPNG: design=%s view=%s: %v", design.ID, plan.View, err)
		status := http.StatusInternalServerError
		if errors.Is(err, service.ErrAssetNotFound) || errors.Is(err, service.ErrBlockedAddress) {
			status = http.StatusUnprocessableEntity
		}
		writeJSONError(w, status, "Failed to render preview")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=\"%s\"", service.PreviewFileName(design.ID, plan.View)))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(png)))
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(png); err != nil {
		log.Errorf("❌ PreviewPNG: Error writing response: %v", err)
	}
}

// PreviewHTML handles GET /api/customize/{id}/preview.html?view=front
func (c *CustomRequestController) PreviewHTML(w http.ResponseWriter, r *http.Request) {
	plan, _, ok := c.resolveView(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	err := c.Overlay.RenderView(&buf, plan)
	middleware.RecordPreviewRender("overlay", string(plan.View), err == nil)
	if err != nil {
		log.Errorf("❌ PreviewHTML: %v", err)
		http.Error(w, "Failed to render preview", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// Scene handles GET /api/customize/{id}/scene and returns the 3D decal layout
func (c *CustomRequestController) Scene(w http.ResponseWriter, r *http.Request) {
	design, record, ok := c.loadRecord(w, r)
	if !ok {
		return
	}
	scene := preview.PlaceDecals(c.Resolver.ResolveAll(record))
	middleware.RecordPreviewRender("scene", "all", true)
	log.Debugf("🧊 Scene: design=%s decals=%d texts=%d", design.ID, len(scene.Decals), len(scene.Texts))
	writeJSON(w, http.StatusOK, scene)
}

// SheetHTML handles GET /api/customize/{id}/sheet.html, the page printed by SheetPDF
func (c *CustomRequestController) SheetHTML(w http.ResponseWriter, r *http.Request) {
	design, record, ok := c.loadRecord(w, r)
	if !ok {
		return
	}

	sheet := service.SheetData{
		DesignID: design.ID,
		Garment:  design.Type,
		Color:    design.Color,
		Size:     design.Size,
		Status:   string(design.Status),
		Plans:    c.Resolver.ResolveAll(record),
	}
	if design.User != nil {
		sheet.Submitter = fmt.Sprintf("%s <%s>", design.User.Name, design.User.Email)
	}

	var buf bytes.Buffer
	if err := c.Overlay.RenderSheet(&buf, sheet); err != nil {
		log.Errorf("❌ SheetHTML: %v", err)
		http.Error(w, "Failed to render sheet", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

// SheetPDF handles GET /api/customize/{id}/sheet.pdf
func (c *CustomRequestController) SheetPDF(w http.ResponseWriter, r *http.Request) {
	design, ok := c.loadDesign(w, r)
	if !ok {
		return
	}

	pdf, err := c.Sheets.GeneratePDF(r.Context(), design.ID)
	middleware.RecordPreviewRender("pdf", "all", err == nil)
	if err != nil {
		log.Errorf("❌ SheetPDF: design=%s: %v", design.ID, err)
		writeJSONError(w, http.StatusInternalServerError, "Failed to generate PDF")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"custom-design-%s.pdf\"", design.ID))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(pdf)))
	w.WriteHeader(http.StatusOK)
	w.Write(pdf)
}

// Thumbnail handles GET /api/customize/{id}/thumbnail?view=front&size=thumb
// Returns the optimized artwork of a view, cached on disk.
func (c *CustomRequestController) Thumbnail(w http.ResponseWriter, r *http.Request) {
	view, ok := parseViewQuery(w, r)
	if !ok {
		return
	}
	size := service.NormalizeSize(r.URL.Query().Get("size"))

	_, record, ok := c.loadRecord(w, r)
	if !ok {
		return
	}
	ref := record.Images[view]
	if ref == "" {
		writeJSONError(w, http.StatusNotFound, "No artwork for this view")
		return
	}

	id := mux.Vars(r)["id"]
	cachePath := c.Thumbnails.Path(id, string(view), size)
	data, cached := c.Thumbnails.Read(cachePath)
	if !cached {
		img, err := c.Assets.Open(r.Context(), ref)
		if err != nil {
			log.Errorf("❌ Thumbnail: design=%s view=%s: %v", id, view, err)
			writeJSONError(w, http.StatusBadGateway, "Failed to load artwork")
			return
		}
		data, err = service.OptimizeImage(img, size)
		if err != nil {
			log.Errorf("❌ Thumbnail: %v", err)
			writeJSONError(w, http.StatusInternalServerError, "Failed to optimize artwork")
			return
		}
		if err := c.Thumbnails.Save(cachePath, data); err != nil {
			log.Warnf("⚠️  Thumbnail: could not cache %s: %v", cachePath, err)
		}
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}

// loadDesign fetches the {id} design, writing the error response when it fails
func (c *CustomRequestController) loadDesign(w http.ResponseWriter, r *http.Request) (*models.CustomDesign, bool) {
	id := mux.Vars(r)["id"]
	design, err := c.Designs.GetByID(r.Context(), id)
	if err != nil {
		log.Errorf("❌ Custom request %s: %v", id, err)
		writeRepositoryError(w, err, "Failed to fetch custom request")
		return nil, false
	}
	return design, true
}

func (c *CustomRequestController) loadRecord(w http.ResponseWriter, r *http.Request) (*models.CustomDesign, preview.DesignRecord, bool) {
	design, ok := c.loadDesign(w, r)
	if !ok {
		return nil, preview.DesignRecord{}, false
	}
	record, err := design.DesignRecord()
	if err != nil {
		log.Errorf("❌ Custom request %s has malformed config: %v", design.ID, err)
		writeJSONError(w, http.StatusUnprocessableEntity, "Malformed design configuration")
		return nil, preview.DesignRecord{}, false
	}
	return design, record, true
}

// resolveView validates ?view, loads the design and resolves the plan for that view
func (c *CustomRequestController) resolveView(w http.ResponseWriter, r *http.Request) (preview.RenderPlan, *models.CustomDesign, bool) {
	view, ok := parseViewQuery(w, r)
	if !ok {
		return preview.RenderPlan{}, nil, false
	}
	design, record, ok := c.loadRecord(w, r)
	if !ok {
		return preview.RenderPlan{}, nil, false
	}
	return c.Resolver.Resolve(record, view), design, true
}

// parseViewQuery reads ?view, defaulting to front; unknown views are a 400
func parseViewQuery(w http.ResponseWriter, r *http.Request) (preview.View, bool) {
	raw := r.URL.Query().Get("view")
	if strings.TrimSpace(raw) == "" {
		return preview.ViewFront, true
	}
	view, err := preview.ParseView(raw)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return view, true
}
