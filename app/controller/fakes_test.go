package controller

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"

	"github.com/disintegration/imaging"

	"dropxcult-admin/models"
	"dropxcult-admin/preview"
	"dropxcult-admin/repository"
	"dropxcult-admin/service"
)

var errBoom = errors.New("boom")

type fakeDesigns struct {
	designs map[string]*models.CustomDesign
	err     error
}

func (f *fakeDesigns) List(context.Context) ([]models.CustomDesign, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := []models.CustomDesign{}
	for _, d := range f.designs {
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeDesigns) GetByID(_ context.Context, id string) (*models.CustomDesign, error) {
	if f.err != nil {
		return nil, f.err
	}
	d, ok := f.designs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDesigns) UpdateStatus(context.Context, string, models.DesignStatus, models.DesignStatus, string) error {
	return errors.New("not used by controllers")
}

type fakeModeration struct {
	result *models.CustomDesign
	err    error
	calls  []string
}

func (f *fakeModeration) Apply(_ context.Context, id, action, note string) (*models.CustomDesign, error) {
	f.calls = append(f.calls, fmt.Sprintf("%s:%s:%s", id, action, note))
	return f.result, f.err
}

type fakeRaster struct {
	plans []preview.RenderPlan
	err   error
}

func (f *fakeRaster) Render(_ context.Context, plan preview.RenderPlan, _, _ int) ([]byte, error) {
	f.plans = append(f.plans, plan)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG-fake"), nil
}

type fakeSheets struct {
	ids []string
	err error
}

func (f *fakeSheets) GeneratePDF(_ context.Context, designID string) ([]byte, error) {
	f.ids = append(f.ids, designID)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.4"), nil
}

type fakeAssets struct {
	opened []string
}

func (f *fakeAssets) Open(_ context.Context, ref string) (image.Image, error) {
	f.opened = append(f.opened, ref)
	if ref == "missing.png" {
		return nil, service.ErrAssetNotFound
	}
	return imaging.New(40, 40, color.NRGBA{R: 200, A: 255}), nil
}

type fakeSheetOverlay struct {
	sheet service.SheetData
}

func (f *fakeSheetOverlay) RenderView(w io.Writer, plan preview.RenderPlan) error {
	_, err := fmt.Fprintf(w, "view %s", plan.View)
	return err
}

func (f *fakeSheetOverlay) RenderSheet(w io.Writer, sheet service.SheetData) error {
	f.sheet = sheet
	_, err := fmt.Fprintf(w, "sheet %s", sheet.DesignID)
	return err
}

type fakeProducts struct {
	products map[string]*models.Product
	created  *models.CreateProductRequest
	err      error
}

func (f *fakeProducts) List(context.Context) ([]models.Product, error) {
	out := []models.Product{}
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, f.err
}

func (f *fakeProducts) GetByID(_ context.Context, id string) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return p, nil
}

func (f *fakeProducts) Create(_ context.Context, req *models.CreateProductRequest) (*models.Product, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.created = req
	return &models.Product{ID: "p-new", Name: req.Name, Slug: req.Slug, Price: req.Price}, nil
}

func (f *fakeProducts) Update(_ context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if req.Price != nil {
		p.Price = *req.Price
	}
	return p, nil
}

func (f *fakeProducts) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProducts) Count(context.Context) (int, error) {
	return len(f.products), f.err
}

type fakeUsers struct {
	users  []models.User
	delErr error
}

func (f *fakeUsers) List(context.Context) ([]models.User, error) {
	return f.users, nil
}

func (f *fakeUsers) Delete(context.Context, string) error {
	return f.delErr
}

func (f *fakeUsers) Count(context.Context) (int, error) {
	return len(f.users), nil
}

type fakeStats struct {
	stats *models.DashboardStats
	err   error
}

func (f *fakeStats) Dashboard(context.Context) (*models.DashboardStats, error) {
	return f.stats, f.err
}

type fakeOrders struct {
	orders []models.Order
	err    error
}

func (f *fakeOrders) List(context.Context) ([]models.Order, error) {
	return f.orders, f.err
}

func (f *fakeOrders) Count(context.Context) (int, error) {
	return len(f.orders), f.err
}

func (f *fakeOrders) SumPaidRevenue(context.Context) (float64, error) {
	return 0, f.err
}
