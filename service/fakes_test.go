package service

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/disintegration/imaging"

	"dropxcult-admin/models"
	"dropxcult-admin/preview"
	"dropxcult-admin/repository"
)

type fakeAssets map[string]image.Image

func (f fakeAssets) Open(_ context.Context, ref string) (image.Image, error) {
	img, ok := f[ref]
	if !ok {
		return nil, fmt.Errorf("%s: %w", ref, ErrAssetNotFound)
	}
	return img, nil
}

func solid(w, h int, c color.NRGBA) image.Image {
	return imaging.New(w, h, c)
}

type fakeDesignRepo struct {
	designs map[string]*models.CustomDesign
	updates []string
	err     error
}

func (f *fakeDesignRepo) List(context.Context) ([]models.CustomDesign, error) {
	out := []models.CustomDesign{}
	for _, d := range f.designs {
		out = append(out, *d)
	}
	return out, f.err
}

func (f *fakeDesignRepo) GetByID(_ context.Context, id string) (*models.CustomDesign, error) {
	d, ok := f.designs[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeDesignRepo) UpdateStatus(_ context.Context, id string, from, to models.DesignStatus, _ string) error {
	if f.err != nil {
		return f.err
	}
	d, ok := f.designs[id]
	if !ok {
		return repository.ErrNotFound
	}
	if d.Status != from {
		return repository.ErrInvalidTransition
	}
	d.Status = to
	f.updates = append(f.updates, fmt.Sprintf("%s:%s->%s", id, from, to))
	return nil
}

type fakeRenderer struct {
	plans []preview.RenderPlan
	err   error
}

func (f *fakeRenderer) Render(_ context.Context, plan preview.RenderPlan, _, _ int) ([]byte, error) {
	f.plans = append(f.plans, plan)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("png"), nil
}

type fakeDrive struct {
	mu      sync.Mutex
	uploads map[string][]byte
	err     error
}

func (f *fakeDrive) UploadFile(_ context.Context, folderID, name, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return "", f.err
	}
	if f.uploads == nil {
		f.uploads = map[string][]byte{}
	}
	f.uploads[folderID+"/"+name] = data
	return "drive-" + name, nil
}
