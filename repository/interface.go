package repository

import (
	"context"

	"dropxcult-admin/models"
)

// ProductRepositoryInterface defines the contract for product repository operations
type ProductRepositoryInterface interface {
	List(ctx context.Context) ([]models.Product, error)
	GetByID(ctx context.Context, id string) (*models.Product, error)
	Create(ctx context.Context, req *models.CreateProductRequest) (*models.Product, error)
	Update(ctx context.Context, id string, req *models.UpdateProductRequest) (*models.Product, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// OrderRepositoryInterface defines the contract for order repository operations
type OrderRepositoryInterface interface {
	List(ctx context.Context) ([]models.Order, error)
	Count(ctx context.Context) (int, error)
	SumPaidRevenue(ctx context.Context) (float64, error)
}

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	List(ctx context.Context) ([]models.User, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CustomDesignRepositoryInterface defines the contract for custom design repository operations
type CustomDesignRepositoryInterface interface {
	List(ctx context.Context) ([]models.CustomDesign, error)
	GetByID(ctx context.Context, id string) (*models.CustomDesign, error)
	UpdateStatus(ctx context.Context, id string, from, to models.DesignStatus, note string) error
}
