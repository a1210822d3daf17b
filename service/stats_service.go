package service

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"dropxcult-admin/models"
	"dropxcult-admin/repository"
	"dropxcult-admin/utils"
)

// StatsServiceInterface defines the contract for dashboard statistics
type StatsServiceInterface interface {
	Dashboard(ctx context.Context) (*models.DashboardStats, error)
}

// StatsService aggregates the admin dashboard counters
type StatsService struct {
	orders   repository.OrderRepositoryInterface
	products repository.ProductRepositoryInterface
	users    repository.UserRepositoryInterface
}

// NewStatsService creates a new StatsService
func NewStatsService(
	orders repository.OrderRepositoryInterface,
	products repository.ProductRepositoryInterface,
	users repository.UserRepositoryInterface,
) *StatsService {
	return &StatsService{orders: orders, products: products, users: users}
}

// Ensure StatsService implements StatsServiceInterface
var _ StatsServiceInterface = (*StatsService)(nil)

// Dashboard counts orders, products and users and sums the revenue of paid orders
func (s *StatsService) Dashboard(ctx context.Context) (*models.DashboardStats, error) {
	var stats models.DashboardStats

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		stats.OrdersCount, err = s.orders.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.ProductsCount, err = s.products.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.UsersCount, err = s.users.Count(gctx)
		return err
	})
	g.Go(func() (err error) {
		stats.TotalRevenue, err = s.orders.SumPaidRevenue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		log.Errorf("❌ Failed to compute dashboard stats: %v", err)
		return nil, fmt.Errorf("failed to compute stats: %w", err)
	}

	stats.TotalRevenueFormatted = utils.FormatINR(stats.TotalRevenue)
	return &stats, nil
}
