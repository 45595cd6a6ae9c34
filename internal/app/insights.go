package app

import (
	"context"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const (
	agingLimit    = 5
	stockExamples = 5
)

// InsightsService computes the read-only dashboard views.
type InsightsService struct {
	Deps
}

// NewInsightsService creates a service with the given adapters.
func NewInsightsService(deps Deps) *InsightsService {
	return &InsightsService{Deps: deps.withDefaults()}
}

// DashboardMetrics returns the headline figures for one dealer.
func (s *InsightsService) DashboardMetrics(ctx context.Context, dealerID string) (domain.DashboardMetrics, error) {
	if _, err := s.Store.GetDealer(ctx, dealerID); err != nil {
		return domain.DashboardMetrics{}, err
	}
	return s.Store.DashboardMetrics(ctx, dealerID)
}

// AgingInventory returns the oldest vehicles still for sale, oldest first,
// with the whole days each has been in stock.
func (s *InsightsService) AgingInventory(ctx context.Context, dealerID string) ([]domain.AgingVehicle, error) {
	if _, err := s.Store.GetDealer(ctx, dealerID); err != nil {
		return nil, err
	}
	vehicles, err := s.Store.OldestForSale(ctx, dealerID, agingLimit)
	if err != nil {
		return nil, err
	}

	now := s.Now()
	aging := make([]domain.AgingVehicle, 0, len(vehicles))
	for _, v := range vehicles {
		aging = append(aging, domain.AgingVehicle{
			Vehicle:     v,
			DaysInStock: domain.DaysBetween(v.CreatedAt, now),
		})
	}
	return aging, nil
}

// StockOverview returns one bucket per vehicle status with a few examples.
func (s *InsightsService) StockOverview(ctx context.Context, dealerID string) ([]domain.StockBucket, error) {
	if _, err := s.Store.GetDealer(ctx, dealerID); err != nil {
		return nil, err
	}
	return s.Store.StockBuckets(ctx, dealerID, stockExamples)
}

// PlatformStats returns the admin-wide totals and dealer roster. The counts
// and roster are read in one transaction so they agree with each other.
func (s *InsightsService) PlatformStats(ctx context.Context) (domain.PlatformStats, error) {
	var stats domain.PlatformStats
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		var err error
		stats, err = tx.PlatformCounts(ctx)
		return err
	})
	return stats, err
}
