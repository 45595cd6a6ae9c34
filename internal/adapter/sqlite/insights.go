package sqlite

import (
	"context"
	"fmt"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// DashboardMetrics computes every headline figure in one statement so the
// numbers come from the same snapshot.
func (s *Store) DashboardMetrics(ctx context.Context, dealerID string) (domain.DashboardMetrics, error) {
	var m domain.DashboardMetrics
	err := s.q.QueryRowContext(ctx,
		`SELECT
			COALESCE(SUM(CASE WHEN status != 'Sold' THEN price END), 0),
			COUNT(CASE WHEN status != 'Sold' THEN 1 END),
			COUNT(CASE WHEN status = 'For Sale' THEN 1 END),
			COUNT(CASE WHEN status = 'Sold' THEN 1 END),
			COALESCE(SUM(CASE WHEN status = 'Sold'
				THEN COALESCE(selling_price, 0) - cost - refurbishment_cost END), 0),
			(SELECT COUNT(*) FROM leads
				WHERE dealer_id = ? AND is_archived = 0 AND conversion_status = 'InProgress'),
			COALESCE(SUM(refurbishment_cost), 0)
		FROM vehicles WHERE dealer_id = ?`,
		dealerID, dealerID,
	).Scan(&m.TotalStockValue, &m.TotalStockCount, &m.AvailableStockCount, &m.TotalSalesCount,
		&m.TotalProfit, &m.ActiveLeadsCount, &m.TotalRefurbCost)
	if err != nil {
		return domain.DashboardMetrics{}, fmt.Errorf("computing dashboard metrics: %w", err)
	}
	return m, nil
}

// OldestForSale returns up to limit For Sale vehicles, oldest first.
func (s *Store) OldestForSale(ctx context.Context, dealerID string, limit int) ([]domain.Vehicle, error) {
	return s.queryVehicles(ctx,
		`SELECT `+vehicleColumns+` FROM vehicles v
		 WHERE v.dealer_id = ? AND v.status = ?
		 ORDER BY v.created_at ASC, v.id LIMIT ?`,
		dealerID, string(domain.VehicleForSale), limit)
}

// StockBuckets returns one bucket per vehicle status, in display order, each
// with up to examples newest vehicles. Sold examples carry the selling price.
func (s *Store) StockBuckets(ctx context.Context, dealerID string, examples int) ([]domain.StockBucket, error) {
	counts := make(map[domain.VehicleStatus]int, len(domain.VehicleStatuses))

	rows, err := s.q.QueryContext(ctx,
		`SELECT status, COUNT(*) FROM vehicles WHERE dealer_id = ? GROUP BY status`, dealerID)
	if err != nil {
		return nil, fmt.Errorf("counting stock: %w", err)
	}
	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning stock count: %w", err)
		}
		counts[domain.VehicleStatus(status)] = n
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	buckets := make([]domain.StockBucket, 0, len(domain.VehicleStatuses))
	for _, status := range domain.VehicleStatuses {
		bucket := domain.StockBucket{Status: status, Count: counts[status], Examples: []domain.StockExample{}}
		if bucket.Count > 0 {
			bucket.Examples, err = s.stockExamples(ctx, dealerID, status, examples)
			if err != nil {
				return nil, err
			}
		}
		buckets = append(buckets, bucket)
	}
	return buckets, nil
}

func (s *Store) stockExamples(ctx context.Context, dealerID string, status domain.VehicleStatus, limit int) ([]domain.StockExample, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT id, TRIM(make || ' ' || model || ' ' || COALESCE(variant, '')), registration_number,
			CASE WHEN status = 'Sold' THEN COALESCE(selling_price, 0) ELSE price END
		 FROM vehicles WHERE dealer_id = ? AND status = ?
		 ORDER BY created_at DESC, id LIMIT ?`,
		dealerID, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("listing stock examples: %w", err)
	}
	defer rows.Close()

	examples := []domain.StockExample{}
	for rows.Next() {
		var ex domain.StockExample
		if err := rows.Scan(&ex.ID, &ex.Name, &ex.RegistrationNumber, &ex.Price); err != nil {
			return nil, fmt.Errorf("scanning stock example: %w", err)
		}
		examples = append(examples, ex)
	}
	return examples, rows.Err()
}

// PlatformCounts returns the platform-wide totals and the dealer roster split
// by status. Rows owned by the system account are not counted.
func (s *Store) PlatformCounts(ctx context.Context) (domain.PlatformStats, error) {
	var p domain.PlatformStats
	err := s.q.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM vehicles v JOIN dealers d ON d.id = v.dealer_id WHERE d.is_system = 0),
			(SELECT COUNT(*) FROM employees e JOIN dealers d ON d.id = e.dealer_id WHERE d.is_system = 0),
			(SELECT COUNT(*) FROM website_content w JOIN dealers d ON d.id = w.dealer_id
				WHERE d.is_system = 0 AND w.website_status = 'approved' AND w.is_live = 1)`,
	).Scan(&p.TotalVehicles, &p.TotalEmployees, &p.LiveWebsites)
	if err != nil {
		return domain.PlatformStats{}, fmt.Errorf("counting platform totals: %w", err)
	}

	dealers, err := s.ListDealers(ctx, domain.DealerFilter{})
	if err != nil {
		return domain.PlatformStats{}, err
	}

	p.ApprovedDealers = []domain.DealerSummary{}
	p.PendingDealers = []domain.DealerSummary{}
	p.DeactivatedDealers = []domain.DealerSummary{}
	for _, d := range dealers {
		switch d.Status {
		case domain.DealerApproved:
			p.ApprovedDealers = append(p.ApprovedDealers, d)
		case domain.DealerPending:
			p.PendingDealers = append(p.PendingDealers, d)
		case domain.DealerDeactivated:
			p.DeactivatedDealers = append(p.DeactivatedDealers, d)
		}
	}
	return p, nil
}
