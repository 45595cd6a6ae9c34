package app_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomorfeo/dealerops/internal/domain"
)

func TestAgingInventory(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")

	var ids []string
	for i := range 7 {
		v := h.mustAddVehicle(t, d.ID, fmt.Sprintf("MH12AB%04d", i), domain.VehicleForSale, 1)
		ids = append(ids, v.ID)
		h.clock.Advance(24 * time.Hour)
	}
	h.mustAddVehicle(t, d.ID, "MH12ZZ0001", domain.VehicleDraft, 1)
	h.clock.Advance(12 * time.Hour)

	aging, err := h.Insights.AgingInventory(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, aging, 5)

	assert.Equal(t, ids[0], aging[0].ID)
	assert.Equal(t, 7, aging[0].DaysInStock)
	assert.Equal(t, ids[4], aging[4].ID)
	assert.Equal(t, 3, aging[4].DaysInStock)
}

func TestStockOverview(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")

	h.mustAddVehicle(t, d.ID, "MH12AB0001", domain.VehicleForSale, 300000)
	sold := h.mustAddVehicle(t, d.ID, "MH12AB0002", domain.VehicleForSale, 400000)
	_, err := h.Inventory.MarkVehicleSold(ctx, sold.ID, d.ID, domain.Sale{SellingPrice: 450000})
	require.NoError(t, err)

	buckets, err := h.Insights.StockOverview(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, buckets, 4)

	byStatus := map[domain.VehicleStatus]domain.StockBucket{}
	for _, b := range buckets {
		byStatus[b.Status] = b
	}
	require.Len(t, byStatus[domain.VehicleSold].Examples, 1)
	assert.Equal(t, 450000.0, byStatus[domain.VehicleSold].Examples[0].Price)
	require.Len(t, byStatus[domain.VehicleForSale].Examples, 1)
	assert.Equal(t, 300000.0, byStatus[domain.VehicleForSale].Examples[0].Price)
	assert.Equal(t, 0, byStatus[domain.VehicleDraft].Count)
}

func TestPlatformStats_ExcludesSystemAccount(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	admin, err := h.Dealers.EnsureSystemAccount(ctx, "Root", "9999999999", "admin-pass")
	require.NoError(t, err)
	h.mustAddVehicle(t, admin.ID, "DL01AA0001", domain.VehicleForSale, 1)

	approved := h.mustApprovedDealer(t, "9000000001")
	h.mustRegister(t, "9000000002")
	deactivated := h.mustRegister(t, "9000000003")
	_, err = h.Dealers.UpdateStatus(ctx, deactivated.ID, domain.DealerDeactivated, "fraud")
	require.NoError(t, err)

	h.mustAddVehicle(t, approved.ID, "MH12AB0001", domain.VehicleForSale, 1)
	h.mustAddEmployee(t, approved.ID, "9100000001")
	_, err = h.Website.RequestApproval(ctx, approved.ID)
	require.NoError(t, err)
	_, err = h.Website.SetApproval(ctx, approved.ID, domain.WebsiteApproved, nil)
	require.NoError(t, err)

	stats, err := h.Insights.PlatformStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalVehicles)
	assert.Equal(t, 1, stats.TotalEmployees)
	assert.Equal(t, 1, stats.LiveWebsites)
	require.Len(t, stats.ApprovedDealers, 1)
	assert.Equal(t, approved.ID, stats.ApprovedDealers[0].ID)
	assert.Len(t, stats.PendingDealers, 1)
	require.Len(t, stats.DeactivatedDealers, 1)
	assert.Equal(t, "fraud", stats.DeactivatedDealers[0].DeactivationReason)
}

func TestInsights_UnknownDealer(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	_, err := h.Insights.DashboardMetrics(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrDealerNotFound)

	_, err = h.Insights.AgingInventory(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrDealerNotFound)

	_, err = h.Insights.StockOverview(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrDealerNotFound)
}
