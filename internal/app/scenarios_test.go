package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

func TestScenario_RegisterApproveSell(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	dealer := h.mustRegister(t, "9000000001")
	assert.Equal(t, domain.DealerPending, dealer.Status)

	dealer, err := h.Dealers.UpdateStatus(ctx, dealer.ID, domain.DealerApproved, "")
	require.NoError(t, err)
	assert.Equal(t, domain.DealerApproved, dealer.Status)

	v := h.mustAddVehicle(t, dealer.ID, "MH12AB1234", domain.VehicleForSale, 500000)

	m, err := h.Insights.DashboardMetrics(ctx, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, 500000.0, m.TotalStockValue)
	assert.Equal(t, 1, m.AvailableStockCount)

	_, err = h.Inventory.MarkVehicleSold(ctx, v.ID, dealer.ID, domain.Sale{
		SellingPrice:      520000,
		Cost:              domain.Set(400000.0),
		RefurbishmentCost: domain.Set(20000.0),
	})
	require.NoError(t, err)

	m, err = h.Insights.DashboardMetrics(ctx, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, 100000.0, m.TotalProfit)
	assert.Equal(t, 1, m.TotalSalesCount)
	assert.Equal(t, 0, m.AvailableStockCount)
}

func TestScenario_DuplicateEmployeePhone(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	dealer := h.mustApprovedDealer(t, "9000000001")

	first := h.mustAddEmployee(t, dealer.ID, "9000000002")

	_, err := h.Staff.AddEmployee(ctx, dealer.ID, app.NewEmployee{
		Name:     "Someone Else",
		Phone:    "9000000002",
		Role:     domain.RoleMechanic,
		Password: "pw",
	})
	require.ErrorIs(t, err, domain.ErrConstraintViolation)

	got, err := h.Staff.GetEmployee(ctx, first.ID, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anil Sharma", got.Name)
}

func TestScenario_WebsiteGoLive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	dealer := h.mustApprovedDealer(t, "9000000001")

	w, err := h.Website.Get(ctx, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WebsiteNotRequested, w.WebsiteStatus)

	w, err = h.Website.RequestApproval(ctx, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WebsitePendingApproval, w.WebsiteStatus)

	live := false
	w, err = h.Website.SetApproval(ctx, dealer.ID, domain.WebsiteApproved, &live)
	require.NoError(t, err)
	assert.Equal(t, domain.WebsiteApproved, w.WebsiteStatus)
	assert.False(t, w.IsLive)

	_, err = h.Website.SetLive(ctx, dealer.ID, true)
	require.NoError(t, err)

	w, err = h.Website.Get(ctx, dealer.ID)
	require.NoError(t, err)
	assert.True(t, w.IsLive)
	assert.Equal(t, domain.WebsiteApproved, w.WebsiteStatus)
}

func TestProperty_ProfitIgnoresUnsoldStock(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	dealer := h.mustApprovedDealer(t, "9000000001")

	v := h.mustAddVehicle(t, dealer.ID, "KA01AA0001", domain.VehicleForSale, 100000)
	_, err := h.Inventory.MarkVehicleSold(ctx, v.ID, dealer.ID, domain.Sale{
		SellingPrice: 150000,
		Cost:         domain.Set(90000.0),
	})
	require.NoError(t, err)

	before, err := h.Insights.DashboardMetrics(ctx, dealer.ID)
	require.NoError(t, err)

	h.mustAddVehicle(t, dealer.ID, "KA01AA0002", domain.VehicleForSale, 99_000_000)

	after, err := h.Insights.DashboardMetrics(ctx, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, 60000.0, before.TotalProfit)
	assert.Equal(t, before.TotalProfit, after.TotalProfit)
	assert.Equal(t, 99_000_000.0, after.TotalStockValue)
}

func TestProperty_ActiveLeadsDropAfterSale(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	dealer := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, dealer.ID, "KA01AA0001", domain.VehicleForSale, 100000)

	h.mustAddLead(t, dealer.ID, app.NewLead{VehicleID: v.ID})
	h.mustAddLead(t, dealer.ID, app.NewLead{OtherVehicleName: "Honda City"})

	before, err := h.Insights.DashboardMetrics(ctx, dealer.ID)
	require.NoError(t, err)
	require.Equal(t, 2, before.ActiveLeadsCount)

	res, err := h.Inventory.MarkVehicleSold(ctx, v.ID, dealer.ID, domain.Sale{SellingPrice: 110000})
	require.NoError(t, err)
	assert.Equal(t, 1, res.ArchivedLeads)

	after, err := h.Insights.DashboardMetrics(ctx, dealer.ID)
	require.NoError(t, err)
	assert.Equal(t, before.ActiveLeadsCount-1, after.ActiveLeadsCount)
}
