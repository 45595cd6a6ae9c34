package app_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

func TestAddVehicle_Defaults(t *testing.T) {
	h := newHarness(t)
	d := h.mustApprovedDealer(t, "9000000001")

	v, err := h.Inventory.AddVehicle(context.Background(), d.ID, domain.Vehicle{
		Make:               "Tata",
		Model:              "Nexon",
		RegistrationNumber: "mh 12 ab 1234",
		Images: domain.ImageSet{
			Exterior: map[string]string{"front": "https://cdn.example.com/f.jpg"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, domain.VehicleDraft, v.Status)
	assert.Equal(t, "MH12AB1234", v.RegistrationNumber)
	assert.Equal(t, d.ID, v.DealerID)
	assert.Equal(t, h.clock.Now(), v.CreatedAt)

	stored, err := h.Inventory.GetVehicle(context.Background(), v.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/f.jpg", stored.Images.Exterior["front"])
}

func TestAddVehicle_InitialStatus(t *testing.T) {
	h := newHarness(t)
	d := h.mustApprovedDealer(t, "9000000001")

	for _, status := range []domain.VehicleStatus{domain.VehicleSold, domain.VehicleInRefurbishment} {
		_, err := h.Inventory.AddVehicle(context.Background(), d.ID, domain.Vehicle{
			Make: "Tata", Model: "Nexon", RegistrationNumber: "MH12AB1234", Status: status,
		})
		require.ErrorIs(t, err, domain.ErrInvalidTransition, "status %q", status)
	}
}

func TestAddVehicle_DuplicateRegistrationAcrossDealers(t *testing.T) {
	h := newHarness(t)
	a := h.mustApprovedDealer(t, "9000000001")
	b := h.mustApprovedDealer(t, "9000000002")
	h.mustAddVehicle(t, a.ID, "MH12AB1234", domain.VehicleForSale, 1)

	_, err := h.Inventory.AddVehicle(context.Background(), b.ID, domain.Vehicle{
		Make: "Kia", Model: "Seltos", RegistrationNumber: "mh12ab1234",
	})
	require.ErrorIs(t, err, domain.ErrConstraintViolation)
}

func TestAddVehicle_UnknownDealer(t *testing.T) {
	h := newHarness(t)

	_, err := h.Inventory.AddVehicle(context.Background(), "ghost", domain.Vehicle{
		Make: "Kia", Model: "Seltos", RegistrationNumber: "KA01AA0001",
	})
	require.ErrorIs(t, err, domain.ErrDealerNotFound)
}

func TestSetVehicleStatus(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, d.ID, "MH12AB1234", domain.VehicleDraft, 1)

	v, err := h.Inventory.SetVehicleStatus(ctx, v.ID, d.ID, domain.VehicleForSale)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleForSale, v.Status)

	v, err = h.Inventory.SetVehicleStatus(ctx, v.ID, d.ID, domain.VehicleInRefurbishment)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleInRefurbishment, v.Status)

	_, err = h.Inventory.SetVehicleStatus(ctx, v.ID, d.ID, domain.VehicleDraft)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = h.Inventory.SetVehicleStatus(ctx, v.ID, d.ID, domain.VehicleSold)
	var trErr *domain.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, domain.EventSell, trErr.Event)

	_, err = h.Inventory.SetVehicleStatus(ctx, v.ID, d.ID, "Scrapped")
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestMarkVehicleSold(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, d.ID, "MH12AB1234", domain.VehicleForSale, 500000)
	other := h.mustAddVehicle(t, d.ID, "MH12AB5678", domain.VehicleForSale, 1)

	h.mustAddLead(t, d.ID, app.NewLead{VehicleID: v.ID})
	h.mustAddLead(t, d.ID, app.NewLead{VehicleID: v.ID})
	h.mustAddLead(t, d.ID, app.NewLead{VehicleID: other.ID})

	res, err := h.Inventory.MarkVehicleSold(ctx, v.ID, d.ID, domain.Sale{
		SellingPrice:  510000,
		BuyerName:     "Kiran",
		BuyerPhone:    "9811111111",
		PaymentMethod: "Bank Transfer",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, res.ArchivedLeads)
	assert.Equal(t, domain.VehicleSold, res.Vehicle.Status)
	assert.Equal(t, 510000.0, res.Vehicle.SellingPrice)
	assert.Equal(t, "Kiran", res.Vehicle.BuyerName)
	assert.Equal(t, "Bank Transfer", res.Vehicle.SalePaymentMethod)
	require.NotNil(t, res.Vehicle.SellingDate)
	assert.True(t, res.Vehicle.SellingDate.Equal(h.clock.Now()))

	open, err := h.Leads.ListLeads(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, other.ID, open[0].VehicleID)

	archived, err := h.Leads.ListArchivedLeads(ctx, d.ID)
	require.NoError(t, err)
	assert.Len(t, archived, 2)

	n := h.pub.last()
	assert.Equal(t, domain.NotifyVehicleSold, n.Kind)
	assert.Equal(t, "2", n.Details["archived_leads"])
}

func TestMarkVehicleSold_Twice(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, d.ID, "MH12AB1234", domain.VehicleDraft, 1)

	_, err := h.Inventory.MarkVehicleSold(ctx, v.ID, d.ID, domain.Sale{SellingPrice: 1})
	require.NoError(t, err)

	_, err = h.Inventory.MarkVehicleSold(ctx, v.ID, d.ID, domain.Sale{SellingPrice: 2})
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	stored, _ := h.Inventory.GetVehicle(ctx, v.ID, d.ID)
	assert.Equal(t, 1.0, stored.SellingPrice)
}

func TestMarkVehicleSold_OtherDealersVehicle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.mustApprovedDealer(t, "9000000001")
	b := h.mustApprovedDealer(t, "9000000002")
	v := h.mustAddVehicle(t, a.ID, "MH12AB1234", domain.VehicleForSale, 1)

	_, err := h.Inventory.MarkVehicleSold(ctx, v.ID, b.ID, domain.Sale{SellingPrice: 1})
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)

	stored, err := h.Inventory.GetVehicle(ctx, v.ID, "")
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleForSale, stored.Status)
}

func TestRelistVehicle_ClearsSaleKeepsLeadsArchived(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, d.ID, "MH12AB1234", domain.VehicleForSale, 1)
	h.mustAddLead(t, d.ID, app.NewLead{VehicleID: v.ID})

	_, err := h.Inventory.RelistVehicle(ctx, v.ID, d.ID)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = h.Inventory.MarkVehicleSold(ctx, v.ID, d.ID, domain.Sale{
		SellingPrice:  1,
		BuyerName:     "Asha",
		BuyerPhone:    "9811111111",
		BuyerAddress:  "Baner, Pune",
		PaymentMethod: "UPI",
	})
	require.NoError(t, err)

	v, err = h.Inventory.RelistVehicle(ctx, v.ID, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.VehicleForSale, v.Status)
	assert.Zero(t, v.SellingPrice)
	assert.Nil(t, v.SellingDate)
	assert.Empty(t, v.BuyerName)
	assert.Empty(t, v.BuyerPhone)
	assert.Empty(t, v.BuyerAddress)
	assert.Empty(t, v.SalePaymentMethod)

	open, err := h.Leads.ListLeads(ctx, d.ID)
	require.NoError(t, err)
	assert.Empty(t, open)
	assert.Equal(t, domain.NotifyVehicleRelisted, h.pub.last().Kind)
}

func TestUpdateVehicle(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, d.ID, "MH12AB1234", domain.VehicleForSale, 500000)

	bought := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	v, err := h.Inventory.UpdateVehicle(ctx, v.ID, d.ID, domain.VehiclePatch{
		Price:              domain.Set(480000.0),
		RegistrationNumber: domain.Set("mh12 ab 4321"),
		BuyingDate:         domain.Set(bought),
		LoanStatus:         domain.Set(domain.LoanClosed),
	})
	require.NoError(t, err)
	assert.Equal(t, 480000.0, v.Price)
	assert.Equal(t, "MH12AB4321", v.RegistrationNumber)
	require.NotNil(t, v.BuyingDate)
	assert.True(t, v.BuyingDate.Equal(bought))
	assert.Equal(t, domain.VehicleForSale, v.Status)

	_, err = h.Inventory.UpdateVehicle(ctx, v.ID, d.ID, domain.VehiclePatch{Make: domain.Set("")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = h.Inventory.UpdateVehicle(ctx, v.ID, "someone-else", domain.VehiclePatch{Price: domain.Set(1.0)})
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)
}

func TestDeleteVehicle_LeadsSurvive(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, d.ID, "MH12AB1234", domain.VehicleForSale, 1)
	lead := h.mustAddLead(t, d.ID, app.NewLead{VehicleID: v.ID})
	assert.Equal(t, "Hyundai Creta SX", lead.VehicleName)

	require.NoError(t, h.Inventory.DeleteVehicle(ctx, v.ID, d.ID))
	require.ErrorIs(t, h.Inventory.DeleteVehicle(ctx, v.ID, d.ID), domain.ErrVehicleNotFound)

	leads, err := h.Leads.ListLeads(ctx, d.ID)
	require.NoError(t, err)
	require.Len(t, leads, 1)
	assert.Empty(t, leads[0].VehicleID)
}

func TestListVehicles_Filter(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	h.mustAddVehicle(t, d.ID, "MH12AB0001", domain.VehicleForSale, 1)
	h.mustAddVehicle(t, d.ID, "MH12AB0002", domain.VehicleDraft, 1)

	all, err := h.Inventory.ListVehicles(ctx, d.ID, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	draft := domain.VehicleDraft
	drafts, err := h.Inventory.ListVehicles(ctx, d.ID, &draft)
	require.NoError(t, err)
	require.Len(t, drafts, 1)
	assert.Equal(t, "MH12AB0002", drafts[0].RegistrationNumber)

	none, err := h.Inventory.ListVehicles(ctx, "nobody", nil)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
