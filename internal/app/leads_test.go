package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

func TestAddLead_Defaults(t *testing.T) {
	h := newHarness(t)
	d := h.mustApprovedDealer(t, "9000000001")
	v := h.mustAddVehicle(t, d.ID, "MH12AB1234", domain.VehicleForSale, 1)

	lead := h.mustAddLead(t, d.ID, app.NewLead{VehicleID: v.ID, Name: "Asha", Phone: "9811111111"})

	assert.Equal(t, domain.TestDriveNotScheduled, lead.TestDriveStatus)
	assert.Equal(t, domain.ConversionInProgress, lead.ConversionStatus)
	assert.False(t, lead.IsArchived)
	assert.Equal(t, "Hyundai Creta SX", lead.VehicleName)
	assert.Equal(t, "MH12AB1234", lead.VehicleRegistration)
}

func TestAddLead_VehicleReferenceRules(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	a := h.mustApprovedDealer(t, "9000000001")
	b := h.mustApprovedDealer(t, "9000000002")
	v := h.mustAddVehicle(t, a.ID, "MH12AB1234", domain.VehicleForSale, 1)
	foreignEmployee := h.mustAddEmployee(t, b.ID, "9100000001")

	_, err := h.Leads.AddLead(ctx, a.ID, app.NewLead{
		Name: "Asha", Phone: "1", VehicleID: v.ID, OtherVehicleName: "Honda City",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = h.Leads.AddLead(ctx, b.ID, app.NewLead{Name: "Asha", Phone: "1", VehicleID: v.ID})
	require.ErrorIs(t, err, domain.ErrVehicleNotFound)

	_, err = h.Leads.AddLead(ctx, a.ID, app.NewLead{Name: "Asha", Phone: "1", AssignedTo: foreignEmployee.ID})
	require.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	lead, err := h.Leads.AddLead(ctx, a.ID, app.NewLead{Name: "Any", Phone: "2"})
	require.NoError(t, err)
	assert.Empty(t, lead.VehicleID)
	assert.Empty(t, lead.OtherVehicleName)
}

func TestUpdateLead_StatusesInAnyOrder(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	lead := h.mustAddLead(t, d.ID, app.NewLead{})

	steps := []domain.LeadPatch{
		{ConversionStatus: domain.Set(domain.ConversionConverted)},
		{TestDriveStatus: domain.Set(domain.TestDriveScheduled)},
		{ConversionStatus: domain.Set(domain.ConversionInProgress)},
		{TestDriveStatus: domain.Set(domain.TestDriveNoShow), ConversionStatus: domain.Set(domain.ConversionLost)},
	}
	for _, p := range steps {
		_, err := h.Leads.UpdateLead(ctx, lead.ID, d.ID, p)
		require.NoError(t, err)
	}

	got, err := h.Leads.UpdateLead(ctx, lead.ID, d.ID, domain.LeadPatch{Notes: domain.Set("call back Friday")})
	require.NoError(t, err)
	assert.Equal(t, domain.TestDriveNoShow, got.TestDriveStatus)
	assert.Equal(t, domain.ConversionLost, got.ConversionStatus)
	assert.Equal(t, "call back Friday", got.Notes)
}

func TestUpdateLead_Validation(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	lead := h.mustAddLead(t, d.ID, app.NewLead{})

	_, err := h.Leads.UpdateLead(ctx, lead.ID, d.ID, domain.LeadPatch{
		ConversionStatus: domain.Set(domain.ConversionStatus("Maybe")),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)

	_, err = h.Leads.UpdateLead(ctx, lead.ID, "other", domain.LeadPatch{Notes: domain.Set("x")})
	require.ErrorIs(t, err, domain.ErrLeadNotFound)

	_, err = h.Leads.UpdateLead(ctx, "ghost", d.ID, domain.LeadPatch{})
	require.ErrorIs(t, err, domain.ErrLeadNotFound)
}

func TestUpdateLead_Reassign(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")
	e1 := h.mustAddEmployee(t, d.ID, "9100000001")
	e2 := h.mustAddEmployee(t, d.ID, "9100000002")
	lead := h.mustAddLead(t, d.ID, app.NewLead{AssignedTo: e1.ID})

	_, err := h.Leads.UpdateLead(ctx, lead.ID, d.ID, domain.LeadPatch{AssignedTo: domain.Set(e2.ID)})
	require.NoError(t, err)

	mine, err := h.Leads.ListLeadsForEmployee(ctx, e2.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, lead.ID, mine[0].ID)

	theirs, err := h.Leads.ListLeadsForEmployee(ctx, e1.ID)
	require.NoError(t, err)
	assert.Empty(t, theirs)

	unassigned, err := h.Leads.UpdateLead(ctx, lead.ID, d.ID, domain.LeadPatch{AssignedTo: domain.Clear[string]()})
	require.NoError(t, err)
	assert.Empty(t, unassigned.AssignedTo)
}

func TestListArchivedLeads_Empty(t *testing.T) {
	h := newHarness(t)
	d := h.mustApprovedDealer(t, "9000000001")
	h.mustAddLead(t, d.ID, app.NewLead{})

	archived, err := h.Leads.ListArchivedLeads(context.Background(), d.ID)
	require.NoError(t, err)
	assert.NotNil(t, archived)
	assert.Empty(t, archived)
}
