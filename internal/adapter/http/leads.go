package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

// --- Inputs ---

type AddLeadInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	Body     struct {
		VehicleID        string `json:"vehicle_id,omitempty" doc:"Inventory vehicle the customer asked about"`
		AssignedTo       string `json:"assigned_to,omitempty" doc:"Employee ID"`
		Name             string `json:"name" minLength:"1"`
		Phone            string `json:"phone" minLength:"1"`
		Email            string `json:"email,omitempty"`
		TestDriveStatus  string `json:"test_drive_status,omitempty" enum:"Scheduled,Completed,NoShow,NotScheduled"`
		ConversionStatus string `json:"conversion_status,omitempty" enum:"InProgress,Converted,Lost"`
		OtherVehicleName string `json:"other_vehicle_name,omitempty" doc:"Vehicle outside inventory; excludes vehicle_id"`
		OtherVehicleReg  string `json:"other_vehicle_reg,omitempty"`
		Notes            string `json:"notes,omitempty"`
	}
}

type ListLeadsInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	Archived bool   `query:"archived" required:"false" doc:"List leads archived by a sale instead of open ones"`
}

type UpdateLeadInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	ID       string `path:"id" doc:"Lead ID"`
	Body     struct {
		Name             *string `json:"name,omitempty"`
		Phone            *string `json:"phone,omitempty"`
		Email            *string `json:"email,omitempty"`
		AssignedTo       *string `json:"assigned_to,omitempty" doc:"Empty string unassigns the lead"`
		TestDriveStatus  *string `json:"test_drive_status,omitempty" enum:"Scheduled,Completed,NoShow,NotScheduled"`
		ConversionStatus *string `json:"conversion_status,omitempty" enum:"InProgress,Converted,Lost"`
		Notes            *string `json:"notes,omitempty"`
	}
}

type EmployeeLeadsInput struct {
	ID string `path:"id" doc:"Employee ID"`
}

// --- Outputs ---

type LeadOutput struct {
	Body LeadResponse
}

type ListLeadsOutput struct {
	Body []LeadResponse
}

func registerLeadRoutes(api huma.API, svc *app.LeadService, g guards) {
	base := prefix + "/dealers/{dealerID}/leads"

	huma.Register(api, huma.Operation{
		OperationID: "add-lead",
		Method:      http.MethodPost,
		Path:        base,
		Summary:     "Record a lead",
		Tags:        []string{"Leads"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *AddLeadInput) (*LeadOutput, error) {
		b := input.Body
		lead, err := svc.AddLead(ctx, input.DealerID, app.NewLead{
			VehicleID:        b.VehicleID,
			AssignedTo:       b.AssignedTo,
			Name:             b.Name,
			Phone:            b.Phone,
			Email:            b.Email,
			TestDriveStatus:  domain.TestDriveStatus(b.TestDriveStatus),
			ConversionStatus: domain.ConversionStatus(b.ConversionStatus),
			OtherVehicleName: b.OtherVehicleName,
			OtherVehicleReg:  b.OtherVehicleReg,
			Notes:            b.Notes,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-leads",
		Method:      http.MethodGet,
		Path:        base,
		Summary:     "List a dealer's leads",
		Tags:        []string{"Leads"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *ListLeadsInput) (*ListLeadsOutput, error) {
		list := svc.ListLeads
		if input.Archived {
			list = svc.ListArchivedLeads
		}
		leads, err := list(ctx, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListLeadsOutput{Body: toLeadResponses(leads)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-lead",
		Method:      http.MethodPatch,
		Path:        base + "/{id}",
		Summary:     "Update a lead",
		Description: "Test drive and conversion status may be set to any value in any order.",
		Tags:        []string{"Leads"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *UpdateLeadInput) (*LeadOutput, error) {
		b := input.Body
		patch := domain.LeadPatch{
			Name:             domain.FromPtr(b.Name),
			Phone:            domain.FromPtr(b.Phone),
			Email:            domain.FromPtr(b.Email),
			TestDriveStatus:  domain.FromPtr((*domain.TestDriveStatus)(b.TestDriveStatus)),
			ConversionStatus: domain.FromPtr((*domain.ConversionStatus)(b.ConversionStatus)),
			Notes:            domain.FromPtr(b.Notes),
		}
		if b.AssignedTo != nil {
			if *b.AssignedTo == "" {
				patch.AssignedTo = domain.Clear[string]()
			} else {
				patch.AssignedTo = domain.Set(*b.AssignedTo)
			}
		}

		lead, err := svc.UpdateLead(ctx, input.ID, input.DealerID, patch)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &LeadOutput{Body: toLeadResponse(lead)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-employee-leads",
		Method:      http.MethodGet,
		Path:        prefix + "/employees/{id}/leads",
		Summary:     "List the open leads assigned to an employee",
		Tags:        []string{"Leads"},
		Middlewares: g.employee,
	}, func(ctx context.Context, input *EmployeeLeadsInput) (*ListLeadsOutput, error) {
		leads, err := svc.ListLeadsForEmployee(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListLeadsOutput{Body: toLeadResponses(leads)}, nil
	})
}
