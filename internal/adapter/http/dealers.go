package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

// --- Register Dealer ---

type RegisterDealerInput struct {
	Body struct {
		Name            string `json:"name" minLength:"1" maxLength:"255" doc:"Owner name"`
		DealershipName  string `json:"dealership_name" minLength:"1" maxLength:"255"`
		Phone           string `json:"phone" minLength:"1" maxLength:"32" doc:"Login phone number"`
		Email           string `json:"email,omitempty" maxLength:"255"`
		City            string `json:"city,omitempty"`
		State           string `json:"state,omitempty"`
		VehicleCategory string `json:"vehicle_category" enum:"TwoWheeler,FourWheeler,Hybrid"`
		Password        string `json:"password" minLength:"1"`
	}
}

type DealerOutput struct {
	Body DealerResponse
}

// --- Get / Lookup Dealer ---

type GetDealerInput struct {
	ID string `path:"id" doc:"Dealer ID"`
}

type LookupDealerInput struct {
	Phone string `query:"phone" required:"false" doc:"Exact phone number"`
	Email string `query:"email" required:"false" doc:"Exact email address"`
}

// --- Update Dealer ---

type UpdateDealerInput struct {
	ID   string `path:"id" doc:"Dealer ID"`
	Body struct {
		Name            *string `json:"name,omitempty"`
		DealershipName  *string `json:"dealership_name,omitempty"`
		Email           *string `json:"email,omitempty" doc:"Empty string clears the email"`
		City            *string `json:"city,omitempty"`
		State           *string `json:"state,omitempty"`
		VehicleCategory *string `json:"vehicle_category,omitempty" enum:"TwoWheeler,FourWheeler,Hybrid"`
		Password        *string `json:"password,omitempty" doc:"Empty string leaves the password unchanged"`
	}
}

// --- Admin ---

type ListDealersInput struct {
	Status string `query:"status" required:"false" enum:"pending,approved,deactivated" doc:"Filter by status"`
}

type ListDealersOutput struct {
	Body []DealerSummaryResponse
}

type UpdateDealerStatusInput struct {
	ID   string `path:"id" doc:"Dealer ID"`
	Body struct {
		Status string `json:"status" enum:"pending,approved,deactivated" doc:"Target status"`
		Reason string `json:"reason,omitempty" doc:"Deactivation reason"`
	}
}

type DeleteDealerOutput struct {
	Body FootprintResponse
}

func registerDealerRoutes(api huma.API, svc *app.DealerService, g guards) {
	huma.Register(api, huma.Operation{
		OperationID: "register-dealer",
		Method:      http.MethodPost,
		Path:        prefix + "/dealers",
		Summary:     "Register a dealer",
		Description: "Creates a dealer in the pending state. Sign-in is possible once an admin approves it.",
		Tags:        []string{"Dealers"},
	}, func(ctx context.Context, input *RegisterDealerInput) (*DealerOutput, error) {
		dealer, err := svc.Register(ctx, app.Registration{
			Name:            input.Body.Name,
			DealershipName:  input.Body.DealershipName,
			Phone:           input.Body.Phone,
			Email:           input.Body.Email,
			City:            input.Body.City,
			State:           input.Body.State,
			VehicleCategory: domain.VehicleCategory(input.Body.VehicleCategory),
			Password:        input.Body.Password,
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DealerOutput{Body: toDealerResponse(dealer)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "lookup-dealer",
		Method:      http.MethodGet,
		Path:        prefix + "/dealers/lookup",
		Summary:     "Find a dealer by phone or email",
		Tags:        []string{"Dealers"},
	}, func(ctx context.Context, input *LookupDealerInput) (*DealerOutput, error) {
		var (
			dealer domain.Dealer
			err    error
		)
		switch {
		case input.Phone != "":
			dealer, err = svc.GetByPhone(ctx, input.Phone)
		case input.Email != "":
			dealer, err = svc.GetByEmail(ctx, input.Email)
		default:
			return nil, huma.Error400BadRequest("phone or email is required")
		}
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DealerOutput{Body: toDealerResponse(dealer)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-dealer",
		Method:      http.MethodGet,
		Path:        prefix + "/dealers/{id}",
		Summary:     "Get a dealer by ID",
		Tags:        []string{"Dealers"},
		Middlewares: g.dealer,
	}, func(ctx context.Context, input *GetDealerInput) (*DealerOutput, error) {
		dealer, err := svc.GetByID(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DealerOutput{Body: toDealerResponse(dealer)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-dealer",
		Method:      http.MethodPatch,
		Path:        prefix + "/dealers/{id}",
		Summary:     "Update a dealer profile",
		Tags:        []string{"Dealers"},
		Middlewares: g.dealer,
	}, func(ctx context.Context, input *UpdateDealerInput) (*DealerOutput, error) {
		b := input.Body
		dealer, err := svc.Update(ctx, input.ID, app.DealerUpdate{
			Name:            domain.FromPtr(b.Name),
			DealershipName:  domain.FromPtr(b.DealershipName),
			Email:           domain.FromPtr(b.Email),
			City:            domain.FromPtr(b.City),
			State:           domain.FromPtr(b.State),
			VehicleCategory: domain.FromPtr((*domain.VehicleCategory)(b.VehicleCategory)),
			Password:        domain.FromPtr(b.Password),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DealerOutput{Body: toDealerResponse(dealer)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-dealers",
		Method:      http.MethodGet,
		Path:        prefix + "/admin/dealers",
		Summary:     "List dealers",
		Description: "The system account is never listed.",
		Tags:        []string{"Admin"},
		Middlewares: g.admin,
	}, func(ctx context.Context, input *ListDealersInput) (*ListDealersOutput, error) {
		var status *domain.DealerStatus
		if input.Status != "" {
			s := domain.DealerStatus(input.Status)
			status = &s
		}
		dealers, err := svc.List(ctx, status)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListDealersOutput{Body: toDealerSummaries(dealers)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-dealer-status",
		Method:      http.MethodPost,
		Path:        prefix + "/admin/dealers/{id}/status",
		Summary:     "Approve, deactivate or reset a dealer",
		Tags:        []string{"Admin"},
		Middlewares: g.admin,
	}, func(ctx context.Context, input *UpdateDealerStatusInput) (*DealerOutput, error) {
		dealer, err := svc.UpdateStatus(ctx, input.ID, domain.DealerStatus(input.Body.Status), input.Body.Reason)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DealerOutput{Body: toDealerResponse(dealer)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "delete-dealer",
		Method:      http.MethodDelete,
		Path:        prefix + "/admin/dealers/{id}",
		Summary:     "Delete a dealer and everything it owns",
		Tags:        []string{"Admin"},
		Middlewares: g.admin,
	}, func(ctx context.Context, input *GetDealerInput) (*DeleteDealerOutput, error) {
		fp, err := svc.Delete(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DeleteDealerOutput{Body: FootprintResponse{
			Vehicles:    fp.Vehicles,
			Employees:   fp.Employees,
			Leads:       fp.Leads,
			SalarySlips: fp.SalarySlips,
			Website:     fp.Website,
		}}, nil
	})
}
