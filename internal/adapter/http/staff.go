package http

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

// --- Inputs ---

type AddEmployeeInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	Body     struct {
		Name           string     `json:"name" minLength:"1"`
		Email          string     `json:"email,omitempty"`
		Phone          string     `json:"phone" minLength:"1" doc:"Login phone number"`
		Role           string     `json:"role" enum:"Sales Manager,Sales Executive,Service Advisor,Mechanic,Accountant,Receptionist,Driver,Other"`
		Salary         float64    `json:"salary" minimum:"0" doc:"Monthly base salary"`
		Password       string     `json:"password" minLength:"1"`
		AvatarURL      string     `json:"avatar_url,omitempty" doc:"Defaults to a generated initials avatar"`
		AadharImageURL string     `json:"aadhar_image_url,omitempty"`
		JoiningDate    *time.Time `json:"joining_date,omitempty" doc:"Defaults to today"`
	}
}

type EmployeeInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	ID       string `path:"id" doc:"Employee ID"`
}

type ListEmployeesInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
}

type UpdateEmployeeInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	ID       string `path:"id" doc:"Employee ID"`
	Body     struct {
		Name           *string    `json:"name,omitempty"`
		Email          *string    `json:"email,omitempty"`
		Phone          *string    `json:"phone,omitempty"`
		Role           *string    `json:"role,omitempty" enum:"Sales Manager,Sales Executive,Service Advisor,Mechanic,Accountant,Receptionist,Driver,Other"`
		Salary         *float64   `json:"salary,omitempty" minimum:"0"`
		AvatarURL      *string    `json:"avatar_url,omitempty"`
		AadharImageURL *string    `json:"aadhar_image_url,omitempty"`
		Password       *string    `json:"password,omitempty" doc:"Empty string leaves the password unchanged"`
		JoiningDate    *time.Time `json:"joining_date,omitempty"`
	}
}

type SalarySlipsInput struct {
	ID string `path:"id" doc:"Employee ID"`
}

type GenerateSlipInput struct {
	ID   string `path:"id" doc:"Employee ID"`
	Body struct {
		Month      int     `json:"month" minimum:"1" maximum:"12"`
		Year       int     `json:"year" minimum:"1"`
		Incentives float64 `json:"incentives,omitempty" minimum:"0"`
		Status     string  `json:"status,omitempty" enum:"Pending,Paid" doc:"Pending by default"`
	}
}

// --- Outputs ---

type EmployeeOutput struct {
	Body EmployeeResponse
}

type ListEmployeesOutput struct {
	Body []EmployeeResponse
}

type SalarySlipOutput struct {
	Body SalarySlipResponse
}

type ListSalarySlipsOutput struct {
	Body []SalarySlipResponse
}

func registerStaffRoutes(api huma.API, svc *app.StaffService, g guards) {
	base := prefix + "/dealers/{dealerID}/employees"

	huma.Register(api, huma.Operation{
		OperationID: "add-employee",
		Method:      http.MethodPost,
		Path:        base,
		Summary:     "Onboard an employee",
		Tags:        []string{"Staff"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *AddEmployeeInput) (*EmployeeOutput, error) {
		b := input.Body
		in := app.NewEmployee{
			Name:           b.Name,
			Email:          b.Email,
			Phone:          b.Phone,
			Role:           domain.Role(b.Role),
			Salary:         b.Salary,
			Password:       b.Password,
			AvatarURL:      b.AvatarURL,
			AadharImageURL: b.AadharImageURL,
		}
		if b.JoiningDate != nil {
			in.JoiningDate = *b.JoiningDate
		}
		employee, err := svc.AddEmployee(ctx, input.DealerID, in)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &EmployeeOutput{Body: toEmployeeResponse(employee)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-employees",
		Method:      http.MethodGet,
		Path:        base,
		Summary:     "List a dealer's employees",
		Description: "Each employee carries the leads assigned this calendar month and their salary slips.",
		Tags:        []string{"Staff"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *ListEmployeesInput) (*ListEmployeesOutput, error) {
		employees, err := svc.ListEmployees(ctx, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := make([]EmployeeResponse, len(employees))
		for i, e := range employees {
			out[i] = toEmployeeResponse(e)
		}
		return &ListEmployeesOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "get-employee",
		Method:      http.MethodGet,
		Path:        base + "/{id}",
		Summary:     "Get an employee",
		Tags:        []string{"Staff"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *EmployeeInput) (*EmployeeOutput, error) {
		employee, err := svc.GetEmployee(ctx, input.ID, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &EmployeeOutput{Body: toEmployeeResponse(employee)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "update-employee",
		Method:      http.MethodPatch,
		Path:        base + "/{id}",
		Summary:     "Update an employee",
		Tags:        []string{"Staff"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *UpdateEmployeeInput) (*EmployeeOutput, error) {
		b := input.Body
		employee, err := svc.UpdateEmployee(ctx, input.ID, input.DealerID, app.EmployeeUpdate{
			Name:           domain.FromPtr(b.Name),
			Email:          domain.FromPtr(b.Email),
			Phone:          domain.FromPtr(b.Phone),
			Role:           domain.FromPtr((*domain.Role)(b.Role)),
			Salary:         domain.FromPtr(b.Salary),
			AvatarURL:      domain.FromPtr(b.AvatarURL),
			AadharImageURL: domain.FromPtr(b.AadharImageURL),
			Password:       domain.FromPtr(b.Password),
			JoiningDate:    domain.FromPtr(b.JoiningDate),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &EmployeeOutput{Body: toEmployeeResponse(employee)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID:   "delete-employee",
		Method:        http.MethodDelete,
		Path:          base + "/{id}",
		Summary:       "Remove an employee",
		Description:   "Leads assigned to the employee become unassigned.",
		Tags:          []string{"Staff"},
		Middlewares:   g.tenant,
		DefaultStatus: http.StatusNoContent,
	}, func(ctx context.Context, input *EmployeeInput) (*struct{}, error) {
		if err := svc.DeleteEmployee(ctx, input.ID, input.DealerID); err != nil {
			return nil, toHumaError(err)
		}
		return nil, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "generate-salary-slip",
		Method:      http.MethodPost,
		Path:        prefix + "/employees/{id}/salary-slips",
		Summary:     "Generate a monthly salary slip",
		Description: "Snapshots the employee's current salary. One slip per employee per month.",
		Tags:        []string{"Payroll"},
		Middlewares: g.employee,
	}, func(ctx context.Context, input *GenerateSlipInput) (*SalarySlipOutput, error) {
		slip, err := svc.GenerateSalarySlip(ctx, input.ID, app.SlipRequest{
			Month:      input.Body.Month,
			Year:       input.Body.Year,
			Incentives: input.Body.Incentives,
			Status:     domain.SlipStatus(input.Body.Status),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &SalarySlipOutput{Body: toSlipResponse(slip)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "list-salary-slips",
		Method:      http.MethodGet,
		Path:        prefix + "/employees/{id}/salary-slips",
		Summary:     "List an employee's salary slips",
		Tags:        []string{"Payroll"},
		Middlewares: g.employee,
	}, func(ctx context.Context, input *SalarySlipsInput) (*ListSalarySlipsOutput, error) {
		slips, err := svc.ListSalarySlips(ctx, input.ID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &ListSalarySlipsOutput{Body: toSlipResponses(slips)}, nil
	})
}
