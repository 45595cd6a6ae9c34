package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/adapter/auth"
	"github.com/neomorfeo/dealerops/internal/app"
)

type LoginInput struct {
	Body struct {
		Phone    string `json:"phone" minLength:"1"`
		Password string `json:"password" minLength:"1"`
	}
}

// TokenResponse carries a signed session token.
type TokenResponse struct {
	Token     string `json:"token" doc:"Bearer token"`
	ExpiresAt string `json:"expires_at" doc:"Expiry timestamp (ISO 8601)"`
	Role      string `json:"role" enum:"admin,dealer,employee"`
}

type DealerLoginOutput struct {
	Body struct {
		TokenResponse
		Dealer DealerResponse `json:"dealer"`
	}
}

type EmployeeLoginOutput struct {
	Body struct {
		TokenResponse
		Employee EmployeeResponse `json:"employee"`
	}
}

func registerLoginRoutes(api huma.API, svc *app.AuthService, tokens *auth.Tokens) {
	huma.Register(api, huma.Operation{
		OperationID: "dealer-login",
		Method:      http.MethodPost,
		Path:        prefix + "/auth/dealer",
		Summary:     "Sign in as a dealer",
		Description: "Only approved dealers may sign in. The system account receives an admin token.",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*DealerLoginOutput, error) {
		dealer, err := svc.AuthenticateDealer(ctx, input.Body.Phone, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}

		role := auth.RoleDealer
		if dealer.IsSystemAccount {
			role = auth.RoleAdmin
		}
		token, err := issue(tokens, dealer.ID, role, dealer.ID)
		if err != nil {
			return nil, err
		}

		out := &DealerLoginOutput{}
		out.Body.TokenResponse = token
		out.Body.Dealer = toDealerResponse(dealer)
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "employee-login",
		Method:      http.MethodPost,
		Path:        prefix + "/auth/employee",
		Summary:     "Sign in as an employee",
		Description: "The employee's dealer must be approved.",
		Tags:        []string{"Auth"},
	}, func(ctx context.Context, input *LoginInput) (*EmployeeLoginOutput, error) {
		employee, err := svc.AuthenticateEmployee(ctx, input.Body.Phone, input.Body.Password)
		if err != nil {
			return nil, toHumaError(err)
		}

		token, err := issue(tokens, employee.ID, auth.RoleEmployee, employee.DealerID)
		if err != nil {
			return nil, err
		}

		out := &EmployeeLoginOutput{}
		out.Body.TokenResponse = token
		out.Body.Employee = toEmployeeResponse(employee)
		return out, nil
	})
}

func issue(tokens *auth.Tokens, subject, role, dealerID string) (TokenResponse, error) {
	signed, expires, err := tokens.Issue(subject, role, dealerID)
	if err != nil {
		return TokenResponse{}, huma.Error500InternalServerError("could not issue token")
	}
	return TokenResponse{Token: signed, ExpiresAt: formatTime(expires), Role: role}, nil
}
