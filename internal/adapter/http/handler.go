package http

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/adapter/auth"
	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

const prefix = "/api/v1"

// guards holds the per-route authorization middleware sets.
type guards struct {
	admin    huma.Middlewares // system account only
	dealer   huma.Middlewares // /dealers/{id}
	tenant   huma.Middlewares // /dealers/{dealerID}/...
	employee huma.Middlewares // /employees/{id}/...
}

// Register adds every API route to the Huma API. Routes under /admin require
// a bearer token issued to the system account. Dealer and employee routes
// require a token for the owning dealer; admin tokens pass everywhere.
func Register(api huma.API, svc *app.Services, tokens *auth.Tokens) {
	g := guards{
		admin:    huma.Middlewares{requireAdmin(api, tokens)},
		dealer:   huma.Middlewares{requireTenant(api, tokens, "id")},
		tenant:   huma.Middlewares{requireTenant(api, tokens, "dealerID")},
		employee: huma.Middlewares{requireEmployer(api, tokens, svc.Staff)},
	}

	registerDealerRoutes(api, svc.Dealers, g)
	registerInventoryRoutes(api, svc.Inventory, g)
	registerStaffRoutes(api, svc.Staff, g)
	registerLeadRoutes(api, svc.Leads, g)
	registerWebsiteRoutes(api, svc.Website, g)
	registerInsightRoutes(api, svc.Insights, g)
	registerLoginRoutes(api, svc.Auth, tokens)
}

// bearerClaims verifies the request's bearer token. On failure it writes a
// 401 and reports false.
func bearerClaims(api huma.API, ctx huma.Context, tokens *auth.Tokens) (*auth.Claims, bool) {
	raw, ok := strings.CutPrefix(ctx.Header("Authorization"), "Bearer ")
	if !ok || raw == "" {
		_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing bearer token")
		return nil, false
	}
	claims, err := tokens.Verify(raw)
	if err != nil {
		_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid bearer token")
		return nil, false
	}
	return claims, true
}

// requireAdmin rejects requests without a valid admin bearer token.
func requireAdmin(api huma.API, tokens *auth.Tokens) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		claims, ok := bearerClaims(api, ctx, tokens)
		if !ok {
			return
		}
		if claims.Role != auth.RoleAdmin {
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "admin access required")
			return
		}
		next(ctx)
	}
}

// requireTenant admits dealer tokens whose DealerID matches the named path
// parameter. Employee tokens are refused on dealer routes.
func requireTenant(api huma.API, tokens *auth.Tokens, param string) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		claims, ok := bearerClaims(api, ctx, tokens)
		if !ok {
			return
		}
		if claims.Role == auth.RoleAdmin {
			next(ctx)
			return
		}
		if claims.Role != auth.RoleDealer || claims.DealerID != ctx.Param(param) {
			_ = huma.WriteErr(api, ctx, http.StatusForbidden, "token does not grant access to this dealer")
			return
		}
		next(ctx)
	}
}

// employeeDirectory resolves which dealer employs a given employee.
type employeeDirectory interface {
	EmployeeDealer(ctx context.Context, id string) (string, error)
}

// requireEmployer admits the employee named by {id} acting on themselves, and
// dealer tokens for the dealer that employs them.
func requireEmployer(api huma.API, tokens *auth.Tokens, staff employeeDirectory) func(huma.Context, func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		claims, ok := bearerClaims(api, ctx, tokens)
		if !ok {
			return
		}
		id := ctx.Param("id")
		switch claims.Role {
		case auth.RoleAdmin:
			next(ctx)
			return
		case auth.RoleEmployee:
			if claims.Subject == id {
				next(ctx)
				return
			}
		case auth.RoleDealer:
			dealerID, err := staff.EmployeeDealer(ctx.Context(), id)
			if errors.Is(err, domain.ErrNotFound) {
				_ = huma.WriteErr(api, ctx, http.StatusNotFound, err.Error())
				return
			}
			if err != nil {
				_ = huma.WriteErr(api, ctx, http.StatusInternalServerError, "internal server error")
				return
			}
			if dealerID == claims.DealerID {
				next(ctx)
				return
			}
		}
		_ = huma.WriteErr(api, ctx, http.StatusForbidden, "token does not grant access to this employee")
	}
}

// toHumaError translates domain errors to Huma HTTP errors.
func toHumaError(err error) error {
	if errors.Is(err, domain.ErrNotFound) {
		return huma.Error404NotFound(err.Error())
	}

	var conflict *domain.ConflictError
	if errors.As(err, &conflict) {
		return huma.Error409Conflict(conflict.Error())
	}

	var trErr *domain.TransitionError
	if errors.As(err, &trErr) {
		return huma.Error422UnprocessableEntity(trErr.Error())
	}

	var valErr *domain.ValidationError
	if errors.As(err, &valErr) {
		return huma.Error422UnprocessableEntity(valErr.Error())
	}

	if errors.Is(err, domain.ErrInvalidCredentials) {
		return huma.Error401Unauthorized(err.Error())
	}

	var deactivated *domain.AccountDeactivatedError
	if errors.As(err, &deactivated) {
		return huma.Error403Forbidden(deactivated.Error())
	}
	if errors.Is(err, domain.ErrAccountPending) {
		return huma.Error403Forbidden(err.Error())
	}

	return huma.Error500InternalServerError("internal server error")
}
