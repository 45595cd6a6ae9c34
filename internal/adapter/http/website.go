package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

// --- Inputs ---

type WebsiteInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
}

type UpsertWebsiteInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	Body     struct {
		BrandName    *string `json:"brand_name,omitempty" doc:"Empty string falls back to the dealership name"`
		LogoURL      *string `json:"logo_url,omitempty"`
		Tagline      *string `json:"tagline,omitempty"`
		AboutUs      *string `json:"about_us,omitempty"`
		ContactPhone *string `json:"contact_phone,omitempty"`
		ContactEmail *string `json:"contact_email,omitempty"`
		Address      *string `json:"address,omitempty"`
		ActiveTheme  *string `json:"active_theme,omitempty"`
	}
}

type SetLiveInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
	Body     struct {
		Live bool `json:"live" doc:"Only an approved site can go live"`
	}
}

type WebsiteApprovalInput struct {
	ID   string `path:"id" doc:"Dealer ID"`
	Body struct {
		Status string `json:"status" enum:"approved,rejected"`
		Live   *bool  `json:"live,omitempty" doc:"Whether an approved site goes live, true by default"`
	}
}

// --- Outputs ---

type WebsiteOutput struct {
	Body WebsiteResponse
}

func registerWebsiteRoutes(api huma.API, svc *app.WebsiteService, g guards) {
	base := prefix + "/dealers/{dealerID}/website"

	huma.Register(api, huma.Operation{
		OperationID: "get-website",
		Method:      http.MethodGet,
		Path:        base,
		Summary:     "Get website content",
		Description: "Empty identity fields fall back to the dealer profile.",
		Tags:        []string{"Website"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *WebsiteInput) (*WebsiteOutput, error) {
		content, err := svc.Get(ctx, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &WebsiteOutput{Body: toWebsiteResponse(content)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "upsert-website",
		Method:      http.MethodPut,
		Path:        base,
		Summary:     "Save website content",
		Tags:        []string{"Website"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *UpsertWebsiteInput) (*WebsiteOutput, error) {
		b := input.Body
		content, err := svc.Upsert(ctx, input.DealerID, domain.WebsitePatch{
			BrandName:    domain.FromPtr(b.BrandName),
			LogoURL:      domain.FromPtr(b.LogoURL),
			Tagline:      domain.FromPtr(b.Tagline),
			AboutUs:      domain.FromPtr(b.AboutUs),
			ContactPhone: domain.FromPtr(b.ContactPhone),
			ContactEmail: domain.FromPtr(b.ContactEmail),
			Address:      domain.FromPtr(b.Address),
			ActiveTheme:  domain.FromPtr(b.ActiveTheme),
		})
		if err != nil {
			return nil, toHumaError(err)
		}
		return &WebsiteOutput{Body: toWebsiteResponse(content)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "request-website-approval",
		Method:      http.MethodPost,
		Path:        base + "/request-approval",
		Summary:     "Ask the platform admin to approve the site",
		Tags:        []string{"Website"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *WebsiteInput) (*WebsiteOutput, error) {
		content, err := svc.RequestApproval(ctx, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &WebsiteOutput{Body: toWebsiteResponse(content)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "set-website-live",
		Method:      http.MethodPost,
		Path:        base + "/live",
		Summary:     "Take the site online or offline",
		Tags:        []string{"Website"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *SetLiveInput) (*WebsiteOutput, error) {
		content, err := svc.SetLive(ctx, input.DealerID, input.Body.Live)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &WebsiteOutput{Body: toWebsiteResponse(content)}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "decide-website-approval",
		Method:      http.MethodPost,
		Path:        prefix + "/admin/dealers/{id}/website/approval",
		Summary:     "Approve or reject a dealer's site",
		Tags:        []string{"Admin"},
		Middlewares: g.admin,
	}, func(ctx context.Context, input *WebsiteApprovalInput) (*WebsiteOutput, error) {
		content, err := svc.SetApproval(ctx, input.ID, domain.WebsiteStatus(input.Body.Status), input.Body.Live)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &WebsiteOutput{Body: toWebsiteResponse(content)}, nil
	})
}
