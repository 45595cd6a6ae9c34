package http

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/neomorfeo/dealerops/internal/app"
)

// DashboardResponse holds a dealer's headline figures.
type DashboardResponse struct {
	TotalStockValue     float64 `json:"total_stock_value" doc:"Sum of asking prices of unsold vehicles"`
	TotalStockCount     int     `json:"total_stock_count" doc:"Vehicles not sold"`
	AvailableStockCount int     `json:"available_stock_count" doc:"Vehicles for sale"`
	TotalSalesCount     int     `json:"total_sales_count"`
	TotalProfit         float64 `json:"total_profit" doc:"Selling price minus cost and refurbishment over sold vehicles"`
	ActiveLeadsCount    int     `json:"active_leads_count"`
	TotalRefurbCost     float64 `json:"total_refurb_cost"`
}

// AgingVehicleResponse is a for-sale vehicle with its days in stock.
type AgingVehicleResponse struct {
	VehicleResponse
	DaysInStock int `json:"days_in_stock"`
}

// StockExampleResponse is a compact vehicle reference.
type StockExampleResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"name"`
	RegistrationNumber string  `json:"registration_number"`
	Price              float64 `json:"price" doc:"Selling price for sold vehicles, asking price otherwise"`
}

// StockBucketResponse is one status bucket of the stock overview.
type StockBucketResponse struct {
	Status   string                 `json:"status"`
	Count    int                    `json:"count"`
	Examples []StockExampleResponse `json:"examples"`
}

// PlatformStatsResponse is the admin-wide overview.
type PlatformStatsResponse struct {
	TotalVehicles      int                     `json:"total_vehicles"`
	TotalEmployees     int                     `json:"total_employees"`
	LiveWebsites       int                     `json:"live_websites"`
	ApprovedDealers    []DealerSummaryResponse `json:"approved_dealers"`
	PendingDealers     []DealerSummaryResponse `json:"pending_dealers"`
	DeactivatedDealers []DealerSummaryResponse `json:"deactivated_dealers"`
}

type DealerInsightInput struct {
	DealerID string `path:"dealerID" doc:"Dealer ID"`
}

type DashboardOutput struct {
	Body DashboardResponse
}

type AgingOutput struct {
	Body []AgingVehicleResponse
}

type StockOverviewOutput struct {
	Body []StockBucketResponse
}

type PlatformStatsOutput struct {
	Body PlatformStatsResponse
}

func registerInsightRoutes(api huma.API, svc *app.InsightsService, g guards) {
	base := prefix + "/dealers/{dealerID}"

	huma.Register(api, huma.Operation{
		OperationID: "dealer-dashboard",
		Method:      http.MethodGet,
		Path:        base + "/dashboard",
		Summary:     "Dealer dashboard metrics",
		Tags:        []string{"Insights"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *DealerInsightInput) (*DashboardOutput, error) {
		m, err := svc.DashboardMetrics(ctx, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &DashboardOutput{Body: DashboardResponse{
			TotalStockValue:     m.TotalStockValue,
			TotalStockCount:     m.TotalStockCount,
			AvailableStockCount: m.AvailableStockCount,
			TotalSalesCount:     m.TotalSalesCount,
			TotalProfit:         m.TotalProfit,
			ActiveLeadsCount:    m.ActiveLeadsCount,
			TotalRefurbCost:     m.TotalRefurbCost,
		}}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "aging-inventory",
		Method:      http.MethodGet,
		Path:        base + "/aging-inventory",
		Summary:     "Oldest vehicles still for sale",
		Tags:        []string{"Insights"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *DealerInsightInput) (*AgingOutput, error) {
		aging, err := svc.AgingInventory(ctx, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := make([]AgingVehicleResponse, len(aging))
		for i, a := range aging {
			out[i] = AgingVehicleResponse{VehicleResponse: toVehicleResponse(a.Vehicle), DaysInStock: a.DaysInStock}
		}
		return &AgingOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "stock-overview",
		Method:      http.MethodGet,
		Path:        base + "/stock-overview",
		Summary:     "Vehicle counts and examples per status",
		Tags:        []string{"Insights"},
		Middlewares: g.tenant,
	}, func(ctx context.Context, input *DealerInsightInput) (*StockOverviewOutput, error) {
		buckets, err := svc.StockOverview(ctx, input.DealerID)
		if err != nil {
			return nil, toHumaError(err)
		}
		out := make([]StockBucketResponse, len(buckets))
		for i, b := range buckets {
			examples := make([]StockExampleResponse, len(b.Examples))
			for j, ex := range b.Examples {
				examples[j] = StockExampleResponse(ex)
			}
			out[i] = StockBucketResponse{Status: string(b.Status), Count: b.Count, Examples: examples}
		}
		return &StockOverviewOutput{Body: out}, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "platform-stats",
		Method:      http.MethodGet,
		Path:        prefix + "/admin/stats",
		Summary:     "Platform-wide totals and dealer roster",
		Description: "The system account and its data are excluded.",
		Tags:        []string{"Admin"},
		Middlewares: g.admin,
	}, func(ctx context.Context, _ *struct{}) (*PlatformStatsOutput, error) {
		stats, err := svc.PlatformStats(ctx)
		if err != nil {
			return nil, toHumaError(err)
		}
		return &PlatformStatsOutput{Body: PlatformStatsResponse{
			TotalVehicles:      stats.TotalVehicles,
			TotalEmployees:     stats.TotalEmployees,
			LiveWebsites:       stats.LiveWebsites,
			ApprovedDealers:    toDealerSummaries(stats.ApprovedDealers),
			PendingDealers:     toDealerSummaries(stats.PendingDealers),
			DeactivatedDealers: toDealerSummaries(stats.DeactivatedDealers),
		}}, nil
	})
}
