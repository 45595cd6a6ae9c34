package domain

import "time"

// DashboardMetrics are the per-dealer headline figures.
type DashboardMetrics struct {
	TotalStockValue     float64
	TotalStockCount     int
	AvailableStockCount int
	TotalSalesCount     int
	TotalProfit         float64
	ActiveLeadsCount    int
	TotalRefurbCost     float64
}

// AgingVehicle is a For Sale vehicle annotated with how long it has been in stock.
type AgingVehicle struct {
	Vehicle
	DaysInStock int
}

// StockExample is a compact vehicle reference shown in the stock overview.
type StockExample struct {
	ID                 string
	Name               string
	RegistrationNumber string
	Price              float64
}

// StockBucket is the count and a few examples for one vehicle status.
type StockBucket struct {
	Status   VehicleStatus
	Count    int
	Examples []StockExample
}

// PlatformStats are the admin-wide figures. The system account is never included.
type PlatformStats struct {
	TotalVehicles      int
	TotalEmployees     int
	LiveWebsites       int
	ApprovedDealers    []DealerSummary
	PendingDealers     []DealerSummary
	DeactivatedDealers []DealerSummary
}

// DaysBetween returns the number of whole days from since to now.
func DaysBetween(since, now time.Time) int {
	if now.Before(since) {
		return 0
	}
	return int(now.Sub(since).Hours() / 24)
}
