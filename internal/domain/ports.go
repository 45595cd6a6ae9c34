package domain

import (
	"context"
	"time"
)

// DealerRepository defines the persistence contract for dealers.
type DealerRepository interface {
	CreateDealer(ctx context.Context, dealer Dealer) error
	GetDealer(ctx context.Context, id string) (Dealer, error)
	GetDealerByPhone(ctx context.Context, phone string) (Dealer, error)
	GetDealerByEmail(ctx context.Context, email string) (Dealer, error)
	GetSystemAccount(ctx context.Context) (Dealer, error)
	ListDealers(ctx context.Context, filter DealerFilter) ([]DealerSummary, error)
	UpdateDealer(ctx context.Context, id string, patch DealerPatch) error
	SetDealerStatus(ctx context.Context, id string, status DealerStatus, reason string) error
	CountDealerRows(ctx context.Context, id string) (DealerFootprint, error)
	DeleteDealer(ctx context.Context, id string) error
}

// DealerFilter holds optional criteria for listing dealers. The system account
// is always excluded.
type DealerFilter struct {
	Status *DealerStatus
}

// DealerFootprint counts the rows owned by a dealer.
type DealerFootprint struct {
	Vehicles    int
	Employees   int
	Leads       int
	SalarySlips int
	Website     int
}

// VehicleRepository defines the persistence contract for vehicles.
type VehicleRepository interface {
	CreateVehicle(ctx context.Context, vehicle Vehicle) error
	GetVehicle(ctx context.Context, id string) (Vehicle, error)
	ListVehicles(ctx context.Context, filter VehicleFilter) ([]Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, patch VehiclePatch) error
	SetVehicleStatus(ctx context.Context, id string, status VehicleStatus) error
	RecordSale(ctx context.Context, id string, sale Sale) error
	ClearSale(ctx context.Context, id string, status VehicleStatus) error
	DeleteVehicle(ctx context.Context, id string) error
}

// VehicleFilter holds optional criteria for listing vehicles.
type VehicleFilter struct {
	DealerID string
	Status   *VehicleStatus
}

// EmployeeRepository defines the persistence contract for employees.
// List and Get populate LeadsThisMonth for the given period.
type EmployeeRepository interface {
	CreateEmployee(ctx context.Context, employee Employee) error
	GetEmployee(ctx context.Context, id string, period Period) (Employee, error)
	GetEmployeeByPhone(ctx context.Context, phone string, period Period) (Employee, error)
	ListEmployees(ctx context.Context, dealerID string, period Period) ([]Employee, error)
	UpdateEmployee(ctx context.Context, id string, patch EmployeePatch) error
	DeleteEmployee(ctx context.Context, id string) error
}

// Period is a half-open time range [From, To).
type Period struct {
	From time.Time
	To   time.Time
}

// MonthOf returns the UTC calendar month containing t.
func MonthOf(t time.Time) Period {
	t = t.UTC()
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	return Period{From: from, To: from.AddDate(0, 1, 0)}
}

// LeadRepository defines the persistence contract for leads.
type LeadRepository interface {
	CreateLead(ctx context.Context, lead Lead) error
	GetLead(ctx context.Context, id string) (LeadView, error)
	ListLeads(ctx context.Context, filter LeadFilter) ([]LeadView, error)
	UpdateLead(ctx context.Context, id string, patch LeadPatch) error
	ArchiveLeadsForVehicle(ctx context.Context, vehicleID string) (int, error)
}

// LeadFilter selects leads by owner. Archived leads are returned only when
// Archived is set.
type LeadFilter struct {
	DealerID   string
	EmployeeID string
	Archived   bool
}

// SalarySlipRepository defines the persistence contract for salary slips.
type SalarySlipRepository interface {
	CreateSalarySlip(ctx context.Context, slip SalarySlip) error
	ListSalarySlips(ctx context.Context, employeeID string) ([]SalarySlip, error)
}

// WebsiteRepository defines the persistence contract for website content.
type WebsiteRepository interface {
	GetWebsiteContent(ctx context.Context, dealerID string) (WebsiteContent, error)
	UpsertWebsiteContent(ctx context.Context, dealerID string, patch WebsitePatch) error
	SetWebsiteState(ctx context.Context, dealerID string, status WebsiteStatus, live bool) error
}

// InsightsRepository computes read-only aggregates.
type InsightsRepository interface {
	DashboardMetrics(ctx context.Context, dealerID string) (DashboardMetrics, error)
	OldestForSale(ctx context.Context, dealerID string, limit int) ([]Vehicle, error)
	StockBuckets(ctx context.Context, dealerID string, examples int) ([]StockBucket, error)
	PlatformCounts(ctx context.Context) (PlatformStats, error)
}

// Store is the full entity store. Atomic runs fn against a transaction-bound
// Store; the transaction commits when fn returns nil and rolls back otherwise.
type Store interface {
	DealerRepository
	VehicleRepository
	EmployeeRepository
	LeadRepository
	SalarySlipRepository
	WebsiteRepository
	InsightsRepository
	Atomic(ctx context.Context, fn func(tx Store) error) error
}

// Notification describes a committed lifecycle change.
type Notification struct {
	Kind     string
	DealerID string
	EntityID string
	Details  map[string]string
}

// Notification kinds.
const (
	NotifyDealerRegistered = "dealer.registered"
	NotifyDealerStatus     = "dealer.status_changed"
	NotifyDealerDeleted    = "dealer.deleted"
	NotifyVehicleSold      = "vehicle.sold"
	NotifyVehicleRelisted  = "vehicle.relisted"
	NotifySalarySlip       = "salary_slip.generated"
	NotifyWebsiteStatus    = "website.status_changed"
)

// EventPublisher defines the contract for emitting lifecycle notifications.
type EventPublisher interface {
	Publish(ctx context.Context, n Notification) error
}
