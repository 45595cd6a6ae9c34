package domain

import (
	"strings"
	"time"
)

// VehicleStatus represents the inventory state of a vehicle.
type VehicleStatus string

const (
	VehicleForSale         VehicleStatus = "For Sale"
	VehicleSold            VehicleStatus = "Sold"
	VehicleInRefurbishment VehicleStatus = "In Refurbishment"
	VehicleDraft           VehicleStatus = "Draft"
)

// VehicleStatuses lists every status bucket in display order.
var VehicleStatuses = []VehicleStatus{VehicleForSale, VehicleInRefurbishment, VehicleDraft, VehicleSold}

// LoanStatus describes any finance outstanding on an acquired vehicle.
type LoanStatus string

const (
	LoanHypoTerminated LoanStatus = "HypoTerminated"
	LoanOpen           LoanStatus = "OpenLoan"
	LoanClosed         LoanStatus = "ClosedLoan"
)

// ImageSet groups image URLs by category; each map is keyed by view (e.g. "front").
type ImageSet struct {
	Exterior map[string]string `json:"exterior,omitempty"`
	Interior map[string]string `json:"interior,omitempty"`
	Tyres    map[string]string `json:"tyres,omitempty"`
}

// Empty reports whether no image is set.
func (s ImageSet) Empty() bool {
	return len(s.Exterior) == 0 && len(s.Interior) == 0 && len(s.Tyres) == 0
}

// Vehicle is one unit of dealer inventory.
type Vehicle struct {
	ID                 string
	DealerID           string
	Make               string
	Model              string
	Variant            string
	Year               int
	ManufacturingYear  int
	RegistrationNumber string
	VIN                string
	Color              string
	Odometer           int
	FuelType           string
	Transmission       string

	SellerName         string
	SellerPhone        string
	BuyingDate         *time.Time
	BuyingPrice        float64
	LoanStatus         LoanStatus
	ForeclosureAmount  float64
	AmountPaidToSeller float64
	PaymentMethod      string

	Cost              float64
	RefurbishmentCost float64
	Price             float64
	SellingPrice      float64
	SellingDate       *time.Time
	BuyerName         string
	BuyerPhone        string
	BuyerAddress      string
	SalePaymentMethod string

	Documents map[string]string
	Images    ImageSet
	Status    VehicleStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DisplayName joins make, model and variant.
func (v Vehicle) DisplayName() string {
	return strings.Join(strings.Fields(v.Make+" "+v.Model+" "+v.Variant), " ")
}

// NormalizeRegistration upper-cases a registration number and strips whitespace.
func NormalizeRegistration(reg string) string {
	return strings.ToUpper(strings.Join(strings.Fields(reg), ""))
}

// VehicleEvent returns the event used by a manual status change into target.
// Sold is not reachable this way.
func VehicleEvent(target VehicleStatus) (Event, bool) {
	switch target {
	case VehicleForSale:
		return EventList, true
	case VehicleDraft:
		return EventUnlist, true
	case VehicleInRefurbishment:
		return EventRefurbish, true
	}
	return "", false
}

// VehiclePatch lists the mutable vehicle fields. Status is changed only through
// the lifecycle operations.
type VehiclePatch struct {
	Make               Field[string]
	Model              Field[string]
	Variant            Field[string]
	Year               Field[int]
	ManufacturingYear  Field[int]
	RegistrationNumber Field[string]
	VIN                Field[string]
	Color              Field[string]
	Odometer           Field[int]
	FuelType           Field[string]
	Transmission       Field[string]
	SellerName         Field[string]
	SellerPhone        Field[string]
	BuyingDate         Field[time.Time]
	BuyingPrice        Field[float64]
	LoanStatus         Field[LoanStatus]
	ForeclosureAmount  Field[float64]
	AmountPaidToSeller Field[float64]
	PaymentMethod      Field[string]
	Cost               Field[float64]
	RefurbishmentCost  Field[float64]
	Price              Field[float64]
	Documents          Field[map[string]string]
	Images             Field[ImageSet]
}

// Sale carries the fields stamped onto a vehicle when it is sold.
type Sale struct {
	SellingPrice      float64
	SellingDate       time.Time
	BuyerName         string
	BuyerPhone        string
	BuyerAddress      string
	PaymentMethod     string
	Cost              Field[float64]
	RefurbishmentCost Field[float64]
}
