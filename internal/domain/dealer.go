package domain

import "time"

// DealerStatus represents the approval state of a dealer account.
type DealerStatus string

const (
	DealerPending     DealerStatus = "pending"
	DealerApproved    DealerStatus = "approved"
	DealerDeactivated DealerStatus = "deactivated"
)

// VehicleCategory is the kind of stock a dealership trades in.
type VehicleCategory string

const (
	CategoryTwoWheeler  VehicleCategory = "TwoWheeler"
	CategoryFourWheeler VehicleCategory = "FourWheeler"
	CategoryHybrid      VehicleCategory = "Hybrid"
)

// Valid reports whether c is a known category.
func (c VehicleCategory) Valid() bool {
	switch c {
	case CategoryTwoWheeler, CategoryFourWheeler, CategoryHybrid:
		return true
	}
	return false
}

// Dealer is the tenant root.
type Dealer struct {
	ID                 string
	Name               string
	DealershipName     string
	Phone              string
	Email              string
	City               string
	State              string
	VehicleCategory    VehicleCategory
	PasswordHash       string
	Status             DealerStatus
	DeactivationReason string
	IsSystemAccount    bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewDealer creates a dealer in the initial "pending" state.
func NewDealer(id, name, dealershipName, phone, email string, category VehicleCategory, passwordHash string) Dealer {
	now := time.Now().UTC()
	return Dealer{
		ID:              id,
		Name:            name,
		DealershipName:  dealershipName,
		Phone:           phone,
		Email:           email,
		VehicleCategory: category,
		PasswordHash:    passwordHash,
		Status:          DealerPending,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// DealerEvent returns the lifecycle event that moves a dealer into target.
func DealerEvent(target DealerStatus) (Event, bool) {
	switch target {
	case DealerApproved:
		return EventApprove, true
	case DealerDeactivated:
		return EventDeactivate, true
	case DealerPending:
		return EventReset, true
	}
	return "", false
}

// DealerPatch lists the profile fields a dealer may change.
type DealerPatch struct {
	Name            Field[string]
	DealershipName  Field[string]
	Email           Field[string]
	City            Field[string]
	State           Field[string]
	VehicleCategory Field[VehicleCategory]
	PasswordHash    Field[string]
}

// DealerSummary is a dealer row joined with its website state, used by admin views.
type DealerSummary struct {
	Dealer
	WebsiteStatus WebsiteStatus
	WebsiteLive   bool
}
