package domain

import "time"

// TestDriveStatus tracks a lead's test drive.
type TestDriveStatus string

const (
	TestDriveScheduled    TestDriveStatus = "Scheduled"
	TestDriveCompleted    TestDriveStatus = "Completed"
	TestDriveNoShow       TestDriveStatus = "NoShow"
	TestDriveNotScheduled TestDriveStatus = "NotScheduled"
)

// Valid reports whether s is a known test drive status.
func (s TestDriveStatus) Valid() bool {
	switch s {
	case TestDriveScheduled, TestDriveCompleted, TestDriveNoShow, TestDriveNotScheduled:
		return true
	}
	return false
}

// ConversionStatus tracks where a lead is in the sales funnel.
type ConversionStatus string

const (
	ConversionInProgress ConversionStatus = "InProgress"
	ConversionConverted  ConversionStatus = "Converted"
	ConversionLost       ConversionStatus = "Lost"
)

// Valid reports whether s is a known conversion status.
func (s ConversionStatus) Valid() bool {
	switch s {
	case ConversionInProgress, ConversionConverted, ConversionLost:
		return true
	}
	return false
}

// Lead is a prospective customer. VehicleID and the Other* fields are mutually
// exclusive; both empty means "any vehicle".
type Lead struct {
	ID               string
	DealerID         string
	VehicleID        string
	AssignedTo       string
	Name             string
	Phone            string
	Email            string
	TestDriveStatus  TestDriveStatus
	ConversionStatus ConversionStatus
	OtherVehicleName string
	OtherVehicleReg  string
	Notes            string
	IsArchived       bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LeadView is a lead joined with the names of what it references.
type LeadView struct {
	Lead
	VehicleName         string
	VehicleRegistration string
	AssignedToName      string
}

// LeadPatch lists the mutable lead fields. IsArchived is intentionally absent.
type LeadPatch struct {
	Name             Field[string]
	Phone            Field[string]
	Email            Field[string]
	AssignedTo       Field[string]
	TestDriveStatus  Field[TestDriveStatus]
	ConversionStatus Field[ConversionStatus]
	Notes            Field[string]
}
