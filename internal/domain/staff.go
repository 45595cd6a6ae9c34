package domain

import "time"

// Role is an employee's job within the dealership.
type Role string

const (
	RoleSalesManager   Role = "Sales Manager"
	RoleSalesExecutive Role = "Sales Executive"
	RoleServiceAdvisor Role = "Service Advisor"
	RoleMechanic       Role = "Mechanic"
	RoleAccountant     Role = "Accountant"
	RoleReceptionist   Role = "Receptionist"
	RoleDriver         Role = "Driver"
	RoleOther          Role = "Other"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleSalesManager, RoleSalesExecutive, RoleServiceAdvisor, RoleMechanic,
		RoleAccountant, RoleReceptionist, RoleDriver, RoleOther:
		return true
	}
	return false
}

// Employee is a staff member of one dealer.
type Employee struct {
	ID             string
	DealerID       string
	Name           string
	Email          string
	Phone          string
	Role           Role
	Salary         float64
	AvatarURL      string
	AadharImageURL string
	PasswordHash   string
	JoiningDate    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time

	// LeadsThisMonth is computed on read and never stored.
	LeadsThisMonth int
	SalarySlips    []SalarySlip
}

// EmployeePatch lists the mutable employee fields.
type EmployeePatch struct {
	Name           Field[string]
	Email          Field[string]
	Phone          Field[string]
	Role           Field[Role]
	Salary         Field[float64]
	AvatarURL      Field[string]
	AadharImageURL Field[string]
	PasswordHash   Field[string]
	JoiningDate    Field[time.Time]
}

// SlipStatus is the payment state of a salary slip.
type SlipStatus string

const (
	SlipPending SlipStatus = "Pending"
	SlipPaid    SlipStatus = "Paid"
)

// SalarySlip is an immutable monthly payroll record for one employee.
type SalarySlip struct {
	ID            string
	EmployeeID    string
	DealerID      string
	Month         int
	Year          int
	BaseSalary    float64
	Incentives    float64
	Status        SlipStatus
	GeneratedDate time.Time
}

// Total is base salary plus incentives.
func (s SalarySlip) Total() float64 {
	return s.BaseSalary + s.Incentives
}
