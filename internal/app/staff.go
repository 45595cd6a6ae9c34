package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const avatarPlaceholder = "https://api.dicebear.com/7.x/initials/svg?seed="

// StaffService manages a dealer's employees and their payroll.
type StaffService struct {
	Deps
}

// NewStaffService creates a service with the given adapters.
func NewStaffService(deps Deps) *StaffService {
	return &StaffService{Deps: deps.withDefaults()}
}

// NewEmployee is the input to AddEmployee. A zero JoiningDate means today.
type NewEmployee struct {
	Name           string
	Email          string
	Phone          string
	Role           domain.Role
	Salary         float64
	Password       string
	AvatarURL      string
	AadharImageURL string
	JoiningDate    time.Time
}

// AddEmployee onboards a staff member for dealerID.
func (s *StaffService) AddEmployee(ctx context.Context, dealerID string, in NewEmployee) (domain.Employee, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)

	for _, f := range []struct{ name, value string }{
		{"name", in.Name},
		{"phone", in.Phone},
		{"password", in.Password},
	} {
		if err := required(f.name, f.value); err != nil {
			return domain.Employee{}, err
		}
	}
	if !in.Role.Valid() {
		return domain.Employee{}, &domain.ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", in.Role)}
	}
	if in.Salary < 0 {
		return domain.Employee{}, &domain.ValidationError{Field: "salary", Reason: "must not be negative"}
	}

	if _, err := s.Store.GetDealer(ctx, dealerID); err != nil {
		return domain.Employee{}, err
	}
	if _, err := s.Store.GetEmployeeByPhone(ctx, in.Phone, domain.MonthOf(s.now())); err == nil {
		return domain.Employee{}, &domain.ConflictError{Entity: "employee", Field: "phone", Value: in.Phone}
	}

	hash, err := hashPassword(in.Password, s.PasswordCost)
	if err != nil {
		return domain.Employee{}, &domain.ValidationError{Field: "password", Reason: err.Error()}
	}

	now := s.now()
	e := domain.Employee{
		ID:             newID(),
		DealerID:       dealerID,
		Name:           in.Name,
		Email:          in.Email,
		Phone:          in.Phone,
		Role:           in.Role,
		Salary:         in.Salary,
		AvatarURL:      in.AvatarURL,
		AadharImageURL: in.AadharImageURL,
		PasswordHash:   hash,
		JoiningDate:    in.JoiningDate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if e.AvatarURL == "" {
		e.AvatarURL = avatarPlaceholder + url.QueryEscape(in.Name)
	}
	if e.JoiningDate.IsZero() {
		e.JoiningDate = now
	}

	if err := s.Store.CreateEmployee(ctx, e); err != nil {
		return domain.Employee{}, fmt.Errorf("creating employee: %w", err)
	}

	s.Logger.Info("employee added", zap.String("dealer_id", dealerID), zap.String("employee_id", e.ID))
	e.SalarySlips = []domain.SalarySlip{}
	return e, nil
}

// GetEmployee returns one employee with LeadsThisMonth for the current month.
func (s *StaffService) GetEmployee(ctx context.Context, id, dealerID string) (domain.Employee, error) {
	return s.ownedEmployee(ctx, s.Store, id, dealerID)
}

// ListEmployees returns the dealer's staff with salary slips and the number
// of leads each was assigned this month.
func (s *StaffService) ListEmployees(ctx context.Context, dealerID string) ([]domain.Employee, error) {
	return s.Store.ListEmployees(ctx, dealerID, domain.MonthOf(s.now()))
}

// EmployeeUpdate lists the mutable employee fields. An empty Password leaves
// the stored hash untouched.
type EmployeeUpdate struct {
	Name           domain.Field[string]
	Email          domain.Field[string]
	Phone          domain.Field[string]
	Role           domain.Field[domain.Role]
	Salary         domain.Field[float64]
	AvatarURL      domain.Field[string]
	AadharImageURL domain.Field[string]
	Password       domain.Field[string]
	JoiningDate    domain.Field[time.Time]
}

// UpdateEmployee applies a partial change and returns the stored employee.
func (s *StaffService) UpdateEmployee(ctx context.Context, id, dealerID string, u EmployeeUpdate) (domain.Employee, error) {
	if r, ok := u.Role.Get(); ok && !r.Valid() {
		return domain.Employee{}, &domain.ValidationError{Field: "role", Reason: fmt.Sprintf("unknown role %q", r)}
	}
	if u.Role.Present && u.Role.Null {
		return domain.Employee{}, &domain.ValidationError{Field: "role", Reason: "must not be empty"}
	}
	for _, f := range []struct {
		name  string
		field domain.Field[string]
	}{{"name", u.Name}, {"phone", u.Phone}} {
		if f.field.Present && (f.field.Null || f.field.Value == "") {
			return domain.Employee{}, &domain.ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}

	patch := domain.EmployeePatch{
		Name:           u.Name,
		Email:          u.Email,
		Phone:          u.Phone,
		Role:           u.Role,
		Salary:         u.Salary,
		AvatarURL:      u.AvatarURL,
		AadharImageURL: u.AadharImageURL,
		JoiningDate:    u.JoiningDate,
	}
	if pw, ok := u.Password.Get(); ok && pw != "" {
		hash, err := hashPassword(pw, s.PasswordCost)
		if err != nil {
			return domain.Employee{}, &domain.ValidationError{Field: "password", Reason: err.Error()}
		}
		patch.PasswordHash = domain.Set(hash)
	}

	var updated domain.Employee
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := s.ownedEmployee(ctx, tx, id, dealerID); err != nil {
			return err
		}
		if err := tx.UpdateEmployee(ctx, id, patch); err != nil {
			return err
		}
		var err error
		updated, err = s.ownedEmployee(ctx, tx, id, dealerID)
		return err
	})
	if err != nil {
		return domain.Employee{}, err
	}
	return updated, nil
}

// DeleteEmployee removes an employee and their salary slips. Leads assigned
// to them become unassigned.
func (s *StaffService) DeleteEmployee(ctx context.Context, id, dealerID string) error {
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := s.ownedEmployee(ctx, tx, id, dealerID); err != nil {
			return err
		}
		return tx.DeleteEmployee(ctx, id)
	})
	if err != nil {
		return err
	}
	s.Logger.Info("employee deleted", zap.String("employee_id", id))
	return nil
}

// SlipRequest is the input to GenerateSalarySlip. Status defaults to Pending.
type SlipRequest struct {
	Month      int
	Year       int
	Incentives float64
	Status     domain.SlipStatus
}

// GenerateSalarySlip snapshots the employee's current salary into a slip for
// one month. A second slip for the same month and year is a conflict.
func (s *StaffService) GenerateSalarySlip(ctx context.Context, employeeID string, req SlipRequest) (domain.SalarySlip, error) {
	if req.Month < 1 || req.Month > 12 {
		return domain.SalarySlip{}, &domain.ValidationError{Field: "month", Reason: "must be between 1 and 12"}
	}
	if req.Year < 1 {
		return domain.SalarySlip{}, &domain.ValidationError{Field: "year", Reason: "must be positive"}
	}
	if req.Incentives < 0 {
		return domain.SalarySlip{}, &domain.ValidationError{Field: "incentives", Reason: "must not be negative"}
	}
	switch req.Status {
	case "":
		req.Status = domain.SlipPending
	case domain.SlipPending, domain.SlipPaid:
	default:
		return domain.SalarySlip{}, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown slip status %q", req.Status)}
	}

	e, err := s.Store.GetEmployee(ctx, employeeID, domain.MonthOf(s.now()))
	if err != nil {
		return domain.SalarySlip{}, err
	}

	slip := domain.SalarySlip{
		ID:            newID(),
		EmployeeID:    e.ID,
		DealerID:      e.DealerID,
		Month:         req.Month,
		Year:          req.Year,
		BaseSalary:    e.Salary,
		Incentives:    req.Incentives,
		Status:        req.Status,
		GeneratedDate: s.now(),
	}
	if err := s.Store.CreateSalarySlip(ctx, slip); err != nil {
		return domain.SalarySlip{}, fmt.Errorf("creating salary slip: %w", err)
	}

	s.Logger.Info("salary slip generated",
		zap.String("employee_id", e.ID),
		zap.Int("month", slip.Month),
		zap.Int("year", slip.Year),
		zap.Float64("total", slip.Total()),
	)
	s.notify(ctx, domain.Notification{
		Kind:     domain.NotifySalarySlip,
		DealerID: e.DealerID,
		EntityID: slip.ID,
		Details: map[string]string{
			"employee_id": e.ID,
			"period":      fmt.Sprintf("%02d/%d", slip.Month, slip.Year),
		},
	})

	return slip, nil
}

// ListSalarySlips returns an employee's slips, newest period first.
func (s *StaffService) ListSalarySlips(ctx context.Context, employeeID string) ([]domain.SalarySlip, error) {
	if _, err := s.Store.GetEmployee(ctx, employeeID, domain.MonthOf(s.now())); err != nil {
		return nil, err
	}
	return s.Store.ListSalarySlips(ctx, employeeID)
}

// EmployeeDealer returns the ID of the dealer an employee works for.
func (s *StaffService) EmployeeDealer(ctx context.Context, id string) (string, error) {
	e, err := s.ownedEmployee(ctx, s.Store, id, "")
	if err != nil {
		return "", err
	}
	return e.DealerID, nil
}

func (s *StaffService) ownedEmployee(ctx context.Context, store domain.EmployeeRepository, id, dealerID string) (domain.Employee, error) {
	e, err := store.GetEmployee(ctx, id, domain.MonthOf(s.now()))
	if err != nil {
		return domain.Employee{}, err
	}
	if dealerID != "" && e.DealerID != dealerID {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	return e, nil
}
