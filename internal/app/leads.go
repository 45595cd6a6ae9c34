package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// LeadService manages a dealer's prospective customers.
type LeadService struct {
	Deps
}

// NewLeadService creates a service with the given adapters.
func NewLeadService(deps Deps) *LeadService {
	return &LeadService{Deps: deps.withDefaults()}
}

// NewLead is the input to AddLead. A lead names an inventory vehicle, or a
// vehicle outside inventory, or neither.
type NewLead struct {
	VehicleID        string
	AssignedTo       string
	Name             string
	Phone            string
	Email            string
	TestDriveStatus  domain.TestDriveStatus
	ConversionStatus domain.ConversionStatus
	OtherVehicleName string
	OtherVehicleReg  string
	Notes            string
}

// AddLead records a lead for dealerID.
func (s *LeadService) AddLead(ctx context.Context, dealerID string, in NewLead) (domain.LeadView, error) {
	in.Phone = strings.TrimSpace(in.Phone)
	if err := required("name", in.Name); err != nil {
		return domain.LeadView{}, err
	}
	if err := required("phone", in.Phone); err != nil {
		return domain.LeadView{}, err
	}
	if in.VehicleID != "" && (in.OtherVehicleName != "" || in.OtherVehicleReg != "") {
		return domain.LeadView{}, &domain.ValidationError{
			Field:  "vehicle_id",
			Reason: "cannot be combined with other_vehicle_name or other_vehicle_reg",
		}
	}

	if in.TestDriveStatus == "" {
		in.TestDriveStatus = domain.TestDriveNotScheduled
	}
	if in.ConversionStatus == "" {
		in.ConversionStatus = domain.ConversionInProgress
	}
	if err := validateLeadStatuses(in.TestDriveStatus, in.ConversionStatus); err != nil {
		return domain.LeadView{}, err
	}

	now := s.now()
	lead := domain.Lead{
		ID:               newID(),
		DealerID:         dealerID,
		VehicleID:        in.VehicleID,
		AssignedTo:       in.AssignedTo,
		Name:             in.Name,
		Phone:            in.Phone,
		Email:            strings.TrimSpace(in.Email),
		TestDriveStatus:  in.TestDriveStatus,
		ConversionStatus: in.ConversionStatus,
		OtherVehicleName: in.OtherVehicleName,
		OtherVehicleReg:  domain.NormalizeRegistration(in.OtherVehicleReg),
		Notes:            in.Notes,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	var view domain.LeadView
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := tx.GetDealer(ctx, dealerID); err != nil {
			return err
		}
		if err := checkLeadRefs(ctx, tx, dealerID, lead.VehicleID, lead.AssignedTo); err != nil {
			return err
		}
		if err := tx.CreateLead(ctx, lead); err != nil {
			return fmt.Errorf("creating lead: %w", err)
		}
		var err error
		view, err = tx.GetLead(ctx, lead.ID)
		return err
	})
	if err != nil {
		return domain.LeadView{}, err
	}
	return view, nil
}

// UpdateLead applies a partial change. Test drive and conversion status may
// move to any value in any order.
func (s *LeadService) UpdateLead(ctx context.Context, id, dealerID string, patch domain.LeadPatch) (domain.LeadView, error) {
	if v, ok := patch.TestDriveStatus.Get(); ok && !v.Valid() {
		return domain.LeadView{}, &domain.ValidationError{Field: "test_drive_status", Reason: fmt.Sprintf("unknown status %q", v)}
	}
	if v, ok := patch.ConversionStatus.Get(); ok && !v.Valid() {
		return domain.LeadView{}, &domain.ValidationError{Field: "conversion_status", Reason: fmt.Sprintf("unknown status %q", v)}
	}
	if patch.TestDriveStatus.Null || patch.ConversionStatus.Null {
		return domain.LeadView{}, &domain.ValidationError{Field: "status", Reason: "must not be empty"}
	}
	for _, f := range []struct {
		name  string
		field domain.Field[string]
	}{{"name", patch.Name}, {"phone", patch.Phone}} {
		if f.field.Present && (f.field.Null || f.field.Value == "") {
			return domain.LeadView{}, &domain.ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}

	var view domain.LeadView
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		current, err := tx.GetLead(ctx, id)
		if err != nil {
			return err
		}
		if dealerID != "" && current.DealerID != dealerID {
			return domain.ErrLeadNotFound
		}
		if assignee, ok := patch.AssignedTo.Get(); ok {
			if err := checkLeadRefs(ctx, tx, current.DealerID, "", assignee); err != nil {
				return err
			}
		}
		if err := tx.UpdateLead(ctx, id, patch); err != nil {
			return err
		}
		view, err = tx.GetLead(ctx, id)
		return err
	})
	if err != nil {
		return domain.LeadView{}, err
	}
	return view, nil
}

// ListLeads returns the dealer's open leads, newest first.
func (s *LeadService) ListLeads(ctx context.Context, dealerID string) ([]domain.LeadView, error) {
	return s.Store.ListLeads(ctx, domain.LeadFilter{DealerID: dealerID})
}

// ListLeadsForEmployee returns the open leads assigned to an employee.
func (s *LeadService) ListLeadsForEmployee(ctx context.Context, employeeID string) ([]domain.LeadView, error) {
	return s.Store.ListLeads(ctx, domain.LeadFilter{EmployeeID: employeeID})
}

// ListArchivedLeads returns leads closed by the sale of their vehicle.
func (s *LeadService) ListArchivedLeads(ctx context.Context, dealerID string) ([]domain.LeadView, error) {
	return s.Store.ListLeads(ctx, domain.LeadFilter{DealerID: dealerID, Archived: true})
}

func validateLeadStatuses(td domain.TestDriveStatus, cs domain.ConversionStatus) error {
	if !td.Valid() {
		return &domain.ValidationError{Field: "test_drive_status", Reason: fmt.Sprintf("unknown status %q", td)}
	}
	if !cs.Valid() {
		return &domain.ValidationError{Field: "conversion_status", Reason: fmt.Sprintf("unknown status %q", cs)}
	}
	return nil
}

// checkLeadRefs verifies that a referenced vehicle and employee belong to the
// lead's dealer.
func checkLeadRefs(ctx context.Context, tx domain.Store, dealerID, vehicleID, employeeID string) error {
	if vehicleID != "" {
		if _, err := ownedVehicle(ctx, tx, vehicleID, dealerID); err != nil {
			return err
		}
	}
	if employeeID != "" {
		e, err := tx.GetEmployee(ctx, employeeID, domain.Period{})
		if err != nil {
			return err
		}
		if e.DealerID != dealerID {
			return domain.ErrEmployeeNotFound
		}
	}
	return nil
}
