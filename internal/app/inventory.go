package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// InventoryService runs the vehicle lifecycle.
type InventoryService struct {
	Deps
}

// NewInventoryService creates a service with the given adapters.
func NewInventoryService(deps Deps) *InventoryService {
	return &InventoryService{Deps: deps.withDefaults()}
}

// SaleResult is the sold vehicle and the number of leads archived with it.
type SaleResult struct {
	Vehicle       domain.Vehicle
	ArchivedLeads int
}

// AddVehicle stores a new vehicle for dealerID. Status defaults to Draft and
// may only be Draft or For Sale.
func (s *InventoryService) AddVehicle(ctx context.Context, dealerID string, v domain.Vehicle) (domain.Vehicle, error) {
	v.RegistrationNumber = domain.NormalizeRegistration(v.RegistrationNumber)
	for _, f := range []struct{ name, value string }{
		{"make", v.Make},
		{"model", v.Model},
		{"registration_number", v.RegistrationNumber},
	} {
		if err := required(f.name, f.value); err != nil {
			return domain.Vehicle{}, err
		}
	}

	if v.Status == "" {
		v.Status = domain.VehicleDraft
	}
	if v.Status != domain.VehicleDraft && v.Status != domain.VehicleForSale {
		return domain.Vehicle{}, &domain.TransitionError{
			Machine: domain.MachineVehicle,
			Event:   domain.EventCreate,
			Current: string(v.Status),
		}
	}

	now := s.now()
	v.ID = newID()
	v.DealerID = dealerID
	v.CreatedAt = now
	v.UpdatedAt = now
	v.SellingPrice = 0
	v.SellingDate = nil

	if err := s.Store.CreateVehicle(ctx, v); err != nil {
		return domain.Vehicle{}, fmt.Errorf("creating vehicle: %w", err)
	}
	return v, nil
}

// GetVehicle returns a vehicle. A non-empty dealerID scopes the lookup to
// that dealer's inventory; an empty one allows any dealer (admin view).
func (s *InventoryService) GetVehicle(ctx context.Context, id, dealerID string) (domain.Vehicle, error) {
	return ownedVehicle(ctx, s.Store, id, dealerID)
}

// ListVehicles returns the dealer's inventory, newest first, optionally
// restricted to one status.
func (s *InventoryService) ListVehicles(ctx context.Context, dealerID string, status *domain.VehicleStatus) ([]domain.Vehicle, error) {
	return s.Store.ListVehicles(ctx, domain.VehicleFilter{DealerID: dealerID, Status: status})
}

// UpdateVehicle applies a partial change. Status is not part of the patch.
func (s *InventoryService) UpdateVehicle(ctx context.Context, id, dealerID string, patch domain.VehiclePatch) (domain.Vehicle, error) {
	if reg, ok := patch.RegistrationNumber.Get(); ok {
		patch.RegistrationNumber = domain.Set(domain.NormalizeRegistration(reg))
	}
	for _, f := range []struct {
		name  string
		field domain.Field[string]
	}{{"make", patch.Make}, {"model", patch.Model}, {"registration_number", patch.RegistrationNumber}} {
		if f.field.Present && (f.field.Null || f.field.Value == "") {
			return domain.Vehicle{}, &domain.ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}

	var updated domain.Vehicle
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := ownedVehicle(ctx, tx, id, dealerID); err != nil {
			return err
		}
		if err := tx.UpdateVehicle(ctx, id, patch); err != nil {
			return err
		}
		var err error
		updated, err = tx.GetVehicle(ctx, id)
		return err
	})
	if err != nil {
		return domain.Vehicle{}, err
	}
	return updated, nil
}

// SetVehicleStatus moves a vehicle between For Sale, Draft and In
// Refurbishment. Sold is reachable only through MarkVehicleSold.
func (s *InventoryService) SetVehicleStatus(ctx context.Context, id, dealerID string, status domain.VehicleStatus) (domain.Vehicle, error) {
	event, ok := domain.VehicleEvent(status)
	if !ok && status != domain.VehicleSold {
		return domain.Vehicle{}, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown vehicle status %q", status)}
	}

	var updated domain.Vehicle
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		v, err := ownedVehicle(ctx, tx, id, dealerID)
		if err != nil {
			return err
		}
		if status == domain.VehicleSold {
			return &domain.TransitionError{Machine: domain.MachineVehicle, Event: domain.EventSell, Current: string(v.Status)}
		}

		dst, err := s.Validator.Apply(ctx, domain.MachineVehicle, string(v.Status), event)
		if err != nil {
			return err
		}
		if err := tx.SetVehicleStatus(ctx, id, domain.VehicleStatus(dst)); err != nil {
			return err
		}
		updated, err = tx.GetVehicle(ctx, id)
		return err
	})
	if err != nil {
		return domain.Vehicle{}, err
	}

	s.Logger.Info("vehicle status changed",
		zap.String("vehicle_id", id),
		zap.String("status", string(updated.Status)),
	)
	return updated, nil
}

// MarkVehicleSold records the sale and archives every lead referencing the
// vehicle. Both happen in one transaction or not at all.
func (s *InventoryService) MarkVehicleSold(ctx context.Context, id, dealerID string, sale domain.Sale) (SaleResult, error) {
	if sale.SellingPrice < 0 {
		return SaleResult{}, &domain.ValidationError{Field: "selling_price", Reason: "must not be negative"}
	}
	if sale.SellingDate.IsZero() {
		sale.SellingDate = s.now()
	}

	var result SaleResult
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		v, err := ownedVehicle(ctx, tx, id, dealerID)
		if err != nil {
			return err
		}
		if _, err := s.Validator.Apply(ctx, domain.MachineVehicle, string(v.Status), domain.EventSell); err != nil {
			return err
		}

		if err := tx.RecordSale(ctx, id, sale); err != nil {
			return fmt.Errorf("recording sale: %w", err)
		}
		result.ArchivedLeads, err = tx.ArchiveLeadsForVehicle(ctx, id)
		if err != nil {
			return err
		}

		result.Vehicle, err = tx.GetVehicle(ctx, id)
		return err
	})
	if err != nil {
		return SaleResult{}, err
	}

	s.Logger.Info("vehicle sold",
		zap.String("vehicle_id", id),
		zap.String("dealer_id", result.Vehicle.DealerID),
		zap.Float64("selling_price", sale.SellingPrice),
		zap.Int("archived_leads", result.ArchivedLeads),
	)
	s.notify(ctx, domain.Notification{
		Kind:     domain.NotifyVehicleSold,
		DealerID: result.Vehicle.DealerID,
		EntityID: id,
		Details: map[string]string{
			"registration_number": result.Vehicle.RegistrationNumber,
			"archived_leads":      fmt.Sprint(result.ArchivedLeads),
		},
	})

	return result, nil
}

// RelistVehicle puts a sold vehicle back on sale and clears the sale
// record. Leads archived by the sale stay archived.
func (s *InventoryService) RelistVehicle(ctx context.Context, id, dealerID string) (domain.Vehicle, error) {
	var updated domain.Vehicle
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		v, err := ownedVehicle(ctx, tx, id, dealerID)
		if err != nil {
			return err
		}
		dst, err := s.Validator.Apply(ctx, domain.MachineVehicle, string(v.Status), domain.EventRelist)
		if err != nil {
			return err
		}
		if err := tx.ClearSale(ctx, id, domain.VehicleStatus(dst)); err != nil {
			return fmt.Errorf("clearing sale: %w", err)
		}
		updated, err = tx.GetVehicle(ctx, id)
		return err
	})
	if err != nil {
		return domain.Vehicle{}, err
	}

	s.Logger.Info("vehicle relisted", zap.String("vehicle_id", id))
	s.notify(ctx, domain.Notification{
		Kind:     domain.NotifyVehicleRelisted,
		DealerID: updated.DealerID,
		EntityID: id,
	})

	return updated, nil
}

// DeleteVehicle removes a vehicle. Leads that referenced it keep existing
// without a vehicle.
func (s *InventoryService) DeleteVehicle(ctx context.Context, id, dealerID string) error {
	return s.Store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := ownedVehicle(ctx, tx, id, dealerID); err != nil {
			return err
		}
		return tx.DeleteVehicle(ctx, id)
	})
}

func ownedVehicle(ctx context.Context, store domain.VehicleRepository, id, dealerID string) (domain.Vehicle, error) {
	v, err := store.GetVehicle(ctx, id)
	if err != nil {
		return domain.Vehicle{}, err
	}
	if dealerID != "" && v.DealerID != dealerID {
		return domain.Vehicle{}, domain.ErrVehicleNotFound
	}
	return v, nil
}
