package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// DealerService orchestrates dealer registration, approval and removal.
type DealerService struct {
	Deps
}

// NewDealerService creates a service with the given adapters.
func NewDealerService(deps Deps) *DealerService {
	return &DealerService{Deps: deps.withDefaults()}
}

// Registration is the input to Register.
type Registration struct {
	Name            string
	DealershipName  string
	Phone           string
	Email           string
	City            string
	State           string
	VehicleCategory domain.VehicleCategory
	Password        string
}

// Register creates a pending dealer account.
func (s *DealerService) Register(ctx context.Context, r Registration) (domain.Dealer, error) {
	r.Phone = strings.TrimSpace(r.Phone)
	r.Email = strings.TrimSpace(r.Email)

	for _, f := range []struct{ name, value string }{
		{"name", r.Name},
		{"dealership_name", r.DealershipName},
		{"phone", r.Phone},
		{"password", r.Password},
	} {
		if err := required(f.name, f.value); err != nil {
			return domain.Dealer{}, err
		}
	}
	if !r.VehicleCategory.Valid() {
		return domain.Dealer{}, &domain.ValidationError{Field: "vehicle_category", Reason: fmt.Sprintf("unknown category %q", r.VehicleCategory)}
	}

	if _, err := s.Store.GetDealerByPhone(ctx, r.Phone); err == nil {
		return domain.Dealer{}, &domain.ConflictError{Entity: "dealer", Field: "phone", Value: r.Phone}
	}
	if r.Email != "" {
		if _, err := s.Store.GetDealerByEmail(ctx, r.Email); err == nil {
			return domain.Dealer{}, &domain.ConflictError{Entity: "dealer", Field: "email", Value: r.Email}
		}
	}

	hash, err := hashPassword(r.Password, s.PasswordCost)
	if err != nil {
		return domain.Dealer{}, &domain.ValidationError{Field: "password", Reason: err.Error()}
	}

	dealer := domain.NewDealer(newID(), r.Name, r.DealershipName, r.Phone, r.Email, r.VehicleCategory, hash)
	dealer.City = r.City
	dealer.State = r.State
	dealer.CreatedAt = s.now()
	dealer.UpdatedAt = dealer.CreatedAt

	if err := s.Store.CreateDealer(ctx, dealer); err != nil {
		return domain.Dealer{}, fmt.Errorf("creating dealer: %w", err)
	}

	s.Logger.Info("dealer registered", zap.String("dealer_id", dealer.ID))
	s.notify(ctx, domain.Notification{
		Kind:     domain.NotifyDealerRegistered,
		DealerID: dealer.ID,
		EntityID: dealer.ID,
		Details:  map[string]string{"dealership_name": dealer.DealershipName},
	})

	return dealer, nil
}

// GetByID returns a dealer by its unique identifier.
func (s *DealerService) GetByID(ctx context.Context, id string) (domain.Dealer, error) {
	return s.Store.GetDealer(ctx, id)
}

// GetByPhone returns the dealer registered with phone.
func (s *DealerService) GetByPhone(ctx context.Context, phone string) (domain.Dealer, error) {
	return s.Store.GetDealerByPhone(ctx, strings.TrimSpace(phone))
}

// GetByEmail returns the dealer registered with email.
func (s *DealerService) GetByEmail(ctx context.Context, email string) (domain.Dealer, error) {
	return s.Store.GetDealerByEmail(ctx, strings.TrimSpace(email))
}

// List returns dealers matching status, or all dealers when status is nil.
// The system account is never listed.
func (s *DealerService) List(ctx context.Context, status *domain.DealerStatus) ([]domain.DealerSummary, error) {
	return s.Store.ListDealers(ctx, domain.DealerFilter{Status: status})
}

// DealerUpdate lists the profile fields a dealer may change. An empty
// Password leaves the stored hash untouched.
type DealerUpdate struct {
	Name            domain.Field[string]
	DealershipName  domain.Field[string]
	Email           domain.Field[string]
	City            domain.Field[string]
	State           domain.Field[string]
	VehicleCategory domain.Field[domain.VehicleCategory]
	Password        domain.Field[string]
}

// Update applies a partial profile change and returns the stored dealer.
func (s *DealerService) Update(ctx context.Context, id string, u DealerUpdate) (domain.Dealer, error) {
	if c, ok := u.VehicleCategory.Get(); ok && !c.Valid() {
		return domain.Dealer{}, &domain.ValidationError{Field: "vehicle_category", Reason: fmt.Sprintf("unknown category %q", c)}
	}
	for _, f := range []struct {
		name  string
		field domain.Field[string]
	}{{"name", u.Name}, {"dealership_name", u.DealershipName}} {
		if f.field.Present && f.field.Value == "" {
			return domain.Dealer{}, &domain.ValidationError{Field: f.name, Reason: "must not be empty"}
		}
	}

	patch := domain.DealerPatch{
		Name:            u.Name,
		DealershipName:  u.DealershipName,
		Email:           u.Email,
		City:            u.City,
		State:           u.State,
		VehicleCategory: u.VehicleCategory,
	}
	if pw, ok := u.Password.Get(); ok && pw != "" {
		hash, err := hashPassword(pw, s.PasswordCost)
		if err != nil {
			return domain.Dealer{}, &domain.ValidationError{Field: "password", Reason: err.Error()}
		}
		patch.PasswordHash = domain.Set(hash)
	}

	if err := s.Store.UpdateDealer(ctx, id, patch); err != nil {
		return domain.Dealer{}, err
	}
	return s.Store.GetDealer(ctx, id)
}

// UpdateStatus moves a dealer to status through the dealer lifecycle. reason
// is kept only when deactivating; any other transition clears it.
func (s *DealerService) UpdateStatus(ctx context.Context, id string, status domain.DealerStatus, reason string) (domain.Dealer, error) {
	event, ok := domain.DealerEvent(status)
	if !ok {
		return domain.Dealer{}, &domain.ValidationError{Field: "status", Reason: fmt.Sprintf("unknown dealer status %q", status)}
	}

	var updated domain.Dealer
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		dealer, err := tx.GetDealer(ctx, id)
		if err != nil {
			return err
		}
		if dealer.IsSystemAccount {
			return &domain.TransitionError{Machine: domain.MachineDealer, Event: event, Current: string(dealer.Status)}
		}

		dst, err := s.Validator.Apply(ctx, domain.MachineDealer, string(dealer.Status), event)
		if err != nil {
			return err
		}

		if domain.DealerStatus(dst) != domain.DealerDeactivated {
			reason = ""
		}
		if err := tx.SetDealerStatus(ctx, id, domain.DealerStatus(dst), reason); err != nil {
			return fmt.Errorf("updating dealer status: %w", err)
		}

		updated, err = tx.GetDealer(ctx, id)
		return err
	})
	if err != nil {
		return domain.Dealer{}, err
	}

	s.Logger.Info("dealer status changed",
		zap.String("dealer_id", id),
		zap.String("event", string(event)),
		zap.String("status", string(updated.Status)),
	)
	s.notify(ctx, domain.Notification{
		Kind:     domain.NotifyDealerStatus,
		DealerID: id,
		EntityID: id,
		Details:  map[string]string{"status": string(updated.Status), "reason": updated.DeactivationReason},
	})

	return updated, nil
}

// Delete removes a dealer and everything it owns in one transaction and
// reports what was removed.
func (s *DealerService) Delete(ctx context.Context, id string) (domain.DealerFootprint, error) {
	var removed domain.DealerFootprint
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		dealer, err := tx.GetDealer(ctx, id)
		if err != nil {
			return err
		}
		if dealer.IsSystemAccount {
			return &domain.ValidationError{Field: "id", Reason: "the system account cannot be deleted"}
		}

		removed, err = tx.CountDealerRows(ctx, id)
		if err != nil {
			return err
		}
		return tx.DeleteDealer(ctx, id)
	})
	if err != nil {
		return domain.DealerFootprint{}, err
	}

	s.Logger.Info("dealer deleted",
		zap.String("dealer_id", id),
		zap.Int("vehicles", removed.Vehicles),
		zap.Int("employees", removed.Employees),
		zap.Int("leads", removed.Leads),
		zap.Int("salary_slips", removed.SalarySlips),
	)
	s.notify(ctx, domain.Notification{
		Kind:     domain.NotifyDealerDeleted,
		DealerID: id,
		EntityID: id,
		Details: map[string]string{
			"vehicles":  fmt.Sprint(removed.Vehicles),
			"employees": fmt.Sprint(removed.Employees),
			"leads":     fmt.Sprint(removed.Leads),
		},
	})

	return removed, nil
}

// EnsureSystemAccount creates the admin account on first start. An existing
// system account is returned unchanged.
func (s *DealerService) EnsureSystemAccount(ctx context.Context, name, phone, password string) (domain.Dealer, error) {
	existing, err := s.Store.GetSystemAccount(ctx)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return domain.Dealer{}, fmt.Errorf("looking up system account: %w", err)
	}

	if err := required("admin phone", phone); err != nil {
		return domain.Dealer{}, err
	}
	if err := required("admin password", password); err != nil {
		return domain.Dealer{}, err
	}
	if name == "" {
		name = "Administrator"
	}

	hash, err := hashPassword(password, s.PasswordCost)
	if err != nil {
		return domain.Dealer{}, &domain.ValidationError{Field: "admin password", Reason: err.Error()}
	}

	admin := domain.NewDealer(newID(), name, "Platform Administration", phone, "", domain.CategoryHybrid, hash)
	admin.Status = domain.DealerApproved
	admin.IsSystemAccount = true
	admin.CreatedAt = s.now()
	admin.UpdatedAt = admin.CreatedAt

	if err := s.Store.CreateDealer(ctx, admin); err != nil {
		return domain.Dealer{}, fmt.Errorf("creating system account: %w", err)
	}

	s.Logger.Info("system account created", zap.String("dealer_id", admin.ID))
	return admin, nil
}
