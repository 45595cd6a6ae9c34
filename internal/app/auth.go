package app

import (
	"context"
	"errors"
	"strings"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// AuthService verifies dealer and employee credentials.
type AuthService struct {
	Deps
}

// NewAuthService creates a service with the given adapters.
func NewAuthService(deps Deps) *AuthService {
	return &AuthService{Deps: deps.withDefaults()}
}

// AuthenticateDealer checks a dealer's phone and password. Only approved
// dealers may sign in; the system account bypasses the status gate.
func (s *AuthService) AuthenticateDealer(ctx context.Context, phone, password string) (domain.Dealer, error) {
	dealer, err := s.Store.GetDealerByPhone(ctx, strings.TrimSpace(phone))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Dealer{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Dealer{}, err
	}
	if !checkPassword(dealer.PasswordHash, password) {
		return domain.Dealer{}, domain.ErrInvalidCredentials
	}
	if dealer.IsSystemAccount {
		return dealer, nil
	}
	if err := statusGate(dealer); err != nil {
		return domain.Dealer{}, err
	}
	return dealer, nil
}

// AuthenticateEmployee checks an employee's phone and password. The
// employee's dealer must be approved.
func (s *AuthService) AuthenticateEmployee(ctx context.Context, phone, password string) (domain.Employee, error) {
	e, err := s.Store.GetEmployeeByPhone(ctx, strings.TrimSpace(phone), domain.MonthOf(s.now()))
	if errors.Is(err, domain.ErrNotFound) {
		return domain.Employee{}, domain.ErrInvalidCredentials
	}
	if err != nil {
		return domain.Employee{}, err
	}
	if !checkPassword(e.PasswordHash, password) {
		return domain.Employee{}, domain.ErrInvalidCredentials
	}

	dealer, err := s.Store.GetDealer(ctx, e.DealerID)
	if err != nil {
		return domain.Employee{}, err
	}
	if !dealer.IsSystemAccount {
		if err := statusGate(dealer); err != nil {
			return domain.Employee{}, err
		}
	}
	return e, nil
}

func statusGate(d domain.Dealer) error {
	switch d.Status {
	case domain.DealerApproved:
		return nil
	case domain.DealerDeactivated:
		return &domain.AccountDeactivatedError{Reason: d.DeactivationReason}
	default:
		return domain.ErrAccountPending
	}
}
