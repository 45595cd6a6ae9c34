package app

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// WebsiteService manages a dealer's public site content and its approval.
type WebsiteService struct {
	Deps
}

// NewWebsiteService creates a service with the given adapters.
func NewWebsiteService(deps Deps) *WebsiteService {
	return &WebsiteService{Deps: deps.withDefaults()}
}

// Get returns the dealer's site content with identity defaults filled in. A
// dealer that never saved content gets the defaults, not requested and offline.
func (s *WebsiteService) Get(ctx context.Context, dealerID string) (domain.WebsiteContent, error) {
	return websiteContent(ctx, s.Store, dealerID)
}

// Upsert saves the editable fields, creating the content on first use.
func (s *WebsiteService) Upsert(ctx context.Context, dealerID string, patch domain.WebsitePatch) (domain.WebsiteContent, error) {
	var content domain.WebsiteContent
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		if _, err := tx.GetDealer(ctx, dealerID); err != nil {
			return err
		}
		if err := tx.UpsertWebsiteContent(ctx, dealerID, patch); err != nil {
			return fmt.Errorf("saving website content: %w", err)
		}
		var err error
		content, err = websiteContent(ctx, tx, dealerID)
		return err
	})
	if err != nil {
		return domain.WebsiteContent{}, err
	}
	return content, nil
}

// RequestApproval asks the platform admin to approve the site.
func (s *WebsiteService) RequestApproval(ctx context.Context, dealerID string) (domain.WebsiteContent, error) {
	return s.transition(ctx, dealerID, domain.EventRequest, false)
}

// SetApproval records the admin decision. status must be approved or
// rejected. Approval puts the site live unless live says otherwise; rejection
// always takes it offline.
func (s *WebsiteService) SetApproval(ctx context.Context, dealerID string, status domain.WebsiteStatus, live *bool) (domain.WebsiteContent, error) {
	switch status {
	case domain.WebsiteApproved:
		return s.transition(ctx, dealerID, domain.EventApprove, live == nil || *live)
	case domain.WebsiteRejected:
		return s.transition(ctx, dealerID, domain.EventReject, false)
	}
	return domain.WebsiteContent{}, &domain.ValidationError{
		Field:  "website_status",
		Reason: fmt.Sprintf("approval decision must be %q or %q", domain.WebsiteApproved, domain.WebsiteRejected),
	}
}

// SetLive switches an approved site on or off. Taking a site offline is
// always allowed.
func (s *WebsiteService) SetLive(ctx context.Context, dealerID string, live bool) (domain.WebsiteContent, error) {
	var content domain.WebsiteContent
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		current, err := websiteContent(ctx, tx, dealerID)
		if err != nil {
			return err
		}
		if live && current.WebsiteStatus != domain.WebsiteApproved {
			return &domain.TransitionError{
				Machine: domain.MachineWebsite,
				Event:   domain.EventGoLive,
				Current: string(current.WebsiteStatus),
			}
		}
		if err := tx.SetWebsiteState(ctx, dealerID, current.WebsiteStatus, live); err != nil {
			return err
		}
		content, err = websiteContent(ctx, tx, dealerID)
		return err
	})
	if err != nil {
		return domain.WebsiteContent{}, err
	}

	s.Logger.Info("website visibility changed", zap.String("dealer_id", dealerID), zap.Bool("live", live))
	return content, nil
}

func (s *WebsiteService) transition(ctx context.Context, dealerID string, event domain.Event, live bool) (domain.WebsiteContent, error) {
	var content domain.WebsiteContent
	err := s.Store.Atomic(ctx, func(tx domain.Store) error {
		current, err := websiteContent(ctx, tx, dealerID)
		if err != nil {
			return err
		}
		dst, err := s.Validator.Apply(ctx, domain.MachineWebsite, string(current.WebsiteStatus), event)
		if err != nil {
			return err
		}
		if err := tx.SetWebsiteState(ctx, dealerID, domain.WebsiteStatus(dst), live); err != nil {
			return err
		}
		content, err = websiteContent(ctx, tx, dealerID)
		return err
	})
	if err != nil {
		return domain.WebsiteContent{}, err
	}

	s.Logger.Info("website status changed",
		zap.String("dealer_id", dealerID),
		zap.String("event", string(event)),
		zap.String("status", string(content.WebsiteStatus)),
		zap.Bool("live", content.IsLive),
	)
	s.notify(ctx, domain.Notification{
		Kind:     domain.NotifyWebsiteStatus,
		DealerID: dealerID,
		EntityID: dealerID,
		Details: map[string]string{
			"status": string(content.WebsiteStatus),
			"live":   fmt.Sprint(content.IsLive),
		},
	})

	return content, nil
}

func websiteContent(ctx context.Context, store domain.Store, dealerID string) (domain.WebsiteContent, error) {
	dealer, err := store.GetDealer(ctx, dealerID)
	if err != nil {
		return domain.WebsiteContent{}, err
	}
	content, err := store.GetWebsiteContent(ctx, dealerID)
	if err != nil && !errors.Is(err, domain.ErrWebsiteNotFound) {
		return domain.WebsiteContent{}, err
	}
	return content.WithDealerDefaults(dealer), nil
}
