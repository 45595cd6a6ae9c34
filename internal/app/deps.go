package app

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// Deps holds the adapters shared by every service. Publisher, Logger, Now and
// PasswordCost are optional.
type Deps struct {
	Store        domain.Store
	Validator    domain.TransitionValidator
	Publisher    domain.EventPublisher
	Logger       *zap.Logger
	Now          func() time.Time
	PasswordCost int
}

func (d Deps) withDefaults() Deps {
	if d.Publisher == nil {
		d.Publisher = nopPublisher{}
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.PasswordCost == 0 {
		d.PasswordCost = bcrypt.DefaultCost
	}
	return d
}

func (d Deps) now() time.Time {
	return d.Now().UTC().Truncate(time.Second)
}

// notify publishes after a successful commit. The change is already durable,
// so a publish failure is logged rather than returned.
func (d Deps) notify(ctx context.Context, n domain.Notification) {
	if err := d.Publisher.Publish(ctx, n); err != nil {
		d.Logger.Warn("publishing notification failed",
			zap.String("kind", n.Kind),
			zap.String("dealer_id", n.DealerID),
			zap.String("entity_id", n.EntityID),
			zap.Error(err),
		)
	}
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, domain.Notification) error { return nil }

// Services bundles every application service over one set of adapters.
type Services struct {
	Dealers   *DealerService
	Inventory *InventoryService
	Staff     *StaffService
	Leads     *LeadService
	Website   *WebsiteService
	Insights  *InsightsService
	Auth      *AuthService
}

// New builds all services from deps.
func New(deps Deps) *Services {
	return &Services{
		Dealers:   NewDealerService(deps),
		Inventory: NewInventoryService(deps),
		Staff:     NewStaffService(deps),
		Leads:     NewLeadService(deps),
		Website:   NewWebsiteService(deps),
		Insights:  NewInsightsService(deps),
		Auth:      NewAuthService(deps),
	}
}

func hashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func required(field, value string) error {
	if value == "" {
		return &domain.ValidationError{Field: field, Reason: "is required"}
	}
	return nil
}
