package app_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"golang.org/x/crypto/bcrypt"

	"github.com/neomorfeo/dealerops/internal/adapter/fsm"
	"github.com/neomorfeo/dealerops/internal/adapter/sqlite"
	"github.com/neomorfeo/dealerops/internal/app"
	"github.com/neomorfeo/dealerops/internal/domain"
)

// --- Fakes ---

type recordingPublisher struct {
	mu    sync.Mutex
	sent  []domain.Notification
	fails bool
}

func (p *recordingPublisher) Publish(_ context.Context, n domain.Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fails {
		return errors.New("queue unavailable")
	}
	p.sent = append(p.sent, n)
	return nil
}

func (p *recordingPublisher) kinds() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.sent))
	for _, n := range p.sent {
		out = append(out, n.Kind)
	}
	return out
}

func (p *recordingPublisher) last() domain.Notification {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.sent[len(p.sent)-1]
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// --- Harness ---

type harness struct {
	*app.Services
	store *sqlite.Store
	pub   *recordingPublisher
	clock *fakeClock
}

func newHarness(t *testing.T) *harness {
	t.Helper()

	store, err := sqlite.New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	pub := &recordingPublisher{}
	clock := &fakeClock{now: time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)}

	services := app.New(app.Deps{
		Store:        store,
		Validator:    fsm.New(),
		Publisher:    pub,
		Logger:       zaptest.NewLogger(t),
		Now:          clock.Now,
		PasswordCost: bcrypt.MinCost,
	})

	return &harness{Services: services, store: store, pub: pub, clock: clock}
}

func (h *harness) mustRegister(t *testing.T, phone string) domain.Dealer {
	t.Helper()
	d, err := h.Dealers.Register(context.Background(), app.Registration{
		Name:            "Ravi",
		DealershipName:  "Ravi Motors",
		Phone:           phone,
		City:            "Pune",
		State:           "MH",
		VehicleCategory: domain.CategoryFourWheeler,
		Password:        "secret",
	})
	require.NoError(t, err)
	return d
}

func (h *harness) mustApprovedDealer(t *testing.T, phone string) domain.Dealer {
	t.Helper()
	d := h.mustRegister(t, phone)
	d, err := h.Dealers.UpdateStatus(context.Background(), d.ID, domain.DealerApproved, "")
	require.NoError(t, err)
	return d
}

func (h *harness) mustAddVehicle(t *testing.T, dealerID, reg string, status domain.VehicleStatus, price float64) domain.Vehicle {
	t.Helper()
	v, err := h.Inventory.AddVehicle(context.Background(), dealerID, domain.Vehicle{
		Make:               "Hyundai",
		Model:              "Creta",
		Variant:            "SX",
		RegistrationNumber: reg,
		Price:              price,
		Status:             status,
	})
	require.NoError(t, err)
	return v
}

func (h *harness) mustAddEmployee(t *testing.T, dealerID, phone string) domain.Employee {
	t.Helper()
	e, err := h.Staff.AddEmployee(context.Background(), dealerID, app.NewEmployee{
		Name:     "Anil Sharma",
		Phone:    phone,
		Role:     domain.RoleSalesExecutive,
		Salary:   30000,
		Password: "staffpass",
	})
	require.NoError(t, err)
	return e
}

func (h *harness) mustAddLead(t *testing.T, dealerID string, in app.NewLead) domain.LeadView {
	t.Helper()
	if in.Name == "" {
		in.Name = "Customer"
	}
	if in.Phone == "" {
		in.Phone = "9700000000"
	}
	l, err := h.Leads.AddLead(context.Background(), dealerID, in)
	require.NoError(t, err)
	return l
}
