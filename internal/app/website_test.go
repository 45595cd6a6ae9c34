package app_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neomorfeo/dealerops/internal/domain"
)

func TestWebsiteGet_DealerDefaults(t *testing.T) {
	h := newHarness(t)
	d := h.mustApprovedDealer(t, "9000000001")

	w, err := h.Website.Get(context.Background(), d.ID)
	require.NoError(t, err)

	assert.Equal(t, d.ID, w.DealerID)
	assert.Equal(t, "Ravi Motors", w.BrandName)
	assert.Equal(t, "9000000001", w.ContactPhone)
	assert.Equal(t, "Pune, MH", w.Address)
	assert.Equal(t, domain.DefaultTheme, w.ActiveTheme)
	assert.Equal(t, domain.WebsiteNotRequested, w.WebsiteStatus)
	assert.False(t, w.IsLive)

	_, err = h.Website.Get(context.Background(), "ghost")
	require.ErrorIs(t, err, domain.ErrDealerNotFound)
}

func TestWebsiteUpsert(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")

	w, err := h.Website.Upsert(ctx, d.ID, domain.WebsitePatch{
		BrandName:   domain.Set("Ravi Cars"),
		ActiveTheme: domain.Set("modern"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Cars", w.BrandName)
	assert.Equal(t, "modern", w.ActiveTheme)
	assert.Equal(t, "9000000001", w.ContactPhone)

	w, err = h.Website.Upsert(ctx, d.ID, domain.WebsitePatch{BrandName: domain.Set("")})
	require.NoError(t, err)
	assert.Equal(t, "Ravi Motors", w.BrandName, "cleared brand falls back to dealership name")
	assert.Equal(t, "modern", w.ActiveTheme)
}

func TestWebsiteApproval_Rejection(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	d := h.mustApprovedDealer(t, "9000000001")

	_, err := h.Website.SetApproval(ctx, d.ID, domain.WebsiteApproved, nil)
	require.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = h.Website.RequestApproval(ctx, d.ID)
	require.NoError(t, err)

	live := true
	w, err := h.Website.SetApproval(ctx, d.ID, domain.WebsiteRejected, &live)
	require.NoError(t, err)
	assert.Equal(t, domain.WebsiteRejected, w.WebsiteStatus)
	assert.False(t, w.IsLive)

	_, err = h.Website.SetLive(ctx, d.ID, true)
	var trErr *domain.TransitionError
	require.ErrorAs(t, err, &trErr)
	assert.Equal(t, domain.EventGoLive, trErr.Event)

	w, err = h.Website.RequestApproval(ctx, d.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.WebsitePendingApproval, w.WebsiteStatus)

	w, err = h.Website.SetApproval(ctx, d.ID, domain.WebsiteApproved, nil)
	require.NoError(t, err)
	assert.True(t, w.IsLive, "approval defaults to live")

	w, err = h.Website.SetLive(ctx, d.ID, false)
	require.NoError(t, err)
	assert.False(t, w.IsLive)
	assert.Equal(t, domain.WebsiteApproved, w.WebsiteStatus)

	assert.Equal(t, domain.NotifyWebsiteStatus, h.pub.last().Kind)
}

func TestWebsiteApproval_InvalidDecision(t *testing.T) {
	h := newHarness(t)
	d := h.mustApprovedDealer(t, "9000000001")

	_, err := h.Website.SetApproval(context.Background(), d.ID, domain.WebsitePendingApproval, nil)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestWebsiteSetLive_OfflineAlwaysAllowed(t *testing.T) {
	h := newHarness(t)
	d := h.mustApprovedDealer(t, "9000000001")

	w, err := h.Website.SetLive(context.Background(), d.ID, false)
	require.NoError(t, err)
	assert.Equal(t, domain.WebsiteNotRequested, w.WebsiteStatus)
	assert.False(t, w.IsLive)
}
