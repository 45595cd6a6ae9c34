package domain

import (
	"strings"
	"time"
)

// WebsiteStatus is the admin approval state of a dealer's public site.
type WebsiteStatus string

const (
	WebsiteNotRequested    WebsiteStatus = "not_requested"
	WebsitePendingApproval WebsiteStatus = "pending_approval"
	WebsiteApproved        WebsiteStatus = "approved"
	WebsiteRejected        WebsiteStatus = "rejected"
)

// DefaultTheme is used until a dealer picks one.
const DefaultTheme = "classic"

// WebsiteContent is the per-dealer public site configuration.
type WebsiteContent struct {
	DealerID      string
	BrandName     string
	LogoURL       string
	Tagline       string
	AboutUs       string
	ContactPhone  string
	ContactEmail  string
	Address       string
	ActiveTheme   string
	WebsiteStatus WebsiteStatus
	IsLive        bool
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WithDealerDefaults fills empty identity fields from the dealer profile.
func (w WebsiteContent) WithDealerDefaults(d Dealer) WebsiteContent {
	w.DealerID = d.ID
	if w.BrandName == "" {
		w.BrandName = d.DealershipName
	}
	if w.ContactPhone == "" {
		w.ContactPhone = d.Phone
	}
	if w.ContactEmail == "" {
		w.ContactEmail = d.Email
	}
	if w.Address == "" {
		var parts []string
		for _, p := range []string{d.City, d.State} {
			if p != "" {
				parts = append(parts, p)
			}
		}
		w.Address = strings.Join(parts, ", ")
	}
	if w.ActiveTheme == "" {
		w.ActiveTheme = DefaultTheme
	}
	if w.WebsiteStatus == "" {
		w.WebsiteStatus = WebsiteNotRequested
	}
	return w
}

// WebsitePatch lists the dealer-editable website fields.
type WebsitePatch struct {
	BrandName    Field[string]
	LogoURL      Field[string]
	Tagline      Field[string]
	AboutUs      Field[string]
	ContactPhone Field[string]
	ContactEmail Field[string]
	Address      Field[string]
	ActiveTheme  Field[string]
}
