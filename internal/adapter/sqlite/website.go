package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const websiteColumns = `dealer_id, COALESCE(brand_name, ''), COALESCE(logo_url, ''), COALESCE(tagline, ''),
	COALESCE(about_us, ''), COALESCE(contact_phone, ''), COALESCE(contact_email, ''),
	COALESCE(address, ''), COALESCE(active_theme, ''), website_status, is_live, created_at, updated_at`

// GetWebsiteContent returns the stored row only; callers merge dealer defaults.
func (s *Store) GetWebsiteContent(ctx context.Context, dealerID string) (domain.WebsiteContent, error) {
	var w domain.WebsiteContent
	var status, createdAt, updatedAt string
	var live int

	err := s.q.QueryRowContext(ctx,
		`SELECT `+websiteColumns+` FROM website_content WHERE dealer_id = ?`, dealerID,
	).Scan(&w.DealerID, &w.BrandName, &w.LogoURL, &w.Tagline, &w.AboutUs,
		&w.ContactPhone, &w.ContactEmail, &w.Address, &w.ActiveTheme,
		&status, &live, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.WebsiteContent{}, domain.ErrWebsiteNotFound
	}
	if err != nil {
		return domain.WebsiteContent{}, fmt.Errorf("scanning website content: %w", err)
	}

	w.WebsiteStatus = domain.WebsiteStatus(status)
	w.IsLive = live == 1
	w.CreatedAt = parseTime(createdAt)
	w.UpdatedAt = parseTime(updatedAt)
	return w, nil
}

// UpsertWebsiteContent creates the dealer's row on first write, then applies
// the patch. Approval state is untouched.
func (s *Store) UpsertWebsiteContent(ctx context.Context, dealerID string, patch domain.WebsitePatch) error {
	if err := s.ensureWebsiteRow(ctx, dealerID); err != nil {
		return err
	}

	var a assignments
	setText(&a, "brand_name", patch.BrandName)
	setText(&a, "logo_url", patch.LogoURL)
	setText(&a, "tagline", patch.Tagline)
	setText(&a, "about_us", patch.AboutUs)
	setText(&a, "contact_phone", patch.ContactPhone)
	setText(&a, "contact_email", patch.ContactEmail)
	setText(&a, "address", patch.Address)
	setText(&a, "active_theme", patch.ActiveTheme)

	result, err := a.exec(ctx, s.q, "website_content", "dealer_id", dealerID)
	if err != nil {
		return translate(err, "updating", "website content", nil, nil)
	}
	return checkAffected(result, domain.ErrWebsiteNotFound)
}

func (s *Store) SetWebsiteState(ctx context.Context, dealerID string, status domain.WebsiteStatus, live bool) error {
	if err := s.ensureWebsiteRow(ctx, dealerID); err != nil {
		return err
	}

	result, err := s.q.ExecContext(ctx,
		`UPDATE website_content SET website_status = ?, is_live = ?, updated_at = ? WHERE dealer_id = ?`,
		string(status), boolInt(live), formatTime(nowUTC()), dealerID,
	)
	if err != nil {
		return translate(err, "updating", "website content", nil, nil)
	}
	return checkAffected(result, domain.ErrWebsiteNotFound)
}

func (s *Store) ensureWebsiteRow(ctx context.Context, dealerID string) error {
	now := formatTime(nowUTC())
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO website_content (dealer_id, website_status, is_live, created_at, updated_at)
		 VALUES (?, ?, 0, ?, ?)
		 ON CONFLICT (dealer_id) DO NOTHING`,
		dealerID, string(domain.WebsiteNotRequested), now, now,
	)
	return translate(err, "creating", "website content", nil, domain.ErrDealerNotFound)
}
