package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const dealerColumns = `d.id, d.name, d.dealership_name, d.phone, COALESCE(d.email, ''),
	COALESCE(d.city, ''), COALESCE(d.state, ''), d.vehicle_category, d.password_hash,
	d.status, COALESCE(d.deactivation_reason, ''), d.is_system, d.created_at, d.updated_at`

func (s *Store) CreateDealer(ctx context.Context, d domain.Dealer) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO dealers (id, name, dealership_name, phone, email, city, state,
		 vehicle_category, password_hash, status, deactivation_reason, is_system, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.Name, d.DealershipName, d.Phone, nullString(d.Email), nullString(d.City), nullString(d.State),
		string(d.VehicleCategory), d.PasswordHash, string(d.Status), nullString(d.DeactivationReason),
		boolInt(d.IsSystemAccount), formatTime(d.CreatedAt), formatTime(d.UpdatedAt),
	)
	return translate(err, "inserting", "dealer", map[string]string{"phone": d.Phone, "email": d.Email}, nil)
}

func (s *Store) GetDealer(ctx context.Context, id string) (domain.Dealer, error) {
	return scanDealer(s.q.QueryRowContext(ctx,
		`SELECT `+dealerColumns+` FROM dealers d WHERE d.id = ?`, id))
}

func (s *Store) GetDealerByPhone(ctx context.Context, phone string) (domain.Dealer, error) {
	return scanDealer(s.q.QueryRowContext(ctx,
		`SELECT `+dealerColumns+` FROM dealers d WHERE d.phone = ?`, phone))
}

func (s *Store) GetDealerByEmail(ctx context.Context, email string) (domain.Dealer, error) {
	if email == "" {
		return domain.Dealer{}, domain.ErrDealerNotFound
	}
	return scanDealer(s.q.QueryRowContext(ctx,
		`SELECT `+dealerColumns+` FROM dealers d WHERE d.email = ? COLLATE NOCASE`, email))
}

func (s *Store) GetSystemAccount(ctx context.Context) (domain.Dealer, error) {
	return scanDealer(s.q.QueryRowContext(ctx,
		`SELECT `+dealerColumns+` FROM dealers d WHERE d.is_system = 1`))
}

func (s *Store) ListDealers(ctx context.Context, filter domain.DealerFilter) ([]domain.DealerSummary, error) {
	query := `SELECT ` + dealerColumns + `, COALESCE(w.website_status, 'not_requested'), COALESCE(w.is_live, 0)
		FROM dealers d LEFT JOIN website_content w ON w.dealer_id = d.id
		WHERE d.is_system = 0`
	var args []any

	if filter.Status != nil {
		query += ` AND d.status = ?`
		args = append(args, string(*filter.Status))
	}

	query += ` ORDER BY d.created_at DESC, d.id`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing dealers: %w", err)
	}
	defer rows.Close()

	summaries := []domain.DealerSummary{}
	for rows.Next() {
		var ds domain.DealerSummary
		var websiteStatus string
		var live int
		if err := scanDealerInto(rows, &ds.Dealer, &websiteStatus, &live); err != nil {
			return nil, fmt.Errorf("scanning dealer row: %w", err)
		}
		ds.WebsiteStatus = domain.WebsiteStatus(websiteStatus)
		ds.WebsiteLive = live == 1
		summaries = append(summaries, ds)
	}

	return summaries, rows.Err()
}

func (s *Store) UpdateDealer(ctx context.Context, id string, patch domain.DealerPatch) error {
	var a assignments
	setText(&a, "name", patch.Name)
	setText(&a, "dealership_name", patch.DealershipName)
	setText(&a, "email", patch.Email)
	setText(&a, "city", patch.City)
	setText(&a, "state", patch.State)
	setText(&a, "vehicle_category", patch.VehicleCategory)
	setSecret(&a, "password_hash", patch.PasswordHash)

	result, err := a.exec(ctx, s.q, "dealers", "id", id)
	if err != nil {
		return translate(err, "updating", "dealer", map[string]string{"email": patch.Email.Value}, nil)
	}
	return checkAffected(result, domain.ErrDealerNotFound)
}

func (s *Store) SetDealerStatus(ctx context.Context, id string, status domain.DealerStatus, reason string) error {
	result, err := s.q.ExecContext(ctx,
		`UPDATE dealers SET status = ?, deactivation_reason = ?, updated_at = ? WHERE id = ?`,
		string(status), nullString(reason), formatTime(nowUTC()), id,
	)
	if err != nil {
		return fmt.Errorf("updating dealer status: %w", err)
	}
	return checkAffected(result, domain.ErrDealerNotFound)
}

func (s *Store) CountDealerRows(ctx context.Context, id string) (domain.DealerFootprint, error) {
	var f domain.DealerFootprint
	err := s.q.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM vehicles WHERE dealer_id = ?),
			(SELECT COUNT(*) FROM employees WHERE dealer_id = ?),
			(SELECT COUNT(*) FROM leads WHERE dealer_id = ?),
			(SELECT COUNT(*) FROM salary_slips WHERE dealer_id = ?),
			(SELECT COUNT(*) FROM website_content WHERE dealer_id = ?)`,
		id, id, id, id, id,
	).Scan(&f.Vehicles, &f.Employees, &f.Leads, &f.SalarySlips, &f.Website)
	if err != nil {
		return domain.DealerFootprint{}, fmt.Errorf("counting dealer rows: %w", err)
	}
	return f, nil
}

// DeleteDealer removes the dealer row; foreign keys cascade to everything it owns.
func (s *Store) DeleteDealer(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM dealers WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting dealer: %w", err)
	}
	return checkAffected(result, domain.ErrDealerNotFound)
}

func scanDealer(row *sql.Row) (domain.Dealer, error) {
	var d domain.Dealer
	if err := scanDealerInto(row, &d); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Dealer{}, domain.ErrDealerNotFound
		}
		return domain.Dealer{}, fmt.Errorf("scanning dealer: %w", err)
	}
	return d, nil
}

func scanDealerInto(row scanner, d *domain.Dealer, extra ...any) error {
	var category, status, createdAt, updatedAt string
	var system int

	dest := []any{&d.ID, &d.Name, &d.DealershipName, &d.Phone, &d.Email, &d.City, &d.State,
		&category, &d.PasswordHash, &status, &d.DeactivationReason, &system, &createdAt, &updatedAt}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}

	d.VehicleCategory = domain.VehicleCategory(category)
	d.Status = domain.DealerStatus(status)
	d.IsSystemAccount = system == 1
	d.CreatedAt = parseTime(createdAt)
	d.UpdatedAt = parseTime(updatedAt)
	return nil
}
