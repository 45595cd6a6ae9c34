package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const leadColumns = `l.id, l.dealer_id, COALESCE(l.vehicle_id, ''), COALESCE(l.assigned_to, ''),
	l.name, l.phone, COALESCE(l.email, ''), l.test_drive_status, l.conversion_status,
	COALESCE(l.other_vehicle_name, ''), COALESCE(l.other_vehicle_reg, ''), COALESCE(l.notes, ''),
	l.is_archived, l.created_at, l.updated_at,
	TRIM(COALESCE(v.make, '') || ' ' || COALESCE(v.model, '') || ' ' || COALESCE(v.variant, '')),
	COALESCE(v.registration_number, ''), COALESCE(e.name, '')`

const leadJoins = ` FROM leads l
	LEFT JOIN vehicles v ON v.id = l.vehicle_id
	LEFT JOIN employees e ON e.id = l.assigned_to`

// CreateLead inserts a lead. A vehicle_id or assigned_to that does not exist
// fails with the matching not-found error.
func (s *Store) CreateLead(ctx context.Context, l domain.Lead) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO leads (id, dealer_id, vehicle_id, assigned_to, name, phone, email,
		 test_drive_status, conversion_status, other_vehicle_name, other_vehicle_reg, notes,
		 is_archived, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.DealerID, nullString(l.VehicleID), nullString(l.AssignedTo), l.Name, l.Phone,
		nullString(l.Email), string(l.TestDriveStatus), string(l.ConversionStatus),
		nullString(l.OtherVehicleName), nullString(l.OtherVehicleReg), nullString(l.Notes),
		boolInt(l.IsArchived), formatTime(l.CreatedAt), formatTime(l.UpdatedAt),
	)
	return translate(err, "inserting", "lead", nil,
		fmt.Errorf("lead references a missing dealer, vehicle or employee: %w", domain.ErrNotFound))
}

func (s *Store) GetLead(ctx context.Context, id string) (domain.LeadView, error) {
	lv, err := scanLead(s.q.QueryRowContext(ctx, `SELECT `+leadColumns+leadJoins+` WHERE l.id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.LeadView{}, domain.ErrLeadNotFound
	}
	if err != nil {
		return domain.LeadView{}, fmt.Errorf("scanning lead: %w", err)
	}
	return lv, nil
}

func (s *Store) ListLeads(ctx context.Context, filter domain.LeadFilter) ([]domain.LeadView, error) {
	query := `SELECT ` + leadColumns + leadJoins + ` WHERE l.is_archived = ?`
	args := []any{boolInt(filter.Archived)}

	if filter.DealerID != "" {
		query += ` AND l.dealer_id = ?`
		args = append(args, filter.DealerID)
	}
	if filter.EmployeeID != "" {
		query += ` AND l.assigned_to = ?`
		args = append(args, filter.EmployeeID)
	}

	query += ` ORDER BY l.created_at DESC, l.id`

	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing leads: %w", err)
	}
	defer rows.Close()

	leads := []domain.LeadView{}
	for rows.Next() {
		lv, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning lead row: %w", err)
		}
		leads = append(leads, lv)
	}

	return leads, rows.Err()
}

func (s *Store) UpdateLead(ctx context.Context, id string, patch domain.LeadPatch) error {
	var a assignments
	setText(&a, "name", patch.Name)
	setText(&a, "phone", patch.Phone)
	setText(&a, "email", patch.Email)
	setText(&a, "assigned_to", patch.AssignedTo)
	setText(&a, "test_drive_status", patch.TestDriveStatus)
	setText(&a, "conversion_status", patch.ConversionStatus)
	setText(&a, "notes", patch.Notes)

	result, err := a.exec(ctx, s.q, "leads", "id", id)
	if err != nil {
		return translate(err, "updating", "lead", nil, domain.ErrEmployeeNotFound)
	}
	return checkAffected(result, domain.ErrLeadNotFound)
}

// ArchiveLeadsForVehicle archives every open lead referencing the vehicle and
// returns how many were archived.
func (s *Store) ArchiveLeadsForVehicle(ctx context.Context, vehicleID string) (int, error) {
	result, err := s.q.ExecContext(ctx,
		`UPDATE leads SET is_archived = 1, updated_at = ? WHERE vehicle_id = ? AND is_archived = 0`,
		formatTime(nowUTC()), vehicleID,
	)
	if err != nil {
		return 0, fmt.Errorf("archiving leads: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("checking rows affected: %w", err)
	}
	return int(n), nil
}

func scanLead(row scanner) (domain.LeadView, error) {
	var lv domain.LeadView
	var testDrive, conversion, createdAt, updatedAt string
	var archived int

	err := row.Scan(&lv.ID, &lv.DealerID, &lv.VehicleID, &lv.AssignedTo,
		&lv.Name, &lv.Phone, &lv.Email, &testDrive, &conversion,
		&lv.OtherVehicleName, &lv.OtherVehicleReg, &lv.Notes,
		&archived, &createdAt, &updatedAt,
		&lv.VehicleName, &lv.VehicleRegistration, &lv.AssignedToName)
	if err != nil {
		return domain.LeadView{}, err
	}

	lv.TestDriveStatus = domain.TestDriveStatus(testDrive)
	lv.ConversionStatus = domain.ConversionStatus(conversion)
	lv.IsArchived = archived == 1
	lv.CreatedAt = parseTime(createdAt)
	lv.UpdatedAt = parseTime(updatedAt)
	return lv, nil
}
