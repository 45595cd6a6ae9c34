package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// employeeColumns selects an employee plus the number of leads assigned to
// them in the period bound by the first two query arguments.
const employeeColumns = `e.id, e.dealer_id, e.name, COALESCE(e.email, ''), e.phone, e.role, e.salary,
	COALESCE(e.avatar_url, ''), COALESCE(e.aadhar_image_url, ''), e.password_hash,
	e.joining_date, e.created_at, e.updated_at,
	(SELECT COUNT(*) FROM leads l WHERE l.assigned_to = e.id AND l.created_at >= ? AND l.created_at < ?)`

func (s *Store) CreateEmployee(ctx context.Context, e domain.Employee) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO employees (id, dealer_id, name, email, phone, role, salary, avatar_url,
		 aadhar_image_url, password_hash, joining_date, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.ID, e.DealerID, e.Name, nullString(e.Email), e.Phone, string(e.Role), e.Salary,
		nullString(e.AvatarURL), nullString(e.AadharImageURL), e.PasswordHash,
		formatTime(e.JoiningDate), formatTime(e.CreatedAt), formatTime(e.UpdatedAt),
	)
	return translate(err, "inserting", "employee",
		map[string]string{"phone": e.Phone, "email": e.Email}, domain.ErrDealerNotFound)
}

func (s *Store) GetEmployee(ctx context.Context, id string, period domain.Period) (domain.Employee, error) {
	e, err := scanEmployee(s.q.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.id = ?`,
		formatTime(period.From), formatTime(period.To), id))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return domain.Employee{}, fmt.Errorf("scanning employee: %w", err)
	}
	return e, nil
}

func (s *Store) GetEmployeeByPhone(ctx context.Context, phone string, period domain.Period) (domain.Employee, error) {
	e, err := scanEmployee(s.q.QueryRowContext(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.phone = ?`,
		formatTime(period.From), formatTime(period.To), phone))
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Employee{}, domain.ErrEmployeeNotFound
	}
	if err != nil {
		return domain.Employee{}, fmt.Errorf("scanning employee: %w", err)
	}
	return e, nil
}

// ListEmployees returns a dealer's staff with their salary slips attached.
func (s *Store) ListEmployees(ctx context.Context, dealerID string, period domain.Period) ([]domain.Employee, error) {
	rows, err := s.q.QueryContext(ctx,
		`SELECT `+employeeColumns+` FROM employees e WHERE e.dealer_id = ? ORDER BY e.joining_date, e.id`,
		formatTime(period.From), formatTime(period.To), dealerID)
	if err != nil {
		return nil, fmt.Errorf("listing employees: %w", err)
	}
	defer rows.Close()

	employees := []domain.Employee{}
	index := make(map[string]int)
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning employee row: %w", err)
		}
		e.SalarySlips = []domain.SalarySlip{}
		index[e.ID] = len(employees)
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	slips, err := s.querySlips(ctx,
		`SELECT `+slipColumns+` FROM salary_slips WHERE dealer_id = ? ORDER BY year DESC, month DESC`, dealerID)
	if err != nil {
		return nil, err
	}
	for _, slip := range slips {
		if i, ok := index[slip.EmployeeID]; ok {
			employees[i].SalarySlips = append(employees[i].SalarySlips, slip)
		}
	}

	return employees, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id string, patch domain.EmployeePatch) error {
	var a assignments
	setText(&a, "name", patch.Name)
	setText(&a, "email", patch.Email)
	setText(&a, "phone", patch.Phone)
	setText(&a, "role", patch.Role)
	setNumber(&a, "salary", patch.Salary)
	setText(&a, "avatar_url", patch.AvatarURL)
	setText(&a, "aadhar_image_url", patch.AadharImageURL)
	setSecret(&a, "password_hash", patch.PasswordHash)
	setTime(&a, "joining_date", patch.JoiningDate)

	result, err := a.exec(ctx, s.q, "employees", "id", id)
	if err != nil {
		return translate(err, "updating", "employee",
			map[string]string{"phone": patch.Phone.Value, "email": patch.Email.Value}, nil)
	}
	return checkAffected(result, domain.ErrEmployeeNotFound)
}

// DeleteEmployee removes the employee. Assigned leads keep existing with
// assigned_to set to NULL; salary slips are removed with the employee.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	result, err := s.q.ExecContext(ctx, `DELETE FROM employees WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting employee: %w", err)
	}
	return checkAffected(result, domain.ErrEmployeeNotFound)
}

func scanEmployee(row scanner) (domain.Employee, error) {
	var e domain.Employee
	var role, joining, createdAt, updatedAt string

	err := row.Scan(&e.ID, &e.DealerID, &e.Name, &e.Email, &e.Phone, &role, &e.Salary,
		&e.AvatarURL, &e.AadharImageURL, &e.PasswordHash,
		&joining, &createdAt, &updatedAt, &e.LeadsThisMonth)
	if err != nil {
		return domain.Employee{}, err
	}

	e.Role = domain.Role(role)
	e.JoiningDate = parseTime(joining)
	e.CreatedAt = parseTime(createdAt)
	e.UpdatedAt = parseTime(updatedAt)
	return e, nil
}
