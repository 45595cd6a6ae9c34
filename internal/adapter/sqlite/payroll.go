package sqlite

import (
	"context"
	"fmt"
	"strconv"

	"github.com/neomorfeo/dealerops/internal/domain"
)

const slipColumns = `id, employee_id, dealer_id, month, year, base_salary, incentives, status, generated_date`

// CreateSalarySlip inserts a slip. The (employee_id, month, year) unique
// constraint rejects a second slip for the same period.
func (s *Store) CreateSalarySlip(ctx context.Context, slip domain.SalarySlip) error {
	_, err := s.q.ExecContext(ctx,
		`INSERT INTO salary_slips (`+slipColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		slip.ID, slip.EmployeeID, slip.DealerID, slip.Month, slip.Year,
		slip.BaseSalary, slip.Incentives, string(slip.Status), formatTime(slip.GeneratedDate),
	)
	period := strconv.Itoa(slip.Month) + "/" + strconv.Itoa(slip.Year)
	return translate(err, "inserting", "salary slip",
		map[string]string{"period": period}, domain.ErrEmployeeNotFound)
}

func (s *Store) ListSalarySlips(ctx context.Context, employeeID string) ([]domain.SalarySlip, error) {
	return s.querySlips(ctx,
		`SELECT `+slipColumns+` FROM salary_slips WHERE employee_id = ? ORDER BY year DESC, month DESC`,
		employeeID)
}

func (s *Store) querySlips(ctx context.Context, query string, args ...any) ([]domain.SalarySlip, error) {
	rows, err := s.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing salary slips: %w", err)
	}
	defer rows.Close()

	slips := []domain.SalarySlip{}
	for rows.Next() {
		var slip domain.SalarySlip
		var status, generated string
		if err := rows.Scan(&slip.ID, &slip.EmployeeID, &slip.DealerID, &slip.Month, &slip.Year,
			&slip.BaseSalary, &slip.Incentives, &status, &generated); err != nil {
			return nil, fmt.Errorf("scanning salary slip row: %w", err)
		}
		slip.Status = domain.SlipStatus(status)
		slip.GeneratedDate = parseTime(generated)
		slips = append(slips, slip)
	}

	return slips, rows.Err()
}
