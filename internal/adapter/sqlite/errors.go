package sqlite

import (
	"fmt"
	"strings"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// constraintColumns extracts the column names from a SQLite constraint error,
// e.g. "UNIQUE constraint failed: dealers.phone (2067)" yields ["phone"].
func constraintColumns(err error, kind string) ([]string, bool) {
	prefix := kind + " constraint failed: "
	msg := err.Error()
	i := strings.Index(msg, prefix)
	if i < 0 {
		return nil, false
	}
	rest := msg[i+len(prefix):]
	if j := strings.Index(rest, " ("); j >= 0 {
		rest = rest[:j]
	}
	var cols []string
	for _, part := range strings.Split(rest, ",") {
		part = strings.TrimSpace(part)
		if k := strings.LastIndex(part, "."); k >= 0 {
			part = part[k+1:]
		}
		if part != "" {
			cols = append(cols, part)
		}
	}
	return cols, len(cols) > 0
}

// isForeignKeyViolation checks if a SQLite error is a FOREIGN KEY constraint violation.
func isForeignKeyViolation(err error) bool {
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

// translate maps constraint failures onto domain errors. values supplies the
// offending value per field for the conflict message; fk is returned for
// foreign key failures.
func translate(err error, action, entity string, values map[string]string, fk error) error {
	if err == nil {
		return nil
	}
	if cols, ok := constraintColumns(err, "UNIQUE"); ok {
		field := cols[0]
		if len(cols) > 1 {
			field = "period"
		}
		return &domain.ConflictError{Entity: entity, Field: field, Value: values[field]}
	}
	if fk != nil && isForeignKeyViolation(err) {
		return fk
	}
	if cols, ok := constraintColumns(err, "NOT NULL"); ok {
		return &domain.ValidationError{Field: cols[0], Reason: "must not be empty"}
	}
	if cols, ok := constraintColumns(err, "CHECK"); ok {
		// Unnamed CHECK constraints report their expression, which starts with the column.
		return &domain.ValidationError{Field: strings.Fields(cols[0])[0], Reason: "value not allowed"}
	}
	return fmt.Errorf("%s %s: %w", action, entity, err)
}
