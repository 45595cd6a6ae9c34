package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/neomorfeo/dealerops/internal/domain"
)

// assignments collects the SET clause of a partial update from the present
// fields of a patch.
type assignments struct {
	cols []string
	args []any
}

func (a *assignments) add(col string, v any) {
	a.cols = append(a.cols, col+" = ?")
	a.args = append(a.args, v)
}

func (a *assignments) empty() bool { return len(a.cols) == 0 }

// setText writes a string field; a present empty string writes NULL.
func setText[T ~string](a *assignments, col string, f domain.Field[T]) {
	if !f.Present {
		return
	}
	if f.Null || f.Value == "" {
		a.add(col, nil)
		return
	}
	a.add(col, string(f.Value))
}

// setSecret writes a credential only when a non-empty value is supplied.
func setSecret(a *assignments, col string, f domain.Field[string]) {
	if v, ok := f.Get(); ok && v != "" {
		a.add(col, v)
	}
}

func setNumber[T int | float64](a *assignments, col string, f domain.Field[T]) {
	if !f.Present {
		return
	}
	if f.Null {
		a.add(col, nil)
		return
	}
	a.add(col, f.Value)
}

func setTime(a *assignments, col string, f domain.Field[time.Time]) {
	if !f.Present {
		return
	}
	if f.Null || f.Value.IsZero() {
		a.add(col, nil)
		return
	}
	a.add(col, formatTime(f.Value))
}

func setJSON[T any](a *assignments, col string, f domain.Field[T]) error {
	if !f.Present {
		return nil
	}
	if f.Null {
		a.add(col, nil)
		return nil
	}
	raw, err := json.Marshal(f.Value)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", col, err)
	}
	a.add(col, string(raw))
	return nil
}

// exec runs the update against one row keyed by keyCol. An update with no
// present fields still verifies the row exists.
func (a *assignments) exec(ctx context.Context, q querier, table, keyCol, key string) (sql.Result, error) {
	if a.empty() {
		return q.ExecContext(ctx,
			fmt.Sprintf(`UPDATE %s SET %s = %s WHERE %s = ?`, table, keyCol, keyCol, keyCol), key)
	}
	a.add("updated_at", formatTime(nowUTC()))
	query := fmt.Sprintf(`UPDATE %s SET %s WHERE %s = ?`, table, strings.Join(a.cols, ", "), keyCol)
	return q.ExecContext(ctx, query, append(a.args, key)...)
}

func encodeJSON(v any) (any, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(raw), nil
}

func decodeJSON(raw sql.NullString, out any) error {
	if !raw.Valid || raw.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(raw.String), out)
}
