package repos

import (
	"database/sql"
	"errors"
)

// ErrNotFound is returned when an owner-scoped row is absent. Callers cannot
// distinguish "missing" from "owned by someone else" and that is deliberate.
var ErrNotFound = errors.New("not found")

func oneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsNotFound matches both the sentinel and the driver's empty-result error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, sql.ErrNoRows)
}
