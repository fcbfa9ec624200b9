package repository

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

var (
	// ErrDuplicate is returned when an insert loses a uniqueness race, e.g. two
	// buyers reserving the same artwork at once.
	ErrDuplicate = errors.New("duplicate key")
	// ErrStaleState is returned when a conditional update matched no rows because
	// the row was no longer in the expected status.
	ErrStaleState = errors.New("row not in expected state")
)

const mysqlDuplicateEntry = 1062

func translateDuplicate(err error) error {
	var me *mysql.MySQLError
	if errors.As(err, &me) && me.Number == mysqlDuplicateEntry {
		return ErrDuplicate
	}
	return err
}
