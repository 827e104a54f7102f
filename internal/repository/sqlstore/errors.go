package sqlstore

import (
	"errors"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"jobboard/internal/common"
)

const (
	pgUniqueViolation   = "23505"
	mysqlDuplicateEntry = 1062
	notFoundMessage     = "Data not found."
)

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	var myErr *mysqldriver.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return true
	}
	return false
}

// wrapError maps driver errors onto application codes; message describes the
// failed operation for internal errors.
func wrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	if _, ok := common.As(err); ok {
		return err
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.NewError(common.CodeNotFound, notFoundMessage, err)
	case isUniqueViolation(err):
		return common.NewError(common.CodeConflict, message+": duplicate value", err)
	default:
		return common.NewError(common.CodeInternal, message, err)
	}
}

func errNotFound() error {
	return common.NewError(common.CodeNotFound, notFoundMessage, nil)
}
