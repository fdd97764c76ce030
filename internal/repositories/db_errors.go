package repositories

import (
	"errors"

	"github.com/go-sql-driver/mysql"
)

// isDuplicateEntryError reports a MySQL/MariaDB unique constraint violation.
// Concurrent open-or-create and favorite toggles rely on it to treat the
// losing insert as "row already exists" instead of surfacing an error.
func isDuplicateEntryError(err error) bool {
	var mysqlErr *mysql.MySQLError
	return errors.As(err, &mysqlErr) && mysqlErr.Number == 1062
}
