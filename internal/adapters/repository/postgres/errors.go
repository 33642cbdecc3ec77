package postgres

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"net"

	"github.com/classpoll/api/internal/core/domain"
	"github.com/lib/pq"
)

// Error classes where the store itself is unreachable or shedding load,
// as opposed to the statement being wrong.
var unavailableClasses = map[pq.ErrorClass]bool{
	"08": true, // connection exception
	"53": true, // insufficient resources
	"57": true, // operator intervention
	"58": true, // system error
}

// storeErr tags connection-class driver failures with domain.ErrUnavailable
// so callers can tell a down database from a bad request. Statement-level
// errors pass through unchanged.
func storeErr(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if unavailableClasses[pqErr.Code.Class()] {
			return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
		}
		return err
	}

	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", domain.ErrUnavailable, err)
	}

	return err
}
