package service

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"net"

	appErrors "github.com/orbis-edu/school-bi-api/pkg/errors"
)

// storeError classifies a repository failure into the connection/query
// taxonomy. Both map to the same HTTP status; the code matters for logs.
func storeError(err error, message string) error {
	if err == nil {
		return nil
	}
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if isConnectionError(err) {
		return appErrors.Wrap(err, appErrors.ErrStoreUnavailable.Code, appErrors.ErrStoreUnavailable.Status, message)
	}
	return appErrors.Wrap(err, appErrors.ErrQueryFailed.Code, appErrors.ErrQueryFailed.Status, message)
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
