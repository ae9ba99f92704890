package store

import (
	"errors"

	"github.com/lib/pq"
)

// DataSourceError wraps a fault reported by the database other than "no rows".
// Code carries the PostgreSQL SQLSTATE when the driver provides one.
type DataSourceError struct {
	Op      string
	Code    string
	Message string
	Err     error
}

func (e *DataSourceError) Error() string {
	if e.Code != "" {
		return e.Op + ": " + e.Message + " (SQLSTATE " + e.Code + ")"
	}
	return e.Op + ": " + e.Message
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

func newDataSourceError(op string, err error) *DataSourceError {
	dsErr := &DataSourceError{Op: op, Message: err.Error(), Err: err}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		dsErr.Code = string(pqErr.Code)
		dsErr.Message = pqErr.Message
	}
	return dsErr
}
