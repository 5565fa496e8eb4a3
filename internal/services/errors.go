package services

import (
	"errors"
	"fmt"
)

// opError carries a terminal Result out of a transaction closure. Returning
// it aborts (rolls back) the transaction while still producing the intended
// client-facing status instead of a 500.
type opError struct {
	result Result
}

func (e *opError) Error() string {
	return fmt.Sprint(e.result.Value)
}

func failNotFoundf(format string, args ...interface{}) error {
	return &opError{result: resultNotFoundf(format, args...)}
}

func failBadRequest(message string) error {
	return &opError{result: resultBadRequest(message)}
}

// finish maps the outcome of a transactional operation: a nil error yields
// the success result, an opError yields its embedded result, anything else
// is an unexpected fault logged and surfaced as a 500.
func finish(err error, success Result, logf func(template string, args ...interface{}), op string) Result {
	if err == nil {
		return success
	}
	var oe *opError
	if errors.As(err, &oe) {
		return oe.result
	}
	logf("unexpected fault in %s: %v", op, err)
	return resultInternalError(err)
}
