package services

import (
	"fmt"
	"net/http"
)

// Result is the outcome of one service operation: the response payload plus
// the HTTP status it should be served with. The payload is either a DTO, a
// list, a confirmation string, or an error message string.
type Result struct {
	Value  interface{}
	Status int
}

func resultOK(value interface{}) Result {
	return Result{Value: value, Status: http.StatusOK}
}

func resultCreated(value interface{}) Result {
	return Result{Value: value, Status: http.StatusCreated}
}

func resultOKf(format string, args ...interface{}) Result {
	return Result{Value: fmt.Sprintf(format, args...), Status: http.StatusOK}
}

func resultBadRequest(message string) Result {
	return Result{Value: message, Status: http.StatusBadRequest}
}

func resultNotFoundf(format string, args ...interface{}) Result {
	return Result{Value: fmt.Sprintf(format, args...), Status: http.StatusNotFound}
}

// resultInternalError surfaces the innermost cause of an unexpected fault.
// The enclosing transaction has already been rolled back by the time this is
// built.
func resultInternalError(err error) Result {
	return Result{Value: rootCause(err).Error(), Status: http.StatusInternalServerError}
}

func rootCause(err error) error {
	for {
		unwrapped := unwrap(err)
		if unwrapped == nil {
			return err
		}
		err = unwrapped
	}
}

func unwrap(err error) error {
	u, ok := err.(interface{ Unwrap() error })
	if !ok {
		return nil
	}
	return u.Unwrap()
}
