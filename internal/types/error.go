package types

import "fmt"

// CustomError is the error shape the global Fiber error handler knows how to
// render. Type is a dotted tag in the "radelement.*" namespace, empty means
// unclassified.
type CustomError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Type    string `json:"type"`
}

func (e *CustomError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("%d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("%d: %s [type: %s]", e.Code, e.Message, e.Type)
}
