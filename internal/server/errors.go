package server

import "net/http"

type httpError struct {
	Status  int
	Message string
	Err     error
}

func (e *httpError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}

	return e.Message
}

func (e *httpError) Unwrap() error {
	return e.Err
}

var (
	errBadRequest = &httpError{
		Status:  http.StatusBadRequest,
		Message: "Bad Request",
	}
	errNotFound = &httpError{
		Status:  http.StatusNotFound,
		Message: "Not Found",
	}
	errMethodNotAllowed = &httpError{
		Status:  http.StatusMethodNotAllowed,
		Message: "Method Not Allowed",
	}
)

const internalErrorMessage = "Internal Server Error"

// internalError keeps the cause for the log; clients only see the message.
func internalError(cause error) *httpError {
	return &httpError{
		Status:  http.StatusInternalServerError,
		Message: internalErrorMessage,
		Err:     cause,
	}
}
