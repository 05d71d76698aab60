package apperror

import "net/http"

type AppError struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Detail  interface{} `json:"detail,omitempty"`
	Err     error       `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// WithDetail attaches a client-facing detail payload (e.g. field violations)
func (e *AppError) WithDetail(detail interface{}) *AppError {
	e.Detail = detail
	return e
}

func BadRequest(message string) *AppError {
	return New(http.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(http.StatusNotFound, message, nil)
}

func UnprocessableEntity(message string, detail interface{}, err error) *AppError {
	return New(http.StatusUnprocessableEntity, message, err).WithDetail(detail)
}

func Internal(err error) *AppError {
	return New(http.StatusInternalServerError, "Internal Server Error", err)
}
