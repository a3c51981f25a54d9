// Package apperr defines the error taxonomy shared by services, stores and transports.
package apperr

import "errors"

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidID     = errors.New("the `id` is not valid")
	ErrDuplicateName = errors.New("the folder name already exists")
	ErrFolderInUse   = errors.New("the folder still contains notes")
)

// ValidationError reports a request body that is missing required fields.
type ValidationError struct {
	Err error
}

func (e *ValidationError) Error() string {
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
