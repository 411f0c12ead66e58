package services

import (
	"errors"
	"fmt"
)

// ValidationError marks malformed input: an ayat range outside the surah
// bounds, end before start, or a future-dated entry. Invalid input is always
// rejected outright, never clamped; clamping is how wrong data reaches the
// aggregates.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationErrorf(format string, args ...interface{}) error {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is a validation failure the caller should
// surface as a 400.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// ErrNotFound is returned when the addressed record does not exist or does
// not belong to the requesting user.
var ErrNotFound = errors.New("record not found")
