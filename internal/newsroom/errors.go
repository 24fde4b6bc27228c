package newsroom

import "errors"

// ErrNotFound marks a missing article or category.
var ErrNotFound = errors.New("not found")

// AuthorizationError means the actor lacks the role or the ownership the
// requested operation needs. Nothing has been written when it is returned.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return "authorization: " + e.Reason
}

// ValidationError means the input was rejected before any write.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "validation: " + e.Reason
}

func IsAuthorization(err error) bool {
	var authErr *AuthorizationError
	return errors.As(err, &authErr)
}

func IsValidation(err error) bool {
	var valErr *ValidationError
	return errors.As(err, &valErr)
}
