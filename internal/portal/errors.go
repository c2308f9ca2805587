package portal

import "errors"

var (
	// ErrUsernameTaken is returned when registration collides with an existing
	// username (case-sensitive match).
	ErrUsernameTaken = errors.New("portal: username taken")
	// ErrInvalidCredentials is the single generic login failure; it never
	// distinguishes an unknown username from a wrong password.
	ErrInvalidCredentials = errors.New("portal: invalid credentials")
	// ErrNotAuthenticated is returned when an operation requires an active
	// session and none is present.
	ErrNotAuthenticated = errors.New("portal: not authenticated")
	// ErrUnauthorized is returned when the acting principal lacks permission
	// for an operation.
	ErrUnauthorized = errors.New("portal: unauthorized")
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("portal: not found")
	// ErrSlotConflict is returned when a booking targets a (room, slot) pair
	// that is already taken.
	ErrSlotConflict = errors.New("portal: slot already booked")
	// ErrAlreadyRegistered is returned when a user registers twice for the
	// same event.
	ErrAlreadyRegistered = errors.New("portal: already registered")
	// ErrConfirmationRequired is returned when a destructive operation is
	// invoked without its explicit confirmation flag.
	ErrConfirmationRequired = errors.New("portal: confirmation required")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil {
		return ""
	}
	return "validation failed"
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrUsernameTaken):
		return "username_taken"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrNotAuthenticated):
		return "not_authenticated"
	case errors.Is(err, ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrSlotConflict):
		return "slot_conflict"
	case errors.Is(err, ErrAlreadyRegistered):
		return "already_registered"
	case errors.Is(err, ErrConfirmationRequired):
		return "confirmation_required"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
