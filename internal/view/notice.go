package view

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Famanien/University-Hub/internal/portal"
)

// Notice is a data-carrying acknowledgment shown to the user after an
// operation. Business modules return errors; this layer turns them into the
// title and message the dialog renders.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Canned success notices matching the dialogs the portal shows.
func AccountCreatedNotice() Notice {
	return Notice{Title: "Success", Message: "Account created! Please login."}
}

func LoggedOutNotice() Notice {
	return Notice{Title: "Logged Out", Message: "See you next time!"}
}

func BookedNotice() Notice {
	return Notice{Title: "Booked!", Message: "Your room is reserved."}
}

func RegisteredNotice(eventName string) Notice {
	return Notice{Title: "Registered", Message: fmt.Sprintf("See you at %s!", eventName)}
}

// FromError maps a module error onto the notice the dialog shows for it.
// Unknown errors collapse into a generic failure so internals never leak.
func FromError(err error) Notice {
	var validation *portal.ValidationError
	switch {
	case errors.Is(err, portal.ErrInvalidCredentials):
		return Notice{Title: "Error", Message: "Invalid credentials."}
	case errors.Is(err, portal.ErrUsernameTaken):
		return Notice{Title: "Error", Message: "Username taken."}
	case errors.Is(err, portal.ErrSlotConflict):
		return Notice{Title: "Conflict", Message: "This room is booked for that time."}
	case errors.Is(err, portal.ErrAlreadyRegistered):
		return Notice{Title: "Error", Message: "You are already registered for this event."}
	case errors.Is(err, portal.ErrNotAuthenticated):
		return Notice{Title: "Error", Message: "Please login first."}
	case errors.Is(err, portal.ErrUnauthorized):
		return Notice{Title: "Error", Message: "You are not allowed to do that."}
	case errors.Is(err, portal.ErrConfirmationRequired):
		return Notice{Title: "Error", Message: "Confirmation is required."}
	case errors.Is(err, portal.ErrNotFound):
		return Notice{Title: "Error", Message: "That record no longer exists."}
	case errors.As(err, &validation):
		fields := make([]string, 0, len(validation.FieldErrors))
		for field := range validation.FieldErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		messages := make([]string, 0, len(fields))
		for _, field := range fields {
			messages = append(messages, validation.FieldErrors[field])
		}
		return Notice{Title: "Error", Message: strings.Join(messages, " ")}
	default:
		return Notice{Title: "Error", Message: "Something went wrong. Please try again."}
	}
}
