package view_test

import (
	"errors"
	"testing"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/view"
)

func TestFromError(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want view.Notice
	}{
		{
			name: "invalid credentials",
			err:  portal.ErrInvalidCredentials,
			want: view.Notice{Title: "Error", Message: "Invalid credentials."},
		},
		{
			name: "username taken",
			err:  portal.ErrUsernameTaken,
			want: view.Notice{Title: "Error", Message: "Username taken."},
		},
		{
			name: "slot conflict",
			err:  portal.ErrSlotConflict,
			want: view.Notice{Title: "Conflict", Message: "This room is booked for that time."},
		},
		{
			name: "not authenticated",
			err:  portal.ErrNotAuthenticated,
			want: view.Notice{Title: "Error", Message: "Please login first."},
		},
		{
			name: "unknown errors collapse to a generic failure",
			err:  errors.New("disk exploded"),
			want: view.Notice{Title: "Error", Message: "Something went wrong. Please try again."},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := view.FromError(tc.err); got != tc.want {
				t.Fatalf("expected %#v, got %#v", tc.want, got)
			}
		})
	}

	t.Run("validation messages join in field order", func(t *testing.T) {
		t.Parallel()

		err := &portal.ValidationError{FieldErrors: map[string]string{
			"username": "username is required",
			"password": "password is required",
		}}
		got := view.FromError(err)
		if got.Message != "password is required username is required" {
			t.Fatalf("expected joined messages, got %q", got.Message)
		}
	})
}
