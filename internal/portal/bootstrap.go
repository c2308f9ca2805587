package portal

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Famanien/University-Hub/internal/store"
)

// adminUsername is the account that unlocks the administrative panel.
const adminUsername = "admin"

// SeedParams configures first-run initialisation of the store.
type SeedParams struct {
	AdminPassword string
	DefaultTheme  Theme
	Digest        CredentialDigester
	IDGenerator   func() string
	Now           func() time.Time
}

// Seed writes the documented defaults for every key that is absent: the
// seeded admin account, empty collections, and the default theme. Keys that
// already hold a value are left untouched, so Seed is safe on every boot.
func Seed(ctx context.Context, kv store.KV, params SeedParams) error {
	if kv == nil {
		return fmt.Errorf("store not configured")
	}
	if params.Digest == nil {
		params.Digest = func(password string) (string, error) {
			return CreateCredentialDigest(password, DefaultArgon2idParams)
		}
	}
	if params.IDGenerator == nil {
		params.IDGenerator = func() string { return "" }
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	if params.AdminPassword == "" {
		params.AdminPassword = adminUsername
	}
	if params.DefaultTheme == "" {
		params.DefaultTheme = ThemeLight
	}

	if _, err := kv.Get(ctx, store.KeyUsers); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return err
		}
		digest, derr := params.Digest(params.AdminPassword)
		if derr != nil {
			return fmt.Errorf("seed admin digest: %w", derr)
		}
		admin := User{
			ID:               params.IDGenerator(),
			Username:         adminUsername,
			CredentialDigest: digest,
			CreatedAt:        params.Now(),
		}
		if err := store.SaveCollection(ctx, kv, store.KeyUsers, []User{admin}); err != nil {
			return err
		}
	}

	if err := store.EnsureDefault(ctx, kv, store.KeyBookings, []Booking{}); err != nil {
		return err
	}
	if err := store.EnsureDefault(ctx, kv, store.KeyReservations, []Reservation{}); err != nil {
		return err
	}
	if err := store.EnsureDefault(ctx, kv, store.KeyCourses, []Course{}); err != nil {
		return err
	}
	if err := store.EnsureDefault(ctx, kv, store.KeyTasks, []Task{}); err != nil {
		return err
	}
	if err := store.EnsureDefault(ctx, kv, store.KeySessions, []Session{}); err != nil {
		return err
	}
	return store.EnsureDefault(ctx, kv, store.KeyTheme, params.DefaultTheme)
}
