package testfixtures

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/store"
	"github.com/Famanien/University-Hub/internal/store/bolt"
	"github.com/Famanien/University-Hub/internal/store/memory"
)

// PlainDigest is a transparent stand-in for the argon2id digester so tests
// stay fast and digests stay readable in failure output.
func PlainDigest(password string) (string, error) {
	return "plain:" + password, nil
}

// PlainVerify pairs with PlainDigest.
func PlainVerify(digest, password string) error {
	if digest != "plain:"+password {
		return portal.ErrInvalidCredentials
	}
	return nil
}

// NewMemoryStore returns an in-memory store seeded with the documented
// defaults: the admin account (password "admin" via PlainDigest), empty
// collections, and the light theme.
func NewMemoryStore(tb testing.TB) store.KV {
	tb.Helper()

	kv := memory.Open()
	seed(tb, kv)
	tb.Cleanup(func() { kv.Close() })
	return kv
}

// NewBoltStore returns a bbolt backed store in a temporary directory, seeded
// like NewMemoryStore. It exists for tests that need durability semantics.
func NewBoltStore(tb testing.TB) store.KV {
	tb.Helper()

	kv, err := bolt.Open(filepath.Join(tb.TempDir(), "portal.db"))
	if err != nil {
		tb.Fatalf("open bolt store: %v", err)
	}
	seed(tb, kv)
	tb.Cleanup(func() { kv.Close() })
	return kv
}

func seed(tb testing.TB, kv store.KV) {
	tb.Helper()

	err := portal.Seed(context.Background(), kv, portal.SeedParams{
		AdminPassword: "admin",
		Digest:        PlainDigest,
		IDGenerator:   NewIDGenerator("seed").NextFunc(),
		Now:           NewClock(ReferenceTime()).NowFunc(),
	})
	if err != nil {
		tb.Fatalf("seed store: %v", err)
	}
}

// AddUser inserts a user directly, bypassing registration, and returns the
// stored record. The credential digest follows PlainDigest.
func AddUser(tb testing.TB, kv store.KV, username, password string) portal.User {
	tb.Helper()

	ctx := context.Background()
	users, err := store.LoadCollection[portal.User](ctx, kv, store.KeyUsers)
	if err != nil {
		tb.Fatalf("load users: %v", err)
	}

	user := portal.User{
		ID:               "user-" + strings.ToLower(username),
		Username:         username,
		CredentialDigest: "plain:" + password,
		CreatedAt:        ReferenceTime(),
	}
	if err := store.SaveCollection(ctx, kv, store.KeyUsers, append(users, user)); err != nil {
		tb.Fatalf("save users: %v", err)
	}
	return user
}
