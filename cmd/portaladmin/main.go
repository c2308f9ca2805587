// Command portaladmin is the operator's companion to the portal service. It
// opens the same store the service uses, so it must not run against a bolt
// file while the service holds it open.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Famanien/University-Hub/internal/config"
	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/store"
	"github.com/Famanien/University-Hub/internal/store/bolt"
	"github.com/Famanien/University-Hub/internal/store/memory"
	"github.com/Famanien/University-Hub/internal/store/sqlite"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var storeDSN string

	root := &cobra.Command{
		Use:          "portaladmin",
		Short:        "Administer a portal deployment's store",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&storeDSN, "store", "", "store DSN (bolt://, sqlite:// or memory://); defaults to the service configuration")

	root.AddCommand(newStatsCommand(&storeDSN))
	root.AddCommand(newResetCommand(&storeDSN))
	root.AddCommand(newAddUserCommand(&storeDSN))
	return root
}

func newStatsCommand(storeDSN *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print user, booking and reservation counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, _, err := openConfiguredStore(*storeDSN)
			if err != nil {
				return err
			}
			defer kv.Close()

			ctx := cmd.Context()
			users, err := store.LoadCollection[portal.User](ctx, kv, store.KeyUsers)
			if err != nil {
				return err
			}
			bookings, err := store.LoadCollection[portal.Booking](ctx, kv, store.KeyBookings)
			if err != nil {
				return err
			}
			reservations, err := store.LoadCollection[portal.Reservation](ctx, kv, store.KeyReservations)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "users:        %d\n", len(users))
			fmt.Fprintf(cmd.OutOrStdout(), "bookings:     %d\n", len(bookings))
			fmt.Fprintf(cmd.OutOrStdout(), "reservations: %d\n", len(reservations))
			return nil
		},
	}
}

func newResetCommand(storeDSN *string) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Wipe the store and reseed the default admin account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}

			kv, cfg, err := openConfiguredStore(*storeDSN)
			if err != nil {
				return err
			}
			defer kv.Close()

			ctx := cmd.Context()
			if err := kv.Clear(ctx); err != nil {
				return err
			}
			if err := seedDefaults(ctx, kv, cfg); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "store reset to first-run state")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "confirm the destructive reset")
	return cmd
}

func newAddUserCommand(storeDSN *string) *cobra.Command {
	return &cobra.Command{
		Use:   "adduser <username>",
		Short: "Create an account, prompting for the password",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			username := strings.TrimSpace(args[0])
			if username == "" {
				return fmt.Errorf("username must not be empty")
			}

			password, err := promptPassword(cmd)
			if err != nil {
				return err
			}

			kv, cfg, err := openConfiguredStore(*storeDSN)
			if err != nil {
				return err
			}
			defer kv.Close()

			ctx := cmd.Context()
			if err := seedDefaults(ctx, kv, cfg); err != nil {
				return err
			}

			service := portal.NewAuthService(kv, nil, nil, uuid.NewString, nil, time.Now, cfg.SessionTTL, discardLogger())
			user, err := service.Register(ctx, portal.RegisterParams{Username: username, Password: password})
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (%s)\n", user.Username, user.ID)
			return nil
		},
	}
}

// promptPassword reads the password without echo when stdin is a terminal,
// falling back to a plain line read when it is piped.
func promptPassword(cmd *cobra.Command) (string, error) {
	fmt.Fprint(cmd.OutOrStdout(), "Password: ")

	if term.IsTerminal(int(syscall.Stdin)) {
		raw, err := term.ReadPassword(int(syscall.Stdin))
		fmt.Fprintln(cmd.OutOrStdout())
		if err != nil {
			return "", err
		}
		return string(raw), nil
	}

	var password string
	if _, err := fmt.Fscanln(cmd.InOrStdin(), &password); err != nil {
		return "", err
	}
	return password, nil
}

func openConfiguredStore(dsn string) (store.KV, config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, err
	}
	if dsn == "" {
		dsn = cfg.StoreDSN
	}

	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return nil, config.Config{}, fmt.Errorf("store DSN %q has no scheme", dsn)
	}
	switch scheme {
	case "bolt":
		kv, err := bolt.Open(rest)
		return kv, cfg, err
	case "sqlite":
		kv, err := sqlite.Open(rest)
		return kv, cfg, err
	case "memory":
		return memory.Open(), cfg, nil
	default:
		return nil, config.Config{}, fmt.Errorf("unknown store scheme %q", scheme)
	}
}

func seedDefaults(ctx context.Context, kv store.KV, cfg config.Config) error {
	return portal.Seed(ctx, kv, portal.SeedParams{
		AdminPassword: cfg.AdminPassword,
		DefaultTheme:  portal.Theme(cfg.DefaultTheme),
		IDGenerator:   uuid.NewString,
		Now:           time.Now,
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}
