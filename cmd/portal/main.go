package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/Famanien/University-Hub/internal/config"
	httptransport "github.com/Famanien/University-Hub/internal/http"
	"github.com/Famanien/University-Hub/internal/portal"
	"github.com/Famanien/University-Hub/internal/store"
	"github.com/Famanien/University-Hub/internal/store/bolt"
	"github.com/Famanien/University-Hub/internal/store/memory"
	"github.com/Famanien/University-Hub/internal/store/sqlite"
	"github.com/Famanien/University-Hub/internal/view"
	"github.com/Famanien/University-Hub/internal/widgets"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	kv, err := openStore(cfg.StoreDSN)
	if err != nil {
		logger.Error("failed to open store", "error", err)
		os.Exit(1)
	}
	defer func() {
		if cerr := kv.Close(); cerr != nil {
			logger.Error("failed to close store", "error", cerr)
		}
	}()

	idGenerator := uuid.NewString
	tokenGenerator := func() string { return randomHex(32) }
	now := time.Now

	seedParams := portal.SeedParams{
		AdminPassword: cfg.AdminPassword,
		DefaultTheme:  portal.Theme(cfg.DefaultTheme),
		IDGenerator:   idGenerator,
		Now:           now,
	}
	if err := portal.Seed(ctx, kv, seedParams); err != nil {
		logger.Error("failed to seed store", "error", err)
		os.Exit(1)
	}

	authService := portal.NewAuthService(kv, nil, nil, idGenerator, tokenGenerator, now, cfg.SessionTTL, logger)
	bookingService := portal.NewBookingService(kv, idGenerator, now, logger)
	eventService := portal.NewEventService(kv, idGenerator, now, logger)
	gpaService := portal.NewGPAService(kv, idGenerator, logger)
	todoService := portal.NewTodoService(kv, idGenerator, logger)
	themeService := portal.NewThemeService(kv, logger)
	adminService := portal.NewAdminService(kv, authService, bookingService, eventService, func(ctx context.Context) error {
		return portal.Seed(ctx, kv, seedParams)
	}, logger)

	widgetClient := &http.Client{Timeout: cfg.WidgetTimeout}
	quoteClient := widgets.NewQuoteClient(widgetClient, cfg.QuoteURL, cfg.WidgetCacheTTL, logger)
	weatherClient := widgets.NewWeatherClient(widgetClient, cfg.WeatherURL, 0, 0, cfg.WidgetCacheTTL, logger)

	router := newPageRouter(pageServices{
		bookings: bookingService,
		events:   eventService,
		gpa:      gpaService,
		todos:    todoService,
		admin:    adminService,
		quotes:   quoteClient,
		weather:  weatherClient,
	}, logger)

	authHandler := httptransport.NewAuthHandler(authService, logger)
	bookingHandler := httptransport.NewBookingHandler(bookingService, logger)
	eventHandler := httptransport.NewEventHandler(eventService, logger)
	toolsHandler := httptransport.NewToolsHandler(gpaService, todoService, logger)
	accountHandler := httptransport.NewAccountHandler(bookingService, eventService, adminService, logger)
	themeHandler := httptransport.NewThemeHandler(themeService, logger)
	pageHandler := httptransport.NewPageHandler(router, logger)

	handler := httptransport.NewRouter(httptransport.RouterConfig{
		Auth:     authHandler,
		Bookings: bookingHandler,
		Events:   eventHandler,
		Tools:    toolsHandler,
		Account:  accountHandler,
		Theme:    themeHandler,
		Pages:    pageHandler,
		Guard:    httptransport.RequireSession(logger),
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(logger),
			httptransport.WithPrincipal(authService, logger),
		},
	})

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("failed to shutdown server", "error", err)
		}
	}()

	logger.Info("portal API listening", "addr", server.Addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server encountered error", "error", err)
		os.Exit(1)
	}
}

// openStore dispatches on the DSN scheme to the matching backend.
func openStore(dsn string) (store.KV, error) {
	scheme, rest, ok := strings.Cut(dsn, "://")
	if !ok {
		return nil, fmt.Errorf("store DSN %q has no scheme", dsn)
	}
	switch scheme {
	case "bolt":
		return bolt.Open(rest)
	case "sqlite":
		return sqlite.Open(rest)
	case "memory":
		return memory.Open(), nil
	default:
		return nil, fmt.Errorf("unknown store scheme %q", scheme)
	}
}

type pageServices struct {
	bookings *portal.BookingService
	events   *portal.EventService
	gpa      *portal.GPAService
	todos    *portal.TodoService
	admin    *portal.AdminService
	quotes   *widgets.QuoteClient
	weather  *widgets.WeatherClient
}

// newPageRouter binds each page to the data its render needs. Login and
// register are static forms; their refresh hooks stay nil.
func newPageRouter(services pageServices, logger *slog.Logger) *view.Router {
	router := view.NewRouter(logger)

	router.Register(view.PageHub, func(ctx context.Context, principal portal.Principal) (any, error) {
		welcome := "Welcome, Guest"
		if principal.Authenticated() {
			welcome = "Welcome, " + principal.Username
		}
		return map[string]any{
			"welcome":     welcome,
			"date":        time.Now().Format("Monday, January 2"),
			"event_count": len(portal.Events()),
			"room_count":  len(portal.Rooms()),
			"news":        portal.News(),
			"quote":       services.quotes.Fetch(ctx),
			"weather":     services.weather.Fetch(ctx),
		}, nil
	})

	router.Register(view.PageRooms, func(ctx context.Context, principal portal.Principal) (any, error) {
		return map[string]any{
			"rooms": portal.Rooms(),
			"slots": portal.Slots(),
		}, nil
	})

	router.Register(view.PageEvents, func(ctx context.Context, principal portal.Principal) (any, error) {
		listings, err := services.events.List(ctx, principal, "")
		if err != nil {
			return nil, err
		}
		return map[string]any{"events": listings}, nil
	})

	router.Register(view.PageAccount, func(ctx context.Context, principal portal.Principal) (any, error) {
		bookings, err := services.bookings.ListForUser(ctx, principal)
		if err != nil {
			return nil, err
		}
		reservations, err := services.events.ListForUser(ctx, principal)
		if err != nil {
			return nil, err
		}
		data := map[string]any{
			"username":     principal.Username,
			"bookings":     bookings,
			"reservations": reservations,
		}
		if principal.IsAdmin {
			stats, err := services.admin.Stats(ctx, principal)
			if err != nil {
				return nil, err
			}
			data["stats"] = stats
		}
		return data, nil
	})

	router.Register(view.PageTools, func(ctx context.Context, principal portal.Principal) (any, error) {
		summary, err := services.gpa.Summary(ctx)
		if err != nil {
			return nil, err
		}
		tasks, err := services.todos.List(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{
			"gpa":   summary,
			"tasks": tasks,
		}, nil
	})

	router.Register(view.PageLogin, nil)
	router.Register(view.PageRegister, nil)

	return router
}

func randomHex(bytes int) string {
	if bytes <= 0 {
		bytes = 16
	}
	buf := make([]byte, bytes)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
	}
	return hex.EncodeToString(buf)
}
