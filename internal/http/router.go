package http

import (
	"net/http"
	"strings"
)

type RouterConfig struct {
	Auth       *AuthHandler
	Bookings   *BookingHandler
	Events     *EventHandler
	Tools      *ToolsHandler
	Account    *AccountHandler
	Theme      *ThemeHandler
	Pages      *PageHandler
	Guard      func(http.Handler) http.Handler
	Middleware []func(http.Handler) http.Handler
}

// NewRouter assembles the portal's route table. Guard protects the routes
// that require an authenticated principal; Middleware wraps everything.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	guarded := func(h http.HandlerFunc) http.Handler {
		if cfg.Guard == nil {
			return h
		}
		return cfg.Guard(h)
	}

	if cfg.Auth != nil {
		mux.HandleFunc("/register", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.Register(w, r)
		})
		mux.HandleFunc("/sessions", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Auth.CreateSession(w, r)
		})
		mux.HandleFunc("/sessions/current", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			cfg.Auth.DeleteCurrentSession(w, r)
		})
	}

	if cfg.Bookings != nil {
		mux.HandleFunc("/rooms", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Bookings.ListRooms(w, r)
		})
		mux.Handle("/bookings", guarded(func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Bookings.List(w, r)
			case http.MethodPost:
				cfg.Bookings.Create(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		}))
	}

	if cfg.Events != nil {
		mux.HandleFunc("/events", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Events.List(w, r)
		})
		mux.Handle("/events/", guarded(func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/events/")
			eventID, tail, _ := strings.Cut(rest, "/")
			if eventID == "" || tail != "reservations" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			r = r.WithContext(ContextWithRecordID(r.Context(), eventID))
			cfg.Events.Register(w, r)
		}))
		mux.Handle("/reservations", guarded(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Events.ListReservations(w, r)
		}))
	}

	if cfg.Tools != nil {
		mux.HandleFunc("/gpa", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Tools.GPASummary(w, r)
		})
		mux.HandleFunc("/gpa/courses", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Tools.AddCourse(w, r)
		})
		mux.HandleFunc("/gpa/courses/", func(w http.ResponseWriter, r *http.Request) {
			courseID := strings.TrimPrefix(r.URL.Path, "/gpa/courses/")
			if courseID == "" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodDelete {
				methodNotAllowed(w, http.MethodDelete)
				return
			}
			r = r.WithContext(ContextWithRecordID(r.Context(), courseID))
			cfg.Tools.RemoveCourse(w, r)
		})
		mux.HandleFunc("/gpa/reset", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Tools.ResetGPA(w, r)
		})
		mux.HandleFunc("/todos", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Tools.ListTasks(w, r)
			case http.MethodPost:
				cfg.Tools.AddTask(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPost)
			}
		})
		mux.HandleFunc("/todos/", func(w http.ResponseWriter, r *http.Request) {
			rest := strings.TrimPrefix(r.URL.Path, "/todos/")
			taskID, tail, hasTail := strings.Cut(rest, "/")
			if taskID == "" {
				http.NotFound(w, r)
				return
			}
			r = r.WithContext(ContextWithRecordID(r.Context(), taskID))
			switch {
			case hasTail && tail == "toggle":
				if r.Method != http.MethodPost {
					methodNotAllowed(w, http.MethodPost)
					return
				}
				cfg.Tools.ToggleTask(w, r)
			case !hasTail:
				if r.Method != http.MethodDelete {
					methodNotAllowed(w, http.MethodDelete)
					return
				}
				cfg.Tools.RemoveTask(w, r)
			default:
				http.NotFound(w, r)
			}
		})
	}

	if cfg.Account != nil {
		mux.Handle("/account", guarded(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Account.Show(w, r)
		}))
		mux.Handle("/admin/stats", guarded(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Account.Stats(w, r)
		}))
		mux.Handle("/admin/reset", guarded(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			cfg.Account.Reset(w, r)
		}))
	}

	if cfg.Theme != nil {
		mux.HandleFunc("/theme", func(w http.ResponseWriter, r *http.Request) {
			switch r.Method {
			case http.MethodGet:
				cfg.Theme.Show(w, r)
			case http.MethodPut:
				cfg.Theme.Update(w, r)
			default:
				methodNotAllowed(w, http.MethodGet, http.MethodPut)
			}
		})
	}

	if cfg.Pages != nil {
		mux.HandleFunc("/pages/current", func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodGet {
				methodNotAllowed(w, http.MethodGet)
				return
			}
			cfg.Pages.Current(w, r)
		})
		mux.HandleFunc("/pages/", func(w http.ResponseWriter, r *http.Request) {
			pageID := strings.TrimPrefix(r.URL.Path, "/pages/")
			if pageID == "" || pageID == "current" {
				http.NotFound(w, r)
				return
			}
			if r.Method != http.MethodPost {
				methodNotAllowed(w, http.MethodPost)
				return
			}
			r = r.WithContext(ContextWithRecordID(r.Context(), pageID))
			cfg.Pages.Show(w, r)
		})
	}

	var handler http.Handler = mux
	if len(cfg.Middleware) > 0 {
		for i := len(cfg.Middleware) - 1; i >= 0; i-- {
			if cfg.Middleware[i] != nil {
				handler = cfg.Middleware[i](handler)
			}
		}
	}

	return handler
}

func methodNotAllowed(w http.ResponseWriter, allowed ...string) {
	if len(allowed) > 0 {
		w.Header().Set("Allow", strings.Join(allowed, ", "))
	}
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}
