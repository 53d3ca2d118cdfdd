package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"log/slog"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/travelops/contact-insights/internal/apisrv/auth"
	"github.com/travelops/contact-insights/internal/apisrv/dashboard"
	"github.com/travelops/contact-insights/internal/dependency"
	"github.com/travelops/contact-insights/internal/middleware"
)

// Config is the configuration for the http server
type Config struct {
	Port           string   `mapstructure:"port"`
	Address        string   `mapstructure:"address"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Server is the http server
type Server struct {
	hs   *http.Server
	c    *Config
	done chan struct{}
}

// New creates a new server
func New(config *Config) *Server {
	return &Server{
		c:    config,
		done: make(chan struct{}),
	}
}

// Done returns a channel that is closed when the http server exits
func (s *Server) Done() <-chan struct{} {
	return s.done
}

func (s *Server) router(
	authSrv *auth.Server,
	dashSrv *dashboard.Server,
	repo dependency.Repository,
	tokens dependency.TokenStore,
) http.Handler {
	r := chi.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins:   s.c.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	})
	r.Use(c.Handler)
	r.Use(middleware.ClientIdentifier)

	r.Get("/health", s.health(repo, tokens))

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/login", authSrv.Login)
		r.Post("/otp/request", authSrv.RequestOTP)
		r.Post("/otp/verify", authSrv.VerifyOTP)
		r.Post("/password/reset", authSrv.ResetPassword)
		r.With(authSrv.WithAuth).Post("/logout", authSrv.Logout)
	})

	r.Route("/api/dashboard", func(r chi.Router) {
		r.Use(authSrv.WithAuth)
		r.Get("/calls", dashSrv.Calls)
		r.Get("/calls/sub-kpis", dashSrv.CallsSubKPIs)
		r.Get("/calls/weekdays", dashSrv.CallsWeekdays)
		r.Get("/emails", dashSrv.Emails)
		r.Get("/emails/sub-kpis", dashSrv.EmailsSubKPIs)
		r.Get("/emails/mailboxes", dashSrv.EmailMailboxes)
		r.Get("/bookings", dashSrv.Bookings)
		r.Get("/bookings/sub-kpis", dashSrv.BookingsSubKPIs)
		r.Get("/tasks", dashSrv.Tasks)
		r.Get("/conversion", dashSrv.Conversion)
		r.Get("/export", dashSrv.Export)
		r.Get("/files", dashSrv.Files)
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Use(authSrv.WithAuth)
		r.Use(authSrv.WithAdmin)
		r.Get("/users", dashSrv.ListUsers)
		r.Post("/users/{id}/approve", dashSrv.ApproveUser)
		r.Put("/permissions/{id}", dashSrv.UpdatePermission)
	})

	return r
}

// health reports MySQL and redis connectivity.
func (s *Server) health(repo dependency.Repository, tokens dependency.TokenStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		body := map[string]string{"mysql": "ok", "redis": "ok"}
		if err := repo.Ping(r.Context()); err != nil {
			body["mysql"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		if err := tokens.Ping(r.Context()); err != nil {
			body["redis"] = err.Error()
			status = http.StatusServiceUnavailable
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

// Start starts the server
func (s *Server) Start(
	ctx context.Context,
	authSrv *auth.Server,
	dashSrv *dashboard.Server,
	repo dependency.Repository,
	tokens dependency.TokenStore,
) error {
	ctx, cancel := context.WithCancel(ctx)
	hsDone := make(chan struct{})

	go func() {
		<-hsDone
		close(s.done)
	}()

	listenerAddr := fmt.Sprintf("%s:%s", s.c.Address, s.c.Port)
	s.hs = &http.Server{
		Addr:              listenerAddr,
		Handler:           s.router(authSrv, dashSrv, repo, tokens),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Default().InfoContext(ctx, fmt.Sprintf("contact-insights new listener on: http://%v", listenerAddr))
		err := s.hs.ListenAndServe()
		if err == http.ErrServerClosed {
			slog.Default().InfoContext(ctx, "http server returned")
		} else if err != nil {
			slog.Default().ErrorContext(ctx, "http server exited with an error",
				slog.String("err", err.Error()),
			)
		}
		cancel()
		close(hsDone)
	}()

	return nil
}

// Stop shuts the server down gracefully.
func (s *Server) Stop(ctx context.Context) error {
	if s.hs == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.hs.Shutdown(shutdownCtx)
}
