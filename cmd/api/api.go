package main

import (
	"context"
	"errors"
	"expvar"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"stayfront/internal/auth"
	"stayfront/internal/hotelapi"
	"stayfront/internal/ratelimiter"
	"stayfront/internal/session"
)

type application struct {
	config          config
	logger          *zap.SugaredLogger
	sessions        *session.Store
	bookingAPI      hotelapi.Gateway
	authenticator   auth.Authenticator
	rateLimiter     ratelimiter.Limiter
	bookingsCreated *expvar.Int
}

type config struct {
	addr          string
	env           string
	bookingAPIURL string
	frontendURL   string
	auth          authConfig
	rateLimiter   ratelimiter.Config
	sessionTTL    time.Duration
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type tokenConfig struct {
	secret string
	iss    string
	aud    string
}

type basicConfig struct {
	user string
	pass string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Abandoned form edits should not hold connections open indefinitely.
	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/v1", func(r chi.Router) {
		r.With(app.BasicAuthMiddleware()).Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		r.Route("/forms", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)
			r.Use(app.RateLimiterMiddleware)

			r.Post("/", app.openFormHandler)

			r.Route("/{formID}", func(r chi.Router) {
				r.Get("/", app.getFormHandler)
				r.Delete("/", app.discardFormHandler)
				r.Put("/dates", app.setStayDatesHandler)
				r.Put("/guest-count", app.setGuestCountHandler)
				r.Put("/guests/{guestIndex}", app.setGuestFieldHandler)
				r.Put("/contact", app.setContactHandler)
				r.Put("/room", app.selectRoomHandler)
				r.Put("/paid-amount", app.setPaidAmountHandler)
				r.Put("/payment-mode", app.setPaymentModeHandler)
				r.Get("/rooms", app.listRoomsHandler)
				r.Post("/submit", app.submitFormHandler)
			})
		})
	})
	return r
}

func (app *application) run(mux http.Handler) error {
	srv := &http.Server{
		Addr:         app.config.addr,
		Handler:      mux,
		WriteTimeout: time.Second * 30,
		ReadTimeout:  time.Second * 10,
		IdleTimeout:  time.Minute,
	}

	// Graceful shutdown: let in-flight submissions finish.
	shutdown := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)

		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		app.logger.Infow("signal caught", "signal", s.String())

		shutdown <- srv.Shutdown(ctx)
	}()

	app.logger.Infow("server has started", "addr", app.config.addr, "env", app.config.env)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdown
	if err != nil {
		return err
	}

	app.logger.Infow("server has stopped", "addr", app.config.addr, "env", app.config.env)

	return nil
}
