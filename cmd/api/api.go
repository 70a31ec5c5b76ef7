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

	"github.com/ahmadnk31/bandencentrale-sub001/internal/auth"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/mailer"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/ratelimiter"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/reference"
	"github.com/ahmadnk31/bandencentrale-sub001/internal/store"
)

type application struct {
	config        config
	store         store.Storage
	logger        *zap.SugaredLogger
	mailer        mailer.Client
	authenticator auth.Authenticator
	rateLimiter   ratelimiter.Limiter
	references    *reference.Generator
}

type config struct {
	addr         string
	env          string
	apiURL       string
	frontendURL  string
	contactInbox string
	db           dbConfig
	mail         mailConfig
	auth         authConfig
	rateLimiter  ratelimiter.Config
}

type dbConfig struct {
	addr        string
	maxConns    int32
	minConns    int32
	maxIdleTime string
}

type mailConfig struct {
	host      string
	port      int
	username  string
	password  string
	fromEmail string
}

type authConfig struct {
	basic basicConfig
	token tokenConfig
}

type basicConfig struct {
	user string
	pass string
}

type tokenConfig struct {
	secret        string
	refreshSecret string
	accessExp     time.Duration
	refreshExp    time.Duration
	iss           string
}

func (app *application) mount() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Use(middleware.Timeout(60 * time.Second))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", app.healthCheckHandler)
		r.With(app.BasicAuthMiddleware()).Get("/debug/vars", expvar.Handler().ServeHTTP)

		// Storefront
		r.Route("/products", func(r chi.Router) {
			r.Get("/", app.listProductsHandler)
			r.Route("/{slug}", func(r chi.Router) {
				r.Get("/", app.getProductHandler)
				r.Get("/reviews", app.listProductReviewsHandler)
				r.With(app.RateLimiterMiddleware).Post("/reviews", app.createReviewHandler)
			})
		})
		r.Get("/brands", app.listBrandsHandler)
		r.Get("/categories", app.listCategoriesHandler)
		r.Get("/services", app.listServicesHandler)
		r.Get("/banners", app.listBannersHandler)

		r.Group(func(r chi.Router) {
			r.Use(app.RateLimiterMiddleware)
			r.Post("/bookings", app.createBookingHandler)
			r.Post("/contact", app.createContactMessageHandler)
			r.Post("/newsletter/subscribe", app.subscribeHandler)
			r.Post("/newsletter/unsubscribe", app.unsubscribeHandler)
		})

		// Back-office session
		r.Route("/authentication", func(r chi.Router) {
			r.Post("/login", app.loginHandler)
			r.Post("/refresh", app.refreshTokenHandler)
		})

		// Back-office
		r.Route("/admin", func(r chi.Router) {
			r.Use(app.AuthTokenMiddleware)

			r.Get("/dashboard", app.dashboardHandler)
			r.Get("/audit-logs", app.listAuditLogsHandler)

			r.Route("/products", func(r chi.Router) {
				r.Get("/", app.adminListProductsHandler)
				r.Post("/", app.createProductHandler)
				r.Patch("/{productID}", app.updateProductHandler)
				r.Delete("/{productID}", app.deleteProductHandler)
			})

			r.Route("/brands", func(r chi.Router) {
				r.Post("/", app.createBrandHandler)
				r.Patch("/{brandID}", app.updateBrandHandler)
				r.Delete("/{brandID}", app.deleteBrandHandler)
			})

			r.Route("/categories", func(r chi.Router) {
				r.Get("/", app.adminListCategoriesHandler)
				r.Post("/", app.createCategoryHandler)
				r.Patch("/{categoryID}", app.updateCategoryHandler)
				r.Delete("/{categoryID}", app.deleteCategoryHandler)
			})

			r.Route("/services", func(r chi.Router) {
				r.Get("/", app.adminListServicesHandler)
				r.Post("/", app.createServiceHandler)
				r.Patch("/{serviceID}", app.updateServiceHandler)
				r.Delete("/{serviceID}", app.deleteServiceHandler)
			})

			r.Route("/banners", func(r chi.Router) {
				r.Get("/", app.adminListBannersHandler)
				r.Post("/", app.createBannerHandler)
				r.Patch("/{bannerID}", app.updateBannerHandler)
				r.Delete("/{bannerID}", app.deleteBannerHandler)
			})

			r.Route("/orders", func(r chi.Router) {
				r.Get("/", app.listOrdersHandler)
				r.Get("/{orderID}", app.getOrderHandler)
				r.Patch("/{orderID}/status", app.updateOrderStatusHandler)
			})

			r.Route("/bookings", func(r chi.Router) {
				r.Get("/", app.listBookingsHandler)
				r.Patch("/{bookingID}/status", app.updateBookingStatusHandler)
			})

			r.Route("/reviews", func(r chi.Router) {
				r.Get("/", app.adminListReviewsHandler)
				r.Patch("/{reviewID}", app.moderateReviewHandler)
			})

			r.Route("/contact-messages", func(r chi.Router) {
				r.Get("/", app.listContactMessagesHandler)
				r.Patch("/{messageID}/read", app.markContactMessageReadHandler)
			})

			r.Get("/newsletter", app.listSubscribersHandler)

			r.Route("/settings", func(r chi.Router) {
				r.Get("/", app.getSettingsHandler)
				r.Put("/{key}", app.setSettingHandler)
			})

			r.With(app.RequireRole("admin")).Post("/users", app.createUserHandler)
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
