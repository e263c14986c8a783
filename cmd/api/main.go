package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"agency-backend/internal/analytics"
	"agency-backend/internal/auth"
	"agency-backend/internal/blogs"
	"agency-backend/internal/cache"
	"agency-backend/internal/casestudies"
	"agency-backend/internal/config"
	"agency-backend/internal/contacts"
	"agency-backend/internal/db"
	"agency-backend/internal/logging"
	"agency-backend/internal/middleware"
	"agency-backend/internal/notifications"
	"agency-backend/internal/services"
	"agency-backend/internal/testimonials"
	"agency-backend/internal/transport"
	"agency-backend/internal/users"
	"agency-backend/internal/validation"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFile)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, cols, err := db.Connect(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("mongo connection failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("mongo connected", slog.String("db", cfg.MongoDB))
	defer client.Disconnect(context.Background())

	if err := db.EnsureIndexes(ctx, cols); err != nil {
		logger.Error("index creation failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var cacheStore cache.Cache = cache.NewNoop()
	if cfg.RedisURL != "" || cfg.RedisAddr != "" {
		var redisCache *cache.RedisCache
		var err error
		if cfg.RedisURL != "" {
			redisCache, err = cache.NewRedisFromURL(cfg.RedisURL)
		} else {
			redisCache = cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		}
		if err == nil {
			err = redisCache.Ping(ctx)
		}
		if err != nil {
			logger.Error("redis connection failed", slog.String("error", err.Error()))
			os.Exit(1)
		}
		logger.Info("redis connected")
		defer redisCache.Close()
		cacheStore = redisCache
	}

	if cfg.JWTSecret == "" {
		logger.Error("JWT_SECRET is required")
		os.Exit(1)
	}
	tokens := &auth.Manager{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTExpiry(),
		Issuer: "agency-backend",
	}

	var mailer notifications.Mailer
	if brevo := notifications.NewBrevoClient(cfg.BrevoAPIKey, cfg.MailSenderEmail, cfg.MailSenderName, cfg.BrevoSandbox); brevo != nil {
		mailer = brevo
		logger.Info("brevo mailer enabled", slog.String("sender", cfg.MailSenderEmail), slog.Bool("sandbox", cfg.BrevoSandbox))
	} else if smtp := notifications.NewSMTPClient(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword, cfg.MailSenderEmail, cfg.MailSenderName); smtp != nil {
		mailer = smtp
		logger.Info("smtp mailer enabled", slog.String("host", cfg.SMTPHost))
	} else {
		logger.Info("mailer disabled")
	}
	var notifier contacts.Notifier
	if mailer != nil {
		notifier = notifications.NewContactNotifier(mailer, cfg.MailNotifyEmail)
	}

	val := validation.New()
	loc := cfg.Location()

	usersService := users.NewService(users.NewRepository(cols.Users), tokens, val, loc)
	authn := &middleware.Authenticator{
		Tokens:   tokens,
		Users:    usersService,
		AdminKey: cfg.AdminAPIKey,
	}

	usersHandler := users.NewHandler(usersService, logger)
	blogsHandler := blogs.NewHandler(blogs.NewService(blogs.NewRepository(cols.Blogs), val, loc), logger)
	caseStudiesHandler := casestudies.NewHandler(casestudies.NewService(casestudies.NewRepository(cols.CaseStudies), val, loc), logger)
	contactsHandler := contacts.NewHandler(contacts.NewService(contacts.NewRepository(cols.Contacts), val, loc), notifier, logger)
	servicesHandler := services.NewHandler(services.NewCatalog(services.NewRepository(cols.Services), val, loc), cacheStore, cfg.CacheTTL(), logger)
	testimonialsHandler := testimonials.NewHandler(testimonials.NewService(testimonials.NewRepository(cols.Testimonials), val, loc), cacheStore, cfg.CacheTTL(), logger)
	analyticsHandler := analytics.NewHandler(analytics.NewService(analytics.NewMongoSource(cols), loc), logger)

	contactLimiter := middleware.NewRateLimiter(cfg.RateLimitContact, cfg.RateLimitWindow())
	loginLimiter := middleware.NewRateLimiter(cfg.RateLimitLogin, cfg.RateLimitWindow())

	r := chi.NewRouter()
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Recoverer)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(logger))
	r.Use(middleware.CORS(cfg.FrontendOrigins))
	r.Use(chiMiddleware.Timeout(30 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		pingCtx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx, nil); err != nil {
			logger.Warn("health: mongo ping failed", slog.String("error", err.Error()))
			transport.WriteError(w, http.StatusServiceUnavailable, "Database unavailable", nil)
			return
		}
		transport.WriteJSON(w, http.StatusOK, map[string]interface{}{
			"success":   true,
			"status":    "OK",
			"timestamp": time.Now().In(loc),
		})
	})

	r.Route("/api", func(api chi.Router) {
		usersHandler.Mount(api, authn, loginLimiter.Middleware)
		blogsHandler.Mount(api, authn, contactLimiter.Middleware)
		caseStudiesHandler.Mount(api, authn)
		servicesHandler.Mount(api, authn)
		testimonialsHandler.Mount(api, authn)
		contactsHandler.Mount(api, authn, contactLimiter.Middleware)
		analyticsHandler.Mount(api, authn)
	})

	srv := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("server started", slog.String("addr", cfg.ServerAddr), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.String("error", err.Error()))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.String("error", err.Error()))
	}
}
