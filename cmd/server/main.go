// Command server runs the campusgate HTTP API. main wires configuration,
// storage, and the HTTP router; business logic lives in the internal service
// packages.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	coursestore "campusgate/internal/course/store"
	"campusgate/internal/enrollment"
	jwttoken "campusgate/internal/jwt_token"
	"campusgate/internal/password"
	"campusgate/internal/platform/config"
	"campusgate/internal/platform/httpserver"
	"campusgate/internal/platform/logger"
	"campusgate/internal/platform/metrics"
	"campusgate/internal/platform/middleware"
	"campusgate/internal/platform/postgres"
	platformredis "campusgate/internal/platform/redis"
	"campusgate/internal/revocation"
	"campusgate/internal/student/handler"
	"campusgate/internal/student/service"
	studentstore "campusgate/internal/student/store/student"
	"campusgate/pkg/platform/httputil"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Error("postgres connect failed", "error", err)
		os.Exit(1)
	}
	if pool != nil {
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Error("postgres migrate failed", "error", err)
			os.Exit(1)
		}
		log.Info("postgres stores enabled")
	} else {
		log.Info("no DATABASE_URL set, using in-memory stores")
	}

	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("redis connect failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	var (
		students    service.StudentStore
		courses     coursestore.Store
		enrollments service.EnrollmentStore
	)
	if pool != nil {
		students = studentstore.NewPostgres(pool)
		courses = coursestore.NewPostgres(pool)
		enrollments = enrollment.NewPostgres(pool)
	} else {
		students = studentstore.New()
		courses = coursestore.New()
		enrollments = enrollment.New()
	}

	var revocations revocationList
	if redisClient != nil {
		revocations = revocation.NewRedis(redisClient.Client)
		log.Info("redis revocation list enabled")
	} else {
		revocations = revocation.NewMemory()
	}

	if err := coursestore.Seed(ctx, courses, cfg.CourseSeed); err != nil {
		log.Error("course seeding failed", "error", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.New(registry)

	tokens := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	svc := service.NewService(
		students,
		courses,
		enrollments,
		password.NewHasher(cfg.Bcrypt.Cost),
		tokens,
		revocations,
		cfg.JWT.AccessTTL,
	)
	studentHandler := handler.New(svc, log, m)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Recovery(log))
	router.Use(middleware.Logger(log))
	router.Use(middleware.Latency(m))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)

	router.Group(studentHandler.Register)
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(jwttoken.NewJWTServiceAdapter(tokens), revocations, log))
		studentHandler.RegisterAuthenticated(r)
	})

	router.Get("/healthz", healthHandler(pool, redisClient))
	router.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	srv := httpserver.New(cfg.Addr, router)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting campusgate", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// revocationList joins the two views of the revocation store: the service
// revokes, the auth middleware checks.
type revocationList interface {
	service.RevocationList
	middleware.RevocationChecker
}

// healthHandler reports liveness plus the health of whichever backends are
// configured.
func healthHandler(pool *pgxpool.Pool, redisClient *platformredis.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status := http.StatusOK
		checks := map[string]string{"server": "ok"}

		if pool != nil {
			checks["postgres"] = "ok"
			if err := postgres.Health(r.Context(), pool); err != nil {
				checks["postgres"] = "unhealthy"
				status = http.StatusServiceUnavailable
			}
		}
		if redisClient != nil {
			checks["redis"] = "ok"
			if err := redisClient.Health(r.Context()); err != nil {
				checks["redis"] = "unhealthy"
				status = http.StatusServiceUnavailable
			}
		}

		httputil.WriteJSON(w, status, checks)
	}
}
