package internal

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/extra/redisotel/v8"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/multierr"

	"github.com/2beens/liftboard/internal/auth"
	"github.com/2beens/liftboard/internal/config"
	"github.com/2beens/liftboard/internal/db"
	"github.com/2beens/liftboard/internal/formula"
	"github.com/2beens/liftboard/internal/lifts"
	"github.com/2beens/liftboard/internal/middleware"
	"github.com/2beens/liftboard/internal/misc"
	"github.com/2beens/liftboard/internal/telemetry/metrics"
	"github.com/2beens/liftboard/internal/telemetry/tracing"
	"github.com/2beens/liftboard/internal/users"
	"github.com/2beens/liftboard/pkg"
)

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	versionInfo       string

	config       *config.Config
	dbPool       *pgxpool.Pool
	redisClient  *redis.Client
	rateLimiter  middleware.RequestRateLimiter
	tokenGateway *auth.Gateway

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	VersionInfo             string
	RedisPassword           string
	TokenSecret             string
	HoneycombTracingEnabled bool
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "liftboard-backend")
	if err != nil {
		return nil, err
	}

	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		otelShutdown()
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	} else if err := db.EnsureSchema(ctx, dbPool); err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, fmt.Errorf("ensure db schema: %w", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": params.Config.PostgresDBName},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("liftboard", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})
	if params.HoneycombTracingEnabled {
		rdb.AddHook(redisotel.NewTracingHook())
	}

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	tokenGateway, err := auth.NewGateway(
		params.TokenSecret,
		params.Config.TokenIssuer,
		auth.DefaultTokenTTL,
		auth.NewRedisRevoker(rdb),
	)
	if err != nil {
		dbPool.Close()
		otelShutdown()
		return nil, multierr.Append(fmt.Errorf("new token gateway: %w", err), rdb.Close())
	}

	return &Server{
		config:       params.Config,
		dbPool:       dbPool,
		versionInfo:  params.VersionInfo,
		redisClient:  rdb,
		rateLimiter:  redis_rate.NewLimiter(rdb),
		tokenGateway: tokenGateway,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	liftsRepo := lifts.NewRepo(s.dbPool)
	usersRepo := users.NewRepo(s.dbPool)

	liftsService := lifts.NewService(liftsRepo, s.metricsManager)
	nameResolver := users.NewNameResolver(usersRepo, s.config.UsernameCacheSizeMB, s.metricsManager)
	aggregator := lifts.NewAggregator(liftsRepo, nameResolver, s.metricsManager)
	usersService := users.NewService(usersRepo, s.tokenGateway, liftsService, aggregator, s.metricsManager)

	misc.NewHandler(s.versionInfo).SetupRoutes(r)

	usersHandler := users.NewHandler(usersService)
	loginRateLimit := middleware.RateLimit(s.rateLimiter, "login", s.config.LoginRateLimitAllowedPerMin, s.metricsManager)
	r.HandleFunc("/user", usersHandler.HandleSignUp).Methods("POST", "OPTIONS").Name("sign-up")
	r.Handle("/login", loginRateLimit(http.HandlerFunc(usersHandler.HandleLogin))).Methods("POST", "OPTIONS").Name("login")
	r.HandleFunc("/logout", usersHandler.HandleLogout).Methods("POST", "OPTIONS").Name("logout")
	r.HandleFunc("/user", usersHandler.HandleGetCurrent).Methods("GET").Name("current-user")
	r.HandleFunc("/user/{username}", usersHandler.HandleGetByUsername).Methods("GET", "OPTIONS").Name("user-by-name")
	r.HandleFunc("/user/{username}/profile", usersHandler.HandleProfileByUsername).Methods("GET", "OPTIONS").Name("user-profile")
	r.HandleFunc("/profile", usersHandler.HandleProfile).Methods("GET", "OPTIONS").Name("profile")

	liftsHandler := lifts.NewHandler(liftsService, aggregator)
	r.HandleFunc("/lift", liftsHandler.HandleCreate).Methods("POST", "OPTIONS").Name("new-lift")
	r.HandleFunc("/lifts", liftsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-lifts")
	r.HandleFunc("/lift/{id}", liftsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-lift")
	r.HandleFunc("/lift/{id}", liftsHandler.HandleDelete).Methods("DELETE").Name("delete-lift")
	r.HandleFunc("/leaderboard", liftsHandler.HandleLeaderboard).Methods("GET", "OPTIONS").Name("leaderboard")

	formulaHandler := formula.NewHandler()
	r.HandleFunc("/calculator", formulaHandler.HandleCalculate).Methods("GET", "OPTIONS").Name("calculator")
	r.HandleFunc("/calculator/formulas", formulaHandler.HandleFormulas).Methods("GET", "OPTIONS").Name("formulas")

	// all the rest - unhandled paths
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		pkg.WriteErrorResponse(w, "not found", http.StatusNotFound)
	})

	authMiddleware := middleware.NewAuthMiddlewareHandler(s.tokenGateway)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainAndCloseRequest())

	return r
}

func (s *Server) metricsRouterSetup() *mux.Router {
	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", otelhttp.NewHandler(
		promhttp.InstrumentMetricHandler(
			s.promRegistry,
			promhttp.HandlerFor(s.promRegistry, promhttp.HandlerOpts{}),
		),
		"metrics",
	))
	return metricsRouter
}

func (s *Server) Serve(host string, port int) {
	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      s.routerSetup(),
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:              metricsAddr,
		Handler:           s.metricsRouterSetup(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	s.metricsManager.GaugeLifeSignal.Set(1)
}

// GracefulShutdown stops accepting requests, then releases telemetry, redis and db resources.
func (s *Server) GracefulShutdown() error {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	var err error
	if s.httpServer != nil {
		if shutdownErr := s.httpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown http server: %w", shutdownErr))
		}
		log.Warnln("server shut down")
	}

	if s.metricsHttpServer != nil {
		if shutdownErr := s.metricsHttpServer.Shutdown(ctx); shutdownErr != nil {
			err = multierr.Append(err, fmt.Errorf("shutdown metrics http server: %w", shutdownErr))
		}
		log.Warnln("metrics server shut down")
	}

	if s.otelShutdown != nil {
		s.otelShutdown()
		log.Trace("otel shut down ...")
	}

	if s.redisClient != nil {
		if closeErr := s.redisClient.Close(); closeErr != nil {
			err = multierr.Append(err, fmt.Errorf("close redis client: %w", closeErr))
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	return err
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
