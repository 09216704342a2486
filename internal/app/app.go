package app

import (
	"context"
	"database/sql"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Luiz-campos3/Onway-Monitor/internal/clients"
	appconfig "github.com/Luiz-campos3/Onway-Monitor/internal/config"
	"github.com/Luiz-campos3/Onway-Monitor/internal/db"
	httpserver "github.com/Luiz-campos3/Onway-Monitor/internal/http"
	"github.com/Luiz-campos3/Onway-Monitor/internal/http/handlers"
	"github.com/Luiz-campos3/Onway-Monitor/internal/http/middleware"
	"github.com/Luiz-campos3/Onway-Monitor/internal/password"
	redisconn "github.com/Luiz-campos3/Onway-Monitor/internal/redis"
	"github.com/Luiz-campos3/Onway-Monitor/internal/repository"
	"github.com/Luiz-campos3/Onway-Monitor/internal/service"
	"github.com/Luiz-campos3/Onway-Monitor/internal/session"
)

// App wires dependencies for the monitor service.
type App struct {
	server *httpserver.Server
	db     *sql.DB
	redis  *goredis.Client
	logger *zap.Logger
}

// New builds the application graph. Absent backend, Redis or provider
// configuration degrades the dependent component instead of failing startup.
func New(cfg *appconfig.Config, logger *zap.Logger) (*App, error) {
	var sqlDB *sql.DB
	if cfg.Database.DSN != "" {
		pool, err := db.Connect(cfg.Database.DSN)
		if err != nil {
			return nil, err
		}
		sqlDB = pool
	} else {
		logger.Warn("backend DSN not configured, all reads degrade to empty results")
	}

	var (
		redisClient *goredis.Client
		store       session.Store
	)
	if cfg.Redis.Addr != "" {
		client, err := redisconn.New(cfg.Redis.Addr, cfg.Redis.Password)
		if err != nil {
			return nil, err
		}
		redisClient = client
		store = session.NewRedisStore(client, cfg.SessionTTL())
	} else {
		logger.Warn("redis not configured, sessions are kept in memory")
		store = session.NewMemoryStore(cfg.SessionTTL())
	}

	clientRepo := repository.NewClientRepository(sqlDB)
	telemetryRepo := repository.NewTelemetryRepository(sqlDB)

	hasher := password.NewBcryptHasher(0)
	tokenSvc := service.NewTokenService(cfg.Session.Secret, cfg.SessionTTL())
	authSvc := service.NewAuthService(clientRepo, hasher, cfg.Admin.Email, cfg.Admin.PasswordHash, logger)
	dashboardSvc := service.NewDashboardService(telemetryRepo, logger)

	workflow := clients.NewWorkflowClient(cfg.Workflow.Endpoint, nil)
	adminSvc := service.NewAdminService(clientRepo, workflow, logger)

	withSession := middleware.Session(tokenSvc, store)
	userOnly := middleware.RequireStatus(session.StatusUserLogged)
	adminOnly := middleware.RequireStatus(session.StatusAdminLogged)

	routes := httpserver.Routes{
		Health:            handlers.NewHealthHandler(),
		SessionOpen:       handlers.NewSessionOpenHandler(store, tokenSvc),
		SessionState:      withSession(handlers.NewSessionStateHandler()),
		AdminView:         withSession(handlers.NewAdminViewHandler(store)),
		Back:              withSession(handlers.NewBackHandler(store)),
		Login:             withSession(handlers.NewLoginHandler(authSvc, store)),
		AdminLogin:        withSession(handlers.NewAdminLoginHandler(authSvc, store)),
		Logout:            withSession(handlers.NewLogoutHandler(store)),
		Dashboard:         withSession(userOnly(handlers.NewDashboardHandler(dashboardSvc))),
		AdminClients:      withSession(adminOnly(handlers.NewAdminClientsHandler(adminSvc))),
		AdminClientUpdate: withSession(adminOnly(handlers.NewAdminClientUpdateHandler(adminSvc))),
	}

	if cfg.Enphase.Enabled {
		enphase := clients.NewEnphaseClient(clients.EnphaseConfig{
			APIURL:       cfg.Enphase.APIURL,
			Email:        cfg.Enphase.Email,
			Password:     cfg.Enphase.Password,
			ClientID:     cfg.Enphase.ClientID,
			ClientSecret: cfg.Enphase.ClientSecret,
		}, nil, logger)
		if enphase != nil {
			routes.EnphaseSum = withSession(adminOnly(handlers.NewEnphaseSumHandler(enphase)))
		} else {
			logger.Warn("enphase integration enabled but credentials are incomplete, endpoint disabled")
		}
	}

	router := httpserver.NewRouter(routes)
	server := httpserver.NewServer(cfg.HTTPAddress(), router, logger)

	return &App{
		server: server,
		db:     sqlDB,
		redis:  redisClient,
		logger: logger,
	}, nil
}

// Run starts serving HTTP traffic until context cancellation.
func (a *App) Run(ctx context.Context) error {
	return a.server.Run(ctx)
}

// Close releases acquired resources.
func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn("failed to close db", zap.Error(err))
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Warn("failed to close redis", zap.Error(err))
		}
	}
}
