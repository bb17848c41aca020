package routes

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	_ "planejao/docs" // This will be auto-generated
	"planejao/internal/adapter/http/handlers"
	"planejao/internal/adapter/persistence/repository"
	"planejao/internal/adapter/persistence/sqlite"
	"planejao/internal/config"
	"planejao/internal/infrastructure/database"
	"planejao/internal/infrastructure/logging"
	"planejao/internal/infrastructure/metrics"
	"planejao/internal/infrastructure/seed"
	"planejao/internal/infrastructure/tracing"
	"planejao/internal/usecase"
	"planejao/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

const serviceName = "planejao-api"

// Dependencies are the collaborators NewRouter wires into the handlers.
type Dependencies struct {
	Config   config.Config
	Projects interfaces.IProjectRepository
	Members  interfaces.IMemberRepository
	Registry *prometheus.Registry
	// Ready backs /health/ready; nil means always ready.
	Ready func(ctx context.Context) error
}

// Run will start the server
func Run() {
	cfg, err := config.Load()
	if err != nil {
		logging.Logger.Fatalf("[config] invalid configuration: %v", err)
	}
	logging.InitLogger(logging.Options{
		ServiceName: serviceName,
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		File:        cfg.LogFile,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Options{
		Enabled:     cfg.OTelEnabled,
		Endpoint:    cfg.OTelEndpoint,
		ServiceName: serviceName,
	})
	if err != nil {
		logging.Logger.Warnf("[tracing] setup failed, continuing without traces: %v", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logging.Logger.Warnf("[tracing] shutdown: %v", err)
		}
	}()

	store, err := openStorage(ctx, cfg)
	if err != nil {
		logging.Logger.Fatalf("[storage] failed to open driver=%s: %v", cfg.Storage, err)
	}
	defer store.close()

	if cfg.SeedFile != "" {
		if err := applySeed(ctx, cfg.SeedFile, store); err != nil {
			logging.Logger.Fatalf("[seed] failed file=%s: %v", cfg.SeedFile, err)
		}
	}

	router := NewRouter(Dependencies{
		Config:   cfg,
		Projects: store.projects,
		Members:  store.members,
		Registry: metrics.InitRegistry(),
		Ready:    store.ready,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logging.Logger.Infof("[http] listening addr=%s storage=%s", srv.Addr, cfg.Storage)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Logger.Fatalf("Failed to startup the application: %v", err)
		}
	}()

	<-ctx.Done()
	logging.Logger.Info("[http] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logging.Logger.Errorf("[http] graceful shutdown failed: %v", err)
	}
}

// NewRouter builds the gin engine with every middleware and route.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, deps)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	addHealthRoutes(router, deps.Ready)
	if deps.Registry != nil {
		router.GET("/metrics", gin.WrapH(metrics.Handler(deps.Registry)))
	}

	metrics.RegisterBusinessMetrics(deps.Registry)

	projectUseCase := usecase.NewProjectUseCase(deps.Projects, deps.Members)
	memberUseCase := usecase.NewMemberUseCase(deps.Members, deps.Projects)
	reportUseCase := usecase.NewReportUseCase(deps.Projects)

	projectHandler := handlers.NewProjectHandler(projectUseCase)
	memberHandler := handlers.NewMemberHandler(memberUseCase)
	reportHandler := handlers.NewReportHandler(reportUseCase)

	v1 := router.Group("/v1")
	if deps.Config.BasicAuthEnabled() {
		v1.Use(gin.BasicAuth(gin.Accounts{deps.Config.BasicAuthUser: deps.Config.BasicAuthPassword}))
	}
	addPingRoutes(v1)
	addProjectRoutes(v1, projectHandler, reportHandler)
	addMemberRoutes(v1, memberHandler)

	return router
}

func setMiddlewares(router *gin.Engine, deps Dependencies) {
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logging.Logger.Errorf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
	router.Use(logging.RequestLogger(logging.Logger))
	router.Use(tracing.Middleware(nil))
	router.Use(metrics.HTTPMetricsMiddleware(deps.Registry))
	router.Use(corsMiddleware(deps.Config.CORSOrigin))
}

// corsMiddleware lets the dashboard origin call the API from the browser.
func corsMiddleware(origin string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, traceparent")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

type storage struct {
	projects interfaces.IProjectRepository
	members  interfaces.IMemberRepository
	ready    func(ctx context.Context) error
	close    func()
}

func openStorage(ctx context.Context, cfg config.Config) (storage, error) {
	switch cfg.Storage {
	case config.StorageSQLite:
		store, err := sqlite.Open(cfg.SQLitePath)
		if err != nil {
			return storage{}, err
		}
		return storage{
			projects: store.Projects(),
			members:  store.Members(),
			ready:    store.Ping,
			close: func() {
				if err := store.Close(); err != nil {
					logging.Logger.Warnf("[storage] close sqlite: %v", err)
				}
			},
		}, nil
	case config.StorageDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg.DynamoDB)
		if err != nil {
			return storage{}, err
		}
		if cfg.DynamoDB.Endpoint != "" {
			if err := database.EnsureTables(ctx, ddb, cfg.DynamoDB); err != nil {
				return storage{}, err
			}
		}
		return storage{
			projects: repository.NewProjectDynamoRepository(ddb, cfg.DynamoDB.ProjectsTable),
			members:  repository.NewMemberDynamoRepository(ddb, cfg.DynamoDB.MembersTable),
			ready: func(ctx context.Context) error {
				return database.Ping(ctx, ddb, cfg.DynamoDB.ProjectsTable)
			},
			close: func() {},
		}, nil
	default:
		return storage{}, fmt.Errorf("unsupported storage %q", cfg.Storage)
	}
}

func applySeed(ctx context.Context, path string, store storage) error {
	fixture, err := seed.Load(path)
	if err != nil {
		return err
	}
	_, err = seed.Apply(ctx, fixture, store.projects, store.members, time.Now().UTC())
	return err
}
