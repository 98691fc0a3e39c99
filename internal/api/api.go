package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/ougirez/cellarium/internal/api/controller"
	"github.com/ougirez/cellarium/internal/pkg/logger"
	"github.com/ougirez/cellarium/internal/pkg/metrics"
	"github.com/ougirez/cellarium/internal/pkg/store"
	"github.com/ougirez/cellarium/internal/pkg/utils"
	"github.com/ougirez/cellarium/internal/service/auth"
	"github.com/ougirez/cellarium/internal/service/bottle"
	"github.com/ougirez/cellarium/internal/service/label"
	"github.com/ougirez/cellarium/internal/service/region"
	"github.com/ougirez/cellarium/internal/service/regionimport"
	"github.com/ougirez/cellarium/internal/service/storage"
	"github.com/ougirez/cellarium/internal/service/wine"
	"golang.org/x/time/rate"
)

// Pinger reports whether the database is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Options struct {
	CORSOrigins []string
	// RateLimit is requests per second per client ip; 0 disables limiting.
	RateLimit float64
}

type APIService struct {
	router   *echo.Echo
	services controller.Services
	db       Pinger
}

// ServiceConfig carries the outbound settings of the services.
type ServiceConfig struct {
	ImportClient  *http.Client
	ImportTimeout time.Duration
	ImportMaxBody int64
	// LabelReader nil switches label analysis off.
	LabelReader   label.Reader
	LabelMaxImage int64
}

// NewServices wires the domain services over one store.
func NewServices(st store.Store, tokens *utils.TokenIssuer, cfg ServiceConfig) controller.Services {
	return controller.Services{
		Wines:        wine.NewWineService(st),
		Regions:      region.NewRegionService(st),
		RegionImport: regionimport.NewRegionImportService(st, cfg.ImportClient, cfg.ImportTimeout, cfg.ImportMaxBody),
		Labels:       label.NewLabelService(cfg.LabelReader, st, cfg.LabelMaxImage),
		Bottles:      bottle.NewBottleService(st),
		Stores:       storage.NewStorageService(st),
		Auth:         auth.NewService(st, tokens),
	}
}

func (svc *APIService) Serve(addr string) error {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func (svc *APIService) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc.router.ServeHTTP(w, r)
}

func NewAPIService(services controller.Services, db Pinger, opts Options) *APIService {
	svc := &APIService{router: echo.New(), services: services, db: db}

	svc.router.HideBanner = true
	svc.router.HidePort = true
	svc.router.Logger.SetLevel(log.OFF)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = sonicSerializer{}
	svc.router.HTTPErrorHandler = httpErrorHandler

	svc.router.Pre(middleware.RemoveTrailingSlash())
	svc.router.Use(middleware.Recover())
	svc.router.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
		RequestIDHandler: func(c echo.Context, requestID string) {
			c.SetRequest(c.Request().WithContext(logger.WithRequestID(c.Request().Context(), requestID)))
		},
	}))
	svc.router.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogRemoteIP: true,
		HandleError: true,

		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Info(c.Request().Context(), "request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency.String(),
				"remote_ip", v.RemoteIP,
			)
			return nil
		},
	}))
	svc.router.Use(metrics.Middleware)
	if len(opts.CORSOrigins) > 0 {
		svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
			AllowOrigins: opts.CORSOrigins,
			AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
			AllowHeaders: []string{echo.HeaderContentType, echo.HeaderAuthorization},
		}))
	}
	if opts.RateLimit > 0 {
		svc.router.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(opts.RateLimit))))
	}

	svc.router.GET("/healthz", svc.Health)
	svc.router.GET("/metrics", echo.WrapHandler(metrics.Handler()))

	cntrl := controller.NewController(services)
	api := svc.router.Group("/api")

	token := api.Group("/token")
	token.POST("", cntrl.ObtainToken)
	token.POST("/refresh", cntrl.RefreshToken)

	wines := api.Group("/wines", svc.AuthMiddleware)
	wines.GET("", cntrl.ListWines)
	wines.POST("", cntrl.CreateWine)
	wines.POST("/analyze_label", cntrl.AnalyzeLabel)
	wines.GET("/:id", cntrl.GetWine)
	wines.PUT("/:id", cntrl.UpdateWine)
	wines.PATCH("/:id", cntrl.UpdateWine)
	wines.DELETE("/:id", cntrl.DeleteWine)

	regions := api.Group("/regions", svc.AuthMiddleware)
	regions.GET("", cntrl.ListRegions)
	regions.POST("", cntrl.CreateRegion)
	regions.POST("/import", cntrl.ImportRegions)
	regions.GET("/:id", cntrl.GetRegion)
	regions.PUT("/:id", cntrl.UpdateRegion)
	regions.PATCH("/:id", cntrl.UpdateRegion)
	regions.DELETE("/:id", cntrl.DeleteRegion)

	bottles := api.Group("/bottles", svc.AuthMiddleware)
	bottles.GET("", cntrl.ListBottles)
	bottles.POST("", cntrl.CreateBottle)
	bottles.GET("/:id", cntrl.GetBottle)
	bottles.PUT("/:id", cntrl.UpdateBottle)
	bottles.PATCH("/:id", cntrl.UpdateBottle)
	bottles.DELETE("/:id", cntrl.DeleteBottle)
	bottles.POST("/:id/consume", cntrl.ConsumeBottle)
	bottles.POST("/:id/undo_consume", cntrl.UndoConsumeBottle)

	stores := api.Group("/stores", svc.AuthMiddleware)
	stores.GET("", cntrl.ListStores)
	stores.POST("", cntrl.CreateStore)
	stores.GET("/:id", cntrl.GetStore)
	stores.PUT("/:id", cntrl.UpdateStore)
	stores.PATCH("/:id", cntrl.UpdateStore)
	stores.DELETE("/:id", cntrl.DeleteStore)

	return svc
}

func (svc *APIService) Health(ctx echo.Context) error {
	if svc.db != nil {
		if err := svc.db.Ping(ctx.Request().Context()); err != nil {
			logger.Errorf(ctx.Request().Context(), "db.Ping: %s", err.Error())
			return ctx.JSON(http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		}
	}

	return ctx.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
