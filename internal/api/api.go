package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/tmabaso/sdg3health/internal/api/controller"
	"github.com/tmabaso/sdg3health/internal/pkg/cache"
	"github.com/tmabaso/sdg3health/internal/pkg/logger"
	"github.com/tmabaso/sdg3health/internal/pkg/store"
	"github.com/tmabaso/sdg3health/internal/service/indicators"
	"github.com/tmabaso/sdg3health/internal/service/maps"
	"github.com/tmabaso/sdg3health/internal/service/regions"
)

// base path the dashboard is served under
const basePath = "/sdg3health"

type APIService struct {
	router *echo.Echo

	regionsService    *regions.Service
	indicatorsService *indicators.Service
	mapsService       *maps.Service
}

// Serve blocks until the router stops. A Shutdown-triggered close returns
// normally so deferred cleanup in the caller still runs.
func (svc *APIService) Serve(addr string) {
	if err := svc.router.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal(context.Background(), err)
	}
	logger.Info(context.Background(), "server stopped")
}

func (svc *APIService) Shutdown(ctx context.Context) error {
	return svc.router.Shutdown(ctx)
}

func NewAPIService(st store.Store, c *cache.Cache) (*APIService, error) {
	svc := &APIService{router: echo.New()}

	svc.router.HideBanner = true
	svc.router.Logger.SetLevel(log.WARN)
	svc.router.Validator = NewValidator()
	svc.router.Binder = NewBinder()
	svc.router.JSONSerializer = NewSonicSerializer()
	svc.router.HTTPErrorHandler = httpErrorHandler
	svc.router.Use(middleware.Recover())
	svc.router.Use(svc.RequestIDMiddleware)
	svc.router.Use(svc.MetricsMiddleware)
	svc.router.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST},
		AllowHeaders: []string{"Content-Type", "Authorization"},
	}))

	svc.regionsService = regions.NewRegionsService(st, c)
	svc.indicatorsService = indicators.NewIndicatorsService(st, c)
	svc.mapsService = maps.NewMapsService(st, c)

	cntrl := controller.NewController(svc.regionsService, svc.indicatorsService, svc.mapsService, st, c)

	svc.router.GET(basePath+"/healthz", cntrl.GetHealth)
	svc.router.GET(basePath+"/metrics", echo.WrapHandler(promhttp.Handler()))

	api := svc.router.Group(basePath + "/api/v1")

	regionsGroup := api.Group("/regions")
	regionsGroup.GET("/provinces", cntrl.GetProvinces)
	regionsGroup.GET("/provinces/:code/districts", cntrl.GetDistricts)
	regionsGroup.GET("/districts/:code/municipalities", cntrl.GetMunicipalities)

	api.GET("/map", cntrl.GetMap)
	api.GET("/map/layers", cntrl.GetMapLayers)

	api.GET("/summary", cntrl.GetSummary)
	api.GET("/indicators/hiv", cntrl.GetHIVIndicators)
	api.GET("/indicators/tb", cntrl.GetTBIndicators)
	api.GET("/targets", cntrl.GetTargets)

	admin := api.Group("/admin", svc.AdminMiddleware)
	admin.POST("/cache/flush", cntrl.FlushCache)

	return svc, nil
}
