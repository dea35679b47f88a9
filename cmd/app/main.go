package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"travelplan/cmd/fx/ai_fx"
	"travelplan/cmd/fx/auth_fx"
	"travelplan/cmd/fx/config_fx"
	"travelplan/cmd/fx/controllers_fx"
	"travelplan/cmd/fx/db_fx"
	"travelplan/cmd/fx/travel_plan_fx"
	"travelplan/internal/api/controllers"
	"travelplan/internal/config"
	"travelplan/pkg/middleware"
	"travelplan/pkg/utils"
)

// @title Travel Plan API
// @version 1.0
// @description AI generated vacation itineraries and relocation guides
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	fx.New(appOptions()...).Run()
}

func appOptions() []fx.Option {
	return []fx.Option{
		config_fx.Module,
		db_fx.Module,
		ai_fx.Module,
		auth_fx.Module,
		travel_plan_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	}
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, log zerolog.Logger) {
	srv := &http.Server{
		Addr:    cfg.Addr(),
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("failed to start server")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.ShutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

func ProvideRouter(
	cfg *config.Config,
	log zerolog.Logger,
	verifier utils.TokenVerifier,
	travelPlanController *controllers.TravelPlanController,
	healthController *controllers.HealthController) *gin.Engine {

	gin.SetMode(cfg.GinMode())

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.LoggingMiddleware(log))
	r.Use(middleware.MetricsMiddleware())

	RegisterRoutes(r, verifier, travelPlanController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	verifier utils.TokenVerifier,
	travelPlanController *controllers.TravelPlanController,
	healthController *controllers.HealthController) {

	r.GET("/health", healthController.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	plansGroup := r.Group("/api/travel-plans")
	plansGroup.Use(middleware.JWTAuthMiddleware(verifier))
	plansGroup.POST("", travelPlanController.CreateTravelPlan)
	plansGroup.POST("/stream", travelPlanController.StreamTravelPlan)
	plansGroup.GET("", travelPlanController.GetUserTravelPlans)
	plansGroup.GET("/:id", travelPlanController.GetTravelPlanByID)
	plansGroup.PUT("/:id", travelPlanController.UpdateTravelPlan)
	plansGroup.DELETE("/:id", travelPlanController.DeleteTravelPlan)
}
