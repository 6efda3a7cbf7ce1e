package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"coordinate-extractor/docs"
	"coordinate-extractor/internal/config"
	"coordinate-extractor/internal/handler"
	"coordinate-extractor/internal/repository"
	"coordinate-extractor/internal/service"
	"coordinate-extractor/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

//	@title		Coordinate Extractor API
//	@version	1.0
//	@BasePath	/
func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	config, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	level, err := zerolog.ParseLevel(config.LogLevel)
	if err != nil {
		log.Fatal().Err(err).Str("level", config.LogLevel).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fs := afero.NewOsFs()

	// Initialize layers
	workbookRepo := repository.NewWorkbookRepository(fs)
	csvRepo := repository.NewCSVRepository(fs)

	coordinateService := service.NewCoordinateService(workbookRepo, csvRepo, config.InputPath, config.OutputPath, config.EmailColumn)
	ordersService := service.NewOrdersService(workbookRepo, config.OrdersPath, config.OrdersColumn)

	coordinatesHandler := handler.NewCoordinatesHandler(coordinateService)
	ordersHandler := handler.NewOrdersHandler(ordersService)

	// Background work
	poller := worker.NewPoller(coordinateService, config.ProcessInterval, nil)
	go poller.Run(ctx)

	go worker.Every(ctx, config.OrdersRefreshInterval, func(ctx context.Context) {
		if err := ordersService.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("failed to refresh orders cache")
			return
		}
		total, _ := ordersService.Total()
		log.Info().Float64("total", total).Msg("orders cache refreshed")
	})

	scheduler, err := worker.NewScheduler(ctx, config.DailySchedule,
		worker.Job{Name: "process-coordinates", Run: func(ctx context.Context) error {
			_, err := coordinateService.Process(ctx)
			return err
		}},
		worker.Job{Name: "reset-orders", Run: ordersService.Reset},
	)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create scheduler")
	}
	scheduler.Start()
	defer scheduler.Stop()

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/orders", ordersHandler.Orders)
	r.GET("/process-coordinates", coordinatesHandler.ProcessCoordinates)
	r.StaticFS("/data", afero.NewHttpFs(fs).Dir(config.PublicDir))

	docs.SwaggerInfo.Host = config.ServerAddress
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Polygon lookups need the database filled by cmd/importer
	if config.DBSource != "" {
		conn, err := pgxpool.New(ctx, config.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		polygonRepo := repository.NewPolygonRepository(conn)
		if err := polygonRepo.CreateSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("cannot prepare polygons table")
		}

		polygonsHandler := handler.NewPolygonsHandler(service.NewPolygonService(polygonRepo))
		r.GET("/polygons", polygonsHandler.Polygons)
	}

	srv := &http.Server{
		Addr:    config.ServerAddress,
		Handler: r,
	}

	go func() {
		log.Info().Str("address", config.ServerAddress).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	worker.Heartbeat(ctx, config.HeartbeatInterval, "background process running")

	log.Info().Msg("background process terminated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown failed")
	}
}
