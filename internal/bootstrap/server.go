package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/studiobooking/api"
	"github.com/Domenick1991/studiobooking/config"
	"github.com/Domenick1991/studiobooking/internal/domain"
	"github.com/Domenick1991/studiobooking/internal/realtime"
	"github.com/Domenick1991/studiobooking/internal/service/booking"
	"github.com/Domenick1991/studiobooking/internal/service/export"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(
	ctx context.Context,
	cfg *config.Config,
	catalog *domain.Catalog,
	bookingSvc booking.BookingUseCase,
	exportSvc export.ExportUseCase,
	hub *realtime.Hub,
) error {
	router := newRouter(cfg, catalog, bookingSvc, exportSvc, hub)

	httpSrv := &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newRouter(
	cfg *config.Config,
	catalog *domain.Catalog,
	bookingSvc booking.BookingUseCase,
	exportSvc export.ExportUseCase,
	hub *realtime.Hub,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), requestTimeout(cfg.HTTP))

	v1 := router.Group("/api/v1")
	api.NewBookingHandler(bookingSvc).Register(v1.Group("/bookings"))
	api.NewAvailabilityHandler(bookingSvc).Register(v1.Group("/availability"))
	api.NewExportHandler(exportSvc).Register(v1.Group("/export"))
	api.NewStudioHandler(catalog).Register(v1.Group("/studios"))
	api.NewEventsHandler(hub).Register(v1.Group("/events"))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return router
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("query", c.Request.URL.RawQuery).
			Int("status", c.Writer.Status()).
			Dur("duration", time.Since(start)).
			Str("ip", c.ClientIP()).
			Msg("http request")
	}
}

// requestTimeout bounds every repository call made below a handler; a stuck
// backend surfaces as a retryable failure instead of a hung request. The
// events stream is exempt since it holds its connection open.
func requestTimeout(cfg config.HTTPConfig) gin.HandlerFunc {
	timeout := 10 * time.Second
	if cfg.RequestTimeout > 0 {
		timeout = time.Duration(cfg.RequestTimeout) * time.Second
	}
	return func(c *gin.Context) {
		if c.FullPath() == "/api/v1/events/" {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
