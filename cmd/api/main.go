// Command api serves the tax classification catalog over HTTP.
//
// @title                     Tax Code Search API
// @version                   1.0
// @description               Search and filter LC 116 service codes, their NBS correlations and cClassTrib tax classifications.
// @BasePath                  /api/v1
// @schemes                   http https
// @produce                   json
// @accept                    json
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	_ "github.com/tbourn/go-taxcode-search/docs"
	"github.com/tbourn/go-taxcode-search/internal/app"
	"github.com/tbourn/go-taxcode-search/internal/config"
	httpapi "github.com/tbourn/go-taxcode-search/internal/http"
	"github.com/tbourn/go-taxcode-search/internal/observability"
	"github.com/tbourn/go-taxcode-search/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

// shutdownGrace bounds in-flight requests and trace export at shutdown.
const shutdownGrace = 10 * time.Second

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	sysutil.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogPretty)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg config.Config) error {
	a, err := app.Open(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, observability.BuildInfo{
		Version:        version,
		CatalogVersion: a.Service.Version(),
		CatalogStore:   cfg.Catalog.Store,
	})
	if err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, a.Service, a.DB, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("base_path", cfg.APIBasePath).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")

		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		err := srv.Shutdown(sctx)
		if oerr := shutdownOTel(sctx); oerr != nil {
			log.Warn().Err(oerr).Msg("otel shutdown")
		}
		return err
	})
	return g.Wait()
}
