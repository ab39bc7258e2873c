// Command server boots the blood bank backend: configuration, logging,
// tracing, the durable store, the in-memory core, and the HTTP API.
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
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/bloodsync/go-bloodbank-backend/internal/compat"
	"github.com/bloodsync/go-bloodbank-backend/internal/config"
	"github.com/bloodsync/go-bloodbank-backend/internal/domain"
	httpapi "github.com/bloodsync/go-bloodbank-backend/internal/http"
	"github.com/bloodsync/go-bloodbank-backend/internal/ledger"
	"github.com/bloodsync/go-bloodbank-backend/internal/observability"
	"github.com/bloodsync/go-bloodbank-backend/internal/registry"
	"github.com/bloodsync/go-bloodbank-backend/internal/services"
	"github.com/bloodsync/go-bloodbank-backend/internal/store"
	"github.com/bloodsync/go-bloodbank-backend/internal/store/gormstore"
	"github.com/bloodsync/go-bloodbank-backend/internal/store/jsonstore"
	"github.com/bloodsync/go-bloodbank-backend/internal/sysutil"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// defaultStock is seeded into an empty store on first boot so a fresh
// deployment has workable inventory.
var defaultStock = map[string]int{
	"A+": 50, "A-": 30,
	"B+": 45, "B-": 25,
	"AB+": 20, "AB-": 15,
	"O+": 60, "O-": 40,
}

// @title          Blood Bank Backend API
// @version        1.0
// @description    Compatibility-matching and inventory-ledger service for blood banks.
// @BasePath       /api/v1
func main() {
	// .env is optional; real deployments use environment variables.
	_ = godotenv.Load()

	cfg := config.MustLoad()

	// Logging: pretty console in dev, JSON in production.
	if cfg.LogPretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	sysutil.SetLogLevel(cfg.LogLevel)
	gin.SetMode(cfg.GinMode)

	// The compatibility matrix is static data; refuse to boot if it is
	// inconsistent.
	if err := compat.Validate(); err != nil {
		log.Fatal().Err(err).Msg("compatibility matrix invalid")
	}

	ctx := context.Background()

	// Tracing (no-op unless enabled).
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, version)
	if err != nil {
		log.Fatal().Err(err).Msg("otel setup failed")
	}

	st, err := openStore(cfg)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.StoreDriver).Msg("store open failed")
	}

	reg, err := registry.Load(ctx, st)
	if err != nil {
		log.Fatal().Err(err).Msg("registry load failed")
	}

	led := ledger.New(ledger.Thresholds{
		Critical: cfg.Inventory.CriticalThreshold,
		Low:      cfg.Inventory.LowThreshold,
	})
	records, err := st.LoadInventory(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("inventory load failed")
	}
	if err := led.Restore(records); err != nil {
		log.Fatal().Err(err).Msg("inventory restore failed")
	}

	core := services.NewCore(reg, led, st)

	if len(records) == 0 && cfg.Inventory.SeedDefaults {
		if err := seedInventory(ctx, core); err != nil {
			log.Fatal().Err(err).Msg("inventory seed failed")
		}
		log.Info().Msg("seeded default inventory")
	}

	donors, requestors, requests := reg.Counts()
	log.Info().
		Str("driver", cfg.StoreDriver).
		Int("donors", donors).
		Int("requestors", requestors).
		Int("requests", requests).
		Msg("state loaded")

	r := gin.New()
	httpapi.RegisterRoutes(r, core, cfg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("version", version).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := shutdownOTel(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("otel shutdown")
	}
	log.Info().Msg("bye")
}

// openStore picks the durable store implementation from configuration.
func openStore(cfg config.Config) (store.Store, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverSQLite:
		return gormstore.Open(cfg.DBPath)
	default:
		return jsonstore.Open(cfg.DataDir)
	}
}

// seedInventory stocks an empty ledger with the standard per-group levels and
// persists the result.
func seedInventory(ctx context.Context, core *services.Core) error {
	for name, units := range defaultStock {
		g, err := domain.ParseBloodGroup(name)
		if err != nil {
			return err
		}
		if err := core.Ledger.AddUnits(g, units); err != nil {
			return err
		}
	}
	return core.Store.SaveInventory(ctx, core.Ledger.Records())
}
