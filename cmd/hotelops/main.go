package main

import (
	"context"
	"os"
	"path/filepath"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"silaf_hotel/internal/adapters/observability"
	redisad "silaf_hotel/internal/adapters/redis"
	"silaf_hotel/internal/app"
	"silaf_hotel/internal/domain"
	"silaf_hotel/internal/shared"
	"silaf_hotel/internal/storage/jsonfile"
	"silaf_hotel/internal/storage/sqlstore"
)

var opts struct {
	DataDir string `long:"data-dir" description:"mirror document store directory (overrides DATA_DIR)"`
	Driver  string `long:"db" description:"relational driver (overrides DB_DRIVER)" choice:"sqlite" choice:"mysql"`
	Resync  bool   `long:"resync" description:"rebuild the mirror from the relational store, then exit"`
}

func main() {
	if _, err := flags.Parse(&opts); err != nil {
		if flags.WroteHelp(err) {
			return
		}
		os.Exit(1)
	}

	cfg := shared.Load()
	if opts.DataDir != "" {
		cfg.DataDir = opts.DataDir
	}
	if opts.Driver != "" {
		cfg.DBDriver = opts.Driver
	}

	// set global logger (console in dev, JSON otherwise); stderr keeps the
	// menu on stdout readable
	log.Logger = observability.NewLogger(cfg.AppEnv)

	observability.Serve(cfg.MetricsAddr)

	ctx := context.Background()

	driver, dsn := cfg.DBDriver, cfg.MySQLDSN
	var sqlOpts []sqlstore.Option
	if driver == sqlstore.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.SQLitePath), 0o750); err != nil {
			log.Fatal().Err(err).Msg("create database dir failed")
		}
		dsn = sqlstore.SQLiteDSN(cfg.SQLitePath)
	} else {
		if cfg.DBRateRPS > 0 {
			sqlOpts = append(sqlOpts, sqlstore.WithRateLimit(cfg.DBRateRPS))
		}
		if cfg.DBRetries > 0 {
			sqlOpts = append(sqlOpts, sqlstore.WithPingAttempts(cfg.DBRetries))
		}
	}

	auth, err := sqlstore.Open(ctx, driver, dsn, sqlOpts...)
	if err != nil {
		log.Fatal().Err(err).Msg("open relational store failed")
	}
	defer auth.Close()
	log.Info().Str("driver", driver).Msg("relational store ready")

	mirror, err := jsonfile.New(cfg.DataDir)
	if err != nil {
		log.Fatal().Err(err).Msg("open document store failed")
	}

	var cache domain.Cache
	if cfg.RedisAddr != "" {
		cache = redisad.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
		log.Info().Str("addr", cfg.RedisAddr).Msg("query cache enabled")
	}

	sync := app.NewSynchronizer(auth, mirror, cache)

	if opts.Resync {
		if err := sync.Resync(ctx); err != nil {
			log.Fatal().Err(err).Msg("mirror resync failed")
		}
		log.Info().Msg("mirror resync completed")
		return
	}

	m := &menu{
		sync:    sync,
		queries: app.NewQueryService(auth, cache, cfg.CacheTTL),
		mirror:  app.NewQueryService(mirror, cache, cfg.CacheTTL),
	}
	m.run(ctx)
}
