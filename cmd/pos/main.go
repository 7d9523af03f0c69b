package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	"golang.org/x/sync/errgroup"

	"marnie-pos/internal/client"
	"marnie-pos/internal/config"
	"marnie-pos/internal/database"
	"marnie-pos/internal/infrastructure/idgen"
	"marnie-pos/internal/report"
	"marnie-pos/internal/repo"
	"marnie-pos/internal/service"
	"marnie-pos/internal/transport"
	"marnie-pos/internal/worker"
)

func main() {
	app := &cli.App{
		Name:    "pos",
		Usage:   transport.ServiceName,
		Version: transport.Version,
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the HTTP API",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "addr", Usage: "listen address, overrides POS_HTTP_ADDR"},
				},
				Action: serve,
			},
			{
				Name:   "migrate",
				Usage:  "apply the postgres schema",
				Action: migrateSchema,
			},
			{
				Name:  "report",
				Usage: "print the dashboard of a running server",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "server", Value: "http://localhost:8080", EnvVars: []string{"POS_SERVER_URL"}},
				},
				Action: printReport,
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("pos exited")
	}
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	cfg.ConfigureLogger()
	return cfg, nil
}

func serve(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if addr := c.String("addr"); addr != "" {
		cfg.HTTPAddr = addr
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	stores, health, closeStores, err := openStores(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStores()

	logger := log.StandardLogger()
	ledger := service.NewLedgerService(stores, idgen.NewUUIDGenerator(), service.WithLogger(logger))
	if err := ledger.Seed(ctx); err != nil {
		return err
	}

	gin.SetMode(cfg.GinMode)
	router := transport.NewRouter(ledger, transport.Options{
		CORSOrigins: cfg.CORSOrigins,
		StaticDir:   cfg.StaticDir,
		TemplateDir: cfg.TemplateDir,
		Health:      health,
		Logger:      logger,
	})
	srv := &http.Server{Addr: cfg.HTTPAddr, Handler: router}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.WithFields(log.Fields{"addr": cfg.HTTPAddr, "storage": cfg.Storage}).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		return worker.NewStatsReporter(ledger, cfg.StatsInterval, logger).Run(gctx)
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// openStores returns a nil health reporter for the memory backend.
func openStores(ctx context.Context, cfg *config.Config) (repo.Set, transport.HealthReporter, func(), error) {
	if cfg.Storage == config.StorageMemory {
		return repo.NewMemorySet(), nil, func() {}, nil
	}

	if err := database.Migrate(cfg.DB); err != nil {
		return repo.Set{}, nil, nil, err
	}
	db, err := database.Open(ctx, cfg.DB)
	if err != nil {
		return repo.Set{}, nil, nil, err
	}
	if cfg.DB.ResetOnStart {
		log.Warn("Resetting ledger tables; set POS_DB_RESET_ON_START=false when several processes share the database")
		if err := database.Reset(ctx, db.DB()); err != nil {
			_ = db.Close()
			return repo.Set{}, nil, nil, err
		}
	}

	closeFn := func() {
		if err := db.Close(); err != nil {
			log.WithError(err).Warn("close database")
		}
	}
	return repo.NewPostgresSet(db.DB()), db, closeFn, nil
}

func migrateSchema(c *cli.Context) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := database.Migrate(cfg.DB); err != nil {
		return err
	}
	log.WithField("database", cfg.DB.Database).Info("schema is up to date")
	return nil
}

func printReport(c *cli.Context) error {
	stats, err := client.New(c.String("server")).DashboardStats(c.Context)
	if err != nil {
		return err
	}
	return report.RenderStats(c.App.Writer, stats)
}
