package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/handlers"

	"technician-tracker/api"
	"technician-tracker/cache"
	"technician-tracker/config"
	"technician-tracker/database"
	"technician-tracker/gate"
	"technician-tracker/migration"
	"technician-tracker/trail"
	"technician-tracker/tracking"
)

func main() {
	configPath := flag.String("config", ".", "config file or directory")
	flag.Parse()

	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	// Initialize configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	h, cleanup, err := build(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           handlers.RecoveryHandler()(handlers.LoggingHandler(os.Stdout, api.RegisterRoutes(h))),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		log.Println("Shutting down...")
		h.Tracker.Stop()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		srv.Shutdown(shutdownCtx)
	}()

	log.Printf("Server started on %s", srv.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}

// build wires the stores picked in cfg into an api.Handler.
func build(ctx context.Context, cfg *config.Config) (*api.Handler, func(), error) {
	var closers []func()
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}
	fail := func(err error) (*api.Handler, func(), error) {
		cleanup()
		return nil, nil, err
	}

	var directory tracking.Directory = tracking.NewStaticDirectory(tracking.DemoRecords()...)
	if cfg.Storage.Directory == "postgres" {
		if err := migration.RunMigrations(cfg.DB); err != nil {
			return fail(err)
		}
		db, err := database.Open(cfg.DB)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { db.Close() })
		directory = database.NewServiceDirectory(db)
	}

	var visitors gate.Store = gate.NewMemoryStore()
	var sinks tracking.Sinks
	if cfg.Storage.Visitors == "redis" || cfg.Storage.PublishRedis {
		rdb, err := cache.NewRedisClient(ctx, cfg.Redis)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { rdb.Close() })
		if cfg.Storage.Visitors == "redis" {
			visitors = cache.NewVisitorStore(rdb)
		}
		if cfg.Storage.PublishRedis {
			sinks = append(sinks, cache.NewStatusPublisher(rdb))
		}
	}

	trails := trail.NewInMemoryRepository()
	if cfg.Storage.Trail == "mongo" {
		db, err := database.ConnectMongo(cfg.Mongo)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { db.Client().Disconnect(context.Background()) })
		repo := trail.NewMongoRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			return fail(err)
		}
		trails = repo
	}

	view := tracking.NewMapView()
	board := tracking.NewStatusBoard()
	sinks = append(tracking.Sinks{board, trail.NewRecorder(trails)}, sinks...)
	sim := tracking.NewSimulator(view, sinks, tracking.WithInterval(cfg.Tracking.Interval))

	return &api.Handler{
		Tracker: tracking.NewTracker(directory, sim),
		Map:     view,
		Board:   board,
		Trails:  trails,
		Gate:    gate.New(visitors, cfg.Gate.EntryPath),
	}, cleanup, nil
}
