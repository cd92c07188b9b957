package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/fastprodman/gamehall/internal/api"
	"github.com/fastprodman/gamehall/internal/config"
	"github.com/fastprodman/gamehall/internal/infra/logging"
	"github.com/fastprodman/gamehall/internal/infra/pgutils"
	"github.com/fastprodman/gamehall/internal/jobs"
	"github.com/fastprodman/gamehall/internal/notify"
	balancespg "github.com/fastprodman/gamehall/internal/repos/balances/postgres"
	gamespg "github.com/fastprodman/gamehall/internal/repos/games/postgres"
	ledgerpg "github.com/fastprodman/gamehall/internal/repos/ledger/postgres"
	profitpg "github.com/fastprodman/gamehall/internal/repos/profit/postgres"
	userspg "github.com/fastprodman/gamehall/internal/repos/users/postgres"
	profitsvc "github.com/fastprodman/gamehall/internal/services/profit"
	"github.com/fastprodman/gamehall/internal/services/settlement"
	"github.com/fastprodman/gamehall/internal/services/wager"
	"github.com/fastprodman/gamehall/internal/sessions"
	"github.com/fastprodman/gamehall/pkg/shutdownqueue"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error running api: %v", err)
		//nolint:gocritic
		os.Exit(1)
	}
}

func run(ctx context.Context) (retErr error) {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("init config: %w", err)
	}

	logging.SetupJSON(logging.ParseLevel(cfg.LogLevel))

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		serr := shutdownqueue.Shutdown(shutdownCtx)
		if serr != nil {
			retErr = errors.Join(retErr, serr)
		}
	}()

	// --- Infra ---
	db, err := pgutils.OpenDB(ctx, cfg.PostgresDSN)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}

	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)
	db.SetConnMaxIdleTime(cfg.PGConnMaxIdle)
	db.SetConnMaxLifetime(cfg.PGConnMaxLife)

	shutdownqueue.Add(func(context.Context) error {
		slog.Info("closing db pool")

		return db.Close()
	})

	// --- Session store ---
	var (
		store   sessions.Store
		sweeper jobs.Sweeper
	)

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})

		err = client.Ping(ctx).Err()
		if err != nil {
			return fmt.Errorf("ping redis: %w", err)
		}

		shutdownqueue.Add(func(context.Context) error {
			slog.Info("closing redis client")

			return client.Close()
		})

		store = sessions.NewRedisStore(client, cfg.SessionTTL)
	} else {
		// Redis expires keys itself; memory needs the periodic sweep.
		mem := sessions.NewMemoryStore(cfg.SessionTTL)
		store, sweeper = mem, mem
	}

	// --- Repos ---
	usersRepo := userspg.New(db)
	gamesRepo := gamespg.New(db)
	balancesRepo := balancespg.New(db)
	ledgerRepo := ledgerpg.New(db)
	profitRepo := profitpg.New(db)

	// --- Services ---
	settleSrv := settlement.New(db, usersRepo, balancesRepo, ledgerRepo, notify.LogNotifier{})
	refresher := profitsvc.NewRefresher(profitRepo, cfg.HouseEdgePercent)
	policy := profitsvc.NewPolicy(profitRepo)
	wagerSrv := wager.New(usersRepo, gamesRepo, balancesRepo, store, settleSrv, policy)

	// --- Background jobs ---
	sched, err := jobs.New(refresher, cfg.ProfitRefreshSpec, sweeper, cfg.SessionSweepSpec)
	if err != nil {
		return fmt.Errorf("init scheduler: %w", err)
	}

	sched.Start()

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("stopping scheduler")

		return sched.Stop(c)
	})

	// --- HTTP server ---
	handler := api.NewHandler(wagerSrv, settleSrv, usersRepo, profitRepo, refresher)
	srv := api.NewServer(cfg.Port, api.NewRouter(handler))

	shutdownqueue.Add(func(c context.Context) error {
		slog.Info("shutting down server")

		err := srv.Shutdown(c)
		if err != nil {
			return fmt.Errorf("shutdown srv: %w", err)
		}

		return nil
	})

	errCh := make(chan error, 1)

	go func() {
		serr := srv.ListenAndServe()
		// http.ErrServerClosed is the normal path during Shutdown
		if serr != nil && !errors.Is(serr, http.ErrServerClosed) {
			errCh <- serr
			return
		}

		errCh <- nil
	}()

	slog.Info("API started", "port", cfg.Port)

	select {
	case <-ctx.Done():
		// graceful path; deferred shutdownqueue.Shutdown will run
		return nil
	case serr := <-errCh:
		if serr != nil {
			return fmt.Errorf("server error: %w", serr)
		}

		return nil
	}
}
