package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kiosk/internal/admin"
	"kiosk/internal/auth"
	"kiosk/internal/config"
	"kiosk/internal/db"
	"kiosk/internal/kiosk"
	"kiosk/internal/logging"
	"kiosk/internal/menu"
	"kiosk/internal/render"
	"kiosk/internal/router"
	"kiosk/internal/snapshot"
	"kiosk/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "api",
		Short:         "Kiosk menu selection server",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server",
			RunE: func(cmd *cobra.Command, args []string) error {
				return serve(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "hash-password <password>",
			Short: "Print a bcrypt hash for KITCHEN_STAFF_PASSWORD_HASH",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				hash, err := auth.HashPassword(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), hash)
				return nil
			},
		},
	)
	return root
}

func serve(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer logger.Sync()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// ───────────────────────── DB ─────────────────────────
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = db.ConnectPostgres(ctx, cfg.DatabaseURL, logger)
		if err != nil {
			return err
		}
		defer pool.Close()
	}

	// ───────────────────────── SNAPSHOTS ─────────────────────────
	store, err := newSnapshotStore(ctx, cfg, pool, logger)
	if err != nil {
		return err
	}

	// ───────────────────────── MENU ─────────────────────────
	catalog := menu.Default()
	if cfg.MenuFile != "" {
		catalog, err = menu.LoadFile(cfg.MenuFile)
		if err != nil {
			return err
		}
	}
	logger.Info("menu loaded", zap.Int("items", len(catalog.Items())))

	renderer, err := render.NewRenderer()
	if err != nil {
		return err
	}

	// ───────────────────────── AUTH ─────────────────────────
	var staffRepo auth.StaffRepository = auth.NewInMemoryStaffRepository()
	if pool != nil {
		staffRepo = auth.NewPostgresStaffRepository(pool)
	}
	authService := auth.NewService(staffRepo)
	if cfg.KitchenStaffName != "" {
		if err := authService.Seed(ctx, cfg.KitchenStaffName, cfg.KitchenStaffPasswordHash); err != nil {
			return fmt.Errorf("seed kitchen staff: %w", err)
		}
	}

	tokens, err := auth.NewTokens(cfg.JWTSecret)
	if err != nil {
		return err
	}

	// ───────────────────────── KIOSK ─────────────────────────
	kioskService := kiosk.NewService(catalog, store, renderer, logger)
	go kioskService.RunJanitor(ctx, time.Minute, cfg.SessionIdleTimeout)

	r := router.NewRouter(router.Deps{
		Kiosk:       kiosk.NewHandler(kioskService, logger),
		Menu:        menu.NewHandler(catalog),
		Auth:        auth.NewHandler(authService, tokens),
		Admin:       admin.NewHandler(kioskService, logger),
		Tokens:      tokens,
		Logger:      logger,
		ImageDir:    cfg.ImageDir,
		CORSOrigins: cfg.CORSOrigins,
	})

	// ───────────────────────── START ─────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("kiosk api listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// newSnapshotStore prefers R2, then Postgres, then process memory.
func newSnapshotStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, logger *zap.Logger) (snapshot.Store, error) {
	switch {
	case cfg.R2.Enabled():
		client, err := storage.NewR2Client(ctx, cfg.R2)
		if err != nil {
			return nil, fmt.Errorf("r2 init failed: %w", err)
		}
		logger.Info("snapshots stored in r2", zap.String("bucket", cfg.R2.Bucket))
		return snapshot.NewObjectStore(client, cfg.R2Prefix), nil
	case pool != nil:
		logger.Info("snapshots stored in postgres")
		return snapshot.NewPostgresStore(pool), nil
	default:
		logger.Warn("snapshots kept in memory; they are lost on restart")
		return snapshot.NewMemoryStore(), nil
	}
}
