package main

import (
	"context"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/partsdesk/partsdesk-backend/api/routes"
	"github.com/partsdesk/partsdesk-backend/internal/actions"
	"github.com/partsdesk/partsdesk-backend/internal/analytics"
	"github.com/partsdesk/partsdesk-backend/internal/attachments"
	"github.com/partsdesk/partsdesk-backend/internal/auth"
	"github.com/partsdesk/partsdesk-backend/internal/companies"
	"github.com/partsdesk/partsdesk-backend/internal/complaints"
	"github.com/partsdesk/partsdesk-backend/internal/parts"
	"github.com/partsdesk/partsdesk-backend/internal/responsibles"
	"github.com/partsdesk/partsdesk-backend/internal/settings"
	"github.com/partsdesk/partsdesk-backend/internal/users"
	"github.com/partsdesk/partsdesk-backend/pkg/auth/session"
	"github.com/partsdesk/partsdesk-backend/pkg/config"
	"github.com/partsdesk/partsdesk-backend/pkg/db"
	"github.com/partsdesk/partsdesk-backend/pkg/logger"
	"github.com/partsdesk/partsdesk-backend/pkg/metrics"
	"github.com/partsdesk/partsdesk-backend/pkg/migrate"
	"github.com/partsdesk/partsdesk-backend/pkg/redis"
	"github.com/partsdesk/partsdesk-backend/pkg/storage/disk"
)

// defaultSettings are seeded on first boot when the seed flag is set.
var defaultSettings = map[string]any{
	"notifications_enabled": true,
	"default_page_size":     25,
	"complaint_auto_close":  false,
}

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	dbClient, err := db.New(context.Background(), cfg.DB, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap database", err)
		os.Exit(1)
	}
	defer func() {
		if err := dbClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing database", err)
		}
	}()

	if err := migrate.MaybeRunDev(context.Background(), cfg, logg, dbClient); err != nil {
		logg.Error(context.Background(), "failed to run dev migrations", err)
		os.Exit(1)
	}

	redisClient, err := redis.New(context.Background(), cfg.Redis, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap redis", err)
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logg.Error(context.Background(), "error closing redis", err)
		}
	}()

	sessionManager, err := session.NewManager(redisClient, cfg.JWT)
	if err != nil {
		logg.Error(context.Background(), "failed to create session manager", err)
		os.Exit(1)
	}

	fileStore, err := disk.New(context.Background(), cfg.Uploads, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to prepare upload storage", err)
		os.Exit(1)
	}

	gormDB := dbClient.DB()
	companyRepo := companies.NewRepository(gormDB)
	partRepo := parts.NewRepository(gormDB)
	complaintRepo := complaints.NewRepository(gormDB)
	attachmentRepo := attachments.NewRepository(gormDB)
	actionRepo := actions.NewRepository(gormDB)
	responsibleRepo := responsibles.NewRepository(gormDB)
	settingsRepo := settings.NewRepository(gormDB)
	analyticsRepo := analytics.NewRepository(gormDB)

	companyService, err := companies.NewService(companyRepo)
	exitOnErr(logg, "company service", err)
	partService, err := parts.NewService(partRepo)
	exitOnErr(logg, "part service", err)
	complaintService, err := complaints.NewService(complaintRepo, companyRepo, partRepo, logg)
	exitOnErr(logg, "complaint service", err)
	attachmentService, err := attachments.NewService(attachmentRepo, complaintRepo, fileStore, cfg.Uploads.MaxUploadBytes(), logg)
	exitOnErr(logg, "attachment service", err)
	actionService, err := actions.NewService(actionRepo, complaintRepo, responsibleRepo, logg)
	exitOnErr(logg, "action service", err)
	responsibleService, err := responsibles.NewService(responsibleRepo)
	exitOnErr(logg, "responsible person service", err)
	settingsService, err := settings.NewService(settingsRepo)
	exitOnErr(logg, "settings service", err)
	analyticsService, err := analytics.NewService(analyticsRepo)
	exitOnErr(logg, "analytics service", err)
	authService, err := auth.NewService(auth.ServiceParams{
		UserRepo:       users.NewRepository(gormDB),
		SessionManager: sessionManager,
		JWTConfig:      cfg.JWT,
		PasswordConfig: cfg.Password,
	})
	exitOnErr(logg, "auth service", err)

	if cfg.FeatureFlags.SeedDefaults {
		seedSettings(context.Background(), settingsService, logg)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port
	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":  cfg.App.Env,
		"addr": addr,
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr: addr,
		Handler: routes.NewRouter(cfg, logg, dbClient, redisClient, sessionManager, httpMetrics, registry, routes.Services{
			Auth:         authService,
			Companies:    companyService,
			Parts:        partService,
			Complaints:   complaintService,
			Attachments:  attachmentService,
			Actions:      actionService,
			Responsibles: responsibleService,
			Settings:     settingsService,
			Analytics:    analyticsService,
		}),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// seedSettings writes the default app settings once. Keys that already
// exist are left alone.
func seedSettings(ctx context.Context, svc settings.Service, logg *logger.Logger) {
	existing, err := svc.GetAll(ctx)
	if err != nil {
		logg.Error(ctx, "failed to read settings for seeding", err)
		return
	}
	missing := map[string]any{}
	for key, value := range defaultSettings {
		if _, ok := existing[key]; !ok {
			missing[key] = value
		}
	}
	if len(missing) == 0 {
		return
	}
	if err := svc.PutAll(ctx, missing, "System"); err != nil {
		logg.Error(ctx, "failed to seed default settings", err)
		return
	}
	logg.Info(logg.WithField(ctx, "keys", len(missing)), "seeded default app settings")
}

func exitOnErr(logg *logger.Logger, what string, err error) {
	if err == nil {
		return
	}
	logg.Error(context.Background(), "failed to create "+what, err)
	os.Exit(1)
}
