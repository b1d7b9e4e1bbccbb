package router

import (
	"context"
	"net/http"

	activitysvc "semdex-backend/internal/application/activity"
	authsvc "semdex-backend/internal/application/auth"
	dashsvc "semdex-backend/internal/application/dashboard"
	emailsvc "semdex-backend/internal/application/emails"
	"semdex-backend/internal/application/seed"
	"semdex-backend/internal/config"
	"semdex-backend/internal/infrastructure/database"
	activityhandler "semdex-backend/internal/interfaces/handlers/activity"
	authhandler "semdex-backend/internal/interfaces/handlers/auth"
	dashhandler "semdex-backend/internal/interfaces/handlers/dashboard"
	healthhandler "semdex-backend/internal/interfaces/handlers/health"
	"semdex-backend/internal/middleware"
	"semdex-backend/internal/pkg/metrics"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// used only outside production when SESSION_SECRET is unset
const devSessionSecret = "semdex-dev-session-secret"

// CreateApp opens the store and Redis from cfg, prepares the schema and reference data
// when configured to, and returns the wired app.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	rdb := redis.NewClient(opt)

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := Prepare(context.Background(), cfg, db); err != nil {
			return nil, nil, nil, err
		}
	} else {
		log.Warn().Msg("no database configured: only health routes are served")
	}

	app, err := NewApp(cfg, db, rdb, metrics.New())
	if err != nil {
		return nil, nil, nil, err
	}
	return app, db, rdb, nil
}

// Prepare runs AUTO_MIGRATE and SEED_ON_START.
func Prepare(ctx context.Context, cfg *config.Config, db *gorm.DB) error {
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}
	if cfg.SeedOnStart {
		return (&seed.Seeder{DB: db}).EnsureSeeded(ctx)
	}
	return nil
}

// NewApp registers middleware and routes over existing connections. A nil db leaves
// only the health and metrics routes mounted.
func NewApp(cfg *config.Config, db *gorm.DB, rdb *redis.Client, m *metrics.Metrics) (*fiber.App, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler,
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())
	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.SessionWithClient(rdb))
	app.Use(middleware.HealthMarker(rdb))

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		HealthAdminKey: cfg.HealthAdminKey,
	}
	if db != nil {
		hh.DB = &database.Pinger{DB: db}
	}
	app.Get("/", hh.Dashboard)
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)
	app.Get("/metrics", m.Handler())

	if db == nil {
		return app, nil
	}

	secret := cfg.SessionSecret
	if secret == "" {
		log.Warn().Msg("SESSION_SECRET not set: using the development secret")
		secret = devSessionSecret
	}
	links, err := authsvc.NewMagicLinkIssuer(secret, cfg.MagicLinkTTL)
	if err != nil {
		return nil, err
	}
	var mailer emailsvc.Sender = emailsvc.LogSender{}
	if cfg.SendinblueAPIKey != "" {
		mailer = &emailsvc.BrevoClient{APIKey: cfg.SendinblueAPIKey, MailFrom: cfg.MailFrom}
	}

	activity := &activitysvc.Service{DB: db, Metrics: m}
	sessionCfg := middleware.SessionConfig{
		Secret:            secret,
		RedisURL:          cfg.RedisURL,
		AllowCrossSiteDev: cfg.AllowCrossSiteDev,
		IsProduction:      cfg.IsProduction(),
	}

	// Auth
	ah := &authhandler.Handlers{
		Service: &authsvc.Service{
			Directory:   authsvc.DefaultDirectory(),
			Users:       &authsvc.GormUserFinder{DB: db},
			Rdb:         rdb,
			Links:       links,
			Mailer:      mailer,
			LinkBaseURL: cfg.MagicLinkBaseURL,
			Audit:       activity,
			Metrics:     m,
		},
		Rdb:    rdb,
		Config: sessionCfg,
	}
	authGroup := app.Group("/api/v1/auth")
	authGroup.Post("/login", ah.Login)
	authGroup.Get("/me", ah.Me)
	authGroup.Delete("/logout", ah.Logout)
	authGroup.Post("/magic-link", ah.MagicLink)
	authGroup.Get("/magic-link/verify", ah.RedeemMagicLink)

	// Dashboard
	dh := &dashhandler.Handlers{Service: &dashsvc.Service{DB: db, Metrics: m}}
	dg := app.Group("/api/v1/dashboard", middleware.RequireAuth())
	dg.Get("/get-overview", dh.GetOverview)
	dg.Get("/get-shareholding", dh.GetShareholding)
	dg.Get("/get-sale-breakdown", dh.GetSaleBreakdown)
	dg.Get("/get-dividends", dh.GetDividends)
	dg.Get("/get-transactions", dh.GetTransactions)
	dg.Get("/get-audit-logs", dh.GetAuditLogs)
	dg.Get("/get-brokers", dh.GetBrokers)
	dg.Get("/get-settings", dh.GetSettings)

	// Activity log
	lh := &activityhandler.Handlers{Service: activity}
	lg := app.Group("/api/v1/log", middleware.RequireAuth())
	lg.Post("/transaction", lh.LogTransaction)
	lg.Post("/audit", lh.LogAudit)

	return app, nil
}

func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
