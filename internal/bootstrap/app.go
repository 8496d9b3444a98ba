package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	"github.com/gin-gonic/gin"

	"resume-screener/internal/bias"
	"resume-screener/internal/candidates"
	"resume-screener/internal/chat"
	"resume-screener/internal/engine"
	"resume-screener/internal/notify"
	"resume-screener/internal/parser"
	"resume-screener/internal/shared/config"
	"resume-screener/internal/shared/server"
	"resume-screener/internal/shared/storage/db"
	"resume-screener/internal/shared/storage/object"
	localstore "resume-screener/internal/shared/storage/object/local"
	s3store "resume-screener/internal/shared/storage/object/s3"
)

// App holds shared dependencies.
type App struct {
	Config            config.Config
	Router            *gin.Engine
	DB                *sql.DB
	Store             object.ObjectStore
	Engine            *engine.Engine
	Detector          *bias.Detector
	CandidatesRepo    candidates.CandidatesRepo
	HistoryRepo       chat.HistoryRepo
	CandidatesService *candidates.Service
	CandidatesHandler *candidates.Handler
	ChatHandler       *chat.Handler
	Mailer            *notify.Mailer
	NotifyHandler     *notify.Handler
}

// Build prepares shared dependencies and the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	ctx := context.Background()

	sqlDB, err := buildDB(ctx, cfg)
	if err != nil {
		return nil, err
	}

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config: cfg,
		DB:     sqlDB,
		Store:  store,
	}
	buildServices(app)

	app.Router = server.NewRouter(server.RouterDeps{
		Config:            app.Config,
		CandidatesHandler: app.CandidatesHandler,
		ChatHandler:       app.ChatHandler,
		NotifyHandler:     app.NotifyHandler,
	})

	return app, nil
}

func buildDB(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	if strings.TrimSpace(cfg.DatabaseURL) == "" {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: DATABASE_URL empty; using in-memory repositories")
			return nil, nil
		}
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: database connect failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		if isDevLike(cfg.Env) {
			log.Printf("bootstrap: migrations failed; using in-memory repositories: %v", err)
			return nil, nil
		}
		return nil, err
	}

	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix, cfg.SSEKMSKeyID)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildServices(app *App) {
	cfg := app.Config

	var candRepo candidates.CandidatesRepo
	var historyRepo chat.HistoryRepo
	if app.DB != nil {
		candRepo = &candidates.PGRepo{DB: app.DB}
		historyRepo = &chat.PGHistoryRepo{DB: app.DB}
	} else {
		candRepo = candidates.NewMemoryRepo()
		historyRepo = chat.NewMemoryHistoryRepo()
	}

	gateway := engine.NewGeminiGateway(cfg.GeminiEndpoint, cfg.GeminiAPIKey)
	eng := engine.New(gateway, parser.New())
	detector := bias.New()

	candSvc := &candidates.Service{
		Store:    app.Store,
		Repo:     candRepo,
		Engine:   eng,
		Detector: detector,
	}

	mailer := notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.SMTPFrom)

	app.Engine = eng
	app.Detector = detector
	app.CandidatesRepo = candRepo
	app.HistoryRepo = historyRepo
	app.CandidatesService = candSvc
	app.CandidatesHandler = candidates.NewHandler(candSvc)
	app.ChatHandler = chat.NewHandler(eng, candSvc, historyRepo)
	app.Mailer = mailer
	app.NotifyHandler = notify.NewHandler(mailer)
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
