package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"career-backend/internal/applications"
	googleauth "career-backend/internal/auth"
	"career-backend/internal/careers"
	"career-backend/internal/documents"
	"career-backend/internal/llm"
	openai "career-backend/internal/llm/openai"
	"career-backend/internal/parsing"
	"career-backend/internal/publishedresumes"
	"career-backend/internal/resumes"
	"career-backend/internal/shared/cache"
	"career-backend/internal/shared/config"
	"career-backend/internal/shared/server"
	"career-backend/internal/shared/storage/db"
	"career-backend/internal/shared/storage/object"
	localstore "career-backend/internal/shared/storage/object/local"
	s3store "career-backend/internal/shared/storage/object/s3"
	"career-backend/internal/usage"
	"career-backend/internal/users"
)

// App holds shared dependencies.
type App struct {
	Config config.Config
	Router *gin.Engine
	DB     *sql.DB
	Store  object.ObjectStore
	Cache  *cache.Cache

	CareersRepo      careers.Repo
	ResumesRepo      resumes.Repo
	PublishedRepo    publishedresumes.Repo
	ApplicationsRepo applications.Repo
	DocumentsRepo    documents.Repo
	UsersRepo        users.Repo
	UsageRepo        usage.Repo

	CareersService      *careers.Service
	ResumesService      *resumes.Service
	PublishService      *publishedresumes.Service
	ApplicationsService *applications.Service
	DocumentsService    *documents.Service
	ParsingService      *parsing.Service
	UsersService        *users.Service
	UsageService        *usage.Service
	GoogleAuth          *googleauth.GoogleService
}

// Build prepares shared dependencies and the router. In dev-like
// environments a missing or unreachable database falls back to
// in-memory repositories so the API still comes up.
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
		Cache:  buildCache(ctx, cfg),
	}

	if err := buildServices(app); err != nil {
		return nil, err
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:             app.Config,
		CareersHandler:     careers.NewHandler(app.CareersService),
		ResumesHandler:     resumes.NewHandler(app.ResumesService),
		PublishHandler:     publishedresumes.NewHandler(app.PublishService),
		ApplicationHandler: applications.NewHandler(app.ApplicationsService),
		ParsingHandler:     parsing.NewHandler(app.ParsingService),
		DocumentsHandler:   documents.NewHandler(app.DocumentsService),
		UsersHandler:       users.NewHandler(app.UsersService),
		UsageHandler:       usage.NewHandler(app.UsageService),
		GoogleAuth:         app.GoogleAuth,
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
	return sqlDB, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.AWSRegion) == "" || strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_REGION and S3_BUCKET")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Prefix)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildCache(ctx context.Context, cfg config.Config) *cache.Cache {
	if strings.TrimSpace(cfg.RedisAddr) == "" {
		return nil
	}
	c, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
	if err != nil {
		log.Printf("bootstrap: redis connect failed; public reads go uncached: %v", err)
		return nil
	}
	return c
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}

func buildServices(app *App) error {
	if app.DB != nil {
		app.CareersRepo = &careers.PGRepo{DB: app.DB}
		app.ResumesRepo = &resumes.PGRepo{DB: app.DB}
		app.PublishedRepo = &publishedresumes.PGRepo{DB: app.DB}
		app.ApplicationsRepo = &applications.PGRepo{DB: app.DB}
		app.DocumentsRepo = &documents.PGRepo{DB: app.DB}
		app.UsersRepo = &users.PGRepo{DB: app.DB}
		app.UsageRepo = &usage.PGRepo{DB: app.DB}
	} else {
		app.CareersRepo = careers.NewMemoryRepo()
		app.ResumesRepo = resumes.NewMemoryRepo()
		app.PublishedRepo = publishedresumes.NewMemoryRepo()
		app.ApplicationsRepo = applications.NewMemoryRepo()
		app.DocumentsRepo = documents.NewMemoryRepo()
		app.UsersRepo = users.NewMemoryRepo()
		app.UsageRepo = usage.NewMemoryRepo()
	}

	llmClient := llm.Client(llm.PlaceholderClient{})
	if app.Config.LLMProvider == "openai" && os.Getenv("OPENAI_API_KEY") != "" {
		timeout := time.Duration(app.Config.LLMTimeoutSeconds) * time.Second
		client, err := openai.NewClient(os.Getenv("OPENAI_API_KEY"), app.Config.LLMModel, timeout, app.Config.LLMMaxOutputTokens)
		if err != nil {
			return err
		}
		llmClient = client
	}

	app.CareersService = careers.NewService(app.CareersRepo)
	app.ResumesService = resumes.NewService(app.ResumesRepo)
	app.PublishService = publishedresumes.NewService(app.PublishedRepo, app.ResumesRepo, app.Cache)
	app.ApplicationsService = applications.NewService(app.ApplicationsRepo)
	app.DocumentsService = &documents.Service{
		Store:    app.Store,
		Repo:     app.DocumentsRepo,
		Provider: app.Config.ObjectStoreType,
	}
	app.UsageService = usage.NewService(app.UsageRepo)
	app.ParsingService = parsing.NewService(llmClient, app.DocumentsService, app.UsageService)
	app.UsersService = users.NewService(app.UsersRepo)
	app.GoogleAuth = googleauth.NewGoogleService(
		app.Config.GoogleClientID,
		app.Config.GoogleClientSecret,
		app.Config.GoogleRedirectURL,
		app.Config.UIRedirectURL,
		app.UsersService,
	)
	return nil
}
