package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/gin-gonic/gin"

	"filebox-backend/internal/files"
	"filebox-backend/internal/shared/config"
	"filebox-backend/internal/shared/server"
	"filebox-backend/internal/shared/storage/db"
	"filebox-backend/internal/shared/storage/object"
	localstore "filebox-backend/internal/shared/storage/object/local"
	s3store "filebox-backend/internal/shared/storage/object/s3"
)

// App holds shared dependencies. The two store handles are constructed once
// here and injected into the service; nothing reconfigures them afterwards.
type App struct {
	Config       config.Config
	Router       *gin.Engine
	DB           *sql.DB
	Store        object.ObjectStore
	FilesRepo    files.Repo
	FilesService *files.Service
	FilesHandler *files.Handler
}

// Build prepares shared dependencies and wires the router.
func Build(cfg config.Config) (*App, error) {
	if strings.TrimSpace(cfg.Env) == "" {
		cfg.Env = "dev"
	}
	if strings.TrimSpace(cfg.ObjectStoreType) == "" {
		cfg.ObjectStoreType = "local"
	}
	if strings.TrimSpace(cfg.RecordStoreType) == "" {
		cfg.RecordStoreType = "memory"
	}
	ctx := context.Background()

	store, err := buildStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	repo, sqlDB, err := buildRepo(ctx, cfg)
	if err != nil {
		return nil, err
	}

	svc := &files.Service{Store: store, Repo: repo}
	handler := files.NewHandler(svc)

	app := &App{
		Config:       cfg,
		DB:           sqlDB,
		Store:        store,
		FilesRepo:    repo,
		FilesService: svc,
		FilesHandler: handler,
	}

	app.Router = server.NewRouter(server.RouterDeps{
		Config:       cfg,
		FilesHandler: handler,
	})

	return app, nil
}

func buildStore(ctx context.Context, cfg config.Config) (object.ObjectStore, error) {
	switch cfg.ObjectStoreType {
	case "s3":
		if strings.TrimSpace(cfg.S3Bucket) == "" {
			return nil, fmt.Errorf("OBJECT_STORE=s3 requires AWS_S3_BUCKET_NAME")
		}
		return s3store.New(ctx, cfg.AWSRegion, cfg.S3Bucket, cfg.S3Endpoint, cfg.AWSAccessKeyID, cfg.AWSSecretKey)
	default:
		return localstore.New(cfg.LocalStoreDir), nil
	}
}

func buildRepo(ctx context.Context, cfg config.Config) (files.Repo, *sql.DB, error) {
	switch cfg.RecordStoreType {
	case "dynamodb":
		client, err := buildDynamoClient(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		noCreds := strings.TrimSpace(cfg.AWSAccessKeyID) == "" || strings.TrimSpace(cfg.AWSSecretKey) == ""
		return files.NewDynamoRepo(client, cfg.UploadTable, cfg.DownloadTable, noCreds), nil, nil
	case "postgres":
		sqlDB, err := buildPostgres(ctx, cfg)
		if err != nil {
			if isDevLike(cfg.Env) {
				log.Printf("bootstrap: postgres unavailable; using in-memory record store: %v", err)
				return files.NewMemoryRepo(), nil, nil
			}
			return nil, nil, err
		}
		return &files.PGRepo{DB: sqlDB}, sqlDB, nil
	default:
		return files.NewMemoryRepo(), nil, nil
	}
}

func buildDynamoClient(ctx context.Context, cfg config.Config) (*dynamodb.Client, error) {
	loadOpts := []func(*awsconfig.LoadOptions) error{}
	if cfg.AWSRegion != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.AWSRegion))
	}
	if cfg.AWSAccessKeyID != "" && cfg.AWSSecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg), nil
}

func buildPostgres(ctx context.Context, cfg config.Config) (*sql.DB, error) {
	opts := db.OptionsFromEnv(db.DefaultServerOptions())
	sqlDB, err := db.Connect(ctx, cfg.DatabaseURL, opts)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(ctx, sqlDB); err != nil {
		sqlDB.Close()
		return nil, err
	}
	return sqlDB, nil
}

func isDevLike(env string) bool {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "dev", "local":
		return true
	default:
		return false
	}
}
