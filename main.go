package main

import (
	"context"
	"database/sql"
	"embed"
	"log"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"learnhub/internal/app"
	"learnhub/internal/config"
	"learnhub/internal/constants"
	"learnhub/internal/identity"
	"learnhub/internal/repo"
)

//go:embed all:static
var staticFS embed.FS

func main() {
	if err := godotenv.Load(); err != nil {
		fiberlog.Warn("no .env file loaded: ", err)
	}

	cfg := config.NewConfigFromEnvironment(staticFS)
	if cfg.Env == constants.EnvDevelopment {
		fiberlog.SetLevel(fiberlog.LevelDebug)
	} else {
		fiberlog.SetLevel(fiberlog.LevelInfo)
	}

	db, err := sql.Open("postgres", cfg.DatabaseUrl)
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func(db *sql.DB) {
		err := db.Close()
		if err != nil {
			log.Fatalf("failed to close db: %+v", err)
		}
	}(db)

	if err := repo.EnsureSchema(context.Background(), db); err != nil {
		log.Fatalf("failed to create schema: %v", err)
	}
	cfg.Repo = repo.New(db)

	awsCfg, err := awsconfig.LoadDefaultConfig(context.Background())
	if err != nil {
		log.Fatalf("failed to load aws config: %v", err)
	}

	cfg.Authenticator = identity.NewCognito(cognito.NewFromConfig(awsCfg), identity.CognitoConfig{
		ClientId:     cfg.CognitoClientId,
		ClientSecret: cfg.CognitoClientSecret,
		Domain:       cfg.CognitoDomain,
	})

	a := app.New(&cfg)

	log.Fatal(a.Listen(cfg.Host + ":" + cfg.Port))
}
