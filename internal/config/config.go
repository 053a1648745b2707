package config

import (
	"embed"
	"io/fs"
	"os"

	"learnhub/internal/constants"
	"learnhub/internal/form"
	"learnhub/internal/identity"
	"learnhub/internal/repo"
	"learnhub/internal/secrets"
)

// Config is the global config for the app router. Host and Port are needed for absolute URL generation.
type Config struct {
	Env                 string
	Host                string
	Port                string
	Repo                repo.Repository
	Authenticator       identity.Authenticator
	CognitoClientId     string
	CognitoClientSecret string
	CognitoDomain       string
	CookieSecure        bool
	DatabaseUrl         string
	DisableLogColors    bool
	EnableStackTrace    bool
	AuthErrorPolicy     form.ErrorPolicy
	StaticFS            fs.FS
}

// NewConfigFromEnvironment reads the environment. Repo and Authenticator are left for the
// caller, since they need live connections.
func NewConfigFromEnvironment(staticFS fs.FS) Config {
	env := os.Getenv("ENV")
	s := secrets.New(env)

	return Config{
		Env:                 env,
		Host:                os.Getenv("HOST"),
		Port:                getenv("PORT", "3000"),
		CognitoClientId:     s.CognitoClientId(),
		CognitoClientSecret: s.CognitoClientSecret(),
		CognitoDomain:       os.Getenv("COGNITO_DOMAIN"),
		CookieSecure:        env == constants.EnvProduction,
		DatabaseUrl:         s.DatabaseUrl(),
		DisableLogColors:    env == constants.EnvProduction,
		EnableStackTrace:    env == constants.EnvDevelopment,
		AuthErrorPolicy:     form.ParseErrorPolicy(os.Getenv("AUTH_ERROR_POLICY")),
		StaticFS:            staticFS,
	}
}

// noStatic is an empty file system; every static request misses.
var noStatic embed.FS

// NewTestConfig uses in-memory sessions and no static files.
func NewTestConfig(r repo.Repository, auth identity.Authenticator) *Config {
	return &Config{
		Env:              constants.EnvTest,
		Repo:             r,
		Authenticator:    auth,
		DisableLogColors: true,
		StaticFS:         noStatic,
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
