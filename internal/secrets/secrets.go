package secrets

import (
	"os"

	"learnhub/internal/constants"
)

type Secrets interface {
	DatabaseUrl() string
	CognitoClientId() string
	CognitoClientSecret() string
}

// New reads secrets from the environment. In the test environment the database URL comes
// from TEST_DATABASE_URL.
func New(env string) Secrets {
	dbUrlKey := "DATABASE_URL"
	if env == constants.EnvTest {
		dbUrlKey = "TEST_DATABASE_URL"
	}

	return &secrets{
		databaseUrl:         os.Getenv(dbUrlKey),
		cognitoClientId:     os.Getenv("COGNITO_CLIENT_ID"),
		cognitoClientSecret: os.Getenv("COGNITO_CLIENT_SECRET"),
	}
}

type secrets struct {
	databaseUrl         string
	cognitoClientId     string
	cognitoClientSecret string
}

func (s secrets) DatabaseUrl() string {
	return s.databaseUrl
}

func (s secrets) CognitoClientId() string {
	return s.cognitoClientId
}

func (s secrets) CognitoClientSecret() string {
	return s.cognitoClientSecret
}
