package constants

const (
	EnvDevelopment      = "development"
	EnvProduction       = "production"
	EnvTest             = "test"
	CsrfInputName       = "_csrf"
	CsrfHeaderName      = "X-CSRF-Token"
	CsrfCookieName      = "learnhub_csrf"
	CsrfTokenContextKey = "csrf.token"
	SessionCookieName   = "learnhub_session_id"
)
