package app

import (
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/favicon"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/session"
	"github.com/gofiber/storage/postgres/v3"

	"learnhub/internal/config"
	"learnhub/internal/constants"
	"learnhub/internal/navigation"
	"learnhub/internal/view"
	errorviews "learnhub/views/errors"
	homeviews "learnhub/views/home"
)

func New(config *config.Config) *fiber.App {
	fiberlog.Debugf("Starting app in %q environment", config.Env)

	app := fiber.New(fiber.Config{
		AppName:      "LearnHub 0.1.0",
		ErrorHandler: errorHandler,
	})

	sessionStore := session.New(session.Config{
		Expiration:     24 * time.Hour,
		KeyLookup:      "cookie:" + constants.SessionCookieName,
		CookieSecure:   config.CookieSecure,
		CookieHTTPOnly: true,
		Storage:        newStorage(config),
	})

	app.Use(logger.New(logger.Config{
		DisableColors: config.DisableLogColors,
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: config.EnableStackTrace,
	}))
	app.Use(compress.New())
	app.Use(helmet.New())
	app.Use(favicon.New())
	app.Use(navigation.Static.String(), filesystem.New(filesystem.Config{
		Root:       http.FS(config.StaticFS),
		PathPrefix: "static",
	}))

	// Combine two CSRF extractors: use form field as default
	// so forms work without JS, with header as fallback.
	csrfFromForm := csrf.CsrfFromForm(constants.CsrfInputName)
	csrfFromHeader := csrf.CsrfFromHeader(constants.CsrfHeaderName)

	app.Use(csrf.New(csrf.Config{
		CookieSecure: config.CookieSecure,
		Session:      sessionStore,
		Extractor: func(c *fiber.Ctx) (string, error) {
			token, err := csrfFromForm(c)
			if err == nil {
				return token, nil
			}

			if errors.Is(err, csrf.ErrMissingForm) {
				return csrfFromHeader(c)
			}

			return "", err
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			fiberlog.Error("CSRF error: ", err.Error())
			return view.RenderComponent(c, fiber.StatusForbidden,
				errorviews.GenericError(fiber.StatusForbidden, "Forbidden"))
		},
		ContextKey: constants.CsrfTokenContextKey,
		CookieName: constants.CsrfCookieName,
	}))

	auth := AuthHandlers{
		authenticator: config.Authenticator,
		repo:          config.Repo,
		policy:        config.AuthErrorPolicy,
	}

	app.Get(navigation.Root.String(), func(c *fiber.Ctx) error {
		return c.Redirect(navigation.AuthLogin.String(), fiber.StatusFound)
	})

	app.Get(navigation.AuthLogin.String(), NoStore, auth.LoginForm)
	app.Post(navigation.AuthLogin.String(), NoStore, auth.SubmitLogin)
	app.Get(navigation.AuthSignUp.String(), NoStore, auth.Register)
	app.Post(navigation.AuthSignUp.String(), NoStore, auth.SubmitRegistration)
	app.Get(navigation.ForgotPassword.String(), NoStore, auth.ForgotPasswordForm)
	app.Post(navigation.ForgotPassword.String(), NoStore, auth.SubmitForgotPassword)
	app.Get(navigation.AuthProvider.String(), auth.ProviderSignIn)

	app.Get(navigation.Home.String(), func(c *fiber.Ctx) error {
		return view.RenderComponent(c, fiber.StatusOK, homeviews.Home())
	})

	return app
}

// newStorage keeps sessions in Postgres when a database is configured, in memory otherwise.
func newStorage(config *config.Config) fiber.Storage {
	if config.DatabaseUrl == "" {
		return nil
	}

	return postgres.New(postgres.Config{
		ConnectionURI: config.DatabaseUrl,
		Table:         "fiber_storage",
	})
}
