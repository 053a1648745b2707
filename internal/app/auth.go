package app

import (
	"context"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	fiberlog "github.com/gofiber/fiber/v2/log"

	"learnhub/internal/form"
	"learnhub/internal/identity"
	"learnhub/internal/navigation"
	"learnhub/internal/repo"
	"learnhub/internal/validation"
	"learnhub/internal/view"
	loginviews "learnhub/views/login"
)

type AuthHandlers struct {
	authenticator identity.Authenticator
	repo          repo.Repository
	policy        form.ErrorPolicy
}

func (h *AuthHandlers) LoginForm(c *fiber.Ctx) error {
	ctrl := form.NewLogin(h.forwardSignIn, form.WithErrorPolicy(h.policy))
	return view.RenderComponent(c, fiber.StatusOK, loginviews.Login(ctrl, identity.Providers))
}

func (h *AuthHandlers) SubmitLogin(c *fiber.Ctx) error {
	var body loginviews.LoginForm
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctrl := form.NewLogin(h.forwardSignIn, form.WithErrorPolicy(h.policy))
	ctrl.Load(body.Values())

	if !submitted(c, ctrl) {
		return view.RenderComponent(c, fiber.StatusUnprocessableEntity, loginviews.Login(ctrl, identity.Providers))
	}

	return view.Redirect(c, navigation.Home.String())
}

func (h *AuthHandlers) Register(c *fiber.Ctx) error {
	ctrl := form.NewRegistration(h.forwardSignUp(""), form.WithErrorPolicy(h.policy))
	return view.RenderComponent(c, fiber.StatusOK, loginviews.Register(ctrl, identity.Providers))
}

func (h *AuthHandlers) SubmitRegistration(c *fiber.Ctx) error {
	var body loginviews.RegistrationForm
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctrl := form.NewRegistration(h.forwardSignUp(strings.Clone(c.IP())), form.WithErrorPolicy(h.policy))
	ctrl.Load(body.Values())

	if !submitted(c, ctrl) {
		return view.RenderComponent(c, fiber.StatusUnprocessableEntity, loginviews.Register(ctrl, identity.Providers))
	}

	return view.Redirect(c, navigation.AuthLogin.String())
}

func (h *AuthHandlers) ForgotPasswordForm(c *fiber.Ctx) error {
	ctrl := form.NewForgotPassword(h.forwardForgotPassword, form.WithErrorPolicy(h.policy))
	return view.RenderComponent(c, fiber.StatusOK, loginviews.ForgotPassword(ctrl, false))
}

func (h *AuthHandlers) SubmitForgotPassword(c *fiber.Ctx) error {
	var body loginviews.ForgotPasswordForm
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	ctrl := form.NewForgotPassword(h.forwardForgotPassword, form.WithErrorPolicy(h.policy))
	ctrl.Load(body.Values())

	if !submitted(c, ctrl) {
		return view.RenderComponent(c, fiber.StatusUnprocessableEntity, loginviews.ForgotPassword(ctrl, false))
	}

	return view.RenderComponent(c, fiber.StatusOK, loginviews.ForgotPassword(ctrl, true))
}

// ProviderSignIn sends the browser to the identity provider, which returns it to /home
// on the origin the request came in on.
func (h *AuthHandlers) ProviderSignIn(c *fiber.Ctx) error {
	target, err := h.authenticator.ProviderURL(c.Params("provider"), navigation.CallbackURL(origin(c)))
	if errors.Is(err, identity.ErrUnknownProvider) {
		return fiber.ErrNotFound
	}
	if err != nil {
		return err
	}

	return c.Redirect(target, fiber.StatusFound)
}

// submitted runs the controller and reports whether the values went out with no errors.
func submitted(c *fiber.Ctx, ctrl *form.Controller) bool {
	outcome := ctrl.Submit(c.UserContext())
	if outcome == form.Skipped {
		fiberlog.Debug("form rejected, fields: ", ctrl.Errors().Fields())
	}
	return outcome == form.Forwarded && len(ctrl.Errors()) == 0
}

func (h *AuthHandlers) forwardSignIn(ctx context.Context, values map[string]string) error {
	return h.authenticator.SignIn(ctx, identity.SignInRequest{
		Method:      identity.MethodCredentials,
		Email:       values[validation.FieldEmail],
		Password:    values[validation.FieldPassword],
		CallbackURL: navigation.Home.String(),
	})
}

// forwardSignUp creates the account with the identity provider, then records it locally.
func (h *AuthHandlers) forwardSignUp(ip string) form.Forwarder {
	return func(ctx context.Context, values map[string]string) error {
		err := h.authenticator.SignUp(ctx, identity.Registration{
			Name:     values[validation.FieldName],
			Email:    values[validation.FieldEmail],
			Password: values[validation.FieldPassword],
			IP:       ip,
		})
		if err != nil {
			return err
		}

		if h.repo == nil {
			return nil
		}
		_, err = h.repo.UpsertAccount(ctx, values[validation.FieldName], values[validation.FieldEmail])
		return err
	}
}

func (h *AuthHandlers) forwardForgotPassword(ctx context.Context, values map[string]string) error {
	return h.authenticator.ForgotPassword(ctx, values[validation.FieldEmail])
}
