// Package identity talks to the external identity provider. Sessions and tokens stay with
// the provider; this package only starts the flows.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// MethodCredentials is the sign-in method for email and password.
const MethodCredentials = "credentials"

var ErrUnknownProvider = errors.New("identity: unknown provider")

type SignInRequest struct {
	// Method is MethodCredentials or a provider id.
	Method      string
	Email       string
	Password    string
	CallbackURL string
}

type Registration struct {
	Name     string
	Email    string
	Password string
	// IP is passed to the provider for its risk checks.
	IP string
}

type Authenticator interface {
	SignIn(ctx context.Context, req SignInRequest) error
	SignUp(ctx context.Context, reg Registration) error
	ForgotPassword(ctx context.Context, email string) error
	// ProviderURL returns where to send the browser to sign in with a third-party provider.
	ProviderURL(provider string, callbackURL string) (string, error)
}

// Provider is a third-party sign-in option shown under the forms.
type Provider struct {
	ID   string
	Name string
	// IdentityProvider is the name the hosted UI knows the provider by.
	IdentityProvider string
	Icon             string
}

var Providers = []Provider{
	{ID: "google", Name: "Google", IdentityProvider: "Google", Icon: "/static/icons/google.svg"},
	{ID: "facebook", Name: "Facebook", IdentityProvider: "Facebook", Icon: "/static/icons/facebook.svg"},
	{ID: "apple", Name: "Apple", IdentityProvider: "SignInWithApple", Icon: "/static/icons/apple.svg"},
}

func LookupProvider(id string) (Provider, error) {
	for _, p := range Providers {
		if strings.EqualFold(p.ID, id) {
			return p, nil
		}
	}
	return Provider{}, fmt.Errorf("%w: %q", ErrUnknownProvider, id)
}

// Error is a provider failure with a message that is safe to show to the user.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}
