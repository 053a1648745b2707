package identity

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCognito struct {
	initiateAuth   *cognito.InitiateAuthInput
	signUp         *cognito.SignUpInput
	forgotPassword *cognito.ForgotPasswordInput
	err            error
}

func (f *fakeCognito) InitiateAuth(_ context.Context, params *cognito.InitiateAuthInput, _ ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error) {
	f.initiateAuth = params
	return &cognito.InitiateAuthOutput{}, f.err
}

func (f *fakeCognito) SignUp(_ context.Context, params *cognito.SignUpInput, _ ...func(*cognito.Options)) (*cognito.SignUpOutput, error) {
	f.signUp = params
	return &cognito.SignUpOutput{}, f.err
}

func (f *fakeCognito) ForgotPassword(_ context.Context, params *cognito.ForgotPasswordInput, _ ...func(*cognito.Options)) (*cognito.ForgotPasswordOutput, error) {
	f.forgotPassword = params
	return &cognito.ForgotPasswordOutput{}, f.err
}

func TestCognito_SignIn(t *testing.T) {
	fake := &fakeCognito{}
	c := NewCognito(fake, CognitoConfig{ClientId: "client"})

	err := c.SignIn(context.Background(), SignInRequest{
		Method:      MethodCredentials,
		Email:       "user@site.com",
		Password:    "password123",
		CallbackURL: "/home",
	})

	require.NoError(t, err)
	require.NotNil(t, fake.initiateAuth)
	assert.Equal(t, types.AuthFlowTypeUserPasswordAuth, fake.initiateAuth.AuthFlow)
	assert.Equal(t, "client", aws.ToString(fake.initiateAuth.ClientId))
	assert.Equal(t, map[string]string{"USERNAME": "user@site.com", "PASSWORD": "password123"}, fake.initiateAuth.AuthParameters)
}

func TestCognito_SignInWithSecret(t *testing.T) {
	fake := &fakeCognito{}
	c := NewCognito(fake, CognitoConfig{ClientId: "client", ClientSecret: "secret"})

	require.NoError(t, c.SignIn(context.Background(), SignInRequest{Method: MethodCredentials, Email: "user@site.com", Password: "password123"}))

	assert.Equal(t, c.secretHash("user@site.com"), fake.initiateAuth.AuthParameters["SECRET_HASH"])
	assert.NotEmpty(t, fake.initiateAuth.AuthParameters["SECRET_HASH"])
}

func TestCognito_SignInRejectsProviderMethod(t *testing.T) {
	fake := &fakeCognito{}
	c := NewCognito(fake, CognitoConfig{ClientId: "client"})

	err := c.SignIn(context.Background(), SignInRequest{Method: "google"})

	assert.Error(t, err)
	assert.Nil(t, fake.initiateAuth)
}

func TestCognito_SignInTranslatesErrors(t *testing.T) {
	fake := &fakeCognito{err: &types.NotAuthorizedException{Message: aws.String("Incorrect username or password.")}}
	c := NewCognito(fake, CognitoConfig{ClientId: "client"})

	err := c.SignIn(context.Background(), SignInRequest{Method: MethodCredentials, Email: "user@site.com", Password: "password123"})

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "NotAuthorized", idErr.Code)
	assert.Equal(t, "Incorrect email or password", err.Error())

	var original *types.NotAuthorizedException
	assert.ErrorAs(t, err, &original)
}

func TestCognito_SignUp(t *testing.T) {
	fake := &fakeCognito{}
	c := NewCognito(fake, CognitoConfig{ClientId: "client"})

	err := c.SignUp(context.Background(), Registration{
		Name:     "  Ada Lovelace ",
		Email:    "ada@site.com",
		Password: "password123",
		IP:       "10.0.0.1",
	})

	require.NoError(t, err)
	assert.Equal(t, "ada@site.com", aws.ToString(fake.signUp.Username))
	assert.Nil(t, fake.signUp.SecretHash)
	require.Len(t, fake.signUp.UserAttributes, 2)
	assert.Equal(t, "Ada Lovelace", aws.ToString(fake.signUp.UserAttributes[1].Value))
	assert.Equal(t, "10.0.0.1", aws.ToString(fake.signUp.UserContextData.IpAddress))
}

func TestCognito_SignUpExistingUser(t *testing.T) {
	fake := &fakeCognito{err: &types.UsernameExistsException{}}
	c := NewCognito(fake, CognitoConfig{ClientId: "client"})

	err := c.SignUp(context.Background(), Registration{Name: "Ada Lovelace", Email: "ada@site.com", Password: "password123"})

	assert.EqualError(t, err, "An account with this email already exists")
}

func TestCognito_ForgotPassword(t *testing.T) {
	fake := &fakeCognito{}
	c := NewCognito(fake, CognitoConfig{ClientId: "client", ClientSecret: "secret"})

	require.NoError(t, c.ForgotPassword(context.Background(), "ada@site.com"))

	assert.Equal(t, "ada@site.com", aws.ToString(fake.forgotPassword.Username))
	assert.NotNil(t, fake.forgotPassword.SecretHash)
}

func TestTranslate_GenericAPIError(t *testing.T) {
	err := translate(&smithy.GenericAPIError{Code: "InternalErrorException", Message: "boom"})

	var idErr *Error
	require.ErrorAs(t, err, &idErr)
	assert.Equal(t, "InternalErrorException", idErr.Code)
}

func TestTranslate_NetworkError(t *testing.T) {
	err := translate(errors.New("dial tcp: timeout"))

	assert.EqualError(t, err, "Authentication service unavailable")
}

func TestCognito_ProviderURL(t *testing.T) {
	c := NewCognito(&fakeCognito{}, CognitoConfig{ClientId: "client", Domain: "auth.learnhub.dev"})

	raw, err := c.ProviderURL("google", "http://localhost:3000/home")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "https", u.Scheme)
	assert.Equal(t, "auth.learnhub.dev", u.Host)
	assert.Equal(t, "/oauth2/authorize", u.Path)
	assert.Equal(t, "Google", u.Query().Get("identity_provider"))
	assert.Equal(t, "http://localhost:3000/home", u.Query().Get("redirect_uri"))
	assert.Equal(t, "code", u.Query().Get("response_type"))
	assert.Equal(t, "client", u.Query().Get("client_id"))
}

func TestCognito_ProviderURLUnknown(t *testing.T) {
	c := NewCognito(&fakeCognito{}, CognitoConfig{ClientId: "client", Domain: "https://auth.learnhub.dev/"})

	_, err := c.ProviderURL("myspace", "http://localhost:3000/home")

	assert.ErrorIs(t, err, ErrUnknownProvider)
}
