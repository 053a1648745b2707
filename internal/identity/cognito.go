package identity

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	cognito "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"github.com/aws/smithy-go"
)

// CognitoAPI is the part of the Cognito client used here.
type CognitoAPI interface {
	InitiateAuth(ctx context.Context, params *cognito.InitiateAuthInput, optFns ...func(*cognito.Options)) (*cognito.InitiateAuthOutput, error)
	SignUp(ctx context.Context, params *cognito.SignUpInput, optFns ...func(*cognito.Options)) (*cognito.SignUpOutput, error)
	ForgotPassword(ctx context.Context, params *cognito.ForgotPasswordInput, optFns ...func(*cognito.Options)) (*cognito.ForgotPasswordOutput, error)
}

type CognitoConfig struct {
	ClientId     string
	ClientSecret string
	// Domain is the hosted UI domain, e.g. "auth.example.com" or a full https URL.
	Domain string
}

type Cognito struct {
	client CognitoAPI
	config CognitoConfig
}

func NewCognito(client CognitoAPI, config CognitoConfig) *Cognito {
	return &Cognito{client: client, config: config}
}

func (c *Cognito) SignIn(ctx context.Context, req SignInRequest) error {
	if req.Method != MethodCredentials {
		return &Error{Code: "UnsupportedMethod", Message: "Unsupported sign-in method"}
	}

	params := map[string]string{
		"USERNAME": req.Email,
		"PASSWORD": req.Password,
	}
	if hash := c.secretHash(req.Email); hash != "" {
		params["SECRET_HASH"] = hash
	}

	_, err := c.client.InitiateAuth(ctx, &cognito.InitiateAuthInput{
		AuthFlow:       types.AuthFlowTypeUserPasswordAuth,
		ClientId:       aws.String(c.config.ClientId),
		AuthParameters: params,
	})
	if err != nil {
		return translate(err)
	}
	return nil
}

func (c *Cognito) SignUp(ctx context.Context, reg Registration) error {
	input := &cognito.SignUpInput{
		ClientId: aws.String(c.config.ClientId),
		Password: aws.String(reg.Password),
		Username: aws.String(reg.Email),
		UserAttributes: []types.AttributeType{
			{
				Name:  aws.String("email"),
				Value: aws.String(reg.Email),
			},
			{
				Name:  aws.String("name"),
				Value: aws.String(strings.TrimSpace(reg.Name)),
			},
		},
	}
	if hash := c.secretHash(reg.Email); hash != "" {
		input.SecretHash = aws.String(hash)
	}
	if reg.IP != "" {
		input.UserContextData = &types.UserContextDataType{
			IpAddress: aws.String(reg.IP),
		}
	}

	if _, err := c.client.SignUp(ctx, input); err != nil {
		return translate(err)
	}
	return nil
}

func (c *Cognito) ForgotPassword(ctx context.Context, email string) error {
	input := &cognito.ForgotPasswordInput{
		ClientId: aws.String(c.config.ClientId),
		Username: aws.String(email),
	}
	if hash := c.secretHash(email); hash != "" {
		input.SecretHash = aws.String(hash)
	}

	if _, err := c.client.ForgotPassword(ctx, input); err != nil {
		return translate(err)
	}
	return nil
}

// ProviderURL builds the hosted UI authorize URL for a federated provider.
func (c *Cognito) ProviderURL(provider string, callbackURL string) (string, error) {
	p, err := LookupProvider(provider)
	if err != nil {
		return "", err
	}

	base := c.config.Domain
	if !strings.Contains(base, "://") {
		base = "https://" + base
	}

	u, err := url.Parse(strings.TrimRight(base, "/") + "/oauth2/authorize")
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("client_id", c.config.ClientId)
	q.Set("identity_provider", p.IdentityProvider)
	q.Set("redirect_uri", callbackURL)
	q.Set("response_type", "code")
	q.Set("scope", "openid email profile")
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// secretHash is required by app clients that have a secret: base64(HMAC-SHA256(secret, username + clientId)).
func (c *Cognito) secretHash(username string) string {
	if c.config.ClientSecret == "" {
		return ""
	}
	mac := hmac.New(sha256.New, []byte(c.config.ClientSecret))
	mac.Write([]byte(username + c.config.ClientId))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func translate(err error) error {
	var (
		notAuthorized *types.NotAuthorizedException
		notFound      *types.UserNotFoundException
		notConfirmed  *types.UserNotConfirmedException
		exists        *types.UsernameExistsException
		badPassword   *types.InvalidPasswordException
		tooMany       *types.TooManyRequestsException
		limit         *types.LimitExceededException
	)

	switch {
	case errors.As(err, &notAuthorized), errors.As(err, &notFound):
		return &Error{Code: "NotAuthorized", Message: "Incorrect email or password", Err: err}
	case errors.As(err, &notConfirmed):
		return &Error{Code: "UserNotConfirmed", Message: "Please confirm your email address first", Err: err}
	case errors.As(err, &exists):
		return &Error{Code: "UsernameExists", Message: "An account with this email already exists", Err: err}
	case errors.As(err, &badPassword):
		return &Error{Code: "InvalidPassword", Message: "Password does not meet the requirements", Err: err}
	case errors.As(err, &tooMany), errors.As(err, &limit):
		return &Error{Code: "TooManyRequests", Message: "Too many attempts, please try again later", Err: err}
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return &Error{Code: apiErr.ErrorCode(), Message: "Authentication failed, please try again", Err: err}
	}

	return &Error{Code: "Unknown", Message: "Authentication service unavailable", Err: err}
}
