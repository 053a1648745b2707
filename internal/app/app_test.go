package app

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"learnhub/internal/config"
	"learnhub/internal/form"
	"learnhub/internal/identity"
	"learnhub/internal/repo/model"
)

type fakeAuthenticator struct {
	signIns chan identity.SignInRequest
	signUps chan identity.Registration
	resets  chan string
	err     error
}

func newFakeAuthenticator(err error) *fakeAuthenticator {
	return &fakeAuthenticator{
		signIns: make(chan identity.SignInRequest, 4),
		signUps: make(chan identity.Registration, 4),
		resets:  make(chan string, 4),
		err:     err,
	}
}

func (f *fakeAuthenticator) SignIn(_ context.Context, req identity.SignInRequest) error {
	f.signIns <- req
	return f.err
}

func (f *fakeAuthenticator) SignUp(_ context.Context, reg identity.Registration) error {
	f.signUps <- reg
	return f.err
}

func (f *fakeAuthenticator) ForgotPassword(_ context.Context, email string) error {
	f.resets <- email
	return f.err
}

func (f *fakeAuthenticator) ProviderURL(provider string, callbackURL string) (string, error) {
	return identity.NewCognito(nil, identity.CognitoConfig{ClientId: "client", Domain: "auth.learnhub.dev"}).
		ProviderURL(provider, callbackURL)
}

type fakeRepo struct {
	mu       sync.Mutex
	accounts []model.Accounts
}

func (r *fakeRepo) UpsertAccount(_ context.Context, name, email string) (model.Accounts, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account := model.Accounts{Name: name, Email: email, CreatedAt: time.Now()}
	r.accounts = append(r.accounts, account)
	return account, nil
}

func (r *fakeRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.accounts)
}

func receive[T any](t *testing.T, ch chan T) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("authenticator was not called")
		var zero T
		return zero
	}
}

func nothing[T any](t *testing.T, ch chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected authenticator call: %+v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

type testServer struct {
	app  *fiber.App
	auth *fakeAuthenticator
	repo *fakeRepo
}

func newTestServer(t *testing.T, authErr error, policy form.ErrorPolicy) *testServer {
	t.Helper()
	auth := newFakeAuthenticator(authErr)
	r := &fakeRepo{}
	cfg := config.NewTestConfig(r, auth)
	cfg.AuthErrorPolicy = policy
	return &testServer{app: New(cfg), auth: auth, repo: r}
}

var csrfInput = regexp.MustCompile(`name="_csrf" value="([^"]+)"`)

// session fetches a form page and returns its cookies and CSRF token.
func (s *testServer) session(t *testing.T, path string) ([]*http.Cookie, string) {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	match := csrfInput.FindStringSubmatch(string(body))
	require.Len(t, match, 2, "no csrf token in %s", path)

	return resp.Cookies(), match[1]
}

// post submits values to a form page the way a browser would.
func (s *testServer) post(t *testing.T, path string, values url.Values) (*http.Response, string) {
	t.Helper()
	cookies, token := s.session(t, path)
	values.Set("_csrf", token)

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := s.app.Test(req)
	require.NoError(t, err)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestRoot(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/auth/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "no-store", resp.Header.Get(fiber.HeaderCacheControl))

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `name="email"`)
	assert.Contains(t, string(body), `type="password"`)
	assert.Contains(t, string(body), `href="/auth/provider/google"`)
}

func TestSubmitLogin_Invalid(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, body := s.post(t, "/auth/login", url.Values{
		"email":    {"bad-email"},
		"password": {"1234567"},
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Invalid email format")
	assert.Contains(t, body, "Minimum password length is 8")
	assert.Contains(t, body, `value="bad-email"`)
	assert.NotContains(t, body, "1234567")
	nothing(t, s.auth.signIns)
}

func TestSubmitLogin_Valid(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, _ := s.post(t, "/auth/login", url.Values{
		"email":    {"user@site.com"},
		"password": {"password123"},
		"remember": {"on"},
	})

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/home", resp.Header.Get(fiber.HeaderLocation))
	assert.Equal(t, "/home", resp.Header.Get("HX-Location"))

	req := receive(t, s.auth.signIns)
	assert.Equal(t, identity.SignInRequest{
		Method:      identity.MethodCredentials,
		Email:       "user@site.com",
		Password:    "password123",
		CallbackURL: "/home",
	}, req)
	nothing(t, s.auth.signIns)
}

func TestSubmitLogin_AuthenticatorErrorIsDiscarded(t *testing.T) {
	s := newTestServer(t, errors.New("Incorrect email or password"), form.DiscardForwardErrors)

	resp, _ := s.post(t, "/auth/login", url.Values{
		"email":    {"user@site.com"},
		"password": {"password123"},
	})

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	receive(t, s.auth.signIns)
}

func TestSubmitLogin_AuthenticatorErrorIsSurfaced(t *testing.T) {
	s := newTestServer(t, errors.New("Incorrect email or password"), form.SurfaceForwardErrors)

	resp, body := s.post(t, "/auth/login", url.Values{
		"email":    {"user@site.com"},
		"password": {"password123"},
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Incorrect email or password")
	receive(t, s.auth.signIns)
}

func TestSubmitLogin_MissingCsrfToken(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	values := url.Values{"email": {"user@site.com"}, "password": {"password123"}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(values.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)

	resp, err := s.app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	nothing(t, s.auth.signIns)
}

func TestSubmitRegistration_SingleWordName(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, body := s.post(t, "/auth/signup", url.Values{
		"name":     {"Jo"},
		"email":    {"a@b.com"},
		"password": {"longenough"},
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "full name must contain at least two words")
	assert.NotContains(t, body, "Invalid email format")
	assert.Contains(t, body, `value="a@b.com"`)
	nothing(t, s.auth.signUps)
}

func TestSubmitRegistration_Valid(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, _ := s.post(t, "/auth/signup", url.Values{
		"name":     {"Ada Lovelace"},
		"email":    {"ada@site.com"},
		"password": {"password123"},
	})

	assert.Equal(t, fiber.StatusFound, resp.StatusCode)
	assert.Equal(t, "/auth/login", resp.Header.Get(fiber.HeaderLocation))

	reg := receive(t, s.auth.signUps)
	assert.Equal(t, "Ada Lovelace", reg.Name)
	assert.Equal(t, "ada@site.com", reg.Email)
	assert.Equal(t, "password123", reg.Password)

	assert.Eventually(t, func() bool { return s.repo.count() == 1 }, time.Second, 10*time.Millisecond)
}

func TestSubmitRegistration_FailedSignUpIsNotRecorded(t *testing.T) {
	s := newTestServer(t, errors.New("An account with this email already exists"), form.SurfaceForwardErrors)

	resp, body := s.post(t, "/auth/signup", url.Values{
		"name":     {"Ada Lovelace"},
		"email":    {"ada@site.com"},
		"password": {"password123"},
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "An account with this email already exists")
	assert.Equal(t, 0, s.repo.count())
}

func TestSubmitForgotPassword(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, body := s.post(t, "/auth/forgot_password", url.Values{"email": {"ada@site.com"}})

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, body, "If an account exists")
	assert.Equal(t, "ada@site.com", receive(t, s.auth.resets))
}

func TestSubmitForgotPassword_Invalid(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, body := s.post(t, "/auth/forgot_password", url.Values{"email": {"ada"}})

	assert.Equal(t, fiber.StatusUnprocessableEntity, resp.StatusCode)
	assert.Contains(t, body, "Invalid email format")
	nothing(t, s.auth.resets)
}

func TestProviderSignIn(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "http://learnhub.test/auth/provider/google", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get(fiber.HeaderLocation))
	require.NoError(t, err)
	assert.Equal(t, "auth.learnhub.dev", location.Host)
	assert.Equal(t, "Google", location.Query().Get("identity_provider"))
	assert.Equal(t, "http://learnhub.test/home", location.Query().Get("redirect_uri"))
}

func TestProviderSignIn_Unknown(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/auth/provider/myspace", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHome(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/home", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNotFound(t *testing.T) {
	s := newTestServer(t, nil, form.DiscardForwardErrors)

	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, "/nope", nil))

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}
