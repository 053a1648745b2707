package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoute_With(t *testing.T) {
	assert.Equal(t, "/auth/provider/google", AuthProvider.With("google"))
	assert.Equal(t, "/auth/provider/:provider", AuthProvider.With())
	assert.Equal(t, "/auth/login", AuthLogin.With("ignored"))
}

func TestCallbackURL(t *testing.T) {
	assert.Equal(t, "/home", CallbackURL(""))
	assert.Equal(t, "https://learnhub.dev/home", CallbackURL("https://learnhub.dev/"))
}
