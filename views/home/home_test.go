package home

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHome(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Home().Render(context.Background(), &buf))

	assert.Contains(t, buf.String(), "Welcome to LearnHub")
	assert.Contains(t, buf.String(), `href="/auth/login"`)
}
