package components

import (
	"context"

	"learnhub/internal/constants"
)

func GetCsrfToken(ctx context.Context) string {
	if csrfToken, ok := ctx.Value(constants.CsrfTokenContextKey).(string); ok {
		return csrfToken
	}
	return ""
}
