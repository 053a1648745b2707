// Package navigation names the routes the pages link to.
package navigation

import "strings"

type Route string

const (
	Root           Route = "/"
	Home           Route = "/home"
	AuthLogin      Route = "/auth/login"
	AuthSignUp     Route = "/auth/signup"
	ForgotPassword Route = "/auth/forgot_password"
	AuthProvider   Route = "/auth/provider/:provider"
	Static         Route = "/static"
)

func (r Route) String() string {
	return string(r)
}

// With fills the ":name" params of the route in order.
func (r Route) With(params ...string) string {
	parts := strings.Split(string(r), "/")
	i := 0
	for j, part := range parts {
		if strings.HasPrefix(part, ":") && i < len(params) {
			parts[j] = params[i]
			i++
		}
	}
	return strings.Join(parts, "/")
}

// CallbackURL is where the identity provider sends the user after signing in.
// origin is scheme and host with no trailing slash; an empty origin gives a relative URL.
func CallbackURL(origin string) string {
	return strings.TrimRight(origin, "/") + Home.String()
}
