package middleware

// identity.go provides the userID extraction used by the rate-limit key
// builder's user-based strategies. Public invite-page requests carry no
// token, so "guest" is the identity for everything unauthenticated.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the context populated by
// JWTAuth. It returns "guest" when no user is authenticated.
func userID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "guest"
	}
	switch id := v.(type) {
	case string:
		if id != "" {
			return id
		}
	case float64: // jwt.MapClaims decodes numbers as float64
		return fmt.Sprintf("%.0f", id)
	case uint64:
		return fmt.Sprintf("%d", id)
	}
	return "guest"
}
