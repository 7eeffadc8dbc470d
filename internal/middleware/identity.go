package middleware

// identity.go holds the helper the rate limiter uses to key buckets by
// authenticated user.  It tolerates the different shapes the "user_id"
// context value can take depending on whether JWTAuth ran.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID renders the authenticated user id as a string for rate-limit
// keys.  Unauthenticated requests share the "anon" bucket per IP.
func currentUserID(c echo.Context) string {
    switch v := c.Get("user_id").(type) {
    case nil:
        return "anon"
    case string:
        if v == "" {
            return "anon"
        }
        return v
    case float64:
        return fmt.Sprintf("%.0f", v)
    default:
        return fmt.Sprint(v)
    }
}
