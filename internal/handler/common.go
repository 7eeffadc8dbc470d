package handler

import (
    "errors"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
)

// getUserID extracts the authenticated user id from the echo context.  The
// JWT middleware stores claims untyped, so the subject can arrive in several
// numeric shapes depending on how the token was decoded.
func getUserID(c echo.Context) (uint64, error) {
    v := c.Get("user_id")
    switch t := v.(type) {
    case uint64:
        return t, nil
    case int:
        return uint64(t), nil
    case int64:
        return uint64(t), nil
    case float64:
        return uint64(t), nil
    case string:
        if n, err := strconv.ParseUint(t, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, errors.New("invalid user_id in context")
}

// parseDate parses a "YYYY-MM-DD" value into a date-only UTC time.
func parseDate(s string) (time.Time, error) {
    return time.Parse("2006-01-02", s)
}

// validClockTime reports whether s is a well-formed "HH:MM" 24h time.
func validClockTime(s string) bool {
    _, err := time.Parse("15:04", s)
    return err == nil
}

// today returns the current UTC date truncated to midnight, for comparing
// against date-only appointment values.
func today() time.Time {
    now := time.Now().UTC()
    return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}
