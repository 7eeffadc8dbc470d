package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
)

func roleContext(role interface{}) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    if role != nil {
        c.Set("role", role)
    }
    return c, rec
}

func TestRequireRole(t *testing.T) {
    ok := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

    cases := []struct {
        name    string
        allowed []string
        role    interface{}
        want    int
    }{
        {"matching role", []string{"ADMIN"}, "ADMIN", http.StatusOK},
        {"one of several", []string{"ADMIN", "DOCTOR"}, "DOCTOR", http.StatusOK},
        {"wrong role", []string{"ADMIN"}, "PATIENT", http.StatusForbidden},
        {"missing role", []string{"ADMIN"}, nil, http.StatusForbidden},
        {"non-string role", []string{"ADMIN"}, 42, http.StatusForbidden},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := roleContext(tc.role)
            if err := RequireRole(tc.allowed...)(ok)(c); err != nil {
                t.Fatalf("handler error: %v", err)
            }
            if rec.Code != tc.want {
                t.Fatalf("status = %d, want %d", rec.Code, tc.want)
            }
        })
    }
}

func TestCurrentUserID(t *testing.T) {
    c, _ := roleContext(nil)
    if got := currentUserID(c); got != "anon" {
        t.Fatalf("anonymous id = %q, want anon", got)
    }
    c.Set("user_id", float64(1234))
    if got := currentUserID(c); got != "1234" {
        t.Fatalf("float64 id = %q, want 1234", got)
    }
    c.Set("user_id", "77")
    if got := currentUserID(c); got != "77" {
        t.Fatalf("string id = %q, want 77", got)
    }
}
