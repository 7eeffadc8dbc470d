package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/utils"
)

func authedRequest(t *testing.T, secret string, userID uint64, role string) (echo.Context, *httptest.ResponseRecorder) {
    t.Helper()
    at, err := utils.NewAccessToken(secret, userID, role, 5)
    if err != nil {
        t.Fatalf("NewAccessToken: %v", err)
    }
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    req.Header.Set("Authorization", "Bearer "+at.Token)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestJWTAuthValidToken(t *testing.T) {
    c, rec := authedRequest(t, "unit-secret", 7, "PATIENT")

    called := false
    h := JWTAuth("unit-secret")(func(c echo.Context) error {
        called = true
        if role, _ := c.Get("role").(string); role != "PATIENT" {
            t.Errorf("role in context = %v, want PATIENT", c.Get("role"))
        }
        if c.Get("user_id") == nil {
            t.Error("user_id missing from context")
        }
        return c.NoContent(http.StatusOK)
    })
    if err := h(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if !called {
        t.Fatal("next handler never ran")
    }
    if rec.Code != http.StatusOK {
        t.Fatalf("status = %d, want 200", rec.Code)
    }
}

func TestJWTAuthRejections(t *testing.T) {
    e := echo.New()
    deny := JWTAuth("unit-secret")(func(c echo.Context) error {
        t.Fatal("next handler ran for a bad token")
        return nil
    })

    // no Authorization header at all
    req := httptest.NewRequest(http.MethodGet, "/", nil)
    rec := httptest.NewRecorder()
    if err := deny(e.NewContext(req, rec)); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("missing header: status = %d, want 401", rec.Code)
    }

    // token signed with a different secret
    c, rec2 := authedRequest(t, "other-secret", 7, "PATIENT")
    if err := deny(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec2.Code != http.StatusUnauthorized {
        t.Fatalf("wrong secret: status = %d, want 401", rec2.Code)
    }

    // garbage bearer value
    req3 := httptest.NewRequest(http.MethodGet, "/", nil)
    req3.Header.Set("Authorization", "Bearer not.a.jwt")
    rec3 := httptest.NewRecorder()
    if err := deny(e.NewContext(req3, rec3)); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec3.Code != http.StatusUnauthorized {
        t.Fatalf("garbage token: status = %d, want 401", rec3.Code)
    }
}
