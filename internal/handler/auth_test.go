package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/config"
)

func postJSON(target, body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    return e.NewContext(req, rec), rec
}

func TestRegisterValidation(t *testing.T) {
    h := &AuthHandler{Cfg: config.Config{}}

    cases := []struct {
        name string
        body string
    }{
        {"malformed json", `{"username":`},
        {"missing email", `{"username":"u1","password":"secret1"}`},
        {"blank username", `{"username":"  ","email":"a@b.test","password":"secret1"}`},
        {"short password", `{"username":"u1","email":"a@b.test","password":"abc"}`},
        {"mismatched confirmation", `{"username":"u1","email":"a@b.test","password":"secret1","confirm_password":"secret2"}`},
        {"bad date of birth", `{"username":"u1","email":"a@b.test","password":"secret1","date_of_birth":"yesterday"}`},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := postJSON("/v1/auth/register", tc.body)
            if err := h.Register(c); err != nil {
                t.Fatalf("handler error: %v", err)
            }
            if rec.Code != http.StatusBadRequest {
                t.Fatalf("status = %d, want 400; body %s", rec.Code, rec.Body.String())
            }
        })
    }
}

func TestLogoutWithoutTokenOrIdentity(t *testing.T) {
    h := &AuthHandler{Cfg: config.Config{}}

    // No refresh token in the body and no authenticated identity in the
    // context leaves nothing to revoke.
    c, rec := postJSON("/v1/auth/logout", `{}`)
    if err := h.Logout(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}

func TestLoginValidation(t *testing.T) {
    h := &AuthHandler{Cfg: config.Config{}}

    c, rec := postJSON("/v1/auth/login", `{"username":""}`)
    if err := h.Login(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}
