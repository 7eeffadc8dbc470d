package handler_test

// Integration tests for the bearer logout path, driven through the real
// router so the JWT middleware wiring on /v1/logout is covered.  They need
// a MySQL instance; set TEST_DB_DSN as for the repository tests.

import (
    "context"
    "database/sql"
    "fmt"
    "net/http"
    "net/http/httptest"
    "os"
    "testing"
    "time"

    _ "github.com/go-sql-driver/mysql"
    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/config"
    "github.com/careslot/hospital-booking/internal/handler"
    "github.com/careslot/hospital-booking/internal/model"
    "github.com/careslot/hospital-booking/internal/repository"
    "github.com/careslot/hospital-booking/internal/router"
    "github.com/careslot/hospital-booking/internal/utils"
)

func routedAuthServer(t *testing.T) (*echo.Echo, *sql.DB, *repository.UserRepo, *repository.TokenRepo, config.Config) {
    t.Helper()
    dsn := os.Getenv("TEST_DB_DSN")
    if dsn == "" {
        t.Skip("TEST_DB_DSN not set; skipping database integration tests")
    }
    db, err := sql.Open("mysql", dsn)
    if err != nil {
        t.Fatalf("open: %v", err)
    }
    ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
    defer cancel()
    if err := db.PingContext(ctx); err != nil {
        t.Fatalf("ping: %v", err)
    }
    t.Cleanup(func() { db.Close() })

    cfg := config.Config{
        JWTSecret:      "logout-it-secret",
        AccessTTLMin:   5,
        RefreshTTLDays: 1,
        BcryptCost:     4,
    }
    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    e := echo.New()
    router.RegisterAuth(e, handler.NewAuthHandler(cfg, users, tokens), cfg.JWTSecret)
    return e, db, users, tokens, cfg
}

func TestLogoutWithBearerRevokesAllSessions(t *testing.T) {
    e, db, users, tokens, cfg := routedAuthServer(t)
    ctx := context.Background()

    name := fmt.Sprintf("out_%d", time.Now().UnixNano())
    uid, err := users.Create(ctx, name, name+"@test.local", "secret1", model.RolePatient, nil, 4)
    if err != nil {
        t.Fatalf("create user: %v", err)
    }
    t.Cleanup(func() {
        db.Exec("DELETE FROM refresh_tokens WHERE user_id = ?", uid)
        db.Exec("DELETE FROM users WHERE id = ?", uid)
    })

    // Two live sessions; a bearer logout with no body token must end both.
    var hashes []string
    for i := 0; i < 2; i++ {
        rt, err := utils.NewRefreshToken(1)
        if err != nil {
            t.Fatalf("refresh token: %v", err)
        }
        h := utils.HashRefreshRaw(rt.Raw)
        if err := tokens.StoreRefresh(ctx, uid, h, rt.Exp); err != nil {
            t.Fatalf("store refresh: %v", err)
        }
        hashes = append(hashes, h)
    }

    at, err := utils.NewAccessToken(cfg.JWTSecret, uid, model.RolePatient, cfg.AccessTTLMin)
    if err != nil {
        t.Fatalf("access token: %v", err)
    }

    req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
    req.Header.Set("Authorization", "Bearer "+at.Token)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    if rec.Code != http.StatusNoContent {
        t.Fatalf("status = %d, want 204; body %s", rec.Code, rec.Body.String())
    }
    for _, h := range hashes {
        if _, err := tokens.ValidateRefresh(ctx, h); err != sql.ErrNoRows {
            t.Fatalf("refresh token still valid after bearer logout: err = %v", err)
        }
    }
}

func TestLogoutRouteRequiresBearer(t *testing.T) {
    e, _, _, _, _ := routedAuthServer(t)

    req := httptest.NewRequest(http.MethodPost, "/v1/logout", nil)
    rec := httptest.NewRecorder()
    e.ServeHTTP(rec, req)

    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("status = %d, want 401", rec.Code)
    }
}
