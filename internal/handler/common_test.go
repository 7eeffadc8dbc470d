package handler

import (
    "net/http"
    "net/http/httptest"
    "testing"
    "time"

    "github.com/labstack/echo/v4"
)

func TestParseDate(t *testing.T) {
    d, err := parseDate("2026-09-01")
    if err != nil {
        t.Fatalf("parseDate: %v", err)
    }
    if d.Year() != 2026 || d.Month() != time.September || d.Day() != 1 {
        t.Fatalf("parsed %v", d)
    }
    for _, bad := range []string{"", "01-09-2026", "2026-13-01", "2026-02-30", "tomorrow"} {
        if _, err := parseDate(bad); err == nil {
            t.Errorf("parseDate(%q) accepted", bad)
        }
    }
}

func TestValidClockTime(t *testing.T) {
    for _, good := range []string{"00:00", "09:30", "23:59"} {
        if !validClockTime(good) {
            t.Errorf("validClockTime(%q) = false", good)
        }
    }
    for _, bad := range []string{"", "24:00", "9:99", "noon", "12:30:00"} {
        if validClockTime(bad) {
            t.Errorf("validClockTime(%q) = true", bad)
        }
    }
}

func TestGetUserID(t *testing.T) {
    e := echo.New()
    newCtx := func() echo.Context {
        req := httptest.NewRequest(http.MethodGet, "/", nil)
        return e.NewContext(req, httptest.NewRecorder())
    }

    c := newCtx()
    if _, err := getUserID(c); err == nil {
        t.Fatal("empty context yielded a user id")
    }

    // JWT numeric claims decode to float64
    c = newCtx()
    c.Set("user_id", float64(42))
    if id, err := getUserID(c); err != nil || id != 42 {
        t.Fatalf("float64: id=%d err=%v", id, err)
    }

    c = newCtx()
    c.Set("user_id", uint64(7))
    if id, err := getUserID(c); err != nil || id != 7 {
        t.Fatalf("uint64: id=%d err=%v", id, err)
    }

    c = newCtx()
    c.Set("user_id", "19")
    if id, err := getUserID(c); err != nil || id != 19 {
        t.Fatalf("string: id=%d err=%v", id, err)
    }

    c = newCtx()
    c.Set("user_id", "not-a-number")
    if _, err := getUserID(c); err == nil {
        t.Fatal("non-numeric string yielded a user id")
    }
}
