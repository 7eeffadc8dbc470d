package handler

import (
    "net/http"
    "net/http/httptest"
    "strings"
    "testing"

    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/config"
)

// bookCtx builds an authenticated PATIENT request carrying the given JSON
// body.  Validation failures short-circuit before any repository call, so a
// zero-value handler is enough for these paths.
func bookCtx(body string) (echo.Context, *httptest.ResponseRecorder) {
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/patient/appointments", strings.NewReader(body))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", float64(1))
    return c, rec
}

func TestBookValidation(t *testing.T) {
    h := &PatientHandler{Cfg: config.Config{}}

    cases := []struct {
        name string
        body string
        want int
    }{
        {"malformed json", `{"doctor_id":`, http.StatusBadRequest},
        {"missing doctor", `{"date":"2030-01-15","time":"10:00"}`, http.StatusBadRequest},
        {"missing date", `{"doctor_id":3,"time":"10:00"}`, http.StatusBadRequest},
        {"missing time", `{"doctor_id":3,"date":"2030-01-15"}`, http.StatusBadRequest},
        {"bad date format", `{"doctor_id":3,"date":"15/01/2030","time":"10:00"}`, http.StatusBadRequest},
        {"bad time format", `{"doctor_id":3,"date":"2030-01-15","time":"25:00"}`, http.StatusBadRequest},
        {"past date", `{"doctor_id":3,"date":"2020-01-15","time":"10:00"}`, http.StatusBadRequest},
    }
    for _, tc := range cases {
        t.Run(tc.name, func(t *testing.T) {
            c, rec := bookCtx(tc.body)
            if err := h.Book(c); err != nil {
                t.Fatalf("handler error: %v", err)
            }
            if rec.Code != tc.want {
                t.Fatalf("status = %d, want %d; body %s", rec.Code, tc.want, rec.Body.String())
            }
        })
    }
}

func TestBookRequiresIdentity(t *testing.T) {
    h := &PatientHandler{Cfg: config.Config{}}
    e := echo.New()
    req := httptest.NewRequest(http.MethodPost, "/v1/patient/appointments", strings.NewReader(`{}`))
    req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
    rec := httptest.NewRecorder()
    if err := h.Book(e.NewContext(req, rec)); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusUnauthorized {
        t.Fatalf("status = %d, want 401", rec.Code)
    }
}

func TestListAppointmentsBadStatusFilter(t *testing.T) {
    h := &PatientHandler{Cfg: config.Config{}}
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/patient/appointments?status=cancelled", nil)
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)
    c.Set("user_id", float64(1))
    if err := h.ListAppointments(c); err != nil {
        t.Fatalf("handler error: %v", err)
    }
    if rec.Code != http.StatusBadRequest {
        t.Fatalf("status = %d, want 400", rec.Code)
    }
}
