package router

import (
    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/handler"
    "github.com/careslot/hospital-booking/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, h *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )

    // ---- Appointments ----
    g.GET("/appointments", h.ListAppointments)
    g.POST("/appointments/:id/approve", h.Approve)
    g.POST("/appointments/:id/reject", h.Reject)

    // ---- Doctors ----
    g.GET("/doctors", h.ListDoctors)
    g.POST("/doctors", h.CreateDoctor)
    g.PUT("/doctors/:id/slots", h.SetSlots)

    // ---- Patients and records ----
    g.GET("/patients", h.ListPatients)
    g.GET("/patients/:id/records", h.PatientRecords)
    g.POST("/patients/:id/records", h.AddRecord)

    // ---- Dashboard ----
    g.GET("/dashboard", h.Dashboard)
}
