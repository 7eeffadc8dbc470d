package router

// This file registers doctor-specific routes.  Doctors read their own
// schedule, browse the records they have written and append new records
// for patients they have seen.  Appointment decisions stay with admins.

import (
    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/handler"
    "github.com/careslot/hospital-booking/internal/middleware"
)

// RegisterDoctor registers DOCTOR-scoped endpoints under /v1/doctor.  All
// routes require a valid JWT and the DOCTOR role; each handler then
// resolves the doctor profile linked to the authenticated account.
func RegisterDoctor(e *echo.Echo, h *handler.DoctorHandler, jwtSecret string) {
    g := e.Group(
        "/v1/doctor",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("DOCTOR"),
    )
    g.GET("/dashboard", h.Dashboard)
    g.GET("/appointments", h.ListAppointments)
    g.GET("/records", h.ListRecords)
    g.GET("/patients/:id/records", h.PatientRecords)
    g.POST("/patients/:id/records", h.AddRecord)
}
