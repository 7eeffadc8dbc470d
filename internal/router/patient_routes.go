package router

import (
    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/handler"
    "github.com/careslot/hospital-booking/internal/middleware"
)

// RegisterPatient registers patient-scoped endpoints under /v1.  All routes
// require a valid JWT and the PATIENT role.  Patients can book
// appointments, browse their own appointments and records, check remaining
// capacity for a doctor and day, and maintain their profile.
func RegisterPatient(e *echo.Echo, h *handler.PatientHandler, jwtSecret string, cache echo.MiddlewareFunc) {
    g := e.Group(
        "/v1/patient",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("PATIENT"),
    )
    g.POST("/appointments", h.Book)
    g.GET("/appointments", h.ListAppointments)
    g.GET("/records", h.ListRecords)
    g.GET("/dashboard", h.Dashboard)
    g.PUT("/profile", h.UpdateProfile)

    // The slot check is advisory and read-heavy, so it goes through the
    // response cache.  Booking itself always re-counts under a row lock.
    if cache != nil {
        g.GET("/check-slots/:doctor_id/:date", h.CheckSlots, cache)
        return
    }
    g.GET("/check-slots/:doctor_id/:date", h.CheckSlots)
}
