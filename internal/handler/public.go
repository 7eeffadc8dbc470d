package handler

import (
    "net/http"
    "time"

    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/repository"
)

// PublicHandler serves the unauthenticated read-only surface used when
// picking a doctor before logging in.
type PublicHandler struct {
    Doctors *repository.DoctorRepo
}

// NewPublicHandler constructs a PublicHandler.
func NewPublicHandler(doctors *repository.DoctorRepo) *PublicHandler {
    if doctors == nil {
        panic("nil repository passed to NewPublicHandler")
    }
    return &PublicHandler{Doctors: doctors}
}

// ListDoctors handles GET /v1/doctors.  The listing sits behind the Redis
// response cache, so repeated hits within the TTL never touch MySQL.
func (h *PublicHandler) ListDoctors(c echo.Context) error {
    docs, err := h.Doctors.ListAll(c.Request().Context())
    if err != nil {
        return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
    }
    out := make([]echo.Map, 0, len(docs))
    for _, d := range docs {
        out = append(out, echo.Map{
            "id":             d.ID,
            "name":           d.Name,
            "specialization": d.Specialization,
            "slots_per_day":  d.SlotsPerDay,
            "created_at":     d.CreatedAt.UTC().Format(time.RFC3339),
        })
    }
    return c.JSON(http.StatusOK, echo.Map{"doctors": out})
}
