package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/careslot/hospital-booking/internal/handler"
    "github.com/careslot/hospital-booking/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check, which
// load balancers and monitoring can probe to verify the service is up.
func RegisterRoutes(e *echo.Echo) {
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while session endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Register, login and refresh do not require an existing session.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    g.POST("/refresh", a.Refresh)
    // Body-token logout: revokes the one refresh token named in the body,
    // no bearer required.  The revoke-everything variant lives on
    // /v1/logout behind JWTAuth below.
    g.POST("/logout", a.Logout)

    // /v1/me is available to any authenticated role.
    auth := e.Group("/v1", middleware.JWTAuth(jwtSecret))
    auth.GET("/me", a.Me)
    // Bearer-only logout: with no refresh token in the body the handler
    // falls back to the authenticated identity and revokes every session
    // that user holds, so this registration must sit behind JWTAuth.
    auth.POST("/logout", a.Logout)
}

// RegisterPublic registers unauthenticated browse endpoints.  The doctor
// listing is the page a visitor sees before registering, so it sits behind
// the Redis response cache when one is configured.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, cache echo.MiddlewareFunc) {
    if cache != nil {
        e.GET("/v1/doctors", p.ListDoctors, cache)
        return
    }
    e.GET("/v1/doctors", p.ListDoctors)
}
