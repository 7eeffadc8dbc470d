package main // Entry point package

import (
    "log"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"
    echomw "github.com/labstack/echo/v4/middleware"

    "github.com/careslot/hospital-booking/internal/config"
    "github.com/careslot/hospital-booking/internal/database"
    "github.com/careslot/hospital-booking/internal/handler"
    "github.com/careslot/hospital-booking/internal/middleware"
    "github.com/careslot/hospital-booking/internal/queue"
    "github.com/careslot/hospital-booking/internal/repository"
    "github.com/careslot/hospital-booking/internal/router"
)

func main() {
    // .env is optional; real deployments set the environment directly.
    _ = godotenv.Load()

    cfg := config.Load()

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    // Redis backs the rate limiter and the response cache.  A nil client
    // means Redis is unreachable; the service runs without either.
    rdb := config.NewRedisClient()
    if rdb == nil {
        log.Println("redis unavailable; rate limiting and caching disabled")
    }

    users := repository.NewUserRepo(db)
    tokens := repository.NewTokenRepo(db)
    doctors := repository.NewDoctorRepo(db)
    appts := repository.NewAppointmentRepo(db)
    records := repository.NewRecordRepo(db)

    authH := handler.NewAuthHandler(cfg, users, tokens)
    patientH := handler.NewPatientHandler(cfg, users, doctors, appts, records)
    adminH := handler.NewAdminHandler(cfg, users, doctors, appts, records)
    doctorH := handler.NewDoctorHandler(users, doctors, appts, records)
    publicH := handler.NewPublicHandler(doctors)

    e := echo.New()
    e.HideBanner = true
    e.Use(echomw.Recover())
    e.Use(echomw.Logger())

    if rdb != nil {
        if rl := config.LoadRateLimitConfig(); rl.Enabled {
            e.Use(middleware.NewTokenBucket(rl, rdb))
        }
    }
    var cache echo.MiddlewareFunc
    if rdb != nil {
        if cc := config.LoadCacheConfig(); cc.Enabled {
            cache = middleware.NewRedisCache(cc, rdb)
        }
    }

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authH, cfg.JWTSecret)
    router.RegisterPublic(e, publicH, cache)
    router.RegisterPatient(e, patientH, cfg.JWTSecret, cache)
    router.RegisterAdmin(e, adminH, cfg.JWTSecret)
    router.RegisterDoctor(e, doctorH, cfg.JWTSecret)

    // The decision consumer appends approved/rejected notifications to the
    // audit log.  It reconnects on its own, so a broker outage at startup
    // is not fatal.
    go func() {
        if err := queue.StartDecisionConsumer(); err != nil {
            log.Printf("decision consumer stopped: %v", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s)", addr, cfg.Env)
    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
