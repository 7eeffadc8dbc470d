package repository

// Integration tests against a real MySQL instance.  Set TEST_DB_DSN to a
// database with the schema from migrations/ applied, e.g.
//
//   TEST_DB_DSN="root@tcp(localhost:3306)/hospital_test?parseTime=true&loc=UTC" go test ./internal/repository/
//
// Each test creates its own rows under unique names and removes them.

import (
    "context"
    "database/sql"
    "fmt"
    "os"
    "sync"
    "testing"
    "time"

    _ "github.com/go-sql-driver/mysql"

    "github.com/careslot/hospital-booking/internal/model"
)

func testDB(t *testing.T) *sql.DB {
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
    return db
}

func uniq(prefix string) string {
    return fmt.Sprintf("%s_%d", prefix, time.Now().UnixNano())
}

func mustCreatePatient(t *testing.T, db *sql.DB, users *UserRepo) uint64 {
    t.Helper()
    name := uniq("pat")
    id, err := users.Create(context.Background(), name, name+"@test.local", "secret1", model.RolePatient, nil, 4)
    if err != nil {
        t.Fatalf("create patient: %v", err)
    }
    t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = ?", id) })
    return id
}

func mustCreateDoctor(t *testing.T, db *sql.DB, slots uint32) uint64 {
    t.Helper()
    res, err := db.Exec(
        "INSERT INTO doctors (name, specialization, slots_per_day) VALUES (?,?,?)",
        uniq("dr"), "general", slots)
    if err != nil {
        t.Fatalf("create doctor: %v", err)
    }
    id, _ := res.LastInsertId()
    t.Cleanup(func() {
        db.Exec("DELETE FROM appointments WHERE doctor_id = ?", id)
        db.Exec("DELETE FROM doctors WHERE id = ?", id)
    })
    return uint64(id)
}

// book wraps AppointmentRepo.Book, the same path the booking handler uses.
func book(doctors *DoctorRepo, appts *AppointmentRepo, patientID, doctorID uint64, date time.Time) (uint64, error) {
    a := &model.Appointment{PatientID: patientID, DoctorID: doctorID, Date: date, Time: "10:00"}
    if err := appts.Book(context.Background(), doctors, a, true); err != nil {
        return 0, err
    }
    return a.ID, nil
}

func TestCreateUserDuplicates(t *testing.T) {
    db := testDB(t)
    users := NewUserRepo(db)
    ctx := context.Background()

    name := uniq("dup")
    id, err := users.Create(ctx, name, name+"@test.local", "secret1", model.RolePatient, nil, 4)
    if err != nil {
        t.Fatalf("first create: %v", err)
    }
    t.Cleanup(func() { db.Exec("DELETE FROM users WHERE id = ?", id) })

    if _, err := users.Create(ctx, name, uniq("other")+"@test.local", "secret1", model.RolePatient, nil, 4); err != ErrUsernameExists {
        t.Fatalf("retaken username: err = %v, want ErrUsernameExists", err)
    }
    if _, err := users.Create(ctx, uniq("other"), name+"@test.local", "secret1", model.RolePatient, nil, 4); err != ErrEmailExists {
        t.Fatalf("retaken email: err = %v, want ErrEmailExists", err)
    }
}

func TestBookingCapacity(t *testing.T) {
    db := testDB(t)
    users := NewUserRepo(db)
    doctors := NewDoctorRepo(db)
    appts := NewAppointmentRepo(db)

    patientID := mustCreatePatient(t, db, users)
    doctorID := mustCreateDoctor(t, db, 2)
    date := time.Now().UTC().AddDate(0, 0, 7)

    for i := 0; i < 2; i++ {
        if _, err := book(doctors, appts, patientID, doctorID, date); err != nil {
            t.Fatalf("booking %d: %v", i+1, err)
        }
    }
    if _, err := book(doctors, appts, patientID, doctorID, date); err != ErrNoSlots {
        t.Fatalf("over-capacity booking: err = %v, want ErrNoSlots", err)
    }

    // The same doctor on another day starts from a clean count.
    if _, err := book(doctors, appts, patientID, doctorID, date.AddDate(0, 0, 1)); err != nil {
        t.Fatalf("booking on a different day: %v", err)
    }
}

func TestBookingUnknownDoctor(t *testing.T) {
    db := testDB(t)
    users := NewUserRepo(db)
    doctors := NewDoctorRepo(db)
    appts := NewAppointmentRepo(db)

    patientID := mustCreatePatient(t, db, users)
    date := time.Now().UTC().AddDate(0, 0, 7)

    if _, err := book(doctors, appts, patientID, 0, date); err != ErrDoctorNotFound {
        t.Fatalf("unknown doctor: err = %v, want ErrDoctorNotFound", err)
    }
}

func TestBookingLastSlotConcurrent(t *testing.T) {
    db := testDB(t)
    users := NewUserRepo(db)
    doctors := NewDoctorRepo(db)
    appts := NewAppointmentRepo(db)

    patientID := mustCreatePatient(t, db, users)
    doctorID := mustCreateDoctor(t, db, 3)
    date := time.Now().UTC().AddDate(0, 0, 7)

    const attempts = 10
    var wg sync.WaitGroup
    errs := make([]error, attempts)
    for i := 0; i < attempts; i++ {
        wg.Add(1)
        go func(i int) {
            defer wg.Done()
            _, errs[i] = book(doctors, appts, patientID, doctorID, date)
        }(i)
    }
    wg.Wait()

    won, full := 0, 0
    for _, err := range errs {
        switch err {
        case nil:
            won++
        case ErrNoSlots:
            full++
        default:
            t.Fatalf("unexpected booking error: %v", err)
        }
    }
    if won != 3 || full != attempts-3 {
        t.Fatalf("won=%d full=%d, want exactly 3 winners out of %d", won, full, attempts)
    }
}

func TestDecideIsTerminal(t *testing.T) {
    db := testDB(t)
    users := NewUserRepo(db)
    doctors := NewDoctorRepo(db)
    appts := NewAppointmentRepo(db)
    ctx := context.Background()

    patientID := mustCreatePatient(t, db, users)
    doctorID := mustCreateDoctor(t, db, 5)
    date := time.Now().UTC().AddDate(0, 0, 7)

    id, err := book(doctors, appts, patientID, doctorID, date)
    if err != nil {
        t.Fatalf("book: %v", err)
    }

    a, err := appts.Decide(ctx, id, model.StatusApproved)
    if err != nil {
        t.Fatalf("approve: %v", err)
    }
    if a.Status != model.StatusApproved {
        t.Fatalf("status after approve = %q", a.Status)
    }

    if _, err := appts.Decide(ctx, id, model.StatusRejected); err != ErrAlreadyDecided {
        t.Fatalf("second decision: err = %v, want ErrAlreadyDecided", err)
    }
    if _, err := appts.Decide(ctx, 0, model.StatusApproved); err != ErrAppointmentNotFound {
        t.Fatalf("missing appointment: err = %v, want ErrAppointmentNotFound", err)
    }
}

func TestRejectionFreesSlot(t *testing.T) {
    db := testDB(t)
    users := NewUserRepo(db)
    doctors := NewDoctorRepo(db)
    appts := NewAppointmentRepo(db)
    ctx := context.Background()

    patientID := mustCreatePatient(t, db, users)
    doctorID := mustCreateDoctor(t, db, 1)
    date := time.Now().UTC().AddDate(0, 0, 7)

    id, err := book(doctors, appts, patientID, doctorID, date)
    if err != nil {
        t.Fatalf("first booking: %v", err)
    }
    if _, err := book(doctors, appts, patientID, doctorID, date); err != ErrNoSlots {
        t.Fatalf("full day: err = %v, want ErrNoSlots", err)
    }

    if _, err := appts.Decide(ctx, id, model.StatusRejected); err != nil {
        t.Fatalf("reject: %v", err)
    }
    // The rejected appointment no longer occupies the slot.
    if _, err := book(doctors, appts, patientID, doctorID, date); err != nil {
        t.Fatalf("rebooking after rejection: %v", err)
    }
}

func TestUpdateSlotsMissingDoctor(t *testing.T) {
    db := testDB(t)
    doctors := NewDoctorRepo(db)
    if err := doctors.UpdateSlots(context.Background(), 0, 5); err != ErrDoctorNotFound {
        t.Fatalf("err = %v, want ErrDoctorNotFound", err)
    }
}
