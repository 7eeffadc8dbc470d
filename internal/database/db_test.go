package database

import "testing"

func TestDSN(t *testing.T) {
    got := DSN("app", "pw", "db.internal", "3306", "hospital")
    want := "app:pw@tcp(db.internal:3306)/hospital?charset=utf8mb4&parseTime=true&loc=UTC"
    if got != want {
        t.Fatalf("DSN = %q, want %q", got, want)
    }
}

func TestDSNEmptyPassword(t *testing.T) {
    got := DSN("root", "", "localhost", "3306", "hospital")
    want := "root@tcp(localhost:3306)/hospital?charset=utf8mb4&parseTime=true&loc=UTC"
    if got != want {
        t.Fatalf("DSN = %q, want %q", got, want)
    }
}
