package utils

import "testing"

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("s3cret-pass", 4)
    if err != nil {
        t.Fatalf("HashPassword: %v", err)
    }
    if hash == "s3cret-pass" {
        t.Fatal("hash equals the plaintext")
    }
    if !VerifyPassword(hash, "s3cret-pass") {
        t.Fatal("correct password rejected")
    }
    if VerifyPassword(hash, "wrong-pass") {
        t.Fatal("wrong password accepted")
    }
}

func TestHashPasswordClampsCost(t *testing.T) {
    // Out-of-range costs must still produce a verifiable hash.
    hash, err := HashPassword("pw123456", 99)
    if err != nil {
        t.Fatalf("HashPassword: %v", err)
    }
    if !VerifyPassword(hash, "pw123456") {
        t.Fatal("hash from clamped cost does not verify")
    }
}

func TestVerifyPasswordBadHash(t *testing.T) {
    if VerifyPassword("not-a-bcrypt-hash", "anything") {
        t.Fatal("garbage hash accepted")
    }
}
