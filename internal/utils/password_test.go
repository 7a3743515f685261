package utils

import "testing"

func TestPasswordHashAndVerify(t *testing.T) {
	// MinCost keeps the test fast; production cost comes from config.
	hash, err := HashPassword("s3cret", 4)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if hash == "s3cret" {
		t.Fatal("password stored in the clear")
	}
	if !VerifyPassword(hash, "s3cret") {
		t.Error("correct password rejected")
	}
	if VerifyPassword(hash, "wrong") {
		t.Error("wrong password accepted")
	}
	if VerifyPassword("not-a-bcrypt-hash", "s3cret") {
		t.Error("garbage hash accepted")
	}
}
