package helpers

import "testing"

func TestPasswordHashRoundtrip(t *testing.T) {
	hash, err := HashPassword("hunter2hunter2")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if hash == "hunter2hunter2" {
		t.Fatal("hash equals plaintext")
	}
	if !CompareHashAndPassword(hash, "hunter2hunter2") {
		t.Fatal("correct password rejected")
	}
	if CompareHashAndPassword(hash, "wrong-password") {
		t.Fatal("wrong password accepted")
	}
}
