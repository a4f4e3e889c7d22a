package utils

import "testing"

func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := HashPassword("M@hallAdmin1")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if err := ComparePassword(string(hashed), "M@hallAdmin1"); err != nil {
		t.Errorf("hash should verify against its own password: %v", err)
	}
	if err := ComparePassword(string(hashed), "something-else"); err == nil {
		t.Error("wrong password should not verify")
	}
}
