package services

import (
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	const password = "study-hard!123"

	hashed, err := HashPassword(password)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if !strings.Contains(hashed, "$") {
		t.Fatalf("stored form missing salt separator: %q", hashed)
	}
	if hashed == password {
		t.Fatal("password stored in the clear")
	}

	ok, err := VerifyPassword(hashed, password)
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword(hashed, "wrong-password!123")
	if err != nil {
		t.Fatalf("VerifyPassword: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordSaltsAreUnique(t *testing.T) {
	const password = "study-hard!123"
	a, err := HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	b, err := HashPassword(password)
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Error("two hashes of the same password should differ by salt")
	}
}

func TestHashPasswordRejectsWeakPasswords(t *testing.T) {
	for _, weak := range []string{"", "short", "alllowercase", "123456", "nospecial1"} {
		if _, err := HashPassword(weak); err == nil {
			t.Errorf("HashPassword(%q) accepted a weak password", weak)
		}
	}
}

func TestVerifyPasswordBadStoredFormat(t *testing.T) {
	for _, stored := range []string{"", "nodollar", "a$b$c", "!!!$???"} {
		if _, err := VerifyPassword(stored, "anything"); err == nil {
			t.Errorf("VerifyPassword(%q) accepted malformed stored value", stored)
		}
	}
}
