package auth

import (
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
)

func TestTOTPRoundTrip(t *testing.T) {
	key, err := NewTOTPKey("admin@example.com")
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	if key.Secret() == "" {
		t.Fatal("expected non-empty secret")
	}
	if key.URL() == "" {
		t.Fatal("expected provisioning url")
	}

	code, err := totp.GenerateCode(key.Secret(), time.Now())
	if err != nil {
		t.Fatalf("generate code: %v", err)
	}
	if !VerifyTOTP(key.Secret(), code) {
		t.Fatal("expected current code to verify")
	}

	wrong := "000000"
	if wrong == code {
		wrong = "111111"
	}
	if VerifyTOTP(key.Secret(), wrong) {
		t.Fatal("expected wrong code to be rejected")
	}
}

func TestVerifyTOTPEmptyInputs(t *testing.T) {
	if VerifyTOTP("", "123456") {
		t.Fatal("expected empty secret to be rejected")
	}
	if VerifyTOTP("SECRET", "") {
		t.Fatal("expected empty code to be rejected")
	}
}
