package auth

import (
	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

// NewTOTPKey generates a fresh time-based one-time-password secret for an
// account. The returned key carries the otpauth:// provisioning URL for
// authenticator apps.
func NewTOTPKey(email string) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      "qmatrix",
		AccountName: email,
		Period:      30,
		Digits:      otp.DigitsSix,
	})
}

func VerifyTOTP(secret, code string) bool {
	if secret == "" || code == "" {
		return false
	}
	return totp.Validate(code, secret)
}
