// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService guards operator passwords and the export password.
type PasswordService interface {
	// ValidatePasswordStrength is checked before anything is hashed.
	ValidatePasswordStrength(password string) error
	HashPassword(password string) (string, error)

	// VerifyPassword returns nil only when password matches hashedPassword.
	VerifyPassword(hashedPassword, password string) error
}
