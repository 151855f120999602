// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

// PasswordService defines the interface for password hashing, verification
// and strength checks used during registration and login.
type PasswordService interface {
	// HashPassword hashes a plain text password with bcrypt.
	HashPassword(password string) (string, error)

	// VerifyPassword compares a plain text password against a stored hash.
	VerifyPassword(hashedPassword, password string) error

	// ValidatePasswordStrength rejects passwords below the minimum
	// requirements before they are ever hashed.
	ValidatePasswordStrength(password string) error
}
