package auth

import (
	"crypto/subtle"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/ashokahotel/hotel-booking-backend/internal/pkg/apperror"
)

// ErrInvalidCredentials is returned when the username/password pair does not match.
var ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid credentials")

// CredentialVerifier checks a login attempt. The deployment today has a single
// fixed admin account; a real credential store can replace this.
type CredentialVerifier interface {
	Verify(username, password string) error
}

// StaticCredentials verifies against one configured account. The password is
// compared against a bcrypt hash when one is provided, otherwise against the
// plain value in constant time.
type StaticCredentials struct {
	username     string
	password     string
	passwordHash string
}

// NewStaticCredentials creates a verifier for the fixed admin account.
func NewStaticCredentials(username, password, passwordHash string) *StaticCredentials {
	return &StaticCredentials{
		username:     username,
		password:     password,
		passwordHash: passwordHash,
	}
}

// Verify implements CredentialVerifier.
func (s *StaticCredentials) Verify(username, password string) error {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) == 1

	var passOK bool
	if s.passwordHash != "" {
		passOK = bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	} else {
		passOK = subtle.ConstantTimeCompare([]byte(password), []byte(s.password)) == 1
	}

	if !userOK || !passOK {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_BCRYPT.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
