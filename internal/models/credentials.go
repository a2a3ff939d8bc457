package models

import (
	"golang.org/x/crypto/bcrypt"
)

// Credentials holds the password hash shared by patients and providers.
type Credentials struct {
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Never send password in JSON
}

// SetPassword hashes a password with the given bcrypt cost and stores it.
func (c *Credentials) SetPassword(password string, cost int) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return err
	}
	c.PasswordHash = string(hashedPassword)
	return nil
}

// CheckPassword compares a password with the stored hash
func (c *Credentials) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password))
	return err == nil
}
