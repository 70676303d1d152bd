package userservice

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 12

// set hashes pwd and keeps the plain text only for the lifetime of the request.
func (p *Password) set(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcryptCost)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	p.Plain, p.Hash = pwd, hash

	return nil
}

// compare reports whether pwd matches the stored hash. A user document without a hash never
// matches.
func (p *Password) compare(pwd string) (bool, error) {
	if len(p.Hash) == 0 {
		return false, nil
	}

	switch err := bcrypt.CompareHashAndPassword(p.Hash, []byte(pwd)); {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword), errors.Is(err, bcrypt.ErrPasswordTooLong):
		return false, nil
	default:
		return false, err
	}
}
