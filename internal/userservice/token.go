package userservice

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sushihentaime/globalaffair/internal/common"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

// TokenManager signs and verifies identity tokens. Verification needs no database round-trip: the
// claims carry everything a request needs to know about its user.
type TokenManager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

type tokenClaims struct {
	FullName        string `json:"name"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	ProfileImageURL string `json:"profileImageURL"`
	jwt.RegisteredClaims
}

func NewTokenManager(secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (tm *TokenManager) TTL() time.Duration {
	return tm.ttl
}

// Issue creates a signed token for u.
func (tm *TokenManager) Issue(u *User) (*Token, error) {
	now := tm.now()
	expiry := now.Add(tm.ttl)

	claims := tokenClaims{
		FullName:        u.FullName,
		Email:           u.Email,
		Role:            u.Role,
		ProfileImageURL: u.ProfileImageURL,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   u.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiry),
		},
	}

	plain, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(tm.secret)
	if err != nil {
		return nil, fmt.Errorf("could not sign token: %w", err)
	}

	return &Token{Plain: plain, Expiry: expiry}, nil
}

// Parse verifies the signature, algorithm and expiry of plain and returns the user it names.
// Every failure is reported as ErrInvalidToken.
func (tm *TokenManager) Parse(plain string) (*User, error) {
	var claims tokenClaims

	_, err := jwt.ParseWithClaims(plain, &claims, func(*jwt.Token) (any, error) {
		return tm.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(tm.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	id, err := common.ParseID(claims.Subject)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject", ErrInvalidToken)
	}

	return &User{
		ID:              id,
		FullName:        claims.FullName,
		Email:           claims.Email,
		Role:            claims.Role,
		ProfileImageURL: claims.ProfileImageURL,
	}, nil
}
