// Package token signs and verifies the bearer session tokens. Signing uses
// the process RSA private key; verification needs only the public key and is
// pinned to RS256 so a token signed with any other method never validates.
package token

import (
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidSigningMethod = errors.New("unexpected signing method")
	ErrInvalidToken         = errors.New("invalid token")
)

// Claims is the signed claims bundle. The session id travels in "kid" and the
// subject id in "sub"; both are UUID strings.
type Claims struct {
	SessionID string `json:"kid"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *Claims) UserID() (uuid.UUID, error) {
	return uuid.Parse(c.Subject)
}

// SessionUUID parses the session id claim.
func (c *Claims) SessionUUID() (uuid.UUID, error) {
	return uuid.Parse(c.SessionID)
}

type Service struct {
	privateKey *rsa.PrivateKey
	publicKey  *rsa.PublicKey
	expiry     time.Duration
	issuer     string
}

// NewService parses the PEM key pair. Failing to parse either key is a
// configuration error; callers treat it as fatal at startup.
func NewService(privateKeyPEM, publicKeyPEM []byte, expiry time.Duration, issuer string) (*Service, error) {
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privateKeyPEM)
	if err != nil {
		return nil, err
	}

	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicKeyPEM)
	if err != nil {
		return nil, err
	}

	if expiry <= 0 {
		return nil, errors.New("token expiry must be positive")
	}

	return &Service{
		privateKey: privateKey,
		publicKey:  publicKey,
		expiry:     expiry,
		issuer:     issuer,
	}, nil
}

// Issue mints a fresh session id and returns it with the signed token.
func (s *Service) Issue(userID uuid.UUID) (string, uuid.UUID, error) {
	sessionID := uuid.New()
	now := time.Now()

	claims := Claims{
		SessionID: sessionID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(s.privateKey)
	if err != nil {
		return "", uuid.Nil, err
	}

	return signed, sessionID, nil
}

// Verify checks signature, method and expiry. Claims are never returned
// unless the whole token validated.
func (s *Service) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
				return nil, ErrInvalidSigningMethod
			}
			return s.publicKey, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// Expiry is the configured token lifetime; session store entries use it as
// their TTL.
func (s *Service) Expiry() time.Duration {
	return s.expiry
}
