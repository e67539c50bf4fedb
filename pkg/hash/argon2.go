// Package hash implements credential hashing with argon2id. Hashing uses a
// process-wide secret salt loaded once at startup; verification reads the
// salt and parameters back out of the encoded hash, so previously issued
// hashes keep verifying across parameter changes.
package hash

import (
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	// ErrInvalidHash marks a stored hash that cannot be decoded. This is an
	// internal error, not a failed authentication.
	ErrInvalidHash = errors.New("invalid hash format")
	// ErrIncompatibleVersion marks a hash produced by a different argon2
	// version.
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

type Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

var DefaultParams = Params{
	Memory:      64 * 1024, // 64 MB
	Iterations:  3,
	Parallelism: 2,
	KeyLength:   32,
}

// Hasher hashes and verifies passwords. The salt is secret process-wide
// configuration; it must never be logged.
type Hasher struct {
	salt   []byte
	params Params
}

func NewHasher(salt string) (*Hasher, error) {
	return NewHasherWithParams(salt, DefaultParams)
}

func NewHasherWithParams(salt string, params Params) (*Hasher, error) {
	if len(salt) < 8 {
		return nil, errors.New("hash salt must be at least 8 bytes")
	}
	if params.Memory == 0 || params.Iterations == 0 || params.Parallelism == 0 || params.KeyLength == 0 {
		return nil, errors.New("invalid argon2 parameters")
	}
	return &Hasher{salt: []byte(salt), params: params}, nil
}

// Hash derives the argon2id key for password under the configured salt and
// returns it in the standard encoded form:
// $argon2id$v=19$m=65536,t=3,p=2$<salt>$<hash>
func (h *Hasher) Hash(password string) string {
	key := argon2.IDKey(
		[]byte(password),
		h.salt,
		h.params.Iterations,
		h.params.Memory,
		h.params.Parallelism,
		h.params.KeyLength,
	)

	b64Salt := base64.RawStdEncoding.EncodeToString(h.salt)
	b64Key := base64.RawStdEncoding.EncodeToString(key)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, h.params.Memory, h.params.Iterations, h.params.Parallelism,
		b64Salt, b64Key,
	)
}

// Verify reports whether password matches encodedHash. A mismatch is
// (false, nil); a hash that cannot be decoded is an error so callers can log
// it apart from a wrong password.
func (h *Hasher) Verify(password, encodedHash string) (bool, error) {
	params, salt, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	otherKey := argon2.IDKey(
		[]byte(password),
		salt,
		params.Iterations,
		params.Memory,
		params.Parallelism,
		params.KeyLength,
	)

	return subtle.ConstantTimeCompare(key, otherKey) == 1, nil
}

func decodeHash(encodedHash string) (*Params, []byte, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 {
		return nil, nil, nil, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return nil, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, nil, ErrInvalidHash
	}
	if version != argon2.Version {
		return nil, nil, nil, ErrIncompatibleVersion
	}

	params := &Params{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return nil, nil, nil, ErrInvalidHash
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, nil, ErrInvalidHash
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, nil, ErrInvalidHash
	}
	params.KeyLength = uint32(len(key))

	return params, salt, key, nil
}
