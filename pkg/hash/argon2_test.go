package hash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHasher(t *testing.T) *Hasher {
	t.Helper()
	// Small parameters keep the test fast; correctness does not depend on cost.
	h, err := NewHasherWithParams("test-salt-0123", Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		KeyLength:   32,
	})
	require.NoError(t, err)
	return h
}

func TestHashAndVerify(t *testing.T) {
	h := newTestHasher(t)

	encoded := h.Hash("correct horse battery staple")
	assert.True(t, strings.HasPrefix(encoded, "$argon2id$"))

	ok, err := h.Verify("correct horse battery staple", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestVerifyWrongPassword(t *testing.T) {
	h := newTestHasher(t)

	encoded := h.Hash("password-one")

	ok, err := h.Verify("password-two", encoded)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestHashIsDeterministicPerSalt(t *testing.T) {
	h := newTestHasher(t)

	first := h.Hash("same-password")
	second := h.Hash("same-password")
	assert.Equal(t, first, second)

	other, err := NewHasherWithParams("another-salt-456", Params{
		Memory:      8 * 1024,
		Iterations:  1,
		Parallelism: 1,
		KeyLength:   32,
	})
	require.NoError(t, err)
	assert.NotEqual(t, first, other.Hash("same-password"))
}

func TestVerifyMalformedHash(t *testing.T) {
	h := newTestHasher(t)

	cases := []struct {
		name    string
		encoded string
	}{
		{"empty", ""},
		{"not a hash", "plaintext"},
		{"wrong algorithm", "$bcrypt$v=19$m=8192,t=1,p=1$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$m=8192,t=1,p=1"},
		{"bad base64 salt", "$argon2id$v=19$m=8192,t=1,p=1$!!!$aGFzaA"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Verify("whatever", tc.encoded)
			assert.ErrorIs(t, err, ErrInvalidHash)
		})
	}
}

func TestVerifyIncompatibleVersion(t *testing.T) {
	h := newTestHasher(t)

	_, err := h.Verify("whatever", "$argon2id$v=18$m=8192,t=1,p=1$c2FsdA$aGFzaA")
	assert.ErrorIs(t, err, ErrIncompatibleVersion)
}

func TestVerifySurvivesParameterChange(t *testing.T) {
	old := newTestHasher(t)
	encoded := old.Hash("stable-password")

	// A hasher configured with different costs still verifies hashes produced
	// under the old parameters, because they are embedded in the hash.
	current, err := NewHasherWithParams("test-salt-0123", Params{
		Memory:      16 * 1024,
		Iterations:  2,
		Parallelism: 2,
		KeyLength:   32,
	})
	require.NoError(t, err)

	ok, err := current.Verify("stable-password", encoded)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNewHasherRejectsShortSalt(t *testing.T) {
	_, err := NewHasher("short")
	assert.Error(t, err)
}
