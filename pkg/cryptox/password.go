package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2id parameters. Tuned so a burst of concurrent logins stays CPU-bound
// rather than exhausting memory.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the derived key
	saltLength  = 16        // Length of the per-hash salt
)

var (
	// ErrMismatch is returned by Verify when the password does not match.
	ErrMismatch = errors.New("cryptox: password does not match")

	// ErrInvalidHash is returned by Verify when the encoded hash cannot be
	// parsed. Malformed input is an error, never a panic.
	ErrInvalidHash = errors.New("cryptox: invalid hash format")
)

// Hasher performs salted one-way password hashing and verification.
//
// The pepper is an application-wide secret mixed into every hash. It is
// injected at construction rather than read from ambient state so tests and
// sibling processes can carry their own.
type Hasher struct {
	pepper string
}

// NewHasher returns a Hasher using the given pepper. Callers normally load
// the pepper via LoadOrGeneratePepper.
func NewHasher(pepper string) *Hasher {
	return &Hasher{pepper: pepper}
}

// Hash generates a PHC-format Argon2id hash string including salt and
// parameters. A fresh random salt is drawn per call, so hashing the same
// password twice yields different encodings.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	key := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iterations,
		memory,
		parallelism,
		keyLength,
	)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify compares a plaintext password against a PHC-style Argon2id hash.
// It returns nil on match, ErrMismatch on a wrong password and a wrapped
// ErrInvalidHash when the encoded hash is malformed. The key comparison is
// constant-time.
func (h *Hasher) Verify(password, encodedHash string) error {
	// PHC format: $argon2id$v=19$m=X,t=Y,p=Z$salt$hash
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[0] != "" {
		return fmt.Errorf("%w: expected 6 parts", ErrInvalidHash)
	}
	if parts[1] != "argon2id" {
		return fmt.Errorf("%w: not argon2id", ErrInvalidHash)
	}
	if parts[2] != "v=19" {
		return fmt.Errorf("%w: wrong version", ErrInvalidHash)
	}

	var mem, iters uint32
	var par uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &mem, &iters, &par); err != nil {
		return fmt.Errorf("%w: bad parameters: %v", ErrInvalidHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return fmt.Errorf("%w: bad salt encoding", ErrInvalidHash)
	}
	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return fmt.Errorf("%w: bad key encoding", ErrInvalidHash)
	}
	if len(expected) == 0 {
		return fmt.Errorf("%w: empty key", ErrInvalidHash)
	}

	computed := argon2.IDKey(
		[]byte(password+h.pepper),
		salt,
		iters,
		mem,
		par,
		uint32(len(expected)), // #nosec G115 - bounded by base64 input length
	)

	if subtle.ConstantTimeCompare(computed, expected) == 1 {
		return nil
	}
	return ErrMismatch
}
