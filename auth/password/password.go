// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package password hashes and verifies user passwords with Argon2id.
//
// Hashes are self-describing PHC strings of the form
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<hash>
//
// so parameters can be tuned over time without breaking stored
// credentials: verification always uses the parameters recorded in the
// hash itself, and [NeedsRehash] tells callers when a credential should
// be upgraded on next login.
package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Params are the Argon2id tuning parameters. Kept in a struct so they can
// be adjusted per deployment target.
type Params struct {
	Time    uint32
	Memory  uint32
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultParams are the Argon2id parameters recommended by OWASP (2024):
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes (256 bits)
var DefaultParams = Params{
	Time:    1,
	Memory:  64 * 1024, // 64 MiB
	Threads: 4,
	KeyLen:  32, // 256 bits
	SaltLen: 16,
}

// ErrInvalidHash is returned when an encoded hash is not a well-formed
// Argon2id PHC string.
var ErrInvalidHash = errors.New("invalid password hash encoding")

// ErrIncompatibleVersion is returned when an encoded hash was produced by
// an Argon2 version this package cannot verify.
var ErrIncompatibleVersion = errors.New("incompatible argon2 version")

// Hash derives an Argon2id hash of password with [DefaultParams] and a
// fresh random salt, and returns it PHC-encoded.
func Hash(password string) (string, error) {
	return HashWithParams(password, DefaultParams)
}

// HashWithParams is [Hash] with explicit tuning parameters.
func HashWithParams(password string, p Params) (string, error) {
	salt := make([]byte, p.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("error generating password salt: %w", err)
	}

	key := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
	return encoded, nil
}

// Verify reports whether password matches the PHC-encoded hash. The
// derived key is compared in constant time. Returns an error only when
// the encoded hash itself cannot be parsed; a wrong password is
// (false, nil).
func Verify(password, encoded string) (bool, error) {
	p, salt, key, err := decode(encoded)
	if err != nil {
		return false, err
	}

	other := argon2.IDKey([]byte(password), salt, p.Time, p.Memory, p.Threads, p.KeyLen)
	return subtle.ConstantTimeCompare(key, other) == 1, nil
}

// NeedsRehash reports whether the stored hash was produced with parameters
// different from p. Callers typically check this after a successful
// [Verify] and re-hash the password on the spot, migrating credentials to
// stronger parameters over time.
func NeedsRehash(encoded string, p Params) (bool, error) {
	stored, salt, _, err := decode(encoded)
	if err != nil {
		return false, err
	}

	changed := stored.Time != p.Time ||
		stored.Memory != p.Memory ||
		stored.Threads != p.Threads ||
		stored.KeyLen != p.KeyLen ||
		uint32(len(salt)) != p.SaltLen
	return changed, nil
}

// decode splits a PHC string into its parameters, salt and derived key.
func decode(encoded string) (Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Params{}, nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad version segment", ErrInvalidHash)
	}
	if version != argon2.Version {
		return Params{}, nil, nil, ErrIncompatibleVersion
	}

	var p Params
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad params segment", ErrInvalidHash)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad salt segment", ErrInvalidHash)
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Params{}, nil, nil, fmt.Errorf("%w: bad hash segment", ErrInvalidHash)
	}

	p.KeyLen = uint32(len(key))
	p.SaltLen = uint32(len(salt))
	return p, salt, key, nil
}
