package portal

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidCredentialDigest   = errors.New("invalid credential digest format")
	ErrIncompatibleDigestVersion = errors.New("incompatible credential digest version")
)

// Argon2idParams tunes the credential digest function. The portal is not a
// hard security boundary, but digests are still salted and one-way so a
// leaked store does not leak passwords.
type Argon2idParams struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultArgon2idParams = Argon2idParams{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// CredentialDigester derives a stored digest from a plaintext password.
type CredentialDigester func(password string) (string, error)

// CredentialVerifier compares a stored digest with a candidate password.
type CredentialVerifier func(digest, password string) error

// CreateCredentialDigest derives an argon2id digest in the standard
// $argon2id$v=19$m=...,t=...,p=...$salt$hash encoding.
func CreateCredentialDigest(password string, params Argon2idParams) (string, error) {
	salt := make([]byte, params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}

	hash := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	format := "$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s"
	return fmt.Sprintf(format, argon2.Version, params.Memory, params.Iterations, params.Parallelism, b64Salt, b64Hash), nil
}

// VerifyCredential recomputes the digest with the stored salt and parameters
// and compares by equality. A mismatch yields ErrInvalidCredentials so login
// never distinguishes which part of the credential pair was wrong.
func VerifyCredential(digest, password string) error {
	parts := strings.Split(digest, "$")
	if len(parts) != 6 {
		return ErrInvalidCredentialDigest
	}

	if parts[1] != "argon2id" {
		return ErrInvalidCredentialDigest
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return err
	}
	if version != argon2.Version {
		return ErrIncompatibleDigestVersion
	}

	var params Argon2idParams
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &params.Memory, &params.Iterations, &params.Parallelism); err != nil {
		return err
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return err
	}

	decodedHash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return err
	}
	params.KeyLength = uint32(len(decodedHash))

	comparisonHash := argon2.IDKey([]byte(password), salt, params.Iterations, params.Memory, params.Parallelism, params.KeyLength)

	if subtle.ConstantTimeCompare(decodedHash, comparisonHash) == 1 {
		return nil
	}

	return ErrInvalidCredentials
}
