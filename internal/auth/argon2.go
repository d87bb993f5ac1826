package auth

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Argon2Params configurable for hashing.
type Argon2Params struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultArgon2Params returns OWASP-recommended defaults for Argon2id.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Memory:      64 * 1024, // 64 MiB
		Iterations:  3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Hasher hashes and verifies admin passwords with Argon2id. Hashes are
// stored in the PHC string format, so parameters can change without
// invalidating existing passwords.
type Hasher struct {
	params Argon2Params
}

func NewHasher(params Argon2Params) *Hasher {
	return &Hasher{params: params}
}

func (h *Hasher) Hash(password string) (string, error) {
	if password == "" {
		return "", errors.New("password must not be empty")
	}
	salt := make([]byte, h.params.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	p := phcHash{params: h.params, salt: salt}
	p.key = p.derive(password, h.params.KeyLength)
	return p.String(), nil
}

// Verify reports whether password matches the encoded hash. A malformed
// hash never matches.
func (h *Hasher) Verify(password, encoded string) bool {
	p, err := parsePHC(encoded)
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(p.key, p.derive(password, uint32(len(p.key)))) == 1
}

// phcHash is an argon2id hash in PHC form:
// $argon2id$v=19$m=<KiB>,t=<passes>,p=<lanes>$<salt>$<key>
type phcHash struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func (p phcHash) derive(password string, keyLen uint32) []byte {
	return argon2.IDKey([]byte(password), p.salt, p.params.Iterations, p.params.Memory, p.params.Parallelism, keyLen)
}

func (p phcHash) String() string {
	b64 := base64.RawStdEncoding
	return "$argon2id" +
		"$v=" + strconv.Itoa(argon2.Version) +
		"$m=" + strconv.FormatUint(uint64(p.params.Memory), 10) +
		",t=" + strconv.FormatUint(uint64(p.params.Iterations), 10) +
		",p=" + strconv.FormatUint(uint64(p.params.Parallelism), 10) +
		"$" + b64.EncodeToString(p.salt) +
		"$" + b64.EncodeToString(p.key)
}

var errMalformedHash = errors.New("malformed argon2id hash")

func parsePHC(encoded string) (phcHash, error) {
	fields := strings.Split(strings.TrimPrefix(encoded, "$"), "$")
	if len(fields) != 5 || fields[0] != "argon2id" {
		return phcHash{}, errMalformedHash
	}
	if fields[1] != "v="+strconv.Itoa(argon2.Version) {
		return phcHash{}, fmt.Errorf("unsupported argon2 version %q", fields[1])
	}

	var p phcHash
	for _, kv := range strings.Split(fields[2], ",") {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return phcHash{}, errMalformedHash
		}
		n, err := strconv.ParseUint(value, 10, 32)
		if err != nil || n == 0 {
			return phcHash{}, fmt.Errorf("invalid argon2 parameter %q", kv)
		}
		switch name {
		case "m":
			p.params.Memory = uint32(n)
		case "t":
			p.params.Iterations = uint32(n)
		case "p":
			if n > 255 {
				return phcHash{}, fmt.Errorf("invalid argon2 parameter %q", kv)
			}
			p.params.Parallelism = uint8(n)
		default:
			return phcHash{}, fmt.Errorf("unknown argon2 parameter %q", name)
		}
	}
	if p.params.Memory == 0 || p.params.Iterations == 0 || p.params.Parallelism == 0 {
		return phcHash{}, errMalformedHash
	}

	var err error
	if p.salt, err = base64.RawStdEncoding.DecodeString(fields[3]); err != nil || len(p.salt) == 0 {
		return phcHash{}, errMalformedHash
	}
	if p.key, err = base64.RawStdEncoding.DecodeString(fields[4]); err != nil || len(p.key) == 0 {
		return phcHash{}, errMalformedHash
	}
	p.params.SaltLength = uint32(len(p.salt))
	p.params.KeyLength = uint32(len(p.key))
	return p, nil
}
