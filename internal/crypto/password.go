package crypto

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/argon2"
	"golang.org/x/crypto/bcrypt"
)

// Scheme — алгоритм хеширования новых паролей.
type Scheme string

const (
	SchemeArgon2id Scheme = "argon2id"
	SchemeBcrypt   Scheme = "bcrypt"
	SchemeLegacy   Scheme = "legacy"
)

var (
	ErrLegacyDisabled = errors.New("legacy password hashes are disabled")
	ErrUnknownHash    = errors.New("unknown password hash format")
)

// Argon2Params параметры argon2id. Нулевое значение заменяется DefaultArgon2Params.
type Argon2Params struct {
	Memory  uint32 // KiB
	Time    uint32
	Threads uint8
	SaltLen uint32
	KeyLen  uint32
}

var DefaultArgon2Params = Argon2Params{Memory: 64 * 1024, Time: 1, Threads: 4, SaltLen: 16, KeyLen: 32}

// Hasher хеширует пароли выбранной схемой и проверяет хеши любой известной схемы.
// Схема сохранённого хеша определяется по его формату:
//
//	$argon2id$v=19$m=...,t=...,p=...$salt$key  argon2id (PHC)
//	$2a$ / $2b$ / $2y$                         bcrypt
//	40 hex-символов                            legacy: hex(sha1(seed + password + salt))
type Hasher struct {
	Scheme      Scheme
	LegacySeed  string
	AllowLegacy bool
	Argon2      Argon2Params
	BcryptCost  int
}

func NewHasher(scheme, legacySeed string, allowLegacy bool) *Hasher {
	h := &Hasher{Scheme: Scheme(scheme), LegacySeed: legacySeed, AllowLegacy: allowLegacy}
	switch h.Scheme {
	case SchemeArgon2id, SchemeBcrypt:
	case SchemeLegacy:
		h.AllowLegacy = true
	default:
		h.Scheme = SchemeArgon2id
	}
	return h
}

func (h *Hasher) argon2Params() Argon2Params {
	if h.Argon2 == (Argon2Params{}) {
		return DefaultArgon2Params
	}
	return h.Argon2
}

func (h *Hasher) bcryptCost() int {
	if h.BcryptCost == 0 {
		return bcrypt.DefaultCost
	}
	return h.BcryptCost
}

// Hash возвращает хеш для колонки password и соль для колонки salt.
// Для argon2id и bcrypt соль входит в сам хеш, колонка salt остаётся пустой.
func (h *Hasher) Hash(password string) (hash, salt string, err error) {
	switch h.Scheme {
	case SchemeBcrypt:
		b, err := bcrypt.GenerateFromPassword([]byte(password), h.bcryptCost())
		if err != nil {
			return "", "", err
		}
		return string(b), "", nil
	case SchemeLegacy:
		salt = strings.ReplaceAll(uuid.NewString(), "-", "")
		return legacyDigest(h.LegacySeed, password, salt), salt, nil
	default:
		p := h.argon2Params()
		rawSalt := make([]byte, p.SaltLen)
		if _, err := io.ReadFull(rand.Reader, rawSalt); err != nil {
			return "", "", err
		}
		key := argon2.IDKey([]byte(password), rawSalt, p.Time, p.Memory, p.Threads, p.KeyLen)
		return encodeArgon2(p, rawSalt, key), "", nil
	}
}

// Verify сравнивает пароль с сохранённым хешем. needsRehash сообщает, что хеш
// стоит пересчитать текущей схемой после успешной проверки.
func (h *Hasher) Verify(stored, salt, password string) (ok, needsRehash bool, err error) {
	switch {
	case strings.HasPrefix(stored, "$argon2id$"):
		p, rawSalt, key, err := decodeArgon2(stored)
		if err != nil {
			return false, false, err
		}
		got := argon2.IDKey([]byte(password), rawSalt, p.Time, p.Memory, p.Threads, uint32(len(key)))
		if subtle.ConstantTimeCompare(got, key) != 1 {
			return false, false, nil
		}
		cur := h.argon2Params()
		stale := p.Memory != cur.Memory || p.Time != cur.Time || p.Threads != cur.Threads
		return true, h.Scheme != SchemeArgon2id || stale, nil

	case isBcrypt(stored):
		if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)); err != nil {
			if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
				return false, false, nil
			}
			return false, false, err
		}
		cost, err := bcrypt.Cost([]byte(stored))
		if err != nil {
			return false, false, err
		}
		return true, h.Scheme != SchemeBcrypt || cost < h.bcryptCost(), nil

	case isLegacy(stored):
		if !h.AllowLegacy {
			return false, false, ErrLegacyDisabled
		}
		want := legacyDigest(h.LegacySeed, password, salt)
		if subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(stored))) != 1 {
			return false, false, nil
		}
		return true, h.Scheme != SchemeLegacy, nil
	}
	return false, false, ErrUnknownHash
}

func legacyDigest(seed, password, salt string) string {
	sum := sha1.Sum([]byte(seed + password + salt))
	return hex.EncodeToString(sum[:])
}

func isBcrypt(s string) bool {
	return strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$")
}

func isLegacy(s string) bool {
	if len(s) != sha1.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}

func encodeArgon2(p Argon2Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, p.Memory, p.Time, p.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key))
}

func decodeArgon2(s string) (Argon2Params, []byte, []byte, error) {
	var p Argon2Params
	parts := strings.Split(s, "$")
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	if len(parts) != 6 {
		return p, nil, nil, ErrUnknownHash
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return p, nil, nil, fmt.Errorf("argon2 version: %w", err)
	}
	if version != argon2.Version {
		return p, nil, nil, fmt.Errorf("argon2 version %d unsupported", version)
	}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.Memory, &p.Time, &p.Threads); err != nil {
		return p, nil, nil, fmt.Errorf("argon2 params: %w", err)
	}
	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return p, nil, nil, fmt.Errorf("argon2 salt: %w", err)
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return p, nil, nil, fmt.Errorf("argon2 key: %w", err)
	}
	p.SaltLen = uint32(len(salt))
	p.KeyLen = uint32(len(key))
	return p, salt, key, nil
}
