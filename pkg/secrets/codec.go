package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
	"strings"
	"sync"
)

// envelopeSeparator joins the three base64 segments of a stored value.
const envelopeSeparator = ":"

// gcmTagSize is the AES-GCM authentication tag length in bytes.
const gcmTagSize = 16

// Codec performs authenticated symmetric encryption of variable values.
// The key is derived once from the operator secret; a Codec is immutable and
// safe for concurrent use.
type Codec struct {
	aead cipher.AEAD
}

// NewCodec derives an AES-256 key from the operator secret and returns a
// codec around it. Returns ErrNoSecret when the secret is empty.
func NewCodec(secret string) (*Codec, error) {
	if secret == "" {
		return nil, ErrNoSecret
	}

	key := sha256.Sum256([]byte(secret))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("init cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init gcm: %w", err)
	}
	return &Codec{aead: aead}, nil
}

var (
	sharedOnce  sync.Once
	sharedCodec *Codec
	sharedErr   error
)

// Shared returns the process-wide codec, deriving the key on first call.
// Subsequent calls ignore the secret argument and return the cached codec;
// the derived key is read-only after initialization so concurrent reads need
// no locking.
func Shared(secret string) (*Codec, error) {
	sharedOnce.Do(func() {
		sharedCodec, sharedErr = NewCodec(secret)
	})
	return sharedCodec, sharedErr
}

// Encrypt encrypts plaintext with a fresh random nonce and returns the
// three-part envelope: base64(iv):base64(ciphertext):base64(tag).
func (c *Codec) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, c.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := c.aead.Seal(nil, nonce, []byte(plaintext), nil)
	ciphertext := sealed[:len(sealed)-gcmTagSize]
	tag := sealed[len(sealed)-gcmTagSize:]

	enc := base64.StdEncoding
	return enc.EncodeToString(nonce) + envelopeSeparator +
		enc.EncodeToString(ciphertext) + envelopeSeparator +
		enc.EncodeToString(tag), nil
}

// Decrypt parses a three-part envelope and returns the plaintext.
// Returns ErrMalformedPayload when the envelope shape is wrong and
// ErrAuthentication when the integrity check fails.
func (c *Codec) Decrypt(envelope string) (string, error) {
	parts := strings.Split(envelope, envelopeSeparator)
	if len(parts) != 3 {
		return "", fmt.Errorf("%w: expected 3 segments, got %d", ErrMalformedPayload, len(parts))
	}

	enc := base64.StdEncoding
	nonce, err := enc.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: bad iv encoding", ErrMalformedPayload)
	}
	ciphertext, err := enc.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("%w: bad ciphertext encoding", ErrMalformedPayload)
	}
	tag, err := enc.DecodeString(parts[2])
	if err != nil {
		return "", fmt.Errorf("%w: bad tag encoding", ErrMalformedPayload)
	}

	// A wrong-length nonce or tag can never authenticate; report it the
	// same way as tampering rather than panicking in GCM.
	if len(nonce) != c.aead.NonceSize() || len(tag) != gcmTagSize {
		return "", ErrAuthentication
	}

	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := c.aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", ErrAuthentication
	}
	return string(plaintext), nil
}
