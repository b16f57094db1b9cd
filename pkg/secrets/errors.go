package secrets

import "errors"

// Sentinel errors returned by the codec.
var (
	// ErrNoSecret means the operator has not configured an encryption
	// secret. Fatal to any operation touching encrypted variables.
	ErrNoSecret = errors.New("encryption secret is not configured")

	// ErrMalformedPayload means a stored envelope does not have the
	// expected iv:ciphertext:tag shape. Local to one record.
	ErrMalformedPayload = errors.New("malformed ciphertext envelope")

	// ErrAuthentication means the integrity tag did not verify: wrong key,
	// tampering, or truncation. Local to one record.
	ErrAuthentication = errors.New("ciphertext authentication failed")
)
