// Package secrets implements encryption at rest for workspace variables.
//
// Values are sealed with AES-256-GCM under a key derived from the operator
// secret and stored as a self-describing three-part envelope:
//
//	base64(iv):base64(ciphertext):base64(tag)
//
// The Resolver reads a workspace's records and produces the decrypted
// variable table used for placeholder substitution. The execution path drops
// records that fail to verify; the management path reports them as
// decryption_failed so operators are not left guessing. That asymmetry is
// deliberate.
package secrets
