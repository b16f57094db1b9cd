// Package store provides persistence for workspaces, folders, request
// definitions, and encrypted variable records.
//
// The interfaces are deliberately small so any document or key-value store
// can back them; the bundled FileStore keeps everything in one JSON file
// under the data directory. Variable values are stored as opaque ciphertext
// envelopes; this package never sees plaintext.
package store
