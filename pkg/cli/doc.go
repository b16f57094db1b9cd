// Package cli provides the command-line interface for reqd.
//
// Commands:
//   - serve: Start the API server in the foreground with graceful shutdown
//   - send: Execute a one-shot request through a running server
//   - version: Show reqd version information
//
// The serve command loads configuration from a YAML file (reqd.yaml by
// default), derives the variable encryption key from the configured secret,
// and runs until interrupted. The send command talks to a running server's
// /execute endpoint, so workspace variable substitution happens server-side
// with the server's encryption key.
//
// Usage:
//
//	reqd serve --port 4380 --config reqd.yaml
//	reqd send --url https://api.example.com/users --workspace ws_abc123
//	reqd send -X POST --url {{host}}/login -H 'Content-Type: application/json' --data '{"user":"{{user}}"}' --workspace ws_abc123
package cli
