package secrets

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/getreqd/reqd/pkg/store"
)

// DecryptionFailed is the error marker surfaced to operators when a stored
// record cannot be verified.
const DecryptionFailed = "decryption_failed"

// DecryptedVariable is one variable with its plaintext value, as returned to
// the management surface. Err carries DecryptionFailed (and Value is empty)
// when the stored ciphertext did not verify.
type DecryptedVariable struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	IsSecret bool   `json:"isSecret"`
	Err      string `json:"error,omitempty"`
}

// PlainVariable is one variable submitted for storage, plaintext value.
type PlainVariable struct {
	Key      string `json:"key"`
	Value    string `json:"value"`
	IsSecret bool   `json:"isSecret"`
}

// Resolver turns a workspace's encrypted records into decrypted variables.
// It holds no per-workspace state: every call re-reads and re-decrypts so
// edits take effect immediately and plaintext never outlives one request.
type Resolver struct {
	vars  store.VariableStore
	codec *Codec
	log   *slog.Logger
}

// NewResolver creates a resolver over the given variable store and codec.
func NewResolver(vars store.VariableStore, codec *Codec, log *slog.Logger) *Resolver {
	if log == nil {
		log = slog.Default()
	}
	return &Resolver{vars: vars, codec: codec, log: log}
}

// Resolve builds the variable table for one execution. Records that fail to
// decrypt are logged and omitted; one corrupt secret never blocks the rest.
// An empty workspace ID or a workspace without records yields an empty table.
func (r *Resolver) Resolve(ctx context.Context, workspaceID string) (map[string]string, error) {
	if workspaceID == "" {
		return map[string]string{}, nil
	}
	if r.codec == nil {
		return nil, ErrNoSecret
	}

	records, err := r.vars.Load(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("load variables: %w", err)
	}

	table := make(map[string]string, len(records))
	for _, rec := range records {
		plaintext, err := r.codec.Decrypt(rec.Value)
		if err != nil {
			r.log.Warn("skipping undecryptable variable",
				"workspaceID", workspaceID, "key", rec.Key, "error", err)
			continue
		}
		table[rec.Key] = plaintext
	}
	return table, nil
}

// DecryptAll returns every record with its decrypted value for the
// management surface. Unlike Resolve, failed records are not dropped: they
// come back with Err set so the operator can see something is broken.
func (r *Resolver) DecryptAll(ctx context.Context, workspaceID string) ([]DecryptedVariable, error) {
	if r.codec == nil {
		return nil, ErrNoSecret
	}

	records, err := r.vars.Load(ctx, workspaceID)
	if err != nil {
		return nil, fmt.Errorf("load variables: %w", err)
	}

	result := make([]DecryptedVariable, 0, len(records))
	for _, rec := range records {
		dv := DecryptedVariable{Key: rec.Key, IsSecret: rec.IsSecret}
		plaintext, err := r.codec.Decrypt(rec.Value)
		if err != nil {
			r.log.Warn("variable failed decryption",
				"workspaceID", workspaceID, "key", rec.Key, "error", err)
			dv.Err = DecryptionFailed
		} else {
			dv.Value = plaintext
		}
		result = append(result, dv)
	}
	return result, nil
}

// Replace encrypts the submitted variables and stores them as the
// workspace's full record set, then returns the decrypted list as
// confirmation. Key validation (blank or duplicate keys) belongs to the
// calling boundary, not here.
func (r *Resolver) Replace(ctx context.Context, workspaceID string, vars []PlainVariable) ([]DecryptedVariable, error) {
	if r.codec == nil {
		return nil, ErrNoSecret
	}

	records := make([]store.VariableRecord, 0, len(vars))
	for _, v := range vars {
		envelope, err := r.codec.Encrypt(v.Value)
		if err != nil {
			return nil, fmt.Errorf("encrypt variable %q: %w", v.Key, err)
		}
		records = append(records, store.VariableRecord{Key: v.Key, Value: envelope, IsSecret: v.IsSecret})
	}

	if _, err := r.vars.Save(ctx, workspaceID, records); err != nil {
		return nil, fmt.Errorf("save variables: %w", err)
	}

	result := make([]DecryptedVariable, 0, len(vars))
	for _, v := range vars {
		result = append(result, DecryptedVariable{Key: v.Key, Value: v.Value, IsSecret: v.IsSecret})
	}
	return result, nil
}
