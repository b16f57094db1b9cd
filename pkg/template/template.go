// Package template rewrites {{identifier}} placeholders in request drafts
// using a workspace's decrypted variable table.
//
// Substitution is a single left-to-right pass: values are inserted raw, a
// value containing further {{...}} text is not re-expanded, and placeholders
// with no matching variable stay verbatim. Substitution never fails an
// execution; at worst the original request goes out unchanged.
package template

import (
	"context"
	"log/slog"
	"regexp"
	"strings"

	"github.com/getreqd/reqd/pkg/runner"
	"github.com/getreqd/reqd/pkg/secrets"
)

// placeholderRe matches {{name}} with optional horizontal whitespace inside
// the braces. Identifiers start with a letter or underscore; anything else
// between double braces is not a placeholder and stays verbatim.
var placeholderRe = regexp.MustCompile(`\{\{[ \t]*([A-Za-z_][A-Za-z0-9_]*)[ \t]*\}\}`)

// Engine performs placeholder substitution over strings, nested structures,
// and whole request drafts.
type Engine struct {
	resolver *secrets.Resolver
	log      *slog.Logger
}

// New creates an Engine. The resolver may be nil for callers that only use
// the pure string/structure helpers.
func New(resolver *secrets.Resolver, log *slog.Logger) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{resolver: resolver, log: log}
}

// SubstituteString replaces every resolvable placeholder in s with its raw
// value from vars. Unknown identifiers keep their original text; a
// diagnostic is logged so missing variables are discoverable.
func (e *Engine) SubstituteString(s string, vars map[string]string) string {
	if len(vars) == 0 || !strings.Contains(s, "{{") {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(match string) string {
		name := placeholderRe.FindStringSubmatch(match)[1]
		if value, ok := vars[name]; ok {
			return value
		}
		e.log.Debug("placeholder has no matching variable", "name", name)
		return match
	})
}

// SubstituteMap applies SubstituteString to both keys and values of m.
func (e *Engine) SubstituteMap(m map[string]string, vars map[string]string) map[string]string {
	if len(m) == 0 {
		return m
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[e.SubstituteString(k, vars)] = e.SubstituteString(v, vars)
	}
	return out
}

// SubstituteValue walks an arbitrary decoded structure, rewriting every
// string it finds: map keys and values, sequence elements, nested all the
// way down. Non-string scalars pass through unchanged.
func (e *Engine) SubstituteValue(v any, vars map[string]string) any {
	switch val := v.(type) {
	case string:
		return e.SubstituteString(val, vars)
	case map[string]string:
		return e.SubstituteMap(val, vars)
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[e.SubstituteString(k, vars)] = e.SubstituteValue(item, vars)
		}
		return out
	case []string:
		out := make([]string, len(val))
		for i, item := range val {
			out[i] = e.SubstituteString(item, vars)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = e.SubstituteValue(item, vars)
		}
		return out
	default:
		return v
	}
}

// SubstituteRequest resolves the workspace's variable table and rewrites the
// request's URL, headers, and body. The URL is treated as one opaque string,
// so query and path placeholders substitute in the same pass.
//
// A workspace with no variables returns the request untouched. If the table
// cannot be resolved the original request is returned as well: executing
// with unresolved placeholders beats failing the user's call.
func (e *Engine) SubstituteRequest(ctx context.Context, req runner.Request) runner.Request {
	if e.resolver == nil {
		return req
	}

	vars, err := e.resolver.Resolve(ctx, req.WorkspaceID)
	if err != nil {
		e.log.Error("variable resolution failed, sending request unsubstituted",
			"workspaceID", req.WorkspaceID, "error", err)
		return req
	}
	if len(vars) == 0 {
		return req
	}

	out := req
	out.URL = e.SubstituteString(req.URL, vars)
	out.Headers = e.SubstituteMap(req.Headers, vars)
	out.Body = e.SubstituteString(req.Body, vars)
	return out
}
