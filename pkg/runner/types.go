package runner

// BodyType classifies a response payload for transport back to the caller.
type BodyType string

// Body classifications.
const (
	BodyJSON   BodyType = "json"
	BodyText   BodyType = "text"
	BodyHTML   BodyType = "html"
	BodyImage  BodyType = "image"
	BodyBinary BodyType = "binary"
)

// Encoding says how the Body field is encoded on the wire.
type Encoding string

// Body encodings.
const (
	EncodingUTF8   Encoding = "utf8"
	EncodingBase64 Encoding = "base64"
)

// DefaultContentType is reported when the server omitted a Content-Type.
const DefaultContentType = "application/octet-stream"

// Request is one execution draft: a fully described outbound HTTP call plus
// the workspace whose variables substitute into it. It lives for the
// duration of a single execution.
type Request struct {
	Method      string            `json:"method"`
	URL         string            `json:"url"`
	Headers     map[string]string `json:"headers,omitempty"`
	Body        string            `json:"body,omitempty"`
	WorkspaceID string            `json:"workspaceId,omitempty"`
}

// Response is the normalized result of one execution. Body holds either the
// parsed JSON value, decoded text, or base64 bytes depending on BodyType;
// BodyText carries the original text alongside parsed JSON. ContentType is
// the server-declared value verbatim.
type Response struct {
	Status      int               `json:"status"`
	StatusText  string            `json:"statusText"`
	Headers     map[string]string `json:"headers"`
	Body        any               `json:"body"`
	BodyType    BodyType          `json:"bodyType"`
	BodyText    string            `json:"bodyText,omitempty"`
	Encoding    Encoding          `json:"encoding"`
	ContentType string            `json:"contentType"`
	ElapsedMs   int64             `json:"elapsedMs"`
	SizeBytes   int               `json:"sizeBytes"`
}
