package runner

import (
	"encoding/base64"
	"strings"
	"unicode/utf8"

	"github.com/ohler55/ojg/oj"
)

// encoded is the classified representation of one response payload.
type encoded struct {
	Body     any
	BodyText string
	Type     BodyType
	Encoding Encoding
}

// encodeBody maps raw bytes and the declared content type to one of the
// fixed body representations. Classification never fails: anything that
// cannot be decoded as claimed degrades to text or base64 binary.
func encodeBody(raw []byte, contentType, disposition string) encoded {
	if len(raw) == 0 {
		return encoded{Body: "", Type: BodyText, Encoding: EncodingUTF8}
	}

	ct := strings.ToLower(contentType)

	switch {
	case strings.Contains(ct, "application/json"):
		if !utf8.Valid(raw) {
			break
		}
		text := string(raw)
		value, err := oj.Parse(raw)
		if err != nil {
			// Malformed JSON is still a valid text response.
			return encoded{Body: text, Type: BodyText, Encoding: EncodingUTF8}
		}
		return encoded{Body: value, BodyText: text, Type: BodyJSON, Encoding: EncodingUTF8}

	case strings.Contains(ct, "text/html"):
		if !utf8.Valid(raw) {
			break
		}
		text := string(raw)
		return encoded{Body: text, BodyText: text, Type: BodyHTML, Encoding: EncodingUTF8}

	case strings.HasPrefix(ct, "text/"):
		if !utf8.Valid(raw) {
			break
		}
		text := string(raw)
		return encoded{Body: text, BodyText: text, Type: BodyText, Encoding: EncodingUTF8}

	case strings.HasPrefix(ct, "image/"):
		return encoded{
			Body:     base64.StdEncoding.EncodeToString(raw),
			Type:     BodyImage,
			Encoding: EncodingBase64,
		}
	}

	out := encoded{
		Body:     base64.StdEncoding.EncodeToString(raw),
		Type:     BodyBinary,
		Encoding: EncodingBase64,
	}
	// File downloads announced via content-disposition are always base64.
	if strings.Contains(strings.ToLower(disposition), "filename") {
		out.Encoding = EncodingBase64
	}
	return out
}
