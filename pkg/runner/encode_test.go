package runner

import (
	"bytes"
	"encoding/base64"
	"testing"
)

func TestEncodeEmptyBody(t *testing.T) {
	for _, ct := range []string{"", "application/json", "image/png"} {
		got := encodeBody(nil, ct, "")
		if got.Type != BodyText || got.Encoding != EncodingUTF8 || got.Body != "" {
			t.Errorf("empty body with content-type %q = %+v", ct, got)
		}
	}
}

func TestEncodeJSON(t *testing.T) {
	got := encodeBody([]byte(`{"a":1}`), "application/json", "")

	if got.Type != BodyJSON || got.Encoding != EncodingUTF8 {
		t.Fatalf("encoded = %+v", got)
	}
	if got.BodyText != `{"a":1}` {
		t.Errorf("bodyText = %q", got.BodyText)
	}
	obj, ok := got.Body.(map[string]any)
	if !ok {
		t.Fatalf("body type = %T", got.Body)
	}
	if n, ok := obj["a"].(int64); !ok || n != 1 {
		t.Errorf("parsed a = %v (%T)", obj["a"], obj["a"])
	}
}

func TestEncodeJSONWithCharsetParam(t *testing.T) {
	got := encodeBody([]byte(`[1,2,3]`), "application/json; charset=utf-8", "")
	if got.Type != BodyJSON {
		t.Errorf("type = %q, want json", got.Type)
	}
}

func TestEncodeMalformedJSONFallsBackToText(t *testing.T) {
	got := encodeBody([]byte("not json"), "application/json", "")

	if got.Type != BodyText || got.Encoding != EncodingUTF8 {
		t.Fatalf("encoded = %+v", got)
	}
	if got.Body != "not json" {
		t.Errorf("body = %v", got.Body)
	}
}

func TestEncodeHTML(t *testing.T) {
	got := encodeBody([]byte("<p>hi</p>"), "text/html; charset=utf-8", "")

	if got.Type != BodyHTML || got.Body != "<p>hi</p>" || got.BodyText != "<p>hi</p>" {
		t.Errorf("encoded = %+v", got)
	}
}

func TestEncodePlainText(t *testing.T) {
	got := encodeBody([]byte("hello"), "text/csv", "")
	if got.Type != BodyText || got.Body != "hello" {
		t.Errorf("encoded = %+v", got)
	}
}

func TestEncodeImageRoundTrip(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a, 0x00, 0xff}
	got := encodeBody(raw, "image/png", "")

	if got.Type != BodyImage || got.Encoding != EncodingBase64 {
		t.Fatalf("encoded = %+v", got)
	}
	decoded, err := base64.StdEncoding.DecodeString(got.Body.(string))
	if err != nil {
		t.Fatalf("body is not base64: %v", err)
	}
	if !bytes.Equal(decoded, raw) {
		t.Errorf("base64 round trip lost bytes: %v != %v", decoded, raw)
	}
}

func TestEncodeBinary(t *testing.T) {
	raw := []byte{0x00, 0x01, 0x02, 0xfe, 0xff}
	got := encodeBody(raw, "application/octet-stream", "")

	if got.Type != BodyBinary || got.Encoding != EncodingBase64 {
		t.Fatalf("encoded = %+v", got)
	}
	decoded, _ := base64.StdEncoding.DecodeString(got.Body.(string))
	if !bytes.Equal(decoded, raw) {
		t.Errorf("base64 round trip lost bytes")
	}
}

func TestEncodeUnknownContentTypeIsBinary(t *testing.T) {
	got := encodeBody([]byte("anything"), "", "")
	if got.Type != BodyBinary || got.Encoding != EncodingBase64 {
		t.Errorf("encoded = %+v", got)
	}
}

func TestEncodeBinaryWithContentDisposition(t *testing.T) {
	got := encodeBody([]byte{0x01, 0x02}, "application/zip", `attachment; filename="export.zip"`)
	if got.Type != BodyBinary || got.Encoding != EncodingBase64 {
		t.Errorf("encoded = %+v", got)
	}
}

func TestEncodeInvalidUTF8TextDegradesToBinary(t *testing.T) {
	raw := []byte{0xff, 0xfe, 0xfd}
	got := encodeBody(raw, "text/plain", "")

	if got.Type != BodyBinary || got.Encoding != EncodingBase64 {
		t.Fatalf("encoded = %+v", got)
	}
	decoded, _ := base64.StdEncoding.DecodeString(got.Body.(string))
	if !bytes.Equal(decoded, raw) {
		t.Errorf("bytes lost in fallback")
	}
}
