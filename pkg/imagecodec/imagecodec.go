package imagecodec

import (
	"bytes"
	"encoding/base64"
	"errors"
	"strings"
)

// MIME type constants for the supported signature set.
const (
	MIMETypePNG    = "image/png"
	MIMETypeJPEG   = "image/jpeg"
	MIMETypeGIF    = "image/gif"
	MIMETypeTIFF   = "image/tiff"
	MIMETypeWEBP   = "image/webp"
	MIMETypeBinary = "application/octet-stream"
)

// ErrMalformedDataURI is returned when a data URI payload cannot be decoded.
var ErrMalformedDataURI = errors.New("malformed data URI payload")

// minSniffLen is the shortest magic-number prefix in the table below.
const minSniffLen = 2

// magicPrefixes maps magic-number prefixes to MIME types. Order matters for
// readability only; prefixes never overlap.
var magicPrefixes = []struct {
	prefix []byte
	mime   string
}{
	{[]byte("\x89PNG\r\n\x1a\n"), MIMETypePNG},
	{[]byte("\xFF\xD8\xFF\xDB"), MIMETypeJPEG},
	{[]byte("\xFF\xD8\xFF\xE0"), MIMETypeJPEG},
	{[]byte("\xFF\xD8\xFF\xE1"), MIMETypeJPEG},
	{[]byte("\xFF\xD8\xFF\xEE"), MIMETypeJPEG},
	{[]byte("GIF87a"), MIMETypeGIF},
	{[]byte("GIF89a"), MIMETypeGIF},
	{[]byte("II*\x00"), MIMETypeTIFF},
	{[]byte("MM\x00*"), MIMETypeTIFF},
}

// DetectMIMEType inspects up to the first 12 bytes of data and returns the
// matching MIME type. Unknown but non-empty payloads map to
// application/octet-stream; empty or undersized payloads return "".
func DetectMIMEType(data []byte) string {
	if len(data) < minSniffLen {
		return ""
	}

	// WEBP rides inside a RIFF container: bytes 0-3 "RIFF", bytes 8-11 "WEBP".
	if len(data) >= 12 && bytes.Equal(data[0:4], []byte("RIFF")) && bytes.Equal(data[8:12], []byte("WEBP")) {
		return MIMETypeWEBP
	}

	for _, m := range magicPrefixes {
		if bytes.HasPrefix(data, m.prefix) {
			return m.mime
		}
	}

	return MIMETypeBinary
}

// IsSupportedImage reports whether data carries one of the recognized image
// signatures. Octet-stream and undersized payloads are not images.
func IsSupportedImage(data []byte) bool {
	switch DetectMIMEType(data) {
	case MIMETypePNG, MIMETypeJPEG, MIMETypeGIF, MIMETypeTIFF, MIMETypeWEBP:
		return true
	default:
		return false
	}
}

// ToDataURI encodes raw bytes as "data:<mime>;base64,<payload>".
// Empty input returns "".
func ToDataURI(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	mime := DetectMIMEType(data)
	if mime == "" {
		mime = MIMETypeBinary
	}

	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// FromDataURI strips everything up to and including the first comma and
// base64-decodes the remainder. The MIME prefix is informational only and is
// never cross-checked here; format validation is an explicit separate step
// at the store boundary.
func FromDataURI(s string) ([]byte, error) {
	idx := strings.IndexByte(s, ',')
	if idx < 0 {
		return nil, ErrMalformedDataURI
	}

	data, err := base64.StdEncoding.DecodeString(s[idx+1:])
	if err != nil {
		return nil, ErrMalformedDataURI
	}

	return data, nil
}
