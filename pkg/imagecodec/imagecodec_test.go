package imagecodec

import (
	"bytes"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetectMIMEType(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"png", []byte("\x89PNG\r\n\x1a\nrest-of-file"), MIMETypePNG},
		{"jpeg jfif", []byte("\xFF\xD8\xFF\xE0\x00\x10JFIF"), MIMETypeJPEG},
		{"jpeg exif", []byte("\xFF\xD8\xFF\xE1\x00\x10Exif"), MIMETypeJPEG},
		{"jpeg raw", []byte("\xFF\xD8\xFF\xDB\x00\x43"), MIMETypeJPEG},
		{"jpeg spiff", []byte("\xFF\xD8\xFF\xEE\x00\x43"), MIMETypeJPEG},
		{"gif 87a", []byte("GIF87a......"), MIMETypeGIF},
		{"gif 89a", []byte("GIF89a......"), MIMETypeGIF},
		{"tiff little endian", []byte("II*\x00extra"), MIMETypeTIFF},
		{"tiff big endian", []byte("MM\x00*extra"), MIMETypeTIFF},
		{"webp", []byte("RIFF\x24\x00\x00\x00WEBPVP8 "), MIMETypeWEBP},
		{"riff but not webp", []byte("RIFF\x24\x00\x00\x00WAVEfmt "), MIMETypeBinary},
		{"pdf signature", []byte("%PDF-1.7 ..."), MIMETypeBinary},
		{"plain text", []byte("hello world"), MIMETypeBinary},
		{"truncated riff", []byte("RIFF\x24\x00"), MIMETypeBinary},
		{"empty", nil, ""},
		{"single byte", []byte{0x89}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectMIMEType(tt.data))
		})
	}
}

func TestDetectMIMETypeDeterministic(t *testing.T) {
	data := []byte("GIF89a trailing data")
	first := DetectMIMEType(data)
	for i := 0; i < 100; i++ {
		assert.Equal(t, first, DetectMIMEType(data))
	}
}

func TestIsSupportedImage(t *testing.T) {
	assert.True(t, IsSupportedImage([]byte("\x89PNG\r\n\x1a\n")))
	assert.True(t, IsSupportedImage([]byte("RIFF\x00\x00\x00\x00WEBP")))
	assert.False(t, IsSupportedImage([]byte("%PDF-1.7")))
	assert.False(t, IsSupportedImage(nil))
	assert.False(t, IsSupportedImage([]byte{0xFF}))
}

func TestToDataURI(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\npayload")
	uri := ToDataURI(png)
	require.NotEmpty(t, uri)
	assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(png), uri)

	assert.Empty(t, ToDataURI(nil))
	assert.Empty(t, ToDataURI([]byte{}))
}

func TestFromDataURI(t *testing.T) {
	payload := []byte("\xFF\xD8\xFF\xE0some jpeg bytes")
	uri := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(payload)

	got, err := FromDataURI(uri)
	require.NoError(t, err)
	assert.True(t, bytes.Equal(payload, got))
}

func TestFromDataURIMalformed(t *testing.T) {
	_, err := FromDataURI("no comma in here")
	assert.ErrorIs(t, err, ErrMalformedDataURI)

	_, err = FromDataURI("data:image/png;base64,!!!not-base64!!!")
	assert.ErrorIs(t, err, ErrMalformedDataURI)
}

// Round-trip: decoding a data URI and re-encoding it must reproduce the
// original payload byte for byte.
func TestDataURIRoundTrip(t *testing.T) {
	payloads := [][]byte{
		[]byte("\x89PNG\r\n\x1a\n\x00\x01\x02\x03"),
		[]byte("GIF89a\xDE\xAD\xBE\xEF"),
		[]byte("II*\x00arbitrary tiff content"),
		[]byte("completely unknown format"),
	}

	for _, p := range payloads {
		uri := ToDataURI(p)
		decoded, err := FromDataURI(uri)
		require.NoError(t, err)
		assert.Equal(t, p, decoded)

		// Re-encoding yields the same URI for the same bytes.
		assert.Equal(t, uri, ToDataURI(decoded))
	}
}
