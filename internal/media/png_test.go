package media

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chunk(kind string, data []byte) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(len(data)))
	buf.WriteString(kind)
	buf.Write(data)
	crc := crc32.Update(crc32.ChecksumIEEE([]byte(kind)), crc32.IEEETable, data)
	binary.Write(&buf, binary.BigEndian, crc)
	return buf.Bytes()
}

func deflate(t *testing.T, s string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write([]byte(s))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func tEXt(key, text string) []byte {
	return chunk("tEXt", []byte(key+"\x00"+text))
}

func zTXt(t *testing.T, key, text string) []byte {
	return chunk("zTXt", append([]byte(key+"\x00\x00"), deflate(t, text)...))
}

func iTXt(t *testing.T, key, text string, compress bool) []byte {
	payload := []byte(key + "\x00")
	body := []byte(text)
	if compress {
		payload = append(payload, 1, 0)
		body = deflate(t, text)
	} else {
		payload = append(payload, 0, 0)
	}
	payload = append(payload, []byte("en\x00"+key+"\x00")...)
	return chunk("iTXt", append(payload, body...))
}

// buildPNG encodes a 1x1 image and inserts chunks before IEND.
func buildPNG(t *testing.T, chunks ...[]byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, 1, 1))))

	encoded := buf.Bytes()
	iend := encoded[len(encoded)-12:]
	out := append([]byte{}, encoded[:len(encoded)-12]...)
	for _, c := range chunks {
		out = append(out, c...)
	}
	return append(out, iend...)
}

func TestReadPNGText(t *testing.T) {
	data := buildPNG(t,
		tEXt("parameters", "a cat\nSteps: 20"),
		zTXt(t, "prompt", `{"3": {"class_type": "KSampler"}}`),
		iTXt(t, "workflow", "{\"nodes\": []}", true),
		iTXt(t, "Comment", "café ☕", false),
		tEXt("parameters", "duplicate ignored"),
	)

	texts, err := ReadPNGText(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"parameters": "a cat\nSteps: 20",
		"prompt":     `{"3": {"class_type": "KSampler"}}`,
		"workflow":   `{"nodes": []}`,
		"Comment":    "café ☕",
	}, texts)
}

func TestReadPNGText_Latin1(t *testing.T) {
	texts, err := ReadPNGText(bytes.NewReader(buildPNG(t, tEXt("Author", "Jos\xe9"))))
	require.NoError(t, err)
	assert.Equal(t, "José", texts["Author"])
}

func TestReadPNGText_SkipsBadChunks(t *testing.T) {
	corrupt := tEXt("parameters", "corrupt")
	corrupt[len(corrupt)-1] ^= 0xff

	data := buildPNG(t,
		corrupt,
		chunk("zTXt", []byte("prompt\x00\x01garbage")),
		chunk("tEXt", []byte("no separator")),
		tEXt("good", "kept"),
	)

	texts, err := ReadPNGText(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"good": "kept"}, texts)
}

func TestReadPNGText_NoTextChunks(t *testing.T) {
	texts, err := ReadPNGText(bytes.NewReader(buildPNG(t)))
	require.NoError(t, err)
	assert.Empty(t, texts)
}

func TestReadPNGText_Invalid(t *testing.T) {
	_, err := ReadPNGText(bytes.NewReader([]byte("GIF89a")))
	assert.ErrorIs(t, err, ErrInvalidPNG)

	full := buildPNG(t, tEXt("parameters", "a cat"))
	_, err = ReadPNGText(bytes.NewReader(full[:len(full)-20]))
	assert.ErrorIs(t, err, ErrInvalidPNG)
}

func TestReadPNGText_MissingIEND(t *testing.T) {
	full := buildPNG(t, tEXt("parameters", "a cat"))
	texts, err := ReadPNGText(bytes.NewReader(full[:len(full)-12]))
	require.NoError(t, err)
	assert.Equal(t, "a cat", texts["parameters"])
}
