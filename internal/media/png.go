package media

import (
	"bufio"
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
	"unicode/utf8"

	"github.com/vvka-141/genmeta/pkg/genmeta"
)

// ErrInvalidPNG is returned when the input does not start with the PNG signature
// or its chunk stream is truncated.
var ErrInvalidPNG = errors.New("invalid PNG")

var pngSignature = []byte("\x89PNG\r\n\x1a\n")

// maxChunkSize is the largest chunk length allowed by the PNG format.
const maxChunkSize = 1<<31 - 1

// ReadPNGText returns the textual chunks of a PNG stream as keyword -> text.
// A keyword that appears more than once keeps its first value. Chunks with a
// bad CRC or an unknown compression method are skipped.
func ReadPNGText(r io.Reader) (map[string]string, error) {
	br := bufio.NewReader(r)

	sig := make([]byte, len(pngSignature))
	if _, err := io.ReadFull(br, sig); err != nil || !bytes.Equal(sig, pngSignature) {
		return nil, ErrInvalidPNG
	}

	texts := make(map[string]string)
	header := make([]byte, 8)
	for {
		if _, err := io.ReadFull(br, header); err != nil {
			if errors.Is(err, io.EOF) {
				// Missing IEND; keep what was read.
				return texts, nil
			}
			return nil, fmt.Errorf("%w: truncated chunk header", ErrInvalidPNG)
		}
		length := binary.BigEndian.Uint32(header[:4])
		kind := string(header[4:8])
		if length > maxChunkSize {
			return nil, fmt.Errorf("%w: chunk %q too large", ErrInvalidPNG, kind)
		}

		switch kind {
		case "IEND":
			return texts, nil
		case "tEXt", "zTXt", "iTXt":
			if length > genmeta.MaxDocumentSize {
				if err := skip(br, int64(length)+4); err != nil {
					return nil, err
				}
				continue
			}
			data := make([]byte, length)
			crc := make([]byte, 4)
			if _, err := io.ReadFull(br, data); err != nil {
				return nil, fmt.Errorf("%w: truncated %s chunk", ErrInvalidPNG, kind)
			}
			if _, err := io.ReadFull(br, crc); err != nil {
				return nil, fmt.Errorf("%w: truncated %s chunk", ErrInvalidPNG, kind)
			}
			if crc32.Update(crc32.ChecksumIEEE(header[4:8]), crc32.IEEETable, data) != binary.BigEndian.Uint32(crc) {
				continue
			}
			key, text, ok := parseTextChunk(kind, data)
			if !ok {
				continue
			}
			if _, seen := texts[key]; !seen {
				texts[key] = text
			}
		default:
			if err := skip(br, int64(length)+4); err != nil {
				return nil, err
			}
		}
	}
}

func skip(r io.Reader, n int64) error {
	if _, err := io.CopyN(io.Discard, r, n); err != nil {
		return fmt.Errorf("%w: truncated chunk", ErrInvalidPNG)
	}
	return nil
}

// parseTextChunk decodes the payload of a tEXt, zTXt or iTXt chunk.
func parseTextChunk(kind string, data []byte) (string, string, bool) {
	key, rest, ok := bytes.Cut(data, []byte{0})
	if !ok || len(key) == 0 {
		return "", "", false
	}
	keyword := latin1(key)

	switch kind {
	case "tEXt":
		return keyword, latin1(rest), true

	case "zTXt":
		if len(rest) < 1 || rest[0] != 0 {
			return "", "", false
		}
		text, err := inflate(rest[1:])
		if err != nil {
			return "", "", false
		}
		return keyword, latin1(text), true

	case "iTXt":
		if len(rest) < 2 {
			return "", "", false
		}
		compressed, method := rest[0], rest[1]
		// Skip the language tag and the translated keyword.
		_, rest, ok = bytes.Cut(rest[2:], []byte{0})
		if !ok {
			return "", "", false
		}
		_, text, ok := bytes.Cut(rest, []byte{0})
		if !ok {
			return "", "", false
		}
		if compressed == 1 {
			if method != 0 {
				return "", "", false
			}
			var err error
			if text, err = inflate(text); err != nil {
				return "", "", false
			}
		}
		if !utf8.Valid(text) {
			return "", "", false
		}
		return keyword, string(text), true
	}
	return "", "", false
}

func inflate(data []byte) ([]byte, error) {
	zr, err := zlib.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	out, err := io.ReadAll(io.LimitReader(zr, genmeta.MaxDocumentSize+1))
	if err != nil {
		return nil, err
	}
	if len(out) > genmeta.MaxDocumentSize {
		return nil, errors.New("decompressed text too large")
	}
	return out, nil
}

// latin1 decodes tEXt/zTXt bytes. Many writers put UTF-8 into these chunks
// despite the ISO-8859-1 requirement, so valid UTF-8 is kept as is.
func latin1(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	runes := make([]rune, len(b))
	for i, c := range b {
		runes[i] = rune(c)
	}
	return string(runes)
}
