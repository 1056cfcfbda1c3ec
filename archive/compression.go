package archive

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the algorithm applied by Encode.
type Compression uint8

const (
	// None stores data as is.
	None Compression = iota
	// LZ4 uses LZ4 block compression (fast).
	LZ4
	// Zstd uses zstd (better ratio).
	Zstd
)

// ErrInvalidBlob is returned by Decode for data without a valid header.
var ErrInvalidBlob = errors.New("archive: invalid blob")

// String returns the string representation of the compression.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(c))
	}
}

// Extension returns the file name suffix for blobs written with c.
func (c Compression) Extension() string {
	switch c {
	case LZ4:
		return ".lz4"
	case Zstd:
		return ".zst"
	default:
		return ""
	}
}

// ParseCompression parses "none", "lz4" or "zstd". The empty string is None.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(s) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd", "zst":
		return Zstd, nil
	default:
		return None, fmt.Errorf("archive: unknown compression %q", s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Compression) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Compression) UnmarshalText(text []byte) error {
	v, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Format: [Compression:1][UncompressedSize:4][Data...]
const blobHeaderSize = 5

// Encode compresses data with c and prefixes the header. Data that does not
// shrink below 90% of its size is stored uncompressed.
func Encode(data []byte, c Compression) ([]byte, error) {
	var compressed []byte

	switch c {
	case None:
	case LZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, fmt.Errorf("lz4: %w", err)
		}
		compressed = buf[:n]
	case Zstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("archive: unknown compression %v", c)
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		c, compressed = None, data
	}

	out := make([]byte, blobHeaderSize, blobHeaderSize+len(compressed))
	out[0] = byte(c)
	binary.LittleEndian.PutUint32(out[1:], uint32(len(data))) //nolint:gosec // reports are far below 4 GiB
	return append(out, compressed...), nil
}

// Decode reverses Encode.
func Decode(data []byte) ([]byte, error) {
	if len(data) < blobHeaderSize {
		return nil, fmt.Errorf("%w: %d bytes", ErrInvalidBlob, len(data))
	}

	c := Compression(data[0])
	size := binary.LittleEndian.Uint32(data[1:])
	body := data[blobHeaderSize:]

	switch c {
	case None:
		if uint32(len(body)) != size { //nolint:gosec
			return nil, fmt.Errorf("%w: size mismatch", ErrInvalidBlob)
		}
		out := make([]byte, len(body))
		copy(out, body)
		return out, nil
	case LZ4:
		out := make([]byte, size)
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrInvalidBlob, err)
		}
		if uint32(n) != size { //nolint:gosec
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidBlob)
		}
		return out, nil
	case Zstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		out, err := dec.DecodeAll(body, make([]byte, 0, size))
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrInvalidBlob, err)
		}
		if uint32(len(out)) != size { //nolint:gosec
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrInvalidBlob)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrInvalidBlob, data[0])
	}
}
