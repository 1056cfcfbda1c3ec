package journal

import (
	"encoding/binary"
	"fmt"
	"io"
)

var (
	headerMagic    = [4]byte{'O', 'S', 'J', '1'}
	headerVersion  = uint16(1)
	headerFixedLen = 16 // excludes variable codec name bytes
)

const flagCompressed = 1

type headerInfo struct {
	Compressed       bool
	CompressionLevel int
	CodecName        string
}

func writeHeader(w io.Writer, info headerInfo) (int64, error) {
	if len(info.CodecName) > 255 {
		return 0, fmt.Errorf("codec name too long: %q", info.CodecName)
	}

	var flags uint16
	level := uint8(0)
	if info.Compressed {
		flags |= flagCompressed
		level = uint8(info.CompressionLevel) //nolint:gosec // validated 1-22
	}

	buf := make([]byte, 0, headerFixedLen+len(info.CodecName))
	buf = append(buf, headerMagic[:]...)
	var fixed [12]byte
	binary.LittleEndian.PutUint16(fixed[0:2], headerVersion)
	binary.LittleEndian.PutUint16(fixed[2:4], flags)
	fixed[4] = level
	fixed[5] = uint8(len(info.CodecName))
	// fixed[6:12] reserved
	buf = append(buf, fixed[:]...)
	buf = append(buf, info.CodecName...)

	if _, err := w.Write(buf); err != nil {
		return 0, fmt.Errorf("failed to write journal header: %w", err)
	}
	return int64(len(buf)), nil
}

func readHeader(r io.Reader) (headerInfo, error) {
	var magic [4]byte
	if _, err := io.ReadFull(r, magic[:]); err != nil {
		return headerInfo{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}
	if magic != headerMagic {
		return headerInfo{}, fmt.Errorf("%w: bad magic %q", ErrInvalidHeader, magic[:])
	}

	fixed := make([]byte, headerFixedLen-4)
	if _, err := io.ReadFull(r, fixed); err != nil {
		return headerInfo{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	version := binary.LittleEndian.Uint16(fixed[0:2])
	if version != headerVersion {
		return headerInfo{}, fmt.Errorf("%w: unsupported version %d", ErrInvalidHeader, version)
	}
	flags := binary.LittleEndian.Uint16(fixed[2:4])

	name := make([]byte, fixed[5])
	if _, err := io.ReadFull(r, name); err != nil {
		return headerInfo{}, fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	return headerInfo{
		Compressed:       flags&flagCompressed != 0,
		CompressionLevel: int(fixed[4]),
		CodecName:        string(name),
	}, nil
}
