package journal

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/odorsearch/codec"
	"github.com/hupe1980/odorsearch/internal/hash"
)

const (
	recordHeaderLen = 13 // Type(1) + Seq(8) + Len(4)
	recordCRCLen    = 4

	// maxPayloadLen bounds a single record; larger lengths are treated as corruption.
	maxPayloadLen = 64 << 20
)

// appendRecord appends the framed record to dst.
func appendRecord(dst []byte, typ RecordType, seq uint64, payload []byte) []byte {
	start := len(dst)
	var hdr [recordHeaderLen]byte
	hdr[0] = byte(typ)
	binary.LittleEndian.PutUint64(hdr[1:9], seq)
	binary.LittleEndian.PutUint32(hdr[9:13], uint32(len(payload))) //nolint:gosec // bounded by maxPayloadLen
	dst = append(dst, hdr[:]...)
	dst = append(dst, payload...)
	return hash.AppendCRC32C(dst, start)
}

// errTornTail reports a record cut short at the end of the stream.
var errTornTail = errors.New("journal: torn tail")

// readRecord reads one framed record. It returns io.EOF at a clean end of the
// stream and errTornTail when the stream ends inside a record.
func readRecord(r io.Reader) (RecordType, uint64, []byte, error) {
	var hdr [recordHeaderLen]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		if errors.Is(err, io.EOF) {
			return 0, 0, nil, io.EOF
		}
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, 0, nil, errTornTail
		}
		return 0, 0, nil, err
	}

	typ := RecordType(hdr[0])
	seq := binary.LittleEndian.Uint64(hdr[1:9])
	n := binary.LittleEndian.Uint32(hdr[9:13])
	if n > maxPayloadLen {
		return 0, 0, nil, fmt.Errorf("%w: payload length %d", ErrCorrupted, n)
	}

	body := make([]byte, int(n)+recordCRCLen)
	if _, err := io.ReadFull(r, body); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return 0, 0, nil, errTornTail
		}
		return 0, 0, nil, err
	}

	payload := body[:n]
	want := binary.LittleEndian.Uint32(body[n:])
	crc := hash.NewCRC32C()
	_, _ = crc.Write(hdr[:])
	_, _ = crc.Write(payload)
	if crc.Sum32() != want {
		return 0, 0, nil, fmt.Errorf("%w: checksum mismatch at seq %d", ErrCorrupted, seq)
	}

	return typ, seq, payload, nil
}

func appendFloats(dst []byte, values []float64) []byte {
	dst = binary.LittleEndian.AppendUint32(dst, uint32(len(values))) //nolint:gosec
	for _, v := range values {
		dst = binary.LittleEndian.AppendUint64(dst, math.Float64bits(v))
	}
	return dst
}

// payloadReader decodes fixed-width fields from a record payload.
type payloadReader struct {
	buf []byte
	err error
}

func (p *payloadReader) take(n int) []byte {
	if p.err != nil {
		return nil
	}
	if n < 0 || n > len(p.buf) {
		p.err = fmt.Errorf("%w: payload truncated", ErrCorrupted)
		return nil
	}
	b := p.buf[:n]
	p.buf = p.buf[n:]
	return b
}

func (p *payloadReader) uint64() uint64 {
	b := p.take(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

func (p *payloadReader) float64() float64 {
	return math.Float64frombits(p.uint64())
}

func (p *payloadReader) floats() []float64 {
	b := p.take(4)
	if b == nil {
		return nil
	}
	n := int(binary.LittleEndian.Uint32(b))
	if n*8 > len(p.buf) {
		p.err = fmt.Errorf("%w: vector length %d", ErrCorrupted, n)
		return nil
	}
	out := make([]float64, n)
	for i := range out {
		out[i] = p.float64()
	}
	return out
}

func encodeTrial(t Trial) []byte {
	buf := make([]byte, 0, 8+4+8*len(t.Vector)+4+8*len(t.Measurement)+8)
	buf = binary.LittleEndian.AppendUint64(buf, uint64(t.ID)) //nolint:gosec // trial ids are non-negative
	buf = appendFloats(buf, t.Vector)
	buf = appendFloats(buf, t.Measurement)
	return binary.LittleEndian.AppendUint64(buf, math.Float64bits(t.Distance))
}

func encodeFinal(trial int) []byte {
	return binary.LittleEndian.AppendUint64(nil, uint64(trial)) //nolint:gosec
}

// decodeEntry decodes a record payload into an Entry.
func decodeEntry(c codec.Codec, typ RecordType, seq uint64, payload []byte) (Entry, error) {
	e := Entry{Type: typ, Seq: seq}
	p := &payloadReader{buf: payload}

	switch typ {
	case RecordStart:
		if err := c.Unmarshal(payload, &e.Meta); err != nil {
			return Entry{}, fmt.Errorf("%w: start record: %w", ErrCorrupted, err)
		}
		return e, nil
	case RecordTarget:
		e.Target = p.floats()
	case RecordTrial:
		e.Trial.ID = int(p.uint64()) //nolint:gosec
		e.Trial.Vector = p.floats()
		e.Trial.Measurement = p.floats()
		e.Trial.Distance = p.float64()
	case RecordFinal:
		e.Final = int(p.uint64()) //nolint:gosec
	default:
		return Entry{}, fmt.Errorf("%w: unknown record type %v", ErrCorrupted, typ)
	}

	if p.err != nil {
		return Entry{}, p.err
	}
	if len(p.buf) != 0 {
		return Entry{}, fmt.Errorf("%w: %d trailing bytes in %v record", ErrCorrupted, len(p.buf), typ)
	}
	return e, nil
}
