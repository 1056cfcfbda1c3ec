package journal

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hupe1980/odorsearch/codec"
	"github.com/klauspost/compress/zstd"
)

// Replay reads the journal at path and calls fn for every record in order.
// It stops without error at a torn tail and returns the first error from fn.
func Replay(path string, fn func(Entry) error) error {
	f, err := os.Open(path) //nolint:gosec // G304: path is configurable
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer func() { _ = f.Close() }()

	return ReplayReader(f, fn)
}

// ReplayReader is Replay for an arbitrary reader positioned at the header.
func ReplayReader(r io.Reader, fn func(Entry) error) error {
	br := bufio.NewReader(r)

	info, err := readHeader(br)
	if err != nil {
		return err
	}
	c, err := codec.Lookup(info.CodecName)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidHeader, err)
	}

	var reader io.Reader = br
	if info.Compressed {
		decompressor, err := zstd.NewReader(br)
		if err != nil {
			return fmt.Errorf("failed to create decompressor: %w", err)
		}
		defer decompressor.Close()
		reader = decompressor
	}

	var lastSeq uint64
	for {
		typ, seq, payload, err := readRecord(reader)
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, errTornTail) {
				return nil
			}
			if info.Compressed && errors.Is(err, io.ErrUnexpectedEOF) {
				return nil
			}
			return err
		}
		if seq != lastSeq+1 {
			return fmt.Errorf("%w: sequence %d follows %d", ErrCorrupted, seq, lastSeq)
		}
		lastSeq = seq

		entry, err := decodeEntry(c, typ, seq, payload)
		if err != nil {
			return err
		}
		if err := fn(entry); err != nil {
			return fmt.Errorf("failed to replay record %d: %w", seq, err)
		}
	}
}

// ReadAll returns every record of the journal at path.
func ReadAll(path string) ([]Entry, error) {
	var entries []Entry
	err := Replay(path, func(e Entry) error {
		entries = append(entries, e)
		return nil
	})
	return entries, err
}
