package journal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/hupe1980/odorsearch/codec"
	"github.com/klauspost/compress/zstd"
)

// Extension is the file extension of journal files.
const Extension = ".journal"

// Path returns the journal path of a run inside dir.
func Path(dir, runID string) string {
	return filepath.Join(dir, runID+Extension)
}

// Journal appends records to a journal file. It is safe for concurrent use.
type Journal struct {
	mu         sync.Mutex
	file       *os.File
	bufWriter  *bufio.Writer
	compressor *zstd.Encoder
	codec      codec.Codec
	path       string
	seq        uint64
	sync       bool
	scratch    []byte
}

// Create creates a new journal at path, replacing any existing file.
func Create(path string, optFns ...func(o *Options)) (*Journal, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Codec == nil {
		opts.Codec = codec.Default
	}
	if opts.Compress && (opts.CompressionLevel < 1 || opts.CompressionLevel > 22) {
		return nil, fmt.Errorf("journal: invalid compression level %d", opts.CompressionLevel)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create journal directory: %w", err)
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600) //nolint:gosec // G304: path is configurable
	if err != nil {
		return nil, fmt.Errorf("failed to open journal file: %w", err)
	}

	if _, err := writeHeader(file, headerInfo{
		Compressed:       opts.Compress,
		CompressionLevel: opts.CompressionLevel,
		CodecName:        opts.Codec.Name(),
	}); err != nil {
		_ = file.Close()
		return nil, err
	}

	j := &Journal{
		file:  file,
		codec: opts.Codec,
		path:  path,
		sync:  opts.Sync,
	}

	if opts.Compress {
		level := zstd.EncoderLevelFromZstd(opts.CompressionLevel)
		compressor, err := zstd.NewWriter(file, zstd.WithEncoderLevel(level))
		if err != nil {
			_ = file.Close()
			return nil, fmt.Errorf("failed to create compressor: %w", err)
		}
		j.compressor = compressor
		j.bufWriter = bufio.NewWriter(compressor)
	} else {
		j.bufWriter = bufio.NewWriter(file)
	}

	if opts.Sync {
		if err := file.Sync(); err != nil {
			_ = file.Close()
			return nil, err
		}
	}

	return j, nil
}

// Path returns the current path of the journal file.
func (j *Journal) Path() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.path
}

// Seq returns the sequence number of the last record written.
func (j *Journal) Seq() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.seq
}

// Start writes the run metadata.
func (j *Journal) Start(meta Meta) error {
	payload, err := j.codec.Marshal(meta)
	if err != nil {
		return fmt.Errorf("failed to encode run metadata: %w", err)
	}
	return j.append(RecordStart, payload)
}

// Target writes the target measurement.
func (j *Journal) Target(target []float64) error {
	return j.append(RecordTarget, appendFloats(nil, target))
}

// Trial writes a measured trial.
func (j *Journal) Trial(t Trial) error {
	return j.append(RecordTrial, encodeTrial(t))
}

// Final marks the search as finished with trial as the best one.
func (j *Journal) Final(trial int) error {
	return j.append(RecordFinal, encodeFinal(trial))
}

func (j *Journal) append(typ RecordType, payload []byte) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return ErrClosed
	}
	if len(payload) > maxPayloadLen {
		return fmt.Errorf("journal: %v record too large (%d bytes)", typ, len(payload))
	}

	j.seq++
	j.scratch = appendRecord(j.scratch[:0], typ, j.seq, payload)
	if _, err := j.bufWriter.Write(j.scratch); err != nil {
		return fmt.Errorf("failed to write %v record: %w", typ, err)
	}
	if err := j.flushLocked(); err != nil {
		return err
	}
	if j.sync {
		return j.file.Sync()
	}
	return nil
}

func (j *Journal) flushLocked() error {
	if err := j.bufWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	if j.compressor != nil {
		if err := j.compressor.Flush(); err != nil {
			return fmt.Errorf("failed to flush compressor: %w", err)
		}
	}
	return nil
}

// Rename moves the journal file to newPath. Appending continues at the new path.
func (j *Journal) Rename(newPath string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return ErrClosed
	}
	if err := j.flushLocked(); err != nil {
		return err
	}
	if err := j.file.Sync(); err != nil {
		return err
	}
	if err := os.Rename(j.path, newPath); err != nil {
		return fmt.Errorf("failed to rename journal: %w", err)
	}
	j.path = newPath
	return nil
}

// Close flushes and closes the journal. It is idempotent.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file == nil {
		return nil
	}

	if err := j.bufWriter.Flush(); err != nil {
		return fmt.Errorf("failed to flush buffer: %w", err)
	}
	if j.compressor != nil {
		if err := j.compressor.Close(); err != nil {
			return fmt.Errorf("failed to close compressor: %w", err)
		}
	}
	if j.sync {
		if err := j.file.Sync(); err != nil {
			return err
		}
	}

	err := j.file.Close()
	j.file = nil
	return err
}

var _ io.Closer = (*Journal)(nil)
