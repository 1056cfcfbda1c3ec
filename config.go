package odorsearch

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/hupe1980/odorsearch/archive"
	"github.com/hupe1980/odorsearch/diffevol"
	"github.com/hupe1980/odorsearch/journal"
	"gopkg.in/yaml.v3"
)

var configValidate = validator.New(validator.WithRequiredStructEnabled())

// Config is the file form of a search setup.
//
//	parameters:
//	  crossoverRate: 0.7
//	  mutationFactor: 0.8
//	  maxIterations: 10
//	channels:
//	  - {name: lemon, min: 0, max: 20}
//	  - {name: vanilla, min: 0, max: 5}
//	seed: 42
//	pace: 2s
//	journal:
//	  dir: ./runs
//	  compress: true
//	archive:
//	  uri: file://./reports
//	  compression: zstd
type Config struct {
	Parameters diffevol.Parameters `yaml:"parameters"`
	Channels   []Channel           `yaml:"channels" validate:"required,min=1,dive"`

	// Seed makes runs reproducible. Unset draws a random seed.
	Seed *uint64 `yaml:"seed"`

	// Pace is the minimum interval between two measurements.
	Pace time.Duration `yaml:"pace" validate:"gte=0"`

	// MaxTrials caps the number of measurements. Zero means no limit.
	MaxTrials int `yaml:"maxTrials" validate:"gte=0"`

	Journal JournalConfig `yaml:"journal"`
	Archive ArchiveConfig `yaml:"archive"`
}

// JournalConfig configures the run journal.
type JournalConfig struct {
	// Dir enables journaling into that directory.
	Dir      string `yaml:"dir"`
	Compress bool   `yaml:"compress"`
	// NoSync skips the fsync after every record.
	NoSync bool `yaml:"noSync"`
}

// ArchiveConfig configures where finished run reports are stored.
type ArchiveConfig struct {
	// URI selects the store, e.g. file://dir, s3://bucket/prefix or
	// minio://endpoint/bucket/prefix. Empty disables archiving.
	URI         string              `yaml:"uri"`
	Compression archive.Compression `yaml:"compression"`

	// IndexTable is the DynamoDB table of the run index (s3 only).
	IndexTable string `yaml:"indexTable"`
	// Experiment groups runs in the run index.
	Experiment string `yaml:"experiment" validate:"required_with=IndexTable"`
}

// DefaultConfig returns a config with default parameters and no channels.
func DefaultConfig() Config {
	return Config{
		Parameters: diffevol.DefaultParameters(),
		Archive: ArchiveConfig{
			Compression: archive.Zstd,
		},
	}
}

// LoadConfig reads a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: path is user-provided config
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return ParseConfig(bytes.NewReader(data))
}

// ParseConfig decodes a YAML config over DefaultConfig and validates it.
func ParseConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && err != io.EOF {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	if err := c.Parameters.Validate(); err != nil {
		return err
	}
	for _, ch := range c.Channels {
		if err := ch.validate(); err != nil {
			return err
		}
	}
	return nil
}

// Options returns the session options described by the config.
func (c Config) Options() []Option {
	opts := []Option{WithParameters(c.Parameters)}
	if c.Seed != nil {
		opts = append(opts, WithSeed(*c.Seed))
	}
	if c.Journal.Dir != "" {
		compress, noSync := c.Journal.Compress, c.Journal.NoSync
		opts = append(opts, WithJournal(c.Journal.Dir, func(o *journal.Options) {
			o.Compress = compress
			o.Sync = !noSync
		}))
	}
	return opts
}

// RunOptions returns the Run options described by the config.
func (c Config) RunOptions() []RunOption {
	return []RunOption{
		WithPace(c.Pace),
		WithMaxTrials(c.MaxTrials),
	}
}
