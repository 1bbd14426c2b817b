package kvsml

import (
	"fmt"

	"github.com/go-kit/log"

	"github.com/arloliu/kvsml/compress"
	"github.com/arloliu/kvsml/dataarray"
	"github.com/arloliu/kvsml/errs"
	"github.com/arloliu/kvsml/format"
	"github.com/arloliu/kvsml/internal/options"
)

// DefaultVersion is written to the `version` attribute of the root element.
const DefaultVersion = "0.1"

// WriterConfig holds the settings shared by every Write function.
type WriterConfig struct {
	encoding    format.Encoding
	compression format.CompressionType
	logger      log.Logger
	version     string
}

// WriterOption configures a Write function.
type WriterOption = options.Option[*WriterConfig]

// ReaderConfig holds the settings shared by every Read function.
type ReaderConfig struct {
	logger log.Logger
}

// ReaderOption configures a Read function.
type ReaderOption = options.Option[*ReaderConfig]

var defaultWriterOptions = []WriterOption{
	WithEncoding(format.EncodingInline),
	WithCompression(format.CompressionNone),
	WithVersion(DefaultVersion),
}

// NewWriterConfig applies opts on top of the defaults: inline arrays, no
// compression, no logging.
func NewWriterConfig(opts ...WriterOption) (*WriterConfig, error) {
	cfg := &WriterConfig{logger: log.NewNopLogger()}
	if err := options.Apply(cfg, defaultWriterOptions...); err != nil {
		return nil, err
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Encoding returns the array encoding used for every multi-record array.
func (c *WriterConfig) Encoding() format.Encoding { return c.encoding }

// Compression returns the compression of external binary files.
func (c *WriterConfig) Compression() format.CompressionType { return c.compression }

// Version returns the value of the root `version` attribute.
func (c *WriterConfig) Version() string { return c.version }

func (c *WriterConfig) encodeOptions() []dataarray.EncodeOption {
	return []dataarray.EncodeOption{
		dataarray.WithCompression(c.compression),
		dataarray.WithLogger(c.logger),
	}
}

// WithEncoding selects how arrays holding more than one record are stored.
// Single records are always written inline.
func WithEncoding(enc format.Encoding) WriterOption {
	return options.New(func(c *WriterConfig) error {
		switch enc {
		case format.EncodingInline, format.EncodingExternalAscii, format.EncodingExternalBinary:
			c.encoding = enc
			return nil
		default:
			return fmt.Errorf("%w: encoding %d", errs.ErrUnknownFormat, enc)
		}
	})
}

// WithCompression compresses external binary data files. Other encodings
// ignore it.
func WithCompression(comp format.CompressionType) WriterOption {
	return options.New(func(c *WriterConfig) error {
		if _, err := compress.GetCodec(comp); err != nil {
			return err
		}
		c.compression = comp

		return nil
	})
}

// WithLogger sets the logger for write progress. A nil logger is ignored.
func WithLogger(logger log.Logger) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithVersion overrides the `version` attribute of the root element.
func WithVersion(version string) WriterOption {
	return options.NoError(func(c *WriterConfig) {
		c.version = version
	})
}

// NewReaderConfig applies opts on top of the defaults.
func NewReaderConfig(opts ...ReaderOption) (*ReaderConfig, error) {
	cfg := &ReaderConfig{logger: log.NewNopLogger()}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	return cfg, nil
}

// WithReaderLogger sets the logger for read progress. A nil logger is ignored.
func WithReaderLogger(logger log.Logger) ReaderOption {
	return options.NoError(func(c *ReaderConfig) {
		if logger != nil {
			c.logger = logger
		}
	})
}
