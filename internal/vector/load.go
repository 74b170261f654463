package vector

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// maxLineBytes bounds a single text entry; 300-dimension rows are a few KB.
const maxLineBytes = 16 << 20

// maxDimension caps the header dimension; published models stay in the low thousands.
const maxDimension = 1 << 16

// LoadOption configures Load and Read.
type LoadOption func(*loadOptions)

type loadOptions struct {
	format    Format
	limit     int
	cacheSize int
	logger    *zap.Logger
}

// WithFormat selects the file layout. FormatAuto (the default) decides by extension.
func WithFormat(f Format) LoadOption {
	return func(o *loadOptions) { o.format = f }
}

// WithLimit reads at most n entries (duplicates count). Zero reads everything.
func WithLimit(n int) LoadOption {
	return func(o *loadOptions) { o.limit = n }
}

// WithCacheSize bounds the number of unit vectors kept between queries. Zero disables the cache.
func WithCacheSize(n int) LoadOption {
	return func(o *loadOptions) { o.cacheSize = n }
}

// WithLogger sets a logger for load progress and duplicate warnings.
func WithLogger(l *zap.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// ParseFormat converts a config or flag value into a Format. Empty means FormatAuto.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatAuto, "":
		return FormatAuto, nil
	case FormatText, "txt":
		return FormatText, nil
	case FormatBinary, "bin":
		return FormatBinary, nil
	default:
		return "", fmt.Errorf("%w: %q (supported: auto, text, binary)", ErrUnknownFormat, s)
	}
}

// DetectFormat guesses the layout from the file name, ignoring a trailing ".gz".
func DetectFormat(path string) Format {
	name := strings.TrimSuffix(strings.ToLower(path), ".gz")
	if filepath.Ext(name) == ".bin" {
		return FormatBinary
	}
	return FormatText
}

// Load reads the vector file at path. Files ending in ".gz" are decompressed
// on the fly. Any failure is returned as a *LoadError.
func Load(path string, opts ...LoadOption) (*Space, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	defer f.Close()

	var r io.Reader = f
	if strings.EqualFold(filepath.Ext(path), ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("open gzip stream: %w", err)}
		}
		defer gz.Close()
		r = gz
	}

	o := applyOptions(opts)
	if o.format == FormatAuto {
		opts = append(opts, WithFormat(DetectFormat(path)))
	}
	return Read(r, path, opts...)
}

// Read parses vectors from r. name is used in errors and stats. With
// FormatAuto, r is parsed as text.
func Read(r io.Reader, name string, opts ...LoadOption) (*Space, error) {
	o := applyOptions(opts)
	if o.format == FormatAuto {
		o.format = FormatText
	}
	units, err := newUnitCache(o.cacheSize)
	if err != nil {
		return nil, &LoadError{Path: name, Err: err}
	}
	s := &Space{
		index: make(map[string]int),
		stats: Stats{Path: name, Format: o.format},
		units: units,
	}

	br := bufio.NewReaderSize(r, 1<<20)
	switch o.format {
	case FormatText:
		err = readText(br, s, o)
	case FormatBinary:
		err = readBinary(br, s, o)
	default:
		err = &LoadError{Path: name, Err: fmt.Errorf("%w: %q", ErrUnknownFormat, o.format)}
	}
	if err != nil {
		return nil, err
	}

	if s.stats.Entries == 0 {
		return nil, &LoadError{Path: name, Err: ErrEmpty}
	}
	if s.stats.Duplicates > 0 && o.logger != nil {
		o.logger.Warn("duplicate tokens ignored; first occurrence kept",
			zap.String("path", name),
			zap.Int("duplicates", s.stats.Duplicates))
	}
	if o.logger != nil {
		o.logger.Info("vectors loaded",
			zap.String("path", name),
			zap.String("format", string(o.format)),
			zap.Int("tokens", s.Len()),
			zap.Int("dimensions", s.dim))
	}
	return s, nil
}

func applyOptions(opts []LoadOption) *loadOptions {
	o := &loadOptions{format: FormatAuto}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// parseHeader reports whether fields form a "<count> <dim>" header line.
func parseHeader(fields []string) (count, dim int, ok bool) {
	if len(fields) != 2 {
		return 0, 0, false
	}
	count, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, false
	}
	dim, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, false
	}
	return count, dim, true
}

func (s *Space) setHeader(count, dim int) error {
	if count < 0 || dim <= 0 || dim > maxDimension {
		return fmt.Errorf("%w: vocab size %d, dimension %d", ErrBadHeader, count, dim)
	}
	s.dim = dim
	s.stats.HasHeader = true
	s.stats.Declared = count
	return nil
}

// insert records one parsed entry, counting it even when it is a duplicate.
func (s *Space) insert(token string, vec []float32, o *loadOptions) {
	s.stats.Entries++
	if !s.add(token, vec) {
		s.stats.Duplicates++
		if o.logger != nil {
			o.logger.Debug("duplicate token skipped", zap.String("token", token))
		}
	}
}

func readText(r io.Reader, s *Space, o *loadOptions) error {
	name := s.stats.Path
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
	lineNo := 0
	seenFirst := false
	for sc.Scan() {
		lineNo++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if !seenFirst {
			seenFirst = true
			if count, dim, ok := parseHeader(fields); ok {
				if err := s.setHeader(count, dim); err != nil {
					return &LoadError{Path: name, Line: lineNo, Err: err}
				}
				continue
			}
		}
		if o.limit > 0 && s.stats.Entries >= o.limit {
			break
		}
		if len(fields) < 2 {
			return &LoadError{Path: name, Line: lineNo, Err: fmt.Errorf("%w: token %q has no values", ErrMalformedLine, fields[0])}
		}
		if s.dim == 0 {
			if len(fields)-1 > maxDimension {
				return &LoadError{Path: name, Line: lineNo, Err: fmt.Errorf("%w: %d values exceeds the %d dimension limit", ErrMalformedLine, len(fields)-1, maxDimension)}
			}
			s.dim = len(fields) - 1
		}
		if got := len(fields) - 1; got != s.dim {
			return &LoadError{Path: name, Line: lineNo, Err: fmt.Errorf("%w: got %d values, want %d", ErrDimensionMismatch, got, s.dim)}
		}
		vec := make([]float32, s.dim)
		for i, field := range fields[1:] {
			v, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return &LoadError{Path: name, Line: lineNo, Err: fmt.Errorf("%w: %w", ErrMalformedLine, err)}
			}
			if !finite(v) {
				return &LoadError{Path: name, Line: lineNo, Err: fmt.Errorf("%w: value %q is not finite", ErrMalformedLine, field)}
			}
			vec[i] = float32(v)
		}
		s.insert(fields[0], vec, o)
	}
	if err := sc.Err(); err != nil {
		return &LoadError{Path: name, Line: lineNo + 1, Err: err}
	}
	if s.stats.HasHeader && o.limit == 0 && s.stats.Entries != s.stats.Declared {
		return &LoadError{Path: name, Err: fmt.Errorf("%w: declared %d, read %d", ErrTruncated, s.stats.Declared, s.stats.Entries)}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// isEOF reports whether err means the input ended early.
func isEOF(err error) bool {
	return errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF)
}
