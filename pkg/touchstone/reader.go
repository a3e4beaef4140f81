package touchstone

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/edp1096/nport/pkg/network"
)

type ReadOption func(*readConfig)

type readConfig struct {
	logger         *slog.Logger
	allowTruncated bool
}

// WithLogger reports the file layout (ports, unit, type, format, z0) at Info.
func WithLogger(l *slog.Logger) ReadOption {
	return func(c *readConfig) {
		if l != nil {
			c.logger = l
		}
	}
}

// AllowTruncated makes the reader drop an incomplete final record instead of
// failing with ErrIncompleteRecord.
func AllowTruncated() ReadOption {
	return func(c *readConfig) { c.allowTruncated = true }
}

func newReadConfig(opts []ReadOption) *readConfig {
	cfg := &readConfig{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

var filenamePorts = regexp.MustCompile(`(?i)\.s(\d+)p$`)

// PortsFromPath returns N from a path ending in .sNp.
func PortsFromPath(path string) (int, error) {
	m := filenamePorts.FindStringSubmatch(filepath.Base(path))
	if m == nil {
		return 0, fmt.Errorf("%w: %s", ErrBadFilename, path)
	}
	ports, err := strconv.Atoi(m[1])
	if err != nil || ports < 1 {
		return 0, fmt.Errorf("%w: %s", ErrBadFilename, path)
	}
	return ports, nil
}

// ReadFile reads a Touchstone file, taking the port count from its extension.
func ReadFile(path string, opts ...ReadOption) (*network.Network, *Options, error) {
	ports, err := PortsFromPath(path)
	if err != nil {
		return nil, nil, err
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening touchstone file: %w", err)
	}
	defer file.Close()

	cfg := newReadConfig(opts)
	cfg.logger.Info("reading touchstone file", "file", path, "ports", ports)

	n, o, err := read(file, ports, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, o, nil
}

// Read parses Touchstone data for the given port count. The returned network
// holds S-parameters with frequencies in Hz.
func Read(r io.Reader, ports int, opts ...ReadOption) (*network.Network, *Options, error) {
	if ports < 1 {
		return nil, nil, fmt.Errorf("%w: %d ports", ErrPortMismatch, ports)
	}
	return read(r, ports, newReadConfig(opts))
}

type readState int

const (
	headerState readState = iota
	optionState
	dataState
)

type lineScanner struct {
	scanner *bufio.Scanner
	line    int
}

func newLineScanner(r io.Reader) *lineScanner {
	s := bufio.NewScanner(r)
	s.Buffer(make([]byte, 64*1024), 4*1024*1024)
	return &lineScanner{scanner: s}
}

func (s *lineScanner) Scan() bool {
	if !s.scanner.Scan() {
		return false
	}
	s.line++
	return true
}

func (s *lineScanner) Text() string { return s.scanner.Text() }
func (s *lineScanner) Err() error   { return s.scanner.Err() }

// record collects the values of one frequency point across continuation lines.
type record struct {
	line   int
	freq   float64
	values []complex128
}

type reader struct {
	ports   int
	cfg     *readConfig
	opts    Options
	decode  func(a, b float64) complex128
	current *record

	freqs []float64
	data  []network.Matrix
}

func read(r io.Reader, ports int, cfg *readConfig) (*network.Network, *Options, error) {
	rd := &reader{ports: ports, cfg: cfg}
	sc := newLineScanner(r)

	state := headerState
	for sc.Scan() {
		text := strings.TrimSpace(sc.Text())

		switch state {
		case headerState:
			if text == "" || strings.HasPrefix(text, "!") {
				continue
			}
			if !strings.HasPrefix(text, "#") {
				return nil, nil, fmt.Errorf("%w: line %d: data before option line", ErrMissingOptionLine, sc.line)
			}
			state = optionState
			fallthrough

		case optionState:
			if err := rd.options(text); err != nil {
				return nil, nil, fmt.Errorf("line %d: %w", sc.line, err)
			}
			state = dataState

		case dataState:
			if text == "" || strings.HasPrefix(text, "!") || strings.HasPrefix(text, "#") {
				continue
			}
			if err := rd.dataLine(text, sc.line); err != nil {
				return nil, nil, err
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading touchstone data: %w", err)
	}

	if state != dataState {
		return nil, nil, ErrMissingOptionLine
	}
	if rec := rd.current; rec != nil {
		if !cfg.allowTruncated {
			return nil, nil, fmt.Errorf("%w: record at line %d has %d of %d values",
				ErrIncompleteRecord, rec.line, len(rec.values), ports*ports)
		}
		cfg.logger.Warn("dropping incomplete record", "line", rec.line, "values", len(rec.values), "want", ports*ports)
	}

	if len(rd.freqs) == 0 {
		return network.Empty(ports, network.Scattering, rd.opts.Z0), &rd.opts, nil
	}
	n, err := network.New(rd.freqs, rd.data, network.Scattering, rd.opts.Z0)
	if err != nil {
		return nil, nil, err
	}
	return n, &rd.opts, nil
}

func (rd *reader) options(text string) error {
	opts, err := ParseOptions(text)
	if err != nil {
		return err
	}

	rd.cfg.logger.Info("option line",
		"unit", opts.Unit.String(),
		"type", opts.Type.String(),
		"format", opts.Format.String(),
		"z0", opts.Z0)

	if opts.Type != network.Scattering {
		return fmt.Errorf("%w: got %s", ErrUnsupportedParameter, opts.Type)
	}
	c, err := opts.Format.codec()
	if err != nil {
		return err
	}

	rd.opts = opts
	rd.decode = c.decode
	return nil
}

func (rd *reader) dataLine(text string, line int) error {
	text, _, _ = strings.Cut(text, "!")
	fields := strings.Fields(text)

	numbers := make([]float64, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fmt.Errorf("%w: line %d: bad number %q", ErrParse, line, field)
		}
		numbers[i] = v
	}

	if rd.current == nil {
		// first line of a record: frequency followed by value pairs
		if len(numbers)%2 != 1 {
			return fmt.Errorf("%w: line %d: expected frequency and value pairs, got %d numbers",
				ErrPortMismatch, line, len(numbers))
		}
		rd.current = &record{
			line:   line,
			freq:   numbers[0] * rd.opts.Unit.Multiplier(),
			values: make([]complex128, 0, rd.ports*rd.ports),
		}
		numbers = numbers[1:]
	} else if len(numbers)%2 != 0 {
		return fmt.Errorf("%w: line %d: continuation line has %d numbers", ErrPortMismatch, line, len(numbers))
	}

	rec := rd.current
	want := rd.ports * rd.ports
	if len(rec.values)+len(numbers)/2 > want {
		return fmt.Errorf("%w: line %d: more than %d values for %d ports", ErrPortMismatch, line, want, rd.ports)
	}
	for i := 0; i < len(numbers); i += 2 {
		rec.values = append(rec.values, rd.decode(numbers[i], numbers[i+1]))
	}

	if len(rec.values) == want {
		if k := len(rd.freqs); k > 0 && !(rec.freq > rd.freqs[k-1]) {
			return fmt.Errorf("%w: line %d: %g Hz after %g Hz", network.ErrFrequencyOrder, rec.line, rec.freq, rd.freqs[k-1])
		}
		m, err := network.Unflatten(rec.values, rd.ports, fillOrder(rd.ports))
		if err != nil {
			return fmt.Errorf("line %d: %w", rec.line, err)
		}
		rd.freqs = append(rd.freqs, rec.freq)
		rd.data = append(rd.data, m)
		rd.current = nil
	}
	return nil
}

// fillOrder is column-major for two-ports (S11 S21 S12 S22) and row-major
// for every other port count.
func fillOrder(ports int) network.Order {
	if ports == 2 {
		return network.ColumnMajor
	}
	return network.RowMajor
}
