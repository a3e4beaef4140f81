package touchstone

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/edp1096/nport/internal/consts"
	"github.com/edp1096/nport/pkg/network"
)

type WriteOption func(*writeConfig)

type writeConfig struct {
	precision int
	now       time.Time
}

// WithPrecision writes numbers with n significant digits. The default is the
// shortest representation that reads back to the same float64.
func WithPrecision(n int) WriteOption {
	return func(c *writeConfig) {
		if n > 0 {
			c.precision = n
		}
	}
}

// WithTime fixes the creation time written to the header.
func WithTime(t time.Time) WriteOption {
	return func(c *writeConfig) { c.now = t }
}

// Write serializes an S-parameter network. Frequencies are written in Hz.
func Write(w io.Writer, n *network.Network, f Format, opts ...WriteOption) error {
	cfg := &writeConfig{precision: -1, now: time.Now()}
	for _, opt := range opts {
		opt(cfg)
	}

	c, err := checkWritable(n, f)
	if err != nil {
		return err
	}

	num := func(v float64) string { return strconv.FormatFloat(v, 'g', cfg.precision, 64) }

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "! Created by %s\n", consts.ToolName)
	fmt.Fprintf(bw, "! Creation time: %s\n", cfg.now.Format("2006/01/02 15:04:05"))
	fmt.Fprintf(bw, "# Hz %s %s R %s\n", n.Type(), f, num(n.Z0()))

	ports := n.Ports()
	wrap := 4
	if ports == 3 {
		wrap = 3
	}

	freqs := n.Frequencies()
	var sb strings.Builder
	for i, freq := range freqs {
		sb.Reset()
		sb.WriteString("\t" + num(freq) + "\t")
		for k, v := range n.Sample(i).Flatten(fillOrder(ports)) {
			if k != 0 && k%wrap == 0 {
				sb.WriteString("\n\t\t")
			}
			sb.WriteString(" " + num(c.first(v)) + " " + num(c.second(v)))
		}
		sb.WriteString("\n")
		if _, err := bw.WriteString(sb.String()); err != nil {
			return fmt.Errorf("writing touchstone data: %w", err)
		}
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("writing touchstone data: %w", err)
	}
	return nil
}

// WriteFile writes n to base + ".s<P>p" and returns the path written.
func WriteFile(n *network.Network, base string, f Format, opts ...WriteOption) (path string, err error) {
	if _, err := checkWritable(n, f); err != nil {
		return "", err
	}
	path = fmt.Sprintf("%s.s%dp", base, n.Ports())

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating touchstone file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing touchstone file: %w", cerr)
		}
	}()

	if err := Write(file, n, f, opts...); err != nil {
		return "", err
	}
	return path, nil
}

func checkWritable(n *network.Network, f Format) (codec, error) {
	if n == nil {
		return codec{}, ErrNilNetwork
	}
	if n.Type() != network.Scattering {
		return codec{}, fmt.Errorf("%w: got %s", ErrUnsupportedParameter, n.Type())
	}
	return f.codec()
}
