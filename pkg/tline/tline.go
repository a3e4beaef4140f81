// Package tline extracts the propagation constant, characteristic impedance
// and per-unit-length RLGC of a uniform two-conductor transmission line from
// its two-port parameters and physical length [EIS92].
//
// The chain matrix of a line of length l has eigenvalues exp(±γl). Both roots
// are kept: Forward is built from mean+delta and Backward from mean-delta.
// Which one is physical depends on passivity and causality of the measured
// line and is left to the caller.
//
// Everything is computed once in New. A degenerate frequency point (C = 0,
// f = 0) yields NaN or Inf in the affected outputs instead of an error.
package tline

import (
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/cmplx"
	"slices"

	"gonum.org/v1/gonum/cmplxs"

	"github.com/edp1096/nport/pkg/branch"
	"github.com/edp1096/nport/pkg/network"
)

// TwoPort is what the extractor needs from a network.
type TwoPort interface {
	Ports() int
	Convert(to network.ParamType) (*network.Network, error)
}

// ImpedanceFormula selects how Z0 is obtained from the chain parameters.
type ImpedanceFormula int

const (
	// FromC uses Z0f = (fwd - D)/C and Z0b = (D - bwd)/C.
	FromC ImpedanceFormula = iota
	// FromB uses Z0f = B/(fwd - A) and Z0b = B/(A - bwd). Equivalent to FromC
	// for an exact line, better conditioned when C is close to zero.
	FromB
)

type Option func(*config)

type config struct {
	formula ImpedanceFormula
	logger  *slog.Logger
}

func WithImpedanceFormula(f ImpedanceFormula) Option {
	return func(c *config) { c.formula = f }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}

type TransmissionLine struct {
	freqs  []float64
	length float64

	a, b, c, d []complex128

	delta       []complex128
	expForward  []complex128
	expBackward []complex128

	forward  Branch
	backward Branch
}

// New converts src to chain parameters and performs the extraction.
func New(src TwoPort, length float64, opts ...Option) (*TransmissionLine, error) {
	cfg := &config{
		formula: FromC,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(cfg)
	}

	if src == nil || src.Ports() != 2 {
		ports := 0
		if src != nil {
			ports = src.Ports()
		}
		return nil, fmt.Errorf("%w: got %d ports", ErrNotTwoPort, ports)
	}
	if !(length > 0) || math.IsInf(length, 0) {
		return nil, fmt.Errorf("%w: %g", ErrInvalidLength, length)
	}

	chain, err := src.Convert(network.Chain)
	if err != nil {
		return nil, fmt.Errorf("converting to ABCD: %w", err)
	}

	tl := &TransmissionLine{
		freqs:  chain.Frequencies(),
		length: length,
	}
	// indices are valid for a two-port, errors cannot occur here
	tl.a, _ = chain.Parameter(1, 1)
	tl.b, _ = chain.Parameter(1, 2)
	tl.c, _ = chain.Parameter(2, 1)
	tl.d, _ = chain.Parameter(2, 2)

	tl.extract(cfg.formula)

	if bad := len(tl.forward.NonFinite()) + len(tl.backward.NonFinite()); bad > 0 {
		cfg.logger.Warn("non-finite line parameters",
			"forward", len(tl.forward.NonFinite()),
			"backward", len(tl.backward.NonFinite()),
			"points", len(tl.freqs))
	}
	cfg.logger.Debug("line extracted", "points", len(tl.freqs), "length", length, "formula", cfg.formula)

	return tl, nil
}

func (tl *TransmissionLine) extract(formula ImpedanceFormula) {
	n := len(tl.freqs)

	// mean = (A + D)/2, det = AD - BC
	mean := cmplxs.AddTo(make([]complex128, n), tl.a, tl.d)
	cmplxs.ScaleReal(0.5, mean)
	det := cmplxs.SubTo(make([]complex128, n),
		cmplxs.MulTo(make([]complex128, n), tl.a, tl.d),
		cmplxs.MulTo(make([]complex128, n), tl.b, tl.c))

	disc := cmplxs.SubTo(make([]complex128, n), cmplxs.MulTo(make([]complex128, n), mean, mean), det)
	tl.delta = branch.Sqrt(disc)

	tl.expForward = cmplxs.AddTo(make([]complex128, n), mean, tl.delta)
	tl.expBackward = cmplxs.SubTo(make([]complex128, n), mean, tl.delta)

	gammaForward := branch.Log(tl.expForward)
	cmplxs.ScaleReal(1/tl.length, gammaForward)
	gammaBackward := branch.Log(tl.expBackward)
	cmplxs.ScaleReal(-1/tl.length, gammaBackward)

	var z0Forward, z0Backward []complex128
	switch formula {
	case FromB:
		z0Forward = cmplxs.DivTo(make([]complex128, n), tl.b, cmplxs.SubTo(make([]complex128, n), tl.expForward, tl.a))
		z0Backward = cmplxs.DivTo(make([]complex128, n), tl.b, cmplxs.SubTo(make([]complex128, n), tl.a, tl.expBackward))
	default:
		z0Forward = cmplxs.DivTo(make([]complex128, n), cmplxs.SubTo(make([]complex128, n), tl.expForward, tl.d), tl.c)
		z0Backward = cmplxs.DivTo(make([]complex128, n), cmplxs.SubTo(make([]complex128, n), tl.d, tl.expBackward), tl.c)
	}

	tl.forward = newBranch(tl.freqs, gammaForward, z0Forward)
	tl.backward = newBranch(tl.freqs, gammaBackward, z0Backward)
}

func (tl *TransmissionLine) Freqs() []float64 { return slices.Clone(tl.freqs) }
func (tl *TransmissionLine) Length() float64  { return tl.length }

// Forward is the branch derived from exp(γl) = mean + delta.
func (tl *TransmissionLine) Forward() Branch { return tl.forward }

// Backward is the branch derived from exp(-γl) = mean - delta.
func (tl *TransmissionLine) Backward() Branch { return tl.backward }

// Delta is sqrt(mean² - det) with unwrapped phase.
func (tl *TransmissionLine) Delta() []complex128       { return slices.Clone(tl.delta) }
func (tl *TransmissionLine) ExpForward() []complex128  { return slices.Clone(tl.expForward) }
func (tl *TransmissionLine) ExpBackward() []complex128 { return slices.Clone(tl.expBackward) }

// Branch holds one root's propagation constant, characteristic impedance and
// per-unit-length parameters. Accessors return copies.
type Branch struct {
	gamma []complex128
	z0    []complex128
	rpm   []float64
	lpm   []float64
	gpm   []float64
	cpm   []float64
}

func newBranch(freqs []float64, gamma, z0 []complex128) Branch {
	n := len(freqs)

	// γZ0 = R + jωL, γ/Z0 = G + jωC
	series := cmplxs.MulTo(make([]complex128, n), gamma, z0)
	shunt := cmplxs.DivTo(make([]complex128, n), gamma, z0)

	b := Branch{
		gamma: gamma,
		z0:    z0,
		rpm:   cmplxs.Real(make([]float64, n), series),
		lpm:   cmplxs.Imag(make([]float64, n), series),
		gpm:   cmplxs.Real(make([]float64, n), shunt),
		cpm:   cmplxs.Imag(make([]float64, n), shunt),
	}
	for i, f := range freqs {
		omega := 2 * math.Pi * f
		b.lpm[i] /= omega
		b.cpm[i] /= omega
	}
	return b
}

func (b Branch) Gamma() []complex128 { return slices.Clone(b.gamma) }
func (b Branch) Z0() []complex128    { return slices.Clone(b.z0) }

// R is resistance per meter (ohm/m).
func (b Branch) R() []float64 { return slices.Clone(b.rpm) }

// L is inductance per meter (H/m).
func (b Branch) L() []float64 { return slices.Clone(b.lpm) }

// G is conductance per meter (S/m).
func (b Branch) G() []float64 { return slices.Clone(b.gpm) }

// C is capacitance per meter (F/m).
func (b Branch) C() []float64 { return slices.Clone(b.cpm) }

// NonFinite returns the sweep indices where any output of the branch is NaN
// or infinite.
func (b Branch) NonFinite() []int {
	var idx []int
	for i := range b.gamma {
		if !finiteC(b.gamma[i]) || !finiteC(b.z0[i]) ||
			!finite(b.rpm[i]) || !finite(b.lpm[i]) || !finite(b.gpm[i]) || !finite(b.cpm[i]) {
			idx = append(idx, i)
		}
	}
	return idx
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func finiteC(v complex128) bool { return !cmplx.IsNaN(v) && !cmplx.IsInf(v) }
