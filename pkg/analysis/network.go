package analysis

import (
	"errors"
	"fmt"

	"github.com/edp1096/nport/pkg/circuit"
	"github.com/edp1096/nport/pkg/network"
	"github.com/edp1096/nport/pkg/synth"
)

var ErrNotExecuted = errors.New("analysis: network analysis has not been executed")

// NetworkAnalysis sweeps the S-parameters of the ports of a circuit.
type NetworkAnalysis struct {
	BaseAnalysis
	startFreq   float64
	stopFreq    float64
	numPoints   int
	pointsType  string // "DEC", "OCT", "LIN"
	frequencies []float64
	samples     []network.Matrix
}

func NewNetwork(fStart, fStop float64, nPoints int, pType string) *NetworkAnalysis {
	return &NetworkAnalysis{
		BaseAnalysis: *NewBaseAnalysis(),
		startFreq:    fStart,
		stopFreq:     fStop,
		numPoints:    nPoints,
		pointsType:   pType,
	}
}

func (na *NetworkAnalysis) Setup(ckt *circuit.Circuit) error {
	var err error

	if len(ckt.Ports()) == 0 {
		return circuit.ErrNoPorts
	}
	na.Circuit = ckt

	na.frequencies, err = synth.Sweep(na.pointsType, na.startFreq, na.stopFreq, na.numPoints)
	if err != nil {
		return fmt.Errorf("frequency points: %w", err)
	}

	return nil
}

func (na *NetworkAnalysis) Execute() error {
	if na.Circuit == nil {
		return fmt.Errorf("circuit not set")
	}

	na.samples = make([]network.Matrix, 0, len(na.frequencies))
	for _, freq := range na.frequencies {
		s, err := na.Circuit.ScatteringMatrix(freq)
		if err != nil {
			return err
		}
		na.samples = append(na.samples, s)

		solution := make(map[string]complex128)
		for i := range s {
			for j := range s[i] {
				solution[fmt.Sprintf("S%d%d", i+1, j+1)] = s[i][j]
			}
		}
		na.StoreACResult(freq, solution)
	}

	return nil
}

// Network returns the swept S-parameters referenced to the circuit Z0.
func (na *NetworkAnalysis) Network() (*network.Network, error) {
	if na.Circuit == nil || len(na.samples) != len(na.frequencies) {
		return nil, ErrNotExecuted
	}
	return network.New(na.frequencies, na.samples, network.Scattering, na.Circuit.Z0())
}
