package analysis

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/edp1096/nport/pkg/circuit"
	"github.com/edp1096/nport/pkg/netlist"
	"github.com/edp1096/nport/pkg/network"
)

// Simulate builds the circuit of a parsed netlist and runs its .ac sweep
// as a network analysis. logger may be nil.
func Simulate(data *netlist.NetlistData, logger *slog.Logger) (*network.Network, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if !data.HasAC {
		return nil, fmt.Errorf("%w: no .ac sweep", netlist.ErrSyntax)
	}

	// 1. Map nodes and branches
	ckt := circuit.New(data.Title, data.Z0)
	defer ckt.Destroy()
	if err := ckt.AssignNodeBranchMaps(data.Elements); err != nil {
		return nil, fmt.Errorf("creating circuit mappings: %w", err)
	}

	// 2. Create matrix
	if err := ckt.CreateMatrix(); err != nil {
		return nil, err
	}

	// 3. Create devices and stamp
	if err := ckt.SetupDevices(data.Elements); err != nil {
		return nil, fmt.Errorf("setting up devices: %w", err)
	}
	logger.Debug("circuit assembled",
		"title", ckt.Name(),
		"nodes", ckt.GetNumNodes(),
		"branches", len(ckt.GetBranchMap()),
		"ports", len(ckt.Ports()),
		"z0", ckt.Z0())

	// 4. Sweep
	param := data.ACParam
	analyzer := NewNetwork(param.FStart, param.FStop, param.Points, param.Sweep)
	if err := analyzer.Setup(ckt); err != nil {
		return nil, fmt.Errorf("analysis setup failed: %w", err)
	}
	if err := analyzer.Execute(); err != nil {
		return nil, fmt.Errorf("analysis execution failed: %w", err)
	}
	logger.Info("network analysis completed", "points", len(analyzer.GetResults()["FREQ"]))

	return analyzer.Network()
}
