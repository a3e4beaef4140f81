package circuit

import (
	"errors"
	"fmt"

	"github.com/edp1096/nport/internal/consts"
	"github.com/edp1096/nport/pkg/device"
	"github.com/edp1096/nport/pkg/matrix"
	"github.com/edp1096/nport/pkg/netlist"
	"github.com/edp1096/nport/pkg/network"
)

var ErrNoPorts = errors.New("circuit: no ports defined")

type Circuit struct {
	name      string
	nodeMap   map[string]int
	branchMap map[string]int
	devices   []device.Device
	ports     []*device.Port
	numNodes  int
	z0        float64
	matrix    *matrix.ComplexMatrix
	Status    *device.CircuitStatus
}

// New returns an empty circuit whose ports are referenced to z0. A
// non-positive z0 selects consts.DefaultZ0.
func New(name string, z0 float64) *Circuit {
	if !(z0 > 0) {
		z0 = consts.DefaultZ0
	}
	return &Circuit{
		name:      name,
		nodeMap:   make(map[string]int),
		branchMap: make(map[string]int),
		devices:   make([]device.Device, 0),
		z0:        z0,
		Status:    &device.CircuitStatus{Gmin: consts.Gmin, Z0: z0},
	}
}

func isGround(nodeName string) bool {
	return nodeName == "0" || nodeName == "gnd"
}

// AssignNodeBranchMaps numbers the non-ground nodes from 1 and gives every
// inductor a branch row after the last node.
func (c *Circuit) AssignNodeBranchMaps(elements []netlist.Element) error {
	for _, elem := range elements {
		for _, nodeName := range elem.Nodes {
			if isGround(nodeName) {
				continue
			}
			if _, exists := c.nodeMap[nodeName]; !exists {
				idx := len(c.nodeMap) + 1
				c.nodeMap[nodeName] = idx
			}
		}
	}

	branchStart := len(c.nodeMap) + 1
	for _, elem := range elements {
		if elem.Type == "L" {
			if _, exists := c.branchMap[elem.Name]; exists {
				return fmt.Errorf("duplicate inductor %s", elem.Name)
			}
			c.branchMap[elem.Name] = branchStart
			branchStart++
		}
	}

	c.numNodes = len(c.nodeMap)
	return nil
}

func (c *Circuit) CreateMatrix() error {
	var err error

	matrixSize := len(c.nodeMap) + len(c.branchMap)
	c.matrix, err = matrix.NewMatrix(matrixSize)
	if err != nil {
		return fmt.Errorf("creating circuit matrix: %w", err)
	}
	return nil
}

func (c *Circuit) SetupDevices(elements []netlist.Element) error {
	var err error

	inductors := make(map[string]*device.Inductor)
	var mutuals []*device.Mutual

	for _, elem := range elements {
		dev, err := netlist.CreateDevice(elem)
		if err != nil {
			return fmt.Errorf("creating device %s: %w", elem.Name, err)
		}

		// Node index
		nodeIndices := make([]int, len(elem.Nodes))
		for i, nodeName := range elem.Nodes {
			if isGround(nodeName) {
				nodeIndices[i] = 0
				continue
			}
			nodeIndices[i] = c.nodeMap[nodeName]
		}
		dev.SetNodes(nodeIndices)

		switch d := dev.(type) {
		case *device.Inductor:
			d.SetBranchIndex(c.branchMap[elem.Name])
			inductors[elem.Name] = d
		case *device.Mutual:
			mutuals = append(mutuals, d)
		case *device.Port:
			c.ports = append(c.ports, d)
		}

		c.devices = append(c.devices, dev)
	}

	for _, m := range mutuals {
		for i, name := range m.GetInductorNames() {
			ind, ok := inductors[name]
			if !ok {
				return fmt.Errorf("mutual coupling %s: inductor %s not found", m.GetName(), name)
			}
			if err := m.SetInductor(i, ind); err != nil {
				return fmt.Errorf("mutual coupling %s: %w", m.GetName(), err)
			}
		}
	}

	// Initial stamp
	err = c.Stamp(c.Status)
	if err != nil {
		return fmt.Errorf("initial stamping failed: %w", err)
	}
	c.matrix.SetupElements()

	return nil
}

func (c *Circuit) Stamp(status *device.CircuitStatus) error {
	var err error

	for _, dev := range c.devices {
		err = dev.Stamp(c.matrix, status)
		if err != nil {
			return fmt.Errorf("stamping device %s: %w", dev.GetName(), err)
		}
	}

	// gmin from every node to ground
	for i := 1; i <= c.numNodes; i++ {
		c.matrix.AddComplexElement(i, i, status.Gmin, 0)
	}
	return nil
}

// ScatteringMatrix returns the S-parameters at freq. Every port is
// terminated in z0; port j is driven and the port voltages give column j.
func (c *Circuit) ScatteringMatrix(freq float64) (network.Matrix, error) {
	if len(c.ports) == 0 {
		return nil, ErrNoPorts
	}

	c.Status = &device.CircuitStatus{Frequency: freq, Gmin: consts.Gmin, Z0: c.z0}

	c.matrix.Clear()
	if err := c.Stamp(c.Status); err != nil {
		return nil, fmt.Errorf("stamping error at f=%g: %w", freq, err)
	}
	if err := c.matrix.Factor(); err != nil {
		return nil, fmt.Errorf("matrix factor error at f=%g: %w", freq, err)
	}

	s := network.NewMatrix(len(c.ports))
	for j, drive := range c.ports {
		c.matrix.ClearRHS()
		drive.Excite(c.matrix, c.z0)
		if err := c.matrix.Solve(); err != nil {
			return nil, fmt.Errorf("matrix solve error at f=%g: %w", freq, err)
		}
		for i, sense := range c.ports {
			s[i][j] = sense.Voltage(c.matrix.GetComplexSolution)
		}
		s[j][j] -= 1
	}

	return s, nil
}

func (c *Circuit) Z0() float64 {
	return c.z0
}

func (c *Circuit) GetNodeMap() map[string]int {
	return c.nodeMap
}

func (c *Circuit) GetBranchMap() map[string]int {
	return c.branchMap
}

func (c *Circuit) GetDevices() []device.Device {
	return c.devices
}

func (c *Circuit) Ports() []*device.Port {
	return c.ports
}

func (c *Circuit) Destroy() {
	if c.matrix != nil {
		c.matrix.Destroy()
	}
}

func (c *Circuit) Name() string {
	return c.name
}

func (c *Circuit) GetNumNodes() int {
	return c.numNodes
}
