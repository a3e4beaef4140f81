package netlist

import (
	"bufio"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/edp1096/nport/internal/consts"
	"github.com/edp1096/nport/pkg/device"
)

var (
	ErrUnsupported = errors.New("netlist: unsupported statement")
	ErrSyntax      = errors.New("netlist: syntax error")
)

type NetlistData struct {
	Elements []Element      // Circuit elements, ports included
	Nodes    map[string]int // Node name and index of first appearance
	HasAC    bool
	ACParam  struct {
		Sweep  string  // DEC, OCT, LIN
		Points int     // number of sweep points
		FStart float64 // start frequency
		FStop  float64 // stop frequency
	}
	Z0    float64 // Port reference impedance
	Title string  // Circuit title
}

type Element struct {
	Type   string            // Part type (R, L, C, K, P)
	Name   string            // Part name
	Nodes  []string          // Node names
	Value  float64           // Part value
	Params map[string]string // Parameter values
}

// Ports returns the port elements in declaration order.
func (n *NetlistData) Ports() []Element {
	var ports []Element
	for _, elem := range n.Elements {
		if elem.Type == "P" {
			ports = append(ports, elem)
		}
	}
	return ports
}

var unitMap = map[string]float64{
	"T":   1e12,  // tera
	"t":   1e12,  // tera
	"G":   1e9,   // giga
	"g":   1e9,   // giga
	"meg": 1e6,   // mega
	"K":   1e3,   // kilo
	"k":   1e3,   // kilo
	"M":   1e-3,  // milli
	"m":   1e-3,  // milli
	"u":   1e-6,  // micro
	"n":   1e-9,  // nano
	"p":   1e-12, // pico
	"f":   1e-15, // femto
}

var (
	valuePattern = regexp.MustCompile(`^([-+]?\d*\.?\d+(?:[eE][-+]?\d+)?)((?i:meg)|[TtGgMKkmunpf])?(?:[a-zA-Z]*)$`)
	spaces       = regexp.MustCompile(`\s+`)
)

// Parse reads a netlist. The first line is the title. "*" starts a comment,
// "+" continues the previous statement and ".end" stops parsing.
func Parse(input string) (*NetlistData, error) {
	scanner := bufio.NewScanner(strings.NewReader(input))
	netlistData := &NetlistData{
		Nodes: make(map[string]int),
		Z0:    consts.DefaultZ0,
	}

	// Title or comment
	if scanner.Scan() {
		netlistData.Title = strings.TrimPrefix(scanner.Text(), "*")
		netlistData.Title = strings.TrimSpace(netlistData.Title)
	}

	var currentLine string
	flush := func() error {
		if currentLine == "" {
			return nil
		}
		err := parseLine(netlistData, currentLine)
		currentLine = ""
		return err
	}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		// Inline comment
		if idx := strings.Index(line, "*"); idx >= 0 {
			line = strings.TrimSpace(line[:idx])
		}
		if len(line) == 0 {
			continue
		}

		// Line continue
		if strings.HasPrefix(line, "+") {
			if currentLine == "" {
				return nil, fmt.Errorf("%w: continuation without a statement", ErrSyntax)
			}
			currentLine += " " + strings.TrimSpace(line[1:])
			continue
		}

		if err := flush(); err != nil {
			return nil, err
		}
		if strings.EqualFold(line, ".end") {
			break
		}
		currentLine = line
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading netlist: %w", err)
	}
	if err := flush(); err != nil {
		return nil, err
	}

	return netlistData, nil
}

func parseLine(netlistData *NetlistData, line string) error {
	line = spaces.ReplaceAllString(line, " ")

	if strings.HasPrefix(line, ".") {
		return parseDotOperator(netlistData, line)
	}

	element, err := parseElement(line)
	if err != nil {
		return err
	}
	addElement(netlistData, *element)
	return nil
}

func addElement(netlistData *NetlistData, element Element) {
	netlistData.Elements = append(netlistData.Elements, element)
	for _, node := range element.Nodes {
		if _, exists := netlistData.Nodes[node]; !exists {
			netlistData.Nodes[node] = len(netlistData.Nodes)
		}
	}
}

// Parse .port, .ac, .z0
func parseDotOperator(netlistData *NetlistData, line string) error {
	var err error

	fields := strings.Fields(line)

	switch strings.ToLower(fields[0]) {
	case ".port":
		if len(fields) != 3 {
			return fmt.Errorf("%w: .port needs a positive and a negative node", ErrSyntax)
		}
		port := Element{
			Type:   "P",
			Name:   fmt.Sprintf("P%d", len(netlistData.Ports())+1),
			Nodes:  []string{fields[1], fields[2]},
			Params: map[string]string{},
		}
		if port.Nodes[0] == port.Nodes[1] {
			return fmt.Errorf("%w: port %s shorts node %s", ErrSyntax, port.Name, port.Nodes[0])
		}
		addElement(netlistData, port)

	case ".ac":
		netlistData.HasAC = true
		if len(fields) < 5 {
			return fmt.Errorf("%w: .ac needs sweep type, points, fstart and fstop", ErrSyntax)
		}

		// DEC, OCT, LIN
		netlistData.ACParam.Sweep = strings.ToUpper(fields[1])
		if netlistData.ACParam.Sweep != "DEC" && netlistData.ACParam.Sweep != "OCT" && netlistData.ACParam.Sweep != "LIN" {
			return fmt.Errorf("%w: invalid sweep type: %s", ErrSyntax, netlistData.ACParam.Sweep)
		}

		netlistData.ACParam.Points, err = strconv.Atoi(fields[2])
		if err != nil || netlistData.ACParam.Points < 1 {
			return fmt.Errorf("%w: invalid points number: %s", ErrSyntax, fields[2])
		}
		netlistData.ACParam.FStart, err = ParseValue(fields[3])
		if err != nil {
			return fmt.Errorf("invalid fstart: %w", err)
		}
		netlistData.ACParam.FStop, err = ParseValue(fields[4])
		if err != nil {
			return fmt.Errorf("invalid fstop: %w", err)
		}

	case ".z0":
		if len(fields) != 2 {
			return fmt.Errorf("%w: .z0 needs one value", ErrSyntax)
		}
		netlistData.Z0, err = ParseValue(fields[1])
		if err != nil {
			return fmt.Errorf("invalid z0: %w", err)
		}
		if netlistData.Z0 <= 0 {
			return fmt.Errorf("%w: z0 must be positive: %g", ErrSyntax, netlistData.Z0)
		}

	default:
		return fmt.Errorf("%w: %s", ErrUnsupported, fields[0])
	}

	return nil
}

func parseElement(line string) (*Element, error) {
	fields := strings.Fields(line)

	elem := &Element{
		Name:   fields[0],
		Type:   strings.ToUpper(string(fields[0][0])),
		Params: make(map[string]string),
	}

	switch elem.Type {
	case "R", "L", "C":
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: %s needs two nodes and a value", ErrSyntax, elem.Name)
		}
		elem.Nodes = fields[1:3]
		value, err := ParseValue(fields[3])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", elem.Name, err)
		}
		if value <= 0 {
			return nil, fmt.Errorf("%w: %s must have a positive value", ErrSyntax, elem.Name)
		}
		elem.Value = value
		return elem, nil

	case "K": // Mutual inductance
		if len(fields) < 4 {
			return nil, fmt.Errorf("%w: %s needs inductors and a coupling coefficient", ErrSyntax, elem.Name)
		}

		// Last field is the coupling coefficient
		coefficient, err := ParseValue(fields[len(fields)-1])
		if err != nil {
			return nil, fmt.Errorf("%s: invalid coupling coefficient: %w", elem.Name, err)
		}
		if coefficient < -1 || coefficient > 1 {
			return nil, fmt.Errorf("%w: coupling coefficient must be between -1 and 1: %g", ErrSyntax, coefficient)
		}

		// Every field in between is an inductor name
		indNames := fields[1 : len(fields)-1]
		if len(indNames) < 2 {
			return nil, fmt.Errorf("%w: %s requires at least two inductors", ErrSyntax, elem.Name)
		}
		for i, name := range indNames {
			elem.Params[fmt.Sprintf("ind%d", i+1)] = name
		}
		elem.Value = coefficient
		return elem, nil
	}

	return nil, fmt.Errorf("%w: element %s", ErrUnsupported, elem.Name)
}

// ParseValue - Parse value and factor. 1k -> 1000, 10pF -> 1e-11, 1MEG -> 1e6, 1M -> 1e-3
func ParseValue(val string) (float64, error) {
	matches := valuePattern.FindStringSubmatch(strings.TrimSpace(val))
	if matches == nil {
		return 0, fmt.Errorf("%w: invalid value format: %s", ErrSyntax, val)
	}

	num, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	// factor
	if factor := matches[2]; factor != "" {
		if strings.EqualFold(factor, "meg") {
			factor = "meg"
		}
		if multiplier, ok := unitMap[factor]; ok {
			num *= multiplier
		}
	}

	return num, nil
}

func CreateDevice(elem Element) (device.Device, error) {
	switch elem.Type {
	case "R":
		return device.NewResistor(elem.Name, elem.Nodes, elem.Value), nil

	case "L":
		return device.NewInductor(elem.Name, elem.Nodes, elem.Value), nil

	case "C":
		return device.NewCapacitor(elem.Name, elem.Nodes, elem.Value), nil

	case "K":
		var indNames []string
		for i := 1; ; i++ {
			name, ok := elem.Params[fmt.Sprintf("ind%d", i)]
			if !ok {
				break
			}
			indNames = append(indNames, name)
		}
		if len(indNames) < 2 {
			return nil, fmt.Errorf("mutual coupling %s requires at least two inductors", elem.Name)
		}
		return device.NewMutual(elem.Name, indNames, elem.Value), nil

	case "P":
		return device.NewPort(elem.Name, elem.Nodes), nil
	}

	return nil, fmt.Errorf("%w: element type %s", ErrUnsupported, elem.Type)
}
