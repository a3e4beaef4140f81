package consts

const (
	ToolName = "nport" // Written into generated file headers

	DefaultZ0 = 50.0 // Reference impedance (ohm)
	Gmin      = 1e-12

	HZ  = 1.0
	KHZ = 1e3
	MHZ = 1e6
	GHZ = 1e9
)
