package matrix

// DeviceMatrix is the stamping surface seen by devices. Indices are 1-based;
// index 0 is ground and must be skipped by the caller.
type DeviceMatrix interface {
	AddComplexElement(i, j int, real, imag float64)
	AddComplexRHS(i int, real, imag float64)
}
