// Package distance provides the kernels that compare a sensor measurement with
// the search target.
//
// # Supported Kernels
//
//   - KernelEuclidean: root mean square of the elementwise differences
//
// Other declared kernels are recognised by name but not implemented;
// Provider returns ErrUnsupportedKernel for them.
//
// # Usage
//
//	fn, err := distance.Provider(distance.KernelEuclidean)
//	d, err := fn(target, measurement)
package distance
