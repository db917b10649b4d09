// Package reduction maps compressed coefficients back to the full output
// space of the emulator.
//
// PCA implements the inverse of a principal component projection:
//
//	x = coeffs · components + mean
//
// For a whitened projection each component row is first scaled by the square
// root of its explained variance.
package reduction
