// Package regression provides the trained regressors that map a normalized
// cosmology feature vector to the compressed coefficients of a boost curve.
//
// Two backends are available:
//
//   - Linear: y = coef · x + intercept
//   - GaussianProcess: posterior mean of a Gaussian process with an RBF or
//     Matern kernel, y = k(x, X_train) · alpha, optionally de-normalized with
//     the training target mean and standard deviation
//
// Both are immutable after construction and safe for concurrent use.
//
// Example:
//
//	coef := mat.NewDense(2, 3, []float64{1, 0, 0, 0, 1, 0})
//	reg, err := regression.NewLinear(coef, []float64{0.5, -0.5})
//	if err != nil {
//	    return err
//	}
//	y, err := reg.Predict([]float64{0.1, 0.2, 0.3})
package regression
