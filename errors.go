package plssmooth

import "errors"

// Sentinel errors for smoothing operations. Failures are wrapped with the
// stage that produced them; use errors.Is to classify.
var (
	// ErrShapeMismatch indicates incompatible dimensions among Y, B and P.
	ErrShapeMismatch = errors.New("plssmooth: incompatible matrix dimensions")
	// ErrNotPositiveDefinite indicates a Cholesky factorization failed because
	// the regularized cross-product BᵀB + λP is not positive definite.
	ErrNotPositiveDefinite = errors.New("plssmooth: regularized system is not positive definite")
	// ErrInvalidMethod indicates an unsupported smoothing method name.
	ErrInvalidMethod = errors.New("plssmooth: unknown smoothing method")
	// ErrInvalidOptions indicates malformed search options.
	ErrInvalidOptions = errors.New("plssmooth: malformed search options")
	// ErrSearchFailed indicates the hyperparameter search found no feasible
	// candidate or its local refinement did not converge.
	ErrSearchFailed = errors.New("plssmooth: hyperparameter search failed")
)
