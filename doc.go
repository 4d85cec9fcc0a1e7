// Package plssmooth fits smooth curves to repeated functional observations
// by penalized basis-expansion regression.
//
// Callers supply an observation matrix Y (subjects × observation points),
// a basis matrix B evaluated at the observation points (points × basis
// functions) and a symmetric positive semi-definite roughness penalty P
// (basis functions × basis functions). The package solves the regularized
// normal equations
//
//	(BᵀB + 10^logLambda · P) C = Bᵀ Yᵀ
//
// by Cholesky factorization and, when asked, chooses the regularization
// strength automatically by minimizing a generalized cross-validation
// score (GCV) or its robust variant (RGCV) over a log10 interval: a coarse
// random scan seeds a bounded L-BFGS refinement.
//
// Three entry points are provided: Solve for a fixed regularization
// strength, SolveGCV / SolveRGCV (and the generic SearchSolve) for
// search-and-solve, and the configurable Model facade that dispatches on
// a validated method name.
//
// Errors are reported through the sentinels ErrShapeMismatch,
// ErrNotPositiveDefinite, ErrInvalidMethod, ErrInvalidOptions and
// ErrSearchFailed; match them with errors.Is. Basis and penalty
// construction are out of scope: B and P are opaque dense matrices here.
package plssmooth
