package plssmooth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Solve computes penalized least-squares coefficients for a fixed
// regularization strength. Y holds one subject per row and one observation
// point per column, B is the basis evaluated at those points (points ×
// basis functions) and P is the roughness penalty (basis × basis). The
// effective penalty weight is 10^logLambda, so any real logLambda yields a
// strictly positive weight.
//
// It forms M = BᵀB + 10^logLambda · P, factors M by Cholesky decomposition
// and solves M C = Bᵀ Yᵀ. The returned matrix C is basis functions ×
// subjects; logLambda is echoed back unchanged. A factorization failure
// (penalty too weak for BᵀB's conditioning, or P outside its positive
// semi-definite contract) is reported as ErrNotPositiveDefinite.
func Solve(Y, B, P *mat.Dense, logLambda float64) (*mat.Dense, float64, error) {
	if err := checkShapes(Y, B, P); err != nil {
		return nil, 0, err
	}

	var btb mat.Dense
	btb.Mul(B.T(), B)
	m := regularizedGram(&btb, P, math.Pow(10, logLambda))

	var chol mat.Cholesky
	if ok := chol.Factorize(m); !ok {
		return nil, 0, fmt.Errorf("plssmooth: factorization at log lambda %g: %w",
			logLambda, ErrNotPositiveDefinite)
	}

	var rhs mat.Dense
	rhs.Mul(B.T(), Y.T())

	c := &mat.Dense{}
	if err := chol.SolveTo(c, &rhs); err != nil {
		return nil, 0, fmt.Errorf("plssmooth: back substitution at log lambda %g: %w",
			logLambda, ErrNotPositiveDefinite)
	}
	return c, logLambda, nil
}

// regularizedGram assembles BᵀB + lambda·P as a symmetric matrix, reading
// only the upper triangles. Both inputs are symmetric by construction or by
// contract.
func regularizedGram(btb, p *mat.Dense, lambda float64) *mat.SymDense {
	k, _ := btb.Dims()
	m := mat.NewSymDense(k, nil)
	for i := 0; i < k; i++ {
		for j := i; j < k; j++ {
			m.SetSym(i, j, btb.At(i, j)+lambda*p.At(i, j))
		}
	}
	return m
}

// checkShapes verifies the dimension contract among the observation, basis
// and penalty matrices before any numeric work starts.
func checkShapes(Y, B, P *mat.Dense) error {
	_, points := Y.Dims()
	bPoints, k := B.Dims()
	if points != bPoints {
		return fmt.Errorf("plssmooth: Y has %d observation points per subject but B is evaluated at %d: %w",
			points, bPoints, ErrShapeMismatch)
	}
	pr, pc := P.Dims()
	if pr != k || pc != k {
		return fmt.Errorf("plssmooth: penalty is %d×%d but the basis has %d functions: %w",
			pr, pc, k, ErrShapeMismatch)
	}
	return nil
}
