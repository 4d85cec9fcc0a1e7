package plssmooth

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// scorer evaluates the (robust) generalized cross-validation statistic for
// candidate regularization strengths. The cross-products BᵀB and Bᵀ Yᵀ and
// the identity are computed once at construction and shared across
// evaluations; score allocates its own temporaries per call, so a single
// scorer may be used from several goroutines.
type scorer struct {
	y, b, p *mat.Dense
	btb     *mat.Dense
	r       *mat.Dense // Bᵀ Yᵀ, basis functions × subjects
	eye     *mat.Dense
	gamma   float64
	n       int // observation points
}

// newScorer validates shapes and precomputes the cross-products. gamma=1
// gives plain GCV; gamma=0.4 gives the robust variant, which down-weights
// high-leverage fits through an effective-complexity term.
func newScorer(Y, B, P *mat.Dense, gamma float64) (*scorer, error) {
	if err := checkShapes(Y, B, P); err != nil {
		return nil, err
	}
	n, k := B.Dims()

	btb := &mat.Dense{}
	btb.Mul(B.T(), B)
	r := &mat.Dense{}
	r.Mul(B.T(), Y.T())
	eye := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		eye.Set(i, i, 1)
	}
	return &scorer{y: Y, b: B, p: P, btb: btb, r: r, eye: eye, gamma: gamma, n: n}, nil
}

// score evaluates the robust GCV statistic at logLambda:
//
//	V = n · Σ(Ŷ - Y)² / (n - tr H)²,  score = (γ + (1-γ)·tr(H²)/n) · V
//
// where H = B (BᵀB + λP)⁻¹ Bᵀ is the hat matrix. A failed factorization
// propagates as ErrNotPositiveDefinite rather than an infinite score.
func (s *scorer) score(logLambda float64) (float64, error) {
	lambda := math.Pow(10, logLambda)
	m := regularizedGram(s.btb, s.p, lambda)

	var chol mat.Cholesky
	if ok := chol.Factorize(m); !ok {
		return 0, fmt.Errorf("plssmooth: factorization at log lambda %g: %w",
			logLambda, ErrNotPositiveDefinite)
	}
	g := &mat.Dense{}
	if err := chol.SolveTo(g, s.eye); err != nil {
		return 0, fmt.Errorf("plssmooth: inverting regularized cross-product at log lambda %g: %w",
			logLambda, ErrNotPositiveDefinite)
	}

	var bg, h mat.Dense
	bg.Mul(s.b, g)
	h.Mul(&bg, s.b.T())

	n := float64(s.n)
	mu := traceOfSquare(&h) / n

	var yhat mat.Dense
	yhat.Mul(&bg, s.r) // points × subjects

	var resid mat.Dense
	resid.Sub(yhat.T(), s.y)
	rss := mat.Norm(&resid, 2)
	rss *= rss

	denom := n - mat.Trace(&h)
	v := n * rss / (denom * denom)
	return (s.gamma + (1-s.gamma)*mu) * v, nil
}

// traceOfSquare returns tr(H·H) without materializing the product.
func traceOfSquare(h *mat.Dense) float64 {
	n, _ := h.Dims()
	t := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			t += h.At(i, j) * h.At(j, i)
		}
	}
	return t
}
