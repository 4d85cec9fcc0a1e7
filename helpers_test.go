package plssmooth

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"
)

// Test scaffolding standing in for the external basis provider: a cubic
// B-spline basis on a clamped uniform knot vector plus a second-difference
// roughness penalty.

const (
	fixturePoints = 128
	fixtureBasis  = 8
	fixtureDegree = 3
)

// bsplineBasis evaluates nBasis B-splines of the given degree over [lo, hi]
// at each point of ts, one row per point.
func bsplineBasis(ts []float64, lo, hi float64, nBasis, degree int) *mat.Dense {
	order := degree + 1
	knots := make([]float64, nBasis+order)
	for i := 0; i < order; i++ {
		knots[i] = lo
		knots[len(knots)-1-i] = hi
	}
	spans := nBasis - degree
	for i := 0; i < len(knots)-2*order; i++ {
		knots[order+i] = lo + (hi-lo)*float64(i+1)/float64(spans)
	}

	b := mat.NewDense(len(ts), nBasis, nil)
	for i, t := range ts {
		if t >= hi {
			// Clamped knots make the last basis function the sole survivor
			// at the right endpoint.
			b.Set(i, nBasis-1, 1)
			continue
		}
		for j := 0; j < nBasis; j++ {
			b.Set(i, j, coxDeBoor(knots, j, degree, t))
		}
	}
	return b
}

func coxDeBoor(knots []float64, j, degree int, t float64) float64 {
	if degree == 0 {
		if knots[j] <= t && t < knots[j+1] {
			return 1
		}
		return 0
	}
	var left, right float64
	if d := knots[j+degree] - knots[j]; d > 0 {
		left = (t - knots[j]) / d * coxDeBoor(knots, j, degree-1, t)
	}
	if d := knots[j+degree+1] - knots[j+1]; d > 0 {
		right = (knots[j+degree+1] - t) / d * coxDeBoor(knots, j+1, degree-1, t)
	}
	return left + right
}

// differencePenalty returns Dᵀ D for the second-difference operator D, the
// discrete analogue of a second-derivative roughness penalty.
func differencePenalty(k int) *mat.Dense {
	d := mat.NewDense(k-2, k, nil)
	for i := 0; i < k-2; i++ {
		d.Set(i, i, 1)
		d.Set(i, i+1, -2)
		d.Set(i, i+2, 1)
	}
	var p mat.Dense
	p.Mul(d.T(), d)
	return &p
}

func linspace(lo, hi float64, n int) []float64 {
	ts := make([]float64, n)
	for i := range ts {
		ts[i] = lo + (hi-lo)*float64(i)/float64(n-1)
	}
	return ts
}

// fixture is a noiseless smoothing problem: Y = (B C)ᵀ for a known random
// coefficient matrix C, so near-zero regularization must recover C.
type fixture struct {
	y, b, p, c *mat.Dense
}

func newFixture(subjects int, src rand.Source) fixture {
	ts := linspace(-1, 1, fixturePoints)
	b := bsplineBasis(ts, -1, 1, fixtureBasis, fixtureDegree)
	p := differencePenalty(fixtureBasis)

	normal := distuv.Normal{Mu: 0, Sigma: 5, Src: src}
	c := mat.NewDense(fixtureBasis, subjects, nil)
	for i := 0; i < fixtureBasis; i++ {
		for j := 0; j < subjects; j++ {
			c.Set(i, j, normal.Rand())
		}
	}

	var bc mat.Dense
	bc.Mul(b, c)
	y := mat.DenseCopyOf(bc.T())
	return fixture{y: y, b: b, p: p, c: c}
}

// maxAbsDiff returns the largest elementwise absolute difference.
func maxAbsDiff(a, b mat.Matrix) float64 {
	ar, ac := a.Dims()
	worst := 0.0
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if d := math.Abs(a.At(i, j) - b.At(i, j)); d > worst {
				worst = d
			}
		}
	}
	return worst
}

// negativeDefinite builds -I sized to the basis dimension, a deliberate
// violation of the penalty's PSD contract.
func negativeDefinite(k int) *mat.Dense {
	p := mat.NewDense(k, k, nil)
	for i := 0; i < k; i++ {
		p.Set(i, i, -1)
	}
	return p
}
