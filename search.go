package plssmooth

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"

	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/optimize"
)

const (
	gammaGCV  = 1.0
	gammaRGCV = 0.4
)

// SolveGCV selects the regularization strength by generalized
// cross-validation over opts.Bounds and solves at the optimum.
func SolveGCV(Y, B, P *mat.Dense, opts Options) (*mat.Dense, float64, error) {
	return SearchSolve(Y, B, P, gammaGCV, opts)
}

// SolveRGCV selects the regularization strength by robust generalized
// cross-validation (gamma=0.4) over opts.Bounds and solves at the optimum.
func SolveRGCV(Y, B, P *mat.Dense, opts Options) (*mat.Dense, float64, error) {
	return SearchSolve(Y, B, P, gammaRGCV, opts)
}

// SearchSolve minimizes the cross-validation score with robustness weight
// gamma and returns the coefficients solved at the minimizer together with
// the chosen logLambda.
//
// The score surface is generally non-convex in log scale, so the search is
// two-staged: a random global scan of opts.N candidates picks a seed, then
// a bounded L-BFGS refinement polishes it. If every scan candidate fails
// numerically, or the refinement exhausts its budget without converging,
// the search reports ErrSearchFailed.
func SearchSolve(Y, B, P *mat.Dense, gamma float64, opts Options) (*mat.Dense, float64, error) {
	opts = opts.merged()
	if err := opts.validate(); err != nil {
		return nil, 0, err
	}
	sc, err := newScorer(Y, B, P, gamma)
	if err != nil {
		return nil, 0, err
	}

	seed, err := globalScan(sc, opts)
	if err != nil {
		return nil, 0, err
	}
	refined, err := refine(sc, seed, opts)
	if err != nil {
		return nil, 0, err
	}
	return Solve(Y, B, P, refined)
}

// globalScan draws opts.N uniform candidates within the bounds and returns
// the one with the lowest score. Candidates are drawn sequentially from the
// injected source before any evaluation starts, so the result does not
// depend on goroutine scheduling.
func globalScan(sc *scorer, opts Options) (float64, error) {
	src := opts.Src
	if src == nil {
		src = rand.NewSource(uint64(time.Now().UnixNano()))
	}
	rng := rand.New(src)

	lo, hi := opts.Bounds[0], opts.Bounds[1]
	cands := make([]float64, opts.N)
	for i := range cands {
		cands[i] = lo + (hi-lo)*rng.Float64()
	}

	scores := make([]float64, len(cands))
	fails := make([]error, len(cands))
	var grp errgroup.Group
	grp.SetLimit(runtime.GOMAXPROCS(0))
	for i, cand := range cands {
		i, cand := i, cand
		grp.Go(func() error {
			scores[i], fails[i] = sc.score(cand)
			return nil
		})
	}
	_ = grp.Wait()

	best, bestScore := 0.0, math.Inf(1)
	feasible := false
	for i := range cands {
		if fails[i] != nil {
			opts.logger().Debug().Float64("log_lambda", cands[i]).Err(fails[i]).
				Msg("scan candidate infeasible")
			continue
		}
		if !feasible || scores[i] < bestScore {
			feasible = true
			best, bestScore = cands[i], scores[i]
		}
	}
	if !feasible {
		return 0, fmt.Errorf("plssmooth: global scan: no feasible candidate in [%g, %g]: %w",
			lo, hi, ErrSearchFailed)
	}
	opts.logger().Debug().Float64("log_lambda", best).Float64("score", bestScore).
		Msg("scan seed selected")
	return best, nil
}

// refine runs a bounded quasi-Newton minimization of the score from the
// scan seed. Bounds are enforced by clamping the candidate inside the
// objective and clamping the final iterate.
func refine(sc *scorer, seed float64, opts Options) (float64, error) {
	lo, hi := opts.Bounds[0], opts.Bounds[1]
	problem := optimize.Problem{
		// Gradient is left nil; optimize.Minimize falls back to finite
		// differences, which matches the scorer's black-box contract.
		Func: func(x []float64) float64 {
			s, err := sc.score(clamp(x[0], lo, hi))
			if err != nil {
				return math.Inf(1)
			}
			return s
		},
	}
	settings := &optimize.Settings{
		MajorIterations: opts.MaxIterations,
		FuncEvaluations: opts.MaxEvaluations,
	}

	result, err := optimize.Minimize(problem, []float64{seed}, settings, &optimize.LBFGS{})
	if err != nil {
		// A stalled line search means the iterate sits on a flat stretch of
		// the clamped surface, typically the bounds plateau; the incumbent
		// point is the constrained minimizer.
		if !errors.Is(err, optimize.ErrLinesearcherFailure) && !errors.Is(err, optimize.ErrNoProgress) {
			return 0, fmt.Errorf("plssmooth: local refinement from seed %g: %w: %v",
				seed, ErrSearchFailed, err)
		}
	} else {
		switch result.Status {
		case optimize.Success, optimize.FunctionThreshold, optimize.FunctionConvergence,
			optimize.GradientThreshold, optimize.StepConvergence, optimize.MethodConverge:
		default:
			return 0, fmt.Errorf("plssmooth: local refinement stopped without converging (%v): %w",
				result.Status, ErrSearchFailed)
		}
	}

	refined := clamp(result.X[0], lo, hi)
	opts.logger().Debug().Float64("seed", seed).Float64("log_lambda", refined).
		Msg("refinement finished")
	return refined, nil
}

func clamp(x, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, x))
}
