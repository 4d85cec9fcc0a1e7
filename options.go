package plssmooth

import (
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Default search settings applied by DefaultOptions and wherever a zero
// Options field is merged.
const (
	DefaultLowerBound = -8.0
	DefaultUpperBound = 8.0
	DefaultScanPoints = 20

	defaultMaxIterations  = 200
	defaultMaxEvaluations = 500
)

// Options tunes the hyperparameter search. The zero value of any field is
// replaced by its default, so a partial Options literal is valid.
type Options struct {
	// Bounds is the closed log10 interval searched for the regularization
	// strength, lower before upper.
	Bounds [2]float64
	// N is the number of random candidates drawn in the global scan stage.
	N int
	// Src seeds the scan's random draws. A nil Src is time-seeded; inject a
	// fixed-seed source for reproducible searches.
	Src rand.Source
	// MaxIterations and MaxEvaluations bound the local L-BFGS refinement so
	// an ill-conditioned penalty cannot spin the optimizer indefinitely.
	MaxIterations  int
	MaxEvaluations int
	// Logger receives debug events from the search stages. Nil disables
	// logging.
	Logger *zerolog.Logger
}

// DefaultOptions returns the stock search configuration: bounds [-8, 8],
// N=20 scan points and the standard refinement budgets.
func DefaultOptions() Options {
	return Options{
		Bounds:         [2]float64{DefaultLowerBound, DefaultUpperBound},
		N:              DefaultScanPoints,
		MaxIterations:  defaultMaxIterations,
		MaxEvaluations: defaultMaxEvaluations,
	}
}

// merged fills zero-valued fields from DefaultOptions.
func (o Options) merged() Options {
	def := DefaultOptions()
	if o.Bounds == [2]float64{} {
		o.Bounds = def.Bounds
	}
	if o.N == 0 {
		o.N = def.N
	}
	if o.MaxIterations == 0 {
		o.MaxIterations = def.MaxIterations
	}
	if o.MaxEvaluations == 0 {
		o.MaxEvaluations = def.MaxEvaluations
	}
	return o
}

// validate reports malformed settings. It expects merged options.
func (o Options) validate() error {
	if !(o.Bounds[0] < o.Bounds[1]) {
		return fmt.Errorf("plssmooth: bounds [%g, %g] must satisfy lower < upper: %w",
			o.Bounds[0], o.Bounds[1], ErrInvalidOptions)
	}
	if o.N < 0 {
		return fmt.Errorf("plssmooth: scan size %d must be positive: %w", o.N, ErrInvalidOptions)
	}
	if o.MaxIterations < 0 || o.MaxEvaluations < 0 {
		return fmt.Errorf("plssmooth: refinement budgets (%d iterations, %d evaluations) must be positive: %w",
			o.MaxIterations, o.MaxEvaluations, ErrInvalidOptions)
	}
	return nil
}

func (o Options) logger() *zerolog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	nop := zerolog.Nop()
	return &nop
}
