package plssmooth

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Method names a strategy for choosing the regularization strength.
type Method string

const (
	// MethodFixed keeps the caller-supplied logLambda.
	MethodFixed Method = "fixed"
	// MethodGCV chooses logLambda by generalized cross-validation.
	MethodGCV Method = "gcv"
	// MethodRGCV chooses logLambda by robust generalized cross-validation.
	MethodRGCV Method = "rgcv"
)

// Model is the configured smoothing facade. It holds a validated method and
// search options and dispatches Fit calls accordingly. Configuration is
// validated eagerly: a failed SetMethod or SetOptions leaves the previous
// valid state untouched.
//
// A Model carries no per-fit state; all matrices and factorizations live
// and die within a single Fit call.
type Model struct {
	method Method
	opts   Options
}

// NewModel builds a model with the given method and options. An empty
// method defaults to MethodFixed; nil options select DefaultOptions. Zero
// fields of a partial Options are merged over the defaults.
func NewModel(method Method, opts *Options) (*Model, error) {
	m := &Model{method: MethodFixed, opts: DefaultOptions()}
	if method != "" {
		if err := m.SetMethod(method); err != nil {
			return nil, err
		}
	}
	if err := m.SetOptions(opts); err != nil {
		return nil, err
	}
	return m, nil
}

// Method returns the configured method.
func (m *Model) Method() Method { return m.method }

// Options returns the configured search options after default merging.
func (m *Model) Options() Options { return m.opts }

// SetMethod switches the smoothing method. Unknown names are rejected with
// ErrInvalidMethod and the previous method stays in effect.
func (m *Model) SetMethod(method Method) error {
	switch method {
	case MethodFixed, MethodGCV, MethodRGCV:
		m.method = method
		return nil
	default:
		return fmt.Errorf("plssmooth: configuration: method %q: %w", method, ErrInvalidMethod)
	}
}

// SetOptions replaces the search options. Nil restores DefaultOptions;
// zero fields of a partial Options take their defaults. Malformed values
// are rejected with ErrInvalidOptions and the previous options stay in
// effect.
func (m *Model) SetOptions(opts *Options) error {
	if opts == nil {
		m.opts = DefaultOptions()
		return nil
	}
	merged := opts.merged()
	if err := merged.validate(); err != nil {
		return err
	}
	m.opts = merged
	return nil
}

// Fit estimates basis coefficients for Y against basis B and penalty P and
// returns (C, logLambda used). Under MethodFixed the supplied logLambda is
// used as-is; under MethodGCV and MethodRGCV it is ignored and the search
// chooses one within the configured bounds.
func (m *Model) Fit(Y, B, P *mat.Dense, logLambda float64) (*mat.Dense, float64, error) {
	switch m.method {
	case MethodGCV:
		return SearchSolve(Y, B, P, gammaGCV, m.opts)
	case MethodRGCV:
		return SearchSolve(Y, B, P, gammaRGCV, m.opts)
	default:
		return Solve(Y, B, P, logLambda)
	}
}
