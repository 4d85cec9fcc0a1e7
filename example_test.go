package plssmooth_test

import (
	"fmt"
	"log"

	"gonum.org/v1/gonum/mat"

	"github.com/plsskit/plssmooth"
)

// ExampleModel fits a single subject with a fixed, near-zero penalty
// weight. With an orthonormal basis and a zero penalty the coefficients
// reproduce the observations exactly.
func ExampleModel() {
	y := mat.NewDense(1, 4, []float64{1, 2, 4, 8})
	b := mat.NewDense(4, 4, []float64{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	})
	p := mat.NewDense(4, 4, nil)

	model, err := plssmooth.NewModel(plssmooth.MethodFixed, nil)
	if err != nil {
		log.Fatal(err)
	}
	c, logLambda, err := model.Fit(y, b, p, -8)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("log lambda %g, coefficients", logLambda)
	for i := 0; i < 4; i++ {
		fmt.Printf(" %.0f", c.At(i, 0))
	}
	fmt.Println()
	// Output: log lambda -8, coefficients 1 2 4 8
}
