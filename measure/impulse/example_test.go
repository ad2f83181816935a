package impulse_test

import (
	"fmt"
	"log"

	"github.com/nrshousha/digital-signal-processing-project/dsp/filter/iim"
	"github.com/nrshousha/digital-signal-processing-project/measure/impulse"
)

func ExampleResponse() {
	// First-order recursion y[n] = x[n] + 0.5*y[n-1].
	c := iim.Coefficients{
		B:          []float64{1},
		A:          []float64{1, -0.5},
		SampleRate: 8000,
	}

	h, err := impulse.Response(c, 5)
	if err != nil {
		log.Fatal(err)
	}

	for _, v := range h {
		fmt.Printf("%.4f\n", v)
	}

	// Output:
	// 1.0000
	// 0.5000
	// 0.2500
	// 0.1250
	// 0.0625
}
