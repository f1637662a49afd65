package registry

import "math"

// standardConstants is the sealed set of named constants (§4.1).
var standardConstants = map[string]float64{
	"e":  math.E,
	"pi": math.Pi,
}
