package impl

import (
	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/types"
)

// compare applies a comparison operator to the numeric values of a and b. Integers are compared
// as integers, anything involving a Float is compared as floats.
func compare(op ast.Operator, a, b types.Value) bool {
	an := types.ToNumber(a)
	bn := types.ToNumber(b)

	var c int
	ai, aInt := an.(types.IntegerValue)
	bi, bInt := bn.(types.IntegerValue)
	if aInt && bInt {
		c = compareInts(ai.Int(), bi.Int())
	} else {
		c = compareFloats(an.Float(), bn.Float())
	}

	switch op {
	case ast.Greater:
		return c > 0
	case ast.Less:
		return c < 0
	case ast.Equal:
		return c == 0
	default:
		return false
	}
}

func compareInts(a, b int64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}

func compareFloats(a, b float64) int {
	switch {
	case a > b:
		return 1
	case a < b:
		return -1
	default:
		return 0
	}
}
