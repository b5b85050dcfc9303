package impl

import (
	"fmt"
	"math"

	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/types"
	"github.com/lyraproj/issue/issue"
)

func (e *arithmeticEvaluator) evalBinaryOp(expr *ast.BinaryOp) types.Value {
	if expr.Op.IsComparison() {
		panic(eval.Error(ast.InvalidOperator, issue.H{`operator`: expr.Op.String()}, ast.LocationOf(expr)))
	}
	return calculate(expr, e.eval(expr.Left), e.eval(expr.Right))
}

func calculate(expr *ast.BinaryOp, a types.Value, b types.Value) types.Value {
	an := numeric(expr, a)
	bn := numeric(expr, b)

	if expr.Op == ast.Divide {
		if bn.Float() == 0 {
			panic(eval.Error(eval.DivisionByZero, issue.NO_ARGS, ast.LocationOf(expr)))
		}
		return types.WrapFloat(an.Float() / bn.Float())
	}

	if ai, ok := an.(types.IntegerValue); ok {
		if bi, ok := bn.(types.IntegerValue); ok {
			return types.WrapInteger(intArithmetic(expr, ai.Int(), bi.Int()))
		}
	}
	return types.WrapFloat(floatArithmetic(expr, an.Float(), bn.Float()))
}

func numeric(expr *ast.BinaryOp, v types.Value) types.NumericValue {
	if n, ok := v.(types.NumericValue); ok {
		return n
	}
	panic(eval.Error(eval.OperatorNotApplicable, issue.H{`operator`: expr.Op.String(), `value`: v.TypeName()}, ast.LocationOf(expr)))
}

func intArithmetic(expr *ast.BinaryOp, a int64, b int64) int64 {
	var r int64
	overflow := false
	switch expr.Op {
	case ast.Add:
		r = a + b
		overflow = (a >= 0) == (b >= 0) && (r >= 0) != (a >= 0)
	case ast.Subtract:
		r = a - b
		overflow = (a >= 0) != (b >= 0) && (r >= 0) != (a >= 0)
	case ast.Multiply:
		r = a * b
		overflow = a != 0 && (r/a != b || a == -1 && b == math.MinInt64)
	default:
		panic(fmt.Sprintf(`unhandled integer operator %s`, expr.Op))
	}
	if overflow {
		value := fmt.Sprintf(`%d %s %d`, a, expr.Op, b)
		panic(eval.Error(eval.IntegerOverflow, issue.H{`value`: value}, ast.LocationOf(expr)))
	}
	return r
}

func floatArithmetic(expr *ast.BinaryOp, a float64, b float64) float64 {
	switch expr.Op {
	case ast.Add:
		return a + b
	case ast.Subtract:
		return a - b
	case ast.Multiply:
		return a * b
	default:
		panic(fmt.Sprintf(`unhandled float operator %s`, expr.Op))
	}
}
