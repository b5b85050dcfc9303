package impl

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/types"
	"github.com/lyraproj/issue/issue"
)

func newArithmetic() eval.ArithmeticEvaluator {
	return NewArithmeticEvaluator(nil, eval.NewArrayLogger())
}

func expectCode(t *testing.T, err error, code issue.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf(`expected %s, got no error`, code)
	}
	ri, ok := err.(issue.Reported)
	if !ok {
		t.Fatalf(`expected an issue.Reported, got %T: %v`, err, err)
	}
	if ri.Code() != code {
		t.Fatalf(`expected %s, got %s: %s`, code, ri.Code(), ri.Error())
	}
}

func evalExpr(t *testing.T, e eval.ArithmeticEvaluator, expr ast.Expression) types.Value {
	t.Helper()
	v, err := e.EvaluateExpression(expr)
	if err != nil {
		t.Fatalf(`unexpected error: %v`, err)
	}
	return v
}

func TestPrecedence(t *testing.T) {
	e := newArithmetic()

	// 2 + 3 * 4
	v := evalExpr(t, e, ast.NewBinary(ast.Add, ast.NewInt(2), ast.NewBinary(ast.Multiply, ast.NewInt(3), ast.NewInt(4))))
	if !v.Equals(types.WrapInteger(14)) {
		t.Errorf(`2 + 3 * 4 = %s`, v)
	}

	// (2 + 3) * 4
	v = evalExpr(t, e, ast.NewBinary(ast.Multiply, ast.NewGrouping(ast.NewBinary(ast.Add, ast.NewInt(2), ast.NewInt(3))), ast.NewInt(4)))
	if !v.Equals(types.WrapInteger(20)) {
		t.Errorf(`(2 + 3) * 4 = %s`, v)
	}

	// 10 - 4 - 3 is ((10 - 4) - 3)
	v = evalExpr(t, e, ast.NewBinary(ast.Subtract, ast.NewBinary(ast.Subtract, ast.NewInt(10), ast.NewInt(4)), ast.NewInt(3)))
	if !v.Equals(types.WrapInteger(3)) {
		t.Errorf(`10 - 4 - 3 = %s`, v)
	}
}

func TestDivisionIsRealValued(t *testing.T) {
	e := newArithmetic()
	tests := []struct {
		a, b int64
		want string
	}{
		{7, 2, `3.5`},
		{6, 2, `3.0`},
		{-9, 4, `-2.25`},
	}
	for _, tt := range tests {
		v := evalExpr(t, e, ast.NewBinary(ast.Divide, ast.NewInt(tt.a), ast.NewInt(tt.b)))
		if _, ok := v.(types.FloatValue); !ok || v.String() != tt.want {
			t.Errorf(`%d / %d = %s (%s), want Float %s`, tt.a, tt.b, v, v.TypeName(), tt.want)
		}
	}

	// A float operand makes the result a float
	v := evalExpr(t, e, ast.NewBinary(ast.Add, ast.NewBinary(ast.Divide, ast.NewInt(1), ast.NewInt(2)), ast.NewInt(1)))
	if !v.Equals(types.WrapFloat(1.5)) {
		t.Errorf(`1 / 2 + 1 = %s`, v)
	}
}

func TestDivisionByZeroLeavesEnvironmentUnchanged(t *testing.T) {
	e := newArithmetic()
	e.Environment().Assign(`x`, types.WrapInteger(1))

	_, err := e.Evaluate(ast.NewProgram(ast.NewAssign(`x`, ast.NewBinary(ast.Divide, ast.NewInt(10), ast.NewInt(0)))))
	expectCode(t, err, eval.DivisionByZero)

	if v, _ := e.Environment().Get(`x`); !v.Equals(types.WrapInteger(1)) {
		t.Errorf(`x changed to %s`, v)
	}

	// divisor computed to zero
	_, err = e.EvaluateExpression(ast.NewBinary(ast.Divide, ast.NewInt(10), ast.NewBinary(ast.Subtract, ast.NewInt(2), ast.NewInt(2))))
	expectCode(t, err, eval.DivisionByZero)
}

func TestUndefinedVariable(t *testing.T) {
	e := newArithmetic()
	_, err := e.EvaluateExpression(ast.NewBinary(ast.Add, ast.NewVar(`y`), ast.NewInt(1)))
	expectCode(t, err, eval.UnknownVariable)
	if !strings.Contains(err.Error(), `Unknown variable: 'y'`) {
		t.Errorf(`unexpected message %q`, err.Error())
	}

	e.Environment().Declare(`d`)
	_, err = e.EvaluateExpression(ast.NewVar(`d`))
	expectCode(t, err, eval.UnknownVariable)
}

func TestIntegerOverflow(t *testing.T) {
	e := newArithmetic()
	tests := []struct {
		op   ast.Operator
		a, b int64
	}{
		{ast.Add, math.MaxInt64, 1},
		{ast.Add, math.MinInt64, -1},
		{ast.Subtract, math.MinInt64, 1},
		{ast.Subtract, 0, math.MinInt64},
		{ast.Multiply, 3037000500, 3037000500},
		{ast.Multiply, -1, math.MinInt64},
		{ast.Multiply, math.MinInt64, -1},
	}
	for _, tt := range tests {
		_, err := e.EvaluateExpression(ast.NewBinary(tt.op, ast.NewInt(tt.a), ast.NewInt(tt.b)))
		expectCode(t, err, eval.IntegerOverflow)
	}

	within := []struct {
		op   ast.Operator
		a, b int64
		want int64
	}{
		{ast.Add, math.MaxInt64, 0, math.MaxInt64},
		{ast.Add, math.MaxInt64, math.MinInt64, -1},
		{ast.Subtract, -1, math.MaxInt64, math.MinInt64},
		{ast.Multiply, 3037000499, 3037000499, 9223372030926249001},
		{ast.Multiply, 0, math.MinInt64, 0},
		{ast.Multiply, -1, math.MaxInt64, -math.MaxInt64},
	}
	for _, tt := range within {
		v := evalExpr(t, e, ast.NewBinary(tt.op, ast.NewInt(tt.a), ast.NewInt(tt.b)))
		if !v.Equals(types.WrapInteger(tt.want)) {
			t.Errorf(`%d %s %d = %s, want %d`, tt.a, tt.op, tt.b, v, tt.want)
		}
	}
}

func TestComparisonIsInvalidInArithmetic(t *testing.T) {
	e := newArithmetic()
	_, err := e.EvaluateExpression(ast.NewBinary(ast.Greater, ast.NewInt(5), ast.NewInt(3)))
	expectCode(t, err, ast.InvalidOperator)

	// the evaluator remains usable
	v := evalExpr(t, e, ast.NewInt(1))
	if !v.Equals(types.WrapInteger(1)) {
		t.Errorf(`unexpected %s`, v)
	}
}

func TestAssignmentAccumulates(t *testing.T) {
	e := newArithmetic()
	incr := ast.NewAssign(`x`, ast.NewBinary(ast.Add, ast.NewVar(`x`), ast.NewInt(1)))
	vs, err := e.Evaluate(ast.NewProgram(
		ast.NewAssign(`x`, ast.NewInt(5)),
		incr,
		ast.NewExpressionStatement(ast.NewVar(`x`)),
	))
	if err != nil {
		t.Fatal(err)
	}
	if types.FormatList(vs) != `[5, 6, 6]` {
		t.Errorf(`unexpected results %s`, types.FormatList(vs))
	}

	same := ast.NewAssign(`y`, ast.NewBinary(ast.Multiply, ast.NewVar(`x`), ast.NewInt(2)))
	a, _ := e.Evaluate(ast.NewProgram(same))
	b, _ := e.Evaluate(ast.NewProgram(same))
	if !a[0].Equals(b[0]) {
		t.Errorf(`reassignment changed value: %s != %s`, a[0], b[0])
	}
}

func TestPartialResultsOnError(t *testing.T) {
	e := newArithmetic()
	vs, err := e.Evaluate(ast.NewProgram(
		ast.NewAssign(`a`, ast.NewInt(1)),
		ast.NewExpressionStatement(ast.NewVar(`nope`)),
		ast.NewAssign(`b`, ast.NewInt(2)),
	))
	expectCode(t, err, eval.UnknownVariable)
	if len(vs) != 1 || !vs[0].Equals(types.WrapInteger(1)) {
		t.Errorf(`unexpected partial result %v`, vs)
	}
	if !e.Environment().Has(`a`) || e.Environment().Has(`b`) {
		t.Error(`assignments before the failure must be kept and later ones not executed`)
	}
}

func TestStatementLanguageNodesAreRejected(t *testing.T) {
	e := newArithmetic()
	_, err := e.Evaluate(ast.NewProgram(ast.NewPrint(ast.NewText(`hi`))))
	expectCode(t, err, eval.UnsupportedExpression)
	if !strings.Contains(err.Error(), `arithmetic`) {
		t.Errorf(`unexpected message %q`, err.Error())
	}
}

func TestNonNumericOperand(t *testing.T) {
	e := newArithmetic()
	e.Environment().Assign(`flag`, types.True)
	_, err := e.EvaluateExpression(ast.NewBinary(ast.Add, ast.NewVar(`flag`), ast.NewInt(1)))
	expectCode(t, err, eval.OperatorNotApplicable)
}

func TestUnhandledNodeIsNotRecovered(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error(`expected a panic`)
		} else if _, ok := r.(issue.Reported); ok {
			t.Error(`contract violations must not be reported issues`)
		}
	}()
	newArithmetic().EvaluateExpression(nil)
}

func TestDebugTrace(t *testing.T) {
	logger := eval.NewArrayLogger()
	e := NewArithmeticEvaluator(nil, logger)
	if _, err := e.Evaluate(ast.NewProgram(ast.NewAssign(`x`, ast.NewInt(3)))); err != nil {
		t.Fatal(err)
	}
	if d := logger.Entries(eval.DEBUG); len(d) != 1 || d[0] != `(= x 3) => 3` {
		t.Errorf(`unexpected debug entries %v`, d)
	}
}

func ExampleNewArithmeticEvaluator() {
	e := NewArithmeticEvaluator(nil, eval.NewArrayLogger())
	vs, _ := e.Evaluate(ast.NewProgram(
		ast.NewAssign(`x`, ast.NewBinary(ast.Add, ast.NewInt(1), ast.NewBinary(ast.Multiply, ast.NewInt(2), ast.NewInt(3)))),
		ast.NewExpressionStatement(ast.NewBinary(ast.Divide, ast.NewVar(`x`), ast.NewInt(2))),
	))
	fmt.Println(types.FormatList(vs))
	// Output: [7, 3.5]
}
