package impl

import (
	"fmt"
	"os"

	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/types"
	"github.com/lyraproj/issue/issue"
)

type arithmeticEvaluator struct {
	env    eval.Environment
	logger eval.Logger
}

// NewArithmeticEvaluator creates an evaluator for the arithmetic language. A nil env is replaced
// by a new environment with the strict read policy and a nil logger by a standard logger.
func NewArithmeticEvaluator(env eval.Environment, logger eval.Logger) eval.ArithmeticEvaluator {
	if env == nil {
		env = NewEnvironment(eval.StrictPolicy)
	}
	if logger == nil {
		logger = eval.NewStdLogger(os.Stdout, os.Stderr, false)
	}
	return &arithmeticEvaluator{env, logger}
}

func (e *arithmeticEvaluator) Environment() eval.Environment {
	return e.env
}

func (e *arithmeticEvaluator) Evaluate(program *ast.Program) (result []types.Value, err error) {
	defer recoverReported(&err)

	result = make([]types.Value, 0, len(program.Statements))
	for _, s := range program.Statements {
		v := e.evalStatement(s)
		eval.Debug(e.logger, `%s => %s`, ast.ToPN(s), v)
		result = append(result, v)
	}
	return
}

func (e *arithmeticEvaluator) EvaluateExpression(expr ast.Expression) (result types.Value, err error) {
	defer recoverReported(&err)
	return e.eval(expr), nil
}

func (e *arithmeticEvaluator) evalStatement(s ast.Statement) types.Value {
	switch s := s.(type) {
	case *ast.ExpressionStatement:
		return e.eval(s.Expr)
	case *ast.Assign:
		v := e.eval(s.Value)
		e.env.Assign(s.Name, v)
		return v
	case *ast.Print, *ast.Declare, *ast.ReadInput, *ast.If:
		panic(unsupported(s, eval.LangArithmetic))
	default:
		panic(fmt.Sprintf(`unhandled statement %T`, s))
	}
}

func (e *arithmeticEvaluator) eval(expr ast.Expression) types.Value {
	switch expr := expr.(type) {
	case *ast.IntLiteral:
		return types.WrapInteger(expr.Value)
	case *ast.VarRef:
		return e.evalVarRef(expr)
	case *ast.Grouping:
		return e.eval(expr.Inner)
	case *ast.BinaryOp:
		return e.evalBinaryOp(expr)
	default:
		panic(fmt.Sprintf(`unhandled expression %T`, expr))
	}
}

func (e *arithmeticEvaluator) evalVarRef(expr *ast.VarRef) types.Value {
	if v, ok := e.env.Read(expr.Name); ok {
		if _, undef := v.(*types.UndefValue); !undef {
			return v
		}
	}
	panic(eval.Error(eval.UnknownVariable, issue.H{`name`: expr.Name}, ast.LocationOf(expr)))
}

func unsupported(n ast.Node, lang eval.Language) issue.Reported {
	return eval.Error(eval.UnsupportedExpression, issue.H{`expression`: ast.Label(n), `language`: lang.String()}, ast.LocationOf(n))
}

// recoverReported must be deferred by the public entry points. It turns a panic with an
// issue.Reported into the returned error. Other panics are propagated.
func recoverReported(err *error) {
	if r := recover(); r != nil {
		switch r := r.(type) {
		case issue.Reported:
			*err = r
		case *inputFailure:
			*err = r.err
		default:
			panic(r)
		}
	}
}
