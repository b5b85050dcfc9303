package impl

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/types"
	"github.com/lyraproj/issue/issue"
)

type (
	statementEvaluator struct {
		env    eval.Environment
		input  eval.LineReader
		out    io.Writer
		logger eval.Logger
	}

	// inputFailure carries an error from the LineReader through the evaluation stack.
	inputFailure struct {
		err error
	}
)

// NewStatementEvaluator creates an evaluator for the statement language. Print statements write to
// out and ReadInput statements read from input. A nil env is replaced by a new environment with the
// zero read policy and a nil logger by a standard logger.
func NewStatementEvaluator(env eval.Environment, input eval.LineReader, out io.Writer, logger eval.Logger) eval.StatementEvaluator {
	if env == nil {
		env = NewEnvironment(eval.ZeroPolicy)
	}
	if logger == nil {
		logger = eval.NewStdLogger(os.Stdout, os.Stderr, false)
	}
	return &statementEvaluator{env, input, out, logger}
}

func (e *statementEvaluator) Environment() eval.Environment {
	return e.env
}

func (e *statementEvaluator) Run(program *ast.Program) (err error) {
	defer recoverReported(&err)
	e.execAll(program.Statements)
	return nil
}

func (e *statementEvaluator) execAll(statements []ast.Statement) {
	for _, s := range statements {
		eval.Debug(e.logger, `executing %s`, ast.ToPN(s))
		e.exec(s)
	}
}

func (e *statementEvaluator) exec(s ast.Statement) {
	switch s := s.(type) {
	case *ast.Print:
		fmt.Fprintln(e.out, e.printable(s.Value))
	case *ast.Declare:
		e.env.Declare(s.Name)
	case *ast.ReadInput:
		e.env.Assign(s.Name, e.readInteger(s))
	case *ast.If:
		if types.IsTruthy(e.condition(s.Condition)) {
			e.execAll(s.Body)
		}
	case *ast.Assign, *ast.ExpressionStatement:
		panic(unsupported(s, eval.LangStatement))
	default:
		panic(fmt.Sprintf(`unhandled statement %T`, s))
	}
}

func (e *statementEvaluator) printable(p ast.Printable) string {
	switch p := p.(type) {
	case *ast.Text:
		return p.Value
	case *ast.IntLiteral:
		return strconv.FormatInt(p.Value, 10)
	case *ast.VarRef:
		return e.read(p.Name).String()
	default:
		panic(fmt.Sprintf(`unhandled printable %T`, p))
	}
}

func (e *statementEvaluator) readInteger(s *ast.ReadInput) types.Value {
	if e.input == nil {
		panic(eval.Error(eval.EndOfInput, issue.H{`name`: s.Name}, ast.LocationOf(s)))
	}
	line, err := e.input.ReadLine(``)
	if err != nil {
		if err == io.EOF {
			panic(eval.Error(eval.EndOfInput, issue.H{`name`: s.Name}, ast.LocationOf(s)))
		}
		panic(&inputFailure{err})
	}
	line = strings.TrimSpace(line)
	n, err := strconv.ParseInt(line, 10, 64)
	if err != nil {
		panic(eval.Error(eval.NotInteger, issue.H{`name`: s.Name, `value`: line}, ast.LocationOf(s)))
	}
	return types.WrapInteger(n)
}

// condition evaluates an If condition. Unknown names count as zero and non comparison operators
// yield false.
func (e *statementEvaluator) condition(expr ast.Expression) types.Value {
	switch expr := expr.(type) {
	case *ast.IntLiteral:
		return types.WrapInteger(expr.Value)
	case *ast.VarRef:
		return e.read(expr.Name)
	case *ast.Grouping:
		return e.condition(expr.Inner)
	case *ast.BinaryOp:
		if !expr.Op.IsComparison() {
			return types.False
		}
		return types.WrapBoolean(compare(expr.Op, e.condition(expr.Left), e.condition(expr.Right)))
	default:
		panic(fmt.Sprintf(`unhandled expression %T`, expr))
	}
}

// read returns the value of name, or zero when name has no value.
func (e *statementEvaluator) read(name string) types.Value {
	if v, ok := e.env.Read(name); ok {
		if _, undef := v.(*types.UndefValue); !undef {
			return v
		}
	}
	return types.Zero
}
