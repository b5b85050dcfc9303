// Package pp2ast is the front-end of the arithmetic language. Source text is parsed with the Puppet
// expression parser and the resulting parser tree is transformed into an ast.Program.
package pp2ast

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/puppet-parser/parser"
)

type transformer struct {
	filename string
}

// Parse parses the given source and transforms it into an ast.Program. Variables may be written
// as `$x` or as a bare name `x` or `X`. Integer literals are always decimal. Parser failures are returned as EVAL_PARSE_ERROR and constructs
// outside the language as EVAL_UNSUPPORTED_EXPRESSION or EVAL_INVALID_OPERATOR.
func Parse(filename, source string) (program *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				program = nil
				err = ri
				return
			}
			panic(r)
		}
	}()

	expr, perr := parser.CreateParser().Parse(filename, source, false)
	if perr != nil {
		return nil, eval.Error(eval.ParseError, issue.H{`message`: perr.Error()}, nil)
	}
	program = (&transformer{filename}).transformProgram(expr)
	if err = ast.Validate(program); err != nil {
		return nil, err
	}
	return program, nil
}

// MustParse is like Parse but panics with the error.
func MustParse(filename, source string) *ast.Program {
	p, err := Parse(filename, source)
	if err != nil {
		panic(err)
	}
	return p
}

func (t *transformer) transformProgram(expr parser.Expression) *ast.Program {
	if p, ok := expr.(*parser.Program); ok {
		expr = p.Body()
	}
	var exprs []parser.Expression
	switch body := expr.(type) {
	case nil, *parser.Nop:
	case *parser.BlockExpression:
		exprs = body.Statements()
	default:
		exprs = []parser.Expression{body}
	}

	statements := make([]ast.Statement, 0, len(exprs))
	for _, e := range exprs {
		if _, ok := e.(*parser.Nop); ok {
			continue
		}
		statements = append(statements, t.transformStatement(e))
	}
	return ast.NewProgram(statements...)
}

func (t *transformer) transformStatement(expr parser.Expression) ast.Statement {
	if a, ok := expr.(*parser.AssignmentExpression); ok {
		if a.Operator() != `=` {
			panic(eval.Error(ast.InvalidOperator, issue.H{`operator`: a.Operator()}, expr))
		}
		s := ast.NewAssign(t.variableName(a.Lhs()), t.transformExpression(a.Rhs()))
		s.Position = t.position(expr)
		return s
	}
	s := ast.NewExpressionStatement(t.transformExpression(expr))
	s.Position = t.position(expr)
	return s
}

func (t *transformer) transformExpression(expr parser.Expression) ast.Expression {
	switch e := expr.(type) {
	case *parser.LiteralInteger:
		n := ast.NewInt(t.integer(e))
		n.Position = t.position(expr)
		return n
	case *parser.VariableExpression, *parser.QualifiedName, *parser.QualifiedReference:
		n := ast.NewVar(t.variableName(expr))
		n.Position = t.position(expr)
		return n
	case *parser.ParenthesizedExpression:
		n := ast.NewGrouping(t.transformExpression(e.Expr()))
		n.Position = t.position(expr)
		return n
	case *parser.ArithmeticExpression:
		return t.binary(expr, e.Operator(), e.Lhs(), e.Rhs())
	case *parser.ComparisonExpression:
		return t.binary(expr, e.Operator(), e.Lhs(), e.Rhs())
	default:
		panic(t.unsupported(expr))
	}
}

func (t *transformer) binary(expr parser.Expression, op string, lhs, rhs parser.Expression) ast.Expression {
	o, err := ast.ParseOperator(op, expr)
	if err != nil {
		panic(err)
	}
	n := ast.NewBinary(o, t.transformExpression(lhs), t.transformExpression(rhs))
	n.Position = t.position(expr)
	return n
}

func (t *transformer) variableName(expr parser.Expression) string {
	switch e := expr.(type) {
	case *parser.VariableExpression:
		if name, ok := e.Name(); ok {
			return name
		}
	case *parser.QualifiedName:
		return e.Name()
	case *parser.QualifiedReference:
		return e.Name()
	}
	panic(t.unsupported(expr))
}

// integer reads the literal from the source in base 10. The parser gives a leading zero octal
// meaning and clamps values that do not fit in 64 bits.
func (t *transformer) integer(e *parser.LiteralInteger) int64 {
	src := e.Locator().String()[e.ByteOffset():]
	end := 0
	if end < len(src) && (src[end] == '-' || src[end] == '+') {
		end++
	}
	for end < len(src) && isAlphanumeric(src[end]) {
		end++
	}
	text := src[:end]
	if e.Radix() == 16 {
		panic(eval.Error(eval.UnsupportedExpression, issue.H{
			`expression`: fmt.Sprintf(`Hexadecimal integer %s`, text),
			`language`:   eval.LangArithmetic.String()}, e))
	}
	v, err := strconv.ParseInt(text, 10, 64)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			panic(eval.Error(eval.IntegerOverflow, issue.H{`value`: text}, e))
		}
		return e.Int()
	}
	return v
}

func isAlphanumeric(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func (t *transformer) unsupported(expr parser.Expression) issue.Reported {
	label := strings.TrimPrefix(fmt.Sprintf(`%T`, expr), `*parser.`)
	return eval.Error(eval.UnsupportedExpression, issue.H{`expression`: label, `language`: eval.LangArithmetic.String()}, expr)
}

func (t *transformer) position(expr parser.Expression) ast.Position {
	file := expr.File()
	if file == `` {
		file = t.filename
	}
	return ast.At(file, expr.Line(), expr.Pos())
}
