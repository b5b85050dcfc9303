package ast

import (
	"regexp"

	"github.com/lyraproj/issue/issue"
)

const (
	IllegalVariableName = `EVAL_ILLEGAL_VARIABLE_NAME`
	MissingNode         = `EVAL_MISSING_NODE`
)

func init() {
	issue.Hard(IllegalVariableName, `'%{name}' is not a legal variable name`)
	issue.Hard(MissingNode, `%{node} has no %{field}`)
}

var validName = regexp.MustCompile(`\A[A-Za-z_][A-Za-z0-9_]*\z`)

// IsValidName returns true if name can be used as a variable name.
func IsValidName(name string) bool {
	return validName.MatchString(name)
}

func NewProgram(statements ...Statement) *Program {
	return &Program{Statements: statements}
}

func NewPrint(value Printable) *Print {
	return &Print{Value: value}
}

func NewDeclare(name string) *Declare {
	return &Declare{Name: name}
}

func NewReadInput(name string) *ReadInput {
	return &ReadInput{Name: name}
}

func NewIf(condition Expression, body ...Statement) *If {
	return &If{Condition: condition, Body: body}
}

func NewAssign(name string, value Expression) *Assign {
	return &Assign{Name: name, Value: value}
}

func NewExpressionStatement(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{Expr: expr}
}

func NewText(value string) *Text {
	return &Text{Value: value}
}

func NewInt(value int64) *IntLiteral {
	return &IntLiteral{Value: value}
}

func NewVar(name string) *VarRef {
	return &VarRef{Name: name}
}

func NewBinary(op Operator, left, right Expression) *BinaryOp {
	return &BinaryOp{Op: op, Left: left, Right: right}
}

func NewGrouping(inner Expression) *Grouping {
	return &Grouping{Inner: inner}
}

// Validate checks the shape of a tree once, so that evaluators never have to. It returns
// an issue.Reported describing the first problem found.
func Validate(n Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				err = ri
				return
			}
			panic(r)
		}
	}()
	if isNil(n) {
		return issue.NewReported(MissingNode, issue.SEVERITY_ERROR, issue.H{`node`: `tree`, `field`: `root`}, nil)
	}
	validate(n)
	return nil
}

func validate(n Node) {
	switch n := n.(type) {
	case *Program:
		for _, s := range n.Statements {
			validateChild(n, `statement`, s)
		}
	case *Print:
		validateChild(n, `value`, n.Value)
	case *Declare:
		validateName(n, n.Name)
	case *ReadInput:
		validateName(n, n.Name)
	case *If:
		validateChild(n, `condition`, n.Condition)
		for _, s := range n.Body {
			validateChild(n, `statement`, s)
		}
	case *Assign:
		validateName(n, n.Name)
		validateChild(n, `value`, n.Value)
	case *ExpressionStatement:
		validateChild(n, `expression`, n.Expr)
	case *Text, *IntLiteral:
	case *VarRef:
		validateName(n, n.Name)
	case *BinaryOp:
		if _, ok := operatorStrings[n.Op]; !ok {
			panic(issue.NewReported(InvalidOperator, issue.SEVERITY_ERROR, issue.H{`operator`: int(n.Op)}, locationOf(n)))
		}
		validateChild(n, `left operand`, n.Left)
		validateChild(n, `right operand`, n.Right)
	case *Grouping:
		validateChild(n, `inner expression`, n.Inner)
	default:
		panic(issue.NewReported(MissingNode, issue.SEVERITY_ERROR, issue.H{`node`: `tree`, `field`: `root`}, nil))
	}
}

func validateChild(parent Node, field string, child Node) {
	if isNil(child) {
		panic(issue.NewReported(MissingNode, issue.SEVERITY_ERROR, issue.H{`node`: Label(parent), `field`: field}, locationOf(parent)))
	}
	validate(child)
}

func validateName(n Node, name string) {
	if !IsValidName(name) {
		panic(issue.NewReported(IllegalVariableName, issue.SEVERITY_ERROR, issue.H{`name`: name}, locationOf(n)))
	}
}

// isNil detects both untyped nil and typed nil pointers stored in an interface.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Program:
		return n == nil
	case *Print:
		return n == nil
	case *Declare:
		return n == nil
	case *ReadInput:
		return n == nil
	case *If:
		return n == nil
	case *Assign:
		return n == nil
	case *ExpressionStatement:
		return n == nil
	case *Text:
		return n == nil
	case *IntLiteral:
		return n == nil
	case *VarRef:
		return n == nil
	case *BinaryOp:
		return n == nil
	case *Grouping:
		return n == nil
	}
	return false
}

// LocationOf returns the node as an issue.Location, or nil when the node carries no
// source position.
func LocationOf(n Node) issue.Location {
	return locationOf(n)
}

func locationOf(n Node) issue.Location {
	if n == nil {
		return nil
	}
	if n.File() == `` && n.Line() <= 0 {
		return nil
	}
	return n
}
