// Package ast contains the node model shared by the arithmetic language and the statement
// language. Nodes are plain data. They are produced by a front-end (or built directly by
// tests) and consumed by the evaluators in package impl.
package ast

type (
	// Node is implemented by every node kind. The set of node kinds is closed; the unexported
	// marker methods prevent implementations outside this package.
	Node interface {
		File() string
		Line() int
		Pos() int

		node()
	}

	// Statement is a Node that can appear in a Program or in the body of an If.
	Statement interface {
		Node
		statement()
	}

	// Expression is a Node that produces a value.
	Expression interface {
		Node
		expression()
	}

	// Printable is the value of a Print statement: a Text, an IntLiteral or a VarRef.
	Printable interface {
		Node
		printable()
	}

	// Position is embedded in all nodes. The zero Position means "no source location".
	Position struct {
		file string
		line int
		pos  int
	}

	Program struct {
		Position
		Statements []Statement
	}

	Print struct {
		Position
		Value Printable
	}

	Declare struct {
		Position
		Name string
	}

	ReadInput struct {
		Position
		Name string
	}

	If struct {
		Position
		Condition Expression
		Body      []Statement
	}

	Assign struct {
		Position
		Name  string
		Value Expression
	}

	// ExpressionStatement is a bare expression used as a statement in the arithmetic language.
	ExpressionStatement struct {
		Position
		Expr Expression
	}

	Text struct {
		Position
		Value string
	}

	IntLiteral struct {
		Position
		Value int64
	}

	VarRef struct {
		Position
		Name string
	}

	BinaryOp struct {
		Position
		Op    Operator
		Left  Expression
		Right Expression
	}

	// Grouping is a parenthesized expression. It has no semantics of its own.
	Grouping struct {
		Position
		Inner Expression
	}
)

// At returns a Position for the given file, line and column.
func At(file string, line, pos int) Position {
	return Position{file, line, pos}
}

func (p Position) File() string {
	return p.file
}

func (p Position) Line() int {
	return p.line
}

func (p Position) Pos() int {
	return p.pos
}

func (Position) node() {}

func (*Print) statement()               {}
func (*Declare) statement()             {}
func (*ReadInput) statement()           {}
func (*If) statement()                  {}
func (*Assign) statement()              {}
func (*ExpressionStatement) statement() {}

func (*IntLiteral) expression() {}
func (*VarRef) expression()     {}
func (*BinaryOp) expression()   {}
func (*Grouping) expression()   {}

func (*Text) printable()       {}
func (*IntLiteral) printable() {}
func (*VarRef) printable()     {}
