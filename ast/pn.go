package ast

import (
	"bytes"
	"fmt"
	"strconv"
)

// ToPN returns a prefix notation rendering of the node, e.g. `(= x (+ 1 (* 2 3)))`.
func ToPN(n Node) string {
	b := bytes.NewBufferString(``)
	writePN(b, n)
	return b.String()
}

// Label returns a short human readable name for the node kind.
func Label(n Node) string {
	switch n.(type) {
	case *Program:
		return `program`
	case *Print:
		return `print statement`
	case *Declare:
		return `declaration`
	case *ReadInput:
		return `input statement`
	case *If:
		return `if statement`
	case *Assign:
		return `assignment`
	case *ExpressionStatement:
		return `expression statement`
	case *Text:
		return `text`
	case *IntLiteral:
		return `integer literal`
	case *VarRef:
		return `variable reference`
	case *BinaryOp:
		return `binary operation`
	case *Grouping:
		return `parenthesized expression`
	default:
		return fmt.Sprintf(`%T`, n)
	}
}

func writePN(b *bytes.Buffer, n Node) {
	switch n := n.(type) {
	case *Program:
		b.WriteString(`(program`)
		writeStatements(b, n.Statements)
		b.WriteByte(')')
	case *Print:
		b.WriteString(`(print `)
		writePN(b, n.Value)
		b.WriteByte(')')
	case *Declare:
		b.WriteString(`(decl ` + n.Name + `)`)
	case *ReadInput:
		b.WriteString(`(input ` + n.Name + `)`)
	case *If:
		b.WriteString(`(if `)
		writePN(b, n.Condition)
		writeStatements(b, n.Body)
		b.WriteByte(')')
	case *Assign:
		b.WriteString(`(= ` + n.Name + ` `)
		writePN(b, n.Value)
		b.WriteByte(')')
	case *ExpressionStatement:
		writePN(b, n.Expr)
	case *Text:
		b.WriteString(strconv.Quote(n.Value))
	case *IntLiteral:
		b.WriteString(strconv.FormatInt(n.Value, 10))
	case *VarRef:
		b.WriteString(`$` + n.Name)
	case *BinaryOp:
		b.WriteString(`(` + n.Op.String() + ` `)
		writePN(b, n.Left)
		b.WriteByte(' ')
		writePN(b, n.Right)
		b.WriteByte(')')
	case *Grouping:
		b.WriteString(`(paren `)
		writePN(b, n.Inner)
		b.WriteByte(')')
	case nil:
		b.WriteString(`nil`)
	default:
		panic(fmt.Sprintf(`unhandled case in writePN: %T`, n))
	}
}

func writeStatements(b *bytes.Buffer, statements []Statement) {
	for _, s := range statements {
		b.WriteByte(' ')
		writePN(b, s)
	}
}
