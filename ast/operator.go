package ast

import "github.com/lyraproj/issue/issue"

// Operator is the closed set of binary operators.
type Operator int

const (
	Add = Operator(iota + 1)
	Subtract
	Multiply
	Divide
	Greater
	Less
	Equal
)

const InvalidOperator = `EVAL_INVALID_OPERATOR`

func init() {
	issue.Hard(InvalidOperator, `Invalid operator: '%{operator}'`)
}

var operatorStrings = map[Operator]string{
	Add:      `+`,
	Subtract: `-`,
	Multiply: `*`,
	Divide:   `/`,
	Greater:  `>`,
	Less:     `<`,
	Equal:    `==`,
}

// ParseOperator returns the Operator denoted by the given token. Tokens outside the
// enumeration are rejected with an EVAL_INVALID_OPERATOR issue located at loc (which
// may be nil).
func ParseOperator(token string, loc issue.Location) (Operator, error) {
	for op, s := range operatorStrings {
		if s == token {
			return op, nil
		}
	}
	return 0, issue.NewReported(InvalidOperator, issue.SEVERITY_ERROR, issue.H{`operator`: token}, loc)
}

func (o Operator) String() string {
	if s, ok := operatorStrings[o]; ok {
		return s
	}
	return `?`
}

// IsAdditive returns true for + and -.
func (o Operator) IsAdditive() bool {
	return o == Add || o == Subtract
}

// IsMultiplicative returns true for * and /.
func (o Operator) IsMultiplicative() bool {
	return o == Multiply || o == Divide
}

// IsComparison returns true for >, < and ==.
func (o Operator) IsComparison() bool {
	return o == Greater || o == Less || o == Equal
}
