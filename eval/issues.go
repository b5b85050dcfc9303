package eval

import "github.com/lyraproj/issue/issue"

const (
	DivisionByZero        = `EVAL_DIVISION_BY_ZERO`
	EndOfInput            = `EVAL_END_OF_INPUT`
	IntegerOverflow       = `EVAL_INTEGER_OVERFLOW`
	NotInteger            = `EVAL_NOT_INTEGER`
	OperatorNotApplicable = `EVAL_OPERATOR_NOT_APPLICABLE`
	ParseError            = `EVAL_PARSE_ERROR`
	UnknownVariable       = `EVAL_UNKNOWN_VARIABLE`
	UnsupportedExpression = `EVAL_UNSUPPORTED_EXPRESSION`
)

func init() {
	issue.Hard(DivisionByZero, `Division by zero`)

	issue.Hard(EndOfInput, `Unexpected end of input while reading a value for '%{name}'`)

	issue.Hard(IntegerOverflow, `Integer overflow: %{value} is outside the range of a 64-bit integer`)

	issue.Hard(NotInteger, `Invalid input for '%{name}': '%{value}' is not an integer`)

	issue.Hard(OperatorNotApplicable, `Operator '%{operator}' is not applicable to %{value}`)

	issue.Hard(ParseError, `%{message}`)

	issue.Hard(UnknownVariable, `Unknown variable: '%{name}'`)

	issue.Hard(UnsupportedExpression, `%{expression} is not supported in the %{language} language`)
}

// Error creates an error-severity issue.Reported with the given code, arguments and location.
// The location may be nil.
func Error(code issue.Code, args issue.H, location issue.Location) issue.Reported {
	return issue.NewReported(code, issue.SEVERITY_ERROR, args, location)
}
