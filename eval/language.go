package eval

type Language int

const LangArithmetic = Language(1)
const LangStatement = Language(2)

func (l Language) String() string {
	switch l {
	case LangArithmetic:
		return `arithmetic`
	case LangStatement:
		return `statement`
	default:
		return `unknown`
	}
}
