package driver

import (
	"io"
	"io/ioutil"

	"github.com/kr/pretty"
	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/impl"
	"github.com/lyraproj/calc-evaluator/yaml2ast"
)

// LoadProgram reads and transforms a statement-language program file.
func LoadProgram(filename string) (*ast.Program, error) {
	content, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	return yaml2ast.YamlToAST(filename, content)
}

// RunProgram runs a statement-language program in a new environment. ReadInput statements read
// from in and Print statements write to out.
func RunProgram(program *ast.Program, in LineReader, out io.Writer) error {
	return RunProgramWithLogger(program, in, out, nil)
}

// RunProgramWithLogger is like RunProgram but reports to the given logger.
func RunProgramWithLogger(program *ast.Program, in LineReader, out io.Writer, logger eval.Logger) error {
	return impl.NewStatementEvaluator(impl.NewEnvironment(eval.ZeroPolicy), in, out, logger).Run(program)
}

// DumpAST writes a detailed rendering of the node structure followed by its prefix notation.
func DumpAST(w io.Writer, n ast.Node) {
	pretty.Fprintf(w, "%# v\n", n)
	io.WriteString(w, ast.ToPN(n))
	io.WriteString(w, "\n")
}
