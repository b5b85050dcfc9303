// Package driver runs the evaluators: batch processing of arithmetic lines, the interactive
// loop, and statement-language programs.
package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/impl"
	"github.com/lyraproj/calc-evaluator/pp2ast"
	"github.com/lyraproj/calc-evaluator/proto"
	"github.com/lyraproj/calc-evaluator/settings"
	"github.com/lyraproj/calc-evaluator/types"
)

// Commands of the interactive loop. VarsCommand prints the environment. SaveCommand and
// LoadCommand take a file name and write or read an environment snapshot.
const (
	VarsCommand = `:vars`
	SaveCommand = `:save`
	LoadCommand = `:load`
)

// Session evaluates lines of the arithmetic language against one environment.
type Session struct {
	evaluator eval.ArithmeticEvaluator
	settings  *settings.Settings
	logger    eval.Logger
	out       io.Writer
}

// NewSession creates a session with an empty environment. Results are written to out.
func NewSession(s *settings.Settings, logger eval.Logger, out io.Writer) *Session {
	return &Session{
		evaluator: impl.NewArithmeticEvaluator(impl.NewEnvironment(eval.StrictPolicy), logger),
		settings:  s,
		logger:    logger,
		out:       out,
	}
}

func (s *Session) Environment() eval.Environment {
	return s.evaluator.Environment()
}

// EvalLine parses and evaluates one line. Unless the commit_on_error setting is false, assignments
// that completed before an error are kept.
func (s *Session) EvalLine(line string) ([]types.Value, error) {
	program, err := pp2ast.Parse(`line`, line)
	if err != nil {
		return nil, err
	}
	return s.Evaluate(program)
}

// Evaluate evaluates an already parsed program in the session environment.
func (s *Session) Evaluate(program *ast.Program) ([]types.Value, error) {
	if s.settings.Bool(settings.CommitOnError) {
		return s.evaluator.Evaluate(program)
	}

	forked := impl.NewArithmeticEvaluator(s.Environment().Fork(), s.logger)
	vs, err := forked.Evaluate(program)
	if err == nil {
		s.evaluator = forked
	}
	return vs, err
}

// Batch evaluates each non blank line read from r and prints its result. A failing line is logged
// and does not stop the processing. The number of failed lines is returned.
func (s *Session) Batch(r io.Reader) (failures int) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == `` {
			continue
		}
		eval.Debug(s.logger, `evaluating '%s'`, line)
		vs, err := s.EvalLine(line)
		if err != nil {
			failures++
			eval.Err(s.logger, `Error processing expression '%s': %s`, line, err.Error())
			continue
		}
		s.printResult(line, vs)
	}
	if err := scanner.Err(); err != nil {
		failures++
		eval.Err(s.logger, `Error reading input: %s`, err.Error())
	}
	return
}

// Repl runs the interactive loop until the exit command or the end of input.
func (s *Session) Repl(in LineReader) error {
	fmt.Fprintln(s.out, s.settings.String(settings.Banner))
	exit := s.settings.String(settings.ExitCommand)
	for {
		line, err := in.ReadLine(s.settings.String(settings.Prompt))
		if err != nil {
			if err == io.EOF {
				fmt.Fprintln(s.out)
				fmt.Fprintln(s.out, s.settings.String(settings.Farewell))
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		switch {
		case strings.EqualFold(line, exit):
			fmt.Fprintln(s.out, s.settings.String(settings.Farewell))
			return nil
		case line == ``:
		case line == VarsCommand:
			fmt.Fprintln(s.out, proto.Format(proto.EnvironmentToPB(s.Environment())))
		case isCommand(line, SaveCommand), isCommand(line, LoadCommand):
			s.snapshotCommand(line)
		default:
			vs, err := s.EvalLine(line)
			if err != nil {
				fmt.Fprintf(s.out, "Error: %s\n", err.Error())
				eval.Debug(s.logger, `failed '%s': %s`, line, err.Error())
				continue
			}
			s.printResult(line, vs)
		}
	}
}

// Save writes a snapshot of the environment to the named file.
func (s *Session) Save(file string) error {
	f, err := os.Create(file)
	if err != nil {
		return err
	}
	if err = proto.WriteEnvironment(f, s.Environment()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Load adds the variables of a snapshot written by Save to the environment. Existing variables
// that are not in the snapshot are kept.
func (s *Session) Load(file string) error {
	f, err := os.Open(file)
	if err != nil {
		return err
	}
	defer f.Close()
	return proto.ReadEnvironment(f, s.Environment())
}

func isCommand(line, command string) bool {
	return line == command || strings.HasPrefix(line, command+` `)
}

func (s *Session) snapshotCommand(line string) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		fmt.Fprintf(s.out, "Error: %s expects one file name\n", fields[0])
		return
	}
	var err error
	if fields[0] == SaveCommand {
		err = s.Save(fields[1])
	} else {
		err = s.Load(fields[1])
	}
	if err != nil {
		fmt.Fprintf(s.out, "Error: %s\n", err.Error())
		return
	}
	eval.Debug(s.logger, `%s %s`, fields[0], fields[1])
}

func (s *Session) printResult(line string, vs []types.Value) {
	if len(vs) == 0 {
		return
	}
	fmt.Fprintf(s.out, "Result of expression \"%s\": %s\n", line, types.FormatList(vs))
}

