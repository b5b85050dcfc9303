package main

import (
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/lyraproj/calc-evaluator/driver"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/pp2ast"
	"github.com/lyraproj/calc-evaluator/proto"
	"github.com/lyraproj/calc-evaluator/settings"
	"github.com/lyraproj/calc-evaluator/yaml2ast"
	"github.com/lyraproj/semver/semver"
)

var version = semver.MustParseVersion(`1.0.0`)

const historyFile = `.calc_history`

var (
	flagConfig  = flag.String("config", "", "load settings from a YAML file")
	flagDebug   = flag.Bool("debug", false, "log each evaluated statement")
	flagDump    = flag.Bool("dump", false, "print the variables when batch processing ends")
	flagAST     = flag.Bool("ast", false, "print the AST of each line instead of evaluating it")
	flagProgram = flag.String("program", "", "run a statement-language YAML program, reading input from stdin")
	flagRestore = flag.String("restore", "", "load variables from a snapshot file before evaluating")
	flagSave    = flag.String("save", "", "write a snapshot of the variables to a file when evaluation ends")
	flagVersion = flag.Bool("version", false, "print the version and exit")
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: calc [flags] [file]\n")
		flag.PrintDefaults()
	}
	flag.Parse()
	os.Exit(run(flag.Args(), os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if *flagVersion {
		fmt.Fprintf(stdout, "calc %s (program versions %s)\n", version, yaml2ast.SupportedVersions)
		return 0
	}

	s := settings.New()
	if *flagConfig != `` {
		content, err := ioutil.ReadFile(*flagConfig)
		if err == nil {
			err = s.LoadYAML(*flagConfig, content)
		}
		if err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
	}
	if *flagDebug {
		s.Set(settings.Debug, true)
	}
	logger := eval.NewStdLogger(stdout, stderr, s.Bool(settings.Debug))

	if *flagProgram != `` {
		return runProgram(*flagProgram, stdin, stdout, stderr, logger)
	}

	session := driver.NewSession(s, logger, stdout)
	if *flagRestore != `` {
		if err := session.Load(*flagRestore); err != nil {
			fmt.Fprintf(stderr, "Error: %s\n", err)
			return 1
		}
	}

	if len(args) == 0 {
		return saveSnapshot(session, stderr, repl(session, logger, stdin))
	}

	file := args[0]
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stdout, "Error: file '%s' not found.\n", file)
		} else {
			fmt.Fprintf(stdout, "Error processing file: %s\n", err)
		}
		return 1
	}
	defer f.Close()

	if *flagAST {
		return dumpAST(file, f, stdout, stderr)
	}

	if failures := session.Batch(f); failures > 0 {
		eval.Debug(logger, `%d of the expressions in '%s' failed`, failures, file)
	}
	if *flagDump {
		fmt.Fprintln(stdout, proto.Format(proto.EnvironmentToPB(session.Environment())))
	}
	return saveSnapshot(session, stderr, 0)
}

func saveSnapshot(session *driver.Session, stderr io.Writer, code int) int {
	if *flagSave == `` || code != 0 {
		return code
	}
	if err := session.Save(*flagSave); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func runProgram(file string, stdin io.Reader, stdout, stderr io.Writer, logger eval.Logger) int {
	program, err := driver.LoadProgram(file)
	if err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintf(stdout, "Error: file '%s' not found.\n", file)
		} else {
			fmt.Fprintf(stderr, "Error: %s\n", err)
		}
		return 1
	}
	if *flagAST {
		driver.DumpAST(stdout, program)
		return 0
	}
	if err = driver.RunProgramWithLogger(program, driver.NewScannerReader(stdin, nil), stdout, logger); err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	return 0
}

func repl(session *driver.Session, logger eval.Logger, stdin io.Reader) int {
	var in driver.LineReader
	if f, ok := stdin.(*os.File); ok && isTerminal(f) {
		home, _ := os.UserHomeDir()
		tr := driver.NewTerminalReader(filepath.Join(home, historyFile))
		defer tr.Close()
		in = tr
	} else {
		in = driver.NewScannerReader(stdin, nil)
	}

	if err := session.Repl(in); err != nil {
		eval.Err(logger, `%s`, err.Error())
		return 1
	}
	return 0
}

func dumpAST(file string, r io.Reader, stdout, stderr io.Writer) int {
	content, err := ioutil.ReadAll(r)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	program, err := pp2ast.Parse(file, string(content))
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s\n", err)
		return 1
	}
	driver.DumpAST(stdout, program)
	return 0
}

func isTerminal(f *os.File) bool {
	fi, err := f.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
