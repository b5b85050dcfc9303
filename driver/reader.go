package driver

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/peterh/liner"
)

// LineReader provides lines of input. ReadLine returns io.EOF when no more input is available.
type LineReader = eval.LineReader

type (
	scannerReader struct {
		scanner *bufio.Scanner
		prompts io.Writer
	}

	// TerminalReader is a LineReader with line editing and history for interactive use.
	TerminalReader struct {
		state       *liner.State
		historyPath string
	}
)

// NewScannerReader returns a LineReader that reads lines from r. Prompts are written to prompts
// unless it is nil.
func NewScannerReader(r io.Reader, prompts io.Writer) LineReader {
	return &scannerReader{bufio.NewScanner(r), prompts}
}

func (r *scannerReader) ReadLine(prompt string) (string, error) {
	if r.prompts != nil && prompt != `` {
		fmt.Fprint(r.prompts, prompt)
	}
	if r.scanner.Scan() {
		return r.scanner.Text(), nil
	}
	if err := r.scanner.Err(); err != nil {
		return ``, err
	}
	return ``, io.EOF
}

// NewTerminalReader takes control of the terminal. Close must be called to restore it. History is
// read from and saved to historyPath unless it is empty.
func NewTerminalReader(historyPath string) *TerminalReader {
	state := liner.NewLiner()
	state.SetCtrlCAborts(true)
	if historyPath != `` {
		if f, err := os.Open(historyPath); err == nil {
			_, _ = state.ReadHistory(f)
			_ = f.Close()
		}
	}
	return &TerminalReader{state, historyPath}
}

func (r *TerminalReader) ReadLine(prompt string) (string, error) {
	line, err := r.state.Prompt(prompt)
	if err != nil {
		if err == liner.ErrPromptAborted {
			return ``, io.EOF
		}
		return ``, err
	}
	if line != `` {
		r.state.AppendHistory(line)
	}
	return line, nil
}

func (r *TerminalReader) Close() error {
	if r.historyPath != `` {
		if f, err := os.Create(r.historyPath); err == nil {
			_, _ = r.state.WriteHistory(f)
			_ = f.Close()
		}
	}
	return r.state.Close()
}
