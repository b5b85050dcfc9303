// Package eval declares the evaluator API: the Environment, the two evaluators, the input they
// read from, the issue codes they report and the Logger they report to. Implementations live in
// package impl.
package eval

import (
	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/types"
)

// ReadPolicy decides what Environment.Read returns for names without a value.
type ReadPolicy int

const (
	// StrictPolicy reports undeclared names as not found.
	StrictPolicy = ReadPolicy(iota)

	// ZeroPolicy returns Integer 0 for undeclared names and for names that are declared
	// but not assigned.
	ZeroPolicy
)

type (
	// Environment is a flat mapping from variable names to values. It is owned by one evaluator
	// and is not safe for concurrent use.
	Environment interface {
		// Declare makes name known with the Undef value. An existing value is kept.
		Declare(name string)

		// Assign sets the value of name, declaring it if needed.
		Assign(name string, value types.Value)

		// Read returns the value of name according to the ReadPolicy of the environment.
		Read(name string) (value types.Value, found bool)

		// Get returns the stored value of name without applying the ReadPolicy.
		Get(name string) (value types.Value, found bool)

		Has(name string) bool

		// Names returns all known names in sorted order.
		Names() []string

		// Fork returns an independent copy of this environment.
		Fork() Environment

		Policy() ReadPolicy
	}

	// LineReader provides lines of input. The prompt is a hint that interactive readers display.
	// The error is io.EOF when no more input is available.
	LineReader interface {
		ReadLine(prompt string) (string, error)
	}

	// ArithmeticEvaluator evaluates programs of the arithmetic language.
	ArithmeticEvaluator interface {
		Environment() Environment

		// Evaluate evaluates all statements in order and returns one value per statement. On
		// failure, the values of the statements that completed are returned together with the
		// error. Assignments made before the failure are kept.
		Evaluate(program *ast.Program) ([]types.Value, error)

		// EvaluateExpression evaluates a single expression.
		EvaluateExpression(expr ast.Expression) (types.Value, error)
	}

	// StatementEvaluator runs programs of the statement language.
	StatementEvaluator interface {
		Environment() Environment

		// Run executes the statements of the program in order. The first error ends the run.
		Run(program *ast.Program) error
	}
)
