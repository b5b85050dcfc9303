package impl

import (
	"sort"

	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/types"
)

// BasicEnvironment is the eval.Environment used by both evaluators. It is a single flat map;
// there are no nested scopes.
type BasicEnvironment struct {
	vars   map[string]types.Value
	policy eval.ReadPolicy
}

// NewEnvironment creates an empty environment that reads according to the given policy.
func NewEnvironment(policy eval.ReadPolicy) eval.Environment {
	return &BasicEnvironment{make(map[string]types.Value, 8), policy}
}

func (e *BasicEnvironment) Declare(name string) {
	if _, found := e.vars[name]; !found {
		e.vars[name] = types.Undef
	}
}

func (e *BasicEnvironment) Assign(name string, value types.Value) {
	e.vars[name] = value
}

func (e *BasicEnvironment) Read(name string) (value types.Value, found bool) {
	value, found = e.vars[name]
	if e.policy == eval.ZeroPolicy {
		if _, undef := value.(*types.UndefValue); undef || !found {
			return types.Zero, true
		}
	}
	return
}

func (e *BasicEnvironment) Get(name string) (value types.Value, found bool) {
	value, found = e.vars[name]
	return
}

func (e *BasicEnvironment) Has(name string) bool {
	_, found := e.vars[name]
	return found
}

func (e *BasicEnvironment) Names() []string {
	names := make([]string, 0, len(e.vars))
	for name := range e.vars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *BasicEnvironment) Fork() eval.Environment {
	clone := &BasicEnvironment{make(map[string]types.Value, len(e.vars)), e.policy}
	for k, v := range e.vars {
		clone.vars[k] = v
	}
	return clone
}

func (e *BasicEnvironment) Policy() eval.ReadPolicy {
	return e.policy
}
