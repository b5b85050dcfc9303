// Package types contains the runtime values produced by the evaluators.
package types

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type (
	Value interface {
		fmt.Stringer

		// Equals returns true when the other value is of the same kind and has the same content.
		Equals(other interface{}) bool

		// TypeName returns the name of the value kind, e.g. `Integer`.
		TypeName() string
	}

	// NumericValue is implemented by IntegerValue and FloatValue.
	NumericValue interface {
		Value
		Int() int64
		Float() float64
	}

	IntegerValue int64

	FloatValue float64

	BooleanValue bool

	// UndefValue is the value of a name that has been declared but never assigned.
	UndefValue struct{}
)

var (
	Undef = &UndefValue{}
	True  = BooleanValue(true)
	False = BooleanValue(false)
	Zero  = IntegerValue(0)
)

func WrapInteger(v int64) IntegerValue {
	return IntegerValue(v)
}

func WrapFloat(v float64) FloatValue {
	return FloatValue(v)
}

func WrapBoolean(v bool) BooleanValue {
	if v {
		return True
	}
	return False
}

func (iv IntegerValue) Int() int64 {
	return int64(iv)
}

func (iv IntegerValue) Float() float64 {
	return float64(iv)
}

func (iv IntegerValue) Equals(o interface{}) bool {
	ov, ok := o.(IntegerValue)
	return ok && iv == ov
}

func (iv IntegerValue) String() string {
	return strconv.FormatInt(int64(iv), 10)
}

func (IntegerValue) TypeName() string {
	return `Integer`
}

func (fv FloatValue) Int() int64 {
	return int64(fv)
}

func (fv FloatValue) Float() float64 {
	return float64(fv)
}

func (fv FloatValue) Equals(o interface{}) bool {
	ov, ok := o.(FloatValue)
	return ok && fv == ov
}

// String returns the shortest representation of the float that parses back to the same value.
// Exponent notation is used when the decimal exponent is below -4 or at least 16. Otherwise
// integral values keep a trailing `.0` so that they are distinguishable from integers.
func (fv FloatValue) String() string {
	f := float64(fv)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	s := strconv.FormatFloat(f, 'e', -1, 64)
	if exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:]); exp < -4 || exp >= 16 {
		return s
	}
	s = strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += `.0`
	}
	return s
}

func (FloatValue) TypeName() string {
	return `Float`
}

func (bv BooleanValue) Bool() bool {
	return bool(bv)
}

func (bv BooleanValue) Equals(o interface{}) bool {
	ov, ok := o.(BooleanValue)
	return ok && bv == ov
}

func (bv BooleanValue) String() string {
	if bv {
		return `true`
	}
	return `false`
}

func (BooleanValue) TypeName() string {
	return `Boolean`
}

func (*UndefValue) Equals(o interface{}) bool {
	_, ok := o.(*UndefValue)
	return ok
}

func (*UndefValue) String() string {
	return `undef`
}

func (*UndefValue) TypeName() string {
	return `Undef`
}

// IsTruthy returns true for Boolean true and for any non-zero number.
func IsTruthy(v Value) bool {
	switch v := v.(type) {
	case BooleanValue:
		return bool(v)
	case IntegerValue:
		return v != 0
	case FloatValue:
		return v != 0
	default:
		return false
	}
}

// ToNumber returns the numeric value of v. Booleans count as 0 or 1 and Undef counts as 0.
func ToNumber(v Value) NumericValue {
	switch v := v.(type) {
	case NumericValue:
		return v
	case BooleanValue:
		if v {
			return IntegerValue(1)
		}
		return Zero
	default:
		return Zero
	}
}

// FormatList renders values as `[v1, v2]`.
func FormatList(values []Value) string {
	b := strings.Builder{}
	b.WriteByte('[')
	for i, v := range values {
		if i > 0 {
			b.WriteString(`, `)
		}
		b.WriteString(v.String())
	}
	b.WriteByte(']')
	return b.String()
}
