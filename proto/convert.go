// Package proto converts values and environments to and from datapb.Data.
package proto

import (
	"bytes"
	"fmt"
	"io"
	"io/ioutil"
	"strconv"

	pb "github.com/golang/protobuf/proto"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/types"
	"github.com/lyraproj/data-protobuf/datapb"
	"github.com/lyraproj/issue/issue"
)

const EVAL_ILLEGAL_SNAPSHOT = `EVAL_ILLEGAL_SNAPSHOT`

func init() {
	issue.Hard(EVAL_ILLEGAL_SNAPSHOT, `illegal environment snapshot: %{detail}`)
}

func ToPBData(v types.Value) (value *datapb.Data) {
	switch v := v.(type) {
	case types.BooleanValue:
		value = &datapb.Data{Kind: &datapb.Data_BooleanValue{BooleanValue: v.Bool()}}
	case types.FloatValue:
		value = &datapb.Data{Kind: &datapb.Data_FloatValue{FloatValue: v.Float()}}
	case types.IntegerValue:
		value = &datapb.Data{Kind: &datapb.Data_IntegerValue{IntegerValue: v.Int()}}
	default:
		value = &datapb.Data{Kind: &datapb.Data_UndefValue{}}
	}
	return
}

// FromPBData converts a scalar datapb.Data into a value. Kinds that have no value counterpart
// yield an EVAL_ILLEGAL_SNAPSHOT error.
func FromPBData(v *datapb.Data) (types.Value, error) {
	if v == nil {
		return types.Undef, nil
	}
	switch v.Kind.(type) {
	case *datapb.Data_BooleanValue:
		return types.WrapBoolean(v.GetBooleanValue()), nil
	case *datapb.Data_FloatValue:
		return types.WrapFloat(v.GetFloatValue()), nil
	case *datapb.Data_IntegerValue:
		return types.WrapInteger(v.GetIntegerValue()), nil
	case *datapb.Data_UndefValue, nil:
		return types.Undef, nil
	default:
		return nil, illegal(fmt.Sprintf(`unsupported value kind %T`, v.Kind))
	}
}

// EnvironmentToPB returns a hash with one entry per name in the environment, ordered by name.
// Names that are declared but not assigned have an undef value.
func EnvironmentToPB(env eval.Environment) *datapb.Data {
	names := env.Names()
	entries := make([]*datapb.DataEntry, len(names))
	for i, name := range names {
		v, _ := env.Get(name)
		entries[i] = &datapb.DataEntry{
			Key:   &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: name}},
			Value: ToPBData(v),
		}
	}
	return &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: entries}}}
}

// EnvironmentFromPB declares and assigns the entries of the given hash in env. The data is
// validated before env is changed.
func EnvironmentFromPB(data *datapb.Data, env eval.Environment) error {
	if _, ok := data.GetKind().(*datapb.Data_HashValue); !ok {
		return illegal(`expected a hash`)
	}
	entries := data.GetHashValue().GetEntries()
	names := make([]string, len(entries))
	values := make([]types.Value, len(entries))
	for i, entry := range entries {
		if _, ok := entry.GetKey().GetKind().(*datapb.Data_StringValue); !ok {
			return illegal(`keys must be strings`)
		}
		v, err := FromPBData(entry.GetValue())
		if err != nil {
			return err
		}
		names[i] = entry.GetKey().GetStringValue()
		values[i] = v
	}

	for i, name := range names {
		if _, undef := values[i].(*types.UndefValue); undef {
			env.Declare(name)
		} else {
			env.Assign(name, values[i])
		}
	}
	return nil
}

// WriteEnvironment writes the protobuf encoding of EnvironmentToPB(env) to w.
func WriteEnvironment(w io.Writer, env eval.Environment) error {
	bs, err := pb.Marshal(EnvironmentToPB(env))
	if err != nil {
		return err
	}
	_, err = w.Write(bs)
	return err
}

// ReadEnvironment reads a snapshot written by WriteEnvironment and adds its entries to env.
func ReadEnvironment(r io.Reader, env eval.Environment) error {
	bs, err := ioutil.ReadAll(r)
	if err != nil {
		return err
	}
	data := &datapb.Data{}
	if err = pb.Unmarshal(bs, data); err != nil {
		return illegal(err.Error())
	}
	return EnvironmentFromPB(data, env)
}

// Format renders a datapb.Data in a compact form, e.g. `{a => 1, b => undef}`.
func Format(v *datapb.Data) string {
	b := bytes.NewBufferString(``)
	format(b, v)
	return b.String()
}

func format(b *bytes.Buffer, v *datapb.Data) {
	switch v.GetKind().(type) {
	case *datapb.Data_BooleanValue:
		b.WriteString(strconv.FormatBool(v.GetBooleanValue()))
	case *datapb.Data_FloatValue:
		b.WriteString(types.WrapFloat(v.GetFloatValue()).String())
	case *datapb.Data_IntegerValue:
		b.WriteString(strconv.FormatInt(v.GetIntegerValue(), 10))
	case *datapb.Data_StringValue:
		b.WriteString(v.GetStringValue())
	case *datapb.Data_ArrayValue:
		b.WriteByte('[')
		for i, e := range v.GetArrayValue().GetValues() {
			if i > 0 {
				b.WriteString(`, `)
			}
			format(b, e)
		}
		b.WriteByte(']')
	case *datapb.Data_HashValue:
		b.WriteByte('{')
		for i, e := range v.GetHashValue().GetEntries() {
			if i > 0 {
				b.WriteString(`, `)
			}
			format(b, e.GetKey())
			b.WriteString(` => `)
			format(b, e.GetValue())
		}
		b.WriteByte('}')
	default:
		b.WriteString(`undef`)
	}
}

func illegal(detail string) issue.Reported {
	return eval.Error(EVAL_ILLEGAL_SNAPSHOT, issue.H{`detail`: detail}, nil)
}
