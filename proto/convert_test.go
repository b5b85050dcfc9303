package proto

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/calc-evaluator/impl"
	"github.com/lyraproj/calc-evaluator/types"
	"github.com/lyraproj/data-protobuf/datapb"
	"github.com/lyraproj/issue/issue"
)

func TestEnvironmentSnapshot(t *testing.T) {
	env := impl.NewEnvironment(eval.ZeroPolicy)
	env.Assign(`x`, types.WrapInteger(6))
	env.Assign(`half`, types.WrapFloat(3.5))
	env.Declare(`d`)

	data := EnvironmentToPB(env)
	if got := Format(data); got != `{d => undef, half => 3.5, x => 6}` {
		t.Errorf(`unexpected snapshot %s`, got)
	}

	restored := impl.NewEnvironment(eval.ZeroPolicy)
	if err := EnvironmentFromPB(data, restored); err != nil {
		t.Fatal(err)
	}
	for _, name := range env.Names() {
		a, _ := env.Get(name)
		b, ok := restored.Get(name)
		if !ok || !a.Equals(b) {
			t.Errorf(`%s: %v != %v`, name, a, b)
		}
	}
}

func TestEnvironmentFromPBKeepsExistingOnDeclare(t *testing.T) {
	env := impl.NewEnvironment(eval.StrictPolicy)
	env.Assign(`d`, types.WrapInteger(1))
	data := &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: []*datapb.DataEntry{
		{Key: &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: `d`}}, Value: &datapb.Data{Kind: &datapb.Data_UndefValue{}}},
	}}}}
	if err := EnvironmentFromPB(data, env); err != nil {
		t.Fatal(err)
	}
	if v, _ := env.Get(`d`); !v.Equals(types.WrapInteger(1)) {
		t.Errorf(`unexpected value %s`, v)
	}
}

func TestIllegalSnapshots(t *testing.T) {
	str := func(s string) *datapb.Data { return &datapb.Data{Kind: &datapb.Data_StringValue{StringValue: s}} }
	hash := func(k, v *datapb.Data) *datapb.Data {
		return &datapb.Data{Kind: &datapb.Data_HashValue{HashValue: &datapb.DataHash{Entries: []*datapb.DataEntry{{Key: k, Value: v}}}}}
	}
	tests := map[string]*datapb.Data{
		`not a hash`:   str(`x`),
		`integer key`:  hash(ToPBData(types.WrapInteger(1)), ToPBData(types.WrapInteger(1))),
		`string value`: hash(str(`x`), str(`y`)),
	}
	for name, data := range tests {
		env := impl.NewEnvironment(eval.StrictPolicy)
		err := EnvironmentFromPB(data, env)
		if err == nil {
			t.Errorf(`%s: expected an error`, name)
			continue
		}
		if ri, ok := err.(issue.Reported); !ok || ri.Code() != EVAL_ILLEGAL_SNAPSHOT {
			t.Errorf(`%s: unexpected error %v`, name, err)
		}
		if len(env.Names()) != 0 {
			t.Errorf(`%s: environment must not change`, name)
		}
	}
}

func TestWriteAndReadEnvironment(t *testing.T) {
	env := impl.NewEnvironment(eval.StrictPolicy)
	env.Assign(`total`, types.WrapInteger(-9223372036854775808))
	env.Assign(`ratio`, types.WrapFloat(0.25))
	env.Declare(`pending`)

	b := bytes.NewBuffer(nil)
	if err := WriteEnvironment(b, env); err != nil {
		t.Fatal(err)
	}
	restored := impl.NewEnvironment(eval.StrictPolicy)
	if err := ReadEnvironment(b, restored); err != nil {
		t.Fatal(err)
	}
	if got := Format(EnvironmentToPB(restored)); got != `{pending => undef, ratio => 0.25, total => -9223372036854775808}` {
		t.Errorf(`unexpected environment %s`, got)
	}
}

func TestReadEnvironmentRejectsGarbage(t *testing.T) {
	for _, bs := range [][]byte{{0xff, 0xff}, {}} {
		err := ReadEnvironment(bytes.NewReader(bs), impl.NewEnvironment(eval.StrictPolicy))
		if ri, ok := err.(issue.Reported); !ok || ri.Code() != EVAL_ILLEGAL_SNAPSHOT {
			t.Errorf(`%v: unexpected error %v`, bs, err)
		}
	}
}

func ExampleFormat() {
	env := impl.NewEnvironment(eval.StrictPolicy)
	env.Assign(`b`, types.WrapInteger(2))
	env.Assign(`a`, types.WrapFloat(1))
	fmt.Println(Format(EnvironmentToPB(env)))
	// Output: {a => 1.0, b => 2}
}
