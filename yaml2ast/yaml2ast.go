// Package yaml2ast is the front-end of the statement language. A program is a YAML document with
// an optional version and a list of statements.
package yaml2ast

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/lyraproj/calc-evaluator/ast"
	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/issue/issue"
	"github.com/lyraproj/semver/semver"
	"gopkg.in/yaml.v2"
)

// SupportedVersions is the range of program versions that this package can transform.
var SupportedVersions, _ = semver.ParseVersionRange(`1.x`)

type transformer struct {
	p    []string
	plen int
}

// YamlToAST parses and transforms the given YAML content into an ast.Program. The returned error
// is an issue.Reported.
func YamlToAST(filename string, content []byte) (program *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				program = nil
				err = ri
				return
			}
			panic(r)
		}
	}()

	var doc interface{}
	ms := make(yaml.MapSlice, 0)
	if yerr := yaml.Unmarshal(content, &ms); yerr == nil {
		doc = ms
	} else {
		var list []interface{}
		if yaml.Unmarshal(content, &list) != nil {
			return nil, eval.Error(eval.ParseError, issue.H{`message`: yerr.Error()}, issue.NewLocation(filename, 0, 0))
		}
		doc = list
	}

	yp := &transformer{[]string{filename}, 1}
	program = yp.transformDocument(doc)
	if err = ast.Validate(program); err != nil {
		return nil, err
	}
	return program, nil
}

func (yp *transformer) transformDocument(doc interface{}) *ast.Program {
	if list, ok := doc.([]interface{}); ok {
		return ast.NewProgram(yp.transformStatements(list)...)
	}

	var statements []ast.Statement
	for _, mi := range doc.(yaml.MapSlice) {
		key := yp.keyString(mi.Key)
		yp.pushPath(key)
		switch key {
		case `version`:
			yp.checkVersion(mi.Value)
		case `statements`:
			statements = yp.transformStatements(yp.list(mi.Value))
		default:
			panic(yp.error(EVAL_YAML_UNRECOGNIZED_KEY, issue.H{`key`: key}))
		}
		yp.popPath()
	}
	return ast.NewProgram(statements...)
}

func (yp *transformer) checkVersion(value interface{}) {
	vs := fmt.Sprint(value)
	v, err := semver.ParseVersion(vs)
	if err != nil || !SupportedVersions.Includes(v) {
		panic(yp.error(EVAL_UNSUPPORTED_VERSION, issue.H{`version`: vs, `range`: SupportedVersions.String()}))
	}
}

func (yp *transformer) transformStatements(list []interface{}) []ast.Statement {
	statements := make([]ast.Statement, len(list))
	for i, v := range list {
		yp.pushPath(i)
		statements[i] = yp.transformStatement(yp.hash(v))
		yp.popPath()
	}
	return statements
}

func (yp *transformer) transformStatement(ms yaml.MapSlice) ast.Statement {
	tv, ok := lookup(ms, `type`)
	if !ok {
		panic(yp.error(EVAL_YAML_MISSING_KEY, issue.H{`key`: `type`}))
	}
	st := strings.ToUpper(yp.keyString(tv))

	switch st {
	case `PRINT`:
		yp.checkKeys(ms, `type`, `value`, `var`)
		if v, ok := lookup(ms, `var`); ok {
			return ast.NewPrint(ast.NewVar(yp.string(`var`, v)))
		}
		v, ok := lookup(ms, `value`)
		if !ok {
			panic(yp.error(EVAL_YAML_MISSING_KEY, issue.H{`key`: `value`}))
		}
		return ast.NewPrint(yp.printable(v))
	case `DECL`:
		yp.checkKeys(ms, `type`, `name`)
		return ast.NewDeclare(yp.name(ms))
	case `INPUT`:
		yp.checkKeys(ms, `type`, `name`)
		return ast.NewReadInput(yp.name(ms))
	case `IF`:
		yp.checkKeys(ms, `type`, `condition`, `statements`)
		cv, ok := lookup(ms, `condition`)
		if !ok {
			panic(yp.error(EVAL_YAML_MISSING_KEY, issue.H{`key`: `condition`}))
		}
		yp.pushPath(`condition`)
		cond := yp.transformExpression(cv)
		yp.popPath()

		var body []ast.Statement
		if bv, ok := lookup(ms, `statements`); ok && bv != nil {
			yp.pushPath(`statements`)
			body = yp.transformStatements(yp.list(bv))
			yp.popPath()
		}
		return ast.NewIf(cond, body...)
	default:
		panic(yp.error(EVAL_YAML_UNRECOGNIZED_STATEMENT, issue.H{`type`: st}))
	}
}

func (yp *transformer) printable(v interface{}) ast.Printable {
	if n, ok := toInt(v); ok {
		return ast.NewInt(n)
	}
	switch v := v.(type) {
	case string:
		return ast.NewText(v)
	case nil:
		return ast.NewText(``)
	default:
		// Floats and booleans print as written
		return ast.NewText(fmt.Sprint(v))
	}
}

func (yp *transformer) transformExpression(v interface{}) ast.Expression {
	if n, ok := toInt(v); ok {
		return ast.NewInt(n)
	}
	switch v := v.(type) {
	case string:
		return ast.NewVar(v)
	case yaml.MapSlice, map[interface{}]interface{}:
		ms := yp.hash(v)
		if inner, ok := lookup(ms, `group`); ok {
			yp.checkKeys(ms, `group`)
			yp.pushPath(`group`)
			defer yp.popPath()
			return ast.NewGrouping(yp.transformExpression(inner))
		}
		yp.checkKeys(ms, `left`, `op`, `right`)
		return yp.binary(ms)
	default:
		panic(yp.illegalType(`an integer, a variable name or an operation`, v))
	}
}

func (yp *transformer) binary(ms yaml.MapSlice) ast.Expression {
	operand := func(key string) ast.Expression {
		v, ok := lookup(ms, key)
		if !ok {
			panic(yp.error(EVAL_YAML_MISSING_KEY, issue.H{`key`: key}))
		}
		yp.pushPath(key)
		defer yp.popPath()
		return yp.transformExpression(v)
	}

	ov, ok := lookup(ms, `op`)
	if !ok {
		panic(yp.error(EVAL_YAML_MISSING_KEY, issue.H{`key`: `op`}))
	}
	op, err := ast.ParseOperator(yp.string(`op`, ov), nil)
	if err != nil {
		panic(err)
	}
	return ast.NewBinary(op, operand(`left`), operand(`right`))
}

func (yp *transformer) name(ms yaml.MapSlice) string {
	v, ok := lookup(ms, `name`)
	if !ok {
		panic(yp.error(EVAL_YAML_MISSING_KEY, issue.H{`key`: `name`}))
	}
	return yp.string(`name`, v)
}

func (yp *transformer) string(key string, v interface{}) string {
	if s, ok := v.(string); ok {
		return s
	}
	yp.pushPath(key)
	panic(yp.illegalType(`a string`, v))
}

func (yp *transformer) list(v interface{}) []interface{} {
	switch v := v.(type) {
	case []interface{}:
		return v
	case nil:
		return nil
	default:
		panic(yp.illegalType(`a list`, v))
	}
}

// hash returns the given value as a yaml.MapSlice. Plain maps are converted with their keys in
// sorted order.
func (yp *transformer) hash(v interface{}) yaml.MapSlice {
	switch v := v.(type) {
	case yaml.MapSlice:
		return v
	case map[interface{}]interface{}:
		ms := make(yaml.MapSlice, 0, len(v))
		for k, e := range v {
			ms = append(ms, yaml.MapItem{Key: k, Value: e})
		}
		sort.Slice(ms, func(i, j int) bool { return fmt.Sprint(ms[i].Key) < fmt.Sprint(ms[j].Key) })
		return ms
	default:
		panic(yp.illegalType(`a hash`, v))
	}
}

func (yp *transformer) checkKeys(ms yaml.MapSlice, allowed ...string) {
	for _, mi := range ms {
		key := yp.keyString(mi.Key)
		found := false
		for _, a := range allowed {
			if key == a {
				found = true
				break
			}
		}
		if !found {
			panic(yp.error(EVAL_YAML_UNRECOGNIZED_KEY, issue.H{`key`: key}))
		}
	}
}

func (yp *transformer) keyString(k interface{}) string {
	if s, ok := k.(string); ok {
		return s
	}
	panic(yp.illegalType(`a string`, k))
}

func (yp *transformer) illegalType(expected string, actual interface{}) issue.Reported {
	return yp.error(EVAL_YAML_ILLEGAL_TYPE, issue.H{`expected`: expected, `actual`: typeLabel(actual)})
}

func (yp *transformer) error(code issue.Code, args issue.H) issue.Reported {
	args[`path`] = append([]string(nil), yp.path()...)
	return eval.Error(code, args, nil)
}

func (yp *transformer) pushPath(elem interface{}) {
	s := ``
	switch elem := elem.(type) {
	case string:
		s = elem
	case int:
		s = strconv.Itoa(elem)
	default:
		s = fmt.Sprint(elem)
	}
	if yp.plen < len(yp.p) {
		yp.p[yp.plen] = s
	} else {
		yp.p = append(yp.p, s)
	}
	yp.plen++
}

func (yp *transformer) popPath() {
	yp.plen--
}

func (yp *transformer) path() []string {
	return yp.p[0:yp.plen]
}

func lookup(ms yaml.MapSlice, key string) (interface{}, bool) {
	for _, mi := range ms {
		if mi.Key == key {
			return mi.Value, true
		}
	}
	return nil, false
}

func toInt(v interface{}) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	}
	return 0, false
}

func typeLabel(v interface{}) string {
	switch v.(type) {
	case nil:
		return `null`
	case string:
		return `a string`
	case int, int64, uint64:
		return `an integer`
	case float64:
		return `a float`
	case bool:
		return `a boolean`
	case []interface{}:
		return `a list`
	case yaml.MapSlice, map[interface{}]interface{}:
		return `a hash`
	default:
		return fmt.Sprintf(`a %T`, v)
	}
}
