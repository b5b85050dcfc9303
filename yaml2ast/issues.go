package yaml2ast

import (
	"strings"

	"github.com/lyraproj/issue/issue"
)

const (
	EVAL_UNSUPPORTED_VERSION         = `EVAL_UNSUPPORTED_VERSION`
	EVAL_YAML_ILLEGAL_TYPE           = `EVAL_YAML_ILLEGAL_TYPE`
	EVAL_YAML_MISSING_KEY            = `EVAL_YAML_MISSING_KEY`
	EVAL_YAML_UNRECOGNIZED_KEY       = `EVAL_YAML_UNRECOGNIZED_KEY`
	EVAL_YAML_UNRECOGNIZED_STATEMENT = `EVAL_YAML_UNRECOGNIZED_STATEMENT`
)

func joinPath(path interface{}) string {
	return strings.Join(path.([]string), `/`)
}

func init() {
	issue.Hard(EVAL_UNSUPPORTED_VERSION, `program version '%{version}' is not supported. Supported versions are %{range}`)

	issue.Hard2(EVAL_YAML_ILLEGAL_TYPE, `the value must be %{expected}. Got %{actual}. Path %{path}`,
		issue.HF{`path`: joinPath})

	issue.Hard2(EVAL_YAML_MISSING_KEY, `missing required key '%{key}'. Path %{path}`, issue.HF{`path`: joinPath})

	issue.Hard2(EVAL_YAML_UNRECOGNIZED_KEY, `unrecognized key '%{key}'. Path %{path}`, issue.HF{`path`: joinPath})

	issue.Hard2(EVAL_YAML_UNRECOGNIZED_STATEMENT, `unrecognized statement type '%{type}'. Path %{path}`, issue.HF{`path`: joinPath})
}
