// Package settings is a registry of typed, named settings with defaults. Settings can be loaded
// from a YAML file and overridden individually.
package settings

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lyraproj/calc-evaluator/eval"
	"github.com/lyraproj/issue/issue"
	"gopkg.in/yaml.v2"
)

const (
	Banner        = `banner`
	CommitOnError = `commit_on_error`
	Debug         = `debug`
	ExitCommand   = `exit_command`
	Farewell      = `farewell`
	Prompt        = `prompt`
)

const (
	EVAL_SETTING_TYPE_MISMATCH = `EVAL_SETTING_TYPE_MISMATCH`
	EVAL_UNKNOWN_SETTING       = `EVAL_UNKNOWN_SETTING`
)

func init() {
	issue.Hard(EVAL_SETTING_TYPE_MISMATCH, `Setting '%{name}' expects a %{expected} value, got %{actual}`)
	issue.Hard(EVAL_UNKNOWN_SETTING, `Unknown setting '%{name}'`)
}

type (
	setting struct {
		name         string
		value        interface{}
		defaultValue interface{}
	}

	Settings struct {
		lock     sync.RWMutex
		settings map[string]*setting
	}
)

// New returns a registry with all settings defined and set to their defaults.
func New() *Settings {
	s := &Settings{settings: make(map[string]*setting, 8)}
	s.DefineSetting(Prompt, `>>> `)
	s.DefineSetting(Banner, `Arithmetic REPL. Type 'exit' to quit.`)
	s.DefineSetting(Farewell, `Exiting...`)
	s.DefineSetting(ExitCommand, `exit`)
	s.DefineSetting(Debug, false)
	s.DefineSetting(CommitOnError, true)
	return s
}

// DefineSetting defines a setting. The type of the default value becomes the type of the setting.
func (s *Settings) DefineSetting(key string, dflt interface{}) {
	st := &setting{name: key, value: dflt, defaultValue: dflt}
	s.lock.Lock()
	s.settings[key] = st
	s.lock.Unlock()
}

func (s *Settings) Get(key string) interface{} {
	st := s.lookup(key)
	s.lock.RLock()
	defer s.lock.RUnlock()
	return st.value
}

func (s *Settings) String(key string) string {
	return s.Get(key).(string)
}

func (s *Settings) Bool(key string) bool {
	return s.Get(key).(bool)
}

// Set assigns a value to a setting. It panics with an issue.Reported if the setting is unknown or if
// the value is of the wrong type.
func (s *Settings) Set(key string, value interface{}) {
	st := s.lookup(key)
	if fmt.Sprintf(`%T`, value) != fmt.Sprintf(`%T`, st.defaultValue) {
		panic(eval.Error(EVAL_SETTING_TYPE_MISMATCH, issue.H{`name`: key, `expected`: typeName(st.defaultValue), `actual`: typeName(value)}, nil))
	}
	s.lock.Lock()
	st.value = value
	s.lock.Unlock()
}

// Reset restores all settings to their defaults.
func (s *Settings) Reset() {
	s.lock.Lock()
	for _, st := range s.settings {
		st.value = st.defaultValue
	}
	s.lock.Unlock()
}

func (s *Settings) Names() []string {
	s.lock.RLock()
	names := make([]string, 0, len(s.settings))
	for name := range s.settings {
		names = append(names, name)
	}
	s.lock.RUnlock()
	sort.Strings(names)
	return names
}

// LoadYAML assigns the settings found in the given YAML mapping. Nothing is assigned unless all
// entries are valid.
func (s *Settings) LoadYAML(filename string, content []byte) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if ri, ok := r.(issue.Reported); ok {
				err = ri
				return
			}
			panic(r)
		}
	}()

	ms := make(yaml.MapSlice, 0)
	if yerr := yaml.Unmarshal(content, &ms); yerr != nil {
		return eval.Error(eval.ParseError, issue.H{`message`: yerr.Error()}, issue.NewLocation(filename, 0, 0))
	}

	// Validate on a scratch copy so that a failure leaves s untouched
	scratch := s.copy()
	for _, mi := range ms {
		scratch.Set(fmt.Sprint(mi.Key), mi.Value)
	}
	for _, mi := range ms {
		s.Set(fmt.Sprint(mi.Key), mi.Value)
	}
	return nil
}

func (s *Settings) copy() *Settings {
	s.lock.RLock()
	defer s.lock.RUnlock()
	c := &Settings{settings: make(map[string]*setting, len(s.settings))}
	for k, st := range s.settings {
		cs := *st
		c.settings[k] = &cs
	}
	return c
}

func (s *Settings) lookup(key string) *setting {
	s.lock.RLock()
	st, ok := s.settings[key]
	s.lock.RUnlock()
	if !ok {
		panic(eval.Error(EVAL_UNKNOWN_SETTING, issue.H{`name`: key}, nil))
	}
	return st
}

func typeName(v interface{}) string {
	switch v.(type) {
	case string:
		return `string`
	case bool:
		return `boolean`
	case nil:
		return `null`
	default:
		return fmt.Sprintf(`%T`, v)
	}
}
