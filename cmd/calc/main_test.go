package main

import (
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func tempFile(t *testing.T, name, content string) string {
	t.Helper()
	dir, err := ioutil.TempDir(``, `calc`)
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, name)
	if err = ioutil.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestBatchFile(t *testing.T) {
	path := tempFile(t, `lines.txt`, "$x = 2 + 3 * 4\n$x / 0\n($x - 4) / 4\n")
	defer os.RemoveAll(filepath.Dir(path))

	out := bytes.NewBufferString(``)
	errOut := bytes.NewBufferString(``)
	if code := run([]string{path}, strings.NewReader(``), out, errOut); code != 0 {
		t.Errorf(`unexpected exit code %d`, code)
	}
	want := "Result of expression \"$x = 2 + 3 * 4\": [14]\nResult of expression \"($x - 4) / 4\": [2.5]\n"
	if out.String() != want {
		t.Errorf("unexpected output\n got: %q\nwant: %q", out.String(), want)
	}
	if !strings.Contains(errOut.String(), `err: Error processing expression '$x / 0': Division by zero`) {
		t.Errorf(`unexpected error output %q`, errOut.String())
	}
}

func TestMissingFile(t *testing.T) {
	out := bytes.NewBufferString(``)
	if code := run([]string{`no/such/file.txt`}, strings.NewReader(``), out, out); code != 1 {
		t.Errorf(`unexpected exit code %d`, code)
	}
	if out.String() != "Error: file 'no/such/file.txt' not found.\n" {
		t.Errorf(`unexpected output %q`, out.String())
	}
}

func TestReplFromPipe(t *testing.T) {
	out := bytes.NewBufferString(``)
	if code := run(nil, strings.NewReader("$a = 4\n$a * $a\nexit\n"), out, out); code != 0 {
		t.Errorf(`unexpected exit code %d`, code)
	}
	want := "Arithmetic REPL. Type 'exit' to quit.\n" +
		"Result of expression \"$a = 4\": [4]\n" +
		"Result of expression \"$a * $a\": [16]\n" +
		"Exiting...\n"
	if out.String() != want {
		t.Errorf("unexpected output\n got: %q\nwant: %q", out.String(), want)
	}
}

func TestProgram(t *testing.T) {
	path := tempFile(t, `prog.yaml`, "- {type: DECL, name: n}\n- {type: INPUT, name: n}\n- {type: PRINT, var: n}\n")
	defer os.RemoveAll(filepath.Dir(path))

	*flagProgram = path
	defer func() { *flagProgram = `` }()

	out := bytes.NewBufferString(``)
	errOut := bytes.NewBufferString(``)
	if code := run(nil, strings.NewReader("  33\n"), out, errOut); code != 0 {
		t.Errorf(`unexpected exit code %d: %s`, code, errOut.String())
	}
	if out.String() != "33\n" {
		t.Errorf(`unexpected output %q`, out.String())
	}

	if code := run(nil, strings.NewReader("thirty\n"), out, errOut); code != 1 {
		t.Errorf(`expected a failure for a non integer input, got %d`, code)
	}
	if !strings.Contains(errOut.String(), `'thirty' is not an integer`) {
		t.Errorf(`unexpected error output %q`, errOut.String())
	}
}

func TestSaveAndRestore(t *testing.T) {
	path := tempFile(t, `lines.txt`, "$r = 10\n$area = 3 * $r * $r\n")
	defer os.RemoveAll(filepath.Dir(path))
	snapshot := filepath.Join(filepath.Dir(path), `vars.pb`)

	*flagSave = snapshot
	out := bytes.NewBufferString(``)
	code := run([]string{path}, strings.NewReader(``), out, out)
	*flagSave = ``
	if code != 0 {
		t.Fatalf(`unexpected exit code %d: %s`, code, out.String())
	}

	*flagRestore = snapshot
	defer func() { *flagRestore = `` }()
	out.Reset()
	if code = run(nil, strings.NewReader("$area / $r\n"), out, out); code != 0 {
		t.Fatalf(`unexpected exit code %d: %s`, code, out.String())
	}
	if !strings.Contains(out.String(), "Result of expression \"$area / $r\": [30.0]\n") {
		t.Errorf(`unexpected output %q`, out.String())
	}

	*flagRestore = filepath.Join(filepath.Dir(path), `missing.pb`)
	out.Reset()
	if code = run(nil, strings.NewReader(``), out, out); code != 1 {
		t.Errorf(`expected a failure for a missing snapshot, got %d`, code)
	}
}
