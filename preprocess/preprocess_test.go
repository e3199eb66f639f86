package preprocess

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/comfylang/comfyc/diagnostic"
)

// fakeFS is an in-memory FileSystem fixture, matching the capability
// boundary Expand is specified against: "the core is specified as
// pure functions over strings and paths, with the filesystem
// abstracted behind a read-file capability."
type fakeFS struct {
	files map[string]string
}

func (f fakeFS) Exists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f fakeFS) ReadFile(path string) (string, error) {
	content, ok := f.files[path]
	if !ok {
		return "", errors.New("no such file: " + path)
	}
	return content, nil
}

func (f fakeFS) Canonicalize(path string) (string, error) {
	return path, nil
}

func (f fakeFS) Dir(path string) string {
	return filepath.Dir(path)
}

func TestExpandWithNoDirectivesIsIdentity(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"main.cfy": "fn main() {\n\t$exit(0);\n}\n",
	}}
	got, err := Expand(fs, "main.cfy", nil, Config{})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if got != fs.files["main.cfy"] {
		t.Errorf("Expand should be identity modulo trailing newline, got %q", got)
	}
}

func TestUserIncludeResolutionOrder(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"src/main.cfy":  `#include<"util.cfy">` + "\n",
		"src/util.cfy":  "// from src dir\n",
		"other/util.cfy": "// from other dir\n",
	}}
	got, err := Expand(fs, "src/main.cfy", []string{"other"}, Config{})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !strings.Contains(got, "from src dir") {
		t.Errorf("expected the current-file directory's util.cfy to win, got %q", got)
	}
}

func TestSystemIncludeResolvesAgainstSystemLibPath(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"main.cfy":                            "#include<io>\n",
		filepath.Join(SystemLibPath, "io"): "// system io header\n",
	}}
	got, err := Expand(fs, "main.cfy", nil, Config{})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !strings.Contains(got, "system io header") {
		t.Errorf("expected system header content, got %q", got)
	}
}

func TestCircularIncludeIsFatal(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"a.cfy": `#include<"b.cfy">` + "\n",
		"b.cfy": `#include<"a.cfy">` + "\n",
	}}
	_, err := Expand(fs, "a.cfy", nil, Config{})
	var circular *diagnostic.CircularInclude
	if !errors.As(err, &circular) {
		t.Fatalf("expected CircularInclude, got %T: %v", err, err)
	}
}

func TestUnresolvedIncludeIsFatal(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"main.cfy": `#include<"missing.cfy">` + "\n",
	}}
	_, err := Expand(fs, "main.cfy", nil, Config{})
	var unresolved *diagnostic.UnresolvedInclude
	if !errors.As(err, &unresolved) {
		t.Fatalf("expected UnresolvedInclude, got %T: %v", err, err)
	}
}

func TestConditionalCompilationEquality(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"main.cfy": "#if ARCH == \"arm32\"\nyes\n#else\nno\n#endif\n",
	}}

	got, err := Expand(fs, "main.cfy", nil, Config{"ARCH": "arm32"})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !strings.Contains(got, "yes") || strings.Contains(got, "no") {
		t.Errorf("expected only the true branch, got %q", got)
	}

	got, err = Expand(fs, "main.cfy", nil, Config{"ARCH": "x86"})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if strings.Contains(got, "yes") || !strings.Contains(got, "no") {
		t.Errorf("expected only the false branch, got %q", got)
	}
}

func TestConditionalCompilationInequalityAndBareKey(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"ne.cfy":  "#if ARCH != \"arm32\"\nyes\n#endif\n",
		"bare.cfy": "#if DEBUG\nyes\n#endif\n",
	}}

	got, err := Expand(fs, "ne.cfy", nil, Config{"ARCH": "x86"})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !strings.Contains(got, "yes") {
		t.Errorf("!= should be true when values differ, got %q", got)
	}

	got, err = Expand(fs, "bare.cfy", nil, Config{"DEBUG": "1"})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !strings.Contains(got, "yes") {
		t.Errorf("bare key \"1\" should be truthy, got %q", got)
	}

	got, err = Expand(fs, "bare.cfy", nil, Config{"DEBUG": "0"})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if strings.Contains(got, "yes") {
		t.Errorf("bare key \"0\" should be falsy, got %q", got)
	}
}

func TestUnmatchedConditionalsAreFatal(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"unclosed.cfy":   "#if DEBUG\nyes\n",
		"stray-else.cfy": "#else\n",
		"stray-endif.cfy": "#endif\n",
	}}

	for _, name := range []string{"unclosed.cfy", "stray-else.cfy", "stray-endif.cfy"} {
		_, err := Expand(fs, name, nil, Config{})
		var unmatched *diagnostic.UnmatchedConditional
		if !errors.As(err, &unmatched) {
			t.Errorf("%s: expected UnmatchedConditional, got %T: %v", name, err, err)
		}
	}
}

func TestNestedConditionalScoping(t *testing.T) {
	fs := fakeFS{files: map[string]string{
		"main.cfy": "#if OUTER\n" +
			"outer-yes\n" +
			"#if INNER\n" +
			"inner-yes\n" +
			"#else\n" +
			"inner-no\n" +
			"#endif\n" +
			"#endif\n",
	}}

	got, err := Expand(fs, "main.cfy", nil, Config{"OUTER": "true", "INNER": "true"})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if !strings.Contains(got, "outer-yes") || !strings.Contains(got, "inner-yes") || strings.Contains(got, "inner-no") {
		t.Errorf("got %q", got)
	}

	got, err = Expand(fs, "main.cfy", nil, Config{"OUTER": "false", "INNER": "true"})
	if err != nil {
		t.Fatalf("Expand returned error: %v", err)
	}
	if strings.Contains(got, "outer-yes") || strings.Contains(got, "inner-yes") || strings.Contains(got, "inner-no") {
		t.Errorf("outer-false should suppress everything inside, got %q", got)
	}
}
