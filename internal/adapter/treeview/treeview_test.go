package treeview

import (
	"strings"
	"testing"
)

func TestRender_Basic(t *testing.T) {
	tree := Build([]string{
		"cmd/app/main.go",
		"internal/server/http.go",
		"internal/server/routes.go",
		"README.md",
	})

	out := tree.Render(10, 100)

	for _, want := range []string{"cmd/", "internal/", "server/", "main.go", "routes.go", "README.md"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRender_DirsBeforeFiles(t *testing.T) {
	tree := Build([]string{
		"aaa.go",
		"zzz/inner.go",
	})

	out := tree.Render(10, 100)
	dirIdx := strings.Index(out, "zzz/")
	fileIdx := strings.Index(out, "aaa.go")
	if dirIdx < 0 || fileIdx < 0 || dirIdx > fileIdx {
		t.Errorf("directories should sort before files:\n%s", out)
	}
}

func TestRender_DepthBound(t *testing.T) {
	tree := Build([]string{"a/b/c/d/e/deep.go"})

	out := tree.Render(2, 100)
	if !strings.Contains(out, "b/") {
		t.Errorf("second level should render:\n%s", out)
	}
	if strings.Contains(out, "c/") || strings.Contains(out, "deep.go") {
		t.Errorf("levels past the depth bound should not render:\n%s", out)
	}
}

func TestRender_ChildTruncation(t *testing.T) {
	paths := []string{
		"dir/a.go", "dir/b.go", "dir/c.go", "dir/d.go", "dir/e.go",
	}
	tree := Build(paths)

	out := tree.Render(10, 2)
	if !strings.Contains(out, "more files truncated") {
		t.Errorf("expected truncation marker:\n%s", out)
	}
	if !strings.Contains(out, "... 3 more files truncated") {
		t.Errorf("marker should count the hidden entries:\n%s", out)
	}
	if strings.Contains(out, "e.go") {
		t.Errorf("entries past the bound should not render:\n%s", out)
	}
}

func TestRender_DefaultsOnNonPositiveBounds(t *testing.T) {
	tree := Build([]string{"a/file.go"})

	out := tree.Render(0, 0)
	if !strings.Contains(out, "file.go") {
		t.Errorf("defaults should apply:\n%s", out)
	}
}

func TestBuild_NormalizesSeparators(t *testing.T) {
	tree := Build([]string{"pkg\\util\\helper.go"})

	out := tree.Render(10, 100)
	// On non-Windows platforms backslashes are literal name bytes, so
	// just assert nothing panicked and something rendered.
	if out == "" {
		t.Error("expected non-empty output")
	}
}
