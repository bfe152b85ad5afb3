package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func runCommand(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCommand()
	var out, errOut strings.Builder
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestPrintMode(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"main.go":   "package main\n",
		"debug.log": "noise\n",
	})
	if err := os.WriteFile(filepath.Join(dir, ".backtickignore"), []byte("*.log\n"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	out, _, err := runCommand(t, "--print", ".")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "main.go") || !strings.Contains(out, "package main") {
		t.Errorf("expected main.go content in output:\n%s", out)
	}
	if strings.Contains(out, "debug.log") {
		t.Errorf("ignored file leaked into output:\n%s", out)
	}
}

func TestOutputFileMode(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"note.txt": "hello\n"})
	t.Chdir(dir)

	target := filepath.Join(dir, "combined.md")
	out, _, err := runCommand(t, "-o", target, "note.txt")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "Wrote content of 1 file(s)") {
		t.Errorf("missing confirmation message:\n%s", out)
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("output file content: %q", data)
	}
}

func TestNoArgsFails(t *testing.T) {
	t.Chdir(t.TempDir())
	if _, _, err := runCommand(t, "--print"); err == nil {
		t.Error("expected an error when no paths are given")
	}
}

func TestNothingStagedFails(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, errOut, err := runCommand(t, "--print", "missing-path")
	if err == nil {
		t.Error("expected an error when nothing was staged")
	}
	if !strings.Contains(errOut, "Warning:") {
		t.Errorf("expected a warning for the missing path, stderr:\n%s", errOut)
	}
}

func TestCustomIgnoreFile(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"keep.txt": "keep\n",
		"drop.txt": "drop\n",
		"rules":    "drop.txt",
	})
	t.Chdir(dir)

	out, _, err := runCommand(t, "--print", "-i", "rules", ".")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "keep") {
		t.Errorf("expected keep.txt content:\n%s", out)
	}
	if strings.Contains(out, "drop.txt\n\n```") {
		t.Errorf("ignored file leaked into output:\n%s", out)
	}
}

func TestNoRecursiveFlag(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{
		"top.txt":        "top\n",
		"sub/nested.txt": "nested\n",
	})
	t.Chdir(dir)

	out, _, err := runCommand(t, "--print", "-n", ".")
	if err != nil {
		t.Fatalf("command failed: %v", err)
	}
	if !strings.Contains(out, "top.txt") {
		t.Errorf("expected top.txt in output:\n%s", out)
	}
	if strings.Contains(out, "nested.txt") {
		t.Errorf("nested file staged despite -n:\n%s", out)
	}
}
