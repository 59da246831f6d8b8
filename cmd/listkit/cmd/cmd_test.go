package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/go-drift/listkit/pkg/errors"
	"github.com/go-drift/listkit/pkg/layout"
)

// execute runs the CLI with args and restores the global state it installs.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	oldHandler := errors.CurrentHandler()
	oldPolicy := errors.CurrentPolicy()
	oldNoColor := color.NoColor
	color.NoColor = true
	t.Cleanup(func() {
		errors.SetHandler(oldHandler)
		errors.SetPolicy(oldPolicy)
		layout.SetDefault(nil)
		color.NoColor = oldNoColor
	})

	root := New()
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestStress(t *testing.T) {
	out, err := execute(t, "stress", "--config", t.TempDir(), "--workers", "4", "--per-worker", "50")
	if err != nil {
		t.Fatalf("stress error = %v", err)
	}
	if want := "OK children=200 want=200 events=200"; !strings.Contains(out, want) {
		t.Errorf("output = %q, want it to contain %q", out, want)
	}
}

func TestDemo(t *testing.T) {
	out, err := execute(t, "demo", "--config", t.TempDir(), "--sections", "1", "--rows", "2")
	if err != nil {
		t.Fatalf("demo error = %v", err)
	}
	for _, want := range []string{
		"Feed [flow] loaded",
		"  Section0 [flow] loaded",
		"  Highlights [compact columns=2] loaded",
		"    Highlights.More [compact] loaded",
		"(selected)",
		"host reloads: 2",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("demo output missing %q:\n%s", want, out)
		}
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	content := "assertions: log\nlayout:\n  default: grid\n  strategies: [grid]\n"
	if err := os.WriteFile(filepath.Join(dir, "listkit.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	out, err := execute(t, "config", "--config", dir)
	if err != nil {
		t.Fatalf("config error = %v", err)
	}
	for _, want := range []string{"version: v1.0.0", "assertions: log", "default: grid", "- grid"} {
		if !strings.Contains(out, want) {
			t.Errorf("config output missing %q:\n%s", want, out)
		}
	}
}

func TestConfig_InvalidFile(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "listkit.yaml"), []byte("version: v9.0.0\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := execute(t, "config", "--config", dir); err == nil {
		t.Error("config accepted an unsupported version")
	}
}
