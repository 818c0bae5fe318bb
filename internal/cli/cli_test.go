package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/errors"
	"github.com/will-gilbert/Sequence-Analysis-Swift-sub001/pkg/giv/givxml"
)

func run(t *testing.T, c *CLI, args ...string) error {
	t.Helper()
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(&strings.Builder{})
	root.SetErr(&strings.Builder{})
	return root.ExecuteContext(context.Background())
}

func TestRootCommandRegistersSubcommands(t *testing.T) {
	root := testCLI(t).RootCommand()
	for _, name := range []string{"render", "layout", "validate", "import", "view", "serve", "cache", "completion"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestConfigFlag(t *testing.T) {
	c := testCLI(t)
	dir := t.TempDir()

	cfgPath := filepath.Join(dir, "config.toml")
	cfg := "[render]\nformats = [\"json\"]\nstyle = \"compact\"\n\n[layout]\nscale = 2\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := run(t, c, "--config", cfgPath, "validate", writeDoc(t)); err != nil {
		t.Fatalf("validate error: %v", err)
	}
	got := c.Config()
	if got.Layout.Scale != 2 || got.Render.Style != "compact" {
		t.Errorf("config not loaded: %+v", got)
	}
}

func TestConfigFlagErrors(t *testing.T) {
	dir := t.TempDir()
	bad := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(bad, []byte("[render]\nstyle = \"sketchy\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		path string
		code errors.Code
	}{
		{"missing", filepath.Join(dir, "nope.toml"), errors.ErrCodeFileNotFound},
		{"invalid", bad, errors.ErrCodeInvalidConfig},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, testCLI(t), "--config", tt.path, "validate", writeDoc(t))
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestValidateCommand(t *testing.T) {
	c := testCLI(t)
	if err := run(t, c, "validate", writeDoc(t)); err != nil {
		t.Errorf("validate error: %v", err)
	}
	if err := run(t, c, "validate", "--strict", writeDoc(t)); !errors.Is(err, errors.ErrCodeColorLookupMiss) {
		t.Errorf("strict validate error = %v, want %s", err, errors.ErrCodeColorLookupMiss)
	}
}

func TestLayoutCommand(t *testing.T) {
	c := testCLI(t)
	out := filepath.Join(t.TempDir(), "scene.json")
	if err := run(t, c, "layout", "--scale", "3", "-o", out, writeDoc(t)); err != nil {
		t.Fatalf("layout error: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("scene not written: %v", err)
	}
	if !strings.Contains(string(data), `"scale": 3`) && !strings.Contains(string(data), `"scale":3`) {
		t.Errorf("scene should carry the overridden scale: %s", data[:min(len(data), 200)])
	}
}

func TestTrackTable(t *testing.T) {
	res, err := givxml.ParseBytes([]byte(testDoc))
	if err != nil {
		t.Fatal(err)
	}
	out := trackTable(res.Frame).Render()
	for _, want := range []string{"genes", "forward", "operons", "sinking", "floating"} {
		if !strings.Contains(out, want) {
			t.Errorf("track table missing %q:\n%s", want, out)
		}
	}
}

func TestImportBEDCommand(t *testing.T) {
	c := testCLI(t)
	dir := t.TempDir()

	bed := filepath.Join(dir, "genes.bed")
	data := "chr1\t99\t200\tgeneA\t0\t+\n" +
		"chr1\t149\t300\tgeneB\t0\t-\n" +
		"chr2\t0\t50\tother\t0\t+\n"
	if err := os.WriteFile(bed, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "genes.xml")

	if err := run(t, c, "import", "bed", "--seq", "chr1", "--split-strands", "-o", out, bed); err != nil {
		t.Fatalf("import error: %v", err)
	}

	doc, err := os.ReadFile(out)
	if err != nil {
		t.Fatalf("document not written: %v", err)
	}
	res, err := givxml.ParseBytes(doc)
	if err != nil {
		t.Fatalf("imported document does not parse: %v", err)
	}
	stats := res.Frame.Stats()
	if stats.Glyphs != 2 || stats.Tracks != 2 {
		t.Errorf("imported stats = %+v, want 2 glyphs on 2 tracks", stats)
	}
	if res.Frame.Panels()[0].Label() != "chr1" {
		t.Errorf("panel label = %q, want chr1", res.Frame.Panels()[0].Label())
	}
}

func TestImportRegionErrors(t *testing.T) {
	f := importFlags{style: "default", from: 50, to: 10}
	if _, err := f.buildOptions(); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("buildOptions() error = %v, want %s", err, errors.ErrCodeInvalidInput)
	}
	f = importFlags{style: "sketchy"}
	if _, err := f.buildOptions(); !errors.Is(err, errors.ErrCodeInvalidStyle) {
		t.Errorf("buildOptions() error = %v, want %s", err, errors.ErrCodeInvalidStyle)
	}
}
