package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/duviz/duviz/pkg/scan"
	"github.com/duviz/duviz/pkg/treemap"
)

func scanFixtureTree(t *testing.T) *treemap.Node {
	t.Helper()
	root := treemap.NewNode("root", "root", 0)
	root.InsertRelative("a/x.bin", 100)
	root.InsertRelative("b.bin", 30)
	root.InsertRelative("c.bin", 10)
	if _, err := root.Aggregate(); err != nil {
		t.Fatal(err)
	}
	root.SortBySize()
	return root
}

func testCLI() *CLI {
	return &CLI{Logger: newLogger(io.Discard, LogInfo)}
}

func TestRootCommand(t *testing.T) {
	root := testCLI().RootCommand()

	want := []string{"scan", "render", "view", "completion"}
	for _, name := range want {
		found := false
		for _, cmd := range root.Commands() {
			if cmd.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestParseFormats(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{in: "", want: []string{"svg"}},
		{in: "json", want: []string{"json"}},
		{in: "svg,json", want: []string{"svg", "json"}},
	}
	for _, tt := range tests {
		got := parseFormats(tt.in)
		if len(got) != len(tt.want) {
			t.Fatalf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("parseFormats(%q) = %v, want %v", tt.in, got, tt.want)
			}
		}
	}
}

func TestScanCommandJSON(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.bin"), bytes.Repeat([]byte("x"), 128), 0o644); err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	root := testCLI().RootCommand()
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"scan", dir, "--json"})

	if err := root.Execute(); err != nil {
		t.Fatalf("scan --json failed: %v", err)
	}

	var summary struct {
		Path  string          `json:"path"`
		Stats scan.Stats      `json:"stats"`
		Top   []scanEntry     `json:"top_entries"`
		Types []scan.TypeStat `json:"types"`
	}
	if err := json.Unmarshal(out.Bytes(), &summary); err != nil {
		t.Fatalf("output is not valid JSON: %v\n%s", err, out.String())
	}
	if summary.Stats.Files != 1 || summary.Stats.TotalBytes != 128 {
		t.Errorf("stats = %+v, want 1 file of 128 bytes", summary.Stats)
	}
	if len(summary.Top) != 1 || summary.Top[0].Name != "data.bin" {
		t.Errorf("top entries = %+v", summary.Top)
	}
	if len(summary.Types) != 1 || summary.Types[0].Ext != ".bin" {
		t.Errorf("types = %+v", summary.Types)
	}
}

func TestRenderCommandWritesArtifacts(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "data.bin"), bytes.Repeat([]byte("x"), 64), 0o644); err != nil {
		t.Fatal(err)
	}
	outFile := filepath.Join(t.TempDir(), "usage.svg")

	root := testCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", dir, "-o", outFile})

	if err := root.Execute(); err != nil {
		t.Fatalf("render failed: %v", err)
	}

	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("artifact not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "<svg") {
		t.Error("artifact is not an SVG document")
	}
}

func TestRenderCommandRejectsBadFormat(t *testing.T) {
	root := testCLI().RootCommand()
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	root.SetArgs([]string{"render", t.TempDir(), "-f", "png"})

	if err := root.Execute(); err == nil {
		t.Error("unsupported format should fail")
	}
}

func TestWriteArtifacts(t *testing.T) {
	dir := t.TempDir()
	artifacts := map[string][]byte{
		"svg":  []byte("<svg/>"),
		"json": []byte("{}"),
	}

	base := filepath.Join(dir, "out")
	written, err := writeArtifacts("/tmp/scanned", base, []string{"svg", "json"}, artifacts)
	if err != nil {
		t.Fatalf("writeArtifacts() error = %v", err)
	}
	if len(written) != 2 {
		t.Fatalf("written = %v, want 2 files", written)
	}
	for _, f := range written {
		if _, err := os.Stat(f); err != nil {
			t.Errorf("artifact %q missing: %v", f, err)
		}
	}

	// A single format with explicit output uses the name verbatim.
	exact := filepath.Join(dir, "exact.svg")
	written, err = writeArtifacts("/tmp/scanned", exact, []string{"svg"}, artifacts)
	if err != nil {
		t.Fatal(err)
	}
	if len(written) != 1 || written[0] != exact {
		t.Errorf("written = %v, want [%s]", written, exact)
	}
}

func TestTopEntries(t *testing.T) {
	res := scanFixtureTree(t)
	entries := topEntries(res, 2)
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Bytes < entries[1].Bytes {
		t.Error("entries are not sorted by size")
	}
	if entries[0].Share <= 0 || entries[0].Share > 1 {
		t.Errorf("share = %v, want (0, 1]", entries[0].Share)
	}
}
