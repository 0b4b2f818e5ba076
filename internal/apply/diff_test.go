package apply

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sokinpui/snippy/internal/block"
)

func TestDiffApplySuccess(t *testing.T) {
	base := t.TempDir()
	logs := t.TempDir()
	path := filepath.Join(base, "main.go")
	if err := os.WriteFile(path, []byte("package main\n\nvar x = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := block.Block{
		Filename: "main.go",
		Kind:     block.UnifiedDiff,
		Content: `--- a/main.go
+++ b/main.go
@@ -1,3 +1,3 @@
 package main

-var x = 1
+var x = 2
`,
	}
	if err := NewDiff(base, logs).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "package main\n\nvar x = 2\n" {
		t.Errorf("content = %q", data)
	}
}

func TestDiffApplyFailureLeavesFileAndWritesDiagnostics(t *testing.T) {
	base := t.TempDir()
	logs := filepath.Join(t.TempDir(), "logs")
	initial := "fn main() {}\n"
	path := filepath.Join(base, "test.rs")
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatal(err)
	}

	b := block.Block{
		Filename: "test.rs",
		Kind:     block.UnifiedDiff,
		Content: `--- test.rs
+++ test.rs
@@ -1 +1 @@
-fn main() { println!("Hello, world!"); }
+fn main() { println!("Hello, Rust!"); }
`,
	}
	err := NewDiff(base, logs).Apply(b)
	if err == nil {
		t.Fatal("expected apply failure")
	}

	data, _ := os.ReadFile(path)
	if string(data) != initial {
		t.Errorf("file changed on failed apply: %q", data)
	}

	entries, err := os.ReadDir(logs)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected exactly 1 diagnostic artifact, got %d", len(entries))
	}
	name := entries[0].Name()
	if !strings.HasSuffix(name, "_failed_patch_diagnostics.json") {
		t.Errorf("artifact name = %q", name)
	}

	raw, err := os.ReadFile(filepath.Join(logs, name))
	if err != nil {
		t.Fatal(err)
	}
	var diag struct {
		FilePath       string `json:"file_path"`
		ErrorMessage   string `json:"error_message"`
		CurrentContent string `json:"current_content"`
		DiffContent    string `json:"diff_content"`
	}
	if err := json.Unmarshal(raw, &diag); err != nil {
		t.Fatal(err)
	}
	if diag.FilePath != path {
		t.Errorf("file_path = %q, want %q", diag.FilePath, path)
	}
	if diag.CurrentContent != initial {
		t.Errorf("current_content = %q", diag.CurrentContent)
	}
	if diag.DiffContent != b.Content {
		t.Errorf("diff_content = %q", diag.DiffContent)
	}
	if diag.ErrorMessage == "" {
		t.Error("error_message is empty")
	}
}

func TestDiffApplyParseFailureWritesDiagnostics(t *testing.T) {
	base := t.TempDir()
	logs := filepath.Join(t.TempDir(), "logs")

	b := block.Block{
		Filename: "x.txt",
		Kind:     block.UnifiedDiff,
		Content:  "this is not a unified diff\n",
	}
	if err := NewDiff(base, logs).Apply(b); err == nil {
		t.Fatal("expected parse failure")
	}

	entries, err := os.ReadDir(logs)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 diagnostic artifact, got %d", len(entries))
	}
}

func TestDiffApplyCreatesMissingFile(t *testing.T) {
	base := t.TempDir()
	logs := t.TempDir()

	b := block.Block{
		Filename: "fresh.txt",
		Kind:     block.UnifiedDiff,
		Content: `--- /dev/null
+++ b/fresh.txt
@@ -0,0 +1,2 @@
+alpha
+beta
`,
	}
	if err := NewDiff(base, logs).Apply(b); err != nil {
		t.Fatal(err)
	}
	data, _ := os.ReadFile(filepath.Join(base, "fresh.txt"))
	if string(data) != "alpha\nbeta\n" {
		t.Errorf("content = %q", data)
	}
}
