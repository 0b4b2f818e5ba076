package apply

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/sokinpui/snippy/internal/block"
)

func srBlock(filename string, pairs ...[2]string) block.Block {
	content := ""
	for _, p := range pairs {
		content += "<<<<<<< SEARCH\n" + p[0] + "=======\n" + p[1] + ">>>>>>> REPLACE\n"
	}
	return block.Block{Filename: filename, Content: content, Kind: block.SearchReplace}
}

func TestSearchReplaceExactMatch(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	if err := os.WriteFile(path, []byte("alpha\nbeta\ngamma\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := srBlock("f.txt", [2]string{"beta\n", "BETA\n"})
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "alpha\nBETA\ngamma\n" {
		t.Errorf("content = %q", data)
	}
}

func TestSearchReplaceReplacesAllOccurrences(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	if err := os.WriteFile(path, []byte("x = 1\ny = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := srBlock("f.txt", [2]string{"= 1", "= 2"})
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "x = 2\ny = 2\n" {
		t.Errorf("all occurrences must be replaced, got %q", data)
	}
}

func TestSearchReplaceEmptySearchSeedsNewFile(t *testing.T) {
	base := t.TempDir()

	b := srBlock("fresh.txt", [2]string{"", "hello world\n"})
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(base, "fresh.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello world\n" {
		t.Errorf("content = %q", data)
	}
}

func TestSearchReplaceNoMatchFails(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	initial := "untouchable\n"
	if err := os.WriteFile(path, []byte(initial), 0644); err != nil {
		t.Fatal(err)
	}

	b := srBlock("f.txt", [2]string{"absent text\n", "whatever\n"})
	err := NewSearchReplace(base).Apply(b)
	if !errors.Is(err, ErrNoReplacements) {
		t.Fatalf("expected ErrNoReplacements, got %v", err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != initial {
		t.Errorf("file changed on failed apply: %q", data)
	}
}

func TestSearchReplacePartialFailureContinues(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	if err := os.WriteFile(path, []byte("keep\nchange\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := srBlock("f.txt",
		[2]string{"missing\n", "nope\n"},
		[2]string{"change\n", "changed\n"},
	)
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "keep\nchanged\n" {
		t.Errorf("content = %q", data)
	}
}

func TestSearchReplaceSequentialPairs(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	if err := os.WriteFile(path, []byte("aaa\n"), 0644); err != nil {
		t.Fatal(err)
	}

	// The second pair matches text introduced by the first.
	b := srBlock("f.txt",
		[2]string{"aaa\n", "bbb\n"},
		[2]string{"bbb\n", "ccc\n"},
	)
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "ccc\n" {
		t.Errorf("content = %q, want cumulative application", data)
	}
}

func TestSearchReplaceTrailingNewlineFallback(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	// File has no trailing newline; the search span does.
	if err := os.WriteFile(path, []byte("foo"), 0644); err != nil {
		t.Fatal(err)
	}

	b := srBlock("f.txt", [2]string{"foo\n", "bar\n"})
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "bar" {
		t.Errorf("content = %q, want trimmed replacement", data)
	}
}

func TestSearchReplaceEmptyResultDeletesFile(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	if err := os.WriteFile(path, []byte("doomed\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := srBlock("f.txt", [2]string{"doomed\n", ""})
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("file must be deleted when the result is empty")
	}
}

func TestSearchReplaceLongMarkers(t *testing.T) {
	base := t.TempDir()
	path := filepath.Join(base, "f.txt")
	if err := os.WriteFile(path, []byte("old\n"), 0644); err != nil {
		t.Fatal(err)
	}

	b := block.Block{
		Filename: "f.txt",
		Kind:     block.SearchReplace,
		Content:  "<<<<<<<<<< SEARCH\nold\n==========\nnew\n>>>>>>>>>> REPLACE\n",
	}
	if err := NewSearchReplace(base).Apply(b); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	if string(data) != "new\n" {
		t.Errorf("content = %q", data)
	}
}
