package udiff

import (
	"errors"
	"testing"
)

func TestApplySimpleChange(t *testing.T) {
	content := "line one\nline two\nline three\n"
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1,3 +1,3 @@
 line one
-line two
+line 2
 line three
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Apply(content, p)
	if err != nil {
		t.Fatal(err)
	}
	want := "line one\nline 2\nline three\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyCreatesNewContent(t *testing.T) {
	diff := `--- /dev/null
+++ b/new.txt
@@ -0,0 +1,2 @@
+first
+second
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Apply("", p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "first\nsecond\n" {
		t.Errorf("got %q", got)
	}
}

func TestApplyDeletesAllContent(t *testing.T) {
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1,2 +0,0 @@
-first
-second
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Apply("first\nsecond\n", p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

func TestApplyMultipleHunks(t *testing.T) {
	content := "a\nb\nc\nd\ne\nf\ng\nh\ni\nj\n"
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1,3 +1,3 @@
 a
-b
+B
 c
@@ -8,3 +8,4 @@
 h
 i
+i2
 j
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Apply(content, p)
	if err != nil {
		t.Fatal(err)
	}
	want := "a\nB\nc\nd\ne\nf\ng\nh\ni\ni2\nj\n"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestApplyContextMismatch(t *testing.T) {
	content := "actual content\n"
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1 +1 @@
-fn main() { println!("Hello, world!"); }
+fn main() { println!("Hello, Rust!"); }
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Apply(content, p)
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("expected ApplyError, got %v", err)
	}
}

func TestApplyOverlappingHunks(t *testing.T) {
	content := "a\nb\nc\nd\n"
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1,3 +1,3 @@
 a
-b
+B
 c
@@ -2,2 +2,2 @@
-b
+X
 c
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	_, err = Apply(content, p)
	var applyErr *ApplyError
	if !errors.As(err, &applyErr) {
		t.Fatalf("expected overlap error, got %v", err)
	}
}

func TestParseMalformedHeader(t *testing.T) {
	diff := `--- a/f.txt
+++ b/f.txt
@@ not a hunk header @@
 x
`
	_, err := Parse(diff)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseCountMismatch(t *testing.T) {
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1,5 +1,5 @@
 only
-one
+uno
`
	_, err := Parse(diff)
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseNoHunks(t *testing.T) {
	_, err := Parse("this is not a diff at all\n")
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected ParseError, got %v", err)
	}
}

func TestParseSkipsGitPreamble(t *testing.T) {
	diff := `diff --git a/f.txt b/f.txt
index 000000..111111 100644
--- a/f.txt
+++ b/f.txt
@@ -1 +1 @@
-old
+new
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	if p.OldFile != "a/f.txt" || p.NewFile != "b/f.txt" {
		t.Errorf("headers = %q / %q", p.OldFile, p.NewFile)
	}
	got, err := Apply("old\n", p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "new\n" {
		t.Errorf("got %q", got)
	}
}

func TestApplyNoTrailingNewline(t *testing.T) {
	diff := `--- a/f.txt
+++ b/f.txt
@@ -1 +1 @@
-old
+new
\ No newline at end of file
`
	p, err := Parse(diff)
	if err != nil {
		t.Fatal(err)
	}
	got, err := Apply("old\n", p)
	if err != nil {
		t.Fatal(err)
	}
	if got != "new" {
		t.Errorf("got %q, want no trailing newline", got)
	}
}
