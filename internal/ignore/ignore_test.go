package ignore

import "testing"

func TestShouldIgnore(t *testing.T) {
	p := New(nil)

	cases := []struct {
		path string
		want bool
	}{
		{"target/debug/app", true},
		{"node_modules/pkg/index.js", true},
		{".git/HEAD", true},
		{"src/__pycache__/m.pyc", true},
		{"src/cache.pyc", true},
		{"go.sum", true},
		{"sub/go.sum", true},
		{"src/main.go", false},
		{"README.md", false},
		{"builder/x.go", false},
	}
	for _, tc := range cases {
		if got := p.ShouldIgnore(tc.path); got != tc.want {
			t.Errorf("ShouldIgnore(%q) = %v, want %v", tc.path, got, tc.want)
		}
	}
}

func TestCustomPatterns(t *testing.T) {
	p := New([]string{"*.log", "secrets/**"})

	if !p.ShouldIgnore("app.log") {
		t.Error("*.log must match app.log")
	}
	if !p.ShouldIgnore("secrets/key.pem") {
		t.Error("secrets/** must match nested files")
	}
	if p.ShouldIgnore("node_modules/x.js") {
		t.Error("custom patterns replace the defaults")
	}
}
