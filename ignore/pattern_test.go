package ignore

import "testing"

func TestCompileFlags(t *testing.T) {
	tests := []struct {
		line    string
		negated bool
		dirOnly bool
		rooted  bool
	}{
		{"*.log", false, false, false},
		{"!important.log", true, false, false},
		{"build/", false, true, false},
		{"/dist", false, false, true},
		{"/build/", false, true, true},
		{`\!literal`, false, false, false},
		{`\#literal`, false, false, false},
	}

	for _, tt := range tests {
		p := Compile(tt.line)
		if p.Negated != tt.negated || p.DirOnly != tt.dirOnly || p.Rooted != tt.rooted {
			t.Errorf("Compile(%q) flags = (%v, %v, %v), want (%v, %v, %v)",
				tt.line, p.Negated, p.DirOnly, p.Rooted, tt.negated, tt.dirOnly, tt.rooted)
		}
	}
}

func TestPatternMatch(t *testing.T) {
	tests := []struct {
		line  string
		path  string
		match bool
	}{
		// * stops at path separators
		{"*.log", "a.log", true},
		{"*.log", "dir/b.log", true},
		{"*.log", "a.logx", false},
		{"*.log", "a.log/inside", true},

		// ? matches exactly one non-separator character
		{"?.txt", "a.txt", true},
		{"?.txt", "ab.txt", false},
		{"?.txt", "/.txt", false},

		// rooted patterns match from the start only
		{"/dist", "dist", true},
		{"/dist", "src/dist", false},
		{"/build/", "build/main.o", true},
		{"/build/", "src/build/main.o", false},
		{"/build/", "build", false},

		// directory-only requires a trailing slash on the probe
		{"build/", "build/", true},
		{"build/", "build", false},
		{"build/", "deep/build/", true},
		{"build/", "build/out.txt", true},

		// ** semantics
		{"**/node_modules", "node_modules", true},
		{"**/node_modules", "a/b/node_modules", true},
		{"**/node_modules", "a/node_modulesx", false},
		{"**", "anything/at/all", true},
		{"docs/**/*.md", "docs/a/b/c.md", true},
		{"docs/**/*.md", "docs/c.md", true},

		// character classes pass through verbatim
		{"file[0-9].txt", "file5.txt", true},
		{"file[0-9].txt", "filex.txt", false},

		// unterminated class degrades to a literal bracket
		{"file[.txt", "file[.txt", true},
		{"file[.txt", "file5.txt", false},

		// regex metacharacters in the pattern are literal
		{"a+b.txt", "a+b.txt", true},
		{"a+b.txt", "aab.txt", false},
		{"(x).go", "(x).go", true},

		// escaped specials are literal text
		{`\#notes`, "#notes", true},
		{`\!keep`, "!keep", true},

		// trailing whitespace is stripped
		{"*.log   ", "a.log", true},
	}

	for _, tt := range tests {
		p := Compile(tt.line)
		if got := p.Match(tt.path); got != tt.match {
			t.Errorf("Compile(%q).Match(%q) = %v, want %v", tt.line, tt.path, got, tt.match)
		}
	}
}

func TestCompileDeterminism(t *testing.T) {
	paths := []string{"a.log", "dir/b.log", "a.logx", "build/", "x/y/z"}
	for _, line := range []string{"*.log", "/build/", "**/node_modules", "file[.txt"} {
		p1 := Compile(line)
		p2 := Compile(line)
		for _, path := range paths {
			if p1.Match(path) != p2.Match(path) {
				t.Errorf("recompiling %q changed the verdict for %q", line, path)
			}
		}
	}
}

func TestTrimTrailingWhitespace(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"foo  ", "foo"},
		{"foo\t", "foo"},
		{`foo\ `, `foo\ `},
		{"   ", ""},
		{"foo", "foo"},
	}
	for _, tt := range tests {
		if got := trimTrailingWhitespace(tt.in); got != tt.want {
			t.Errorf("trimTrailingWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
