package tags

import "testing"

func TestNormalizeBlock(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"param", "param"},
		{"Param", "param"},
		{"SERIALDATA", "serialData"},
		{"serialfield", "serialField"},
		{"APINOTE", "apiNote"},
		{"implspec", "implSpec"},
		{"customtag", "customtag"}, // unknown names pass through
	}
	for _, tc := range cases {
		if got := Normalize(CategoryBlock, tc.raw); got != tc.want {
			t.Fatalf("Normalize(block, %q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestNormalizeInline(t *testing.T) {
	cases := []struct {
		raw  string
		want string
	}{
		{"code", "code"},
		{"InheritDoc", "inheritDoc"},
		{"DOCROOT", "docRoot"},
		{"systemproperty", "systemProperty"},
		{"nosuchtag", "nosuchtag"},
	}
	for _, tc := range cases {
		if got := Normalize(CategoryInline, tc.raw); got != tc.want {
			t.Fatalf("Normalize(inline, %q) = %q, want %q", tc.raw, got, tc.want)
		}
	}
}

func TestStartsDeclaration(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		{"public void run() {", true},
		{"  static int x;", true},
		{"record Point(int x, int y) {}", true},
		{"void(", true},
		{"publicity is overrated", false},
		{"x = 1;", false},
		{"", false},
	}
	for _, tc := range cases {
		if got := StartsDeclaration(tc.line); got != tc.want {
			t.Fatalf("StartsDeclaration(%q) = %v, want %v", tc.line, got, tc.want)
		}
	}
}
