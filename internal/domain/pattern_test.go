package domain

import "testing"

func TestLikePattern(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain term", "Tolkien", "%Tolkien%"},
		{"surrounding whitespace trimmed", "  Tolkien \t", "%Tolkien%"},
		{"inner whitespace preserved", "J. R. R. Tolkien", "%J. R. R. Tolkien%"},
		{"empty stays empty", "", ""},
		{"whitespace-only stays empty", "   \t\n", ""},
		{"existing wildcards not escaped", "100%", "%100%%"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := LikePattern(tc.in); got != tc.want {
				t.Errorf("LikePattern(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}
