package tsparse

import "testing"

func TestUnquote(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{`"plain"`, "plain"},
		{`'single'`, "single"},
		{`"a\"b"`, `a"b`},
		{`'it\'s'`, "it's"},
		{`"tab\there"`, "tab\there"},
		{`"\x41B\u{43}"`, "ABC"},
		{`"\uD83D\uDE00"`, "\U0001F600"},
		{`"back\\slash"`, `back\slash`},
		{`"\q"`, "q"},
		{"\"line\\\ncontinued\"", "linecontinued"},
		{`"\xZZ"`, "xZZ"},
		{`unquoted`, "unquoted"},
	}
	for _, tt := range tests {
		if got := unquote(tt.raw); got != tt.want {
			t.Errorf("unquote(%s) = %q, want %q", tt.raw, got, tt.want)
		}
	}
}
