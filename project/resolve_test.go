package project

import (
	"slices"
	"testing"
)

func TestCanonicalPath(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"main.ts", "/main"},
		{"api/user.ts", "/api/user"},
		{"api/user.d.ts", "/api/user"},
		{"ui/App.tsx", "/ui/App"},
		{"esm/mod.mts", "/esm/mod"},
		{"cjs/mod.cts", "/cjs/mod"},
		{"./api/../api/user.ts", "/api/user"},
		{"node_modules/lib/index.d.ts", "lib/index"},
		{"node_modules/@scope/pkg/types.d.ts", "@scope/pkg/types"},
		{"app/node_modules/a/node_modules/b/x.ts", "b/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canonicalPath(tt.name); got != tt.want {
				t.Errorf("canonicalPath(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}

func TestCandidates(t *testing.T) {
	tests := []struct {
		base string
		want []string
	}{
		{"api/user", []string{"api/user.ts", "api/user.tsx", "api/user.d.ts", "api/user/index.ts", "api/user/index.tsx", "api/user/index.d.ts"}},
		{"api/user.js", []string{"api/user.ts", "api/user.tsx", "api/user.d.ts", "api/user/index.ts", "api/user/index.tsx", "api/user/index.d.ts"}},
		{"api/user.ts", []string{"api/user.ts"}},
	}
	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			if got := candidates(tt.base); !slices.Equal(got, tt.want) {
				t.Errorf("candidates(%q) = %v, want %v", tt.base, got, tt.want)
			}
		})
	}
}

func TestIsLibraryPath(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"main.ts", false},
		{"node_modules/x/index.d.ts", true},
		{"web/node_modules/x/index.d.ts", true},
		{"my_node_modules/x.ts", false},
	}
	for _, tt := range tests {
		if got := isLibraryPath(tt.name); got != tt.want {
			t.Errorf("isLibraryPath(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
