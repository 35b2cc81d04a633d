package typedesc

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorError(t *testing.T) {
	base := errors.New("boom")
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "task only",
			err:  &Error{Code: CodeEmit, Task: "out.ts", Err: base},
			want: "out.ts: boom",
		},
		{
			name: "declaration",
			err:  &Error{Code: CodeDescribe, Task: "out.ts", Key: "/api:User", Err: base},
			want: "out.ts: /api:User: boom",
		},
		{
			name: "parameter",
			err:  &Error{Code: CodeParameter, Task: "out.ts", Key: "/api:Svc.get", Param: "id", Err: base},
			want: "out.ts: /api:Svc.get(id): boom",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !errors.Is(tt.err, base) {
				t.Errorf("errors.Is(%v, base) = false, want true", tt.err)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	a := &Error{Code: CodeDescribe, Task: "a.ts", Err: errors.New("a")}
	b := &Error{Code: CodeParameter, Task: "b.ts", Err: errors.New("b")}
	c := &Error{Code: CodeDuplicateKey, Task: "b.ts", Err: errors.New("c")}

	tests := []struct {
		name string
		err  error
		want []*Error
	}{
		{"nil", nil, nil},
		{"plain", errors.New("x"), nil},
		{"single", a, []*Error{a}},
		{"wrapped", fmt.Errorf("run: %w", a), []*Error{a}},
		{"joined", errors.Join(a, errors.Join(b, c)), []*Error{a, b, c}},
		{"joined with plain", errors.Join(errors.New("x"), b), []*Error{b}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Errors(tt.err)
			if len(got) != len(tt.want) {
				t.Fatalf("len(Errors()) = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("Errors()[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}
