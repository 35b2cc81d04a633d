package sink

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"testing"
)

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
		errMsg  string
	}{
		{name: "simple", path: "gen/types.ts"},
		{name: "single file", path: "types.ts"},
		{name: "empty", path: "", wantErr: true, errMsg: "empty"},
		{name: "absolute", path: "/abs/types.ts", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "drive letter", path: "C:types.ts", wantErr: true, errMsg: "absolute paths not allowed"},
		{name: "traversal", path: "gen/../types.ts", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "leading traversal", path: "../types.ts", wantErr: true, errMsg: "path traversal not allowed"},
		{name: "dot prefix", path: "./types.ts", wantErr: true, errMsg: "not clean"},
		{name: "double slash", path: "gen//types.ts", wantErr: true, errMsg: "not clean"},
		{name: "trailing slash", path: "gen/", wantErr: true, errMsg: "not clean"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("ValidatePath(%q) error = %v, want error containing %q", tt.path, err, tt.errMsg)
			}
		})
	}
}

func TestMemorySink(t *testing.T) {
	s := NewMemorySink()
	ctx := context.Background()

	content := []byte("export const a = 1;\n")
	if err := s.WriteFile(ctx, "a.ts", content); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	content[0] = 'X'
	if got := string(s.Get("a.ts")); got != "export const a = 1;\n" {
		t.Errorf("Get() = %q, stored content was not copied", got)
	}
	if got := s.Get("missing.ts"); got != nil {
		t.Errorf("Get(missing) = %q, want nil", got)
	}
	if err := s.WriteFile(ctx, "../escape.ts", content); err == nil {
		t.Error("WriteFile(../escape.ts) error = nil")
	}

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	if err := s.WriteFile(cancelled, "b.ts", content); err == nil {
		t.Error("WriteFile() with cancelled context error = nil")
	}
	if n := len(s.Files()); n != 1 {
		t.Errorf("len(Files()) = %d, want 1", n)
	}
}

func TestMemorySink_Concurrent(t *testing.T) {
	s := NewMemorySink()
	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.WriteFile(context.Background(), fmt.Sprintf("f%d.ts", i), []byte("x")); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()
	if n := len(s.Files()); n != 20 {
		t.Errorf("len(Files()) = %d, want 20", n)
	}
}

func TestFilesystemSink(t *testing.T) {
	root := t.TempDir()
	s := NewFilesystemSink(root)
	ctx := context.Background()

	if err := s.WriteFile(ctx, "gen/types.ts", []byte("one")); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	if err := s.WriteFile(ctx, "gen/types.ts", []byte("two")); err != nil {
		t.Fatalf("WriteFile() overwrite error = %v", err)
	}
	got, err := os.ReadFile(filepath.Join(root, "gen", "types.ts"))
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "two" {
		t.Errorf("file content = %q, want %q", got, "two")
	}

	entries, err := os.ReadDir(filepath.Join(root, "gen"))
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temp file %s left behind", e.Name())
		}
	}

	s.Overwrite = false
	err = s.WriteFile(ctx, "gen/types.ts", []byte("three"))
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("WriteFile() without overwrite error = %v, want already exists", err)
	}
}

func TestCheckSink(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "same.ts"), []byte("same"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "old.ts"), []byte("old"), 0644); err != nil {
		t.Fatal(err)
	}

	s := &CheckSink{Root: root}
	ctx := context.Background()
	for path, content := range map[string]string{
		"same.ts":    "same",
		"old.ts":     "new",
		"missing.ts": "new",
	} {
		if err := s.WriteFile(ctx, path, []byte(content)); err != nil {
			t.Fatalf("WriteFile(%s) error = %v", path, err)
		}
	}

	want := []string{"missing.ts", "old.ts"}
	if got := s.Stale(); !slices.Equal(got, want) {
		t.Errorf("Stale() = %v, want %v", got, want)
	}
	if got, _ := os.ReadFile(filepath.Join(root, "old.ts")); string(got) != "old" {
		t.Errorf("CheckSink modified old.ts: %q", got)
	}
}
