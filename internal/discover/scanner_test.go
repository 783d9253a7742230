package discover_test

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/unbound-force/vitestlint/internal/config"
	"github.com/unbound-force/vitestlint/internal/discover"
)

// repoFixture returns the absolute path to the test fixture repo.
func repoFixture(t *testing.T) string {
	t.Helper()
	abs, err := filepath.Abs("testdata/repo")
	if err != nil {
		t.Fatalf("resolving fixture path: %v", err)
	}
	return abs
}

func slashed(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.ToSlash(p)
	}
	return out
}

func TestScan_DefaultConfig(t *testing.T) {
	files, err := discover.Scan(context.Background(), repoFixture(t), discover.ScanOptions{})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	want := []string{"lib/d.test.cjs", "src/a.test.ts", "src/b.js", "src/nested/c.test.tsx"}
	if got := slashed(files); !reflect.DeepEqual(got, want) {
		t.Errorf("Scan() = %v, want %v", got, want)
	}
}

func TestScan_NoExcludes(t *testing.T) {
	files, err := discover.Scan(context.Background(), repoFixture(t), discover.ScanOptions{
		Config: &config.Config{},
	})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	// dist is only excluded by config; hidden dirs and node_modules
	// are always skipped.
	want := []string{"dist/out.test.js", "lib/d.test.cjs", "src/a.test.ts", "src/b.js", "src/nested/c.test.tsx"}
	if got := slashed(files); !reflect.DeepEqual(got, want) {
		t.Errorf("Scan() = %v, want %v", got, want)
	}
}

func TestScan_IncludeOverride(t *testing.T) {
	files, err := discover.Scan(context.Background(), repoFixture(t), discover.ScanOptions{
		Config: &config.Config{Include: []string{"**/*.test.{ts,tsx}"}},
	})
	if err != nil {
		t.Fatalf("Scan() error: %v", err)
	}
	want := []string{"src/a.test.ts", "src/nested/c.test.tsx"}
	if got := slashed(files); !reflect.DeepEqual(got, want) {
		t.Errorf("Scan() = %v, want %v", got, want)
	}
}

func TestScan_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := discover.Scan(ctx, repoFixture(t), discover.ScanOptions{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Scan() error = %v, want context.Canceled", err)
	}
}

func TestExpand(t *testing.T) {
	repo := repoFixture(t)
	single := filepath.Join(repo, "dist", "out.test.js")

	files, err := discover.Expand(context.Background(),
		[]string{single, filepath.Join(repo, "src"), single}, discover.ScanOptions{})
	if err != nil {
		t.Fatalf("Expand() error: %v", err)
	}
	want := []string{
		single,
		filepath.Join(repo, "src", "a.test.ts"),
		filepath.Join(repo, "src", "b.js"),
		filepath.Join(repo, "src", "nested", "c.test.tsx"),
	}
	if !reflect.DeepEqual(files, want) {
		t.Errorf("Expand() = %v, want %v", files, want)
	}
}

func TestExpand_MissingPath(t *testing.T) {
	_, err := discover.Expand(context.Background(), []string{"testdata/does-not-exist"}, discover.ScanOptions{})
	if err == nil {
		t.Fatal("expected an error")
	}
}
