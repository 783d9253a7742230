package scaffold

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/unbound-force/vitestlint/internal/config"
)

// newProject returns a temp dir with a package.json so Run prints
// no warning.
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "package.json"), []byte("{}\n"), 0o644); err != nil {
		t.Fatalf("creating package.json: %v", err)
	}
	return dir
}

func TestRun_CreatesConfig(t *testing.T) {
	dir := newProject(t)

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Version: "1.2.3", Stdout: &buf})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	if !reflect.DeepEqual(result.Created, []string{config.FileName}) {
		t.Errorf("Created = %v, want [%s]", result.Created, config.FileName)
	}
	if len(result.Skipped) != 0 || len(result.Overwritten) != 0 {
		t.Errorf("unexpected skipped/overwritten: %+v", result)
	}
	if _, err := os.Stat(filepath.Join(dir, config.FileName)); err != nil {
		t.Errorf("expected %s to exist: %v", config.FileName, err)
	}

	output := buf.String()
	if !strings.Contains(output, "created: "+config.FileName) {
		t.Errorf("summary should mention the created file, got:\n%s", output)
	}
	if strings.Contains(output, "Warning") {
		t.Errorf("unexpected warning:\n%s", output)
	}
}

func TestRun_SkipsExisting(t *testing.T) {
	dir := newProject(t)
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte("types: [test]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	result, err := Run(Options{TargetDir: dir, Stdout: &buf})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if len(result.Skipped) != 1 {
		t.Errorf("Skipped = %v, want 1 entry", result.Skipped)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "types: [test]\n" {
		t.Errorf("existing file was modified: %q", content)
	}
	if !strings.Contains(buf.String(), "use --force to overwrite") {
		t.Errorf("summary should hint at --force:\n%s", buf.String())
	}
}

func TestRun_ForceOverwrites(t *testing.T) {
	dir := newProject(t)
	path := filepath.Join(dir, config.FileName)
	if err := os.WriteFile(path, []byte("types: [test]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := Run(Options{TargetDir: dir, Force: true, Stdout: &bytes.Buffer{}})
	if err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !reflect.DeepEqual(result.Overwritten, []string{config.FileName}) {
		t.Errorf("Overwritten = %v", result.Overwritten)
	}
	content, _ := os.ReadFile(path)
	if strings.Contains(string(content), "types: [test]") {
		t.Error("file was not overwritten")
	}
}

func TestRun_VersionMarker(t *testing.T) {
	tests := []struct {
		version string
		want    string
	}{
		{"1.2.3", "# scaffolded by vitestlint 1.2.3\n"},
		{"", "# scaffolded by vitestlint dev\n"},
	}
	for _, tt := range tests {
		dir := newProject(t)
		if _, err := Run(Options{TargetDir: dir, Version: tt.version, Stdout: &bytes.Buffer{}}); err != nil {
			t.Fatalf("Run() returned error: %v", err)
		}
		content, err := os.ReadFile(filepath.Join(dir, config.FileName))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.HasPrefix(string(content), tt.want) {
			t.Errorf("version %q: content starts with %q, want %q",
				tt.version, strings.SplitN(string(content), "\n", 2)[0], tt.want)
		}
	}
}

func TestRun_NoPackageJSON_PrintsWarning(t *testing.T) {
	var buf bytes.Buffer
	if _, err := Run(Options{TargetDir: t.TempDir(), Stdout: &buf}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}
	if !strings.Contains(buf.String(), "no package.json found") {
		t.Errorf("expected a warning, got:\n%s", buf.String())
	}
}

func TestScaffoldedConfig_Loads(t *testing.T) {
	dir := newProject(t)
	if _, err := Run(Options{TargetDir: dir, Stdout: &bytes.Buffer{}}); err != nil {
		t.Fatalf("Run() returned error: %v", err)
	}

	cfg, err := config.Load(filepath.Join(dir, config.FileName))
	if err != nil {
		t.Fatalf("scaffolded config does not load: %v", err)
	}
	if !reflect.DeepEqual(cfg.Exclude, config.DefaultConfig().Exclude) {
		t.Errorf("Exclude = %v, want the defaults %v", cfg.Exclude, config.DefaultConfig().Exclude)
	}
}

func TestAssetPaths(t *testing.T) {
	paths, err := AssetPaths()
	if err != nil {
		t.Fatalf("AssetPaths() error: %v", err)
	}
	if !reflect.DeepEqual(paths, []string{"vitestlint.yaml"}) {
		t.Errorf("AssetPaths() = %v", paths)
	}
	content, err := AssetContent("vitestlint.yaml")
	if err != nil || len(content) == 0 {
		t.Errorf("AssetContent() = %d bytes, %v", len(content), err)
	}
}
