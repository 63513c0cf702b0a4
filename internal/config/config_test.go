package config

import (
	"os"
	"testing"

	"github.com/occ2swift/occ/internal/transform"
)

func TestLoad(t *testing.T) {
	content := `
nullability:
  default: nonnull
output_extensions:
  .m: .swift5
max_fixpoint_iterations: 5
`
	tmpfile, err := os.CreateTemp("", "occ*.yml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())

	if _, err := tmpfile.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := tmpfile.Close(); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.ImplicitlyNonnull() {
		t.Errorf("expected nullability.default nonnull to make ImplicitlyNonnull true")
	}
	if got := cfg.ExtensionFor(".m"); got != ".swift5" {
		t.Errorf("expected overridden .m extension .swift5, got %s", got)
	}
	if got := cfg.ExtensionFor(".h"); got != ".swift" {
		t.Errorf("expected default .h extension .swift, got %s", got)
	}
	if cfg.MaxFixpointIterations != 5 {
		t.Errorf("expected MaxFixpointIterations 5, got %d", cfg.MaxFixpointIterations)
	}
}

func TestLoadFillsDefaults(t *testing.T) {
	content := `nullability:
  default: optional
`
	tmpfile, err := os.CreateTemp("", "occ*.yml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte(content))
	tmpfile.Close()

	cfg, err := Load(tmpfile.Name())
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.MaxFixpointIterations != DefaultMaxFixpointIterations {
		t.Errorf("expected default MaxFixpointIterations %d, got %d", DefaultMaxFixpointIterations, cfg.MaxFixpointIterations)
	}
	if cfg.ExtensionFor(".m") != DefaultOutputExtension {
		t.Errorf("expected default .m extension %s, got %s", DefaultOutputExtension, cfg.ExtensionFor(".m"))
	}
}

func TestLoadError(t *testing.T) {
	if _, err := Load("nonexistent.yml"); err == nil {
		t.Error("expected error for nonexistent file")
	}

	tmpfile, _ := os.CreateTemp("", "bad*.yml")
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte("nullability: [this is not a mapping"))
	tmpfile.Close()

	if _, err := Load(tmpfile.Name()); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestDefaultIsNullableByDefault(t *testing.T) {
	cfg := Default()
	if cfg.ImplicitlyNonnull() {
		t.Error("expected out-of-the-box default to treat unannotated pointers as optional")
	}
}

func TestLoadTransformRegistryIncludesBuiltinsWithoutAFile(t *testing.T) {
	cfg := Default()
	reg, err := cfg.LoadTransformRegistry()
	if err != nil {
		t.Fatalf("LoadTransformRegistry failed: %v", err)
	}
	if reg.Len() == 0 {
		t.Error("expected builtins to be registered even with no transform_registry file configured")
	}
}

func TestLoadTransformRegistryAppendsFromFile(t *testing.T) {
	tomlContent := `
[[transformer]]
objc_function_name = "CGRectMake"
target = "method"
method_name = "init"
first_arg_becomes_receiver = false
`
	tmpfile, err := os.CreateTemp("", "transforms*.toml")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(tmpfile.Name())
	tmpfile.Write([]byte(tomlContent))
	tmpfile.Close()

	cfg := Default()
	cfg.TransformRegistry = tmpfile.Name()

	reg, err := cfg.LoadTransformRegistry()
	if err != nil {
		t.Fatalf("LoadTransformRegistry failed: %v", err)
	}
	builtinCount := len(transform.Builtins())
	if reg.Len() != builtinCount+1 {
		t.Errorf("expected %d builtins plus 1 loaded transformer, got %d", builtinCount, reg.Len())
	}
}
