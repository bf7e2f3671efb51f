package registry

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-test/deep"
)

func mkdirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0o755); err != nil {
			t.Fatal(err)
		}
	}
}

func touch(t *testing.T, root, rel string) {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("<?php\n"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestAppCodeLocator(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "app/code/Acme/Foo", "app/code/Acme/Bar", "app/code/Other/Baz")

	loc := &AppCodeLocator{}
	if !loc.Detect(root) {
		t.Fatal("Detect = false for app/code layout")
	}

	modules, err := loc.Modules(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Acme_Bar", "Acme_Foo", "Other_Baz"}
	if diff := deep.Equal(SortedNames(modules), want); diff != nil {
		t.Errorf("module names mismatch: %v", diff)
	}
	if modules["Acme_Foo"] != filepath.Join(root, "app", "code", "Acme", "Foo") {
		t.Errorf("unexpected path for Acme_Foo: %s", modules["Acme_Foo"])
	}
}

func TestVendorLocatorRequiresRegistration(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "vendor/acme/module-foo/registration.php")
	mkdirs(t, root, "vendor/acme/not-a-module", "vendor/bin")

	loc := &VendorLocator{}
	if !loc.Detect(root) {
		t.Fatal("Detect = false for vendor layout")
	}

	modules, err := loc.Modules(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(modules) != 1 {
		t.Fatalf("got %d modules, want 1: %v", len(modules), modules)
	}
	if _, ok := modules["acme_module-foo"]; !ok {
		t.Errorf("missing acme_module-foo: %v", modules)
	}
}

func TestFileRegistry(t *testing.T) {
	root := t.TempDir()
	mapPath := filepath.Join(root, "modules.yaml")
	content := "Acme_Foo: mods/foo\nAcme_Bar: /abs/bar\n"
	if err := os.WriteFile(mapPath, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	loc := &FileRegistry{Path: mapPath}
	if !loc.Detect(root) {
		t.Fatal("Detect = false for existing map file")
	}

	modules, err := loc.Modules(root)
	if err != nil {
		t.Fatal(err)
	}
	if modules["Acme_Foo"] != filepath.Join(root, "mods", "foo") {
		t.Errorf("relative path not resolved: %s", modules["Acme_Foo"])
	}
	if modules["Acme_Bar"] != filepath.FromSlash("/abs/bar") {
		t.Errorf("absolute path altered: %s", modules["Acme_Bar"])
	}
}

func TestFileRegistryMalformed(t *testing.T) {
	root := t.TempDir()
	mapPath := filepath.Join(root, "modules.yaml")
	if err := os.WriteFile(mapPath, []byte(":\n  - broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := (&FileRegistry{Path: mapPath}).Modules(root); err == nil {
		t.Fatal("expected parse error for malformed module map")
	}
}

func TestRegistryResolveChainOrderWins(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "app/code/Acme/Foo")
	touch(t, root, "vendor/acme/module-bar/registration.php")

	modules, err := New().Resolve(root)
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"Acme_Foo", "acme_module-bar"}
	if diff := deep.Equal(SortedNames(modules), want); diff != nil {
		t.Errorf("resolved modules mismatch: %v", diff)
	}
}

func TestRegistryResolveNoLayout(t *testing.T) {
	if _, err := New().Resolve(t.TempDir()); err == nil {
		t.Fatal("expected error when no locator detects the root")
	}
}

func TestDetectedLocators(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, root, "app/code")

	names := New().DetectedLocators(root)
	want := []string{"app-code"}
	if diff := deep.Equal(names, want); diff != nil {
		t.Errorf("DetectedLocators mismatch: %v", diff)
	}
}
