package seed

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(c.Parts) != 4 || len(c.Complexes) != 2 {
		t.Fatalf("unexpected sizes: parts=%d complexes=%d", len(c.Parts), len(c.Complexes))
	}
	b := c.Complexes[1]
	if b.Name != "Площадка B" || b.Description != "Расширенный набор" {
		t.Fatalf("unexpected second complex: %q / %q", b.Name, b.Description)
	}
	if b.Parts["Канат"] != 15 || b.Parts["Болт"] != 80 {
		t.Fatalf("unexpected Площадка B parts: %v", b.Parts)
	}
	if got := strings.Join(b.PartNames(), ","); got != "Болт,Гайка,Канат,Панель" {
		t.Fatalf("PartNames: got=%q", got)
	}
}

func TestParseRejectsUnknownPart(t *testing.T) {
	_, err := Parse([]byte("parts:\n  - name: Bolt\ncomplexes:\n  - name: X\n    parts:\n      Nut: 1\n"))
	if err == nil || !strings.Contains(err.Error(), "unknown part") {
		t.Fatalf("expected unknown part error, got %v", err)
	}
}

func TestParseRejectsDuplicatePart(t *testing.T) {
	if _, err := Parse([]byte("parts:\n  - name: Bolt\n  - name: Bolt\n")); err == nil {
		t.Fatalf("expected duplicate part error")
	}
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte("parts:\n  - name: Gear\n"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(c.Parts) != 1 || c.Parts[0].Name != "Gear" || len(c.Complexes) != 0 {
		t.Fatalf("unexpected catalog: %+v", c)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
