package fixer

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

// setupProfiles creates a profiles tree that mixes files needing rewrites,
// already-migrated files and files the fixer must ignore.
func setupProfiles(t *testing.T) string {
	t.Helper()
	root := filepath.Join(t.TempDir(), "profiles")

	writeFile(t, filepath.Join(root, "residential", "flat.yaml"), `name: flat
components:
  - component: consumo_energia.json
  - component: autoconsumo.json
`)
	writeFile(t, filepath.Join(root, "residential", "house.yaml"), `name: house
components:
  - component: produccion_solar.json
  - component: bateria.json
  - component: excedentes.json
  - component: consumo_red.json
`)
	writeFile(t, filepath.Join(root, "commercial", "office.yaml"), `name: office
components:
  - component: energy_consumption.json
`)
	writeFile(t, filepath.Join(root, "commercial", "notes.md"), "see consumo_energia.json\n")

	return root
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("expected %s to contain %q, got:\n%s", path, substr, data)
	}
}

// TestFullFlowRewriteThenRerun runs the fixer over a profiles tree twice and
// checks the rewritten files, the untouched files and both summaries.
func TestFullFlowRewriteThenRerun(t *testing.T) {
	root := setupProfiles(t)
	table := defaultTable(t)

	officePath := filepath.Join(root, "commercial", "office.yaml")
	before, err := os.Stat(officePath)
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	f := New(afero.NewOsFs(), root, table,
		WithDisplay(RelativeTo(filepath.Dir(root))),
		WithReporter(NewReporter(&out, false)),
	)

	first := f.Run(context.Background())
	if first.Discovered != 3 || first.Changed != 2 || first.Failed != 0 {
		t.Fatalf("first run = %d discovered, %d changed, %d failed; want 3, 2, 0",
			first.Discovered, first.Changed, first.Failed)
	}
	if got := first.Replacements(); got != 6 {
		t.Errorf("Replacements() = %d, want 6", got)
	}

	assertFileContains(t, filepath.Join(root, "residential", "flat.yaml"), "component: energy_consumption.json")
	assertFileContains(t, filepath.Join(root, "residential", "flat.yaml"), "component: self_consumption.json")
	assertFileContains(t, filepath.Join(root, "residential", "house.yaml"), "component: solar_production.json")
	assertFileContains(t, filepath.Join(root, "residential", "house.yaml"), "component: battery_storage.json")
	assertFileContains(t, filepath.Join(root, "residential", "house.yaml"), "component: grid_export.json")
	assertFileContains(t, filepath.Join(root, "residential", "house.yaml"), "component: grid_import.json")
	assertFileContains(t, filepath.Join(root, "commercial", "notes.md"), "consumo_energia.json")

	after, err := os.Stat(officePath)
	if err != nil {
		t.Fatal(err)
	}
	if !after.ModTime().Equal(before.ModTime()) {
		t.Errorf("office.yaml was rewritten although nothing changed")
	}

	if !strings.Contains(out.String(), "Updated: "+filepath.Join("profiles", "residential", "flat.yaml")) {
		t.Errorf("output missing relative path, got:\n%s", out.String())
	}

	second := f.Run(context.Background())
	if second.Discovered != 3 || second.Changed != 0 {
		t.Errorf("second run = %d discovered, %d changed; want 3, 0", second.Discovered, second.Changed)
	}
}
