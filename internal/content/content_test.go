package content

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestLoadPopulatesCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "maps.yaml", `
- id: 4
  name: Talking Island
  width: 1000
  height: 1000
`)
	writeFile(t, dir, "monsters.yaml", `
- def_id: 100
  name: Kobold
  level: 3
  max_hp: 40
  ac: 8
  dmg_small: 1
  dmg_max: 4
  aggro_range: 10
  wander_interval_ms: 1500
`)
	writeFile(t, dir, "spawns.yaml", `
- monster_def_id: 100
  map_id: 4
  x: 32768
  y: 32768
  count: 5
`)
	writeFile(t, dir, "items.yaml", `
- def_id: 10
  name: Short Sword
  kind: 1
  dmg_small: 1
  dmg_max: 6
  hit_bonus: 2
`)

	cat, err := Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cat.Maps) != 1 || cat.Maps[4].Name != "Talking Island" {
		t.Fatalf("maps not loaded: %+v", cat.Maps)
	}
	if len(cat.Monsters) != 1 || cat.Monsters[100].Name != "Kobold" {
		t.Fatalf("monsters not loaded: %+v", cat.Monsters)
	}
	if len(cat.Spawns) != 1 || cat.Spawns[0].Count != 5 {
		t.Fatalf("spawns not loaded: %+v", cat.Spawns)
	}
	if len(cat.Items) != 1 || cat.Items[10].Name != "Short Sword" {
		t.Fatalf("items not loaded: %+v", cat.Items)
	}
}

func TestLoadMissingDirYieldsEmptyCatalog(t *testing.T) {
	cat, err := Load(filepath.Join(t.TempDir(), "does-not-exist"))
	if err != nil {
		t.Fatalf("Load should tolerate a missing directory: %v", err)
	}
	if len(cat.Maps) != 0 || len(cat.Monsters) != 0 || len(cat.Spawns) != 0 {
		t.Fatalf("expected empty catalog, got %+v", cat)
	}
}
