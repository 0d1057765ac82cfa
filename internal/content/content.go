// Package content loads the static world definitions — maps, NPC/monster
// templates, and spawn lists — from YAML files, a file-backed companion to
// internal/persist's database-backed Port. Grounded on the teacher's
// internal/data loaders (table-per-definition-type structs unmarshalled
// with an external library rather than hand-rolled parsing), adapted from
// the teacher's Big5-flatfile format to gopkg.in/yaml.v3 since this
// module's content is authored by operators, not extracted from client
// assets.
package content

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/silverkeep/realmd/internal/world"
)

// MapFile is the on-disk shape of one maps/*.yaml entry.
type MapFile struct {
	ID              uint16 `yaml:"id"`
	Name            string `yaml:"name"`
	Width           uint16 `yaml:"width"`
	Height          uint16 `yaml:"height"`
	Underwater      bool   `yaml:"underwater"`
	SpawnMultiplier float64 `yaml:"spawn_multiplier"`
	DropMultiplier  float64 `yaml:"drop_multiplier"`
	NoPK            bool    `yaml:"no_pk"`
}

// MonsterFile is the on-disk shape of one monsters/*.yaml entry.
type MonsterFile struct {
	DefID          uint32 `yaml:"def_id"`
	Name           string `yaml:"name"`
	Icon           uint16 `yaml:"icon"`
	Level          uint8  `yaml:"level"`
	MaxHP          int32  `yaml:"max_hp"`
	AC             int8   `yaml:"ac"`
	DmgSmall       int    `yaml:"dmg_small"`
	DmgMax         int    `yaml:"dmg_max"`
	HitBonus       int16  `yaml:"hit_bonus"`
	AggroRange     float64 `yaml:"aggro_range"`
	WanderInterval int     `yaml:"wander_interval_ms"`
}

// SpawnFile is the on-disk shape of one spawns/*.yaml entry: N copies of a
// monster definition placed around an origin point on a map.
type SpawnFile struct {
	MonsterDefID uint32 `yaml:"monster_def_id"`
	MapID        uint16 `yaml:"map_id"`
	X            int32  `yaml:"x"`
	Y            int32  `yaml:"y"`
	Count        int    `yaml:"count"`
}

// ItemFile is the on-disk shape of one items/*.yaml entry — the weapon,
// armor, or etc template rows persisted instances (persist.ItemRow) refer
// to by DefID.
type ItemFile struct {
	DefID      uint32 `yaml:"def_id"`
	Name       string `yaml:"name"`
	Kind       uint8  `yaml:"kind"`
	DmgSmall   int    `yaml:"dmg_small"`
	DmgMax     int    `yaml:"dmg_max"`
	HitBonus   int16  `yaml:"hit_bonus"`
	ArmorClass int8   `yaml:"armor_class"`
	Weight     int32  `yaml:"weight"`
	GroundIcon uint16 `yaml:"ground_icon"`
}

// Catalog is the full set of definitions loaded from a content directory.
type Catalog struct {
	Maps     map[uint16]MapFile
	Monsters map[uint32]MonsterFile
	Items    map[uint32]ItemFile
	Spawns   []SpawnFile
}

// Load reads maps.yaml, monsters.yaml, spawns.yaml, and items.yaml from dir. Any file
// absent from dir yields an empty section rather than an error: a deployment
// may source maps from the persistence port instead.
func Load(dir string) (*Catalog, error) {
	cat := &Catalog{
		Maps:     map[uint16]MapFile{},
		Monsters: map[uint32]MonsterFile{},
		Items:    map[uint32]ItemFile{},
	}

	var maps []MapFile
	if err := loadYAML(filepath.Join(dir, "maps.yaml"), &maps); err != nil {
		return nil, fmt.Errorf("load maps: %w", err)
	}
	for _, m := range maps {
		cat.Maps[m.ID] = m
	}

	var monsters []MonsterFile
	if err := loadYAML(filepath.Join(dir, "monsters.yaml"), &monsters); err != nil {
		return nil, fmt.Errorf("load monsters: %w", err)
	}
	for _, m := range monsters {
		cat.Monsters[m.DefID] = m
	}

	if err := loadYAML(filepath.Join(dir, "spawns.yaml"), &cat.Spawns); err != nil {
		return nil, fmt.Errorf("load spawns: %w", err)
	}

	var items []ItemFile
	if err := loadYAML(filepath.Join(dir, "items.yaml"), &items); err != nil {
		return nil, fmt.Errorf("load items: %w", err)
	}
	for _, it := range items {
		cat.Items[it.DefID] = it
	}

	return cat, nil
}

func loadYAML(path string, out interface{}) error {
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	return yaml.Unmarshal(b, out)
}

// MapDefinition converts a loaded MapFile into a world.MapDefinition.
func (f MapFile) MapDefinition() world.MapDefinition {
	return world.MapDefinition{
		ID: f.ID, Name: f.Name, Width: f.Width, Height: f.Height,
		Underwater: f.Underwater, SpawnMultiplier: f.SpawnMultiplier,
		DropMultiplier: f.DropMultiplier, NoPK: f.NoPK,
	}
}

// MonsterDefinition converts a loaded MonsterFile into a
// world.MonsterDefinition.
func (f MonsterFile) MonsterDefinition() world.MonsterDefinition {
	return world.MonsterDefinition{
		DefID: f.DefID, Name: f.Name, Icon: f.Icon, Level: f.Level, MaxHP: f.MaxHP,
		AC: f.AC, DmgSmall: f.DmgSmall, DmgMax: f.DmgMax, HitBonus: f.HitBonus,
		AggroRange: f.AggroRange, WanderInterval: f.WanderInterval,
	}
}

// ItemDefinition converts a loaded ItemFile into a world.ItemDefinition.
func (f ItemFile) ItemDefinition() world.ItemDefinition {
	return world.ItemDefinition{
		DefID: f.DefID, Name: f.Name, Kind: world.ItemKind(f.Kind),
		DmgSmall: f.DmgSmall, DmgMax: f.DmgMax, HitBonus: f.HitBonus,
		ArmorClass: f.ArmorClass, Weight: f.Weight, GroundIcon: f.GroundIcon,
	}
}
