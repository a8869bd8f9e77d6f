package rig

import (
	_ "embed"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

//go:embed level.yaml
var defaultLevelYAML []byte

// LevelDef lists the chasers and weapon instances of a level.
type LevelDef struct {
	Chasers Chasers          `yaml:"chasers"`
	Weapons []WeaponInstance `yaml:"weapons"`
}

// Chasers holds unnamed and named chaser placements sharing one property set.
type Chasers struct {
	Defs      []ChaserDef      `yaml:"defs"`
	NamedDefs []NamedChaserDef `yaml:"named_defs"`
	Props     ChaserProps      `yaml:"props"`
}

// NamedChaserDef is a chaser that weapons can use as a root.
type NamedChaserDef struct {
	Name string    `yaml:"name"`
	Def  ChaserDef `yaml:"def"`
}

// ChaserDef places a chaser in world coordinates.
type ChaserDef struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// ChaserProps are the physical properties shared by a level's chasers.
type ChaserProps struct {
	LinearDamping float64 `yaml:"linear_damping"`
	Scale         float64 `yaml:"scale"`
	Density       float64 `yaml:"density"`
	Restitution   float64 `yaml:"restitution"`
}

// WeaponInstance attaches a weapon class to a named root object.
type WeaponInstance struct {
	Class string `yaml:"class"`
	Root  string `yaml:"root"`
}

// WeaponDef is a rig template: colliders placed relative to the root and
// chains between named objects. "root" names the object the weapon hangs off.
type WeaponDef struct {
	Name      string        `yaml:"name"`
	Colliders []ColliderDef `yaml:"colliders"`
	Chains    []ChainDef    `yaml:"chains"`
}

// ColliderDef places a single body relative to the weapon root.
type ColliderDef struct {
	Name  string  `yaml:"name"`
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Props string  `yaml:"props"` // key into the collider property table
}

// ColliderProps are the physical properties of a collider body.
type ColliderProps struct {
	Shape          string  `yaml:"shape"` // "circle" (default) or "box"
	Width          float64 `yaml:"width"` // box only
	Height         float64 `yaml:"height"`
	LinearDamping  float64 `yaml:"linear_damping"`
	AngularDamping float64 `yaml:"angular_damping"`
	Scale          float64 `yaml:"scale"`
	Density        float64 `yaml:"density"`
	Restitution    float64 `yaml:"restitution"`
}

// ChainDef links two named objects with Length small rigid links placed at
// (X, Y) relative to the weapon root.
type ChainDef struct {
	Object1 string  `yaml:"object1"`
	Object2 string  `yaml:"object2"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Length  int     `yaml:"length"`
}

// Library holds the weapon classes and collider property sets a level refers to.
type Library struct {
	Weapons   map[string]WeaponDef
	Colliders map[string]ColliderProps
}

// LevelFile is the on-disk layout of a level: the level itself plus the
// weapon classes and collider properties it uses.
type LevelFile struct {
	Level         LevelDef                 `yaml:"level"`
	Weapons       []WeaponDef              `yaml:"weapons"`
	ColliderProps map[string]ColliderProps `yaml:"collider_props"`
}

// Library indexes the file's weapon classes by name.
func (f LevelFile) Library() Library {
	lib := Library{
		Weapons:   make(map[string]WeaponDef, len(f.Weapons)),
		Colliders: make(map[string]ColliderProps, len(f.ColliderProps)),
	}
	for _, w := range f.Weapons {
		lib.Weapons[w.Name] = w
	}
	for name, p := range f.ColliderProps {
		lib.Colliders[name] = p
	}
	return lib
}

// ParseLevel decodes a level file.
func ParseLevel(data []byte) (LevelFile, error) {
	var f LevelFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return LevelFile{}, errors.Wrap(err, "parsing level")
	}
	return f, nil
}

// LoadLevelFile reads and decodes a level file. An empty path loads the
// built-in level.
func LoadLevelFile(path string) (LevelFile, error) {
	if path == "" {
		return DefaultLevel()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return LevelFile{}, errors.Wrap(err, "reading level file")
	}
	f, err := ParseLevel(data)
	if err != nil {
		return LevelFile{}, errors.Wrapf(err, "level %s", path)
	}
	return f, nil
}

// DefaultLevel returns the built-in level.
func DefaultLevel() (LevelFile, error) {
	return ParseLevel(defaultLevelYAML)
}
