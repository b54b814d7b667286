// Package headquarters musters squads for a battle from role stat tables and
// a squad composition.
package headquarters

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/squadwar/internal/game/combat"
	"github.com/cory-johannsen/squadwar/internal/game/dice"
)

//go:embed roles.yaml
var defaultRoles []byte

// Range is an inclusive [Min, Max] stat interval.
//
// In YAML a Range may be written as a two-element sequence ([80, 100]), a
// mapping ({min: 80, max: 100}), a single number for a fixed value, or a dice
// expression ("3d6+70") whose bounds become Min and Max.
type Range struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
	// Dice, when set, replaces the uniform draw with a dice roll.
	Dice *dice.Expression `yaml:"-"`
}

// UnmarshalYAML accepts the sequence, mapping, number and dice forms of a Range.
func (r *Range) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.ShortTag() != "!!int" {
			e, err := dice.Parse(value.Value)
			if err != nil {
				return fmt.Errorf("line %d: range value: %w", value.Line, err)
			}
			*r = Range{Min: e.Min(), Max: e.Max(), Dice: &e}
			return nil
		}
		var n int
		if err := value.Decode(&n); err != nil {
			return fmt.Errorf("line %d: range value: %w", value.Line, err)
		}
		*r = Range{Min: n, Max: n}
	case yaml.SequenceNode:
		var pair []int
		if err := value.Decode(&pair); err != nil {
			return fmt.Errorf("line %d: range bounds: %w", value.Line, err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: range must have exactly 2 bounds, got %d", value.Line, len(pair))
		}
		*r = Range{Min: pair[0], Max: pair[1]}
	case yaml.MappingNode:
		for i := 0; i < len(value.Content); i += 2 {
			if k := value.Content[i]; k.Value != "min" && k.Value != "max" {
				return fmt.Errorf("line %d: range mapping: unknown key %q", k.Line, k.Value)
			}
		}
		var p struct {
			Min int `yaml:"min"`
			Max int `yaml:"max"`
		}
		if err := value.Decode(&p); err != nil {
			return fmt.Errorf("line %d: range mapping: %w", value.Line, err)
		}
		*r = Range{Min: p.Min, Max: p.Max}
	default:
		return fmt.Errorf("line %d: range must be a number, a [min, max] pair or a mapping", value.Line)
	}
	return nil
}

// Roll draws a value in [Min, Max], uniformly unless the range came from a
// dice expression.
//
// Precondition: r has passed validation (Min <= Max).
func (r Range) Roll(src dice.Source) int {
	if r.Dice != nil {
		return r.Dice.Roll(src)
	}
	return dice.Between(src, r.Min, r.Max)
}

func (r Range) check(field string, floor int) error {
	if r.Min > r.Max {
		return fmt.Errorf("%s: min %d exceeds max %d", field, r.Min, r.Max)
	}
	if r.Min < floor {
		return fmt.Errorf("%s: min must be >= %d, got %d", field, floor, r.Min)
	}
	return nil
}

// RoleTable holds the stat ranges a role is recruited from. Fields that do
// not apply to a role are ignored.
type RoleTable struct {
	Health      Range `yaml:"health"`
	Damage      Range `yaml:"damage"`
	Armor       Range `yaml:"armor"`
	AttackRange Range `yaml:"attack_range"`

	Heal      Range `yaml:"heal"`
	HealRange Range `yaml:"heal_range"`

	GrenadeDamage   Range `yaml:"grenade_damage"`
	GrenadeTargets  Range `yaml:"grenade_targets"`
	GrenadeCooldown Range `yaml:"grenade_cooldown"`

	Multiplier Range `yaml:"multiplier"`

	Bursts Range `yaml:"bursts"`
}

// Tables holds one RoleTable per role.
type Tables struct {
	Soldier   RoleTable `yaml:"soldier"`
	Medic     RoleTable `yaml:"medic"`
	Grenadier RoleTable `yaml:"grenadier"`
	Sniper    RoleTable `yaml:"sniper"`
	Gunner    RoleTable `yaml:"gunner"`
}

// For returns the table for role.
func (t Tables) For(role combat.Role) RoleTable {
	switch role {
	case combat.RoleMedic:
		return t.Medic
	case combat.RoleGrenadier:
		return t.Grenadier
	case combat.RoleSniper:
		return t.Sniper
	case combat.RoleGunner:
		return t.Gunner
	default:
		return t.Soldier
	}
}

// Validate checks every role's ranges.
//
// Every role must have health >= 1 and damage >= 1 so that recruited squads
// always fight; armor and ranges must not be negative.
//
// Postcondition: Returns nil if all tables are valid, or an error describing all violations.
func (t Tables) Validate() error {
	var errs []string
	add := func(err error) {
		if err != nil {
			errs = append(errs, err.Error())
		}
	}
	for role := combat.RoleSoldier; role <= combat.RoleGunner; role++ {
		rt := t.For(role)
		name := role.String()
		add(rt.Health.check(name+".health", 1))
		add(rt.Damage.check(name+".damage", 1))
		add(rt.Armor.check(name+".armor", 0))
		add(rt.AttackRange.check(name+".attack_range", 0))
		switch role {
		case combat.RoleMedic:
			add(rt.Heal.check(name+".heal", 1))
			add(rt.HealRange.check(name+".heal_range", 0))
		case combat.RoleGrenadier:
			add(rt.GrenadeDamage.check(name+".grenade_damage", 1))
			add(rt.GrenadeTargets.check(name+".grenade_targets", 1))
			add(rt.GrenadeCooldown.check(name+".grenade_cooldown", 0))
		case combat.RoleSniper:
			add(rt.Multiplier.check(name+".multiplier", 1))
		case combat.RoleGunner:
			add(rt.Bursts.check(name+".bursts", 1))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("role tables invalid: %s", strings.Join(errs, "; "))
	}
	return nil
}

// LoadTablesFromBytes parses and validates role tables from raw YAML bytes.
// Unknown keys are rejected.
//
// Postcondition: Returns validated Tables, or an error.
func LoadTablesFromBytes(data []byte) (Tables, error) {
	var t Tables
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&t); err != nil && !errors.Is(err, io.EOF) {
		return Tables{}, fmt.Errorf("parsing role tables YAML: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tables{}, err
	}
	return t, nil
}

// LoadTables reads role tables from the YAML file at path.
//
// Precondition: path must name a readable file.
// Postcondition: Returns validated Tables, or an error.
func LoadTables(path string) (Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Tables{}, fmt.Errorf("reading role tables %q: %w", path, err)
	}
	t, err := LoadTablesFromBytes(data)
	if err != nil {
		return Tables{}, fmt.Errorf("loading %q: %w", path, err)
	}
	return t, nil
}

// DefaultTables returns the built-in role tables.
//
// Postcondition: Returns validated Tables; panics if the embedded file is invalid.
func DefaultTables() Tables {
	t, err := LoadTablesFromBytes(defaultRoles)
	if err != nil {
		panic("headquarters: embedded role tables invalid: " + err.Error())
	}
	return t
}
