package headquarters

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/cory-johannsen/squadwar/internal/game/combat"
)

// Template is a fixed-stat combatant archetype. Each template yields Count
// identical members when a roster is built from it.
type Template struct {
	ID   string `yaml:"id"`
	Role string `yaml:"role"`
	// Count is the number of members stamped; nil (key absent) means 1.
	Count *int `yaml:"count"`

	Health      int `yaml:"health"`
	Damage      int `yaml:"damage"`
	Armor       int `yaml:"armor"`
	AttackRange int `yaml:"attack_range"`

	Heal            int `yaml:"heal"`
	HealRange       int `yaml:"heal_range"`
	GrenadeDamage   int `yaml:"grenade_damage"`
	GrenadeTargets  int `yaml:"grenade_targets"`
	GrenadeCooldown int `yaml:"grenade_cooldown"`
	Multiplier      int `yaml:"multiplier"`
	Bursts          int `yaml:"bursts"`
}

// Validate checks that the template satisfies basic invariants.
//
// Templates may start at zero health; such members are dead on arrival. Every
// other stat follows the same floors as the role stat tables.
//
// Precondition: t must not be nil.
// Postcondition: Returns nil if the template is valid, or an error describing all violations.
func (t *Template) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("squad template: id must not be empty")
	}
	role, ok := combat.ParseRole(t.Role)
	if !ok {
		return fmt.Errorf("squad template %q: unknown role %q", t.ID, t.Role)
	}

	var errs []string
	atLeast := func(field string, v, floor int) {
		if v < floor {
			errs = append(errs, fmt.Sprintf("%s must be >= %d, got %d", field, floor, v))
		}
	}
	if t.Count != nil {
		atLeast("count", *t.Count, 0)
	}
	atLeast("health", t.Health, 0)
	atLeast("damage", t.Damage, 1)
	atLeast("armor", t.Armor, 0)
	switch role {
	case combat.RoleMedic:
		atLeast("heal", t.Heal, 1)
	case combat.RoleGrenadier:
		atLeast("grenade_damage", t.GrenadeDamage, 1)
		atLeast("grenade_targets", t.GrenadeTargets, 1)
		atLeast("grenade_cooldown", t.GrenadeCooldown, 0)
	case combat.RoleSniper:
		atLeast("multiplier", t.Multiplier, 1)
	case combat.RoleGunner:
		atLeast("bursts", t.Bursts, 1)
	}
	if len(errs) > 0 {
		return fmt.Errorf("squad template %q: %s", t.ID, strings.Join(errs, "; "))
	}
	return nil
}

// Members returns how many combatants the template stamps.
func (t *Template) Members() int {
	if t.Count == nil {
		return 1
	}
	return *t.Count
}

// Build returns a full-health combatant with the template's stats.
//
// Precondition: t has passed Validate.
func (t *Template) Build() combat.Combatant {
	role, _ := combat.ParseRole(t.Role)
	st := combat.Stats{MaxHP: t.Health, Damage: t.Damage, Armor: t.Armor, Range: t.AttackRange}
	switch role {
	case combat.RoleMedic:
		return combat.NewMedic(st, t.Heal, t.HealRange)
	case combat.RoleGrenadier:
		return combat.NewGrenadier(st, t.GrenadeDamage, t.GrenadeTargets, t.GrenadeCooldown)
	case combat.RoleSniper:
		return combat.NewSniper(st, t.Multiplier)
	case combat.RoleGunner:
		return combat.NewGunner(st, t.Bursts)
	default:
		return combat.NewSoldier(st)
	}
}

// BuildRoster stamps every template Members() times, in order, into a
// roster. Each copy is an independent clone with its own ID.
//
// Precondition: every template has passed Validate.
// Postcondition: Len() is the sum of the templates' Members().
func BuildRoster(name string, templates []*Template) *combat.Roster {
	var members []combat.Combatant
	for _, t := range templates {
		n := t.Members()
		if n == 0 {
			continue
		}
		proto := t.Build()
		members = append(members, proto)
		for i := 1; i < n; i++ {
			members = append(members, proto.Clone())
		}
	}
	return combat.NewRoster(name, members)
}

// LoadTemplatesFromBytes parses and validates a YAML sequence of templates.
// Unknown keys are rejected; an empty document yields no templates.
//
// Postcondition: Returns validated templates, or an error.
func LoadTemplatesFromBytes(data []byte) ([]*Template, error) {
	var templates []*Template
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&templates); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parsing squad template YAML: %w", err)
	}
	for _, t := range templates {
		if err := t.Validate(); err != nil {
			return nil, err
		}
	}
	return templates, nil
}

// LoadTemplates reads all *.yaml files in dir, in name order, and returns the
// concatenated templates.
//
// Precondition: dir must be a readable directory.
// Postcondition: Returns all templates or an error on the first parse or validate
// failure; on error, the partial result is discarded.
func LoadTemplates(dir string) ([]*Template, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading squad dir %q: %w", dir, err)
	}

	var templates []*Template
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %q: %w", path, err)
		}

		loaded, err := LoadTemplatesFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading %q: %w", path, err)
		}
		templates = append(templates, loaded...)
	}
	return templates, nil
}
