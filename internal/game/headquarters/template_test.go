package headquarters_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/squadwar/internal/game/combat"
	"github.com/cory-johannsen/squadwar/internal/game/headquarters"
)

const squadYAML = `
- id: line
  role: soldier
  count: 3
  health: 100
  damage: 15
  armor: 2
  attack_range: 2
- id: doc
  role: medic
  health: 80
  damage: 10
  heal: 12
  heal_range: 1
- id: boomer
  role: grenadier
  health: 90
  damage: 15
  grenade_damage: 30
  grenade_targets: 2
  grenade_cooldown: 3
`

func TestLoadTemplatesFromBytes(t *testing.T) {
	templates, err := headquarters.LoadTemplatesFromBytes([]byte(squadYAML))
	require.NoError(t, err)
	require.Len(t, templates, 3)
	assert.Equal(t, "line", templates[0].ID)
	require.NotNil(t, templates[0].Count)
	assert.Equal(t, 3, *templates[0].Count)
	assert.Equal(t, 3, templates[0].Members())
	assert.Nil(t, templates[1].Count)
	assert.Equal(t, 1, templates[1].Members())
	assert.Equal(t, 12, templates[1].Heal)
}

func TestLoadTemplatesFromBytes_Empty(t *testing.T) {
	templates, err := headquarters.LoadTemplatesFromBytes(nil)
	require.NoError(t, err)
	assert.Empty(t, templates)
}

func TestTemplate_ValidateRejects(t *testing.T) {
	cases := map[string]string{
		"empty id":                  "- {role: soldier, health: 1, damage: 1}",
		"unknown role":              "- {id: x, role: wizard, health: 1, damage: 1}",
		"negative count":            "- {id: x, role: soldier, count: -1, damage: 1}",
		"negative health":           "- {id: x, role: soldier, health: -5, damage: 1}",
		"zero damage":               "- {id: x, role: soldier, health: 10}",
		"negative damage":           "- {id: x, role: soldier, damage: -1}",
		"negative armor":            "- {id: x, role: soldier, damage: 1, armor: -1}",
		"medic without heal":        "- {id: x, role: medic, health: 10, damage: 1}",
		"negative heal":             "- {id: x, role: medic, health: 10, damage: 1, heal: -10}",
		"grenadier without damage":  "- {id: x, role: grenadier, health: 10, damage: 1, grenade_targets: 2}",
		"grenadier without target":  "- {id: x, role: grenadier, health: 10, damage: 1, grenade_damage: 30}",
		"negative grenade targets":  "- {id: x, role: grenadier, health: 10, damage: 1, grenade_damage: 30, grenade_targets: -2}",
		"negative cooldown":         "- {id: x, role: grenadier, health: 10, damage: 1, grenade_damage: 30, grenade_targets: 2, grenade_cooldown: -1}",
		"sniper without multiplier": "- {id: x, role: sniper, health: 10, damage: 20}",
		"negative multiplier":       "- {id: x, role: sniper, health: 10, damage: 20, multiplier: -3}",
		"gunner without bursts":     "- {id: x, role: gunner, health: 10, damage: 7}",
		"misspelled key":            "- {id: x, role: grenadier, health: 10, damage: 1, grenade_damage: 30, grenade_targets: 2, grenade_cooldwn: 3}",
		"not a sequence":            "id: x",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := headquarters.LoadTemplatesFromBytes([]byte(doc))
			assert.Error(t, err)
		})
	}
}

func TestTemplate_ValidateReportsAllViolations(t *testing.T) {
	_, err := headquarters.LoadTemplatesFromBytes([]byte(
		"- {id: boomer, role: grenadier, health: 10, damage: 0, grenade_targets: 0, grenade_cooldown: -1}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `squad template "boomer"`)
	assert.Contains(t, err.Error(), "damage must be >= 1, got 0")
	assert.Contains(t, err.Error(), "grenade_damage must be >= 1")
	assert.Contains(t, err.Error(), "grenade_targets must be >= 1")
	assert.Contains(t, err.Error(), "grenade_cooldown must be >= 0, got -1")
}

// Every role a template accepts must be able to hurt an enemy.
func TestBuildRoster_EveryRoleDealsDamage(t *testing.T) {
	templates, err := headquarters.LoadTemplatesFromBytes([]byte(`
- {id: a, role: soldier, health: 50, damage: 20}
- {id: b, role: medic, health: 50, damage: 20, heal: 5}
- {id: c, role: grenadier, health: 50, damage: 20, grenade_damage: 30, grenade_targets: 1}
- {id: d, role: sniper, health: 50, damage: 20, multiplier: 2}
- {id: e, role: gunner, health: 50, damage: 20, bursts: 2}
`))
	require.NoError(t, err)

	for _, tmpl := range templates {
		attackers := headquarters.BuildRoster("first", []*headquarters.Template{tmpl})
		target := combat.NewSoldier(combat.Stats{MaxHP: 1000, Damage: 1})
		enemy := combat.NewRoster("second", []combat.Combatant{target})
		events := attackers.Attack(enemy, fixedSrc{val: 0})
		require.NotEmpty(t, events, tmpl.ID)
		assert.Less(t, target.CurrentHP, 1000, "template %s dealt no damage", tmpl.ID)
	}
}

func TestBuildRoster_StampsCounts(t *testing.T) {
	templates, err := headquarters.LoadTemplatesFromBytes([]byte(squadYAML))
	require.NoError(t, err)

	roster := headquarters.BuildRoster("first", templates)
	require.Equal(t, 5, roster.Len())
	for i := 0; i < 3; i++ {
		u := roster.At(i).Base()
		assert.Equal(t, combat.RoleSoldier, u.Role)
		assert.Equal(t, 100, u.CurrentHP)
		assert.Equal(t, 2, u.Armor)
	}
	assert.NotEqual(t, roster.At(0).Base().ID, roster.At(1).Base().ID)

	m, ok := roster.At(3).(*combat.Medic)
	require.True(t, ok)
	assert.Equal(t, 12, m.HealAmount)

	g, ok := roster.At(4).(*combat.Grenadier)
	require.True(t, ok)
	assert.Equal(t, 30, g.GrenadeDamage)
	assert.Equal(t, 3, g.GrenadeCooldown)
}

func TestBuildRoster_ExplicitZeroCount(t *testing.T) {
	templates, err := headquarters.LoadTemplatesFromBytes([]byte(`
- {id: reserve, role: soldier, count: 0, health: 10, damage: 1}
- {id: line, role: soldier, health: 10, damage: 1}
`))
	require.NoError(t, err)
	assert.Equal(t, 0, templates[0].Members())

	roster := headquarters.BuildRoster("first", templates)
	assert.Equal(t, 1, roster.Len())
}

func TestBuildRoster_DeadOnArrival(t *testing.T) {
	templates, err := headquarters.LoadTemplatesFromBytes([]byte("- {id: ghost, role: soldier, count: 2, health: 0, damage: 5}"))
	require.NoError(t, err)

	roster := headquarters.BuildRoster("first", templates)
	assert.Equal(t, 2, roster.Len())
	assert.False(t, roster.IsAlive())
}

func TestLoadTemplates_Directory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.yaml"), []byte("- {id: a, role: sniper, health: 60, damage: 20, multiplier: 2}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "b.yaml"), []byte("- {id: b, role: gunner, health: 90, damage: 7, bursts: 3}"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0644))

	templates, err := headquarters.LoadTemplates(dir)
	require.NoError(t, err)
	require.Len(t, templates, 2)
	assert.Equal(t, "a", templates[0].ID)
	assert.Equal(t, "b", templates[1].ID)
}

func TestLoadTemplates_BadFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte("- {id: x, role: wizard}"), 0644))
	_, err := headquarters.LoadTemplates(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad.yaml")
}

func TestLoadTemplates_MissingDir(t *testing.T) {
	_, err := headquarters.LoadTemplates("/nonexistent/squads")
	assert.Error(t, err)
}

func TestProperty_BuildRoster_LengthIsSumOfCounts(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		counts := rapid.SliceOfN(rapid.IntRange(-1, 5), 1, 6).Draw(rt, "counts")
		want := 0
		var templates []*headquarters.Template
		for _, c := range counts {
			tmpl := &headquarters.Template{ID: "t", Role: "soldier", Health: 10, Damage: 1}
			if c < 0 {
				// -1 stands for an omitted count.
				want++
			} else {
				tmpl.Count = &c
				want += c
			}
			templates = append(templates, tmpl)
		}
		assert.Equal(rt, want, headquarters.BuildRoster("first", templates).Len())
	})
}
