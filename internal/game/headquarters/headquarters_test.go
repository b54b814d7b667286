package headquarters_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/squadwar/internal/config"
	"github.com/cory-johannsen/squadwar/internal/game/combat"
	"github.com/cory-johannsen/squadwar/internal/game/dice"
	"github.com/cory-johannsen/squadwar/internal/game/headquarters"
)

func defaultComposition() config.BattleConfig {
	return config.BattleConfig{
		SquadSizeMin: 25,
		SquadSizeMax: 30,
		Medics:       5,
		Grenadiers:   5,
		Snipers:      2,
		Gunners:      2,
	}
}

func roleCounts(r *combat.Roster) map[combat.Role]int {
	counts := make(map[combat.Role]int)
	for _, m := range r.Members() {
		counts[m.Base().Role]++
	}
	return counts
}

func TestNew_RejectsInvalidTables(t *testing.T) {
	tables := headquarters.DefaultTables()
	tables.Sniper.Damage = headquarters.Range{}
	_, err := headquarters.New(tables, defaultComposition(), fixedSrc{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sniper.damage")
}

func TestNew_RejectsQuotasOverMaxSize(t *testing.T) {
	comp := defaultComposition()
	comp.SquadSizeMax = 10
	comp.SquadSizeMin = 5
	_, err := headquarters.New(headquarters.DefaultTables(), comp, fixedSrc{}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "squad composition")
}

func TestRecruit_DrawsFromTables(t *testing.T) {
	hq, err := headquarters.New(headquarters.DefaultTables(), defaultComposition(), fixedSrc{val: 0}, nil)
	require.NoError(t, err)

	s := hq.Recruit(combat.RoleSoldier).Base()
	assert.Equal(t, combat.RoleSoldier, s.Role)
	assert.Equal(t, 80, s.MaxHP)
	assert.Equal(t, 80, s.CurrentHP)
	assert.Equal(t, 15, s.Damage)
	assert.Equal(t, 0, s.Armor)
	assert.Equal(t, 1, s.Range)

	m, ok := hq.Recruit(combat.RoleMedic).(*combat.Medic)
	require.True(t, ok)
	assert.Equal(t, 10, m.HealAmount)
	assert.Equal(t, 1, m.HealRange)

	g, ok := hq.Recruit(combat.RoleGrenadier).(*combat.Grenadier)
	require.True(t, ok)
	assert.Equal(t, 30, g.GrenadeDamage)
	assert.Equal(t, 2, g.GrenadeTargets)
	assert.Equal(t, 3, g.GrenadeCooldown)
	assert.Equal(t, 0, g.Cooldown())

	sn, ok := hq.Recruit(combat.RoleSniper).(*combat.Sniper)
	require.True(t, ok)
	assert.Equal(t, 2, sn.Multiplier)
	assert.Equal(t, 3, sn.Range)

	gu, ok := hq.Recruit(combat.RoleGunner).(*combat.Gunner)
	require.True(t, ok)
	assert.Equal(t, 3, gu.Bursts)
}

func TestRecruit_TopOfRanges(t *testing.T) {
	hq, err := headquarters.New(headquarters.DefaultTables(), defaultComposition(), maxSrc{}, nil)
	require.NoError(t, err)

	s := hq.Recruit(combat.RoleSoldier).Base()
	assert.Equal(t, 100, s.MaxHP)
	assert.Equal(t, 20, s.Damage)
	assert.Equal(t, 5, s.Armor)
	assert.Equal(t, 3, s.Range)
}

func TestCreateSquad_DefaultComposition(t *testing.T) {
	hq, err := headquarters.New(headquarters.DefaultTables(), defaultComposition(), fixedSrc{val: 0}, nil)
	require.NoError(t, err)

	squad := hq.CreateSquad("first")
	assert.Equal(t, "first", squad.Name)
	assert.Equal(t, 25, squad.Len())

	counts := roleCounts(squad)
	assert.Equal(t, 5, counts[combat.RoleMedic])
	assert.Equal(t, 5, counts[combat.RoleGrenadier])
	assert.Equal(t, 2, counts[combat.RoleSniper])
	assert.Equal(t, 2, counts[combat.RoleGunner])
	assert.Equal(t, 11, counts[combat.RoleSoldier])
	assert.True(t, squad.IsAlive())
}

func TestCreateSquad_MaxSize(t *testing.T) {
	hq, err := headquarters.New(headquarters.DefaultTables(), defaultComposition(), maxSrc{}, nil)
	require.NoError(t, err)
	assert.Equal(t, 30, hq.CreateSquad("second").Len())
}

func TestCreateSquad_QuotasAboveDrawnSize(t *testing.T) {
	comp := config.BattleConfig{SquadSizeMin: 1, SquadSizeMax: 6, Medics: 3, Gunners: 3}
	hq, err := headquarters.New(headquarters.DefaultTables(), comp, fixedSrc{val: 0}, nil)
	require.NoError(t, err)

	squad := hq.CreateSquad("first")
	assert.Equal(t, 6, squad.Len())
	assert.Equal(t, 0, roleCounts(squad)[combat.RoleSoldier])
}

func TestCreateSquad_ShufflesPositions(t *testing.T) {
	// With fixedSrc{0} Fisher-Yates rotates the first member to the end.
	comp := config.BattleConfig{SquadSizeMin: 3, SquadSizeMax: 3, Medics: 1}
	hq, err := headquarters.New(headquarters.DefaultTables(), comp, fixedSrc{val: 0}, nil)
	require.NoError(t, err)

	squad := hq.CreateSquad("first")
	require.Equal(t, 3, squad.Len())
	assert.Equal(t, combat.RoleSoldier, squad.At(0).Base().Role)
	assert.Equal(t, combat.RoleMedic, squad.At(2).Base().Role)
}

func TestCreateSquad_UniqueIDs(t *testing.T) {
	hq, err := headquarters.New(headquarters.DefaultTables(), defaultComposition(), dice.NewSeededSource(7), nil)
	require.NoError(t, err)

	seen := make(map[string]bool)
	for _, squad := range []*combat.Roster{hq.CreateSquad("first"), hq.CreateSquad("second")} {
		for _, m := range squad.Members() {
			id := m.Base().ID
			assert.False(t, seen[id], "duplicate id %s", id)
			seen[id] = true
		}
	}
}

func TestCreateSquad_LogsMuster(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	hq, err := headquarters.New(headquarters.DefaultTables(), defaultComposition(), fixedSrc{val: 0}, zap.New(core))
	require.NoError(t, err)

	hq.CreateSquad("first")
	entries := logs.FilterMessage("squad mustered").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "first", fields["squad"])
	assert.Equal(t, int64(25), fields["size"])
	assert.Equal(t, int64(11), fields["soldiers"])
}

func TestProperty_CreateSquad_CompositionHolds(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		maxSize := rapid.IntRange(0, 40).Draw(rt, "max")
		minSize := rapid.IntRange(0, maxSize).Draw(rt, "min")
		medics := rapid.IntRange(0, maxSize).Draw(rt, "medics")
		snipers := rapid.IntRange(0, maxSize-medics).Draw(rt, "snipers")
		seed := rapid.Int64().Draw(rt, "seed")
		comp := config.BattleConfig{SquadSizeMin: minSize, SquadSizeMax: maxSize, Medics: medics, Snipers: snipers}

		hq, err := headquarters.New(headquarters.DefaultTables(), comp, dice.NewSeededSource(seed), nil)
		require.NoError(rt, err)
		squad := hq.CreateSquad("first")

		assert.GreaterOrEqual(rt, squad.Len(), max(minSize, medics+snipers))
		assert.LessOrEqual(rt, squad.Len(), maxSize)
		counts := roleCounts(squad)
		assert.Equal(rt, medics, counts[combat.RoleMedic])
		assert.Equal(rt, snipers, counts[combat.RoleSniper])
		for _, m := range squad.Members() {
			assert.True(rt, m.IsAlive())
			assert.True(rt, m.IsHealthFull())
		}
	})
}
