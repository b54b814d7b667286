package combat

import "github.com/cory-johannsen/squadwar/internal/game/dice"

// Soldier is the basic role: one random living target in range, one hit.
type Soldier struct {
	Unit
}

// NewSoldier creates a Soldier at full health.
func NewSoldier(s Stats) *Soldier {
	return &Soldier{Unit: NewUnit(RoleSoldier, s)}
}

// Attack strikes one random living target for Damage.
func (s *Soldier) Attack(t *Turn) { strike(t, &s.Unit, s.Damage) }

// Clone returns a full-health Soldier with the same stats.
func (s *Soldier) Clone() Combatant { return &Soldier{Unit: s.fresh()} }

// Medic heals a wounded ally when one is within HealRange, and fights otherwise.
// Healing and attacking never happen in the same turn.
type Medic struct {
	Unit
	HealAmount int
	// HealRange bounds eligible allies by index distance; <= 0 covers the whole roster.
	HealRange int
}

// NewMedic creates a Medic at full health.
func NewMedic(s Stats, healAmount, healRange int) *Medic {
	return &Medic{Unit: NewUnit(RoleMedic, s), HealAmount: healAmount, HealRange: healRange}
}

// Attack heals one random living, not-full ally inside the heal window; if no
// ally qualifies it strikes like a Soldier.
func (m *Medic) Attack(t *Turn) {
	if m.heal(t) {
		return
	}
	strike(t, &m.Unit, m.Damage)
}

func (m *Medic) heal(t *Turn) bool {
	if t.Allies == nil {
		return false
	}
	lo, hi := Window(t.Index, m.HealRange, t.Allies.Len())
	var wounded []Combatant
	for i := lo; i < hi; i++ {
		ally := t.Allies.At(i)
		if ally.IsAlive() && !ally.IsHealthFull() {
			wounded = append(wounded, ally)
		}
	}
	if len(wounded) == 0 {
		return false
	}
	patient := wounded[t.Src.Intn(len(wounded))]
	restored := patient.Heal(m.HealAmount)
	t.record(Event{
		Kind:      EventHeal,
		ActorID:   m.ID,
		ActorRole: m.Role,
		TargetID:  patient.Base().ID,
		Amount:    restored,
	})
	return true
}

// Clone returns a full-health Medic with the same stats.
func (m *Medic) Clone() Combatant {
	return &Medic{Unit: m.fresh(), HealAmount: m.HealAmount, HealRange: m.HealRange}
}

// Grenadier fights like a Soldier until its cooldown counter reaches
// GrenadeCooldown, then spends one turn throwing a grenade instead.
//
// Invariant: 0 <= counter <= GrenadeCooldown.
type Grenadier struct {
	Unit
	GrenadeDamage int
	// GrenadeTargets is the number of distinct targets one grenade hits at most.
	GrenadeTargets int
	// GrenadeCooldown is the number of normal-attack turns between grenades.
	GrenadeCooldown int

	counter int
}

// NewGrenadier creates a Grenadier at full health with an empty cooldown counter.
func NewGrenadier(s Stats, grenadeDamage, grenadeTargets, cooldown int) *Grenadier {
	return &Grenadier{
		Unit:            NewUnit(RoleGrenadier, s),
		GrenadeDamage:   grenadeDamage,
		GrenadeTargets:  grenadeTargets,
		GrenadeCooldown: cooldown,
	}
}

// GrenadeReady reports whether the next turn throws a grenade.
func (g *Grenadier) GrenadeReady() bool { return g.counter >= g.GrenadeCooldown }

// Cooldown returns the number of normal-attack turns since the last grenade.
func (g *Grenadier) Cooldown() int { return g.counter }

// Attack throws a grenade when ready, resetting the counter; otherwise it
// strikes one target and advances the counter.
func (g *Grenadier) Attack(t *Turn) {
	if g.GrenadeReady() {
		g.throw(t)
		g.counter = 0
		return
	}
	strike(t, &g.Unit, g.Damage)
	g.counter++
}

// throw hits min(GrenadeTargets, living targets) distinct targets.
func (g *Grenadier) throw(t *Turn) {
	candidates := t.livingTargets()
	for _, i := range dice.Sample(t.Src, len(candidates), g.GrenadeTargets) {
		target := candidates[i]
		dealt := target.TakeDamage(g.GrenadeDamage)
		t.record(Event{
			Kind:      EventGrenade,
			ActorID:   g.ID,
			ActorRole: g.Role,
			TargetID:  target.Base().ID,
			Amount:    dealt,
			Killed:    !target.IsAlive(),
		})
	}
}

// Clone returns a full-health Grenadier with the same stats and a reset counter.
func (g *Grenadier) Clone() Combatant {
	return &Grenadier{
		Unit:            g.fresh(),
		GrenadeDamage:   g.GrenadeDamage,
		GrenadeTargets:  g.GrenadeTargets,
		GrenadeCooldown: g.GrenadeCooldown,
	}
}

// Sniper hits one target for Damage times Multiplier.
type Sniper struct {
	Unit
	Multiplier int
}

// NewSniper creates a Sniper at full health.
func NewSniper(s Stats, multiplier int) *Sniper {
	return &Sniper{Unit: NewUnit(RoleSniper, s), Multiplier: multiplier}
}

// Attack strikes one random living target for Damage*Multiplier.
func (s *Sniper) Attack(t *Turn) { strike(t, &s.Unit, s.Damage*s.Multiplier) }

// Clone returns a full-health Sniper with the same stats.
func (s *Sniper) Clone() Combatant {
	return &Sniper{Unit: s.fresh(), Multiplier: s.Multiplier}
}

// Gunner repeats the basic strike Bursts times per turn, rolling a fresh
// target each time.
type Gunner struct {
	Unit
	Bursts int
}

// NewGunner creates a Gunner at full health.
func NewGunner(s Stats, bursts int) *Gunner {
	return &Gunner{Unit: NewUnit(RoleGunner, s), Bursts: bursts}
}

// Attack strikes up to Bursts times, stopping early once no target is alive.
func (g *Gunner) Attack(t *Turn) {
	for i := 0; i < g.Bursts; i++ {
		if !strike(t, &g.Unit, g.Damage) {
			return
		}
	}
}

// Clone returns a full-health Gunner with the same stats.
func (g *Gunner) Clone() Combatant {
	return &Gunner{Unit: g.fresh(), Bursts: g.Bursts}
}
