package headquarters

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/squadwar/internal/config"
	"github.com/cory-johannsen/squadwar/internal/game/combat"
	"github.com/cory-johannsen/squadwar/internal/game/dice"
)

// Headquarters recruits combatants from role tables and assembles squads.
type Headquarters struct {
	tables Tables
	comp   config.BattleConfig
	src    dice.Source
	logger *zap.Logger
}

// New creates a Headquarters after validating tables and composition.
//
// Precondition: src must be non-nil. A nil logger disables logging.
// Postcondition: Returns a ready Headquarters, or an error naming every violation.
func New(tables Tables, comp config.BattleConfig, src dice.Source, logger *zap.Logger) (*Headquarters, error) {
	if err := tables.Validate(); err != nil {
		return nil, err
	}
	if err := comp.Validate(); err != nil {
		return nil, fmt.Errorf("squad composition: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Headquarters{tables: tables, comp: comp, src: src, logger: logger}, nil
}

// Recruit creates one combatant of role with every stat drawn independently
// from its table.
//
// Postcondition: Returns a full-health combatant of the requested role.
func (h *Headquarters) Recruit(role combat.Role) combat.Combatant {
	t := h.tables.For(role)
	st := combat.Stats{
		MaxHP:  t.Health.Roll(h.src),
		Damage: t.Damage.Roll(h.src),
		Armor:  t.Armor.Roll(h.src),
		Range:  t.AttackRange.Roll(h.src),
	}
	switch role {
	case combat.RoleMedic:
		return combat.NewMedic(st, t.Heal.Roll(h.src), t.HealRange.Roll(h.src))
	case combat.RoleGrenadier:
		return combat.NewGrenadier(st,
			t.GrenadeDamage.Roll(h.src),
			t.GrenadeTargets.Roll(h.src),
			t.GrenadeCooldown.Roll(h.src),
		)
	case combat.RoleSniper:
		return combat.NewSniper(st, t.Multiplier.Roll(h.src))
	case combat.RoleGunner:
		return combat.NewGunner(st, t.Bursts.Roll(h.src))
	default:
		return combat.NewSoldier(st)
	}
}

// CreateSquad musters a squad: the role quotas first, padded with soldiers up
// to a size drawn from the configured range, then shuffled so every member's
// position (and so its adjacency) is random.
//
// Postcondition: Len() == max(drawn size, quota total); quotas are met exactly.
func (h *Headquarters) CreateSquad(name string) *combat.Roster {
	size := dice.Between(h.src, h.comp.SquadSizeMin, h.comp.SquadSizeMax)

	quotas := []struct {
		role combat.Role
		n    int
	}{
		{combat.RoleMedic, h.comp.Medics},
		{combat.RoleGrenadier, h.comp.Grenadiers},
		{combat.RoleSniper, h.comp.Snipers},
		{combat.RoleGunner, h.comp.Gunners},
	}

	members := make([]combat.Combatant, 0, max(size, h.comp.Specialists()))
	for _, q := range quotas {
		for i := 0; i < q.n; i++ {
			members = append(members, h.Recruit(q.role))
		}
	}
	for len(members) < size {
		members = append(members, h.Recruit(combat.RoleSoldier))
	}
	dice.Shuffle(h.src, members)

	h.logger.Debug("squad mustered",
		zap.String("squad", name),
		zap.Int("size", len(members)),
		zap.Int("soldiers", len(members)-h.comp.Specialists()),
		zap.Int("medics", h.comp.Medics),
		zap.Int("grenadiers", h.comp.Grenadiers),
		zap.Int("snipers", h.comp.Snipers),
		zap.Int("gunners", h.comp.Gunners),
	)
	return combat.NewRoster(name, members)
}
