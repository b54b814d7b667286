// Package combat implements squad-versus-squad battle resolution: the
// combatant roles, roster targeting and the round loop.
package combat

import "github.com/google/uuid"

// Role distinguishes the battlefield specialties a combatant can have.
type Role int

const (
	RoleSoldier Role = iota
	RoleMedic
	RoleGrenadier
	RoleSniper
	RoleGunner
)

// String returns the lower-case role name used in content files and logs.
func (r Role) String() string {
	switch r {
	case RoleSoldier:
		return "soldier"
	case RoleMedic:
		return "medic"
	case RoleGrenadier:
		return "grenadier"
	case RoleSniper:
		return "sniper"
	case RoleGunner:
		return "gunner"
	default:
		return "unknown"
	}
}

// ParseRole maps a role name back to its Role.
//
// Postcondition: Returns (role, true) for a known name, or (RoleSoldier, false).
func ParseRole(name string) (Role, bool) {
	for r := RoleSoldier; r <= RoleGunner; r++ {
		if r.String() == name {
			return r, true
		}
	}
	return RoleSoldier, false
}

// Outcome is the state of a battle between two rosters.
type Outcome int

const (
	Ongoing Outcome = iota
	FirstWins
	SecondWins
	MutualDestruction
)

// String returns a human-readable outcome label.
func (o Outcome) String() string {
	switch o {
	case Ongoing:
		return "ongoing"
	case FirstWins:
		return "first squad wins"
	case SecondWins:
		return "second squad wins"
	case MutualDestruction:
		return "mutual destruction"
	default:
		return "unknown"
	}
}

// Terminal reports whether the battle has ended.
func (o Outcome) Terminal() bool { return o != Ongoing }

// Combatant is the capability every role exposes to a Roster.
type Combatant interface {
	// Base returns the shared health and damage record.
	Base() *Unit
	IsAlive() bool
	IsHealthFull() bool
	// TakeDamage applies armor mitigation and returns the health actually removed.
	TakeDamage(amount int) int
	// Heal restores health up to the maximum and returns the amount restored.
	Heal(amount int) int
	// Attack performs the combatant's action for one turn.
	Attack(t *Turn)
	// Clone returns a fresh combatant with identical starting stats.
	Clone() Combatant
}

// Stats are the starting numbers shared by every role.
type Stats struct {
	MaxHP  int
	Damage int
	Armor  int
	// Range bounds valid targets by roster index distance; <= 0 means unranged.
	Range int
}

// Unit is the health and damage record embedded by every role.
//
// Invariant: IsAlive() iff CurrentHP > 0; CurrentHP never exceeds MaxHP.
type Unit struct {
	ID        string
	Role      Role
	MaxHP     int
	CurrentHP int
	Damage    int
	Armor     int
	Range     int
}

// NewUnit creates a Unit at full health with a fresh ID.
//
// Postcondition: CurrentHP == s.MaxHP.
func NewUnit(role Role, s Stats) Unit {
	return Unit{
		ID:        uuid.New().String(),
		Role:      role,
		MaxHP:     s.MaxHP,
		CurrentHP: s.MaxHP,
		Damage:    s.Damage,
		Armor:     s.Armor,
		Range:     s.Range,
	}
}

// Base returns u itself so that embedding roles satisfy Combatant.
func (u *Unit) Base() *Unit { return u }

// IsAlive reports whether CurrentHP is above zero.
func (u *Unit) IsAlive() bool { return u.CurrentHP > 0 }

// IsHealthFull reports whether CurrentHP equals MaxHP.
func (u *Unit) IsHealthFull() bool { return u.CurrentHP >= u.MaxHP }

// TakeDamage reduces CurrentHP by Mitigate(amount, Armor).
// A negative amount is ignored. CurrentHP is not floored at zero.
//
// Postcondition: Returns the health removed, >= 0.
func (u *Unit) TakeDamage(amount int) int {
	if amount < 0 {
		return 0
	}
	dealt := Mitigate(amount, u.Armor)
	u.CurrentHP -= dealt
	return dealt
}

// Heal raises CurrentHP by amount, clamped to MaxHP. A negative amount is ignored.
//
// Postcondition: CurrentHP <= MaxHP; returns the health restored, >= 0.
func (u *Unit) Heal(amount int) int {
	if amount < 0 || u.CurrentHP >= u.MaxHP {
		return 0
	}
	before := u.CurrentHP
	u.CurrentHP += amount
	if u.CurrentHP > u.MaxHP {
		u.CurrentHP = u.MaxHP
	}
	return u.CurrentHP - before
}

// fresh returns a copy of u at full health under a new ID.
func (u Unit) fresh() Unit {
	u.ID = uuid.New().String()
	u.CurrentHP = u.MaxHP
	return u
}
