package combat

import "github.com/cory-johannsen/squadwar/internal/game/dice"

// Mitigate returns the damage that gets through armor:
// max(amount-armor, floor(amount/4)).
//
// Precondition: amount >= 0.
// Postcondition: Returns >= floor(amount/4).
func Mitigate(amount, armor int) int {
	floor := amount / 4
	if through := amount - armor; through > floor {
		return through
	}
	return floor
}

// EventKind names the effect recorded by an Event.
type EventKind int

const (
	EventAttack EventKind = iota
	EventHeal
	EventGrenade
)

// String returns a human-readable event label.
func (k EventKind) String() string {
	switch k {
	case EventAttack:
		return "attack"
	case EventHeal:
		return "heal"
	case EventGrenade:
		return "grenade"
	default:
		return "unknown"
	}
}

// Event records one effect applied during an attack phase.
type Event struct {
	Kind      EventKind
	ActorID   string
	ActorRole Role
	TargetID  string
	// Amount is the health removed or restored.
	Amount int
	// Killed is true when this effect took the target from alive to dead.
	Killed bool
}

// Turn is what a combatant may act upon during its slot in an attack phase.
type Turn struct {
	// Index is the actor's position in Allies.
	Index int
	// Allies is the actor's own roster.
	Allies *Roster
	// Targets are the living enemies inside the actor's attack window.
	Targets []Combatant
	Src     dice.Source

	events *[]Event
}

func (t *Turn) record(e Event) {
	if t.events != nil {
		*t.events = append(*t.events, e)
	}
}

// livingTargets filters Targets down to members still alive at call time.
func (t *Turn) livingTargets() []Combatant {
	return living(t.Targets)
}

func living(cs []Combatant) []Combatant {
	var out []Combatant
	for _, c := range cs {
		if c.IsAlive() {
			out = append(out, c)
		}
	}
	return out
}

// strike applies dmg to one random living target.
//
// Postcondition: Returns false and changes nothing when no target is alive.
func strike(t *Turn, actor *Unit, dmg int) bool {
	candidates := t.livingTargets()
	if len(candidates) == 0 {
		return false
	}
	target := candidates[t.Src.Intn(len(candidates))]
	dealt := target.TakeDamage(dmg)
	t.record(Event{
		Kind:      EventAttack,
		ActorID:   actor.ID,
		ActorRole: actor.Role,
		TargetID:  target.Base().ID,
		Amount:    dealt,
		Killed:    !target.IsAlive(),
	})
	return true
}
