package combat

import "github.com/cory-johannsen/squadwar/internal/game/dice"

// Roster is an ordered squad of combatants. Position in the roster defines
// adjacency for range-limited targeting.
//
// Invariant: after RemoveCasualties the member slice holds no dead combatants
// and keeps the survivors' relative order.
type Roster struct {
	Name    string
	members []Combatant
}

// NewRoster creates a Roster over a copy of members.
//
// Precondition: members must not contain nil entries.
func NewRoster(name string, members []Combatant) *Roster {
	m := make([]Combatant, len(members))
	copy(m, members)
	return &Roster{Name: name, members: m}
}

// Len returns the number of members, living or not.
func (r *Roster) Len() int { return len(r.members) }

// At returns the member at index i.
//
// Precondition: 0 <= i < Len().
func (r *Roster) At(i int) Combatant { return r.members[i] }

// Members returns a snapshot of the member order.
func (r *Roster) Members() []Combatant {
	out := make([]Combatant, len(r.members))
	copy(out, r.members)
	return out
}

// IsAlive reports whether any member is alive.
func (r *Roster) IsAlive() bool {
	for _, c := range r.members {
		if c.IsAlive() {
			return true
		}
	}
	return false
}

// Living returns the number of living members.
func (r *Roster) Living() int {
	n := 0
	for _, c := range r.members {
		if c.IsAlive() {
			n++
		}
	}
	return n
}

// Window returns the index bounds [lo, hi) reachable from index i with range
// rng in a roster of size n: lo = max(0, i-rng), hi = min(n, i+rng).
// The upper bound excludes i+rng itself. rng <= 0 spans the whole roster.
//
// Postcondition: 0 <= lo; hi <= n; the window is empty when lo >= hi.
func Window(i, rng, n int) (lo, hi int) {
	if rng <= 0 {
		return 0, n
	}
	lo, hi = i-rng, i+rng
	if lo < 0 {
		lo = 0
	}
	if hi > n {
		hi = n
	}
	return lo, hi
}

// Candidates returns the living members of r inside the window an attacker at
// index i with range rng can reach.
func (r *Roster) Candidates(i, rng int) []Combatant {
	lo, hi := Window(i, rng, len(r.members))
	var out []Combatant
	for j := lo; j < hi; j++ {
		if r.members[j].IsAlive() {
			out = append(out, r.members[j])
		}
	}
	return out
}

// Attack runs r's attack phase against opponent.
//
// Members act in the order they stand at the start of the phase. A member
// that fell earlier in the round still takes its slot, since casualties are
// only removed once both sides have fired. Effects land on the opponent's live
// state immediately, so later attackers see earlier kills.
//
// Precondition: opponent and src must be non-nil.
// Postcondition: Returns the effects applied, in order.
func (r *Roster) Attack(opponent *Roster, src dice.Source) []Event {
	var events []Event
	members := r.members
	for i, actor := range members {
		actor.Attack(&Turn{
			Index:   i,
			Allies:  r,
			Targets: opponent.Candidates(i, actor.Base().Range),
			Src:     src,
			events:  &events,
		})
	}
	return events
}

// RemoveCasualties deletes every dead member, preserving survivor order.
//
// Postcondition: Returns the number of members removed.
func (r *Roster) RemoveCasualties() int {
	alive := r.members[:0]
	for _, c := range r.members {
		if c.IsAlive() {
			alive = append(alive, c)
		}
	}
	removed := len(r.members) - len(alive)
	// Clear the tail so removed combatants are not retained.
	for i := len(alive); i < len(r.members); i++ {
		r.members[i] = nil
	}
	r.members = alive
	return removed
}
