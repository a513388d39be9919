package controller

import "strings"

// State is a locomotion state. Exactly one is active per character.
type State uint8

const (
	StateIdle State = iota
	StateWalking
	StateRunning
	StateJumping
	StateAirborne
	StateLanding
	stateCount
)

var stateNames = [stateCount]string{
	StateIdle:     "idle",
	StateWalking:  "walking",
	StateRunning:  "running",
	StateJumping:  "jumping",
	StateAirborne: "airborne",
	StateLanding:  "landing",
}

func (s State) String() string {
	if s >= stateCount {
		return "unknown"
	}
	return stateNames[s]
}

// Grounded reports whether the state expects floor contact.
func (s State) Grounded() bool {
	switch s {
	case StateIdle, StateWalking, StateRunning, StateLanding:
		return true
	}
	return false
}

// InAir reports whether the state is one of the air states.
func (s State) InAir() bool {
	return s == StateJumping || s == StateAirborne
}

// ParseState resolves a state by name, case-insensitively.
func ParseState(name string) (State, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == name {
			return State(i), true
		}
	}
	return 0, false
}

// States returns every locomotion state in declaration order.
func States() []State {
	out := make([]State, 0, stateCount)
	for s := State(0); s < stateCount; s++ {
		out = append(out, s)
	}
	return out
}
