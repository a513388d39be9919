// Package controller holds the engine-free core of the character controller:
// input arbitration, the locomotion state machine and the jump budget.
//
// Everything here is driven by explicit ticks with a delta time. Nothing
// blocks; every wait is a countdown checked on the next tick.
package controller
