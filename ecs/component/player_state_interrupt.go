package component

// PlayerStateInterrupt is a one-shot request to force a locomotion state by
// name. The locomotion system consumes and removes it.
type PlayerStateInterrupt struct {
	State string
}

var PlayerStateInterruptComponent = NewComponent[PlayerStateInterrupt]("player_state_interrupt")
