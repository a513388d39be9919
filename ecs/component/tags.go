package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]("player_tag")

type CameraTag struct{}

var CameraTagComponent = NewComponent[CameraTag]("camera_tag")

// Disabled marks an entity whose required collaborators were missing. Systems
// skip it entirely.
type Disabled struct {
	Reason string
}

var DisabledComponent = NewComponent[Disabled]("disabled")
