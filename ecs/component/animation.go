package component

// AnimationTree is the parameter surface of an animation graph. The
// animation system writes it; the renderer reads it.
type AnimationTree struct {
	params map[string]any
}

var AnimationTreeComponent = NewComponent[AnimationTree]("animation_tree")

const (
	ParamBlendPosition = "parameters/locomotion/blend_position"
	ParamVerticalSpeed = "parameters/air/vertical_speed"
	ParamConditionFmt  = "parameters/conditions/%s"
)

func (a *AnimationTree) Set(path string, value any) {
	if a.params == nil {
		a.params = make(map[string]any)
	}
	a.params[path] = value
}

func (a *AnimationTree) Get(path string) (any, bool) {
	v, ok := a.params[path]
	return v, ok
}

// Bool returns a boolean parameter, false when unset or of another type.
func (a *AnimationTree) Bool(path string) bool {
	v, _ := a.params[path].(bool)
	return v
}
